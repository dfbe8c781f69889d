package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/iho/splitledger/internal/adapter/http/dto"
	"github.com/iho/splitledger/internal/adapter/importer"
	"github.com/iho/splitledger/internal/adapter/report"
	"github.com/iho/splitledger/internal/infrastructure/idgen"
	"github.com/iho/splitledger/internal/infrastructure/logger"
	"github.com/iho/splitledger/internal/usecase"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

const (
	outputText = "text"
	outputJSON = "json"
)

type outputOptions struct {
	format   string
	locale   string
	currency string
}

func (o *outputOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.format, "format", outputText, "Output format (text or json)")
	cmd.Flags().StringVar(&o.locale, "locale", "en", "Locale used to format amounts")
	cmd.Flags().StringVar(&o.currency, "currency", "", "Currency symbol printed before amounts")
}

func (o *outputOptions) validate() error {
	if o.format != outputText && o.format != outputJSON {
		return fmt.Errorf("unknown output format %q", o.format)
	}
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "splitledger",
		Short:         "Group expense settlement tool",
		Long:          `Settle shared group expenses with as few payments as possible.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(settleCmd(), participantsCmd(), remoteCmd(), versionCmd())

	return rootCmd
}

func newSettlementUseCase(errOut io.Writer) *usecase.SettlementUseCase {
	return usecase.NewSettlementUseCase(usecase.SettlementConfig{
		IDGenerator: idgen.NewULIDGenerator(),
		Logger:      logger.New(logger.Config{Level: "warn", Format: "console", Output: errOut}),
	})
}

func settleCmd() *cobra.Command {
	var (
		out       outputOptions
		tolerance float64
	)

	cmd := &cobra.Command{
		Use:   "settle FILE",
		Short: "Settle an expense sheet locally",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := out.validate(); err != nil {
				return err
			}

			expenses, err := importer.Load(args[0])
			if err != nil {
				return err
			}

			uc := newSettlementUseCase(cmd.ErrOrStderr())
			result, err := uc.Settle(cmd.Context(), usecase.SettleInput{
				Expenses:  expenses,
				Tolerance: tolerance,
			})
			if err != nil {
				return err
			}

			if out.format == outputJSON {
				return printJSON(cmd.OutOrStdout(), dto.SettlementFromResult(result))
			}

			renderer, err := report.NewRenderer(out.locale, out.currency)
			if err != nil {
				return err
			}

			return renderer.Render(cmd.OutOrStdout(), report.Summary{
				Participants: result.Participants,
				Balances:     result.Balances,
				Transfers:    result.Transfers,
				Expenses:     expenses,
			})
		},
	}

	out.register(cmd)
	cmd.Flags().Float64Var(&tolerance, "tolerance", 0, "Balances within this amount of zero count as settled (default 0.01)")

	return cmd
}

func participantsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "participants FILE",
		Short: "List everyone named in an expense sheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			expenses, err := importer.Load(args[0])
			if err != nil {
				return err
			}

			uc := newSettlementUseCase(cmd.ErrOrStderr())
			participants, err := uc.ResolveParticipants(cmd.Context(), expenses)
			if err != nil {
				return err
			}

			for _, name := range participants {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "splitledger %s\n", version)
		},
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
