package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/iho/splitledger/internal/adapter/http/dto"
	"github.com/iho/splitledger/internal/adapter/importer"
	"github.com/iho/splitledger/internal/adapter/report"
	"github.com/iho/splitledger/internal/domain"
)

func remoteCmd() *cobra.Command {
	var (
		baseURL string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "remote",
		Short: "Run commands against a splitledger server",
	}

	cmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the splitledger API")
	cmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	var (
		out            outputOptions
		tolerance      float64
		idempotencyKey string
	)

	settle := &cobra.Command{
		Use:   "settle FILE",
		Short: "Settle an expense sheet on the server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := out.validate(); err != nil {
				return err
			}

			expenses, err := importer.Load(args[0])
			if err != nil {
				return err
			}

			client := &http.Client{Timeout: timeout}
			resp, err := postSettlement(cmd.Context(), client, baseURL, dto.NewSettleRequest(expenses, tolerance), idempotencyKey)
			if err != nil {
				return err
			}

			if out.format == outputJSON {
				return printJSON(cmd.OutOrStdout(), resp)
			}

			renderer, err := report.NewRenderer(out.locale, out.currency)
			if err != nil {
				return err
			}

			return renderer.Render(cmd.OutOrStdout(), summaryFromResponse(resp, expenses))
		},
	}

	out.register(settle)
	settle.Flags().Float64Var(&tolerance, "tolerance", 0, "Balances within this amount of zero count as settled (server default when 0)")
	settle.Flags().StringVar(&idempotencyKey, "idempotency-key", "", "Idempotency-Key header sent with the request")

	cmd.AddCommand(settle)

	return cmd
}

func postSettlement(ctx context.Context, client *http.Client, baseURL string, req dto.SettleRequest, idempotencyKey string) (*dto.SettlementResponse, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	url := strings.TrimRight(baseURL, "/") + "/api/v1/settlements"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if idempotencyKey != "" {
		httpReq.Header.Set("Idempotency-Key", idempotencyKey)
	}

	resp, err := client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr dto.ErrorResponse
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
			if apiErr.Message != "" {
				return nil, fmt.Errorf("server returned %d: %s: %s", resp.StatusCode, apiErr.Error, apiErr.Message)
			}
			return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, apiErr.Error)
		}
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var result dto.SettlementResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return &result, nil
}

func summaryFromResponse(resp *dto.SettlementResponse, expenses []domain.Expense) report.Summary {
	balances := make(domain.Balances, len(resp.Balances))
	for _, b := range resp.Balances {
		balances[b.Participant] = b.Balance.InexactFloat64()
	}

	transfers := make([]domain.Transfer, len(resp.Transfers))
	for i, t := range resp.Transfers {
		transfers[i] = domain.Transfer{From: t.From, To: t.To, Amount: t.Amount.InexactFloat64()}
	}

	return report.Summary{
		Participants: resp.Participants,
		Balances:     balances,
		Transfers:    transfers,
		Expenses:     expenses,
	}
}
