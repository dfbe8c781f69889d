// Package report renders a settlement run as a human-readable summary.
package report

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/iho/splitledger/internal/domain"
)

// Summary is everything a report shows.
type Summary struct {
	Participants []string
	Balances     domain.Balances
	Transfers    []domain.Transfer
	Expenses     []domain.Expense
}

// Renderer formats summaries for one locale.
type Renderer struct {
	printer  *message.Printer
	currency string
}

// NewRenderer creates a Renderer for a BCP 47 locale such as "en" or "de-DE".
// currency is printed before every amount and may be empty.
func NewRenderer(locale, currency string) (*Renderer, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", locale, err)
	}

	return &Renderer{
		printer:  message.NewPrinter(tag),
		currency: currency,
	}, nil
}

// Money formats an amount with two decimals in the renderer's locale.
// Negative amounts carry the sign ahead of the currency symbol.
func (r *Renderer) Money(v float64) string {
	// Amounts that round to zero print unsigned.
	if v <= -0.005 {
		return "-" + r.currency + r.printer.Sprintf("%.2f", -v)
	}
	if v < 0 {
		v = 0
	}
	return r.currency + r.printer.Sprintf("%.2f", v)
}

// Render writes the summary to w.
func (r *Renderer) Render(w io.Writer, s Summary) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "Participants")
	fmt.Fprintf(bw, "  %s\n", strings.Join(s.Participants, ", "))

	fmt.Fprintln(bw)
	fmt.Fprintln(bw, "Net balances")
	for _, name := range s.Participants {
		fmt.Fprintf(bw, "  %s: %s\n", name, r.Money(s.Balances[name]))
	}

	fmt.Fprintln(bw)
	fmt.Fprintln(bw, "Payments")
	if len(s.Transfers) == 0 {
		fmt.Fprintln(bw, "  Everyone is settled up!")
	} else {
		for _, t := range s.Transfers {
			fmt.Fprintf(bw, "  %s pays %s: %s\n", t.From, t.To, r.Money(t.Amount))
		}
		fmt.Fprintf(bw, "Total transactions required: %d\n", len(s.Transfers))
	}

	if len(s.Expenses) > 0 {
		fmt.Fprintln(bw)
		fmt.Fprintln(bw, "Breakdown")
		for _, e := range s.Expenses {
			fmt.Fprintf(bw, "  %s\n", r.describe(e))
		}
	}

	return bw.Flush()
}

func (r *Renderer) describe(e domain.Expense) string {
	var b strings.Builder

	b.WriteString(e.Payer)
	b.WriteString(" paid ")
	b.WriteString(r.Money(e.Amount))
	if e.Description != "" {
		b.WriteString(" for ")
		b.WriteString(e.Description)
	}
	if len(e.Excluded) > 0 {
		b.WriteString(" (except ")
		b.WriteString(e.Excluded.String())
		b.WriteString(")")
	}

	return b.String()
}
