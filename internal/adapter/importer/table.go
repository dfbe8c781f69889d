package importer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/iho/splitledger/internal/domain"
)

// ErrMissingColumn is returned when a table sheet lacks a required header.
var ErrMissingColumn = errors.New("missing required column")

// headerAliases maps accepted header labels to their column.
var headerAliases = map[string]string{
	"payer":                    "payer",
	"who paid":                 "payer",
	"person":                   "payer",
	"amount":                   "amount",
	"description":              "description",
	"for what":                 "description",
	"item":                     "description",
	"except":                   "except",
	"except (comma-separated)": "except",
	"excluded":                 "except",
}

// columns holds the index of each known column, -1 when absent.
type columns struct {
	payer, amount, description, except int
}

func mapHeader(header []string) (columns, error) {
	cols := columns{payer: -1, amount: -1, description: -1, except: -1}

	for i, label := range header {
		switch headerAliases[strings.ToLower(strings.TrimSpace(label))] {
		case "payer":
			cols.payer = i
		case "amount":
			cols.amount = i
		case "description":
			cols.description = i
		case "except":
			cols.except = i
		}
	}

	if cols.payer < 0 {
		return cols, fmt.Errorf("%w: payer", ErrMissingColumn)
	}
	if cols.amount < 0 {
		return cols, fmt.Errorf("%w: amount", ErrMissingColumn)
	}

	return cols, nil
}

// readRows converts table rows following a header row. Row numbers in
// errors are 1-based and count the header.
func readRows(rows [][]string) ([]domain.Expense, error) {
	expenses := []domain.Expense{}
	if len(rows) == 0 {
		return expenses, nil
	}

	cols, err := mapHeader(rows[0])
	if err != nil {
		return nil, err
	}

	for i, row := range rows[1:] {
		if isBlank(row) {
			continue
		}

		expense, err := cols.expense(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		expenses = append(expenses, expense)
	}

	return expenses, nil
}

func (c columns) expense(row []string) (domain.Expense, error) {
	amount, err := parseAmount(cell(row, c.amount))
	if err != nil {
		return domain.Expense{}, err
	}

	return domain.Expense{
		Payer:       cell(row, c.payer),
		Amount:      amount,
		Description: cell(row, c.description),
		Excluded:    domain.ParseExclusions(cell(row, c.except)),
	}, nil
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// parseAmount reads a decimal amount the way a spreadsheet user writes it.
func parseAmount(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("%w: amount is empty", domain.ErrInvalidAmount)
	}

	d, err := decimal.NewFromString(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", domain.ErrInvalidAmount, raw)
	}

	return d.InexactFloat64(), nil
}
