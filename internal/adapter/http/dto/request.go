package dto

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/iho/splitledger/internal/domain"
	"github.com/iho/splitledger/internal/usecase"
)

// ExpenseRequest represents one expense record.
// Excluded and Except are merged; Except is the comma separated form.
// Amount is required; a missing or null amount is an error.
type ExpenseRequest struct {
	Payer       string           `json:"payer"`
	Amount      *decimal.Decimal `json:"amount"`
	Description string           `json:"description,omitempty"`
	Excluded    []string         `json:"excluded,omitempty"`
	Except      string           `json:"except,omitempty"`
}

// ToDomain converts to a domain expense.
func (r *ExpenseRequest) ToDomain() (domain.Expense, error) {
	if r.Amount == nil {
		return domain.Expense{}, fmt.Errorf("%w: amount is missing", domain.ErrInvalidAmount)
	}

	return domain.Expense{
		Payer:       strings.TrimSpace(r.Payer),
		Amount:      r.Amount.InexactFloat64(),
		Description: strings.TrimSpace(r.Description),
		Excluded:    domain.NewExclusionSet(r.Excluded...).Union(domain.ParseExclusions(r.Except)),
	}, nil
}

// ExpenseFromDomain converts a domain expense to its request form.
func ExpenseFromDomain(e domain.Expense) ExpenseRequest {
	amount := decimal.NewFromFloat(e.Amount)
	return ExpenseRequest{
		Payer:       e.Payer,
		Amount:      &amount,
		Description: e.Description,
		Excluded:    e.Excluded.Names(),
	}
}

// SettleRequest is the body of every expense-sheet endpoint.
type SettleRequest struct {
	Expenses  []ExpenseRequest `json:"expenses"`
	Tolerance *decimal.Decimal `json:"tolerance,omitempty"`
}

// NewSettleRequest builds a request from domain expenses.
func NewSettleRequest(expenses []domain.Expense, tolerance float64) SettleRequest {
	req := SettleRequest{Expenses: make([]ExpenseRequest, len(expenses))}
	for i, e := range expenses {
		req.Expenses[i] = ExpenseFromDomain(e)
	}
	if tolerance > 0 {
		t := decimal.NewFromFloat(tolerance)
		req.Tolerance = &t
	}
	return req
}

// ToDomain converts the expense list. Errors name the 1-based expense index.
func (r *SettleRequest) ToDomain() ([]domain.Expense, error) {
	expenses := make([]domain.Expense, len(r.Expenses))
	for i := range r.Expenses {
		expense, err := r.Expenses[i].ToDomain()
		if err != nil {
			return nil, fmt.Errorf("expense %d: %w", i+1, err)
		}
		expenses[i] = expense
	}
	return expenses, nil
}

// ToUseCaseInput converts to use case input.
func (r *SettleRequest) ToUseCaseInput() (usecase.SettleInput, error) {
	expenses, err := r.ToDomain()
	if err != nil {
		return usecase.SettleInput{}, err
	}

	input := usecase.SettleInput{Expenses: expenses}
	if r.Tolerance != nil {
		input.Tolerance = r.Tolerance.InexactFloat64()
	}
	return input, nil
}
