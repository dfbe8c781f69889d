package domain

import "errors"

var (
	// Expense errors
	ErrEmptyPayer       = errors.New("expense must have a payer")
	ErrInvalidAmount    = errors.New("amount must be a finite number")
	ErrNegativeAmount   = errors.New("amount must not be negative")
	ErrTooManyExpenses  = errors.New("too many expenses")
	ErrUnsupportedSheet = errors.New("unsupported expense sheet format")

	// Settlement errors
	ErrInvalidTolerance   = errors.New("tolerance must be a finite non-negative number")
	ErrSettlementMismatch = errors.New("settlement does not zero all balances")
)
