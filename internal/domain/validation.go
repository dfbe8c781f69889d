package domain

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Validation errors
var (
	ErrInvalidParticipantName = errors.New("invalid participant name")
	ErrAmountTooLarge         = errors.New("amount exceeds maximum allowed")
)

// Validation constants
const (
	MaxParticipantNameLength = 255
	MaxExpenseAmount         = 1e12 // 1 trillion
)

// ValidateParticipantName validates a payer or excluded name.
func ValidateParticipantName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidParticipantName)
	}

	if len(name) > MaxParticipantNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidParticipantName, MaxParticipantNameLength)
	}

	if strings.Contains(name, ",") {
		return fmt.Errorf("%w: name cannot contain a comma", ErrInvalidParticipantName)
	}

	return nil
}

// ValidateAmount validates an expense amount.
func ValidateAmount(amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return ErrInvalidAmount
	}

	if amount < 0 {
		return ErrNegativeAmount
	}

	if amount > MaxExpenseAmount {
		return fmt.Errorf("%w: maximum amount is %.0f", ErrAmountTooLarge, MaxExpenseAmount)
	}

	return nil
}

// Validate checks the fields the settlement engine relies on.
func (e *Expense) Validate() error {
	if strings.TrimSpace(e.Payer) == "" {
		return ErrEmptyPayer
	}

	if err := ValidateParticipantName(e.Payer); err != nil {
		return err
	}

	if err := ValidateAmount(e.Amount); err != nil {
		return err
	}

	for name := range e.Excluded {
		if err := ValidateParticipantName(name); err != nil {
			return err
		}
	}

	return nil
}

// ValidateExpenses validates every expense and caps the list length.
// A maxExpenses of zero or less disables the cap.
func ValidateExpenses(expenses []Expense, maxExpenses int) error {
	if maxExpenses > 0 && len(expenses) > maxExpenses {
		return fmt.Errorf("%w: got %d, limit is %d", ErrTooManyExpenses, len(expenses), maxExpenses)
	}

	for i := range expenses {
		if err := expenses[i].Validate(); err != nil {
			return fmt.Errorf("expense %d: %w", i+1, err)
		}
	}

	return nil
}

// ValidateTolerance validates a settlement tolerance. Zero is allowed and
// means "use the default".
func ValidateTolerance(tolerance float64) error {
	if math.IsNaN(tolerance) || math.IsInf(tolerance, 0) || tolerance < 0 {
		return ErrInvalidTolerance
	}

	return nil
}
