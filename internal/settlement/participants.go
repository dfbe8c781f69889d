// Package settlement reduces a group's expenses to the payments that settle it.
//
// The three stages run in order and are pure functions over their input:
// ResolveParticipants, CalculateBalances and Settle. Input is expected to be
// validated already (see domain.ValidateExpenses).
package settlement

import (
	"slices"

	"github.com/iho/splitledger/internal/domain"
)

// ResolveParticipants returns every payer and every excluded name across
// expenses, sorted and without duplicates.
func ResolveParticipants(expenses []domain.Expense) []string {
	seen := make(map[string]struct{})
	for _, expense := range expenses {
		seen[expense.Payer] = struct{}{}
		for name := range expense.Excluded {
			seen[name] = struct{}{}
		}
	}

	participants := make([]string, 0, len(seen))
	for name := range seen {
		participants = append(participants, name)
	}
	slices.Sort(participants)

	return participants
}
