package settlement

import "github.com/iho/splitledger/internal/domain"

// Involved returns the participants that share the cost of expense, in the
// order of participants.
func Involved(expense domain.Expense, participants []string) []string {
	involved := make([]string, 0, len(participants))
	for _, name := range participants {
		if !expense.Excluded.Contains(name) {
			involved = append(involved, name)
		}
	}
	return involved
}

// CalculateBalances returns paid minus owed for every participant.
//
// Each expense is split evenly across the participants it does not exclude.
// An expense that excludes everyone is skipped: the payer is not credited and
// nobody is charged.
func CalculateBalances(expenses []domain.Expense, participants []string) domain.Balances {
	paid := make(map[string]float64, len(participants))
	owed := make(map[string]float64, len(participants))
	for _, name := range participants {
		paid[name] = 0
		owed[name] = 0
	}

	for _, expense := range expenses {
		involved := Involved(expense, participants)
		if len(involved) == 0 {
			continue
		}

		split := expense.Amount / float64(len(involved))

		paid[expense.Payer] += expense.Amount
		for _, name := range involved {
			owed[name] += split
		}
	}

	balances := make(domain.Balances, len(paid))
	for name, amount := range paid {
		balances[name] = amount - owed[name]
	}

	return balances
}
