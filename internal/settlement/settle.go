package settlement

import (
	"cmp"
	"slices"

	"github.com/iho/splitledger/internal/domain"
)

// DefaultTolerance is the smallest amount worth paying, one cent of the
// group's currency. Balances closer to zero than this count as settled.
const DefaultTolerance = 0.01

type position struct {
	name   string
	amount float64
}

// Settle reduces balances to transfers using DefaultTolerance.
func Settle(balances domain.Balances) []domain.Transfer {
	return SettleWithTolerance(balances, DefaultTolerance)
}

// SettleWithTolerance pairs the largest remaining debtor with the largest
// remaining creditor until one side runs out. It never emits more than
// debtors+creditors-1 transfers. A tolerance <= 0 means DefaultTolerance.
//
// Participants with equal amounts keep ascending name order.
func SettleWithTolerance(balances domain.Balances, tolerance float64) []domain.Transfer {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}

	var debtors, creditors []position
	for _, name := range balances.Names() {
		balance := balances[name]
		switch {
		case balance < -tolerance:
			debtors = append(debtors, position{name: name, amount: -balance})
		case balance > tolerance:
			creditors = append(creditors, position{name: name, amount: balance})
		}
	}

	largestFirst := func(a, b position) int { return cmp.Compare(b.amount, a.amount) }
	slices.SortStableFunc(debtors, largestFirst)
	slices.SortStableFunc(creditors, largestFirst)

	transfers := make([]domain.Transfer, 0, max(len(debtors)+len(creditors)-1, 0))

	d, c := 0, 0
	for d < len(debtors) && c < len(creditors) {
		debtor, creditor := &debtors[d], &creditors[c]
		amount := min(debtor.amount, creditor.amount)

		transfers = append(transfers, domain.Transfer{
			From:   debtor.name,
			To:     creditor.name,
			Amount: amount,
		})

		debtor.amount -= amount
		creditor.amount -= amount

		if debtor.amount < tolerance {
			d++
		}
		if creditor.amount < tolerance {
			c++
		}
	}

	return transfers
}

// Apply returns a copy of balances with every transfer paid out.
func Apply(balances domain.Balances, transfers []domain.Transfer) domain.Balances {
	out := balances.Clone()
	for _, t := range transfers {
		out[t.From] += t.Amount
		out[t.To] -= t.Amount
	}
	return out
}
