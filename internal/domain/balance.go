package domain

import "slices"

// Balances maps a participant to its net balance.
// Positive means the participant is owed money, negative means it owes money.
type Balances map[string]float64

// Names returns the participants in ascending order.
func (b Balances) Names() []string {
	names := make([]string, 0, len(b))
	for name := range b {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Sum returns the sum of all balances. It is zero for a closed group, up to
// floating-point noise.
func (b Balances) Sum() float64 {
	var sum float64
	for _, name := range b.Names() {
		sum += b[name]
	}
	return sum
}

// Clone returns a copy of b.
func (b Balances) Clone() Balances {
	out := make(Balances, len(b))
	for name, amount := range b {
		out[name] = amount
	}
	return out
}
