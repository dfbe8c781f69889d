package domain

// Transfer is one payment instruction: From pays To the given Amount.
type Transfer struct {
	From   string
	To     string
	Amount float64
}
