package report

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/splitledger/internal/domain"
)

func TestRender_WithPayments(t *testing.T) {
	r, err := NewRenderer("en", "")
	require.NoError(t, err)

	var buf bytes.Buffer
	err = r.Render(&buf, Summary{
		Participants: []string{"Alice", "Bob", "Carol"},
		Balances:     domain.Balances{"Alice": 150, "Bob": -150, "Carol": 0},
		Transfers:    []domain.Transfer{{From: "Bob", To: "Alice", Amount: 150}},
		Expenses: []domain.Expense{
			{Payer: "Alice", Amount: 300, Description: "hotel", Excluded: domain.ParseExclusions("Carol")},
			{Payer: "Bob", Amount: 0},
		},
	})
	require.NoError(t, err)

	want := `Participants
  Alice, Bob, Carol

Net balances
  Alice: 150.00
  Bob: -150.00
  Carol: 0.00

Payments
  Bob pays Alice: 150.00
Total transactions required: 1

Breakdown
  Alice paid 300.00 for hotel (except Carol)
  Bob paid 0.00
`
	assert.Equal(t, want, buf.String())
}

func TestRender_SettledGroup(t *testing.T) {
	r, err := NewRenderer("en", "")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, Summary{
		Participants: []string{"A", "B"},
		Balances:     domain.Balances{"A": 0, "B": 0},
		Transfers:    []domain.Transfer{},
	}))

	assert.Contains(t, buf.String(), "Everyone is settled up!")
	assert.NotContains(t, buf.String(), "Total transactions required")
	assert.NotContains(t, buf.String(), "Breakdown")
}

func TestMoney_Localized(t *testing.T) {
	en, err := NewRenderer("en", "₹")
	require.NoError(t, err)
	assert.Equal(t, "₹33.33", en.Money(33.333333))

	de, err := NewRenderer("de", "")
	require.NoError(t, err)
	assert.Equal(t, "150,00", de.Money(150))
}

func TestMoney_NegativeSignLeadsCurrency(t *testing.T) {
	en, err := NewRenderer("en", "₹")
	require.NoError(t, err)
	assert.Equal(t, "-₹150.00", en.Money(-150))
	assert.Equal(t, "₹0.00", en.Money(-0.001))

	plain, err := NewRenderer("en", "")
	require.NoError(t, err)
	assert.Equal(t, "-150.00", plain.Money(-150))
}

func TestNewRenderer_InvalidLocale(t *testing.T) {
	_, err := NewRenderer("not a locale!", "")
	require.Error(t, err)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestRender_PropagatesWriteErrors(t *testing.T) {
	r, err := NewRenderer("en", "")
	require.NoError(t, err)

	err = r.Render(failingWriter{}, Summary{Participants: []string{"A"}, Balances: domain.Balances{"A": 0}})
	require.Error(t, err)
}
