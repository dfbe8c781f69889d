package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/splitledger/internal/domain"
	"github.com/iho/splitledger/internal/usecase"
)

// Money rounds an engine amount to cents for display.
func Money(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}

// ParticipantsResponse lists everyone named in a sheet.
type ParticipantsResponse struct {
	Participants []string `json:"participants"`
}

// BalanceResponse represents one participant's net balance.
type BalanceResponse struct {
	Participant string          `json:"participant"`
	Balance     decimal.Decimal `json:"balance"`
}

// BalancesFromDomain converts balances in participant order.
func BalancesFromDomain(balances domain.Balances) []BalanceResponse {
	names := balances.Names()
	result := make([]BalanceResponse, len(names))
	for i, name := range names {
		result[i] = BalanceResponse{Participant: name, Balance: Money(balances[name])}
	}
	return result
}

// BalancesResponse represents the net balances of a group.
type BalancesResponse struct {
	Participants    []string          `json:"participants"`
	Balances        []BalanceResponse `json:"balances"`
	TotalSpent      decimal.Decimal   `json:"total_spent"`
	SkippedExpenses int               `json:"skipped_expenses"`
}

// BalancesResponseFromResult converts a use case result.
func BalancesResponseFromResult(r *usecase.BalancesResult) *BalancesResponse {
	return &BalancesResponse{
		Participants:    r.Participants,
		Balances:        BalancesFromDomain(r.Balances),
		TotalSpent:      Money(r.TotalSpent),
		SkippedExpenses: r.SkippedExpenses,
	}
}

// TransferResponse represents one payment in API responses.
type TransferResponse struct {
	From   string          `json:"from"`
	To     string          `json:"to"`
	Amount decimal.Decimal `json:"amount"`
}

// TransfersFromDomain converts domain transfers to responses.
func TransfersFromDomain(transfers []domain.Transfer) []TransferResponse {
	result := make([]TransferResponse, len(transfers))
	for i, t := range transfers {
		result[i] = TransferResponse{From: t.From, To: t.To, Amount: Money(t.Amount)}
	}
	return result
}

// SettlementResponse represents a settlement run in API responses.
type SettlementResponse struct {
	ID              string             `json:"id"`
	Participants    []string           `json:"participants"`
	Balances        []BalanceResponse  `json:"balances"`
	Transfers       []TransferResponse `json:"transfers"`
	TransferCount   int                `json:"transfer_count"`
	Settled         bool               `json:"settled"`
	TotalSpent      decimal.Decimal    `json:"total_spent"`
	SkippedExpenses int                `json:"skipped_expenses"`
	ComputedAt      time.Time          `json:"computed_at"`
}

// SettlementFromResult converts a use case result.
func SettlementFromResult(r *usecase.SettlementResult) *SettlementResponse {
	return &SettlementResponse{
		ID:              r.ID,
		Participants:    r.Participants,
		Balances:        BalancesFromDomain(r.Balances),
		Transfers:       TransfersFromDomain(r.Transfers),
		TransferCount:   len(r.Transfers),
		Settled:         r.Settled(),
		TotalSpent:      Money(r.TotalSpent),
		SkippedExpenses: r.SkippedExpenses,
		ComputedAt:      r.ComputedAt,
	}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
