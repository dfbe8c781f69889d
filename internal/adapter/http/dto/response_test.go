package dto

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/iho/splitledger/internal/domain"
	"github.com/iho/splitledger/internal/usecase"
)

func TestMoneyRoundsToCents(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{150, "150"},
		{33.333333, "33.33"},
		{-66.666667, "-66.67"},
		{0.004, "0"},
	}

	for _, tt := range tests {
		if got := Money(tt.in).String(); got != tt.want {
			t.Fatalf("Money(%v) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestSettlementFromResult(t *testing.T) {
	computedAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	result := &usecase.SettlementResult{
		ID:           "run-1",
		Participants: []string{"Alice", "Bob"},
		Balances:     domain.Balances{"Bob": -150, "Alice": 150},
		Transfers:    []domain.Transfer{{From: "Bob", To: "Alice", Amount: 150}},
		TotalSpent:   300,
		ComputedAt:   computedAt,
	}

	resp := SettlementFromResult(result)

	if resp.ID != "run-1" || resp.TransferCount != 1 || resp.Settled {
		t.Fatalf("unexpected response header fields: %+v", resp)
	}
	if resp.Balances[0].Participant != "Alice" || resp.Balances[1].Participant != "Bob" {
		t.Fatalf("expected balances in participant order, got %+v", resp.Balances)
	}
	if resp.Transfers[0].From != "Bob" || resp.Transfers[0].To != "Alice" || resp.Transfers[0].Amount.String() != "150" {
		t.Fatalf("unexpected transfer: %+v", resp.Transfers[0])
	}

	body, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	for _, want := range []string{`"transfer_count":1`, `"settled":false`, `"amount":"150"`, `"total_spent":"300"`} {
		if !strings.Contains(string(body), want) {
			t.Fatalf("expected %s in %s", want, body)
		}
	}
}

func TestSettlementFromResult_Settled(t *testing.T) {
	resp := SettlementFromResult(&usecase.SettlementResult{
		Participants: []string{},
		Balances:     domain.Balances{},
		Transfers:    []domain.Transfer{},
	})

	if !resp.Settled || resp.TransferCount != 0 {
		t.Fatalf("expected settled response, got %+v", resp)
	}

	body, _ := json.Marshal(resp)
	if !strings.Contains(string(body), `"transfers":[]`) {
		t.Fatalf("expected empty transfer list to encode as [], got %s", body)
	}
}

func TestBalancesResponseFromResult(t *testing.T) {
	resp := BalancesResponseFromResult(&usecase.BalancesResult{
		Participants:    []string{"A", "B", "C"},
		Balances:        domain.Balances{"A": 60, "B": -30, "C": -30},
		TotalSpent:      90,
		SkippedExpenses: 1,
	})

	if len(resp.Balances) != 3 || resp.Balances[0].Balance.String() != "60" {
		t.Fatalf("unexpected balances: %+v", resp.Balances)
	}
	if resp.TotalSpent.String() != "90" || resp.SkippedExpenses != 1 {
		t.Fatalf("unexpected totals: %+v", resp)
	}
}
