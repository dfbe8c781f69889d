package handler

import (
	"context"
	"net/http"

	"github.com/iho/splitledger/internal/adapter/http/dto"
	"github.com/iho/splitledger/internal/domain"
	"github.com/iho/splitledger/internal/usecase"
)

// CacheHeader reports whether a settlement was served from cache.
const CacheHeader = "X-Cache"

// SettlementService defines the settlement operations the handler needs.
type SettlementService interface {
	ResolveParticipants(ctx context.Context, expenses []domain.Expense) ([]string, error)
	CalculateBalances(ctx context.Context, expenses []domain.Expense) (*usecase.BalancesResult, error)
	Settle(ctx context.Context, input usecase.SettleInput) (*usecase.SettlementResult, error)
}

// SettlementHandler handles expense sheet requests.
type SettlementHandler struct {
	settlementUC SettlementService
}

// NewSettlementHandler creates a new SettlementHandler.
func NewSettlementHandler(settlementUC SettlementService) *SettlementHandler {
	return &SettlementHandler{settlementUC: settlementUC}
}

// Participants lists everyone named in the sheet.
func (h *SettlementHandler) Participants(w http.ResponseWriter, r *http.Request) {
	var req dto.SettleRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	expenses, err := req.ToDomain()
	if err != nil {
		writeDomainError(w, r, "invalid expense sheet", err)
		return
	}

	participants, err := h.settlementUC.ResolveParticipants(r.Context(), expenses)
	if err != nil {
		writeDomainError(w, r, "invalid expense sheet", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ParticipantsResponse{Participants: participants})
}

// Balances returns the net balance of every participant.
func (h *SettlementHandler) Balances(w http.ResponseWriter, r *http.Request) {
	var req dto.SettleRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	expenses, err := req.ToDomain()
	if err != nil {
		writeDomainError(w, r, "invalid expense sheet", err)
		return
	}

	result, err := h.settlementUC.CalculateBalances(r.Context(), expenses)
	if err != nil {
		writeDomainError(w, r, "invalid expense sheet", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.BalancesResponseFromResult(result))
}

// Settle computes the payments that settle the group.
func (h *SettlementHandler) Settle(w http.ResponseWriter, r *http.Request) {
	var req dto.SettleRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeDomainError(w, r, "invalid expense sheet", err)
		return
	}

	result, err := h.settlementUC.Settle(r.Context(), input)
	if err != nil {
		writeDomainError(w, r, "failed to settle expenses", err)
		return
	}

	if result.Cached {
		w.Header().Set(CacheHeader, "HIT")
	} else {
		w.Header().Set(CacheHeader, "MISS")
	}

	writeJSON(w, http.StatusOK, dto.SettlementFromResult(result))
}
