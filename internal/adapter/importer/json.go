package importer

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/iho/splitledger/internal/adapter/http/dto"
	"github.com/iho/splitledger/internal/domain"
)

// readJSON reads the same document the HTTP API accepts.
func readJSON(r io.Reader) ([]domain.Expense, error) {
	var req dto.SettleRequest
	if err := json.NewDecoder(r).Decode(&req); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	expenses := make([]domain.Expense, 0, len(req.Expenses))
	for i, e := range req.Expenses {
		if isBlankRequest(e) {
			continue
		}

		expense, err := e.ToDomain()
		if err != nil {
			return nil, fmt.Errorf("expense %d: %w", i+1, err)
		}
		expenses = append(expenses, expense)
	}

	return expenses, nil
}

func isBlankRequest(e dto.ExpenseRequest) bool {
	return strings.TrimSpace(e.Payer) == "" &&
		e.Amount == nil &&
		strings.TrimSpace(e.Description) == "" &&
		strings.TrimSpace(e.Except) == "" &&
		len(e.Excluded) == 0
}
