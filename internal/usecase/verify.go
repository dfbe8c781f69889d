package usecase

import (
	"fmt"
	"math"

	"github.com/iho/splitledger/internal/domain"
	"github.com/iho/splitledger/internal/settlement"
)

// Verify checks that balances sum to zero and that paying out transfers
// leaves every participant within tolerance of zero.
func Verify(balances domain.Balances, transfers []domain.Transfer, tolerance float64) error {
	if sum := balances.Sum(); math.Abs(sum) > tolerance {
		return fmt.Errorf("%w: balances sum to %.4f", domain.ErrSettlementMismatch, sum)
	}

	residual := settlement.Apply(balances, transfers)
	for _, name := range residual.Names() {
		if math.Abs(residual[name]) > tolerance {
			return fmt.Errorf("%w: %s left with %.4f", domain.ErrSettlementMismatch, name, residual[name])
		}
	}

	return nil
}
