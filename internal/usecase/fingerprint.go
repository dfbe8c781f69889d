package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/iho/splitledger/internal/domain"
)

// Fingerprint identifies the settlement inputs of an expense snapshot.
// Descriptions do not take part in the computation and are left out.
func Fingerprint(expenses []domain.Expense, tolerance float64) string {
	h := sha256.New()

	fmt.Fprintf(h, "tolerance=%s\n", strconv.FormatFloat(tolerance, 'g', -1, 64))
	for _, expense := range expenses {
		fmt.Fprintf(h, "%q %s %q\n",
			expense.Payer,
			strconv.FormatFloat(expense.Amount, 'g', -1, 64),
			expense.Excluded.Names(),
		)
	}

	return hex.EncodeToString(h.Sum(nil))
}
