package importer

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/iho/splitledger/internal/domain"
)

func readCSV(r io.Reader) ([]domain.Expense, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	return readRows(rows)
}
