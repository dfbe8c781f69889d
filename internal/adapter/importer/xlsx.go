package importer

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/iho/splitledger/internal/domain"
)

// readXLSX reads the first sheet of a workbook.
func readXLSX(r io.Reader) ([]domain.Expense, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	return readRows(rows)
}
