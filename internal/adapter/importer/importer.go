// Package importer reads expense sheets from YAML, JSON, CSV and XLSX files.
package importer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/iho/splitledger/internal/domain"
)

// Format is an expense sheet encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".csv":
		return FormatCSV, nil
	case ".xlsx":
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedSheet, filepath.Ext(path))
	}
}

// Load reads the expense sheet at path.
func Load(path string) ([]domain.Expense, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open expense sheet: %w", err)
	}
	defer f.Close()

	expenses, err := Read(format, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}

	return expenses, nil
}

// Read decodes an expense sheet in the given format. Blank rows are dropped;
// everything else is returned for validation by the caller.
func Read(format Format, r io.Reader) ([]domain.Expense, error) {
	switch format {
	case FormatYAML:
		return readYAML(r)
	case FormatJSON:
		return readJSON(r)
	case FormatCSV:
		return readCSV(r)
	case FormatXLSX:
		return readXLSX(r)
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedSheet, format)
	}
}
