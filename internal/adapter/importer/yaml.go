package importer

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/iho/splitledger/internal/domain"
)

type yamlSheet struct {
	Expenses []yamlExpense `yaml:"expenses"`
}

type yamlExpense struct {
	Payer       string   `yaml:"payer"`
	Amount      string   `yaml:"amount"`
	Description string   `yaml:"description"`
	Except      string   `yaml:"except"`
	Excluded    []string `yaml:"excluded"`
}

func readYAML(r io.Reader) ([]domain.Expense, error) {
	var sheet yamlSheet
	if err := yaml.NewDecoder(r).Decode(&sheet); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	expenses := make([]domain.Expense, 0, len(sheet.Expenses))
	for i, e := range sheet.Expenses {
		if e.isBlank() {
			continue
		}

		amount, err := parseAmount(e.Amount)
		if err != nil {
			return nil, fmt.Errorf("expense %d: %w", i+1, err)
		}

		expenses = append(expenses, domain.Expense{
			Payer:       strings.TrimSpace(e.Payer),
			Amount:      amount,
			Description: strings.TrimSpace(e.Description),
			Excluded:    domain.NewExclusionSet(e.Excluded...).Union(domain.ParseExclusions(e.Except)),
		})
	}

	return expenses, nil
}

func (e yamlExpense) isBlank() bool {
	return strings.TrimSpace(e.Payer) == "" &&
		strings.TrimSpace(e.Amount) == "" &&
		strings.TrimSpace(e.Description) == "" &&
		strings.TrimSpace(e.Except) == "" &&
		len(e.Excluded) == 0
}
