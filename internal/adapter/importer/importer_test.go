package importer

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/iho/splitledger/internal/domain"
)

const scenarioACSV = `payer,amount,description,except
Alice,300,hotel,
Bob,0,nothing,
`

const scenarioAYAML = `expenses:
  - payer: Alice
    amount: 300
    description: hotel
  - payer: Bob
    amount: "0"
    description: nothing
`

const scenarioAJSON = `{"expenses":[
  {"payer":"Alice","amount":"300","description":"hotel"},
  {"payer":"Bob","amount":0,"description":"nothing"}
]}`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func writeWorkbook(t *testing.T, name string, rows [][]any) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cellName, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cellName, &row))
	}

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, f.SaveAs(path))
	return path
}

func assertScenarioA(t *testing.T, expenses []domain.Expense) {
	t.Helper()

	require.Len(t, expenses, 2)
	assert.Equal(t, "Alice", expenses[0].Payer)
	assert.Equal(t, 300.0, expenses[0].Amount)
	assert.Equal(t, "hotel", expenses[0].Description)
	assert.Empty(t, expenses[0].Excluded)
	assert.Equal(t, "Bob", expenses[1].Payer)
	assert.Equal(t, 0.0, expenses[1].Amount)
}

func TestLoad_ScenarioAFromEveryFormat(t *testing.T) {
	paths := map[string]string{
		"csv":  writeFile(t, "trip.csv", scenarioACSV),
		"yaml": writeFile(t, "trip.yaml", scenarioAYAML),
		"yml":  writeFile(t, "trip.yml", scenarioAYAML),
		"json": writeFile(t, "trip.json", scenarioAJSON),
		"xlsx": writeWorkbook(t, "trip.xlsx", [][]any{
			{"payer", "amount", "description", "except"},
			{"Alice", 300, "hotel", ""},
			{"Bob", 0, "nothing", ""},
		}),
	}

	for name, path := range paths {
		t.Run(name, func(t *testing.T) {
			expenses, err := Load(path)
			require.NoError(t, err)
			assertScenarioA(t, expenses)
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"trip.yaml", FormatYAML, false},
		{"trip.YML", FormatYAML, false},
		{"trip.json", FormatJSON, false},
		{"/tmp/trip.CSV", FormatCSV, false},
		{"trip.xlsx", FormatXLSX, false},
		{"trip.xls", "", true},
		{"trip", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatFromPath(tt.path)
			if tt.wantErr {
				require.ErrorIs(t, err, domain.ErrUnsupportedSheet)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadCSV_HeaderAliasesAndOrder(t *testing.T) {
	sheet := `For what,Except (comma-separated),Amount,Who paid
dinner,"C, D",90,A
,,,
taxi,,12.50,B
`

	expenses, err := Read(FormatCSV, strings.NewReader(sheet))
	require.NoError(t, err)
	require.Len(t, expenses, 2, "blank row is dropped")

	assert.Equal(t, "A", expenses[0].Payer)
	assert.Equal(t, 90.0, expenses[0].Amount)
	assert.Equal(t, "dinner", expenses[0].Description)
	assert.Equal(t, []string{"C", "D"}, expenses[0].Excluded.Names())

	assert.Equal(t, "B", expenses[1].Payer)
	assert.Equal(t, 12.5, expenses[1].Amount)
}

func TestReadCSV_RowWithoutPayerIsKept(t *testing.T) {
	sheet := "payer,amount\n,25\n"

	expenses, err := Read(FormatCSV, strings.NewReader(sheet))
	require.NoError(t, err)
	require.Len(t, expenses, 1)
	assert.Empty(t, expenses[0].Payer)
	assert.ErrorIs(t, domain.ValidateExpenses(expenses, 0), domain.ErrEmptyPayer)
}

func TestReadCSV_Errors(t *testing.T) {
	tests := []struct {
		name    string
		sheet   string
		wantErr error
		wantMsg string
	}{
		{"missing amount column", "payer,description\nAlice,hotel\n", ErrMissingColumn, "amount"},
		{"missing payer column", "amount\n10\n", ErrMissingColumn, "payer"},
		{"malformed amount", "payer,amount\nAlice,10\nBob,ten\n", domain.ErrInvalidAmount, "row 3"},
		{"empty amount", "payer,amount\nAlice,\n", domain.ErrInvalidAmount, "row 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(FormatCSV, strings.NewReader(tt.sheet))
			require.ErrorIs(t, err, tt.wantErr)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestReadCSV_EmptyFile(t *testing.T) {
	expenses, err := Read(FormatCSV, strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, expenses)
}

func TestReadYAML_MergesExclusionForms(t *testing.T) {
	sheet := `expenses:
  - payer: " A "
    amount: 90.5
    except: "C"
    excluded: [D]
  - {}
`

	expenses, err := Read(FormatYAML, strings.NewReader(sheet))
	require.NoError(t, err)
	require.Len(t, expenses, 1)
	assert.Equal(t, "A", expenses[0].Payer)
	assert.Equal(t, 90.5, expenses[0].Amount)
	assert.Equal(t, []string{"C", "D"}, expenses[0].Excluded.Names())
}

func TestReadYAML_Errors(t *testing.T) {
	_, err := Read(FormatYAML, strings.NewReader("expenses:\n  - payer: A\n    amount: lots\n"))
	require.ErrorIs(t, err, domain.ErrInvalidAmount)
	assert.Contains(t, err.Error(), "expense 1")

	_, err = Read(FormatYAML, strings.NewReader("expenses: [unterminated"))
	require.Error(t, err)
}

func TestReadYAML_EmptyDocument(t *testing.T) {
	expenses, err := Read(FormatYAML, strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, expenses)
}

func TestReadJSON_DropsBlankEntries(t *testing.T) {
	expenses, err := Read(FormatJSON, strings.NewReader(`{"expenses":[{},{"payer":"A","amount":"5","except":"B"}]}`))
	require.NoError(t, err)
	require.Len(t, expenses, 1)
	assert.True(t, expenses[0].Excluded.Contains("B"))
}

func TestReadJSON_RequiresAmount(t *testing.T) {
	for _, body := range []string{
		`{"expenses":[{"payer":"Alice","description":"hotel"},{"payer":"Bob","amount":"50"}]}`,
		`{"expenses":[{"payer":"Alice","amount":null},{"payer":"Bob","amount":"50"}]}`,
	} {
		_, err := Read(FormatJSON, strings.NewReader(body))
		require.ErrorIs(t, err, domain.ErrInvalidAmount, body)
		assert.Contains(t, err.Error(), "expense 1")
	}
}

func TestReadXLSX_NamesMalformedRow(t *testing.T) {
	path := writeWorkbook(t, "bad.xlsx", [][]any{
		{"Who paid", "Amount"},
		{"Alice", 10},
		{},
		{"Bob", "ten"},
	})

	_, err := Load(path)
	require.ErrorIs(t, err, domain.ErrInvalidAmount)
	assert.Contains(t, err.Error(), "row 4")
}

func TestRead_UnknownFormat(t *testing.T) {
	_, err := Read(Format("toml"), strings.NewReader(""))
	assert.True(t, errors.Is(err, domain.ErrUnsupportedSheet))
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.csv"))
	require.Error(t, err)
}
