package excel

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/example/tvorets/pkg/models"
)

// ImportConfig defines the import configuration
type ImportConfig struct {
	FilePath            string // Path to the Excel or CSV file
	IDColumn            string // Column with the challenge id
	TraitColumn         string // Column with the trait key
	ComplexityColumn    string // Column with easy|medium|hard
	TitleUAColumn       string // Column with the Ukrainian title
	TitleENColumn       string // Column with the English title
	DescriptionUAColumn string // Column with the Ukrainian description
	DescriptionENColumn string // Column with the English description
	SheetName           string // Name of the sheet to import, empty means the first one
	StartRow            int    // The row to start importing from (1-based index)
}

// DefaultImportConfig returns the default import configuration:
// id, trait, complexity, title_ua, title_en, description_ua, description_en
func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		IDColumn:            "A",
		TraitColumn:         "B",
		ComplexityColumn:    "C",
		TitleUAColumn:       "D",
		TitleENColumn:       "E",
		DescriptionUAColumn: "F",
		DescriptionENColumn: "G",
		StartRow:            2, // By default, start from the second row (skip header)
	}
}

// ImportResult holds the result of an import operation
type ImportResult struct {
	TotalProcessed int
	Created        int
	Updated        int
	Skipped        int
	Errors         []string
	Definitions    []models.ChallengeDefinition
}

// ImportChallenges reads challenge definitions from an Excel or CSV file.
// Invalid rows are reported in Errors and skipped; a repeated id replaces the earlier row.
func ImportChallenges(config ImportConfig) (*ImportResult, error) {
	if strings.ToLower(filepath.Ext(config.FilePath)) == ".csv" {
		file, err := os.Open(config.FilePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open CSV file: %w", err)
		}
		defer file.Close()
		return ImportChallengesCSV(file, config)
	}

	f, err := excelize.OpenFile(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()
	return importFromExcel(f, config)
}

// ImportChallengesXLSX reads definitions from an xlsx stream
func ImportChallengesXLSX(r io.Reader, config ImportConfig) (*ImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()
	return importFromExcel(f, config)
}

func importFromExcel(f *excelize.File, config ImportConfig) (*ImportResult, error) {
	sheet := config.SheetName
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}

	b := newBuilder()
	for i, row := range rows {
		// Skip header rows
		if i < config.StartRow-1 {
			continue
		}
		b.add(row, config, i+1)
	}
	return b.result(), nil
}

// ImportChallengesCSV reads definitions from CSV in the same column layout
func ImportChallengesCSV(r io.Reader, config ImportConfig) (*ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // Allow variable number of fields
	reader.LazyQuotes = true

	b := newBuilder()
	rowNum := 0
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV: %w", err)
		}

		rowNum++
		if rowNum < config.StartRow {
			continue
		}
		b.add(row, config, rowNum)
	}
	return b.result(), nil
}

type builder struct {
	res   *ImportResult
	index map[string]int
}

func newBuilder() *builder {
	return &builder{
		res:   &ImportResult{Errors: make([]string, 0)},
		index: make(map[string]int),
	}
}

func (b *builder) add(row []string, config ImportConfig, rowNum int) {
	if isBlank(row) {
		return
	}
	b.res.TotalProcessed++

	def, err := parseRow(row, config)
	if err != nil {
		b.res.Skipped++
		b.res.Errors = append(b.res.Errors, fmt.Sprintf("Row %d: %v", rowNum, err))
		return
	}

	if i, ok := b.index[def.ID]; ok {
		b.res.Definitions[i] = def
		b.res.Updated++
		return
	}
	b.index[def.ID] = len(b.res.Definitions)
	b.res.Definitions = append(b.res.Definitions, def)
	b.res.Created++
}

func (b *builder) result() *ImportResult {
	return b.res
}

// parseRow validates a single row
func parseRow(row []string, config ImportConfig) (models.ChallengeDefinition, error) {
	cell := func(column string) string {
		if column == "" {
			return ""
		}
		if idx := columnToIndex(column); idx >= 0 && idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}

	def := models.ChallengeDefinition{
		ID:            cell(config.IDColumn),
		TitleUA:       cell(config.TitleUAColumn),
		TitleEN:       cell(config.TitleENColumn),
		DescriptionUA: cell(config.DescriptionUAColumn),
		DescriptionEN: cell(config.DescriptionENColumn),
		Complexity:    models.ParseComplexity(strings.ToLower(cell(config.ComplexityColumn))),
	}

	if def.ID == "" {
		return def, fmt.Errorf("id cannot be empty")
	}
	if def.TitleUA == "" && def.TitleEN == "" {
		return def, fmt.Errorf("challenge %s has no title", def.ID)
	}

	switch trait := strings.ToLower(cell(config.TraitColumn)); trait {
	case "", "none", "-":
		def.Trait = models.TraitNone
	default:
		def.Trait = models.ParseTrait(trait)
		if def.Trait == models.TraitNone {
			return def, fmt.Errorf("unknown trait %q", trait)
		}
	}
	return def, nil
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// Helper function to convert Excel column letter to index
func columnToIndex(column string) int {
	column = strings.ToUpper(column)
	index := 0
	for i := 0; i < len(column); i++ {
		if column[i] < 'A' || column[i] > 'Z' {
			return -1
		}
		index = index*26 + int(column[i]-'A'+1)
	}
	return index - 1
}
