package excel

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/example/tvorets/pkg/models"
)

// exports keep the sheet excelize creates
const exportSheet = "Sheet1"

var (
	journalHeader = []any{"id", "created_at", "source", "mood", "title", "text"}
	catalogHeader = []any{"id", "trait", "complexity", "title_ua", "title_en", "description_ua", "description_en"}
)

// ExportJournal writes entries to an xlsx file, one row per entry
func ExportJournal(entries []models.JournalEntry, path string) error {
	f, err := journalWorkbook(entries)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save journal export: %w", err)
	}
	return nil
}

// WriteJournal streams the journal workbook to w
func WriteJournal(entries []models.JournalEntry, w io.Writer) error {
	f, err := journalWorkbook(entries)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write journal export: %w", err)
	}
	return nil
}

func journalWorkbook(entries []models.JournalEntry) (*excelize.File, error) {
	rows := make([][]any, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []any{e.ID, e.CreatedAt, string(e.Source), string(e.Mood), e.Title, e.Text})
	}
	return workbook(journalHeader, rows)
}

// ExportCatalog writes definitions in the layout ImportChallenges reads
func ExportCatalog(defs []models.ChallengeDefinition, path string) error {
	rows := make([][]any, 0, len(defs))
	for _, d := range defs {
		trait := ""
		if d.Trait != models.TraitNone {
			trait = string(d.Trait)
		}
		rows = append(rows, []any{d.ID, trait, string(d.Complexity), d.TitleUA, d.TitleEN, d.DescriptionUA, d.DescriptionEN})
	}

	f, err := workbook(catalogHeader, rows)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save catalog export: %w", err)
	}
	return nil
}

func workbook(header []any, rows [][]any) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetRow(exportSheet, "A1", &header); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			f.Close()
			return nil, err
		}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}
	return f, nil
}
