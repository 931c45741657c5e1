package excel

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/example/tvorets/pkg/models"
)

func TestColumnToIndex(t *testing.T) {
	assert.Equal(t, 0, columnToIndex("A"))
	assert.Equal(t, 6, columnToIndex("g"))
	assert.Equal(t, 26, columnToIndex("AA"))
	assert.Equal(t, -1, columnToIndex("1"))
}

func TestImportChallengesCSV(t *testing.T) {
	data := strings.Join([]string{
		"id,trait,complexity,title_ua,title_en,description_ua,description_en",
		"c1,focus,medium,Фокус,Focus,Опис,Desc",
		"c2,,hard,,Only EN,,",
		"c3,bravery,easy,,Brave,,",
		",calm,easy,x,x,,",
		"c4,calm,easy,,,,",
		",,,,,,",
		"c1,Calm,weird,Спокій,Calm,,",
	}, "\n")

	res, err := ImportChallengesCSV(strings.NewReader(data), DefaultImportConfig())
	require.NoError(t, err)

	assert.Equal(t, 6, res.TotalProcessed)
	assert.Equal(t, 2, res.Created)
	assert.Equal(t, 1, res.Updated)
	assert.Equal(t, 3, res.Skipped)
	require.Len(t, res.Errors, 3)
	assert.Contains(t, res.Errors[0], `Row 4: unknown trait "bravery"`)
	assert.Contains(t, res.Errors[1], "Row 5: id cannot be empty")
	assert.Contains(t, res.Errors[2], "Row 6: challenge c4 has no title")

	require.Len(t, res.Definitions, 2)
	assert.Equal(t, models.ChallengeDefinition{
		ID: "c1", Trait: models.TraitCalm, Complexity: models.ComplexityEasy,
		TitleUA: "Спокій", TitleEN: "Calm",
	}, res.Definitions[0])
	assert.Equal(t, models.TraitNone, res.Definitions[1].Trait)
	assert.Equal(t, models.ComplexityHard, res.Definitions[1].Complexity)
}

func TestCatalogRoundTripXLSX(t *testing.T) {
	defs := []models.ChallengeDefinition{
		{ID: "a", Trait: models.TraitFocus, Complexity: models.ComplexityEasy, TitleUA: "А", TitleEN: "A", DescriptionEN: "first"},
		{ID: "b", Complexity: models.ComplexityMedium, TitleEN: "B"},
		{ID: "c", Trait: models.TraitEmpathy, Complexity: models.ComplexityHard, TitleUA: "В"},
	}
	path := filepath.Join(t.TempDir(), "catalog.xlsx")
	require.NoError(t, ExportCatalog(defs, path))

	cfg := DefaultImportConfig()
	cfg.FilePath = path
	res, err := ImportChallenges(cfg)
	require.NoError(t, err)
	assert.Empty(t, res.Errors)
	assert.Equal(t, defs, res.Definitions)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	res, err = ImportChallengesXLSX(bytes.NewReader(raw), cfg)
	require.NoError(t, err)
	assert.Len(t, res.Definitions, 3)
}

func TestImportChallengesMissingFile(t *testing.T) {
	cfg := DefaultImportConfig()
	cfg.FilePath = filepath.Join(t.TempDir(), "nope.csv")
	_, err := ImportChallenges(cfg)
	assert.ErrorContains(t, err, "failed to open CSV file")

	cfg.FilePath = filepath.Join(t.TempDir(), "nope.xlsx")
	_, err = ImportChallenges(cfg)
	assert.ErrorContains(t, err, "failed to open Excel file")
}

func TestExportJournal(t *testing.T) {
	entries := []models.JournalEntry{
		{ID: "j_2", CreatedAt: "2024-05-10T21:00:00Z", Title: "Hard day", Text: "tired", Source: models.SourceBadDay, Mood: models.MoodLow},
		{ID: "j_1", CreatedAt: "2024-05-10T09:00:00Z", Title: "Note", Text: "hi", Source: models.SourceNote},
	}
	path := filepath.Join(t.TempDir(), "journal.xlsx")
	require.NoError(t, ExportJournal(entries, path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(exportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"id", "created_at", "source", "mood", "title", "text"}, rows[0])
	assert.Equal(t, []string{"j_2", "2024-05-10T21:00:00Z", "bad_day", "low", "Hard day", "tired"}, rows[1])
	assert.Equal(t, "j_1", rows[2][0])

	var buf bytes.Buffer
	require.NoError(t, WriteJournal(entries, &buf))
	assert.NotZero(t, buf.Len())
}
