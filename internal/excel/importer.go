package excel

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/example/vocabbot/internal/database"
	"github.com/example/vocabbot/pkg/models"
)

// ImportConfig defines the import configuration
type ImportConfig struct {
	FilePath         string // Path to the Excel or CSV file
	WordColumn       string // Column with the headword
	CategoryColumn   string // Column with the category name
	VietnameseColumn string // Column with the Vietnamese prompt
	SentencesColumn  string // Column with the acceptable sentences, "||"-separated
	GrammarColumn    string // Column with the grammar note
	SheetName        string // Name of the sheet to import
	StartRow         int    // The row to start importing from (1-based index)
}

// DefaultImportConfig returns the default import configuration
func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		WordColumn:       "A",
		CategoryColumn:   "B",
		VietnameseColumn: "C",
		SentencesColumn:  "D",
		GrammarColumn:    "E",
		SheetName:        "Sheet1",
		StartRow:         2, // By default, start from the second row (skip header)
	}
}

// ImportResult holds the result of an import operation
type ImportResult struct {
	TotalProcessed int
	Created        int
	Updated        int
	Skipped        int
	Errors         []string
}

// ImportVocabularies imports vocabulary rows from an Excel or CSV file.
func ImportVocabularies(config ImportConfig) (*ImportResult, error) {
	ext := strings.ToLower(filepath.Ext(config.FilePath))
	if ext == ".csv" {
		return importFromCSV(config)
	}
	return importFromExcel(config)
}

// importFromExcel imports vocabulary rows from an Excel file
func importFromExcel(config ImportConfig) (*ImportResult, error) {
	f, err := excelize.OpenFile(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(config.SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %v", err)
	}

	result := &ImportResult{Errors: make([]string, 0)}
	for i, row := range rows {
		if i < config.StartRow-1 {
			continue
		}
		result.TotalProcessed++
		if err := processRow(row, config, result); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", i+1, err))
		}
	}
	return result, nil
}

// importFromCSV imports vocabulary rows from a CSV file
func importFromCSV(config ImportConfig) (*ImportResult, error) {
	file, err := os.Open(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %v", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // Allow variable number of fields
	reader.LazyQuotes = true

	result := &ImportResult{Errors: make([]string, 0)}
	rowNum := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV: %v", err)
		}
		rowNum++
		if rowNum < config.StartRow {
			continue
		}
		result.TotalProcessed++
		if err := processRow(row, config, result); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", rowNum, err))
		}
	}
	return result, nil
}

// processRow turns one spreadsheet row into a vocabulary item plus its
// example. Existing items (same word and category) get the example appended
// instead of a duplicate headword.
func processRow(row []string, config ImportConfig, result *ImportResult) error {
	word := strings.TrimSpace(cell(row, config.WordColumn))
	if word == "" {
		result.Skipped++
		return nil
	}

	category, ok := models.ParseCategory(cell(row, config.CategoryColumn))
	if !ok {
		category = models.CategoryGeneral
	}

	sentences := splitSentences(cell(row, config.SentencesColumn))
	if len(sentences) == 0 {
		result.Skipped++
		return nil
	}

	vocabRepo := database.NewVocabularyRepository()
	exampleRepo := database.NewExampleRepository()

	item, err := vocabRepo.FindByWord(word, category)
	if err != nil {
		return err
	}
	if item == nil {
		item = &models.Vocabulary{Word: word, Category: category}
		if err := vocabRepo.Create(item); err != nil {
			return err
		}
		result.Created++
	} else {
		result.Updated++
	}

	example := &models.Example{
		VocabularyID: item.ID,
		RawSentences: models.JoinSentences(sentences),
		Vietnamese:   strings.TrimSpace(cell(row, config.VietnameseColumn)),
		Grammar:      strings.TrimSpace(cell(row, config.GrammarColumn)),
	}
	return exampleRepo.Create(example)
}

// splitSentences breaks a "||"-separated cell into individual sentences.
func splitSentences(raw string) []string {
	parts := strings.Split(raw, "||")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// cell reads a column (by its Excel letter) from a row, tolerating short rows.
func cell(row []string, column string) string {
	idx := columnIndex(column)
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// columnIndex converts an Excel column letter ("A".."Z", "AA"..) to a
// zero-based index. Unknown input yields -1.
func columnIndex(column string) int {
	column = strings.ToUpper(strings.TrimSpace(column))
	if column == "" {
		return -1
	}
	idx := 0
	for _, r := range column {
		if r < 'A' || r > 'Z' {
			return -1
		}
		idx = idx*26 + int(r-'A') + 1
	}
	return idx - 1
}
