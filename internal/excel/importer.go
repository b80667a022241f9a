package excel

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/example/aihub/pkg/models"
	"github.com/go-playground/validator/v10"
	"github.com/xuri/excelize/v2"
)

// ErrUnreadable is returned when the input is not a readable CSV file or
// Excel workbook.
var ErrUnreadable = errors.New("unreadable spreadsheet")

// ImportConfig defines the import configuration
type ImportConfig struct {
	DateColumn    string // Column with the date, YYYY-MM-DD
	IndexColumn   string // Column with the item number, 1-3
	TitleColumn   string // Column with the title
	ContentColumn string // Column with the content
	TermsColumn   string // Column with "term: description" pairs separated by ';'
	SheetName     string // Name of the sheet to import; empty means the first sheet
	StartRow      int    // The row to start importing from (1-based index)
}

// DefaultImportConfig returns the default import configuration
func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		DateColumn:    "A",
		IndexColumn:   "B",
		TitleColumn:   "C",
		ContentColumn: "D",
		TermsColumn:   "E",
		StartRow:      2, // By default, start from the second row (skip header)
	}
}

// ImportResult holds the result of an import operation
type ImportResult struct {
	TotalProcessed int      `json:"total_processed"`
	Imported       int      `json:"imported"`
	Skipped        int      `json:"skipped"`
	Errors         []string `json:"errors"`
}

// Saver stores one lesson item in its slot.
type Saver interface {
	Put(ctx context.Context, item *models.AIInfo) error
}

// Importer loads lesson items from spreadsheets.
type Importer struct {
	saver    Saver
	config   ImportConfig
	validate *validator.Validate
}

// lessonRow is one spreadsheet row after parsing.
type lessonRow struct {
	Date    string            `validate:"required,datetime=2006-01-02"`
	Index   int               `validate:"min=1,max=3"`
	Title   string            `validate:"required"`
	Content string            `validate:"required"`
	Terms   []models.TermItem `validate:"dive"`
}

// NewImporter creates an importer writing through saver.
func NewImporter(saver Saver, config ImportConfig) *Importer {
	if config.StartRow < 1 {
		config.StartRow = 1
	}
	return &Importer{saver: saver, config: config, validate: validator.New()}
}

// ImportFile imports lesson items from an Excel or CSV file
func (im *Importer) ImportFile(ctx context.Context, path string) (*ImportResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()
	return im.Import(ctx, f, filepath.Base(path))
}

// Import reads r as CSV when filename ends in .csv and as an Excel workbook
// otherwise. Bad rows are reported in the result and do not stop the import.
func (im *Importer) Import(ctx context.Context, r io.Reader, filename string) (*ImportResult, error) {
	var rows [][]string
	var err error
	if strings.EqualFold(filepath.Ext(filename), ".csv") {
		rows, err = readCSV(r)
	} else {
		rows, err = im.readExcel(r)
	}
	if err != nil {
		return nil, err
	}

	result := &ImportResult{Errors: make([]string, 0)}
	for i, row := range rows {
		rowNum := i + 1
		if rowNum < im.config.StartRow {
			continue
		}
		if blank(row) {
			result.Skipped++
			continue
		}
		result.TotalProcessed++

		item, err := im.parseRow(row)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", rowNum, err))
			continue
		}
		if err := im.saver.Put(ctx, item); err != nil {
			return result, fmt.Errorf("row %d: %w", rowNum, err)
		}
		result.Imported++
	}
	return result, nil
}

func (im *Importer) readExcel(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open Excel file: %v", ErrUnreadable, err)
	}
	defer f.Close()

	sheet := im.config.SheetName
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%w: workbook has no sheets", ErrUnreadable)
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get rows: %v", ErrUnreadable, err)
	}
	return rows, nil
}

func readCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // Allow variable number of fields
	reader.LazyQuotes = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: error reading CSV: %v", ErrUnreadable, err)
	}
	return rows, nil
}

func (im *Importer) parseRow(row []string) (*models.AIInfo, error) {
	cell := func(column string) string {
		if idx := columnToIndex(column); idx >= 0 && idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}

	index, err := strconv.Atoi(cell(im.config.IndexColumn))
	if err != nil {
		return nil, fmt.Errorf("item number %q is not a number", cell(im.config.IndexColumn))
	}
	terms, err := ParseTerms(cell(im.config.TermsColumn))
	if err != nil {
		return nil, err
	}
	parsed := lessonRow{
		Date:    cell(im.config.DateColumn),
		Index:   index,
		Title:   cell(im.config.TitleColumn),
		Content: cell(im.config.ContentColumn),
		Terms:   terms,
	}
	if err := im.validate.Struct(parsed); err != nil {
		return nil, describe(err)
	}
	return &models.AIInfo{
		Date:      parsed.Date,
		ItemIndex: parsed.Index - 1,
		Title:     parsed.Title,
		Content:   parsed.Content,
		Terms:     parsed.Terms,
	}, nil
}

// ParseTerms parses "term: description" pairs separated by ';'.
func ParseTerms(s string) ([]models.TermItem, error) {
	terms := []models.TermItem{}
	for _, pair := range strings.Split(s, ";") {
		if strings.TrimSpace(pair) == "" {
			continue
		}
		term, desc, ok := strings.Cut(pair, ":")
		term, desc = strings.TrimSpace(term), strings.TrimSpace(desc)
		if !ok || term == "" {
			return nil, fmt.Errorf("term %q is not in 'term: description' form", strings.TrimSpace(pair))
		}
		terms = append(terms, models.TermItem{Term: term, Description: desc})
	}
	return terms, nil
}

// describe turns validation errors into a short message naming the fields.
func describe(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s fails %s", strings.ToLower(fe.Field()), fe.Tag()))
	}
	return errors.New(strings.Join(msgs, ", "))
}

func blank(row []string) bool {
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
		index = index*26 + int(column[i]-'A'+1)
	}
	return index - 1
}
