package excel

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/example/aihub/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type memSaver struct {
	items []models.AIInfo
}

func (m *memSaver) Put(_ context.Context, item *models.AIInfo) error {
	m.items = append(m.items, *item)
	return nil
}

const lessonsCSV = `Date,Index,Title,Content,Terms
2024-01-01,1,LLM,Large language models,"token: unit of text; context window: tokens seen at once"
2024-01-01,2,RAG,Retrieval augmented generation,
,,,,
2024-13-01,1,Bad,Date,
2024-01-02,4,Bad,Index,
2024-01-02,x,Bad,Index,
2024-01-02,1,,No title,
2024-01-02,3,Agents,Tools,"broken pair"
`

func TestImport_CSV(t *testing.T) {
	saver := &memSaver{}
	res, err := NewImporter(saver, DefaultImportConfig()).Import(context.Background(), strings.NewReader(lessonsCSV), "lessons.csv")
	require.NoError(t, err)

	assert.Equal(t, 7, res.TotalProcessed)
	assert.Equal(t, 2, res.Imported)
	assert.Equal(t, 1, res.Skipped)
	require.Len(t, res.Errors, 5)
	assert.Contains(t, res.Errors[0], "Row 5")
	assert.Contains(t, res.Errors[0], "date fails datetime")
	assert.Contains(t, res.Errors[1], "index fails max")

	require.Len(t, saver.items, 2)
	assert.Equal(t, models.AIInfo{
		Date:      "2024-01-01",
		ItemIndex: 0,
		Title:     "LLM",
		Content:   "Large language models",
		Terms: []models.TermItem{
			{Term: "token", Description: "unit of text"},
			{Term: "context window", Description: "tokens seen at once"},
		},
	}, saver.items[0])
	assert.Equal(t, 1, saver.items[1].ItemIndex)
	assert.Empty(t, saver.items[1].Terms)
}

func TestImport_Excel(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"Date", "Index", "Title", "Content", "Terms"},
		{"2024-02-01", "3", "Agents", "Tool use", "agent: acts for a user"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	require.NoError(t, f.Close())

	saver := &memSaver{}
	res, err := NewImporter(saver, DefaultImportConfig()).Import(context.Background(), bytes.NewReader(buf.Bytes()), "lessons.xlsx")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Imported)
	assert.Empty(t, res.Errors)
	require.Len(t, saver.items, 1)
	assert.Equal(t, 2, saver.items[0].ItemIndex)
	assert.Equal(t, []models.TermItem{{Term: "agent", Description: "acts for a user"}}, saver.items[0].Terms)
}

func TestImport_NotAWorkbook(t *testing.T) {
	_, err := NewImporter(&memSaver{}, DefaultImportConfig()).Import(context.Background(), strings.NewReader("junk"), "lessons.xlsx")
	assert.ErrorIs(t, err, ErrUnreadable)
}

func TestParseTerms(t *testing.T) {
	terms, err := ParseTerms(" a: one ;; b:two: three ")
	require.NoError(t, err)
	assert.Equal(t, []models.TermItem{{Term: "a", Description: "one"}, {Term: "b", Description: "two: three"}}, terms)

	_, err = ParseTerms(": nameless")
	assert.Error(t, err)
}

func TestColumnToIndex(t *testing.T) {
	assert.Equal(t, 0, columnToIndex("A"))
	assert.Equal(t, 4, columnToIndex("e"))
	assert.Equal(t, 26, columnToIndex("AA"))
}
