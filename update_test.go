package godocx

import (
	"bytes"
	"errors"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateDocument(t *testing.T) {
	doc := loadDocx(t, paragraph("People")+table(
		[]string{"Name", "Age"},
		[]string{"{{NAME}}", "{{AGE}}"},
	))
	path := filepath.Join(t.TempDir(), "filled.docx")

	err := UpdateDocument(
		[]string{"{{NAME}}", "{{AGE}}"},
		[]Record{{"{{NAME}}": "Alice", "{{AGE}}": "30"}},
		doc, path)
	require.NoError(t, err)

	saved, err := OpenDocument(path)
	require.NoError(t, err)
	tables := saved.Tables()
	require.Len(t, tables, 1)
	rows := FindAll(tables[0], KindRow)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Name", "Age"}, textValues(rows[0]))
	assert.Equal(t, []string{"Alice", "30"}, textValues(rows[1]))
}

func TestUpdater_Fill(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		placeholders []string
		records      []Record
		wantTexts    []string
		wantStats    Stats
		wantTables   int
	}{
		{
			name:         "second table holds the placeholders",
			body:         table([]string{"static"}) + table([]string{"{{NAME}}"}, []string{"{{NAME}}", "{{AGE}}"}),
			placeholders: []string{"{{NAME}}", "{{AGE}}"},
			records:      []Record{{"{{NAME}}": "Bob", "{{AGE}}": "41"}},
			wantTexts:    []string{"static", "Bob", "Bob", "41"},
			wantStats:    Stats{Records: 1, Rows: 2, Replacements: 3},
			wantTables:   2,
		},
		{
			name:         "missing table",
			body:         paragraph("intro") + table([]string{"{{NAME}}"}),
			placeholders: []string{"{{MISSING}}"},
			records:      []Record{{"{{MISSING}}": "value"}},
			wantTexts:    []string{"intro", "{{NAME}}"},
			wantStats:    Stats{Records: 1, TablesCreated: 1},
			wantTables:   2,
		},
		{
			name:         "record after the first finds no placeholder left",
			body:         table([]string{"{{X}}"}),
			placeholders: []string{"{{X}}"},
			records:      []Record{{"{{X}}": "A"}, {"{{X}}": "B"}, {"{{X}}": "C"}},
			wantTexts:    []string{"A"},
			wantStats:    Stats{Records: 3, Rows: 1, Replacements: 1, TablesCreated: 2},
			wantTables:   3,
		},
		{
			name:         "reference placeholder written back by a record",
			body:         table([]string{"{{X}}", "{{Y}}"}),
			placeholders: []string{"{{X}}", "{{Y}}"},
			records:      []Record{{"{{X}}": "{{X}}", "{{Y}}": "1"}, {"{{X}}": "2", "{{Y}}": "ignored"}},
			wantTexts:    []string{"2", "1"},
			wantStats:    Stats{Records: 2, Rows: 2, Replacements: 3},
			wantTables:   1,
		},
		{
			name:         "no records",
			body:         table([]string{"{{X}}"}),
			placeholders: []string{"{{X}}"},
			wantTexts:    []string{"{{X}}"},
			wantTables:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := loadDocx(t, tt.body)

			stats, err := NewUpdater().Fill(doc, tt.placeholders, tt.records)
			require.NoError(t, err)

			assert.Equal(t, tt.wantStats, stats)
			assert.Equal(t, tt.wantTexts, textValues(doc.Body()))
			assert.Len(t, doc.Tables(), tt.wantTables)
		})
	}
}

func TestUpdater_Fill_LastWriteWinsWithinOneCall(t *testing.T) {
	doc := loadDocx(t, table([]string{"{{X}}"}))
	row := FindAll(doc.Tables()[0], KindRow)[0]

	Substitute(row, []Record{{"{{X}}": "A"}, {"{{X}}": "B"}}, []string{"{{X}}"})

	assert.Equal(t, []string{"B"}, textValues(doc.Body()))
}

func TestUpdater_Fill_TableAppendedPerUnmatchedRecord(t *testing.T) {
	doc := loadDocx(t, paragraph("no tables"))
	records := []Record{{"{{A}}": "1"}, {"{{A}}": "2"}, {"{{A}}": "3"}}

	stats, err := NewUpdater().Fill(doc, []string{"{{A}}"}, records)
	require.NoError(t, err)

	assert.Equal(t, 3, stats.TablesCreated)
	tables := doc.Tables()
	require.Len(t, tables, 3)
	for _, tbl := range tables {
		assert.True(t, IsEmptyTable(tbl))
	}
	assert.NotSame(t, tables[0], tables[1])
	assert.NotSame(t, tables[1], tables[2])

	children := doc.Body().ChildElements()
	require.Len(t, children, 5)
	assert.Equal(t, KindParagraph, KindOf(children[0]))
	for _, child := range children[1:4] {
		assert.Equal(t, KindTable, KindOf(child))
	}
	assert.Equal(t, KindSectionProperties, KindOf(children[4]))
}

func TestUpdater_Fill_NoPlaceholders(t *testing.T) {
	doc := loadDocx(t, table([]string{"{{X}}"}))

	_, err := NewUpdater().Fill(doc, nil, []Record{{"{{X}}": "A"}})

	assert.True(t, errors.Is(err, ErrNoPlaceholders))
	assert.Equal(t, []string{"{{X}}"}, textValues(doc.Body()))
}

func TestUpdater_Update_NothingWrittenOnError(t *testing.T) {
	doc := loadDocx(t, table([]string{"{{X}}"}))
	path := filepath.Join(t.TempDir(), "out.docx")

	_, err := NewUpdater().Update(nil, []Record{{"{{X}}": "A"}}, doc, path)
	require.Error(t, err)

	_, err = OpenDocument(path)
	var ioErr *IOError
	assert.True(t, errors.As(err, &ioErr))
}

func TestUpdater_Logging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	doc := loadDocx(t, table([]string{"{{NAME}}"}))

	u := NewUpdater(WithLogger(logger))
	_, err := u.Fill(doc, []string{"{{MISSING}}"}, []Record{{"{{MISSING}}": "x"}})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "placeholder={{MISSING}}")
	assert.Contains(t, out, "tables_created=1")
}

func TestWithLogger_Nil(t *testing.T) {
	u := NewUpdater(WithLogger(nil))
	require.NotNil(t, u.logger)
}
