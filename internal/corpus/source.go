package corpus

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// Row is one raw dataset row after column-alias resolution, before the
// validation applied by Load.
type Row struct {
	Question string
	Answer   string
	Tags     string
}

// Source yields raw dataset rows from some storage location. Implementations
// own the physical format; Load owns validation and filtering.
type Source interface {
	Rows(ctx context.Context) ([]Row, error)
}

// Column aliases accepted for each semantic field, in precedence order.
// The dataset has been exported by several generations of tooling and the
// header names drifted; all of these appear in the wild.
var (
	questionColumns = []string{"canonical_question", "Question"}
	answerColumns   = []string{"faq_answer", "short_answer", "Answer"}
	tagsColumns     = []string{"tags", "Tags"}
)

// CSVSource reads rows from a CSV file with a header line.
type CSVSource struct {
	path string
}

// NewCSVSource returns a Source reading the CSV file at path.
func NewCSVSource(path string) *CSVSource {
	return &CSVSource{path: path}
}

// Path returns the file path this source reads from.
func (s *CSVSource) Path() string { return s.path }

// Rows reads and parses the whole file. A missing or unreadable file, or one
// without a resolvable question/answer column, wraps ErrDataUnavailable.
func (s *CSVSource) Rows(ctx context.Context) ([]Row, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("corpus: %w: open %q: %v", ErrDataUnavailable, s.path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("corpus: %w: read header of %q: %v", ErrDataUnavailable, s.path, err)
	}
	if len(header) > 0 {
		// Excel exports prepend a UTF-8 BOM to the first header cell.
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}

	qCols := resolveColumns(header, questionColumns)
	aCols := resolveColumns(header, answerColumns)
	tCols := resolveColumns(header, tagsColumns)
	if len(qCols) == 0 || len(aCols) == 0 {
		return nil, fmt.Errorf("corpus: %w: %q has no recognizable question/answer columns (header %v)",
			ErrDataUnavailable, s.path, header)
	}

	var rows []Row
	for {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("corpus: read %q: %w", s.path, err)
		}

		fields, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("corpus: %w: parse %q: %v", ErrDataUnavailable, s.path, err)
		}

		row := Row{Question: cell(fields, qCols[0])}
		// Answer columns are tried in precedence order; the first non-empty
		// value wins. Older exports fill short_answer, newer ones faq_answer.
		for _, col := range aCols {
			if v := cell(fields, col); v != "" {
				row.Answer = v
				break
			}
		}
		if len(tCols) > 0 {
			row.Tags = cell(fields, tCols[0])
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// resolveColumns returns the indexes of every alias present in header, in
// alias precedence order.
func resolveColumns(header, aliases []string) []int {
	var idx []int
	for _, alias := range aliases {
		for i, name := range header {
			if strings.EqualFold(strings.TrimSpace(name), alias) {
				idx = append(idx, i)
				break
			}
		}
	}
	return idx
}

// cell returns the trimmed field at index i, tolerating ragged rows.
func cell(fields []string, i int) string {
	if i < 0 || i >= len(fields) {
		return ""
	}
	return strings.TrimSpace(fields[i])
}
