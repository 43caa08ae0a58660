// Package rosterfile parses roster spreadsheets into ordered row maps and
// renders enrollment and row-error exports back to CSV.
// Pure functions: bytes in, rows out. No database dependencies.
package rosterfile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/classworks/lms-backend/internal/domain"
)

// Recognized roster columns. student_id is the only required one.
const (
	ColStudentID   = "student_id"
	ColStudentName = "student_name"
	ColEmail       = "email"
	ColUniversity  = "university"
	ColExternalID  = "external_id"
)

// Row is one data row of the input file. Number is 1-based over data rows
// (the header is row 0). Fields is nil when the row could not be read at all;
// such rows still count toward the batch total.
type Row struct {
	Number int
	Fields map[string]string
}

// Table is the parsed input: the header columns in file order plus all data
// rows, malformed ones included.
type Table struct {
	Columns []string
	Rows    []Row
}

// Parse reads CSV-like tabular text, auto-detecting the delimiter from the
// header line. Header names are trimmed and lowercased; cell values are
// trimmed. A missing or empty header wraps domain.ErrFormat; malformed data
// rows are returned with nil Fields so the caller can reject them per-row
// instead of aborting the batch.
func Parse(r io.Reader) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	text := strings.TrimPrefix(string(data), "\uFEFF")
	if !utf8.ValidString(text) {
		return nil, fmt.Errorf("input is not valid UTF-8: %w", domain.ErrFormat)
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("empty input: %w", domain.ErrFormat)
	}

	headerLine, _, _ := strings.Cut(text, "\n")
	delim := detectDelimiter(headerLine)

	reader := csv.NewReader(strings.NewReader(text))
	reader.Comma = delim
	reader.FieldsPerRecord = -1 // allow variable column count
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %v: %w", err, domain.ErrFormat)
	}

	columns := make([]string, 0, len(header))
	for _, col := range header {
		columns = append(columns, strings.ToLower(strings.TrimSpace(col)))
	}
	if len(columns) == 0 || (len(columns) == 1 && columns[0] == "") {
		return nil, fmt.Errorf("header has no columns: %w", domain.ErrFormat)
	}

	table := &Table{Columns: columns}
	number := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		number++
		if err != nil {
			// Malformed row: counted, rejected later, never fatal.
			table.Rows = append(table.Rows, Row{Number: number})
			continue
		}

		fields := make(map[string]string, len(columns))
		for i, col := range columns {
			if col == "" {
				continue
			}
			if i < len(record) {
				fields[col] = strings.TrimSpace(record[i])
			} else {
				fields[col] = ""
			}
		}
		table.Rows = append(table.Rows, Row{Number: number, Fields: fields})
	}

	return table, nil
}

// detectDelimiter picks the delimiter with the highest count in the header
// line sample. Comma wins ties.
func detectDelimiter(headerLine string) rune {
	best, bestCount := ',', strings.Count(headerLine, ",")
	for _, cand := range []rune{';', '\t'} {
		if n := strings.Count(headerLine, string(cand)); n > bestCount {
			best, bestCount = cand, n
		}
	}
	return best
}

// IsEmpty reports whether every field of the row is blank.
func (r Row) IsEmpty() bool {
	for _, v := range r.Fields {
		if v != "" {
			return false
		}
	}
	return true
}
