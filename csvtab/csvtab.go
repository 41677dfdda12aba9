// Package csvtab reads the small line-oriented tables used to load leap
// second and earth orientation data.
//
// Tables are comma separated, one record per line. Blank lines and lines
// starting with '#' are skipped. Fields are trimmed of surrounding space.
package csvtab

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/subtlepseudonym/astrotime/sentinel"
)

// FormatError reports a row that cannot be parsed: wrong column count or
// an unparsable field.
type FormatError struct {
	Source string
	Line   int
	Msg    string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s: line %d: %s", e.Source, e.Line, e.Msg)
}

func (e *FormatError) Unwrap() error { return sentinel.ErrCsvFormat }

// StructuralError reports a row that parses but violates the table's
// ordering or uniqueness rules.
type StructuralError struct {
	Source string
	Line   int
	Msg    string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("%s: line %d: %s", e.Source, e.Line, e.Msg)
}

func (e *StructuralError) Unwrap() error { return sentinel.ErrCsvStructural }

// Formatf builds a FormatError.
func Formatf(source string, line int, format string, args ...interface{}) error {
	return &FormatError{Source: source, Line: line, Msg: fmt.Sprintf(format, args...)}
}

// Structuralf builds a StructuralError.
func Structuralf(source string, line int, format string, args ...interface{}) error {
	return &StructuralError{Source: source, Line: line, Msg: fmt.Sprintf(format, args...)}
}

// Scan reads every data row of r and hands it to fn along with its 1-based
// line number. Scanning stops at the first error returned by fn. Errors
// from the underlying reader that are not syntax errors are returned as-is.
func Scan(r io.Reader, source string, fn func(line int, fields []string) error) error {
	reader := csv.NewReader(r)
	reader.Comment = '#'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	for {
		record, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				return Formatf(source, parseErr.Line, "%s", parseErr.Err)
			}
			return fmt.Errorf("read %s: %w", source, err)
		}

		line, _ := reader.FieldPos(0)
		if isBlank(record) {
			continue
		}

		for i := range record {
			record[i] = strings.TrimSpace(record[i])
		}

		if err := fn(line, record); err != nil {
			return err
		}
	}
}

// isBlank catches whitespace-only lines, which encoding/csv reports as a
// single empty field.
func isBlank(record []string) bool {
	return len(record) == 1 && strings.TrimSpace(record[0]) == ""
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTime parses an ISO 8601 timestamp or date. Values without a zone
// are read as UTC. The result is always in UTC.
func ParseTime(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("parse time %q: unrecognized format", s)
}
