package leap

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/subtlepseudonym/astrotime/csvtab"
)

// LoadFile reads a leap second table from path. See Parse for the format.
func LoadFile(path string) (*Table, error) {
	if path == "" {
		return nil, fmt.Errorf("load leap second file: empty path")
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open leap second file: %w", err)
	}
	defer f.Close()

	source, err := filepath.Abs(path)
	if err != nil {
		source = path
	}

	return Parse(f, source)
}

// Parse reads a leap second table of the form
//
//	# ISO8601_UTC,TAI_MINUS_UTC
//	1972-07-01T00:00:00Z,11
//	2017-01-01T00:00:00Z,37
//
// Each timestamp is the UTC instant the new cumulative offset takes
// effect. Rows must be strictly ascending. The first row's offset also
// applies to every instant before it.
func Parse(r io.Reader, source string) (*Table, error) {
	var entries []Entry
	lines := make([]int, 0, 32)

	err := csvtab.Scan(r, source, func(line int, fields []string) error {
		if len(fields) != 2 {
			return csvtab.Formatf(source, line, "expected 2 fields, got %d", len(fields))
		}

		ts, err := csvtab.ParseTime(fields[0])
		if err != nil {
			return csvtab.Formatf(source, line, "invalid UTC timestamp %q", fields[0])
		}

		offset, err := strconv.Atoi(fields[1])
		if err != nil {
			return csvtab.Formatf(source, line, "invalid integer offset %q", fields[1])
		}

		if n := len(entries); n > 0 {
			prev := entries[n-1].Effective
			if ts.Equal(prev) {
				return csvtab.Structuralf(source, line, "duplicate timestamp %s", fields[0])
			}
			if ts.Before(prev) {
				return csvtab.Structuralf(source, line, "timestamp %s out of order (must be strictly ascending)", fields[0])
			}
		}

		entries = append(entries, Entry{Effective: ts, Offset: offset})
		lines = append(lines, line)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(entries) == 0 {
		return nil, csvtab.Formatf(source, 0, "no data rows")
	}

	table, err := NewTable(entries, entries[0].Offset, source)
	if err != nil {
		// report the file line rather than the row index
		if se, ok := err.(*csvtab.StructuralError); ok && se.Line > 0 && se.Line <= len(lines) {
			se.Line = lines[se.Line-1]
		}
		return nil, err
	}

	return table, nil
}
