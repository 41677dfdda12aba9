package eop

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/subtlepseudonym/astrotime/csvtab"
)

// Record is one day of earth orientation data. Optional values are nil
// when the source did not provide them.
type Record struct {
	Date time.Time
	DUT1 float64
	XP   *float64
	YP   *float64
	DX   *float64
	DY   *float64
}

// Table is an immutable, date-sorted set of records.
type Table struct {
	records []Record
	source  string
}

// LoadFile reads an EOP table from path. See Parse for the format.
func LoadFile(path string) (*Table, error) {
	if path == "" {
		return nil, fmt.Errorf("load eop file: empty path")
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open eop file: %w", err)
	}
	defer f.Close()

	source, err := filepath.Abs(path)
	if err != nil {
		source = path
	}

	return Parse(f, source)
}

// Parse reads daily EOP rows of either form
//
//	# date,dut1_seconds
//	2025-01-01,0.114843
//	# date,dut1_seconds,x_p_arcsec,y_p_arcsec,dX_arcsec,dY_arcsec
//	2025-01-02,0.114100,0.03412,0.27651,0.00012,-0.00009
//
// Each row is validated on its own, so both forms may appear in one
// file. Empty extended fields mean "not provided". Rows need not be in
// order but dates must be unique.
func Parse(r io.Reader, source string) (*Table, error) {
	type row struct {
		record Record
		line   int
	}
	var rows []row

	err := csvtab.Scan(r, source, func(line int, fields []string) error {
		if len(fields) != 2 && len(fields) != 6 {
			return csvtab.Formatf(source, line, "expected 2 or 6 fields (date,dut1[,x_p,y_p,dX,dY]), got %d", len(fields))
		}

		date, err := csvtab.ParseTime(fields[0])
		if err != nil {
			return csvtab.Formatf(source, line, "invalid date %q", fields[0])
		}

		dut1, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return csvtab.Formatf(source, line, "invalid dut1 seconds %q", fields[1])
		}

		rec := Record{Date: dateOf(date), DUT1: dut1}
		if len(fields) == 6 {
			optional := []**float64{&rec.XP, &rec.YP, &rec.DX, &rec.DY}
			for i, dst := range optional {
				v, err := parseOptional(fields[i+2])
				if err != nil {
					return csvtab.Formatf(source, line, "invalid numeric value %q", fields[i+2])
				}
				*dst = v
			}
		}

		rows = append(rows, row{record: rec, line: line})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].record.Date.Before(rows[j].record.Date)
	})

	records := make([]Record, len(rows))
	for i, r := range rows {
		if i > 0 && r.record.Date.Equal(rows[i-1].record.Date) {
			return nil, csvtab.Structuralf(source, r.line, "duplicate date %s (first seen on line %d)", r.record.Date.Format("2006-01-02"), rows[i-1].line)
		}
		records[i] = r.record
	}

	return &Table{records: records, source: source}, nil
}

func parseOptional(s string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Lookup returns the record for the UTC date of utc.
func (t *Table) Lookup(utc time.Time) (Record, bool) {
	date := dateOf(utc)
	idx := sort.Search(len(t.records), func(i int) bool {
		return !t.records[i].Date.Before(date)
	})

	if idx < len(t.records) && t.records[idx].Date.Equal(date) {
		return t.records[idx], true
	}
	return Record{}, false
}

func (t *Table) DeltaUT1(utc time.Time) (float64, bool) {
	rec, ok := t.Lookup(utc)
	if !ok {
		return 0, false
	}
	return rec.DUT1, true
}

func (t *Table) PolarMotion(utc time.Time) (PolarMotion, bool) {
	rec, ok := t.Lookup(utc)
	if !ok || rec.XP == nil || rec.YP == nil {
		return PolarMotion{}, false
	}
	return PolarMotion{X: *rec.XP, Y: *rec.YP}, true
}

func (t *Table) CipOffsets(utc time.Time) (CipOffsets, bool) {
	rec, ok := t.Lookup(utc)
	if !ok || rec.DX == nil || rec.DY == nil {
		return CipOffsets{}, false
	}
	return CipOffsets{DX: *rec.DX, DY: *rec.DY}, true
}

func (t *Table) DataEpoch() time.Time {
	if len(t.records) == 0 {
		return time.Time{}
	}
	return t.records[len(t.records)-1].Date
}

func (t *Table) Source() string {
	return t.source
}

func (t *Table) DataVersion() string {
	if len(t.records) == 0 {
		return "empty"
	}
	return t.DataEpoch().Format("2006-01-02")
}

// Len returns the number of records.
func (t *Table) Len() int {
	return len(t.records)
}
