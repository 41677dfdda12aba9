package leap

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subtlepseudonym/astrotime/csvtab"
	"github.com/subtlepseudonym/astrotime/sentinel"
)

func utc(year int, month time.Month, day, hour, min, sec int) time.Time {
	return time.Date(year, month, day, hour, min, sec, 0, time.UTC)
}

func TestBuiltInOffset(t *testing.T) {
	table := BuiltIn()

	tests := []struct {
		name string
		at   time.Time
		want int
	}{
		{"pre-1972 baseline", utc(1960, time.January, 1, 0, 0, 0), PreUTCBaseline},
		{"instant before first entry", utc(1972, time.June, 30, 23, 59, 59), PreUTCBaseline},
		{"first entry", utc(1972, time.July, 1, 0, 0, 0), 11},
		{"mid table", utc(2000, time.June, 1, 0, 0, 0), 32},
		{"before last change", utc(2016, time.December, 31, 23, 59, 59), 36},
		{"at last change", utc(2017, time.January, 1, 0, 0, 0), 37},
		{"after last change", utc(2030, time.January, 1, 0, 0, 0), 37},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, last := table.Offset(test.at)
			assert.Equal(t, test.want, got)
			assert.Equal(t, utc(2017, time.January, 1, 0, 0, 0), last)
		})
	}
}

func TestBuiltInMonotonic(t *testing.T) {
	table := BuiltIn()

	prev, _ := table.Offset(utc(1971, time.January, 1, 0, 0, 0))
	for at := utc(1971, time.January, 1, 0, 0, 0); at.Year() < 2020; at = at.Add(97 * time.Hour) {
		got, _ := table.Offset(at)
		require.GreaterOrEqual(t, got, prev, "offset decreased at %s", at)
		prev = got
	}
}

func TestBuiltInMetadata(t *testing.T) {
	table := BuiltIn()
	assert.Equal(t, "builtin", table.Source())
	assert.Equal(t, "builtin-2017-01-01", table.DataVersion())
	assert.Len(t, table.Entries(), 27)
}

func TestNewTableValidation(t *testing.T) {
	_, err := NewTable(nil, 0, "empty")
	require.ErrorIs(t, err, sentinel.ErrCsvFormat)

	_, err = NewTable([]Entry{
		{Effective: utc(2000, time.January, 1, 0, 0, 0), Offset: 1},
		{Effective: utc(1999, time.January, 1, 0, 0, 0), Offset: 2},
	}, 0, "unordered")
	require.ErrorIs(t, err, sentinel.ErrCsvStructural)

	_, err = NewTable([]Entry{
		{Effective: utc(2000, time.January, 1, 0, 0, 0), Offset: 3},
		{Effective: utc(2001, time.January, 1, 0, 0, 0), Offset: 2},
	}, 0, "decreasing")
	require.ErrorIs(t, err, sentinel.ErrCsvStructural)
}

func writeFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "leap.csv")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeFile(t, "# ISO8601_UTC,TAI_MINUS_UTC\n\n1972-07-01T00:00:00Z,11\n2017-01-01T00:00:00Z,37\n")

	table, err := LoadFile(path)
	require.NoError(t, err)

	got, _ := table.Offset(utc(2016, time.December, 31, 23, 59, 59))
	assert.Equal(t, 11, got)
	got, _ = table.Offset(utc(2017, time.January, 1, 0, 0, 0))
	assert.Equal(t, 37, got)

	// first row applies before the table starts
	got, _ = table.Offset(utc(1950, time.January, 1, 0, 0, 0))
	assert.Equal(t, 11, got)

	assert.Equal(t, "2017-01-01", table.DataVersion())
	assert.True(t, filepath.IsAbs(table.Source()))
}

func TestParseSpecRows(t *testing.T) {
	table, err := Parse(strings.NewReader("1972-07-01T00:00:00Z,11\n2015-07-01T00:00:00Z,36\n2017-01-01T00:00:00Z,37\n"), "mem")
	require.NoError(t, err)

	got, _ := table.Offset(utc(2016, time.December, 31, 23, 59, 59))
	assert.Equal(t, 36, got)
	got, _ = table.Offset(utc(2017, time.January, 1, 0, 0, 0))
	assert.Equal(t, 37, got)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		contents string
		sentinel error
		line     int
	}{
		{"bad timestamp", "1972-07-01T00:00:00Z,11\nnot-a-date,12\n", sentinel.ErrCsvFormat, 2},
		{"bad offset", "# header\n1972-07-01T00:00:00Z,eleven\n", sentinel.ErrCsvFormat, 2},
		{"extra column", "1972-07-01T00:00:00Z,11,x\n", sentinel.ErrCsvFormat, 1},
		{"duplicate", "1972-07-01T00:00:00Z,11\n1972-07-01T00:00:00Z,12\n", sentinel.ErrCsvStructural, 2},
		{"out of order", "1973-01-01T00:00:00Z,12\n\n1972-07-01T00:00:00Z,11\n", sentinel.ErrCsvStructural, 3},
		{"decreasing offset", "1972-07-01T00:00:00Z,12\n# note\n1973-01-01T00:00:00Z,11\n", sentinel.ErrCsvStructural, 3},
		{"empty", "# only a comment\n\n", sentinel.ErrCsvFormat, 0},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(test.contents), "mem")
			require.Error(t, err)
			require.ErrorIs(t, err, test.sentinel)

			switch e := err.(type) {
			case *csvtab.FormatError:
				assert.Equal(t, test.line, e.Line)
			case *csvtab.StructuralError:
				assert.Equal(t, test.line, e.Line)
			default:
				t.Fatalf("unexpected error type %T", err)
			}
		})
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)

	_, err = LoadFile("")
	require.Error(t, err)
}
