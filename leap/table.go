package leap

import (
	"fmt"
	"sort"
	"time"

	"github.com/subtlepseudonym/astrotime/csvtab"
)

// PreUTCBaseline is the TAI-UTC offset applied by the built-in table to
// instants before 1972-07-01.
const PreUTCBaseline = 10

// Provider supplies the cumulative TAI-UTC offset for a UTC instant.
type Provider interface {
	// Offset returns TAI-UTC in whole seconds for utc and the instant of
	// the last change in the provider's data.
	Offset(utc time.Time) (seconds int, lastChange time.Time)

	// LastChange is the effective instant of the final table entry.
	LastChange() time.Time

	// Source describes where the data came from (file path or snapshot).
	Source() string

	// DataVersion is an opaque version label for the data set.
	DataVersion() string
}

// Entry is a single row of a leap second table: from Effective onward
// TAI-UTC is Offset seconds.
type Entry struct {
	Effective time.Time
	Offset    int
}

// Table is an immutable, ascending leap second table. It is the only
// leap second provider; the built-in snapshot and file-loaded data are
// both Tables.
type Table struct {
	entries  []Entry
	baseline int
	source   string
	version  string
}

// NewTable validates entries and builds a Table. Effective instants must
// be strictly ascending and offsets non-decreasing. Baseline is the offset
// reported for instants before the first entry.
func NewTable(entries []Entry, baseline int, source string) (*Table, error) {
	if len(entries) == 0 {
		return nil, csvtab.Formatf(source, 0, "no data rows")
	}

	table := make([]Entry, len(entries))
	for i, e := range entries {
		e.Effective = e.Effective.UTC()
		if i > 0 {
			prev := table[i-1]
			if !e.Effective.After(prev.Effective) {
				return nil, csvtab.Structuralf(source, i+1, "entry %s not after %s", e.Effective.Format(time.RFC3339), prev.Effective.Format(time.RFC3339))
			}
			if e.Offset < prev.Offset {
				return nil, csvtab.Structuralf(source, i+1, "offset %d decreases from %d", e.Offset, prev.Offset)
			}
		}
		table[i] = e
	}

	return &Table{
		entries:  table,
		baseline: baseline,
		source:   source,
		version:  table[len(table)-1].Effective.Format("2006-01-02"),
	}, nil
}

// Offset returns the offset of the most recent entry whose effective
// instant is not after utc, or the baseline if utc precedes every entry.
func (t *Table) Offset(utc time.Time) (int, time.Time) {
	idx := sort.Search(len(t.entries), func(i int) bool {
		return utc.Before(t.entries[i].Effective)
	})

	if idx == 0 {
		return t.baseline, t.LastChange()
	}
	return t.entries[idx-1].Offset, t.LastChange()
}

func (t *Table) LastChange() time.Time {
	return t.entries[len(t.entries)-1].Effective
}

func (t *Table) Source() string {
	return t.source
}

func (t *Table) DataVersion() string {
	return t.version
}

// Baseline returns the offset applied before the first entry.
func (t *Table) Baseline() int {
	return t.baseline
}

// Entries returns a copy of the table rows.
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

func (t *Table) String() string {
	return fmt.Sprintf("leap table %s (%d entries, last %s)", t.source, len(t.entries), t.version)
}

// builtinEntries lists the UTC instants at which each new TAI-UTC value
// took effect, the start of the day after the inserted leap second.
//
// Values are taken from IERS Bulletin C 52 (leap-seconds.list), current
// through the 2016-12-31 insertion.
var builtinEntries = []Entry{
	effective(1972, time.July, 11),
	effective(1973, time.January, 12),
	effective(1974, time.January, 13),
	effective(1975, time.January, 14),
	effective(1976, time.January, 15),
	effective(1977, time.January, 16),
	effective(1978, time.January, 17),
	effective(1979, time.January, 18),
	effective(1980, time.January, 19),
	effective(1981, time.July, 20),
	effective(1982, time.July, 21),
	effective(1983, time.July, 22),
	effective(1985, time.July, 23),
	effective(1988, time.January, 24),
	effective(1990, time.January, 25),
	effective(1991, time.January, 26),
	effective(1992, time.July, 27),
	effective(1993, time.July, 28),
	effective(1994, time.July, 29),
	effective(1996, time.January, 30),
	effective(1997, time.July, 31),
	effective(1999, time.January, 32),
	effective(2006, time.January, 33),
	effective(2009, time.January, 34),
	effective(2012, time.July, 35),
	effective(2015, time.July, 36),
	effective(2017, time.January, 37),
}

// effective is shorthand for an entry taking effect at midnight UTC on the
// first day of month.
func effective(year int, month time.Month, offset int) Entry {
	return Entry{
		Effective: time.Date(year, month, 1, 0, 0, 0, 0, time.UTC),
		Offset:    offset,
	}
}

var builtin = mustBuiltin()

func mustBuiltin() *Table {
	t, err := NewTable(builtinEntries, PreUTCBaseline, "builtin")
	if err != nil {
		panic(err)
	}
	t.version = "builtin-" + t.version
	return t
}

// BuiltIn returns the compiled-in leap second table.
func BuiltIn() *Table {
	return builtin
}
