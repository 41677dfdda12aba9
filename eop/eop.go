// Package eop supplies earth orientation parameters: ΔUT1 = UT1 - UTC,
// polar motion and celestial intermediate pole offsets.
//
// Lookups are by UTC calendar date and never interpolate. A false ok
// means the value is unknown and callers should treat UT1 as UTC.
package eop

import "time"

// PolarMotion components in arcseconds.
type PolarMotion struct {
	X float64
	Y float64
}

// CipOffsets are the celestial intermediate pole offsets dX, dY in
// arcseconds.
type CipOffsets struct {
	DX float64
	DY float64
}

type Provider interface {
	DeltaUT1(utc time.Time) (seconds float64, ok bool)
	PolarMotion(utc time.Time) (PolarMotion, bool)
	CipOffsets(utc time.Time) (CipOffsets, bool)

	// DataEpoch is the last date covered by the data set.
	DataEpoch() time.Time
	Source() string
	DataVersion() string
}

// None knows nothing. It is the default provider.
type None struct{}

func (None) DeltaUT1(time.Time) (float64, bool)        { return 0, false }
func (None) PolarMotion(time.Time) (PolarMotion, bool) { return PolarMotion{}, false }
func (None) CipOffsets(time.Time) (CipOffsets, bool)   { return CipOffsets{}, false }
func (None) DataEpoch() time.Time                      { return time.Time{} }
func (None) Source() string                            { return "none" }
func (None) DataVersion() string                       { return "none" }

// dateOf truncates t to its UTC calendar date.
func dateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
