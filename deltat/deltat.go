// Package deltat estimates ΔT = TT - UT1, the accumulated divergence of
// atomic time from earth rotation time.
//
// Providers differ in range and fidelity:
//
//   - Polynomial: a linear modern-era fit, cheapest and least accurate.
//   - Blended: anchors 1900-2020 with linear interpolation inside the
//     table and quadratic extrapolation outside it.
//   - Historical: anchors 500 BCE-2020 with linear interpolation, clamped
//     to the boundary values outside the table.
//   - Hybrid: Historical through 2020, then a linear secular drift.
//
// All providers are immutable and safe for concurrent use.
package deltat

import (
	"fmt"
	"time"

	"github.com/subtlepseudonym/astrotime/sentinel"
)

// Provider returns ΔT in seconds for a UTC instant.
type Provider interface {
	DeltaTSeconds(utc time.Time) float64
}

// Anchor is a calibration point: ΔT in seconds at a decimal year.
type Anchor struct {
	Year    float64
	Seconds float64
}

// dayYear approximates the decimal year from the day of year, centred on
// the day.
func dayYear(utc time.Time) float64 {
	utc = utc.UTC()
	return float64(utc.Year()) + (float64(utc.YearDay())-0.5)/365.25
}

// decimalYear is the exact fraction of the calendar year elapsed at utc.
func decimalYear(utc time.Time) float64 {
	utc = utc.UTC()
	start := time.Date(utc.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	next := start.AddDate(1, 0, 0)
	return float64(utc.Year()) + utc.Sub(start).Seconds()/next.Sub(start).Seconds()
}

func validateAnchors(anchors []Anchor, min int) ([]Anchor, error) {
	if len(anchors) < min {
		return nil, fmt.Errorf("need at least %d anchors, got %d: %w", min, len(anchors), sentinel.ErrInvalidConfiguration)
	}

	out := make([]Anchor, len(anchors))
	for i, a := range anchors {
		if i > 0 && a.Year <= anchors[i-1].Year {
			return nil, fmt.Errorf("anchor %d year %g not after %g: %w", i, a.Year, anchors[i-1].Year, sentinel.ErrInvalidConfiguration)
		}
		out[i] = a
	}
	return out, nil
}

// interpolate returns the linear interpolation of y between the anchors
// bracketing it. The caller guarantees anchors[0].Year <= y <= last.Year.
func interpolate(anchors []Anchor, y float64) float64 {
	lo, hi := 0, len(anchors)-1
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if anchors[mid].Year <= y {
			lo = mid
		} else {
			hi = mid
		}
	}

	a, b := anchors[lo], anchors[hi]
	f := (y - a.Year) / (b.Year - a.Year)
	return a.Seconds + (b.Seconds-a.Seconds)*f
}

// Polynomial is the linear fallback 69.0 + 0.1*(year-2000).
type Polynomial struct{}

func (Polynomial) DeltaTSeconds(utc time.Time) float64 {
	return 69.0 + 0.1*(dayYear(utc)-2000.0)
}
