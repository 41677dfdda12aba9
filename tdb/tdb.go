// Package tdb computes the periodic relativistic correction TDB - TT.
//
// Both providers are pure functions of the TT Julian day. The correction
// stays within about ±1.7 ms.
package tdb

import (
	"math"

	"github.com/subtlepseudonym/astrotime/julian"
)

// Provider returns TDB - TT in seconds for a TT Julian day.
type Provider interface {
	CorrectionSeconds(tt julian.Day) float64
}

const degToRad = math.Pi / 180

// Angles are the fundamental arguments, in radians, for a TT instant.
type Angles struct {
	G       float64 // mean anomaly of the earth
	Venus   float64 // mean longitude of Venus
	Jupiter float64 // mean longitude of Jupiter
	T       float64 // Julian centuries of TT since J2000.0
}

// AnglesAt evaluates the fundamental arguments at tt.
func AnglesAt(tt julian.Day) Angles {
	t := tt.Centuries()
	return Angles{
		G:       (357.5277233 + 35999.05034*t) * degToRad,
		Venus:   (181.979800 + 58517.8156760*t) * degToRad,
		Jupiter: (34.351484 + 3034.90567464*t) * degToRad,
		T:       t,
	}
}

// Simple is the two-term approximation
//
//	0.001657 sin(g) + 0.000022 sin(2g)
type Simple struct{}

func (Simple) CorrectionSeconds(tt julian.Day) float64 {
	g := AnglesAt(tt).G
	return 0.001657*math.Sin(g) + 0.000022*math.Sin(2*g)
}
