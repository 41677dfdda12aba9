// Package sidereal computes Earth rotation angle and Greenwich mean
// sidereal time from the conversion pipeline and EOP data.
package sidereal

import (
	"math"
	"time"

	"github.com/subtlepseudonym/astrotime"
	"github.com/subtlepseudonym/astrotime/julian"
)

const (
	twoPi            = 2 * math.Pi
	arcsecToRadians  = math.Pi / (180 * 3600)
	eraAtJ2000       = 0.7790572732640
	eraRotationRatio = 1.00273781191135448
)

// Angles are the rotation angles at an instant, in radians in [0, 2π).
type Angles struct {
	ERA  float64
	GMST float64
	// UT1 reports whether ΔUT1 came from EOP data. When false UT1 was
	// taken to equal UTC.
	UT1 bool
}

func wrap(a float64) float64 {
	a = math.Mod(a, twoPi)
	if a < 0 {
		a += twoPi
	}
	return a
}

// EraRadians returns the Earth rotation angle for a UT1 Julian day.
func EraRadians(jdUT1 julian.Day) float64 {
	return wrap(twoPi * (eraAtJ2000 + eraRotationRatio*(float64(jdUT1)-julian.J2000)))
}

// GmstRadians returns Greenwich mean sidereal time as the ERA plus the
// IAU 2006 precession polynomial in TT centuries.
func GmstRadians(jdUT1, jdTT julian.Day) float64 {
	t := jdTT.Centuries()
	poly := 0.014506 +
		t*(4612.156534+
			t*(1.3915817+
				t*(-0.00000044+
					t*(-0.000029956+
						t*-0.0000000368))))
	return wrap(EraRadians(jdUT1) + poly*arcsecToRadians)
}

// At returns the rotation angles at t. Leap seconds and ΔUT1 come from
// the registry selected by opts.
func At(t time.Time, opts ...astrotime.Option) (Angles, error) {
	inst, err := astrotime.Normalize(t, opts...)
	if err != nil {
		return Angles{}, err
	}

	jdTT, err := inst.JulianDay(astrotime.TT, opts...)
	if err != nil {
		return Angles{}, err
	}

	jdUT1 := julian.FromTime(inst.UTC())
	dut1, ok := inst.UT1MinusUTC(opts...)
	if ok {
		jdUT1 = jdUT1.AddSeconds(dut1)
	}

	return Angles{
		ERA:  EraRadians(jdUT1),
		GMST: GmstRadians(jdUT1, jdTT),
		UT1:  ok,
	}, nil
}
