package astrotime

import (
	"fmt"
	"time"

	"github.com/subtlepseudonym/astrotime/julian"
	"github.com/subtlepseudonym/astrotime/sentinel"
	"github.com/subtlepseudonym/astrotime/tdb"
)

// JulianDay converts the instant to a Julian day on scale.
//
//	jd_utc = FromTime(utc)
//	jd_tai = jd_utc + (TAI-UTC)/86400
//	jd_tt  = jd_tai + 32.184/86400
//	jd_tdb = jd_tt + (TDB-TT)(jd_tt)/86400
//
// The TDB correction comes from the registry unless WithTdb is given.
// Besides an invalid scale, the only possible error is a stale instant
// under strict mode.
func (a AstroInstant) JulianDay(scale TimeScale, opts ...Option) (julian.Day, error) {
	if !scale.Valid() {
		return 0, fmt.Errorf("julian day: %w", errInvalidScale(scale))
	}

	o := buildOptions(opts)
	jdUTC := julian.FromTime(a.utc)
	if scale == UTC {
		return jdUTC, nil
	}

	res, err := o.registry.LeapOffset(nil, a.utc)
	if err != nil {
		return 0, err
	}

	jdTAI := jdUTC.AddSeconds(float64(res.Seconds))
	if scale == TAI {
		return jdTAI, nil
	}

	jdTT := jdTAI.AddSeconds(TTMinusTAI)
	if scale == TT {
		return jdTT, nil
	}

	return jdTT.AddSeconds(o.tdbProvider().CorrectionSeconds(jdTT)), nil
}

// JulianDay normalizes t and converts it to a Julian day on scale.
func JulianDay(t time.Time, scale TimeScale, opts ...Option) (julian.Day, error) {
	a, err := Normalize(t, opts...)
	if err != nil {
		return 0, err
	}
	return a.JulianDay(scale, opts...)
}

// OffsetSeconds returns to - from in seconds at instant t: the amount to
// add to a reading on scale from to get the same instant on scale to.
func OffsetSeconds(from, to TimeScale, t time.Time, opts ...Option) (float64, error) {
	if !from.Valid() {
		return 0, fmt.Errorf("offset: %w", errInvalidScale(from))
	}
	if !to.Valid() {
		return 0, fmt.Errorf("offset: %w", errInvalidScale(to))
	}
	a, err := Normalize(t, opts...)
	if err != nil {
		return 0, err
	}
	if from == to {
		return 0, nil
	}

	offsets, err := a.offsetsFromUTC(buildOptions(opts))
	if err != nil {
		return 0, err
	}
	return offsets[to] - offsets[from], nil
}

// offsetsFromUTC builds each scale's offset from UTC once.
func (a AstroInstant) offsetsFromUTC(o options) (map[TimeScale]float64, error) {
	res, err := o.registry.LeapOffset(nil, a.utc)
	if err != nil {
		return nil, err
	}

	taiMinusUTC := float64(res.Seconds)
	ttMinusUTC := taiMinusUTC + TTMinusTAI
	jdTT := julian.FromTime(a.utc).AddSeconds(ttMinusUTC)
	tdbMinusTT := o.tdbProvider().CorrectionSeconds(jdTT)

	return map[TimeScale]float64{
		UTC: 0,
		TAI: taiMinusUTC,
		TT:  ttMinusUTC,
		TDB: ttMinusUTC + tdbMinusTT,
	}, nil
}

// DeltaT returns ΔT = TT - UT1 in seconds for the instant from the
// registry's provider unless WithDeltaT is given. ΔT is independent of
// the TDB leg of JulianDay.
func (a AstroInstant) DeltaT(opts ...Option) float64 {
	o := buildOptions(opts)
	if o.deltaT != nil {
		return o.deltaT.DeltaTSeconds(a.utc)
	}
	return o.registry.DeltaTSeconds(a.utc)
}

// UT1MinusUTC returns ΔUT1 from the registry's EOP provider. When the
// date is not covered it returns 0 and false, and callers treat UT1 as
// UTC.
func (a AstroInstant) UT1MinusUTC(opts ...Option) (float64, bool) {
	o := buildOptions(opts)
	return o.registry.DeltaUT1(a.utc)
}

func (o options) tdbProvider() tdb.Provider {
	if o.tdb != nil {
		return o.tdb
	}
	return o.registry.Tdb()
}

func errInvalidScale(s TimeScale) error {
	return fmt.Errorf("%w: time scale %s", sentinel.ErrInvalidConfiguration, s)
}
