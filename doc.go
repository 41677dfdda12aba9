// Package astrotime converts instants between the UTC, TAI, TT and TDB
// time scales.
//
// Conversions read their leap second, ΔT, EOP and TDB providers from a
// registry.Registry, registry.Default() unless WithRegistry is given. An
// instant is first normalized, which applies the leap second staleness
// gate, and then converted:
//
//	inst, err := astrotime.Normalize(t)
//	if err != nil {
//		// only possible in strict mode: errors.Is(err, sentinel.ErrStaleInstant)
//	}
//	jd, _ := inst.JulianDay(astrotime.TDB)
//
// Reloader, Watcher and Handler keep the registry's data files fresh and
// serve conversions over HTTP.
package astrotime
