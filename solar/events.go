package solar

import (
	"time"

	"github.com/nathan-osman/go-sunrise"

	"github.com/subtlepseudonym/astrotime/julian"
)

// Sun elevations, in degrees, that bound each twilight.
const (
	CivilTwilight        = -6.0
	NauticalTwilight     = -12.0
	AstronomicalTwilight = -18.0
)

// Polar describes days on which the sun does not cross the horizon.
type Polar int

const (
	PolarNone Polar = iota
	PolarDay
	PolarNight
)

func (p Polar) String() string {
	switch p {
	case PolarDay:
		return "polar day"
	case PolarNight:
		return "polar night"
	default:
		return "none"
	}
}

// Events holds the solar events of one calendar day. An event is nil when
// the sun never reaches its elevation that day: Sunrise and Sunset during
// polar day or night, a twilight when the sun stays above or below it.
type Events struct {
	AstronomicalDawn *time.Time
	NauticalDawn     *time.Time
	CivilDawn        *time.Time
	Sunrise          *time.Time
	Noon             time.Time
	Sunset           *time.Time
	CivilDusk        *time.Time
	NauticalDusk     *time.Time
	AstronomicalDusk *time.Time
	Polar            Polar
}

// Transit returns the instant of solar noon at loc on the calendar day of
// date, in date's time zone.
func Transit(loc Location, date time.Time) (time.Time, error) {
	if err := loc.Validate(); err != nil {
		return time.Time{}, err
	}

	transit, _ := transitDay(dayOf(date), loc.Longitude)
	return transit.Time().In(date.Location()), nil
}

// EventsOn returns the solar events at loc on the calendar day of date.
// The day and the returned times are in date's time zone.
func EventsOn(loc Location, date time.Time) (Events, error) {
	if err := loc.Validate(); err != nil {
		return Events{}, err
	}

	tz := date.Location()
	year, month, day := date.Date()

	transit, declination := transitDay(dayOf(date), loc.Longitude)
	events := Events{Noon: transit.Time().In(tz)}

	rise, set := sunrise.SunriseSunset(loc.Latitude, loc.Longitude, year, month, day)
	events.Sunrise = eventTime(rise, tz)
	events.Sunset = eventTime(set, tz)
	if events.Sunrise == nil || events.Sunset == nil {
		// the sun is up all day when it sits on the observer's side of
		// the equator
		if loc.Latitude*declination > 0 {
			events.Polar = PolarDay
		} else {
			events.Polar = PolarNight
		}
	}

	twilights := []struct {
		elevation float64
		dawn      **time.Time
		dusk      **time.Time
	}{
		{CivilTwilight, &events.CivilDawn, &events.CivilDusk},
		{NauticalTwilight, &events.NauticalDawn, &events.NauticalDusk},
		{AstronomicalTwilight, &events.AstronomicalDawn, &events.AstronomicalDusk},
	}
	for _, twilight := range twilights {
		dawn, dusk := sunrise.TimeOfElevation(loc.Latitude, loc.Longitude, twilight.elevation, year, month, day)
		*twilight.dawn = eventTime(dawn, tz)
		*twilight.dusk = eventTime(dusk, tz)
	}

	return events, nil
}

func eventTime(t time.Time, tz *time.Location) *time.Time {
	if t.IsZero() {
		return nil
	}
	t = t.In(tz)
	return &t
}

func dayOf(date time.Time) julian.Day {
	year, month, day := date.Date()
	return julian.FromTime(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}
