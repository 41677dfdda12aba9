package julian

import (
	"math"
	"time"
)

const (
	EpochUnix      = 2440587.5 // Julian day of 1970-01-01T00:00:00Z
	J2000          = 2451545.0 // Julian day of 2000-01-01T12:00:00 TT
	SecondsPerDay  = 86400     // not including leap seconds
	DaysPerCentury = 36525.0
)

// Day is a continuous count of days, with fraction, since noon on
// 4713 BCE January 1 of the proleptic Julian calendar. A Day carries no
// time scale; callers track which scale it was computed in.
type Day float64

// FromTime returns the Julian day for t read as a UTC calendar instant.
//
// The time package counts every day as exactly SecondsPerDay seconds, so
// the result is the UTC Julian day with no leap seconds applied. Callers
// moving to atomic scales add the offset with AddSeconds.
func FromTime(t time.Time) Day {
	seconds := float64(t.Unix()) + float64(t.Nanosecond())/1e9
	return Day(seconds/SecondsPerDay + EpochUnix)
}

// Time converts d back to a UTC calendar instant, rounded to the
// nearest microsecond.
func (d Day) Time() time.Time {
	seconds := (float64(d) - EpochUnix) * SecondsPerDay
	whole := math.Floor(seconds)
	micros := math.Round((seconds - whole) * 1e6)
	return time.Unix(int64(whole), int64(micros)*int64(time.Microsecond)).UTC()
}

// AddSeconds shifts d by s SI seconds.
func (d Day) AddSeconds(s float64) Day {
	return d + Day(s/SecondsPerDay)
}

// Centuries returns Julian centuries elapsed since J2000.0.
func (d Day) Centuries() float64 {
	return (float64(d) - J2000) / DaysPerCentury
}

// Float returns d as a plain float64.
func (d Day) Float() float64 {
	return float64(d)
}
