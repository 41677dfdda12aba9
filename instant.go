package astrotime

import (
	"time"
)

// AstroInstant is a UTC-normalized instant that has passed the leap second
// staleness gate. The zero value is the zero time.Time in UTC.
type AstroInstant struct {
	utc   time.Time
	stale bool
}

// Normalize converts t to UTC and applies the staleness gate of the
// registry. It fails with a *leap.StaleInstantError only when strict mode
// is on and t is past the horizon; otherwise the instant records whether
// it is stale.
func Normalize(t time.Time, opts ...Option) (AstroInstant, error) {
	o := buildOptions(opts)
	reg := o.registry

	utc := t.UTC()
	stale, err := reg.Gate().Check(reg.LeapSeconds(), utc)
	if err != nil {
		return AstroInstant{}, err
	}

	return AstroInstant{utc: utc, stale: stale}, nil
}

// Now normalizes the current time of the package clock.
func Now(opts ...Option) (AstroInstant, error) {
	return Normalize(currentClock().Now(), opts...)
}

// UTC returns the instant as a UTC time.Time.
func (a AstroInstant) UTC() time.Time {
	return a.utc
}

// Stale reports whether the instant was past the staleness horizon when it
// was normalized.
func (a AstroInstant) Stale() bool {
	return a.stale
}

func (a AstroInstant) String() string {
	return a.utc.Format(time.RFC3339Nano)
}
