package leap

import (
	"fmt"
	"os"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/subtlepseudonym/astrotime/sentinel"
)

const (
	// StrictEnv is read at process start to seed strict mode.
	StrictEnv = "ASTROTIME_STRICT_LEAP_SECONDS"

	DefaultHorizonYears = 10
	MinHorizonYears     = 1
	MaxHorizonYears     = 100
)

// OffsetResult is a TAI-UTC lookup plus whether the queried instant lies
// beyond the staleness horizon. Staleness is computed per query.
type OffsetResult struct {
	Seconds    int
	LastChange time.Time
	Stale      bool
}

// StaleInstantError is returned in strict mode for instants past the
// staleness horizon of the active provider.
type StaleInstantError struct {
	UTC        time.Time
	LastChange time.Time
	Horizon    time.Time
}

func (e *StaleInstantError) Error() string {
	return fmt.Sprintf("instant %s beyond leap second horizon %s (last change %s); refresh the leap second table",
		e.UTC.Format(time.RFC3339), e.Horizon.Format(time.RFC3339), e.LastChange.Format(time.RFC3339))
}

func (e *StaleInstantError) Unwrap() error { return sentinel.ErrStaleInstant }

// Gate decides whether an instant is too far past the last known leap
// second data to be trusted. It is safe for concurrent use; settings take
// effect for subsequent queries.
type Gate struct {
	horizon atomic.Int32
	strict  atomic.Bool
}

// NewGate returns a gate with the default horizon and strict mode seeded
// from StrictEnv.
func NewGate() *Gate {
	g := &Gate{}
	g.horizon.Store(DefaultHorizonYears)
	g.strict.Store(StrictFromEnv())
	return g
}

// StrictFromEnv parses StrictEnv. Unset or unparsable values are false.
func StrictFromEnv() bool {
	strict, err := strconv.ParseBool(os.Getenv(StrictEnv))
	return err == nil && strict
}

func (g *Gate) HorizonYears() int {
	return int(g.horizon.Load())
}

// SetHorizonYears changes the horizon. Values outside
// [MinHorizonYears, MaxHorizonYears] are rejected and leave the current
// value in place.
func (g *Gate) SetHorizonYears(years int) error {
	if years < MinHorizonYears || years > MaxHorizonYears {
		return fmt.Errorf("staleness horizon %d years outside [%d, %d]: %w", years, MinHorizonYears, MaxHorizonYears, sentinel.ErrInvalidConfiguration)
	}
	g.horizon.Store(int32(years))
	return nil
}

func (g *Gate) Strict() bool {
	return g.strict.Load()
}

func (g *Gate) SetStrict(strict bool) {
	g.strict.Store(strict)
}

// ReloadStrictFromEnv re-reads StrictEnv into the gate and returns the new
// value.
func (g *Gate) ReloadStrictFromEnv() bool {
	strict := StrictFromEnv()
	g.strict.Store(strict)
	return strict
}

// Horizon returns the last instant considered fresh for provider p.
func (g *Gate) Horizon(p Provider) time.Time {
	return p.LastChange().AddDate(g.HorizonYears(), 0, 0)
}

// IsStale reports whether utc is strictly after the horizon of p.
func (g *Gate) IsStale(p Provider, utc time.Time) bool {
	return utc.After(g.Horizon(p))
}

// Check returns a StaleInstantError if utc is stale and strict mode is on.
func (g *Gate) Check(p Provider, utc time.Time) (stale bool, err error) {
	horizon := g.Horizon(p)
	if !utc.After(horizon) {
		return false, nil
	}
	if g.Strict() {
		return true, &StaleInstantError{UTC: utc, LastChange: p.LastChange(), Horizon: horizon}
	}
	return true, nil
}

// Offset looks up TAI-UTC for utc from p and applies the gate. In strict
// mode a stale instant fails; otherwise the result carries Stale.
func (g *Gate) Offset(p Provider, utc time.Time) (OffsetResult, error) {
	stale, err := g.Check(p, utc)
	if err != nil {
		return OffsetResult{}, err
	}

	seconds, lastChange := p.Offset(utc)
	return OffsetResult{
		Seconds:    seconds,
		LastChange: lastChange,
		Stale:      stale,
	}, nil
}
