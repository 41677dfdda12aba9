package astrotime

import (
	"sync/atomic"

	"github.com/jonboulle/clockwork"

	"github.com/subtlepseudonym/astrotime/deltat"
	"github.com/subtlepseudonym/astrotime/registry"
	"github.com/subtlepseudonym/astrotime/tdb"
)

type clockBox struct {
	clockwork.Clock
}

// clock is the package time source for Now and the HTTP handlers.
var clock atomic.Pointer[clockBox]

func init() {
	SetClock(nil)
}

// SetClock swaps the time source used by Now. Pass nil to reset to real
// time. It is safe to call while conversions are running.
func SetClock(c clockwork.Clock) {
	if c == nil {
		c = clockwork.NewRealClock()
	}
	clock.Store(&clockBox{Clock: c})
}

func currentClock() clockwork.Clock {
	return clock.Load().Clock
}

type options struct {
	registry *registry.Registry
	deltaT   deltat.Provider
	tdb      tdb.Provider
}

// Option overrides a provider for a single call.
type Option func(*options)

// WithRegistry reads providers from r instead of registry.Default().
func WithRegistry(r *registry.Registry) Option {
	return func(o *options) {
		o.registry = r
	}
}

// WithDeltaT uses p for ΔT in this call only.
func WithDeltaT(p deltat.Provider) Option {
	return func(o *options) {
		o.deltaT = p
	}
}

// WithTdb uses p for the TDB correction in this call only.
func WithTdb(p tdb.Provider) Option {
	return func(o *options) {
		o.tdb = p
	}
}

func buildOptions(opts []Option) options {
	o := options{registry: registry.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.registry == nil {
		o.registry = registry.Default()
	}
	return o
}
