package registry

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/subtlepseudonym/astrotime/deltat"
	"github.com/subtlepseudonym/astrotime/diag"
	"github.com/subtlepseudonym/astrotime/eop"
	"github.com/subtlepseudonym/astrotime/leap"
	"github.com/subtlepseudonym/astrotime/sentinel"
	"github.com/subtlepseudonym/astrotime/tdb"
)

// box lets an interface value sit behind an atomic.Pointer.
type box[T any] struct {
	v T
}

type slot[T any] struct {
	p atomic.Pointer[box[T]]
}

func (s *slot[T]) load() T {
	return s.p.Load().v
}

func (s *slot[T]) swap(v T) T {
	return s.p.Swap(&box[T]{v: v}).v
}

func newSlot[T any](v T) *slot[T] {
	s := &slot[T]{}
	s.p.Store(&box[T]{v: v})
	return s
}

// Registry is a set of atomically replaceable providers.
type Registry struct {
	leap    *slot[leap.Provider]
	deltaT  *slot[deltat.Provider]
	eop     *slot[eop.Provider]
	tdb     *slot[tdb.Provider]
	metrics *slot[diag.Metrics]
	logger  *slot[diag.Logger]

	gate *leap.Gate
}

// New returns a registry with the built-in defaults: the compiled-in leap
// second table, the blended ΔT provider, no EOP data, the two-term TDB
// correction and no-op sinks.
func New() *Registry {
	return &Registry{
		leap:    newSlot[leap.Provider](leap.BuiltIn()),
		deltaT:  newSlot[deltat.Provider](deltat.DefaultBlended()),
		eop:     newSlot[eop.Provider](eop.None{}),
		tdb:     newSlot[tdb.Provider](tdb.Simple{}),
		metrics: newSlot[diag.Metrics](diag.NoopMetrics{}),
		logger:  newSlot[diag.Logger](diag.NoopLogger{}),
		gate:    leap.NewGate(),
	}
}

var std = New()

// Default returns the process-wide registry.
func Default() *Registry {
	return std
}

func nilProvider(kind string) error {
	return fmt.Errorf("nil %s provider: %w", kind, sentinel.ErrInvalidConfiguration)
}

// Gate returns the staleness gate applied to leap second lookups.
func (r *Registry) Gate() *leap.Gate {
	return r.gate
}

func (r *Registry) LeapSeconds() leap.Provider {
	return r.leap.load()
}

// SetLeapSeconds installs p and returns the provider it replaced.
func (r *Registry) SetLeapSeconds(p leap.Provider) (leap.Provider, error) {
	if p == nil {
		return nil, nilProvider("leap second")
	}
	return r.leap.swap(p), nil
}

func (r *Registry) DeltaT() deltat.Provider {
	return r.deltaT.load()
}

// SetDeltaT installs p and returns the provider it replaced.
func (r *Registry) SetDeltaT(p deltat.Provider) (deltat.Provider, error) {
	if p == nil {
		return nil, nilProvider("delta t")
	}
	return r.deltaT.swap(p), nil
}

func (r *Registry) Eop() eop.Provider {
	return r.eop.load()
}

// SetEop installs p and returns the provider it replaced.
func (r *Registry) SetEop(p eop.Provider) (eop.Provider, error) {
	if p == nil {
		return nil, nilProvider("eop")
	}
	return r.eop.swap(p), nil
}

func (r *Registry) Tdb() tdb.Provider {
	return r.tdb.load()
}

// SetTdb installs p and returns the provider it replaced.
func (r *Registry) SetTdb(p tdb.Provider) (tdb.Provider, error) {
	if p == nil {
		return nil, nilProvider("tdb")
	}
	return r.tdb.swap(p), nil
}

func (r *Registry) Metrics() diag.Metrics {
	return r.metrics.load()
}

// SetMetrics installs m and returns the sink it replaced.
func (r *Registry) SetMetrics(m diag.Metrics) (diag.Metrics, error) {
	if m == nil {
		return nil, nilProvider("metrics")
	}
	return r.metrics.swap(m), nil
}

func (r *Registry) Logger() diag.Logger {
	return r.logger.load()
}

// SetLogger installs l and returns the sink it replaced.
func (r *Registry) SetLogger(l diag.Logger) (diag.Logger, error) {
	if l == nil {
		return nil, nilProvider("logger")
	}
	return r.logger.swap(l), nil
}

// ReloadLeapSecondsFromFile loads path into a new leap second table and
// installs it, returning the replaced provider. A load failure leaves the
// registry untouched. The logger sink is notified of the outcome; its
// failures are discarded.
func (r *Registry) ReloadLeapSecondsFromFile(path string) (leap.Provider, error) {
	table, err := leap.LoadFile(path)
	if err != nil {
		r.notify(func(l diag.Logger) { l.LeapSecondReload(path, err) })
		return nil, fmt.Errorf("reload leap seconds: %w", err)
	}

	prev := r.leap.swap(table)
	r.notify(func(l diag.Logger) { l.LeapSecondReload(table.Source(), nil) })
	return prev, nil
}

// ReloadEopFromFile loads path into a new EOP table and installs it,
// returning the replaced provider. Failure semantics match
// ReloadLeapSecondsFromFile.
func (r *Registry) ReloadEopFromFile(path string) (eop.Provider, error) {
	table, err := eop.LoadFile(path)
	if err != nil {
		r.notify(func(l diag.Logger) { l.EopReload(path, err) })
		return nil, fmt.Errorf("reload eop: %w", err)
	}

	prev := r.eop.swap(table)
	r.notify(func(l diag.Logger) { l.EopReload(table.Source(), nil) })
	return prev, nil
}

func (r *Registry) notify(fn func(diag.Logger)) {
	l := r.Logger()
	diag.Safely(func() { fn(l) })
}

func (r *Registry) observe(fn func(diag.Metrics)) {
	m := r.Metrics()
	diag.Safely(func() { fn(m) })
}

// LeapOffset looks up TAI-UTC for utc from p through the gate and records
// a hit, or a miss for stale instants. A nil p uses the current leap
// second provider.
func (r *Registry) LeapOffset(p leap.Provider, utc time.Time) (leap.OffsetResult, error) {
	if p == nil {
		p = r.LeapSeconds()
	}

	res, err := r.gate.Offset(p, utc)
	if err != nil || res.Stale {
		r.observe(func(m diag.Metrics) { m.LeapSecondMiss() })
		return res, err
	}

	r.observe(func(m diag.Metrics) { m.LeapSecondHit() })
	return res, nil
}

// DeltaTSeconds evaluates the current ΔT provider and records a hit.
func (r *Registry) DeltaTSeconds(utc time.Time) float64 {
	v := r.DeltaT().DeltaTSeconds(utc)
	r.observe(func(m diag.Metrics) { m.DeltaTHit() })
	return v
}

// DeltaUT1 looks up ΔUT1 from the current EOP provider and records a hit
// or miss.
func (r *Registry) DeltaUT1(utc time.Time) (float64, bool) {
	v, ok := r.Eop().DeltaUT1(utc)
	if ok {
		r.observe(func(m diag.Metrics) { m.EopHit() })
	} else {
		r.observe(func(m diag.Metrics) { m.EopMiss() })
	}
	return v, ok
}
