// Package diag defines the observer sinks the time core reports to:
// lookup counters and reload outcomes. Sinks never influence results.
package diag

// Metrics counts provider lookups. Implementations must be safe for
// concurrent use and cheap; they are called on the conversion path.
type Metrics interface {
	LeapSecondHit()
	LeapSecondMiss()
	DeltaTHit()
	EopHit()
	EopMiss()
}

// Logger is notified after a provider reload attempt. A nil err means the
// new provider was installed.
type Logger interface {
	LeapSecondReload(source string, err error)
	EopReload(source string, err error)
}

// NoopMetrics discards all counts.
type NoopMetrics struct{}

func (NoopMetrics) LeapSecondHit()  {}
func (NoopMetrics) LeapSecondMiss() {}
func (NoopMetrics) DeltaTHit()      {}
func (NoopMetrics) EopHit()         {}
func (NoopMetrics) EopMiss()        {}

// NoopLogger discards all notifications.
type NoopLogger struct{}

func (NoopLogger) LeapSecondReload(string, error) {}
func (NoopLogger) EopReload(string, error)        {}

// Safely runs fn and swallows any panic from it. Sink calls go through
// this so a misbehaving observer cannot fail a conversion or a reload.
func Safely(fn func()) {
	defer func() {
		_ = recover()
	}()
	fn()
}
