package astrotime

import (
	"sync"
	"time"

	logging "github.com/ipfs/go-log/v2"
	"github.com/robfig/cron/v3"

	"github.com/subtlepseudonym/astrotime/registry"
)

var log = logging.Logger("astrotime")

const (
	retryLimit        = 5
	defaultRetryDelay = time.Minute
)

// Reloader re-reads the configured leap second and EOP files into a
// registry. A failed reload keeps the previous provider in place.
//
// Once scheduled on a cron, a failed reload is retried after RetryDelay,
// up to retryLimit times in a row, before waiting for the next scheduled
// run.
type Reloader struct {
	Registry   *registry.Registry
	LeapFile   string
	EopFile    string
	RetryDelay time.Duration

	mu       sync.Mutex
	errCount uint
	cron     *cron.Cron
	retryID  cron.EntryID
}

// NewReloader returns a Reloader for r. Empty paths are skipped.
func NewReloader(r *registry.Registry, leapFile, eopFile string) *Reloader {
	return &Reloader{
		Registry:   r,
		LeapFile:   leapFile,
		EopFile:    eopFile,
		RetryDelay: defaultRetryDelay,
	}
}

// Schedule adds the reloader to c on a standard cron spec or descriptor
// such as "@daily". Retries after a failed reload are scheduled on c too.
func (r *Reloader) Schedule(c *cron.Cron, spec string) (cron.EntryID, error) {
	r.mu.Lock()
	r.cron = c
	r.mu.Unlock()

	return c.AddJob(spec, r)
}

// Run reloads every configured file
//
// This implements robfig/cron.Job
func (r *Reloader) Run() {
	_ = r.Reload()
}

// Reload reloads every configured file and returns the first error. Both
// files are attempted even when the first one fails.
func (r *Reloader) Reload() error {
	reg := r.registry()

	var firstErr error
	if r.LeapFile != "" {
		if _, err := reg.ReloadLeapSecondsFromFile(r.LeapFile); err != nil {
			log.Errorw("reload leap seconds", "path", r.LeapFile, "error", err)
			firstErr = err
		}
	}
	if r.EopFile != "" {
		if _, err := reg.ReloadEopFromFile(r.EopFile); err != nil {
			log.Errorw("reload eop", "path", r.EopFile, "error", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cron != nil && r.retryID != 0 {
		r.cron.Remove(r.retryID)
		r.retryID = 0
	}

	if firstErr == nil {
		r.errCount = 0
		return nil
	}

	r.errCount++
	if r.cron != nil && r.errCount <= retryLimit {
		at := time.Now().Add(r.retryDelay())
		r.retryID = r.cron.Schedule(once(at), r)
		log.Infow("retrying reload", "failures", r.errCount, "at", at.Format(time.RFC3339))
	}
	return firstErr
}

// Failures returns the number of consecutive failed reloads.
func (r *Reloader) Failures() uint {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.errCount
}

func (r *Reloader) registry() *registry.Registry {
	if r.Registry == nil {
		return registry.Default()
	}
	return r.Registry
}

func (r *Reloader) retryDelay() time.Duration {
	if r.RetryDelay <= 0 {
		return defaultRetryDelay
	}
	return r.RetryDelay
}

// once fires a single time at the instant it holds
//
// This implements robfig/cron.Schedule
type once time.Time

func (o once) Next(now time.Time) time.Time {
	at := time.Time(o)
	if now.Before(at) {
		return at
	}
	return time.Time{}
}
