package astrotime

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subtlepseudonym/astrotime/registry"
	"github.com/subtlepseudonym/astrotime/sentinel"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestReloaderInstallsFiles(t *testing.T) {
	reg := registry.New()
	leapFile := writeTemp(t, "leap.csv", "1972-01-01T00:00:00Z,10\n2017-01-01T00:00:00Z,37\n")
	eopFile := writeTemp(t, "eop.csv", "2019-06-01,-0.1504\n")

	r := NewReloader(reg, leapFile, eopFile)
	require.NoError(t, r.Reload())
	assert.Zero(t, r.Failures())

	assert.Equal(t, leapFile, reg.LeapSeconds().Source())
	assert.Equal(t, eopFile, reg.Eop().Source())

	inst, err := Normalize(june2019, WithRegistry(reg))
	require.NoError(t, err)
	dut1, ok := inst.UT1MinusUTC(WithRegistry(reg))
	assert.True(t, ok)
	assert.InDelta(t, -0.1504, dut1, 1e-12)
}

func TestReloaderKeepsProviderOnFailure(t *testing.T) {
	reg := registry.New()
	before := reg.LeapSeconds()

	r := NewReloader(reg, writeTemp(t, "leap.csv", "2017-01-01T00:00:00Z,37\n2016-01-01T00:00:00Z,36\n"), "")
	err := r.Reload()
	require.ErrorIs(t, err, sentinel.ErrCsvStructural)
	assert.Same(t, before, reg.LeapSeconds())
	assert.EqualValues(t, 1, r.Failures())

	r.Run()
	assert.EqualValues(t, 2, r.Failures())
}

func startCron(t *testing.T) *cron.Cron {
	t.Helper()
	c := cron.New()
	c.Start()
	t.Cleanup(func() { <-c.Stop().Done() })
	return c
}

func TestScheduledReloadRetries(t *testing.T) {
	reg := registry.New()
	r := NewReloader(reg, filepath.Join(t.TempDir(), "missing.csv"), "")
	r.RetryDelay = 20 * time.Millisecond

	c := startCron(t)
	_, err := r.Schedule(c, "@every 1h")
	require.NoError(t, err)
	require.Len(t, c.Entries(), 1)

	// first scheduled run fails; the retries run on the cron
	r.Run()
	require.Eventually(t, func() bool {
		return r.Failures() == retryLimit+1
	}, 5*time.Second, 5*time.Millisecond)

	time.Sleep(5 * r.RetryDelay)
	assert.EqualValues(t, retryLimit+1, r.Failures())
	assert.Len(t, c.Entries(), 1, "no retry left pending")
	assert.Equal(t, "builtin", reg.LeapSeconds().Source())
}

func TestScheduledReloadRecovers(t *testing.T) {
	reg := registry.New()
	path := filepath.Join(t.TempDir(), "leap.csv")
	r := NewReloader(reg, path, "")
	r.RetryDelay = 100 * time.Millisecond

	c := startCron(t)
	_, err := r.Schedule(c, "@every 1h")
	require.NoError(t, err)

	r.Run()
	require.EqualValues(t, 1, r.Failures())
	require.Len(t, c.Entries(), 2)

	require.NoError(t, os.WriteFile(path, []byte("1972-01-01T00:00:00Z,10\n2017-01-01T00:00:00Z,37\n"), 0o600))
	require.Eventually(t, func() bool {
		return reg.LeapSeconds().Source() == path
	}, 5*time.Second, 5*time.Millisecond)

	require.Eventually(t, func() bool {
		return r.Failures() == 0 && len(c.Entries()) == 1
	}, time.Second, 5*time.Millisecond)
}

func TestReloadWithoutCronDoesNotRetry(t *testing.T) {
	r := NewReloader(registry.New(), filepath.Join(t.TempDir(), "missing.csv"), "")
	r.RetryDelay = time.Millisecond

	require.Error(t, r.Reload())
	time.Sleep(20 * time.Millisecond)
	assert.EqualValues(t, 1, r.Failures())

	_, err := r.Schedule(cron.New(), "every tuesday")
	assert.Error(t, err)
}

func TestWatcherReloadsOnChange(t *testing.T) {
	reg := registry.New()
	leapFile := writeTemp(t, "leap.csv", "1972-01-01T00:00:00Z,10\n2017-01-01T00:00:00Z,37\n")
	require.NoError(t, NewReloader(reg, leapFile, "").Reload())

	w, err := NewReloader(reg, leapFile, "").Watch()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		require.NoError(t, <-done)
	})

	updated := "1972-01-01T00:00:00Z,10\n2017-01-01T00:00:00Z,37\n2019-01-01T00:00:00Z,38\n"
	require.NoError(t, os.WriteFile(leapFile, []byte(updated), 0o600))

	require.Eventually(t, func() bool {
		return reg.LeapSeconds().LastChange().Year() == 2019
	}, 5*time.Second, 10*time.Millisecond)
}

func TestWatchMissingDirectory(t *testing.T) {
	r := NewReloader(registry.New(), filepath.Join(t.TempDir(), "gone", "leap.csv"), "")
	_, err := r.Watch()
	assert.Error(t, err)
}
