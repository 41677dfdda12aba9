package sidereal

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subtlepseudonym/astrotime"
	"github.com/subtlepseudonym/astrotime/eop"
	"github.com/subtlepseudonym/astrotime/julian"
	"github.com/subtlepseudonym/astrotime/registry"
	"github.com/subtlepseudonym/astrotime/sentinel"
)

func TestEraRadians(t *testing.T) {
	assert.InDelta(t, 4.894961212823756, EraRadians(julian.J2000), 1e-12)

	// one sidereal day later the angle is back where it started
	siderealDay := julian.Day(julian.J2000 + 1/eraRotationRatio)
	assert.InDelta(t, EraRadians(julian.J2000), EraRadians(siderealDay), 1e-9)

	for _, jd := range []julian.Day{2400000.5, 2451545.25, 2460000.75} {
		era := EraRadians(jd)
		assert.GreaterOrEqual(t, era, 0.0)
		assert.Less(t, era, twoPi)
	}
}

func TestGmstRadians(t *testing.T) {
	// 18.697374558 hours at J2000.0
	assert.InDelta(t, 4.894961213, GmstRadians(julian.J2000, julian.J2000), 1e-8)

	gmst := GmstRadians(2460000.5, 2460000.5008)
	assert.GreaterOrEqual(t, gmst, 0.0)
	assert.Less(t, gmst, twoPi)
}

func TestAtUsesDeltaUT1(t *testing.T) {
	reg := registry.New()
	at := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

	without, err := At(at, astrotime.WithRegistry(reg))
	require.NoError(t, err)
	assert.False(t, without.UT1)

	table, err := eop.Parse(strings.NewReader("2025-01-01,0.5\n"), "mem")
	require.NoError(t, err)
	_, err = reg.SetEop(table)
	require.NoError(t, err)

	with, err := At(at, astrotime.WithRegistry(reg))
	require.NoError(t, err)
	assert.True(t, with.UT1)

	// half a UT1 second turns the Earth by about 3.65e-5 rad
	want := wrap(without.ERA + 0.5/julian.SecondsPerDay*twoPi*eraRotationRatio)
	assert.InDelta(t, want, with.ERA, 1e-9)
}

func TestAtStrict(t *testing.T) {
	reg := registry.New()
	reg.Gate().SetStrict(true)

	_, err := At(time.Date(2050, time.January, 1, 0, 0, 0, 0, time.UTC), astrotime.WithRegistry(reg))
	assert.ErrorIs(t, err, sentinel.ErrStaleInstant)
}
