package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subtlepseudonym/astrotime/deltat"
	"github.com/subtlepseudonym/astrotime/eop"
	"github.com/subtlepseudonym/astrotime/leap"
	"github.com/subtlepseudonym/astrotime/registry"
	"github.com/subtlepseudonym/astrotime/sentinel"
	"github.com/subtlepseudonym/astrotime/tdb"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	config := Default()
	require.NoError(t, config.Validate())
	assert.Equal(t, ":9000", config.Listen)
	assert.Equal(t, leap.DefaultHorizonYears, config.LeapSeconds.HorizonYears)
	assert.Equal(t, DeltaTBlended, config.DeltaT.Provider)
	assert.Equal(t, TdbSimple, config.Tdb.Provider)
	assert.Equal(t, "@daily", config.Reload.Schedule)
}

func TestOpen(t *testing.T) {
	path := writeFile(t, "astrotime.yaml", `
listen: ":9100"
leap_seconds:
  horizon_years: 3
  strict: true
delta_t:
  provider: hybrid
tdb:
  provider: expanded
location:
  latitude: 51.5
  longitude: -0.12
`)

	config, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, config.Validate())

	assert.Equal(t, ":9100", config.Listen)
	assert.Equal(t, "info", config.LogLevel, "unset keys keep their defaults")
	assert.Equal(t, 3, config.LeapSeconds.HorizonYears)
	assert.True(t, config.LeapSeconds.Strict)
	assert.Equal(t, DeltaTHybrid, config.DeltaT.Provider)
	require.NotNil(t, config.Location)
	assert.Equal(t, 51.5, config.Location.Latitude)

	config, err = Open("")
	require.NoError(t, err)
	assert.Equal(t, Default(), config)

	_, err = Open(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Open(writeFile(t, "bad.yaml", "listen: [unclosed\n"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"log level", func(c *Config) { c.LogLevel = "loud" }},
		{"horizon low", func(c *Config) { c.LeapSeconds.HorizonYears = 0 }},
		{"horizon high", func(c *Config) { c.LeapSeconds.HorizonYears = 101 }},
		{"delta t", func(c *Config) { c.DeltaT.Provider = "crystal ball" }},
		{"tdb", func(c *Config) { c.Tdb.Provider = "" }},
		{"schedule", func(c *Config) { c.Reload.Schedule = "sometimes" }},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			config := Default()
			test.modify(config)
			assert.ErrorIs(t, config.Validate(), sentinel.ErrInvalidConfiguration)
		})
	}
}

func TestApply(t *testing.T) {
	t.Setenv(leap.StrictEnv, "")

	config := Default()
	config.LeapSeconds.HorizonYears = 4
	config.LeapSeconds.File = writeFile(t, "leap.csv", "1972-01-01T00:00:00Z,10\n2017-01-01T00:00:00Z,37\n")
	config.Eop.File = writeFile(t, "eop.csv", "2025-01-01,0.114843\n")
	config.DeltaT.Provider = DeltaTPolynomial
	config.Tdb.Provider = TdbExpanded

	reg := registry.New()
	require.NoError(t, Apply(config, reg))

	assert.Equal(t, 4, reg.Gate().HorizonYears())
	assert.False(t, reg.Gate().Strict())
	assert.Equal(t, deltat.Polynomial{}, reg.DeltaT())
	assert.IsType(t, &tdb.Expanded{}, reg.Tdb())
	assert.Equal(t, config.LeapSeconds.File, reg.LeapSeconds().Source())
	assert.IsType(t, &eop.Table{}, reg.Eop())
}

func TestApplyStrictFromEnv(t *testing.T) {
	t.Setenv(leap.StrictEnv, "true")

	reg := registry.New()
	require.NoError(t, Apply(Default(), reg))
	assert.True(t, reg.Gate().Strict())
}

func TestApplyRejectsInvalid(t *testing.T) {
	reg := registry.New()
	before := reg.DeltaT()

	config := Default()
	config.DeltaT.Provider = "nope"
	assert.ErrorIs(t, Apply(config, reg), sentinel.ErrInvalidConfiguration)
	assert.Same(t, before, reg.DeltaT())

	config = Default()
	config.LeapSeconds.File = filepath.Join(t.TempDir(), "missing.csv")
	assert.Error(t, Apply(config, reg))
}
