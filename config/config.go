package config

import (
	"errors"
	"fmt"
	"os"

	logging "github.com/ipfs/go-log/v2"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"

	"github.com/subtlepseudonym/astrotime/deltat"
	"github.com/subtlepseudonym/astrotime/leap"
	"github.com/subtlepseudonym/astrotime/registry"
	"github.com/subtlepseudonym/astrotime/sentinel"
	"github.com/subtlepseudonym/astrotime/solar"
	"github.com/subtlepseudonym/astrotime/tdb"
)

const (
	DeltaTPolynomial = "polynomial"
	DeltaTBlended    = "blended"
	DeltaTHistorical = "historical"
	DeltaTHybrid     = "hybrid"

	TdbSimple   = "simple"
	TdbExpanded = "expanded"
)

type Config struct {
	Listen      string          `yaml:"listen"`
	LogLevel    string          `yaml:"log_level"`
	LeapSeconds LeapSeconds     `yaml:"leap_seconds"`
	Eop         Eop             `yaml:"eop"`
	DeltaT      Provider        `yaml:"delta_t"`
	Tdb         Provider        `yaml:"tdb"`
	Reload      Reload          `yaml:"reload"`
	Location    *solar.Location `yaml:"location,omitempty"`
}

// LeapSeconds configures the leap second table and staleness gate. An
// empty File keeps the built-in table.
type LeapSeconds struct {
	File         string `yaml:"file"`
	HorizonYears int    `yaml:"horizon_years"`
	Strict       bool   `yaml:"strict"`
}

// Eop configures the Earth orientation table. An empty File means no EOP
// data.
type Eop struct {
	File string `yaml:"file"`
}

type Provider struct {
	Provider string `yaml:"provider"`
}

// Reload controls when the data files are re-read: on a cron schedule,
// and on file change when Watch is set.
type Reload struct {
	Schedule string `yaml:"schedule"`
	Watch    bool   `yaml:"watch"`
}

func Default() *Config {
	return &Config{
		Listen:   ":9000",
		LogLevel: "info",
		LeapSeconds: LeapSeconds{
			HorizonYears: leap.DefaultHorizonYears,
		},
		DeltaT: Provider{Provider: DeltaTBlended},
		Tdb:    Provider{Provider: TdbSimple},
		Reload: Reload{Schedule: "@daily"},
	}
}

// Open reads a YAML config file over the defaults. An empty filename
// returns the defaults.
func Open(filename string) (*Config, error) {
	config := Default()
	if filename == "" {
		return config, nil
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	err = yaml.Unmarshal(data, config)
	if err != nil {
		return nil, fmt.Errorf("decode config file: %w", err)
	}

	return config, nil
}

func (c *Config) Validate() error {
	var errs []error

	if _, err := logging.LevelFromString(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level %q: %w", c.LogLevel, err))
	}

	h := c.LeapSeconds.HorizonYears
	if h < leap.MinHorizonYears || h > leap.MaxHorizonYears {
		errs = append(errs, fmt.Errorf("leap_seconds.horizon_years %d outside [%d, %d]", h, leap.MinHorizonYears, leap.MaxHorizonYears))
	}

	if _, err := NewDeltaT(c.DeltaT.Provider); err != nil {
		errs = append(errs, err)
	}
	if _, err := NewTdb(c.Tdb.Provider); err != nil {
		errs = append(errs, err)
	}

	if c.Reload.Schedule != "" {
		if _, err := cron.ParseStandard(c.Reload.Schedule); err != nil {
			errs = append(errs, fmt.Errorf("reload.schedule %q: %w", c.Reload.Schedule, err))
		}
	}

	if c.Location != nil {
		if err := c.Location.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("location: %w", err))
		}
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%w: %w", sentinel.ErrInvalidConfiguration, err)
	}
	return nil
}

// NewDeltaT returns the ΔT provider registered under name.
func NewDeltaT(name string) (deltat.Provider, error) {
	switch name {
	case DeltaTPolynomial:
		return deltat.Polynomial{}, nil
	case DeltaTBlended:
		return deltat.DefaultBlended(), nil
	case DeltaTHistorical:
		return deltat.DefaultHistorical(), nil
	case DeltaTHybrid:
		return deltat.NewHybrid(deltat.DefaultHistorical()), nil
	default:
		return nil, fmt.Errorf("unknown delta_t provider %q", name)
	}
}

// NewTdb returns the TDB correction provider registered under name.
func NewTdb(name string) (tdb.Provider, error) {
	switch name {
	case TdbSimple:
		return tdb.Simple{}, nil
	case TdbExpanded:
		return tdb.DefaultExpanded(), nil
	default:
		return nil, fmt.Errorf("unknown tdb provider %q", name)
	}
}

// Apply installs the configured providers and gate settings into reg.
// Strict mode is on when either the config or the environment asks for
// it. Nothing after the first failing step is applied.
func Apply(c *Config, reg *registry.Registry) error {
	if err := c.Validate(); err != nil {
		return err
	}

	gate := reg.Gate()
	if err := gate.SetHorizonYears(c.LeapSeconds.HorizonYears); err != nil {
		return err
	}
	gate.SetStrict(c.LeapSeconds.Strict || leap.StrictFromEnv())

	deltaT, _ := NewDeltaT(c.DeltaT.Provider)
	if _, err := reg.SetDeltaT(deltaT); err != nil {
		return err
	}

	correction, _ := NewTdb(c.Tdb.Provider)
	if _, err := reg.SetTdb(correction); err != nil {
		return err
	}

	if c.LeapSeconds.File != "" {
		if _, err := reg.ReloadLeapSecondsFromFile(c.LeapSeconds.File); err != nil {
			return err
		}
	}
	if c.Eop.File != "" {
		if _, err := reg.ReloadEopFromFile(c.Eop.File); err != nil {
			return err
		}
	}

	return nil
}
