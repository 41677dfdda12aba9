package main

import (
	"fmt"
	"os"
	_ "time/tzdata"

	logging "github.com/ipfs/go-log/v2"
	"github.com/spf13/cobra"

	"github.com/subtlepseudonym/astrotime/config"
	"github.com/subtlepseudonym/astrotime/diag"
	"github.com/subtlepseudonym/astrotime/registry"
)

var log = logging.Logger("astrotime/cmd")

var rootCmd = &cobra.Command{
	Use:   "astrotime",
	Short: "Convert instants between UTC, TAI, TT and TDB",
	Long: `astrotime converts instants between astronomical time scales using
swappable leap second, ΔT, Earth orientation and TDB data sources.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

var (
	configPath string
	leapFile   string
	eopFile    string
	strict     bool
	debug      bool

	cfg *config.Config
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().StringVar(&leapFile, "leap-seconds", "", "leap second CSV file (overrides config)")
	rootCmd.PersistentFlags().StringVar(&eopFile, "eop", "", "EOP CSV file (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&strict, "strict", false, "fail on instants past the leap second horizon")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(offsetCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(solarCmd)
}

// setup loads the config, applies flag overrides and installs the result
// into the default registry.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Open(configPath)
	if err != nil {
		return err
	}

	if leapFile != "" {
		cfg.LeapSeconds.File = leapFile
	}
	if eopFile != "" {
		cfg.Eop.File = eopFile
	}
	if strict {
		cfg.LeapSeconds.Strict = true
	}
	if debug {
		cfg.LogLevel = "debug"
	}

	level, err := logging.LevelFromString(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	logging.SetAllLoggers(level)

	reg := registry.Default()
	if _, err := reg.SetLogger(diag.NewLogger()); err != nil {
		return err
	}
	return config.Apply(cfg, reg)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
