package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/subtlepseudonym/astrotime"
	"github.com/subtlepseudonym/astrotime/csvtab"
	"github.com/subtlepseudonym/astrotime/registry"
	"github.com/subtlepseudonym/astrotime/sidereal"
	"github.com/subtlepseudonym/astrotime/solar"
)

var convertCmd = &cobra.Command{
	Use:   "convert [time] [scale...]",
	Short: "Print Julian days of an instant",
	Long: `Print the Julian day of an instant on each requested scale. The
instant defaults to now and the scales default to UTC TAI TT TDB.`,
	Args: cobra.ArbitraryArgs,
	RunE: runConvert,
}

var offsetCmd = &cobra.Command{
	Use:   "offset <from> <to> [time]",
	Short: "Print the offset in seconds between two scales",
	Args:  cobra.RangeArgs(2, 3),
	RunE:  runOffset,
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the installed providers and staleness settings",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

var solarCmd = &cobra.Command{
	Use:   "solar [date]",
	Short: "Print sunrise, solar noon and sunset at the configured location",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSolar,
}

var (
	latitude   float64
	longitude  float64
	timeZone   string
	statusJSON bool
)

func init() {
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "print JSON")
	solarCmd.Flags().StringVar(&timeZone, "tz", "UTC", "IANA time zone for the date and the printed times")
	solarCmd.Flags().Float64Var(&latitude, "lat", 0, "latitude in degrees (overrides config)")
	solarCmd.Flags().Float64Var(&longitude, "lon", 0, "longitude in degrees east (overrides config)")
}

func parseTime(args []string, i int) (time.Time, error) {
	if len(args) <= i {
		return time.Now(), nil
	}
	return csvtab.ParseTime(args[i])
}

func runConvert(cmd *cobra.Command, args []string) error {
	t := time.Now()
	names := args
	if len(args) > 0 {
		if parsed, err := csvtab.ParseTime(args[0]); err == nil {
			t = parsed
			names = args[1:]
		}
	}

	scales := []astrotime.TimeScale{astrotime.UTC, astrotime.TAI, astrotime.TT, astrotime.TDB}
	if len(names) > 0 {
		scales = scales[:0]
		for _, name := range names {
			scale, err := astrotime.ParseTimeScale(name)
			if err != nil {
				return err
			}
			scales = append(scales, scale)
		}
	}

	inst, err := astrotime.Normalize(t)
	if err != nil {
		return err
	}
	if inst.Stale() {
		log.Warnw("instant is past the leap second horizon", "utc", inst)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "utc\t%s\n", inst)
	for _, scale := range scales {
		jd, err := inst.JulianDay(scale)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s\t%.9f\n", scale, jd.Float())
	}
	fmt.Fprintf(out, "ΔT\t%.3f s\n", inst.DeltaT())

	angles, err := sidereal.At(inst.UTC())
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "ERA\t%.9f rad\nGMST\t%.9f rad\n", angles.ERA, angles.GMST)
	return nil
}

func runOffset(cmd *cobra.Command, args []string) error {
	from, err := astrotime.ParseTimeScale(args[0])
	if err != nil {
		return err
	}
	to, err := astrotime.ParseTimeScale(args[1])
	if err != nil {
		return err
	}
	t, err := parseTime(args, 2)
	if err != nil {
		return err
	}

	seconds, err := astrotime.OffsetSeconds(from, to, t)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%.9f\n", seconds)
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	reg := registry.Default()
	status := astrotime.Status(reg)

	out := cmd.OutOrStdout()
	if statusJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(status)
	}

	lastChange := reg.LeapSeconds().LastChange()
	fmt.Fprintf(out, "leap seconds\t%s (%s)\n", status.LeapSource, status.LeapVersion)
	fmt.Fprintf(out, "last change\t%s (%s)\n", status.LeapLastChange, humanize.Time(lastChange))
	fmt.Fprintf(out, "horizon\t%s (%s, %d years)\n", status.StalenessHorizon, status.HorizonIn, status.HorizonYears)
	fmt.Fprintf(out, "strict\t%t\n", status.Strict)
	fmt.Fprintf(out, "eop\t%s (%s)\n", status.EopSource, status.EopVersion)
	if status.EopEpoch != "" {
		fmt.Fprintf(out, "eop epoch\t%s\n", status.EopEpoch)
	}
	return nil
}

func runSolar(cmd *cobra.Command, args []string) error {
	loc := solar.Location{}
	if cfg.Location != nil {
		loc = *cfg.Location
	}
	if cmd.Flags().Changed("lat") {
		loc.Latitude = latitude
	}
	if cmd.Flags().Changed("lon") {
		loc.Longitude = longitude
	}

	tz, err := time.LoadLocation(timeZone)
	if err != nil {
		return fmt.Errorf("load time zone: %w", err)
	}

	date, err := parseTime(args, 0)
	if err != nil {
		return err
	}
	year, month, day := date.Date()

	events, err := solar.EventsOn(loc, time.Date(year, month, day, 0, 0, 0, 0, tz))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "location\t%s\n", loc)
	if events.Polar != solar.PolarNone {
		fmt.Fprintf(out, "%s\n", events.Polar)
	}

	lines := []struct {
		name string
		at   *time.Time
	}{
		{"astronomical dawn", events.AstronomicalDawn},
		{"nautical dawn", events.NauticalDawn},
		{"civil dawn", events.CivilDawn},
		{"sunrise", events.Sunrise},
		{"noon", &events.Noon},
		{"sunset", events.Sunset},
		{"civil dusk", events.CivilDusk},
		{"nautical dusk", events.NauticalDusk},
		{"astronomical dusk", events.AstronomicalDusk},
	}
	for _, line := range lines {
		if line.at != nil {
			fmt.Fprintf(out, "%s\t%s\n", line.name, line.at.Format(time.RFC3339))
		}
	}
	return nil
}
