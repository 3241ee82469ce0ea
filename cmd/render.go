package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"driver_logsheet/internal/config"
	"driver_logsheet/internal/fixtures"
	"driver_logsheet/internal/logger"
	"driver_logsheet/internal/logsheet"
	"driver_logsheet/internal/models"

	"github.com/spf13/cobra"
)

type renderOptions struct {
	file      string
	demo      string
	day       int
	configDir string
	compact   bool
}

func newRenderCmd() *cobra.Command {
	var opts renderOptions
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render one day of a schedule file and print the draw list as JSON",
		Example: appName + " render --file trip.yaml --day 2\n" +
			appName + " render --demo long --day 3",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRender(cmd, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "Trip schedule (YAML or JSON)")
	cmd.Flags().StringVar(&opts.demo, "demo", "", "Use a bundled demo trip: short or long")
	cmd.Flags().IntVarP(&opts.day, "day", "d", 1, "1-based day number")
	cmd.Flags().StringVar(&opts.configDir, "config", "configs", "Directory holding config.yml (layout constants)")
	cmd.Flags().BoolVar(&opts.compact, "compact", false, "Print JSON without indentation")
	cmd.MarkFlagsMutuallyExclusive("file", "demo")
	cmd.MarkFlagsOneRequired("file", "demo")
	return cmd
}

func runRender(cmd *cobra.Command, opts renderOptions) error {
	loader, err := config.Load(opts.configDir)
	if err != nil {
		return err
	}
	cfg := loader.Config()
	// stdout carries the JSON, so logs go to stderr.
	log := logger.NewWithWriter(cmd.ErrOrStderr(), cfg.LogLevel)

	trip, err := loadTrip(opts)
	if err != nil {
		return err
	}
	day, ok := trip.Day(opts.day)
	if !ok {
		return fmt.Errorf("trip %q has no day %d", trip.Name, opts.day)
	}

	r, err := logsheet.NewRenderer(cfg.Layout)
	if err != nil {
		return err
	}
	out := r.Render(logsheet.DayInput(day))
	if !out.Totals.IsValid {
		log.Warnw("totals do not add up to 24h", "day", day.Day, "sum", out.Totals.Sum)
	}
	for _, d := range out.Diagnostics {
		log.Warnw("segment skipped", "status", d.Status, "index", d.Index, "reason", d.Reason)
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	if !opts.compact {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(out)
}

func loadTrip(opts renderOptions) (models.TripSchedule, error) {
	if opts.demo != "" {
		return fixtures.DemoTrip(opts.demo)
	}
	if opts.file == "" {
		return models.TripSchedule{}, errors.New("--file or --demo is required")
	}
	data, err := os.ReadFile(opts.file)
	if err != nil {
		return models.TripSchedule{}, err
	}
	return fixtures.Decode(data)
}
