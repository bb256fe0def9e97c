package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/username/weekday-picker/internal/daemon"
	"github.com/username/weekday-picker/internal/picker"
	"github.com/username/weekday-picker/internal/report"
	"github.com/username/weekday-picker/internal/tui"
	"github.com/username/weekday-picker/pkg/dateutil"
)

var formatUsage = "Output format (" + strings.Join(report.Formats(), ", ") + ")"

func pickCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Pick a date range interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			w, err := report.NewWriter(outputFormat(cmd, format, cfg), cmd.OutOrStdout())
			if err != nil {
				return err
			}

			log := screenLogger()
			sink := report.NewCollector(log)
			events := picker.NewEvents()
			sched := tui.NewScheduler()

			ctrl, err := initializeController(cfg, picker.Options{
				Events:    events,
				Scheduler: sched,
			}, sink, log)
			if err != nil {
				return err
			}
			defer ctrl.Close()

			if err := tui.Run(tui.New(ctrl, events, log), sched); err != nil {
				return fmt.Errorf("picker failed: %w", err)
			}

			if sink.Len() == 0 {
				fmt.Fprintln(cmd.ErrOrStderr(), "No range picked")
				return nil
			}
			return w.WriteResults(sink.Results())
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", formatUsage)
	return cmd
}

func classifyCmd() *cobra.Command {
	var start, end, format string

	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify every day of a range as weekday or weekend",
		Example: "  weekday-picker classify --start 01/03/2024 --end 10/03/2024\n" +
			"  weekday-picker classify --start 2024-03-10 --end 2024-03-01 -f json",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			w, err := report.NewWriter(outputFormat(cmd, format, cfg), cmd.OutOrStdout())
			if err != nil {
				return err
			}

			from, err := dateutil.ParseDate(start)
			if err != nil {
				return fmt.Errorf("invalid --start: %w", err)
			}
			to, err := dateutil.ParseDate(end)
			if err != nil {
				return fmt.Errorf("invalid --end: %w", err)
			}

			ctrl, err := initializeController(cfg, picker.Options{}, nil, logger)
			if err != nil {
				return err
			}
			defer ctrl.Close()

			// Same path as the calendar: two clicks and a pick
			ctrl.Open()
			ctrl.Click(from)
			ctrl.Click(to)
			em, ok := ctrl.Pick()
			if !ok {
				return fmt.Errorf("no range selected")
			}

			logger.Info("Range classified",
				zap.String("range", em.Range.String()),
				zap.Int("weekdays", len(em.Weekdays)),
				zap.Int("weekends", len(em.Weekends)))

			return w.WriteResults([]report.Result{report.FromEmission(em)})
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "Start date (dd/mm/yyyy, yyyy-mm-dd, dd.mm.yyyy or dd/mm/yy)")
	cmd.Flags().StringVar(&end, "end", "", "End date")
	cmd.Flags().StringVarP(&format, "format", "f", "", formatUsage)
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func rangesCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "ranges",
		Short: "List the predefined ranges resolved for today",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			w, err := report.NewWriter(outputFormat(cmd, format, cfg), cmd.OutOrStdout())
			if err != nil {
				return err
			}

			ctrl, err := initializeController(cfg, picker.Options{}, nil, logger)
			if err != nil {
				return err
			}
			defer ctrl.Close()

			return w.WriteRanges(ctrl.Ranges())
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", formatUsage)
	return cmd
}

func rangeCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "range <label|number>",
		Short: "Classify one predefined range",
		Example: "  weekday-picker range \"Last Month\"\n" +
			"  weekday-picker range 3 -f yaml",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			w, err := report.NewWriter(outputFormat(cmd, format, cfg), cmd.OutOrStdout())
			if err != nil {
				return err
			}

			sink := report.NewCollector(logger)
			ctrl, err := initializeController(cfg, picker.Options{}, sink, logger)
			if err != nil {
				return err
			}
			defer ctrl.Close()

			i, err := ctrl.Lookup(args[0])
			if err != nil {
				return err
			}
			if _, err := ctrl.SelectPredefined(i); err != nil {
				return err
			}

			return w.WriteResults(sink.Results())
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", formatUsage)
	return cmd
}

func gridCmd() *cobra.Command {
	var month, year int

	cmd := &cobra.Command{
		Use:   "grid",
		Short: "Print the calendar grid of a month",
		RunE: func(cmd *cobra.Command, args []string) error {
			today := dateutil.Today()
			if month == 0 {
				month = int(today.Month())
			}
			if year == 0 {
				year = today.Year()
			}
			if month < 1 || month > 12 {
				return fmt.Errorf("invalid --month %d: must be 1-12", month)
			}

			return report.WriteMonth(cmd.OutOrStdout(), year, time.Month(month), today)
		},
	}

	cmd.Flags().IntVarP(&month, "month", "m", 0, "Month 1-12 (default: current)")
	cmd.Flags().IntVarP(&year, "year", "y", 0, "Year (default: current)")
	return cmd
}

func trayCmd() *cobra.Command {
	var noTray bool

	cmd := &cobra.Command{
		Use:   "tray",
		Short: "Run in the background with the predefined ranges in the system tray",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			ctrl, err := initializeController(cfg, picker.Options{}, nil, logger)
			if err != nil {
				return err
			}
			defer ctrl.Close()

			d := daemon.New(ctrl, cfg.Tray.Enabled && !noTray, logger)
			return d.Start()
		},
	}

	cmd.Flags().BoolVar(&noTray, "no-tray", false, "Run in console mode even when the tray is enabled")
	return cmd
}
