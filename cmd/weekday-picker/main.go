package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/username/weekday-picker/internal/calendar"
	"github.com/username/weekday-picker/internal/config"
	"github.com/username/weekday-picker/internal/picker"
	"github.com/username/weekday-picker/internal/report"
)

var (
	configPath string
	logger     *zap.Logger
	logToFile  bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "weekday-picker",
		Short:         "Weekday/weekend date range picker",
		Long:          "Pick a date range from a two-month calendar and get its weekdays and weekends",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load config to get log file path
			cfg, err := config.Load(configPath)
			if err == nil && cfg.Log.File != "" {
				logger, err = initFileLogger(cfg.Log.File, cfg.Log.Level)
				if err != nil {
					initLogger() // Fallback to console
				} else {
					logToFile = true
				}
			} else {
				initLogger() // Default console logger
			}
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (default: ./config.yaml, ~/.weekday-picker, /etc/weekday-picker)")

	rootCmd.AddCommand(
		pickCmd(),
		classifyCmd(),
		rangesCmd(),
		rangeCmd(),
		gridCmd(),
		trayCmd(),
	)

	return rootCmd
}

// initializeController builds the picker from configuration. The host
// callback goes to sink; pass nil when the caller reads the returned
// emissions itself.
func initializeController(cfg *config.Config, opts picker.Options, sink *report.Collector, log *zap.Logger) (*picker.Controller, error) {
	custom, err := cfg.Ranges.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build custom ranges: %w", err)
	}

	clock := opts.Clock
	if clock == nil {
		clock = calendar.SystemClock
	}

	opts.Clock = clock
	opts.Catalog = calendar.NewCatalog(clock, custom, cfg.Ranges.GetMergePolicy())
	opts.DismissDelay = cfg.Picker.GetDismissDelay()
	opts.HoverLimitDays = cfg.Picker.GetHoverLimitDays()
	opts.PastYears = cfg.Picker.PastYears
	opts.FutureYears = cfg.Picker.FutureYears
	opts.NextPaneYears = cfg.Picker.NextPaneYears
	opts.DateFormat = cfg.Picker.GetDateFormat()
	if sink != nil {
		opts.OnEmit = sink.Emit
	}

	log.Debug("Picker configured",
		zap.Int("ranges", opts.Catalog.Len()),
		zap.Duration("dismiss_delay", opts.DismissDelay),
		zap.Int("past_years", opts.PastYears),
		zap.Int("future_years", opts.FutureYears),
		zap.String("date_format", opts.DateFormat))

	return picker.New(opts, log), nil
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// outputFormat returns the flag value when set, the configured one otherwise
func outputFormat(cmd *cobra.Command, flag string, cfg *config.Config) string {
	if cmd.Flags().Changed("format") {
		return flag
	}
	return cfg.Output.Format
}

func initLogger() {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var err error
	logger, err = config.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
}

func initFileLogger(logFile string, level string) (*zap.Logger, error) {
	// Setup lumberjack for log rotation
	logWriter := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    100,  // MB
		MaxBackups: 3,    // Keep max 3 old log files
		MaxAge:     28,   // days
		Compress:   true, // Compress old logs with gzip
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zapcore.InfoLevel
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(logWriter),
		zapLevel,
	)

	return zap.New(core), nil
}

// screenLogger is the logger for full-screen commands: console output would
// corrupt the terminal, so only a log file is used.
func screenLogger() *zap.Logger {
	if logToFile {
		return logger
	}
	return zap.NewNop()
}
