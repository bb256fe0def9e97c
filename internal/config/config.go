package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/username/weekday-picker/internal/calendar"
	"github.com/username/weekday-picker/pkg/dateutil"
)

// EnvPrefix prefixes environment overrides, e.g. WEEKDAY_PICKER_OUTPUT_FORMAT
const EnvPrefix = "WEEKDAY_PICKER"

// Config represents application configuration
type Config struct {
	Picker PickerConfig `mapstructure:"picker"`
	Ranges RangesConfig `mapstructure:"ranges"`
	Output OutputConfig `mapstructure:"output"`
	Log    LogConfig    `mapstructure:"log"`
	Tray   TrayConfig   `mapstructure:"tray"`
}

// PickerConfig represents picker behaviour
type PickerConfig struct {
	DateFormat      string `mapstructure:"date_format"`   // Go layout for emitted dates
	DismissDelay    string `mapstructure:"dismiss_delay"` // Fade-out before an outside click hides the calendar
	HoverLimitYears int    `mapstructure:"hover_limit_years"`
	PastYears       int    `mapstructure:"past_years"`   // Current pane: years before now
	FutureYears     int    `mapstructure:"future_years"` // Current pane: years after now
	NextPaneYears   int    `mapstructure:"next_pane_years"`
}

// RangesConfig represents host-supplied predefined ranges
type RangesConfig struct {
	Merge  string        `mapstructure:"merge"` // "append" or "replace"
	Custom []RangeConfig `mapstructure:"custom"`
}

// RangeConfig is one fixed range; label defaults to the formatted dates
type RangeConfig struct {
	Label string `mapstructure:"label"`
	Start string `mapstructure:"start"`
	End   string `mapstructure:"end"`
}

// OutputConfig represents report output
type OutputConfig struct {
	Format string `mapstructure:"format"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// TrayConfig represents the system tray host
type TrayConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("picker.date_format", dateutil.LayoutDMY)
	v.SetDefault("picker.dismiss_delay", "300ms")
	v.SetDefault("picker.hover_limit_years", 5)
	v.SetDefault("picker.past_years", 10)
	v.SetDefault("picker.future_years", 1)
	v.SetDefault("picker.next_pane_years", 20)
	v.SetDefault("ranges.merge", string(calendar.MergeAppend))
	v.SetDefault("output.format", "text")
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("tray.enabled", true)
}

// Load loads configuration from file. Without an explicit path a missing
// config file is not an error and defaults apply.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	// Set config file
	if configPath != "" {
		path, err := homedir.Expand(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to expand config path: %w", err)
		}
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.weekday-picker")
		v.AddConfigPath("/etc/weekday-picker")
	}

	// Read environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config, viper.DecodeHook(dateToStringHook)); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.ExpandPaths(); err != nil {
		return nil, err
	}

	// Validate config
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// dateToStringHook keeps unquoted YAML dates (decoded as timestamps) usable
// in string fields
func dateToStringHook(from, to reflect.Type, data interface{}) (interface{}, error) {
	if t, ok := data.(time.Time); ok && to.Kind() == reflect.String {
		return t.Format("2006-01-02"), nil
	}
	return data, nil
}

// Default returns the configuration used when nothing is configured
func Default() *Config {
	v := viper.New()
	setDefaults(v)

	var config Config
	// Defaults always decode
	_ = v.Unmarshal(&config)
	return &config
}

// Validate validates the configuration
func (c *Config) Validate() error {
	// Validate Picker config
	if err := validateLayout(c.Picker.DateFormat); err != nil {
		return fmt.Errorf("picker.date_format: %w", err)
	}
	if c.Picker.DismissDelay != "" {
		d, err := time.ParseDuration(c.Picker.DismissDelay)
		if err != nil {
			return fmt.Errorf("picker.dismiss_delay: %w", err)
		}
		if d <= 0 {
			return fmt.Errorf("picker.dismiss_delay must be positive")
		}
	}
	if c.Picker.HoverLimitYears < 0 {
		return fmt.Errorf("picker.hover_limit_years must not be negative")
	}
	if c.Picker.PastYears < 0 || c.Picker.FutureYears < 0 || c.Picker.NextPaneYears < 0 {
		return fmt.Errorf("picker year windows must not be negative")
	}

	// Validate Ranges config
	switch calendar.MergePolicy(c.Ranges.Merge) {
	case "", calendar.MergeAppend, calendar.MergeReplace:
	default:
		return fmt.Errorf("ranges.merge must be 'append' or 'replace', got '%s'", c.Ranges.Merge)
	}
	if _, err := c.Ranges.Build(); err != nil {
		return err
	}

	// Validate Output config
	switch strings.ToLower(c.Output.Format) {
	case "", "text", "json", "yaml", "ics":
	default:
		return fmt.Errorf("output.format must be one of text, json, yaml, ics, got '%s'", c.Output.Format)
	}

	return nil
}

func validateLayout(layout string) error {
	if layout == "" {
		return nil
	}
	probe := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)
	parsed, err := time.Parse(layout, probe.Format(layout))
	if err != nil {
		return fmt.Errorf("invalid layout %q: %w", layout, err)
	}
	if !parsed.Equal(probe) {
		return fmt.Errorf("layout %q must contain day, month and year", layout)
	}
	return nil
}

// Build parses the custom ranges
func (r *RangesConfig) Build() ([]calendar.PredefinedRange, error) {
	ranges := make([]calendar.PredefinedRange, 0, len(r.Custom))
	for i, rc := range r.Custom {
		start, err := dateutil.ParseDate(rc.Start)
		if err != nil {
			return nil, fmt.Errorf("ranges.custom[%d].start: %w", i, err)
		}
		end, err := dateutil.ParseDate(rc.End)
		if err != nil {
			return nil, fmt.Errorf("ranges.custom[%d].end: %w", i, err)
		}
		ranges = append(ranges, calendar.FixedRange(rc.Label, start, end))
	}
	return ranges, nil
}

// GetMergePolicy returns the merge policy, append by default
func (r *RangesConfig) GetMergePolicy() calendar.MergePolicy {
	if r.Merge == "" {
		return calendar.MergeAppend
	}
	return calendar.MergePolicy(r.Merge)
}

// GetDismissDelay returns the fade-out duration
func (c *PickerConfig) GetDismissDelay() time.Duration {
	if c.DismissDelay == "" {
		return 300 * time.Millisecond
	}
	duration, err := time.ParseDuration(c.DismissDelay)
	if err != nil || duration <= 0 {
		return 300 * time.Millisecond
	}
	return duration
}

// GetHoverLimitDays returns the hover bound in days (365-day years)
func (c *PickerConfig) GetHoverLimitDays() int {
	if c.HoverLimitYears <= 0 {
		return 5 * 365
	}
	return c.HoverLimitYears * 365
}

// GetDateFormat returns the date layout, dd/mm/yyyy by default
func (c *PickerConfig) GetDateFormat() string {
	if c.DateFormat == "" {
		return dateutil.LayoutDMY
	}
	return c.DateFormat
}

// ExpandPaths expands "~" and environment variables in file paths
func (c *Config) ExpandPaths() error {
	if c.Log.File == "" {
		return nil
	}
	path, err := homedir.Expand(os.ExpandEnv(c.Log.File))
	if err != nil {
		return fmt.Errorf("failed to expand log.file: %w", err)
	}
	c.Log.File = path
	return nil
}
