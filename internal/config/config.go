package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Output formats for chart specs and summaries.
const (
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
	FormatYAML     = "yaml"
)

// Global configuration structure.
type Global struct {
	// Cleaning
	ExcludedColumns []string `mapstructure:"excluded_columns" yaml:"excluded_columns"`
	DateNameHints   []string `mapstructure:"date_name_hints" yaml:"date_name_hints"`
	MaxRows         int      `mapstructure:"max_rows" yaml:"max_rows"`

	// Charts
	DistinctThreshold int `mapstructure:"distinct_threshold" yaml:"distinct_threshold"`
	TopCategories     int `mapstructure:"top_categories" yaml:"top_categories"`
	HistogramBins     int `mapstructure:"histogram_bins" yaml:"histogram_bins"`

	// Output
	SampleRows   int    `mapstructure:"sample_rows" yaml:"sample_rows"`
	OutputFormat string `mapstructure:"output_format" yaml:"output_format"`

	// Logging
	LogLevel  string `mapstructure:"log_level" yaml:"log_level"`
	LogFormat string `mapstructure:"log_format" yaml:"log_format"`
}

// Keys lists the settable keys in display order.
var Keys = []string{
	"excluded_columns", "date_name_hints", "max_rows",
	"distinct_threshold", "top_categories", "histogram_bins",
	"sample_rows", "output_format", "log_level", "log_format",
}

func defaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".chartloom"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.chartloom/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		dir, err := defaultDir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Defaults returns the built-in configuration.
func Defaults() *Global {
	return &Global{
		ExcludedColumns:   []string{"Type"},
		DateNameHints:     []string{"date", "joined", "start", "end"},
		MaxRows:           100000,
		DistinctThreshold: 20,
		TopCategories:     10,
		HistogramBins:     20,
		SampleRows:        5,
		OutputFormat:      FormatMarkdown,
		LogLevel:          "warn",
		LogFormat:         "console",
	}
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults. Command flags are applied by the caller.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("CHARTLOOM")
	v.AutomaticEnv()

	d := Defaults()
	v.SetDefault("excluded_columns", d.ExcludedColumns)
	v.SetDefault("date_name_hints", d.DateNameHints)
	v.SetDefault("max_rows", d.MaxRows)
	v.SetDefault("distinct_threshold", d.DistinctThreshold)
	v.SetDefault("top_categories", d.TopCategories)
	v.SetDefault("histogram_bins", d.HistogramBins)
	v.SetDefault("sample_rows", d.SampleRows)
	v.SetDefault("output_format", d.OutputFormat)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_format", d.LogFormat)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := defaultDir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}

// Get renders one key for display.
func (c *Global) Get(key string) (string, error) {
	switch key {
	case "excluded_columns":
		return strings.Join(c.ExcludedColumns, ","), nil
	case "date_name_hints":
		return strings.Join(c.DateNameHints, ","), nil
	case "max_rows":
		return strconv.Itoa(c.MaxRows), nil
	case "distinct_threshold":
		return strconv.Itoa(c.DistinctThreshold), nil
	case "top_categories":
		return strconv.Itoa(c.TopCategories), nil
	case "histogram_bins":
		return strconv.Itoa(c.HistogramBins), nil
	case "sample_rows":
		return strconv.Itoa(c.SampleRows), nil
	case "output_format":
		return c.OutputFormat, nil
	case "log_level":
		return c.LogLevel, nil
	case "log_format":
		return c.LogFormat, nil
	}
	return "", fmt.Errorf("unknown key: %s", key)
}

// Set parses val and assigns it to key. List keys take comma-separated values;
// an empty value clears the list.
func (c *Global) Set(key, val string) error {
	switch key {
	case "excluded_columns":
		c.ExcludedColumns = splitList(val)
	case "date_name_hints":
		c.DateNameHints = splitList(val)
	case "max_rows":
		return setInt(&c.MaxRows, key, val, 0)
	case "distinct_threshold":
		return setInt(&c.DistinctThreshold, key, val, 1)
	case "top_categories":
		return setInt(&c.TopCategories, key, val, 1)
	case "histogram_bins":
		return setInt(&c.HistogramBins, key, val, 1)
	case "sample_rows":
		return setInt(&c.SampleRows, key, val, 0)
	case "output_format":
		switch strings.ToLower(val) {
		case FormatMarkdown, "md":
			c.OutputFormat = FormatMarkdown
		case FormatJSON:
			c.OutputFormat = FormatJSON
		case FormatYAML, "yml":
			c.OutputFormat = FormatYAML
		default:
			return fmt.Errorf("invalid output_format: %s (use markdown, json or yaml)", val)
		}
	case "log_level":
		switch strings.ToLower(val) {
		case "debug", "info", "warn", "error":
			c.LogLevel = strings.ToLower(val)
		default:
			return fmt.Errorf("invalid log_level: %s (use debug, info, warn or error)", val)
		}
	case "log_format":
		switch strings.ToLower(val) {
		case "console", "json":
			c.LogFormat = strings.ToLower(val)
		default:
			return fmt.Errorf("invalid log_format: %s (use console or json)", val)
		}
	default:
		return fmt.Errorf("unknown key: %s", key)
	}
	return nil
}

func setInt(dst *int, key, val string, min int) error {
	i, err := strconv.Atoi(strings.TrimSpace(val))
	if err != nil || i < min {
		return fmt.Errorf("invalid int for %s: %v (minimum %d)", key, val, min)
	}
	*dst = i
	return nil
}

func splitList(val string) []string {
	out := []string{}
	for _, p := range strings.Split(val, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
