package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// LogConfig controls the CLI logger.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// Config holds the settings for a fill run.
type Config struct {
	Template     string    `mapstructure:"template" yaml:"template"`
	Data         string    `mapstructure:"data" yaml:"data"`
	Output       string    `mapstructure:"output" yaml:"output"`
	OutputDir    string    `mapstructure:"output_dir" yaml:"output_dir"`
	Placeholders []string  `mapstructure:"placeholders" yaml:"placeholders"`
	Sheet        string    `mapstructure:"sheet" yaml:"sheet"`
	Log          LogConfig `mapstructure:"log" yaml:"log"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		OutputDir:    ".",
		Placeholders: []string{},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"template":    "template",
	"data":        "data",
	"output":      "output",
	"output-dir":  "output_dir",
	"placeholder": "placeholders",
	"sheet":       "sheet",
	"log-level":   "log.level",
	"log-format":  "log.format",
}

// Load merges defaults, the config file, DOCFILL_* environment variables and
// any of flags that were set, in increasing order of precedence. Without an
// explicit cfgFile, docfill.yaml is looked up in the working directory and in
// $HOME/.docfill; a missing file is not an error.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("template", defaults.Template)
	v.SetDefault("data", defaults.Data)
	v.SetDefault("output", defaults.Output)
	v.SetDefault("output_dir", defaults.OutputDir)
	v.SetDefault("placeholders", defaults.Placeholders)
	v.SetDefault("sheet", defaults.Sheet)
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.format", defaults.Log.Format)

	v.SetEnvPrefix("DOCFILL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("docfill")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.docfill")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if flag := flags.Lookup(name); flag != nil {
				if err := v.BindPFlag(key, flag); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// Validate checks the values that have a fixed set of choices.
func (c *Config) Validate() error {
	var errs []error
	if _, ok := logLevels[strings.ToLower(c.Log.Level)]; !ok {
		errs = append(errs, fmt.Errorf("invalid log level: %q", c.Log.Level))
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("invalid log format: %q", c.Log.Format))
	}
	for i, p := range c.Placeholders {
		if p == "" {
			errs = append(errs, fmt.Errorf("placeholder %d is empty", i))
		}
	}
	return errors.Join(errs...)
}

// SlogLevel returns the configured level, info when unknown.
func (l LogConfig) SlogLevel() slog.Level {
	if level, ok := logLevels[strings.ToLower(l.Level)]; ok {
		return level
	}
	return slog.LevelInfo
}

// WriteDefault writes the default configuration to path.
func WriteDefault(path string) error {
	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(`# docfill configuration
# Every key can also be set with a DOCFILL_ environment variable,
# e.g. DOCFILL_LOG_LEVEL=debug or DOCFILL_PLACEHOLDERS="{{NAME}},{{AGE}}".

`)
	return os.WriteFile(path, append(header, data...), 0o644)
}
