package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read, e.g. PORTFOLIO_VIZ_LOG_LEVEL.
const EnvPrefix = "PORTFOLIO_VIZ"

// Report formats accepted for output.format.
const (
	FormatJSON = "json"
	FormatHTML = "html"
)

// Config is the resolved runtime configuration.
type Config struct {
	Data   DataConfig   `mapstructure:"data"`
	Output OutputConfig `mapstructure:"output"`
	Log    LogConfig    `mapstructure:"log"`
}

// DataConfig selects where the chart data comes from.
type DataConfig struct {
	File string `mapstructure:"file"` // Empty means the built-in sample data
}

// OutputConfig selects where the encoded charts go. With no file they are discarded.
type OutputConfig struct {
	File   string `mapstructure:"file"`
	Format string `mapstructure:"format"`
}

// LogConfig configures the process logger.
type LogConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}

// flagKeys maps command line flag names to configuration keys.
var flagKeys = map[string]string{
	"data-file":        "data.file",
	"output-file-path": "output.file",
	"format":           "output.format",
	"log-level":        "log.level",
	"log-json":         "log.json",
}

// Load resolves the configuration. Later sources override earlier ones:
//  1. defaults
//  2. the config file (configFile, or ./portfolio-viz.yaml when empty)
//  3. .env and the process environment (PORTFOLIO_VIZ_*)
//  4. flags that were set on the command line
func Load(configFile string, flags *pflag.FlagSet) (*Config, error) {
	// A missing .env file is fine.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	} else {
		v.SetConfigName("portfolio-viz")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if err := bindFlags(v, flags); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("data.file", "")
	v.SetDefault("output.file", "")
	v.SetDefault("output.format", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("failed to bind flag --%s: %w", name, err)
		}
	}
	return nil
}

// normalize fills in the report format from the output file extension when
// unset and rejects unknown formats.
func (c *Config) normalize() error {
	c.Output.Format = strings.ToLower(strings.TrimSpace(c.Output.Format))
	if c.Output.Format == "" {
		switch strings.ToLower(filepath.Ext(c.Output.File)) {
		case ".html", ".htm":
			c.Output.Format = FormatHTML
		default:
			c.Output.Format = FormatJSON
		}
	}
	if c.Output.Format != FormatJSON && c.Output.Format != FormatHTML {
		return fmt.Errorf("invalid output format '%s'. Must be '%s' or '%s'", c.Output.Format, FormatJSON, FormatHTML)
	}
	return nil
}

// EmitsCharts reports whether the encoded charts are written anywhere.
func (c *Config) EmitsCharts() bool {
	return c.Output.File != ""
}
