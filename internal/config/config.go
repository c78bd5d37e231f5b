package config

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Log    LogConfig    `mapstructure:"log"`
	Report ReportConfig `mapstructure:"report"`
	Area   AreaConfig   `mapstructure:"area"`
	Server ServerConfig `mapstructure:"server"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
	Stderr bool   `mapstructure:"stderr"`
}

type ReportConfig struct {
	Path  string `mapstructure:"path"`
	Sheet string `mapstructure:"sheet"`
}

type AreaConfig struct {
	Method  string `mapstructure:"method"`
	Workers int    `mapstructure:"workers"`
}

type ServerConfig struct {
	Port        int    `mapstructure:"port"`
	UploadDir   string `mapstructure:"upload_dir"`
	OutputDir   string `mapstructure:"output_dir"`
	MaxUploadMB int    `mapstructure:"max_upload_mb"`
}

// Load reads configuration from defaults, an optional config file, a .env file
// and environment variables, in increasing order of precedence. An empty
// configFile searches for config.yaml in . and ./configs.
func Load(configFile string) (*Config, error) {
	_ = godotenv.Load() // OK if missing

	v := viper.New()

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "LOG.txt")
	v.SetDefault("log.stderr", false)
	v.SetDefault("report.path", "polygon_areas.csv")
	v.SetDefault("report.sheet", "Acreage")
	v.SetDefault("area.method", "mercator")
	v.SetDefault("area.workers", 1)
	v.SetDefault("server.port", 9595)
	v.SetDefault("server.upload_dir", "uploads")
	v.SetDefault("server.output_dir", "output")
	v.SetDefault("server.max_upload_mb", 64)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config %s", configFile)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		_ = v.ReadInConfig() // OK if missing
	}

	// Environment variables: ACREAGE_REPORT_PATH → report.path
	v.SetEnvPrefix("ACREAGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that configuration fields are present and sane.
func (c *Config) Validate() error {
	var errs []string

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("log.level must be debug, info, warn or error, got %q", c.Log.Level))
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Sprintf("log.format must be text or json, got %q", c.Log.Format))
	}
	if c.Report.Path == "" {
		errs = append(errs, "report.path is required")
	}
	switch c.Area.Method {
	case "mercator", "geodesic":
	default:
		errs = append(errs, fmt.Sprintf("area.method must be mercator or geodesic, got %q", c.Area.Method))
	}
	if c.Area.Workers < -1 {
		errs = append(errs, fmt.Sprintf("area.workers must be -1 (one per CPU) or more, got %d", c.Area.Workers))
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server.port must be 1-65535, got %d", c.Server.Port))
	}
	if c.Server.MaxUploadMB <= 0 {
		errs = append(errs, "server.max_upload_mb must be positive")
	}

	if len(errs) > 0 {
		return errors.Newf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
