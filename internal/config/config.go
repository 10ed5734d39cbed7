// Package config resolves settings for the calculator binaries from defaults,
// an optional YAML file, a .env file and CALC_* environment variables, in
// increasing order of precedence. Command line flags bound by the caller take
// precedence over all of them.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	EnvPrefix      = "CALC"
	ConfigName     = ".calc"
	DefaultBanner  = 5 * time.Second
	DefaultAPIPath = "http://localhost:8080/api/calculate"
)

type LogConfig struct {
	Level string `mapstructure:"level"`
	// File receives log output when set. The terminal UI needs this since it
	// owns stdout.
	File string `mapstructure:"file"`
}

type TelemetryConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type Config struct {
	Endpoint       string          `mapstructure:"endpoint"`
	ErrorBannerTTL time.Duration   `mapstructure:"error_banner_ttl"`
	RequestTimeout time.Duration   `mapstructure:"request_timeout"`
	ListenAddr     string          `mapstructure:"listen_addr"`
	ServiceName    string          `mapstructure:"service_name"`
	Log            LogConfig       `mapstructure:"log"`
	Telemetry      TelemetryConfig `mapstructure:"telemetry"`
}

// SetDefaults registers every key so environment overrides resolve during
// Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("endpoint", DefaultAPIPath)
	v.SetDefault("error_banner_ttl", DefaultBanner)
	v.SetDefault("request_timeout", time.Duration(0))
	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("service_name", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("telemetry.enabled", false)
}

// Options select where Load looks for configuration.
type Options struct {
	// File is an explicit config file. When empty, .calc.yaml is searched in
	// the working directory and $HOME, and a missing file is fine.
	File string
	// EnvFile is the dotenv file, ".env" when empty.
	EnvFile string
}

// Load resolves the configuration into v and decodes it.
func Load(v *viper.Viper, opts Options) (Config, error) {
	if err := LoadDotEnv(opts.EnvFile); err != nil {
		return Config{}, err
	}

	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.File != "" {
		v.SetConfigFile(opts.File)
	} else {
		v.SetConfigName(ConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.File != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	u, err := url.Parse(c.Endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid endpoint %q: want an absolute http(s) URL", c.Endpoint)
	}
	if c.ErrorBannerTTL <= 0 {
		return fmt.Errorf("error_banner_ttl must be positive, got %s", c.ErrorBannerTTL)
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("request_timeout must not be negative, got %s", c.RequestTimeout)
	}
	return nil
}

// LogOutputPaths returns the zap output paths for c.Log, nil meaning the
// logger default.
func (c Config) LogOutputPaths() []string {
	if c.Log.File == "" {
		return nil
	}
	return []string{c.Log.File}
}
