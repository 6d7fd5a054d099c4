package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/ytget/score-downloader/internal/logger"
)

// EnvPrefix prefixes environment overrides, e.g. SCORE_SERVER_HTTP_PORT
const EnvPrefix = "SCORE_SERVER"

// ServerConfig represents the file server configuration
type ServerConfig struct {
	HTTP    HTTPConfig    `mapstructure:"http"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// HTTPConfig contains HTTP server configuration
type HTTPConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Root            string `mapstructure:"root"`
	MetricsAddr     string `mapstructure:"metrics_addr"`
	ReadTimeout     string `mapstructure:"read_timeout"`
	WriteTimeout    string `mapstructure:"write_timeout"`
	IdleTimeout     string `mapstructure:"idle_timeout"`
	ShutdownTimeout string `mapstructure:"shutdown_timeout"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// LoadServer loads the server configuration. configPath may be empty, in
// which case only defaults, .env and the environment apply.
func LoadServer(configPath string) (*ServerConfig, error) {
	// Load .env file (ignore error if file doesn't exist)
	_ = godotenv.Load()

	v := viper.New()

	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}

	v.SetDefault("http.host", "")
	v.SetDefault("http.port", 8041)
	v.SetDefault("http.root", cwd)
	v.SetDefault("http.metrics_addr", "")
	v.SetDefault("http.read_timeout", "30s")
	v.SetDefault("http.write_timeout", "5m")
	v.SetDefault("http.idle_timeout", "60s")
	v.SetDefault("http.shutdown_timeout", "5s")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", logger.FormatConsole)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config ServerConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

// Validate validates the configuration
func (c *ServerConfig) Validate() error {
	if c.HTTP.Port < 1 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535")
	}
	if c.HTTP.Root == "" {
		return errors.New("http.root is required")
	}
	info, err := os.Stat(c.HTTP.Root)
	if err != nil {
		return fmt.Errorf("http.root: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("http.root %s is not a directory", c.HTTP.Root)
	}

	for key, value := range map[string]string{
		"http.read_timeout":     c.HTTP.ReadTimeout,
		"http.write_timeout":    c.HTTP.WriteTimeout,
		"http.idle_timeout":     c.HTTP.IdleTimeout,
		"http.shutdown_timeout": c.HTTP.ShutdownTimeout,
	} {
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid %s: %w", key, err)
		}
	}

	if _, err := logger.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	if !logger.ValidFormat(c.Logging.Format) {
		return fmt.Errorf("logging.format must be %q or %q", logger.FormatConsole, logger.FormatJSON)
	}

	return nil
}

// GetReadTimeout returns the read timeout as a duration
func (c *HTTPConfig) GetReadTimeout() time.Duration {
	d, _ := time.ParseDuration(c.ReadTimeout)
	return d
}

// GetWriteTimeout returns the write timeout as a duration
func (c *HTTPConfig) GetWriteTimeout() time.Duration {
	d, _ := time.ParseDuration(c.WriteTimeout)
	return d
}

// GetIdleTimeout returns the idle timeout as a duration
func (c *HTTPConfig) GetIdleTimeout() time.Duration {
	d, _ := time.ParseDuration(c.IdleTimeout)
	return d
}

// GetShutdownTimeout returns how long Stop may take
func (c *HTTPConfig) GetShutdownTimeout() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}
