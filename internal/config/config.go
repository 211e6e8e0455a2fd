package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the full application configuration. Values come from defaults,
// then an optional TOML file, then environment variables.
type Config struct {
	AppEnv    string          `toml:"app_env"`    // "production" or anything else for development logging
	Server    ServerConfig    `toml:"server"`     // HTTP server settings
	Dataset   DatasetConfig   `toml:"dataset"`    // Airport source table
	RateLimit RateLimitConfig `toml:"rate_limit"` // Per-client request limits
	Logging   LoggingConfig   `toml:"logging"`    // Application logging settings
}

// ServerConfig contains HTTP server configuration settings
type ServerConfig struct {
	Host               string   `toml:"host"`                  // Host address to bind to
	Port               int      `toml:"port"`                  // HTTP port
	CORSAllowedOrigins []string `toml:"cors_allowed_origins"`  // Origins allowed for CORS requests
	ReadTimeoutSecs    int      `toml:"read_timeout_seconds"`  // Maximum duration for reading the request
	WriteTimeoutSecs   int      `toml:"write_timeout_seconds"` // Maximum duration for writing the response
	IdleTimeoutSecs    int      `toml:"idle_timeout_seconds"`  // Keep-alive idle timeout
	ShutdownSecs       int      `toml:"shutdown_seconds"`      // Grace period for in-flight requests on shutdown
}

// DatasetConfig locates the airports table
type DatasetConfig struct {
	Path string `toml:"path"` // OpenFlights style airports CSV with a header row
}

// RateLimitConfig controls the per-IP token bucket
type RateLimitConfig struct {
	Enabled        bool     `toml:"enabled"`
	RequestsPerSec float64  `toml:"requests_per_second"`
	Burst          int      `toml:"burst"`
	LimiterTTLSecs int      `toml:"limiter_ttl_seconds"` // Idle time before a client's bucket is dropped
	WhitelistedIPs []string `toml:"whitelisted_ips"`
}

type LoggingConfig struct {
	Level string `toml:"level"` // debug, info, warn or error
}

// Default returns the configuration used when nothing else is provided.
func Default() *Config {
	return &Config{
		AppEnv: "development",
		Server: ServerConfig{
			Host:               "",
			Port:               8080,
			CORSAllowedOrigins: []string{"*"},
			ReadTimeoutSecs:    10,
			WriteTimeoutSecs:   10,
			IdleTimeoutSecs:    60,
			ShutdownSecs:       10,
		},
		Dataset: DatasetConfig{
			Path: "data/airports.csv",
		},
		RateLimit: RateLimitConfig{
			Enabled:        true,
			RequestsPerSec: 5,
			Burst:          10,
			LimiterTTLSecs: 600,
			WhitelistedIPs: []string{"127.0.0.1"},
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads the TOML file at path over the defaults, then applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

// LoadWithFallback tries preferredPath and the usual locations in order.
// When no file exists, defaults plus environment are used.
func LoadWithFallback(preferredPath string) (*Config, string, error) {
	searchPaths := []string{
		preferredPath,
		"configs/config.toml",
		"config.toml",
	}

	for _, path := range searchPaths {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err == nil {
			cfg, err := Load(path)
			if err != nil {
				return nil, path, fmt.Errorf("failed to load config from %s: %w", path, err)
			}
			return cfg, path, nil
		}
	}

	cfg := Default()
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, "", err
	}
	return cfg, "", cfg.Validate()
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("APP_ENV"); ok && v != "" {
		c.AppEnv = v
	}
	if v, ok := lookup("LOG_LEVEL"); ok && v != "" {
		c.Logging.Level = v
	}
	if v, ok := lookup("AIRPORTS_DATA_PATH"); ok && v != "" {
		c.Dataset.Path = v
	}
	if v, ok := lookup("PORT"); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		c.Server.Port = port
	}
	if v, ok := lookup("CORS_ALLOWED_ORIGINS"); ok && v != "" {
		c.Server.CORSAllowedOrigins = splitList(v)
	}
	if v, ok := lookup("RATE_LIMIT_RPS"); ok && v != "" {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid RATE_LIMIT_RPS %q: %w", v, err)
		}
		c.RateLimit.RequestsPerSec = rps
	}
	if v, ok := lookup("RATE_LIMIT_BURST"); ok && v != "" {
		burst, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid RATE_LIMIT_BURST %q: %w", v, err)
		}
		c.RateLimit.Burst = burst
	}
	if v, ok := lookup("RATE_LIMIT_ENABLED"); ok && v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid RATE_LIMIT_ENABLED %q: %w", v, err)
		}
		c.RateLimit.Enabled = enabled
	}
	return nil
}

// Validate checks settings that would otherwise fail later at startup.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server port out of range: %d", c.Server.Port)
	}
	if c.Dataset.Path == "" {
		return fmt.Errorf("dataset path is required")
	}
	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerSec <= 0 || c.RateLimit.Burst < 1) {
		return fmt.Errorf("rate limit needs a positive rate and burst")
	}
	return nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (s ServerConfig) ReadTimeout() time.Duration {
	return time.Duration(s.ReadTimeoutSecs) * time.Second
}

func (s ServerConfig) WriteTimeout() time.Duration {
	return time.Duration(s.WriteTimeoutSecs) * time.Second
}

func (s ServerConfig) IdleTimeout() time.Duration {
	return time.Duration(s.IdleTimeoutSecs) * time.Second
}

func (s ServerConfig) ShutdownTimeout() time.Duration {
	return time.Duration(s.ShutdownSecs) * time.Second
}

func (r RateLimitConfig) LimiterTTL() time.Duration {
	return time.Duration(r.LimiterTTLSecs) * time.Second
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
