// Package config loads and validates service configuration from the
// environment.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Config is the full service configuration, populated from environment
// variables by Load.
type Config struct {
	Server   Server
	Database Database
	Import   Import
	Rate     Rate
	CORS     CORS
	Logging  Logging
}

// Server controls the HTTP listener.
type Server struct {
	Host            string        `env:"SERVER_HOST" default:"0.0.0.0"`
	Port            int           `env:"SERVER_PORT" default:"8080"`
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" default:"30s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"10s"`
}

// Database holds the Postgres connection settings.
type Database struct {
	URL      string        `env:"DATABASE_URL" required:"true"`
	MaxConns int32         `env:"DATABASE_MAX_CONNS" default:"10"`
	Timeout  time.Duration `env:"DATABASE_TIMEOUT" default:"5s"`
}

// Import bounds a single bulk import request.
type Import struct {
	MaxPayloadSize int64         `env:"IMPORT_MAX_PAYLOAD_SIZE" default:"10485760"`
	Timeout        time.Duration `env:"IMPORT_TIMEOUT" default:"2m"`
}

// Rate configures per-client request limiting.
type Rate struct {
	RequestsPerMinute int  `env:"RATE_REQUESTS_PER_MINUTE" default:"60"`
	Burst             int  `env:"RATE_BURST" default:"10"`
	Enabled           bool `env:"RATE_ENABLED" default:"true"`
}

// CORS lists the origins allowed to call the API from a browser.
type CORS struct {
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" default:"*"`
}

// Logging selects the log level and output format.
type Logging struct {
	Level  string `env:"LOG_LEVEL" default:"info"`
	Format string `env:"LOG_FORMAT" default:"json"`
}

// Addr returns the listen address in host:port form.
func (s Server) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Validate checks every section and reports all failures at once.
func (c *Config) Validate() error {
	var problems []string

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		problems = append(problems, fmt.Sprintf("server port %d out of range", c.Server.Port))
	}
	if c.Database.URL == "" {
		problems = append(problems, "DATABASE_URL is required")
	}
	if c.Database.MaxConns < 1 {
		problems = append(problems, "database max conns must be at least 1")
	}
	if c.Import.MaxPayloadSize < 1 {
		problems = append(problems, "import max payload size must be positive")
	}
	if c.Rate.Enabled && c.Rate.RequestsPerMinute < 1 {
		problems = append(problems, "rate limit must allow at least one request per minute")
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Sprintf("unknown log level %q", c.Logging.Level))
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "text":
	default:
		problems = append(problems, fmt.Sprintf("unknown log format %q", c.Logging.Format))
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

// String renders the configuration for startup logs with the database URL
// masked.
func (c *Config) String() string {
	return fmt.Sprintf("server=%s db=%s max_payload=%d rate=%v level=%s",
		c.Server.Addr(), maskURL(c.Database.URL), c.Import.MaxPayloadSize,
		c.Rate.Enabled, c.Logging.Level)
}

func maskURL(url string) string {
	at := strings.LastIndex(url, "@")
	if at < 0 {
		return url
	}
	scheme := strings.Index(url, "://")
	if scheme < 0 {
		return "***" + url[at:]
	}
	return url[:scheme+3] + "***" + url[at:]
}
