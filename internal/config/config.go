package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config contains server configuration parameters.
// It is loaded once at startup and read-only thereafter.
type Config struct {
	LogLevel int    `env:"LOG_LEVEL" envDefault:"0"`
	HTTP     HTTP   `envPrefix:"HTTP_"`
	Database DB     `envPrefix:"DATABASE_"`
	JWT      JWT    `envPrefix:"JWT_"`
	Limits   Limits `envPrefix:"RATE_LIMIT_"`
}

// HTTP contains HTTP server parameters.
type HTTP struct {
	Address         string        `env:"ADDRESS" envDefault:":8080"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// DB contains database parameters.
type DB struct {
	Path string `env:"PATH" envDefault:"auth.db"`
}

// JWT contains token signing parameters. The secret signs every issued
// token; rotating it invalidates all outstanding tokens.
type JWT struct {
	Secret         string        `env:"SECRET,required,notEmpty"`
	AccessTokenTTL time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"30m"`
}

// Limits contains rate limit parameters for the credential endpoints.
type Limits struct {
	Enabled bool          `env:"ENABLED" envDefault:"true"`
	Rate    int           `env:"RATE" envDefault:"20"`
	Window  time.Duration `env:"WINDOW" envDefault:"1m"`
}

// NewConfig loads configuration from environment variables.
func NewConfig() (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}
