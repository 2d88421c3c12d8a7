package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

type Config struct {
	Port          int           `env:"PORT" envDefault:"3000"`
	Bind          string        `env:"BIND" envDefault:"0.0.0.0"`
	LogLevel      string        `env:"LOG_LEVEL" envDefault:"info"`
	HuntCountdown int           `env:"HUNT_COUNTDOWN" envDefault:"15"`
	HuntTick      time.Duration `env:"HUNT_TICK" envDefault:"1s"`
	VerifyDrops   bool          `env:"VERIFY_DROPS" envDefault:"false"`
	PublicURL     string        `env:"PUBLIC_URL"`
	CORSOrigins   []string      `env:"CORS_ORIGINS" envDefault:"*" envSeparator:","`
	ExportEnabled bool          `env:"EXPORT_ENABLED" envDefault:"false"`
	ExportFile    string        `env:"EXPORT_FILE" envDefault:"./deck-the-pockets-results.txt"`
}

// FromEnv loads an optional .env file and parses the environment. Variables
// already set in the process win over the file.
func FromEnv(dotenv ...string) (Config, error) {
	if err := godotenv.Load(dotenv...); err != nil && len(dotenv) > 0 {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return c, nil
}

func (c Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.Port)
	}
	if c.HuntCountdown <= 0 {
		return fmt.Errorf("invalid hunt countdown: %d", c.HuntCountdown)
	}
	if c.HuntTick <= 0 {
		return fmt.Errorf("invalid hunt tick: %s", c.HuntTick)
	}
	if len(c.CORSOrigins) == 0 {
		return errors.New("at least one CORS origin is required")
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	if c.ExportEnabled && c.ExportFile == "" {
		return errors.New("EXPORT_FILE is required when EXPORT_ENABLED is set")
	}
	return nil
}

func (c Config) Addr() string {
	return net.JoinHostPort(c.Bind, strconv.Itoa(c.Port))
}
