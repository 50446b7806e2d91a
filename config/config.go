package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// App holds every setting the service reads at boot.
// The environment wins over .env, which wins over config.yaml.
type App struct {
	AppHost     string `envconfig:"APP_HOST" default:"0.0.0.0"`
	AppPort     string `envconfig:"APP_PORT" default:"8080"`
	FrontendURL string `envconfig:"FRONTEND_URL" default:"*"`

	DBHost     string        `envconfig:"DB_HOST" default:"localhost"`
	DBPort     string        `envconfig:"DB_PORT" default:"5432"`
	DBDatabase string        `envconfig:"DB_DATABASE" default:"canchas"`
	DBUsername string        `envconfig:"DB_USERNAME" default:"postgres"`
	DBPassword string        `envconfig:"DB_PASSWORD"`
	DBSSLMode  string        `envconfig:"DB_SSLMODE" default:"disable"`
	DBTimeout  time.Duration `envconfig:"DB_TIMEOUT" default:"5s"`

	JWTSecret string `envconfig:"JWT_SECRET" required:"true"`

	// Operating dates ("jornadas") are calendar days in this zone.
	Timezone string `envconfig:"APP_TIMEZONE" default:"America/Bogota"`

	LogDir       string `envconfig:"LOG_DIR" default:"log/app"`
	RateLimitMax int    `envconfig:"RATE_LIMIT_MAX" default:"120"`

	// RabbitURL is optional; events are dropped when empty.
	RabbitURL       string `envconfig:"RABBIT_URL"`
	JornadaExchange string `envconfig:"JORNADA_EXCHANGE" default:"jornadas.exchange"`
}

// Load reads the configuration. CONFIG_FILE points to an optional YAML file
// (default config.yaml); a missing file is not an error.
func Load() (App, error) {
	var c App

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return c, fmt.Errorf("load .env: %w", err)
	}

	path := os.Getenv("CONFIG_FILE")
	if path == "" {
		path = "config.yaml"
	}
	if err := loadYAML(path); err != nil {
		return c, err
	}

	if err := envconfig.Process("", &c); err != nil {
		return c, fmt.Errorf("process env: %w", err)
	}
	if _, err := c.Location(); err != nil {
		return c, err
	}
	return c, nil
}

// loadYAML reads a flat KEY: value file and exports every key that is not
// already set, the same way godotenv treats .env.
func loadYAML(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	values := map[string]string{}
	if err := yaml.Unmarshal(data, &values); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	for key, value := range values {
		if _, ok := os.LookupEnv(key); ok {
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			return fmt.Errorf("export %s: %w", key, err)
		}
	}
	return nil
}

// Location returns the club timezone.
func (c App) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid APP_TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// DSN builds the PostgreSQL connection string.
func (c App) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUsername, c.DBPassword, c.DBDatabase, c.DBSSLMode)
}
