package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Env                string `envconfig:"APP_ENV" default:"development"`
	ServerAddr         string `envconfig:"SERVER_ADDR" default:":8080"`
	FrontendOrigin     string `envconfig:"FRONTEND_ORIGIN" default:"http://localhost:3000"`
	TimezoneName       string `envconfig:"TZ" default:"Local"`
	SalonOpensAt       int    `envconfig:"SALON_OPENS_AT" default:"9"`
	SalonClosesAt      int    `envconfig:"SALON_CLOSES_AT" default:"19"`
	BackendURL         string `envconfig:"BACKEND_URL" default:"http://localhost:3001"`
	BackendTimeoutSec  int    `envconfig:"BACKEND_TIMEOUT_SEC" default:"8"`
	RedisURL           string `envconfig:"REDIS_URL"`
	RedisAddr          string `envconfig:"REDIS_ADDR"`
	RedisPassword      string `envconfig:"REDIS_PASSWORD"`
	RedisDB            int    `envconfig:"REDIS_DB" default:"0"`
	CacheTTLSeconds    int    `envconfig:"CACHE_TTL_SECONDS" default:"60"`
	RateLimitSubmit    int    `envconfig:"RATE_LIMIT_SUBMIT" default:"10"`
	RateLimitWindowSec int    `envconfig:"RATE_LIMIT_WINDOW_SEC" default:"60"`

	Timezone *time.Location `ignored:"true"`
}

// Load reads .env (without overriding variables already set) and then the environment.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	loc, err := loadLocation(cfg.TimezoneName)
	if err != nil {
		return nil, err
	}
	cfg.Timezone = loc

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadLocation(name string) (*time.Location, error) {
	if name == "" || name == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", name, err)
	}
	return loc, nil
}

func (c *Config) validate() error {
	if c.SalonOpensAt < 0 || c.SalonClosesAt > 24 {
		return errors.New("salon hours must be within 0-24")
	}
	if c.SalonClosesAt <= c.SalonOpensAt {
		return errors.New("salon must close after it opens")
	}
	if c.RateLimitSubmit <= 0 || c.RateLimitWindowSec <= 0 {
		return errors.New("submit rate limit and window must be positive")
	}
	return nil
}

func (c *Config) BackendTimeout() time.Duration {
	return time.Duration(c.BackendTimeoutSec) * time.Second
}

func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}
