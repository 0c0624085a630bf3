package config

import (
	"errors"
	"fmt"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"log"
	"os"
	"time"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

const defaultAPIURL = "http://localhost:8000"

type Config struct {
	Env             string     `yaml:"env" env:"ENV" env-default:"local"`
	DefaultTimezone string     `yaml:"default_timezone" env:"DEFAULT_TIMEZONE" env-default:"UTC"`
	API             API        `yaml:"api"`
	HTTPServer      HTTPServer `yaml:"http_server"`
}

// API points at the booking backend.
type API struct {
	BaseURL string        `yaml:"base_url" env:"API_URL" env-default:"http://localhost:8000"`
	Timeout time.Duration `yaml:"timeout" env:"API_TIMEOUT" env-default:"10s"`
}

type HTTPServer struct {
	Address     string        `yaml:"address" env:"HTTP_ADDRESS" env-default:"localhost:8080"`
	Timeout     time.Duration `yaml:"timeout" env:"HTTP_TIMEOUT" env-default:"4s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
}

// MustLoad reads .env if present, then the YAML file named by CONFIG_PATH or,
// without it, the environment alone.
func MustLoad() *Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("cannot read .env file: %s", err)
	}

	cfg, err := Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}

	return cfg
}

func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil, fmt.Errorf("config file does not exist: %s", path)
		}

		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}

	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = defaultAPIURL
	}

	switch cfg.Env {
	case EnvLocal, EnvDev, EnvProd:
	default:
		return nil, fmt.Errorf("unknown env %q", cfg.Env)
	}

	return &cfg, nil
}
