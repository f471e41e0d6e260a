package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/rocketscienceinc/tictactoe-move-server/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-move-server/internal/tictactoe"
)

const (
	EnvDevelopment = "development"
	EnvTesting     = "testing"
	EnvProduction  = "production"

	StorageMemory = "memory"
	StorageRedis  = "redis"
)

var (
	ErrUnknownEnv      = errors.New("unknown environment")
	ErrUnknownStorage  = errors.New("unknown rate limit storage")
	ErrUnknownLogLevel = errors.New("unknown log level")
	ErrInvalidLimit    = errors.New("invalid rate limit")
)

type Config struct {
	Env            string    `yaml:"env" env:"APP_ENV" env-default:"development"`
	LogLevel       string    `yaml:"log-level" env:"LOG_LEVEL"`
	HTTPPort       string    `yaml:"http-port" env:"HTTP_PORT" env-default:"5000"`
	SocketPort     string    `yaml:"socket-port" env:"SOCKET_PORT"`
	Strategy       string    `yaml:"strategy" env:"STRATEGY" env-default:"minimax"`
	AllowedOrigins []string  `yaml:"allowed-origins" env:"ALLOWED_ORIGINS"`
	RateLimit      RateLimit `yaml:"rate-limit"`
	Redis          Redis     `yaml:"redis"`
}

type RateLimit struct {
	Disabled bool          `yaml:"disabled" env:"RATE_LIMIT_DISABLED"`
	Requests int           `yaml:"requests" env:"RATE_LIMIT_REQUESTS" env-default:"60"`
	Window   time.Duration `yaml:"window" env:"RATE_LIMIT_WINDOW" env-default:"1m"`
	Storage  string        `yaml:"storage" env:"RATE_LIMIT_STORAGE"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

// Load - reads path when it exists, the environment otherwise, then fills
// the per-environment defaults and validates the result.
func Load(path string) (*Config, error) {
	config := &Config{}

	if _, err := os.Stat(path); err == nil {
		if err = cleanenv.ReadConfig(path, config); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if err = cleanenv.ReadEnv(config); err != nil {
		return nil, fmt.Errorf("failed to read env: %w", err)
	}

	config.ApplyEnvironment()

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// ApplyEnvironment - fills the settings that depend on the environment
// and were left empty.
func (that *Config) ApplyEnvironment() {
	switch that.Env {
	case EnvProduction:
		setDefault(&that.LogLevel, "info")
		setDefault(&that.RateLimit.Storage, StorageRedis)
	case EnvTesting:
		setDefault(&that.LogLevel, "error")
		setDefault(&that.RateLimit.Storage, StorageMemory)
		if len(that.AllowedOrigins) == 0 {
			that.AllowedOrigins = []string{"*"}
		}
	default:
		setDefault(&that.LogLevel, "debug")
		setDefault(&that.RateLimit.Storage, StorageMemory)
		if len(that.AllowedOrigins) == 0 {
			that.AllowedOrigins = []string{"http://localhost:5173", "http://localhost:3000"}
		}
	}
}

func (that *Config) Validate() error {
	if !slices.Contains([]string{EnvDevelopment, EnvTesting, EnvProduction}, that.Env) {
		return fmt.Errorf("%w: %q", ErrUnknownEnv, that.Env)
	}

	if !slices.Contains([]string{"debug", "info", "warn", "error"}, that.LogLevel) {
		return fmt.Errorf("%w: %q", ErrUnknownLogLevel, that.LogLevel)
	}

	if !slices.Contains(tictactoe.Strategies(), that.Strategy) {
		return fmt.Errorf("%w: %q", apperror.ErrUnknownStrategy, that.Strategy)
	}

	if !slices.Contains([]string{StorageMemory, StorageRedis}, that.RateLimit.Storage) {
		return fmt.Errorf("%w: %q", ErrUnknownStorage, that.RateLimit.Storage)
	}

	if !that.RateLimit.Disabled && (that.RateLimit.Requests <= 0 || that.RateLimit.Window <= 0) {
		return fmt.Errorf("%w: %d per %s", ErrInvalidLimit, that.RateLimit.Requests, that.RateLimit.Window)
	}

	return nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}

func setDefault(value *string, fallback string) {
	if *value == "" {
		*value = fallback
	}
}
