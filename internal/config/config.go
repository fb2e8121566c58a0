package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	env "github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL string        `env:"DATABASE_URL,required"`
	JWTSecret   string        `env:"JWT_SECRET,required"`
	JWTExpiry   time.Duration `env:"JWT_EXPIRY" envDefault:"12h"`
	Port        int           `env:"PORT" envDefault:"8080"`
	LogLevel    string        `env:"LOG_LEVEL" envDefault:"info"`
	AppEnv      string        `env:"APP_ENV" envDefault:"production"`

	// Printed on statement headers.
	CurrencySymbol string `env:"CURRENCY_SYMBOL" envDefault:"KES"`

	IdempotencyTTL           time.Duration `env:"IDEMPOTENCY_TTL" envDefault:"24h"`
	IdempotencySweepInterval time.Duration `env:"IDEMPOTENCY_SWEEP_INTERVAL" envDefault:"15m"`

	DBMaxOpenConns     int `env:"DB_MAX_OPEN_CONNS" envDefault:"25"`
	DBMaxIdleConns     int `env:"DB_MAX_IDLE_CONNS" envDefault:"10"`
	DBConnMaxLifetimeS int `env:"DB_CONN_MAX_LIFETIME_S" envDefault:"300"`
	DBConnMaxIdleTimeS int `env:"DB_CONN_MAX_IDLE_TIME_S" envDefault:"60"`
}

// Load reads an optional .env file, then the environment. Variables already
// set in the environment win over the file.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config.Load: %s: %w", f, err)
		}
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	if cfg.IdempotencySweepInterval <= 0 {
		return nil, fmt.Errorf("config.Load: IDEMPOTENCY_SWEEP_INTERVAL must be positive")
	}
	return &cfg, nil
}

// CLIConfig is the subset ledgerctl needs. It reads the same variables as the
// API so both can share one .env file.
type CLIConfig struct {
	DatabaseURL    string `env:"DATABASE_URL,required"`
	CurrencySymbol string `env:"CURRENCY_SYMBOL" envDefault:"KES"`
	LogLevel       string `env:"LOG_LEVEL" envDefault:"warn"`
}

func LoadCLI() (*CLIConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config.LoadCLI: .env: %w", err)
	}
	cfg, err := env.ParseAs[CLIConfig]()
	if err != nil {
		return nil, fmt.Errorf("config.LoadCLI: %w", err)
	}
	return &cfg, nil
}
