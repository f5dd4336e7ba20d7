package config

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	applog "beautyshop/internal/log"
)

type Config struct {
	Env      string `envconfig:"APP_ENV" default:"development"`
	Port     string `envconfig:"PORT" default:"8080"`
	DBDSN    string `envconfig:"DB_DSN" default:"beautyshop.db"`
	LogFile  string `envconfig:"LOG_FILE"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	AdminKey string `envconfig:"ADMIN_API_KEY"`
	SeedDemo bool   `envconfig:"SEED_DEMO" default:"true"`

	BodyLimit          int `envconfig:"BODY_LIMIT_BYTES" default:"1048576"`
	RateLimitPerMinute int `envconfig:"RATE_LIMIT_PER_MINUTE" default:"60"`

	AlertConfig
}

// AlertConfig holds the defaults used by the product alerts report.
type AlertConfig struct {
	LowStockThreshold int `envconfig:"LOW_STOCK_THRESHOLD" default:"5"`
	ExpiryWindowDays  int `envconfig:"EXPIRY_WINDOW_DAYS" default:"7"`
	SlowSellingDays   int `envconfig:"SLOW_SELLING_DAYS" default:"14"`
}

func (c Config) IsProduction() bool { return c.Env == "production" }

// Load reads an optional .env file and then the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		applog.L().Warn().Err(err).Msg("[config] could not read .env")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	if cfg.LowStockThreshold < 0 || cfg.ExpiryWindowDays < 0 || cfg.SlowSellingDays < 1 {
		return Config{}, errors.New("config: alert thresholds must be non-negative and SLOW_SELLING_DAYS >= 1")
	}

	applog.L().Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Str("db_dsn", cfg.DBDSN).
		Str("log_file", cfg.LogFile).
		Bool("admin_key_set", cfg.AdminKey != "").
		Msg("[config] loaded")
	return cfg, nil
}
