// Package config loads server settings from the environment.
//
// A .env file is read first when present (development), then variables are
// parsed into Config. Explicit environment variables win over .env values.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Word sources accepted by WORDS_SOURCE.
const (
	WordsEmbedded = "embedded"
	WordsFile     = "file"
	WordsSQLite   = "sqlite"
	WordsRemote   = "remote"
)

type Config struct {
	Port     string `env:"PORT"      envDefault:"5175"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	AppEnv   string `env:"APP_ENV"   envDefault:"development"`
	DBPath   string `env:"DB_PATH"   envDefault:"./data/hangman.db"`

	JWTSecret      string `env:"JWT_SECRET"       envDefault:"dev_secret_change_me"`
	JWTExpiresDays int    `env:"JWT_EXPIRES_DAYS" envDefault:"14"`
	CookieName     string `env:"COOKIE_NAME"      envDefault:"hangman_token"`
	ClientOrigin   string `env:"CLIENT_ORIGIN"    envDefault:"http://localhost:5173"`

	WordsSource    string `env:"WORDS_SOURCE"     envDefault:"embedded"`
	WordsFile      string `env:"WORDS_FILE"`
	WordsRemoteURL string `env:"WORDS_REMOTE_URL"`
	DailySalt      string `env:"DAILY_SALT"       envDefault:"local_dev_salt"`

	ScoreTimeout   time.Duration `env:"SCORE_TIMEOUT"    envDefault:"5s"`
	SessionIdleTTL time.Duration `env:"SESSION_IDLE_TTL" envDefault:"24h"`
}

// Production reports whether cookies must be Secure.
func (c Config) Production() bool { return c.AppEnv == "production" }

// TokenTTL is the JWT lifetime.
func (c Config) TokenTTL() time.Duration {
	return time.Duration(c.JWTExpiresDays) * 24 * time.Hour
}

// Load reads .env (if any) and parses the environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	return Parse()
}

// Parse parses the environment without touching .env files.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.WordsSource {
	case WordsEmbedded, WordsSQLite:
	case WordsFile:
		if c.WordsFile == "" {
			return fmt.Errorf("config: WORDS_SOURCE=file requires WORDS_FILE")
		}
	case WordsRemote:
		if c.WordsRemoteURL == "" {
			return fmt.Errorf("config: WORDS_SOURCE=remote requires WORDS_REMOTE_URL")
		}
	default:
		return fmt.Errorf("config: unknown WORDS_SOURCE %q", c.WordsSource)
	}
	if c.JWTExpiresDays <= 0 {
		return fmt.Errorf("config: JWT_EXPIRES_DAYS must be positive")
	}
	return nil
}
