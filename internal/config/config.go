package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	yaml "go.yaml.in/yaml/v3"
)

type Config struct {
	Addr      string `yaml:"addr"`
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
	AppName   string `yaml:"app_name"`

	// Secrets del canal LINE; nunca se loguean.
	LineChannelAccessToken string        `yaml:"line_channel_access_token"`
	LineChannelSecret      string        `yaml:"line_channel_secret"`
	LineAPIBaseURL         string        `yaml:"line_api_base_url"`
	LineRatePerSec         int           `yaml:"line_rate_per_sec"`
	LineTimeout            time.Duration `yaml:"line_timeout"`

	// TriggerToken protege /walks/start y /triggers/*. Vacío => modo dev.
	TriggerToken string `yaml:"trigger_token"`

	// Registro de suscriptores: Postgres si DBDSN, si no SQLite si SQLitePath, si no memoria.
	DBDSN      string `yaml:"db_dsn"`
	SQLitePath string `yaml:"sqlite_path"`

	// ListenDSN habilita el feed LISTEN/NOTIFY del event store.
	ListenDSN string `yaml:"listen_dsn"`

	Timezone           string `yaml:"timezone"`
	MulticastChunkSize int    `yaml:"multicast_chunk_size"`
	WebhookConcurrency int    `yaml:"webhook_concurrency"`
}

var (
	ErrMissingAccessToken   = errors.New("missing LINE_CHANNEL_ACCESS_TOKEN")
	ErrMissingChannelSecret = errors.New("missing LINE_CHANNEL_SECRET")
)

func defaults() Config {
	return Config{
		Addr:               ":8080",
		LogLevel:           "info",
		LogFormat:          "text",
		AppName:            "pet-care-notifier",
		LineAPIBaseURL:     "https://api.line.me",
		LineRatePerSec:     100,
		LineTimeout:        10 * time.Second,
		Timezone:           "Asia/Tokyo",
		MulticastChunkSize: 500,
		WebhookConcurrency: 8,
	}
}

// Load arma la config: defaults, luego CONFIG_FILE (yaml, opcional), luego env.
func Load() (Config, error) {
	cfg := defaults()

	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file: %w", err)
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		cfg.Addr = ":" + v
	}
	setString(&cfg.Addr, "HTTP_ADDR")
	setString(&cfg.LogLevel, "LOG_LEVEL")
	setString(&cfg.LogFormat, "LOG_FORMAT")
	setString(&cfg.AppName, "APP_NAME")
	setString(&cfg.LineChannelAccessToken, "LINE_CHANNEL_ACCESS_TOKEN")
	setString(&cfg.LineChannelSecret, "LINE_CHANNEL_SECRET")
	setString(&cfg.LineAPIBaseURL, "LINE_API_BASE_URL")
	setInt(&cfg.LineRatePerSec, "LINE_RATE_PER_SEC")
	if v := os.Getenv("LINE_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.LineTimeout = time.Duration(n) * time.Millisecond
		}
	}
	setString(&cfg.TriggerToken, "TRIGGER_TOKEN")
	setString(&cfg.DBDSN, "DB_DSN")
	setString(&cfg.SQLitePath, "SQLITE_PATH")
	setString(&cfg.ListenDSN, "LISTEN_DSN")
	setString(&cfg.Timezone, "TIMEZONE")
	setInt(&cfg.MulticastChunkSize, "MULTICAST_CHUNK_SIZE")
	setInt(&cfg.WebhookConcurrency, "WEBHOOK_CONCURRENCY")
}

// Validate falla en el arranque si faltan los secrets del canal.
func (c Config) Validate() error {
	if strings.TrimSpace(c.LineChannelAccessToken) == "" {
		return ErrMissingAccessToken
	}
	if strings.TrimSpace(c.LineChannelSecret) == "" {
		return ErrMissingChannelSecret
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid TIMEZONE %q: %w", c.Timezone, err)
	}
	if c.MulticastChunkSize <= 0 || c.MulticastChunkSize > 500 {
		return fmt.Errorf("MULTICAST_CHUNK_SIZE must be 1..500, got %d", c.MulticastChunkSize)
	}
	return nil
}

func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
