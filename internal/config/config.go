package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"meesho-recon/pkg/logger"
)

type Config struct {
	Server     ServerConfig
	App        AppConfig
	Ingest     IngestConfig
	Session    SessionConfig
	Vocabulary *Vocabulary `validate:"required"`
}

type ServerConfig struct {
	Port    string `validate:"required,numeric"`
	GinMode string `validate:"oneof=debug release test"`
}

type AppConfig struct {
	LogLevel    string `validate:"required"`
	PerUnitCost decimal.Decimal
}

type IngestConfig struct {
	MaxUploadMB int64 `validate:"gt=0"`
}

// MaxUploadBytes is the per-file size ceiling checked before parsing.
func (c IngestConfig) MaxUploadBytes() int64 {
	return c.MaxUploadMB << 20
}

// devSessionSecret signs cookies outside release mode when SESSION_SECRET
// is unset.
const devSessionSecret = "meesho-recon-dev-session"

type SessionConfig struct {
	Secret      string        `validate:"required,min=8"`
	IdleTimeout time.Duration `validate:"gt=0"`
	SweepSpec   string        `validate:"required"`
}

func Load() (*Config, error) {
	// .env is optional; real environment variables win.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.GetLogger().WithError(err).Warn("Failed to read .env file")
	}

	maxUpload, err := strconv.ParseInt(getEnv("MAX_UPLOAD_MB", "120"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid MAX_UPLOAD_MB: %w", err)
	}

	idleMinutes, err := strconv.Atoi(getEnv("SESSION_IDLE_MINUTES", "60"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_IDLE_MINUTES: %w", err)
	}

	perUnitCost, err := decimal.NewFromString(getEnv("PER_UNIT_COST", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid PER_UNIT_COST: %w", err)
	}

	ginMode := getEnv("GIN_MODE", "release")
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		if ginMode == "release" {
			return nil, fmt.Errorf("SESSION_SECRET is required in release mode")
		}
		logger.GetLogger().WithField("gin_mode", ginMode).Warn("SESSION_SECRET not set, signing cookies with the development secret")
		secret = devSessionSecret
	}

	vocab := DefaultVocabulary()
	if path := os.Getenv("VOCABULARY_FILE"); path != "" {
		vocab, err = LoadVocabulary(path)
		if err != nil {
			return nil, err
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:    getEnv("SERVER_PORT", "8080"),
			GinMode: ginMode,
		},
		App: AppConfig{
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			PerUnitCost: perUnitCost,
		},
		Ingest: IngestConfig{
			MaxUploadMB: maxUpload,
		},
		Session: SessionConfig{
			Secret:      secret,
			IdleTimeout: time.Duration(idleMinutes) * time.Minute,
			SweepSpec:   getEnv("SESSION_SWEEP_SPEC", "@every 5m"),
		},
		Vocabulary: vocab,
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks struct constraints on the loaded configuration.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
