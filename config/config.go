package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	DefaultBaseURL = "https://openrouter.ai/api/v1"
	DefaultModel   = "openai/gpt-4o-mini"
	DefaultPort    = "8000"

	FallbackKeyword = "keyword"
	FallbackVader   = "vader"
)

// Config is read once at startup and handed to every component that needs it.
type Config struct {
	Env                 string
	APIKey              string
	BaseURL             string
	Model               string
	RequestTimeout      time.Duration
	Port                string
	FallbackMode        string
	HealthcheckInterval time.Duration
	LogLevel            string
}

// Load builds a Config from the process environment.
func Load() (Config, error) {
	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config using lookup in place of os.LookupEnv.
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	get := func(key, fallback string) string {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return fallback
	}

	cfg := Config{
		Env:          get("APP_ENV", "dev"),
		APIKey:       get("OPENROUTER_API_KEY", ""),
		BaseURL:      get("OPENAI_BASE_URL", DefaultBaseURL),
		Model:        get("OPENAI_MODEL", DefaultModel),
		Port:         get("PORT", DefaultPort),
		FallbackMode: strings.ToLower(get("FALLBACK_MODE", FallbackKeyword)),
		LogLevel:     strings.ToLower(get("LOG_LEVEL", "info")),
	}

	if cfg.APIKey == "" {
		return Config{}, errors.New("config: OPENROUTER_API_KEY is required")
	}

	var err error
	if cfg.RequestTimeout, err = parseDuration(get("OPENAI_REQUEST_TIMEOUT", "0")); err != nil {
		return Config{}, fmt.Errorf("config: OPENAI_REQUEST_TIMEOUT: %w", err)
	}
	if cfg.HealthcheckInterval, err = parseDuration(get("HEALTHCHECK_INTERVAL", "0")); err != nil {
		return Config{}, fmt.Errorf("config: HEALTHCHECK_INTERVAL: %w", err)
	}

	switch cfg.FallbackMode {
	case FallbackKeyword, FallbackVader:
	default:
		return Config{}, fmt.Errorf("config: unknown FALLBACK_MODE %q", cfg.FallbackMode)
	}

	return cfg, nil
}

func parseDuration(raw string) (time.Duration, error) {
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("negative duration %s", raw)
	}
	return d, nil
}
