package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-yaml"

	"social-distance/models"
	"social-distance/services"
)

const configFileName = "configuration.yaml"

// Path returns CONFIG_PATH, or configuration.yaml next to the executable
func Path() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	ex, err := os.Executable()
	if err != nil {
		return configFileName
	}
	return filepath.Join(filepath.Dir(ex), configFileName)
}

// Load reads the optional YAML file at path, then applies environment overrides.
// A missing file is not an error; the Neynar API key is only checked on first use.
func Load(path string) (models.Configuration, error) {
	cfg := defaults()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
		slog.Info("[CONFIG] No configuration file, using defaults and environment", "path", path)
	default:
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}

	applyEnv(&cfg)

	if err := validateConfig(cfg); err != nil {
		return cfg, err
	}

	slog.Info("[CONFIG] Loaded configuration",
		"port", cfg.Settings.Port,
		"env", cfg.Settings.Env,
		"dedupe", cfg.Settings.Dedupe,
		"neynar_base_url", cfg.Neynar.BaseURL,
		"page_size", cfg.Neynar.PageSize,
		"max_pages", cfg.Neynar.MaxPages,
		"fetch_timeout", cfg.Neynar.GetFetchTimeout(),
		"api_key_set", cfg.Neynar.APIKey != "",
		"otel_endpoint", cfg.Telemetry.OtelEndpoint,
	)
	return cfg, nil
}

func defaults() models.Configuration {
	return models.Configuration{
		Settings: models.Settings{
			Port:           "8080",
			Env:            "prod",
			Dedupe:         models.DedupeByFID,
			AllowedOrigins: []string{"*"},
		},
		Neynar: models.Neynar{
			BaseURL:             services.DefaultBaseURL,
			PageSize:            services.DefaultPageSize,
			MaxPages:            services.DefaultMaxPages,
			FetchTimeoutSeconds: int(services.DefaultFetchTimeout / time.Second),
		},
		Telemetry: models.Telemetry{
			ServiceName: "social-distance",
		},
	}
}

func applyEnv(cfg *models.Configuration) {
	cfg.Settings.Port = getEnv("PORT", cfg.Settings.Port)
	cfg.Settings.Env = getEnv("APP_ENV", cfg.Settings.Env)
	cfg.Neynar.APIKey = getEnv("NEYNAR_API_KEY", cfg.Neynar.APIKey)
	cfg.Neynar.BaseURL = getEnv("NEYNAR_BASE_URL", cfg.Neynar.BaseURL)
	cfg.Telemetry.OtelEndpoint = getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", cfg.Telemetry.OtelEndpoint)
}

func validateConfig(cfg models.Configuration) error {
	if cfg.Settings.Port == "" {
		return errors.New("config: missing settings.port")
	}
	if cfg.Neynar.PageSize < 1 || cfg.Neynar.PageSize > 150 {
		return fmt.Errorf("config: neynar.page_size must be between 1 and 150, got %d", cfg.Neynar.PageSize)
	}
	if cfg.Neynar.MaxPages < 1 {
		return fmt.Errorf("config: neynar.max_pages must be positive, got %d", cfg.Neynar.MaxPages)
	}
	if cfg.Neynar.FetchTimeoutSeconds < 1 {
		return fmt.Errorf("config: neynar.fetch_timeout_seconds must be positive, got %d", cfg.Neynar.FetchTimeoutSeconds)
	}
	if cfg.Neynar.RequestsPerSecond < 0 {
		return fmt.Errorf("config: neynar.requests_per_second must not be negative")
	}
	switch cfg.Settings.Dedupe {
	case models.DedupeByFID, models.DedupeNone:
	default:
		return fmt.Errorf("config: unknown settings.dedupe %q", cfg.Settings.Dedupe)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}
