package models

import "time"

// DedupeMode selects how the unique follower/following totals are counted
type DedupeMode string

const (
	// DedupeByFID collapses profiles that share a fid across both lists
	DedupeByFID DedupeMode = "fid"
	// DedupeNone counts every fetched profile, so the total is the sum of both list lengths
	DedupeNone DedupeMode = "none"
)

// Configuration object read from YAML and the environment
type Configuration struct {
	Settings  Settings  `yaml:"settings"`
	Neynar    Neynar    `yaml:"neynar"`
	Telemetry Telemetry `yaml:"telemetry"`
}

// Settings required to run the application
type Settings struct {
	Port           string     `yaml:"port"`
	Env            string     `yaml:"env"` // "local" or "prod"
	Dedupe         DedupeMode `yaml:"dedupe"`
	AllowedOrigins []string   `yaml:"allowed_origins"`
}

// Neynar holds the upstream social graph API settings
type Neynar struct {
	APIKey              string  `yaml:"api_key"`
	BaseURL             string  `yaml:"base_url"`
	PageSize            int     `yaml:"page_size"`
	MaxPages            int     `yaml:"max_pages"`
	FetchTimeoutSeconds int     `yaml:"fetch_timeout_seconds"`
	RequestsPerSecond   float64 `yaml:"requests_per_second"` // 0 disables client-side pacing
}

// Telemetry configures trace export. An empty endpoint disables it.
type Telemetry struct {
	OtelEndpoint string `yaml:"otel_endpoint"`
	ServiceName  string `yaml:"service_name"`
}

// GetFetchTimeout returns the per-fid fetch deadline as a time.Duration
func (n Neynar) GetFetchTimeout() time.Duration {
	return time.Duration(n.FetchTimeoutSeconds) * time.Second
}
