package auth

import (
	"errors"
	"strings"

	"social-distance/models"
)

// ErrMissingAPIKey is returned on first use when no Neynar API key was configured
var ErrMissingAPIKey = errors.New("auth: NEYNAR_API_KEY is not set")

const apiKeyHeader = "api_key"

// Manager handles authentication for Neynar endpoints
type Manager struct {
	settings models.Neynar
}

// NewManager creates a new Manager object. The key is not checked until it is needed.
func NewManager(settings models.Neynar) *Manager {
	manager := Manager{}
	manager.settings = settings
	return &manager
}

// GetKey returns the API key used to make Neynar API requests
func (a *Manager) GetKey() (string, error) {
	key := strings.TrimSpace(a.settings.APIKey)
	if key == "" {
		return "", ErrMissingAPIKey
	}
	return key, nil
}

// AppendAuthHeader adds the API key header to headers
func (a *Manager) AppendAuthHeader(headers map[string]string) error {
	key, err := a.GetKey()
	if err != nil {
		return err
	}
	headers[apiKeyHeader] = key
	return nil
}
