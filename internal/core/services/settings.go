package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Surya-Mathivanan/pathway-cli/internal/core/domain"
	"github.com/Surya-Mathivanan/pathway-cli/internal/core/ports/driven"
	"github.com/Surya-Mathivanan/pathway-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	KeyAPIBaseURL       = "api.base_url"
	KeyAPIRateLimit     = "api.rate_limit"
	KeyAuthClientID     = "auth.client_id"
	KeyAuthClientSecret = "auth.client_secret"
	KeyAuthURL          = "auth.auth_url"
	KeyAuthTokenURL     = "auth.token_url"
	KeyAuthScopes       = "auth.scopes"
	KeyAuthToken        = "auth.token"
	KeyExportDir        = "export.dir"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	scopes := s.configStore.GetStringSlice(KeyAuthScopes)
	if len(scopes) == 0 {
		scopes = defaults.Auth.Scopes
	}

	settings := &domain.AppSettings{
		API: domain.APISettings{
			BaseURL:   strings.TrimRight(s.getString(KeyAPIBaseURL, defaults.API.BaseURL), "/"),
			RateLimit: s.getInt(KeyAPIRateLimit, defaults.API.RateLimit),
		},
		Auth: domain.AuthSettings{
			ClientID:     s.configStore.GetString(KeyAuthClientID),
			ClientSecret: s.configStore.GetString(KeyAuthClientSecret),
			AuthURL:      s.getString(KeyAuthURL, defaults.Auth.AuthURL),
			TokenURL:     s.getString(KeyAuthTokenURL, defaults.Auth.TokenURL),
			Scopes:       scopes,
			Token:        s.configStore.GetString(KeyAuthToken),
		},
		Export: domain.ExportSettings{
			Dir: s.configStore.GetString(KeyExportDir),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	values := []struct {
		key   string
		value any
	}{
		{KeyAPIBaseURL, settings.API.BaseURL},
		{KeyAPIRateLimit, settings.API.RateLimit},
		{KeyAuthClientID, settings.Auth.ClientID},
		{KeyAuthURL, settings.Auth.AuthURL},
		{KeyAuthTokenURL, settings.Auth.TokenURL},
		{KeyAuthScopes, settings.Auth.Scopes},
		{KeyExportDir, settings.Export.Dir},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	// Secrets are only written when present so an empty form does not wipe them.
	if settings.Auth.ClientSecret != "" {
		if err := s.configStore.Set(KeyAuthClientSecret, settings.Auth.ClientSecret); err != nil {
			return fmt.Errorf("save %s: %w", KeyAuthClientSecret, err)
		}
	}
	if settings.Auth.Token != "" {
		if err := s.configStore.Set(KeyAuthToken, settings.Auth.Token); err != nil {
			return fmt.Errorf("save %s: %w", KeyAuthToken, err)
		}
	}

	return nil
}

// Set updates a single setting by its config key.
func (s *SettingsService) Set(key, value string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	value = strings.TrimSpace(value)
	switch key {
	case KeyAPIBaseURL:
		settings.API.BaseURL = strings.TrimRight(value, "/")
	case KeyAPIRateLimit:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be a number", domain.ErrInvalidInput, key)
		}
		settings.API.RateLimit = n
	case KeyAuthClientID:
		settings.Auth.ClientID = value
	case KeyAuthClientSecret:
		settings.Auth.ClientSecret = value
	case KeyAuthURL:
		settings.Auth.AuthURL = value
	case KeyAuthTokenURL:
		settings.Auth.TokenURL = value
	case KeyAuthScopes:
		settings.Auth.Scopes = splitList(value)
	case KeyAuthToken:
		settings.Auth.Token = value
	case KeyExportDir:
		settings.Export.Dir = value
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	return s.Save(settings)
}

// Keys returns the supported config keys in display order.
func (s *SettingsService) Keys() []string {
	return []string{
		KeyAPIBaseURL,
		KeyAPIRateLimit,
		KeyAuthClientID,
		KeyAuthClientSecret,
		KeyAuthURL,
		KeyAuthTokenURL,
		KeyAuthScopes,
		KeyAuthToken,
		KeyExportDir,
	}
}

// Validate checks that the current settings are usable.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return settings.Validate()
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.FieldsFunc(value, func(r rune) bool { return r == ',' || r == ' ' }) {
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
