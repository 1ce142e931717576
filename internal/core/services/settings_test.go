package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Surya-Mathivanan/pathway-cli/internal/adapters/driven/storage/memory"
	"github.com/Surya-Mathivanan/pathway-cli/internal/core/domain"
)

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultAppSettings(), *settings)
	assert.Equal(t, domain.DefaultAppSettings(), service.GetDefaults())
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	store := memory.NewConfigStoreWith(map[string]any{
		KeyAPIBaseURL:   "https://pathway.example.com/",
		KeyAPIRateLimit: int64(0),
		KeyAuthClientID: "client-123",
		KeyAuthScopes:   []any{"openid"},
		KeyAuthToken:    "static",
		KeyExportDir:    "/tmp/plans",
	})
	service := NewSettingsService(store)

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, "https://pathway.example.com", settings.API.BaseURL, "trailing slash trimmed")
	assert.Equal(t, 0, settings.API.RateLimit, "explicit zero disables the limit")
	assert.Equal(t, "client-123", settings.Auth.ClientID)
	assert.Equal(t, []string{"openid"}, settings.Auth.Scopes)
	assert.True(t, settings.Auth.UsesStaticToken())
	assert.Equal(t, "/tmp/plans", settings.Export.Dir)
}

func TestSettingsService_Save_DoesNotWipeSecrets(t *testing.T) {
	store := memory.NewConfigStoreWith(map[string]any{
		KeyAuthClientSecret: "shh",
		KeyAuthToken:        "tok",
	})
	service := NewSettingsService(store)

	settings := domain.DefaultAppSettings()
	require.NoError(t, service.Save(&settings))

	assert.Equal(t, "shh", store.GetString(KeyAuthClientSecret))
	assert.Equal(t, "tok", store.GetString(KeyAuthToken))
	assert.Equal(t, domain.DefaultAPIBaseURL, store.GetString(KeyAPIBaseURL))
}

func TestSettingsService_Save_Validates(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	settings := domain.DefaultAppSettings()
	settings.API.BaseURL = "not a url"

	assert.ErrorIs(t, service.Save(&settings), domain.ErrInvalidInput)
	_, exists := store.Get(KeyAPIBaseURL)
	assert.False(t, exists)
}

func TestSettingsService_Set(t *testing.T) {
	tests := []struct {
		key   string
		value string
		check func(t *testing.T, s *domain.AppSettings)
	}{
		{KeyAPIBaseURL, "https://api.example.com/", func(t *testing.T, s *domain.AppSettings) {
			assert.Equal(t, "https://api.example.com", s.API.BaseURL)
		}},
		{KeyAPIRateLimit, "12", func(t *testing.T, s *domain.AppSettings) {
			assert.Equal(t, 12, s.API.RateLimit)
		}},
		{KeyAuthScopes, "openid, email profile", func(t *testing.T, s *domain.AppSettings) {
			assert.Equal(t, []string{"openid", "email", "profile"}, s.Auth.Scopes)
		}},
		{KeyAuthClientSecret, "secret", func(t *testing.T, s *domain.AppSettings) {
			assert.Equal(t, "secret", s.Auth.ClientSecret)
		}},
		{KeyExportDir, " ./out ", func(t *testing.T, s *domain.AppSettings) {
			assert.Equal(t, "./out", s.Export.Dir)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			service := NewSettingsService(memory.NewConfigStore())

			require.NoError(t, service.Set(tt.key, tt.value))

			settings, err := service.Get()
			require.NoError(t, err)
			tt.check(t, settings)
		})
	}
}

func TestSettingsService_Set_Errors(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	assert.ErrorIs(t, service.Set("search.mode", "hybrid"), domain.ErrInvalidInput)
	assert.ErrorIs(t, service.Set(KeyAPIRateLimit, "fast"), domain.ErrInvalidInput)
	assert.ErrorIs(t, service.Set(KeyAPIRateLimit, "-1"), domain.ErrInvalidInput)
	assert.ErrorIs(t, service.Set(KeyAPIBaseURL, "ftp://x"), domain.ErrInvalidInput)
}

func TestSettingsService_KeysAndValidate(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	assert.Contains(t, service.Keys(), KeyAPIBaseURL)
	assert.Len(t, service.Keys(), 9)
	assert.NoError(t, service.Validate())
}
