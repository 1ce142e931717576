package domain

import (
	"fmt"
	"net/url"
	"strings"
)

const unknownDescription = "Unknown"

// Defaults for application settings.
const (
	// DefaultAPIBaseURL is where the pathway service listens in development.
	DefaultAPIBaseURL = "http://localhost:8080"

	// DefaultRateLimit is the default client-side request budget per second.
	DefaultRateLimit = 5

	// DefaultGoogleAuthURL and DefaultGoogleTokenURL are Google's OAuth endpoints.
	DefaultGoogleAuthURL  = "https://accounts.google.com/o/oauth2/v2/auth"
	DefaultGoogleTokenURL = "https://oauth2.googleapis.com/token"
)

// Fixed export parameters.
const (
	// TextExportFilename is the plain-text dump of the pathway.
	TextExportFilename = "plan.txt"
	// YAMLExportFilename is the YAML dump of the pathway.
	YAMLExportFilename = "plan.yaml"
	// PDFExportFilename is the paginated document export.
	PDFExportFilename = "DSA-Plan.pdf"

	// PageWidthMM and PageHeightMM describe an A4 portrait page.
	PageWidthMM  = 210.0
	PageHeightMM = 297.0

	// RasterScale is the factor the plan surface is rendered at.
	RasterScale = 2
)

// DefaultGoogleScopes are requested at sign-in.
func DefaultGoogleScopes() []string {
	return []string{"openid", "email", "profile"}
}

// APISettings configures the pathway service client.
type APISettings struct {
	// BaseURL is the root of the REST API.
	BaseURL string

	// RateLimit is the maximum number of requests per second.
	RateLimit int
}

// AuthSettings configures sign-in.
type AuthSettings struct {
	// ClientID and ClientSecret identify the OAuth client.
	ClientID     string
	ClientSecret string

	// AuthURL and TokenURL are the provider's OAuth endpoints.
	AuthURL  string
	TokenURL string

	// Scopes requested at sign-in.
	Scopes []string

	// Token is a static bearer token. When set, browser sign-in is skipped.
	Token string
}

// IsConfigured returns true if browser sign-in can be attempted.
func (a AuthSettings) IsConfigured() bool {
	return a.ClientID != "" && a.AuthURL != "" && a.TokenURL != ""
}

// UsesStaticToken returns true if a static bearer token is configured.
func (a AuthSettings) UsesStaticToken() bool {
	return strings.TrimSpace(a.Token) != ""
}

// ExportSettings configures file outputs.
type ExportSettings struct {
	// Dir is where exported files are written. Empty means the working directory.
	Dir string
}

// AppSettings holds all application settings.
type AppSettings struct {
	API    APISettings
	Auth   AuthSettings
	Export ExportSettings
}

// DefaultAppSettings returns settings with sensible defaults.
// No OAuth client is configured by default.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		API: APISettings{
			BaseURL:   DefaultAPIBaseURL,
			RateLimit: DefaultRateLimit,
		},
		Auth: AuthSettings{
			AuthURL:  DefaultGoogleAuthURL,
			TokenURL: DefaultGoogleTokenURL,
			Scopes:   DefaultGoogleScopes(),
		},
	}
}

// Validate checks that the settings can be used to reach the service.
func (s AppSettings) Validate() error {
	u, err := url.Parse(s.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: api base url %q", ErrInvalidInput, s.API.BaseURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: api base url scheme %q", ErrInvalidInput, u.Scheme)
	}
	if s.API.RateLimit < 0 {
		return fmt.Errorf("%w: rate limit %d", ErrInvalidInput, s.API.RateLimit)
	}
	return nil
}
