// Command pathway is the terminal client for the pathway study-plan service.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/Surya-Mathivanan/pathway-cli/internal/adapters/driven/api"
	"github.com/Surya-Mathivanan/pathway-cli/internal/adapters/driven/config/env"
	"github.com/Surya-Mathivanan/pathway-cli/internal/adapters/driven/config/file"
	"github.com/Surya-Mathivanan/pathway-cli/internal/adapters/driven/document/pdf"
	"github.com/Surya-Mathivanan/pathway-cli/internal/adapters/driven/identity/google"
	"github.com/Surya-Mathivanan/pathway-cli/internal/adapters/driven/identity/static"
	"github.com/Surya-Mathivanan/pathway-cli/internal/adapters/driven/render"
	"github.com/Surya-Mathivanan/pathway-cli/internal/adapters/driven/storage/memory"
	"github.com/Surya-Mathivanan/pathway-cli/internal/adapters/driven/storage/sqlite"
	"github.com/Surya-Mathivanan/pathway-cli/internal/adapters/driving/cli"
	"github.com/Surya-Mathivanan/pathway-cli/internal/adapters/driving/oauth"
	"github.com/Surya-Mathivanan/pathway-cli/internal/core/domain"
	"github.com/Surya-Mathivanan/pathway-cli/internal/core/ports/driven"
	"github.com/Surya-Mathivanan/pathway-cli/internal/core/services"
	"github.com/Surya-Mathivanan/pathway-cli/internal/logger"
)

// version is set at build time.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env is fine.
	_ = godotenv.Load()
	defer logger.Close() //nolint:errcheck

	fileStore, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	config := env.NewOverlay(fileStore, env.DefaultBindings())
	settingsService := services.NewSettingsService(config)

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("reading settings: %w", err)
	}

	credentials, exportLog, closeStore := openStorage()
	defer closeStore()

	provider, err := newIdentityProvider(settings.Auth, credentials)
	if err != nil {
		return err
	}

	gate := services.NewSessionGate(provider)
	if err := gate.Open(); err != nil {
		return fmt.Errorf("opening session: %w", err)
	}
	defer gate.Close()

	client, err := api.New(api.Config{
		BaseURL:   settings.API.BaseURL,
		Tokens:    gate,
		RateLimit: settings.API.RateLimit,
	})
	if err != nil {
		return fmt.Errorf("creating api client: %w", err)
	}

	renderer, err := render.New()
	if err != nil {
		return fmt.Errorf("loading fonts: %w", err)
	}

	cli.SetServices(cli.Services{
		Session:   gate,
		Wizard:    services.NewWizard(client),
		Progress:  services.NewProgressTracker(client),
		Pathway:   services.NewPathwayService(client, client),
		Assistant: services.NewAssistantService(client),
		Export:    services.NewExportService(renderer, pdf.NewWriter(), exportLog),
		Settings:  settingsService,
	})
	cli.SetTUIConfig(&cli.TUIConfig{Watcher: config})
	cli.SetVersion(version)

	return cli.Execute()
}

// openStorage opens the SQLite store, falling back to in-memory stores so
// the client still works on a read-only home directory.
func openStorage() (driven.CredentialsStore, driven.ExportLog, func()) {
	store, err := sqlite.NewStore("")
	if err != nil {
		logger.Warn("sqlite unavailable, credentials will not persist: %v", err)
		return memory.NewCredentialsStore(), memory.NewExportLog(), func() {}
	}
	return store.CredentialsStore(), store.ExportLog(), func() {
		if err := store.Close(); err != nil {
			logger.Warn("closing store: %v", err)
		}
	}
}

// newIdentityProvider prefers a static token, then browser sign-in.
// Without either, every request is unauthorized until one is configured.
func newIdentityProvider(auth domain.AuthSettings, credentials driven.CredentialsStore) (driven.IdentityProvider, error) {
	switch {
	case auth.UsesStaticToken():
		return static.New(auth.Token), nil
	case auth.IsConfigured():
		provider, err := google.New(google.Config{
			Auth:  auth,
			Store: credentials,
			NewReceiver: func(state string) (google.CodeReceiver, error) {
				port, err := oauth.FindAvailablePort(oauth.DefaultPortStart, oauth.DefaultPortEnd)
				if err != nil {
					return nil, err
				}
				return oauth.NewCallbackServer(port, state), nil
			},
			OpenBrowser: oauth.OpenBrowser,
			ShowURL: func(url string) {
				fmt.Fprintf(os.Stderr, "Opening your browser to sign in. If it does not open, visit:\n  %s\n", url)
			},
		})
		if err != nil {
			return nil, fmt.Errorf("configuring sign-in: %w", err)
		}
		return provider, nil
	default:
		return static.New(""), nil
	}
}
