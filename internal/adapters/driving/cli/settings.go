package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Surya-Mathivanan/pathway-cli/internal/core/services"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change settings stored in ~/.pathway/config.toml.

Environment variables PATHWAY_API_BASE_URL and PATHWAY_TOKEN override the
file.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a single setting",
	Long: `Set a single setting by key.

Secret keys (auth.client_secret, auth.token) are prompted for without echo
when the value is omitted.

Keys:
  ` + strings.Join(settingKeys(), "\n  "),
	Args: cobra.RangeArgs(1, 2),
	RunE: runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func settingKeys() []string {
	return []string{
		services.KeyAPIBaseURL,
		services.KeyAPIRateLimit,
		services.KeyAuthClientID,
		services.KeyAuthClientSecret,
		services.KeyAuthURL,
		services.KeyAuthTokenURL,
		services.KeyAuthScopes,
		services.KeyAuthToken,
		services.KeyExportDir,
	}
}

func isSecretKey(key string) bool {
	return key == services.KeyAuthClientSecret || key == services.KeyAuthToken
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[API]")
	cmd.Printf("  Base URL: %s\n", settings.API.BaseURL)
	cmd.Printf("  Rate limit: %d req/s\n", settings.API.RateLimit)
	cmd.Println()

	cmd.Println("[Auth]")
	switch {
	case settings.Auth.UsesStaticToken():
		cmd.Printf("  Mode: static token\n")
		cmd.Printf("  Token: %s\n", maskAPIKey(settings.Auth.Token))
	case settings.Auth.IsConfigured():
		cmd.Printf("  Mode: browser sign-in\n")
		cmd.Printf("  Client ID: %s\n", settings.Auth.ClientID)
		if settings.Auth.ClientSecret != "" {
			cmd.Printf("  Client secret: %s\n", maskAPIKey(settings.Auth.ClientSecret))
		} else {
			cmd.Printf("  Client secret: (not set)\n")
		}
		cmd.Printf("  Scopes: %s\n", strings.Join(settings.Auth.Scopes, " "))
	default:
		cmd.Printf("  Mode: not configured\n")
	}
	cmd.Println()

	cmd.Println("[Export]")
	dir := settings.Export.Dir
	if dir == "" {
		dir = "(working directory)"
	}
	cmd.Printf("  Directory: %s\n", dir)
	cmd.Println()

	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
	} else {
		cmd.Println("Status: OK")
	}
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key := args[0]
	var value string
	switch {
	case len(args) == 2:
		value = args[1]
	case isSecretKey(key):
		cmd.Printf("%s: ", key)
		value = readPassword()
		cmd.Println()
	default:
		return fmt.Errorf("missing value for %s", key)
	}

	if err := settingsService.Set(key, value); err != nil {
		return err
	}
	if isSecretKey(key) {
		cmd.Printf("Set %s\n", key)
	} else {
		cmd.Printf("Set %s = %s\n", key, value)
	}
	return nil
}

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
