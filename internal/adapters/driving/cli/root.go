// Package cli provides the cobra command tree for the pathway CLI.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Surya-Mathivanan/pathway-cli/internal/core/domain"
	"github.com/Surya-Mathivanan/pathway-cli/internal/core/ports/driving"
	"github.com/Surya-Mathivanan/pathway-cli/internal/logger"
)

// version is set at build time with -ldflags "-X .../cli.version=...".
var version = "dev"

var (
	verbose bool
	logFile string
)

// Services injected by the composition root.
var (
	sessionService   driving.SessionService
	wizardService    driving.WizardService
	progressService  driving.ProgressService
	pathwayService   driving.PathwayService
	assistantService driving.AssistantService
	exportService    driving.ExportService
	settingsService  driving.SettingsService
)

// Services groups the driving ports used by the commands.
type Services struct {
	Session   driving.SessionService
	Wizard    driving.WizardService
	Progress  driving.ProgressService
	Pathway   driving.PathwayService
	Assistant driving.AssistantService
	Export    driving.ExportService
	Settings  driving.SettingsService
}

// SetServices injects the services used by the commands.
func SetServices(s Services) {
	sessionService = s.Session
	wizardService = s.Wizard
	progressService = s.Progress
	pathwayService = s.Pathway
	assistantService = s.Assistant
	exportService = s.Export
	settingsService = s.Settings
}

// SetVersion sets the version printed by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

var rootCmd = &cobra.Command{
	Use:   "pathway",
	Short: "Personalised DSA study plans in your terminal",
	Long: `Pathway builds a personalised data structures and algorithms study plan
from a short questionnaire, tracks your progress through it, and exports it
as text, YAML or PDF.

Sign in first with 'pathway auth login', then run 'pathway pathway new' or
launch the interactive interface with 'pathway tui'.`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		if logFile != "" {
			if err := logger.SetLogFile(logFile); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug output on stderr")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Also write JSON logs to this file")
}

// Execute runs the root command. Command output goes to stdout.
func Execute() error {
	rootCmd.SetOut(os.Stdout)
	return rootCmd.Execute()
}

// errSignInHint explains how to recover from an authorization failure.
const errSignInHint = "run 'pathway auth login' first"

// requireSession fails fast when nobody is signed in.
func requireSession() error {
	if sessionService == nil {
		return errors.New("session service not configured")
	}
	if !sessionService.IsAuthenticated() {
		return fmt.Errorf("%w: %s", domain.ErrSignInRequired, errSignInHint)
	}
	return nil
}

// friendly adds a sign-in hint to authorization failures.
func friendly(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrUnauthorized) || errors.Is(err, domain.ErrSignInRequired) {
		return fmt.Errorf("%w (%s)", err, errSignInHint)
	}
	return err
}
