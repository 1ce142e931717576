package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/Surya-Mathivanan/pathway-cli/internal/adapters/driving/tui"
	"github.com/Surya-Mathivanan/pathway-cli/internal/adapters/driving/tui/messages"
	"github.com/Surya-Mathivanan/pathway-cli/internal/logger"
)

// ConfigWatcher reports changes to the configuration file.
type ConfigWatcher interface {
	Watch(ctx context.Context, onChange func()) error
}

// TUIConfig holds configuration for the TUI command.
type TUIConfig struct {
	// Watcher reloads settings while the TUI runs. Optional.
	Watcher ConfigWatcher
}

// tuiConfig holds the current TUI configuration.
var tuiConfig *TUIConfig

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for Pathway.

The TUI walks you through the questionnaire, shows your dashboard and
pathway, lets you tick off items, export a PDF and chat with the study
assistant. Views that need an account redirect to sign-in.

Controls:
  ↑/k, ↓/j - Navigate
  Enter    - Select / Confirm
  Space/x  - Toggle item done
  e        - Export PDF
  Esc      - Back
  ?        - Help
  q        - Quit`,
	RunE: runTUI,
}

// SetTUIConfig sets the configuration for the TUI command.
func SetTUIConfig(config *TUIConfig) {
	tuiConfig = config
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

// tuiPorts builds the TUI ports from the injected services.
func tuiPorts() *tui.Ports {
	return &tui.Ports{
		Session:   sessionService,
		Wizard:    wizardService,
		Progress:  progressService,
		Pathway:   pathwayService,
		Assistant: assistantService,
		Export:    exportService,
		Settings:  settingsService,
	}
}

func runTUI(cmd *cobra.Command, _ []string) error {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	app, err := tui.NewApp(tuiPorts())
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	app.WithContext(ctx)

	if tuiConfig != nil && tuiConfig.Watcher != nil {
		go watchConfig(ctx, tuiConfig.Watcher, app)
	}

	if err := app.Run(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// watchConfig forwards configuration reloads to the running app.
func watchConfig(ctx context.Context, w ConfigWatcher, app *tui.App) {
	err := w.Watch(ctx, func() {
		var validateErr error
		if settingsService != nil {
			validateErr = settingsService.Validate()
		}
		app.Notify(messages.ConfigReloaded{Err: validateErr})
	})
	if err != nil {
		logger.Warn("config watcher stopped: %v", err)
	}
}
