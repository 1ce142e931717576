package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/Surya-Mathivanan/pathway-cli/internal/core/domain"
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show progress through the current pathway",
	RunE:  runProgress,
}

var toggleCmd = &cobra.Command{
	Use:   "toggle [item-id]",
	Short: "Mark an item done or not done",
	Long: `Flip the completion flag of an item in the current pathway.

Item ids are shown by 'pathway pathway show'.`,
	Args: cobra.ExactArgs(1),
	RunE: runToggle,
}

func init() {
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(toggleCmd)
}

func runProgress(cmd *cobra.Command, _ []string) error {
	if progressService == nil {
		return errors.New("progress service not configured")
	}
	if err := requireSession(); err != nil {
		return err
	}

	snap, err := progressService.Reload(cmd.Context())
	if err != nil {
		return friendly(err)
	}
	printProgress(cmd, snap)
	return nil
}

func runToggle(cmd *cobra.Command, args []string) error {
	if progressService == nil {
		return errors.New("progress service not configured")
	}
	if err := requireSession(); err != nil {
		return err
	}

	snap, err := progressService.Toggle(cmd.Context(), args[0])
	if err != nil {
		return friendly(err)
	}
	if snap.Pathway != nil {
		if _, item, ok := snap.Pathway.FindItem(args[0]); ok {
			cmd.Printf("%s %s\n", checkbox(item.Completed), item.Title)
		}
	}
	printProgress(cmd, snap)
	return nil
}

func printProgress(cmd *cobra.Command, snap domain.ProgressSnapshot) {
	if snap.Pathway == nil {
		cmd.Println("No pathway yet. Run 'pathway pathway new' to create one.")
		return
	}
	cmd.Printf("%s\n", snap.Pathway.Title)
	cmd.Printf("Progress: %s %d%%\n", bar(snap.Progress.Percentage, 30), snap.Progress.Percentage)
	cmd.Printf("Completed %d of %d items\n", snap.Progress.Completed, snap.Progress.Total)
}

// bar renders a fixed-width text progress bar.
func bar(percent, width int) string {
	filled := percent * width / 100
	out := make([]byte, 0, width+2)
	out = append(out, '[')
	for i := 0; i < width; i++ {
		if i < filled {
			out = append(out, '#')
		} else {
			out = append(out, '.')
		}
	}
	return string(append(out, ']'))
}
