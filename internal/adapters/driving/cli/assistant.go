package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat [question...]",
	Short: "Ask the study assistant a question",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runChat,
}

var tipsCmd = &cobra.Command{
	Use:   "tips",
	Short: "Show motivational tips",
	RunE:  runTips,
}

func init() {
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(tipsCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	if assistantService == nil {
		return errors.New("assistant service not configured")
	}
	if err := requireSession(); err != nil {
		return err
	}

	answer, err := assistantService.Ask(cmd.Context(), strings.Join(args, " "))
	if err != nil {
		return friendly(err)
	}
	cmd.Println(answer)
	return nil
}

func runTips(cmd *cobra.Command, _ []string) error {
	if assistantService == nil {
		return errors.New("assistant service not configured")
	}
	if err := requireSession(); err != nil {
		return err
	}

	tips, err := assistantService.Tips(cmd.Context())
	if err != nil {
		return friendly(err)
	}
	for _, tip := range tips {
		cmd.Printf("  * %s\n", tip)
	}
	return nil
}
