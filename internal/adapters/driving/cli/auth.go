package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Sign in and out",
	Long: `Manage the signed-in account used to talk to the pathway service.

With an OAuth client configured (auth.client_id), 'pathway auth login' opens
a browser for Google sign-in. With a static token (auth.token or
PATHWAY_TOKEN), the token is used directly.

Examples:
  pathway auth login
  pathway auth status
  pathway auth logout`,
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in",
	RunE:  runAuthLogin,
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and forget stored credentials",
	RunE:  runAuthLogout,
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show who is signed in",
	RunE:  runAuthStatus,
}

func init() {
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authLogoutCmd)
	authCmd.AddCommand(authStatusCmd)
	rootCmd.AddCommand(authCmd)
}

func runAuthLogin(cmd *cobra.Command, _ []string) error {
	if sessionService == nil {
		return errors.New("session service not configured")
	}

	cmd.Println("Signing in...")
	if err := sessionService.SignIn(cmd.Context()); err != nil {
		return fmt.Errorf("sign in: %w", err)
	}

	session := sessionService.Session()
	if !session.Authenticated || session.Identity == nil {
		return errors.New("sign in did not complete")
	}
	cmd.Printf("Signed in as %s\n", session.Identity.DisplayName())
	return nil
}

func runAuthLogout(cmd *cobra.Command, _ []string) error {
	if sessionService == nil {
		return errors.New("session service not configured")
	}
	if err := sessionService.Logout(cmd.Context()); err != nil {
		return fmt.Errorf("sign out: %w", err)
	}
	cmd.Println("Signed out")
	return nil
}

func runAuthStatus(cmd *cobra.Command, _ []string) error {
	if sessionService == nil {
		return errors.New("session service not configured")
	}

	session := sessionService.Session()
	if !session.Authenticated || session.Identity == nil {
		cmd.Println("Not signed in")
		return nil
	}

	cmd.Printf("Signed in as %s\n", session.Identity.DisplayName())
	if session.Identity.Email != "" {
		cmd.Printf("  Email:   %s\n", session.Identity.Email)
	}
	cmd.Printf("  Subject: %s\n", session.Identity.Subject)
	return nil
}
