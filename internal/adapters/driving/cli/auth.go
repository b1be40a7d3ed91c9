package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var authVesselID string

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the platform session",
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in with a platform access token",
	Long: `Stores a platform access token for the given vessel. The token is
read from the terminal without echo; pipe it on stdin for scripted use.`,
	RunE: runAuthLogin,
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored session",
	RunE:  runAuthLogout,
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current session",
	RunE:  runAuthStatus,
}

func init() {
	authLoginCmd.Flags().StringVar(&authVesselID, "vessel", "", "vessel identifier the token belongs to")
	authCmd.AddCommand(authLoginCmd, authLogoutCmd, authStatusCmd)
	rootCmd.AddCommand(authCmd)
}

func runAuthLogin(cmd *cobra.Command, _ []string) error {
	if session == nil {
		return errors.New("session manager not configured")
	}
	if authVesselID == "" {
		return errors.New("--vessel is required")
	}

	token, err := readToken(cmd)
	if err != nil {
		return err
	}

	if err := session.SignIn(token, authVesselID); err != nil {
		return fmt.Errorf("sign in failed: %w", err)
	}

	cmd.Printf("Signed in for vessel %s.\n", authVesselID)
	return nil
}

// readToken reads the token without echo when stdin is a terminal, and as a
// plain line otherwise so piping works.
func readToken(cmd *cobra.Command) (string, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		cmd.Print("Access token: ")
		raw, err := term.ReadPassword(fd)
		cmd.Println()
		if err != nil {
			return "", fmt.Errorf("reading token: %w", err)
		}
		return strings.TrimSpace(string(raw)), nil
	}

	var token string
	if _, err := fmt.Fscanln(os.Stdin, &token); err != nil {
		return "", fmt.Errorf("reading token: %w", err)
	}
	return strings.TrimSpace(token), nil
}

func runAuthLogout(cmd *cobra.Command, _ []string) error {
	if session == nil {
		return errors.New("session manager not configured")
	}

	if err := session.SignOut(); err != nil {
		return fmt.Errorf("sign out failed: %w", err)
	}
	cmd.Println("Signed out.")
	return nil
}

func runAuthStatus(cmd *cobra.Command, _ []string) error {
	if session == nil {
		return errors.New("session manager not configured")
	}

	if !session.IsAuthenticated() {
		cmd.Println("Not signed in.")
		return nil
	}
	cmd.Printf("Signed in for vessel %s.\n", session.VesselID())
	return nil
}
