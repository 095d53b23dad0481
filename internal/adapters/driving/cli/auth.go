package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var loginCmd = &cobra.Command{
	Use:   "login [username]",
	Short: "Sign in to the archive backend",
	Long: `Sign in with a username and password. The password is read from the
terminal without echo; pass --password only in scripts.

Examples:
  arsip login siti
  arsip login siti --password "$ARSIP_PASSWORD"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLogin,
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and sign in",
	RunE:  runRegister,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and discard the stored token",
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in account",
	RunE:  runWhoami,
}

// Flags for login and register.
var (
	loginPassword    string
	registerName     string
	registerUsername string
	registerPassword string
)

func init() {
	loginCmd.Flags().StringVar(
		&loginPassword, "password", "", "Password (read from terminal when omitted)")

	registerCmd.Flags().StringVar(&registerName, "name", "", "Display name")
	registerCmd.Flags().StringVar(&registerUsername, "username", "", "Login name")
	registerCmd.Flags().StringVar(
		&registerPassword, "password", "", "Password (read from terminal when omitted)")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	if services == nil || services.Auth == nil {
		return errors.New("auth service not configured")
	}

	username := ""
	if len(args) == 1 {
		username = args[0]
	}
	if username == "" {
		cmd.Print("Username: ")
		if _, err := fmt.Fscanln(cmd.InOrStdin(), &username); err != nil {
			return fmt.Errorf("reading username: %w", err)
		}
	}

	password := loginPassword
	if password == "" {
		var err error
		password, err = promptPassword(cmd, "Password: ")
		if err != nil {
			return err
		}
	}

	session, err := services.Auth.Login(context.Background(), username, password)
	if err != nil {
		return err
	}

	cmd.Printf("Signed in as %s (%s)\n", session.Name, session.Role)
	return nil
}

func runRegister(cmd *cobra.Command, _ []string) error {
	if services == nil || services.Auth == nil {
		return errors.New("auth service not configured")
	}

	if registerName == "" || registerUsername == "" {
		return errors.New("--name and --username are required")
	}

	password := registerPassword
	if password == "" {
		var err error
		password, err = promptPassword(cmd, "Password: ")
		if err != nil {
			return err
		}
		confirm, err := promptPassword(cmd, "Confirm password: ")
		if err != nil {
			return err
		}
		if password != confirm {
			return errors.New("passwords do not match")
		}
	}

	session, err := services.Auth.Register(context.Background(), registerName, registerUsername, password)
	if err != nil {
		return err
	}

	cmd.Printf("Account created, signed in as %s\n", session.Name)
	return nil
}

func runLogout(cmd *cobra.Command, _ []string) error {
	if services == nil || services.Auth == nil {
		return errors.New("auth service not configured")
	}
	if err := services.Auth.Logout(); err != nil {
		return err
	}
	cmd.Println("Signed out")
	return nil
}

func runWhoami(cmd *cobra.Command, _ []string) error {
	session, err := currentSession()
	if err != nil {
		return err
	}

	cmd.Printf("%s (@%s)\n", session.Name, session.Username)
	cmd.Printf("Role: %s\n", session.Role)
	if !session.ExpiresAt.IsZero() {
		cmd.Printf("Session expires: %s\n", session.ExpiresAt.Format("2006-01-02 15:04"))
	}
	return nil
}

// promptPassword reads a password without echo when stdin is a
// terminal, falling back to a plain line read otherwise.
func promptPassword(cmd *cobra.Command, prompt string) (string, error) {
	cmd.Print(prompt)

	if term.IsTerminal(int(syscall.Stdin)) {
		raw, err := term.ReadPassword(int(syscall.Stdin))
		cmd.Println()
		if err != nil {
			return "", fmt.Errorf("reading password: %w", err)
		}
		return string(raw), nil
	}

	var line string
	if _, err := fmt.Fscanln(cmd.InOrStdin(), &line); err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return strings.TrimSpace(line), nil
}
