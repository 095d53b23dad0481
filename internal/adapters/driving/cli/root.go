// Package cli implements the arsip command tree. Commands are thin:
// they parse flags, call the driving services and print results. All
// policy lives in the services.
package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arsipkita/arsip-cli/internal/core/domain"
	"github.com/arsipkita/arsip-cli/internal/core/ports/driven"
	"github.com/arsipkita/arsip-cli/internal/core/ports/driving"
	"github.com/arsipkita/arsip-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// verboseFlag enables debug logging on stderr.
var verboseFlag bool

// Services carries every driving port the commands need.
type Services struct {
	Auth          driving.AuthService
	Archive       driving.ArchiveService
	Resolver      driving.DocumentResolver
	Orders        driving.OrderService
	Users         driving.UserAdminService
	Notifications func(session domain.Session) driving.NotificationCenter
	Config        driven.ConfigStore

	// TokenWatch is optional. When set, long-running commands end
	// their session if the stored token is cleared by another process.
	TokenWatch driven.TokenWatcher
}

// services holds the wired driving ports.
var services *Services

// SetServices wires the driving services into the command tree. Must
// be called before Execute.
func SetServices(s *Services) {
	services = s
}

var rootCmd = &cobra.Command{
	Use:   "arsip",
	Short: "Archive management from the terminal",
	Long: `arsip is a client for the document archive backend.

It browses the administrative and staff collections, creates
dispositions, and follows notifications live from the terminal.

Examples:
  arsip login siti
  arsip document list --type masuk
  arsip document get D123
  arsip disposition create --document D123 --user U1 --user U2
  arsip notify watch`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(
		&verboseFlag, "verbose", "v", false, "Enable verbose logging on stderr")
}

// Execute runs the command tree.
func Execute() error {
	return rootCmd.Execute()
}

// currentSession loads the signed-in session or explains how to get one.
func currentSession() (domain.Session, error) {
	if services == nil || services.Auth == nil {
		return domain.Session{}, errors.New("auth service not configured")
	}

	session, err := services.Auth.Current()
	switch {
	case errors.Is(err, domain.ErrNoSession):
		return domain.Session{}, errors.New("not signed in, run 'arsip login' first")
	case errors.Is(err, domain.ErrSessionExpired):
		return domain.Session{}, errors.New("session expired, run 'arsip login' again")
	case err != nil:
		return domain.Session{}, fmt.Errorf("loading session: %w", err)
	}
	return *session, nil
}
