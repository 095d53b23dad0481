package cli

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/arsipkita/arsip-cli/internal/adapters/driving/tui"
	"github.com/arsipkita/arsip-cli/internal/core/ports/driven"
	"github.com/arsipkita/arsip-cli/internal/core/ports/driving"
	"github.com/arsipkita/arsip-cli/internal/logger"
)

var notifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "Follow and manage notifications",
	Long: `Read and manage the notification feed.

'notify watch' opens an interactive inbox that stays current through
polling and, when available, the live push channel.

Examples:
  arsip notify list
  arsip notify read N123
  arsip notify open N123
  arsip notify watch`,
}

var notifyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List notifications",
	RunE:  runNotifyList,
}

var notifyReadCmd = &cobra.Command{
	Use:   "read [id]",
	Short: "Mark one notification read",
	Args:  cobra.ExactArgs(1),
	RunE:  runNotifyRead,
}

var notifyReadAllCmd = &cobra.Command{
	Use:   "read-all",
	Short: "Mark every notification read",
	RunE:  runNotifyReadAll,
}

var notifyOpenCmd = &cobra.Command{
	Use:   "open [id]",
	Short: "Open the document behind a notification",
	Args:  cobra.ExactArgs(1),
	RunE:  runNotifyOpen,
}

var notifyWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Open the interactive notification inbox",
	RunE:  runNotifyWatch,
}

func init() {
	notifyCmd.AddCommand(notifyListCmd)
	notifyCmd.AddCommand(notifyReadCmd)
	notifyCmd.AddCommand(notifyReadAllCmd)
	notifyCmd.AddCommand(notifyOpenCmd)
	notifyCmd.AddCommand(notifyWatchCmd)
	rootCmd.AddCommand(notifyCmd)
}

// notificationCenter builds a center bound to the signed-in session.
func notificationCenter() (driving.NotificationCenter, error) {
	if services == nil || services.Notifications == nil {
		return nil, errors.New("notification service not configured")
	}
	session, err := currentSession()
	if err != nil {
		return nil, err
	}
	return services.Notifications(session), nil
}

func runNotifyList(cmd *cobra.Command, _ []string) error {
	center, err := notificationCenter()
	if err != nil {
		return err
	}

	center.Refresh(context.Background())
	set := center.Snapshot()

	cmd.Printf("Notifications (%d unread):\n", set.UnreadCount)
	for _, n := range set.Notifications {
		marker := " "
		if !n.IsRead {
			marker = "*"
		}
		cmd.Printf("  %s %s  %s\n", marker, n.ID, n.Message)
	}
	return nil
}

func runNotifyRead(cmd *cobra.Command, args []string) error {
	center, err := notificationCenter()
	if err != nil {
		return err
	}
	ctx := context.Background()

	center.Refresh(ctx)
	if err := center.MarkRead(ctx, args[0]); err != nil {
		return err
	}
	cmd.Printf("Marked %s read\n", args[0])
	return nil
}

func runNotifyReadAll(cmd *cobra.Command, _ []string) error {
	center, err := notificationCenter()
	if err != nil {
		return err
	}
	ctx := context.Background()

	center.Refresh(ctx)
	before := center.Snapshot().UnreadCount
	if err := center.MarkAllRead(ctx); err != nil {
		return err
	}
	cmd.Printf("Marked %d notification(s) read\n", before)
	return nil
}

func runNotifyOpen(cmd *cobra.Command, args []string) error {
	center, err := notificationCenter()
	if err != nil {
		return err
	}
	ctx := context.Background()

	center.Refresh(ctx)
	result, err := center.Open(ctx, args[0])
	if err != nil {
		return err
	}

	cmd.Printf("%s\n", result.Notification.Message)
	cmd.Printf("Document: %s (%s)\n", result.Document.Subject(), result.Document.Source)
	cmd.Printf("Path:     %s\n", result.Path)
	return nil
}

func runNotifyWatch(cmd *cobra.Command, _ []string) error {
	center, err := notificationCenter()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := center.Start(ctx); err != nil {
		return fmt.Errorf("starting notification loop: %w", err)
	}
	defer center.Stop()

	model := tui.NewInbox(center)
	program := tea.NewProgram(model, tea.WithAltScreen())

	signedOut := make(chan struct{}, 1)
	if services.TokenWatch != nil {
		err := watchSignOut(ctx, services.TokenWatch, func() {
			select {
			case signedOut <- struct{}{}:
			default:
			}
			program.Quit()
		})
		if err != nil {
			logger.Debug("token watch unavailable: %v", err)
		}
	}

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running inbox: %w", err)
	}
	select {
	case <-signedOut:
		cmd.Println("Signed out in another terminal, inbox closed")
	default:
	}
	return nil
}

// watchSignOut invokes quit when the stored token is cleared, e.g. by
// 'arsip logout' in a second terminal while the inbox is open.
func watchSignOut(ctx context.Context, watcher driven.TokenWatcher, quit func()) error {
	tokens, err := watcher.Watch(ctx)
	if err != nil {
		return err
	}
	go func() {
		for token := range tokens {
			if token == "" {
				quit()
				return
			}
		}
	}()
	return nil
}
