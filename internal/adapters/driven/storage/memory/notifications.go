package memory

import (
	"context"
	"sync"

	"github.com/arsipkita/arsip-cli/internal/core/domain"
	"github.com/arsipkita/arsip-cli/internal/core/ports/driven"
)

// Ensure NotificationGateway implements the interface.
var _ driven.NotificationGateway = (*NotificationGateway)(nil)

// NotificationGateway is an in-memory implementation of
// driven.NotificationGateway.
type NotificationGateway struct {
	mu            sync.RWMutex
	notifications []domain.Notification
}

// NewNotificationGateway creates an empty in-memory feed.
func NewNotificationGateway() *NotificationGateway {
	return &NotificationGateway{}
}

// Seed replaces the stored notifications, for tests.
func (g *NotificationGateway) Seed(notifications ...domain.Notification) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.notifications = append([]domain.Notification(nil), notifications...)
}

// Fetch returns the full notification set.
func (g *NotificationGateway) Fetch(_ context.Context) (*domain.NotificationSet, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	set := &domain.NotificationSet{
		Notifications: append([]domain.Notification(nil), g.notifications...),
	}
	for _, n := range g.notifications {
		if !n.IsRead {
			set.UnreadCount++
		}
	}
	return set, nil
}

// MarkRead marks one notification read.
func (g *NotificationGateway) MarkRead(_ context.Context, id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	for i := range g.notifications {
		if g.notifications[i].ID == id {
			g.notifications[i].IsRead = true
			return nil
		}
	}
	return domain.ErrNotFound
}

// MarkAllRead marks every unread notification read.
func (g *NotificationGateway) MarkAllRead(_ context.Context) (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	updated := 0
	for i := range g.notifications {
		if !g.notifications[i].IsRead {
			g.notifications[i].IsRead = true
			updated++
		}
	}
	return updated, nil
}
