package driven

import (
	"context"

	"github.com/arsipkita/arsip-cli/internal/core/domain"
)

// NotificationGateway wraps the notification feed endpoints.
type NotificationGateway interface {
	// Fetch returns the signed-in user's full notification set.
	// Fetches are full replacements; the client never merges.
	Fetch(ctx context.Context) (*domain.NotificationSet, error)

	// MarkRead marks one notification read on the server.
	MarkRead(ctx context.Context, id string) error

	// MarkAllRead marks every unread notification read and returns the
	// number the server updated.
	MarkAllRead(ctx context.Context) (int, error)
}

// NotificationFeed is the live push channel. It delivers signals, not
// payloads: each signal means "something changed, fetch again".
type NotificationFeed interface {
	// Connect opens one channel for the given user and returns a signal
	// stream. The stream is closed when the connection drops or ctx is
	// cancelled; the feed is not reconnected.
	Connect(ctx context.Context, userID string) (<-chan struct{}, error)
}
