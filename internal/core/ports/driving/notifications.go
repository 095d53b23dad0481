package driving

import (
	"context"

	"github.com/arsipkita/arsip-cli/internal/core/domain"
)

// NotificationEventKind classifies events on the notification stream.
type NotificationEventKind int

const (
	// EventRefreshed means a fetch completed and Snapshot changed.
	EventRefreshed NotificationEventKind = iota

	// EventToast means a push signal arrived; UIs show a transient
	// toast and a re-fetch is already underway.
	EventToast

	// EventFeedDown means the live channel closed. Polling continues
	// and bounds staleness; no reconnect is attempted.
	EventFeedDown
)

// NotificationEvent is emitted by the notification center for UIs.
type NotificationEvent struct {
	// Kind classifies the event.
	Kind NotificationEventKind

	// Set is the state after the event, for EventRefreshed.
	Set domain.NotificationSet
}

// OpenResult is what following a notification link produced.
type OpenResult struct {
	// Notification is the entry that was opened, post mark-read.
	Notification domain.Notification

	// Document is the resolved subject of the notification.
	Document domain.ResolvedDocument

	// Path is the normalised dashboard route for the document.
	Path string
}

// NotificationCenter keeps the signed-in user's notification set
// current and applies read-state mutations.
type NotificationCenter interface {
	// Start begins the refresh loop: one immediate fetch, then a fixed
	// interval, re-triggered early by live push signals. It returns
	// after the initial fetch is scheduled; Stop tears the loop down.
	Start(ctx context.Context) error

	// Stop cancels the poll timer and closes the live channel.
	Stop()

	// Refresh forces one fetch outside the timer.
	Refresh(ctx context.Context)

	// Snapshot returns the current notification state.
	Snapshot() domain.NotificationSet

	// Events exposes the event stream for UIs. The channel is closed
	// by Stop.
	Events() <-chan NotificationEvent

	// MarkRead marks one notification read, optimistically flipping
	// local state and rolling back if the server rejects it. A second
	// call on an already-read id is a no-op with no network call.
	MarkRead(ctx context.Context, id string) error

	// MarkAllRead marks everything read. Issues no network call when
	// the unread count is already zero.
	MarkAllRead(ctx context.Context) error

	// Open marks a notification read (when unread) and resolves its
	// link through the document resolver.
	Open(ctx context.Context, id string) (*OpenResult, error)
}
