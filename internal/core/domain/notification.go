package domain

import (
	"strings"
	"time"
)

// ReadState tracks the reconciliation of an optimistic mark-read mutation.
type ReadState int

const (
	// ReadStateNone means no mutation is in flight.
	ReadStateNone ReadState = iota

	// ReadStatePending means the local flip happened but the server has
	// not confirmed yet.
	ReadStatePending

	// ReadStateConfirmed means the server acknowledged the mutation.
	ReadStateConfirmed

	// ReadStateFailed means the server rejected the mutation and the
	// local flip was rolled back.
	ReadStateFailed
)

// Notification is an inbox entry delivered to a signed-in user,
// created server-side as a side effect of a disposition or other event.
// The client only ever flips IsRead from false to true.
type Notification struct {
	// ID is the unique identifier for the notification.
	ID string

	// UserID is the recipient.
	UserID string

	// Message is the human-readable notification text.
	Message string

	// Link is a dashboard-relative path to the subject of the
	// notification. It does not carry a reliable source tag, so
	// following it goes through the document resolver.
	Link string

	// IsRead is the monotonic read flag.
	IsRead bool

	// ReadState tracks an in-flight mark-read mutation.
	ReadState ReadState

	// CreatedAt is when the notification was created.
	CreatedAt time.Time
}

// NotificationSet is the full notification state for one user as
// returned by a fetch. Fetches are full replacements; there is no merge.
type NotificationSet struct {
	// Notifications are ordered newest first by the server.
	Notifications []Notification

	// UnreadCount is the server's count of unread entries.
	UnreadCount int
}

// NormalizeLink turns a notification link into an absolute,
// dashboard-rooted path suitable for navigation. Empty links fall back
// to the dashboard root.
func NormalizeLink(link string) string {
	link = strings.TrimSpace(link)
	if link == "" {
		return "/dashboard"
	}
	if !strings.HasPrefix(link, "/") {
		link = "/" + link
	}
	if link != "/dashboard" && !strings.HasPrefix(link, "/dashboard/") {
		link = "/dashboard" + link
	}
	return link
}
