package archive

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/arsipkita/arsip-cli/internal/core/domain"
	"github.com/arsipkita/arsip-cli/internal/core/ports/driven"
)

// Ensure NotificationGateway implements the interface.
var _ driven.NotificationGateway = (*NotificationGateway)(nil)

// NotificationGateway wraps the notification endpoints.
type NotificationGateway struct {
	client *Client
}

// NewNotificationGateway creates a notification gateway over the
// shared client.
func NewNotificationGateway(client *Client) *NotificationGateway {
	return &NotificationGateway{client: client}
}

// notificationDTO is the backend's notification shape.
type notificationDTO struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Message   string    `json:"message"`
	Link      string    `json:"link"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// Fetch returns the signed-in user's full notification set. Links are
// normalised here so every consumer sees dashboard-rooted paths.
func (g *NotificationGateway) Fetch(ctx context.Context) (*domain.NotificationSet, error) {
	var dto struct {
		Notifications []notificationDTO `json:"notifications"`
		UnreadCount   int               `json:"unread_count"`
	}
	err := g.client.do(ctx, request{
		method: http.MethodGet,
		path:   "/notifications",
	}, &dto)
	if err != nil {
		return nil, err
	}

	set := &domain.NotificationSet{
		Notifications: make([]domain.Notification, 0, len(dto.Notifications)),
		UnreadCount:   dto.UnreadCount,
	}
	for _, d := range dto.Notifications {
		set.Notifications = append(set.Notifications, domain.Notification{
			ID:        d.ID,
			UserID:    d.UserID,
			Message:   d.Message,
			Link:      domain.NormalizeLink(d.Link),
			IsRead:    d.IsRead,
			CreatedAt: d.CreatedAt,
		})
	}
	return set, nil
}

// MarkRead marks one notification read on the server.
func (g *NotificationGateway) MarkRead(ctx context.Context, id string) error {
	return g.client.do(ctx, request{
		method: http.MethodPost,
		path:   "/notifications/" + url.PathEscape(id) + "/read",
	}, nil)
}

// MarkAllRead marks every unread notification read.
func (g *NotificationGateway) MarkAllRead(ctx context.Context) (int, error) {
	var dto struct {
		UpdatedCount int `json:"updated_count"`
	}
	err := g.client.do(ctx, request{
		method: http.MethodPost,
		path:   "/notifications/read-all",
	}, &dto)
	if err != nil {
		return 0, err
	}
	return dto.UpdatedCount, nil
}
