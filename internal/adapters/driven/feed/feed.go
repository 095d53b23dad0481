// Package feed implements the live notification feed over a websocket.
// The feed delivers signals, not payloads: the client re-fetches the
// notification set on every signal, so a lost or duplicated message
// can never corrupt state.
package feed

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/coder/websocket"

	"github.com/arsipkita/arsip-cli/internal/core/ports/driven"
	"github.com/arsipkita/arsip-cli/internal/logger"
)

// Ensure WebsocketFeed implements the interface.
var _ driven.NotificationFeed = (*WebsocketFeed)(nil)

// WebsocketFeed connects to the backend's notification channel. One
// connection per session; when it drops the channel is closed and not
// reopened, since the poll loop bounds staleness on its own.
type WebsocketFeed struct {
	baseURL string
}

// NewWebsocketFeed creates a feed for the backend at baseURL. The
// http(s) scheme is rewritten to ws(s).
func NewWebsocketFeed(baseURL string) *WebsocketFeed {
	return &WebsocketFeed{baseURL: strings.TrimRight(baseURL, "/")}
}

// Connect opens the channel for one user and returns the signal
// stream. The stream is closed when the connection drops or ctx is
// cancelled.
func (f *WebsocketFeed) Connect(ctx context.Context, userID string) (<-chan struct{}, error) {
	target, err := f.channelURL(userID)
	if err != nil {
		return nil, err
	}

	conn, _, err := websocket.Dial(ctx, target, nil)
	if err != nil {
		return nil, fmt.Errorf("dialing notification feed: %w", err)
	}

	signals := make(chan struct{}, 1)
	go f.readLoop(ctx, conn, signals)
	return signals, nil
}

// readLoop turns every inbound frame into one signal. The payload is
// discarded deliberately.
func (f *WebsocketFeed) readLoop(ctx context.Context, conn *websocket.Conn, signals chan<- struct{}) {
	defer close(signals)
	defer conn.Close(websocket.StatusNormalClosure, "")

	for {
		if _, _, err := conn.Read(ctx); err != nil {
			if ctx.Err() == nil {
				logger.Debug("notification feed read failed: %v", err)
			}
			return
		}

		// Coalesce: one pending signal is enough, the fetch that
		// follows picks up everything.
		select {
		case signals <- struct{}{}:
		default:
		}
	}
}

// channelURL builds the websocket URL for one user's channel.
func (f *WebsocketFeed) channelURL(userID string) (string, error) {
	u, err := url.Parse(f.baseURL)
	if err != nil {
		return "", fmt.Errorf("parsing feed base URL: %w", err)
	}

	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
	default:
		return "", fmt.Errorf("feed base URL scheme %q not supported", u.Scheme)
	}

	u.Path = strings.TrimRight(u.Path, "/") + "/ws/notifications"
	u.RawQuery = url.Values{"user_id": {userID}}.Encode()
	return u.String(), nil
}
