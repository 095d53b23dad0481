package driving

import (
	"context"

	"github.com/arsipkita/arsip-cli/internal/core/domain"
)

// AuthService manages the sign-in lifecycle. The session it returns is
// passed explicitly to every service call that needs the viewer's
// identity; there is no ambient global session.
type AuthService interface {
	// Login exchanges credentials for a session and persists the
	// bearer token. Returns domain.ErrBadCredentials when the server
	// rejects the pair.
	Login(ctx context.Context, username, password string) (*domain.Session, error)

	// Register creates an account and signs it in.
	Register(ctx context.Context, name, username, password string) (*domain.Session, error)

	// Logout clears the persisted token.
	Logout() error

	// Current rebuilds the session from the persisted token. Returns
	// domain.ErrNoSession when nothing is stored and
	// domain.ErrSessionExpired when the token is past its expiry.
	Current() (*domain.Session, error)
}
