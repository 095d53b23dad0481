package driven

import "context"

// AuthGateway wraps the login and registration endpoints. These are the
// only endpoints where a 401 means bad credentials rather than an
// expired session.
type AuthGateway interface {
	// Login exchanges credentials for a bearer token.
	// Returns domain.ErrBadCredentials on a 401.
	Login(ctx context.Context, username, password string) (string, error)

	// Register creates an account and returns a bearer token for it.
	Register(ctx context.Context, name, username, password string) (string, error)
}

// TokenStore persists the bearer token between invocations.
type TokenStore interface {
	// Save stores the token.
	Save(token string) error

	// Load returns the stored token, or "" when none is stored.
	Load() (string, error)

	// Clear removes the stored token.
	Clear() error
}

// TokenWatcher notifies about token changes made by another process,
// e.g. a login in a second terminal while a TUI session is running.
type TokenWatcher interface {
	// Watch emits the new token value whenever the stored token
	// changes. The channel is closed when ctx is cancelled.
	Watch(ctx context.Context) (<-chan string, error)
}
