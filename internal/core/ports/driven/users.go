package driven

import (
	"context"

	"github.com/arsipkita/arsip-cli/internal/core/domain"
)

// NewUser carries the fields for creating or updating an account.
type NewUser struct {
	// Name is the display name.
	Name string

	// Username is the login name.
	Username string

	// Password is the initial password. Empty on update keeps the
	// current password.
	Password string

	// Role is the account role.
	Role domain.Role
}

// UserGateway wraps the user directory endpoints. All operations
// require an admin bearer token; the server enforces this and the
// services mirror it client-side for early errors.
type UserGateway interface {
	// List returns all accounts.
	List(ctx context.Context) ([]domain.User, error)

	// Create adds an account.
	Create(ctx context.Context, user NewUser) (*domain.User, error)

	// Update modifies an account.
	Update(ctx context.Context, id string, user NewUser) (*domain.User, error)

	// Delete removes an account.
	Delete(ctx context.Context, id string) error
}
