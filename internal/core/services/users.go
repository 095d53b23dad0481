package services

import (
	"context"
	"fmt"

	"github.com/arsipkita/arsip-cli/internal/core/domain"
	"github.com/arsipkita/arsip-cli/internal/core/ports/driven"
	"github.com/arsipkita/arsip-cli/internal/core/ports/driving"
)

// Ensure UserService implements the interface.
var _ driving.UserAdminService = (*UserService)(nil)

// newUserRequest is validated before an account create is sent.
type newUserRequest struct {
	Name     string `validate:"required"`
	Username string `validate:"required,min=3"`
	Password string `validate:"required,min=6"`
	Role     string `validate:"required,oneof=admin staff"`
}

// UserService administers the user directory. Every operation is
// guarded to admin sessions before any network call.
type UserService struct {
	users driven.UserGateway
}

// NewUserService creates a user admin service.
func NewUserService(users driven.UserGateway) *UserService {
	return &UserService{users: users}
}

// List returns all accounts.
func (s *UserService) List(ctx context.Context, viewer domain.Session) ([]domain.User, error) {
	if !viewer.IsAdmin() {
		return nil, fmt.Errorf("list users: %w", domain.ErrForbidden)
	}
	return s.users.List(ctx)
}

// Create adds an account.
func (s *UserService) Create(ctx context.Context, viewer domain.Session, user driven.NewUser) (*domain.User, error) {
	if !viewer.IsAdmin() {
		return nil, fmt.Errorf("create user: %w", domain.ErrForbidden)
	}

	req := newUserRequest{
		Name:     user.Name,
		Username: user.Username,
		Password: user.Password,
		Role:     user.Role.String(),
	}
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("create user: %w: %v", domain.ErrInvalidInput, err)
	}

	return s.users.Create(ctx, user)
}

// Update modifies an account. An empty password keeps the current one.
func (s *UserService) Update(ctx context.Context, viewer domain.Session, id string, user driven.NewUser) (*domain.User, error) {
	if !viewer.IsAdmin() {
		return nil, fmt.Errorf("update user: %w", domain.ErrForbidden)
	}
	if id == "" {
		return nil, fmt.Errorf("update user: %w", domain.ErrInvalidInput)
	}
	if user.Role != "" && !user.Role.IsValid() {
		return nil, fmt.Errorf("update user: role %q: %w", user.Role, domain.ErrInvalidInput)
	}
	return s.users.Update(ctx, id, user)
}

// Delete removes an account. Self-deletion is rejected so an admin
// cannot lock the directory.
func (s *UserService) Delete(ctx context.Context, viewer domain.Session, id string) error {
	if !viewer.IsAdmin() {
		return fmt.Errorf("delete user: %w", domain.ErrForbidden)
	}
	if id == "" {
		return fmt.Errorf("delete user: %w", domain.ErrInvalidInput)
	}
	if id == viewer.UserID {
		return fmt.Errorf("delete user: cannot delete the signed-in account: %w", domain.ErrInvalidInput)
	}
	return s.users.Delete(ctx, id)
}
