package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/arsipkita/arsip-cli/internal/core/domain"
	"github.com/arsipkita/arsip-cli/internal/core/ports/driven"
)

// Ensure UserGateway implements the interface.
var _ driven.UserGateway = (*UserGateway)(nil)

// UserGateway is an in-memory implementation of driven.UserGateway.
type UserGateway struct {
	mu    sync.RWMutex
	users map[string]domain.User
}

// NewUserGateway creates an empty in-memory user directory.
func NewUserGateway() *UserGateway {
	return &UserGateway{users: make(map[string]domain.User)}
}

// Seed inserts a user directly, for tests.
func (g *UserGateway) Seed(user domain.User) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.users[user.ID] = user
}

// List returns all accounts.
func (g *UserGateway) List(_ context.Context) ([]domain.User, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	users := make([]domain.User, 0, len(g.users))
	for _, user := range g.users {
		users = append(users, user)
	}
	return users, nil
}

// Create adds an account.
func (g *UserGateway) Create(_ context.Context, user driven.NewUser) (*domain.User, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	created := domain.User{
		ID:        uuid.NewString(),
		Name:      user.Name,
		Username:  user.Username,
		Role:      user.Role,
		CreatedAt: time.Now(),
	}
	g.users[created.ID] = created
	return &created, nil
}

// Update modifies an account.
func (g *UserGateway) Update(_ context.Context, id string, user driven.NewUser) (*domain.User, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	existing, ok := g.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if user.Name != "" {
		existing.Name = user.Name
	}
	if user.Username != "" {
		existing.Username = user.Username
	}
	if user.Role != "" {
		existing.Role = user.Role
	}
	g.users[id] = existing
	return &existing, nil
}

// Delete removes an account.
func (g *UserGateway) Delete(_ context.Context, id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.users[id]; !ok {
		return domain.ErrNotFound
	}
	delete(g.users, id)
	return nil
}
