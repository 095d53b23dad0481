package archive

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/arsipkita/arsip-cli/internal/core/domain"
	"github.com/arsipkita/arsip-cli/internal/core/ports/driven"
)

// Ensure UserGateway implements the interface.
var _ driven.UserGateway = (*UserGateway)(nil)

// UserGateway wraps the user directory endpoints.
type UserGateway struct {
	client *Client
}

// NewUserGateway creates a user gateway over the shared client.
func NewUserGateway(client *Client) *UserGateway {
	return &UserGateway{client: client}
}

// userDTO is the backend's account shape.
type userDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func (d userDTO) toDomain() domain.User {
	return domain.User{
		ID:        d.ID,
		Name:      d.Name,
		Username:  d.Username,
		Role:      domain.Role(d.Role),
		CreatedAt: d.CreatedAt,
	}
}

// userPayload is the request body for creates and updates. Empty
// fields are omitted so updates are partial.
type userPayload struct {
	Name     string `json:"name,omitempty"`
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
	Role     string `json:"role,omitempty"`
}

func payloadFrom(user driven.NewUser) userPayload {
	return userPayload{
		Name:     user.Name,
		Username: user.Username,
		Password: user.Password,
		Role:     user.Role.String(),
	}
}

// List returns all accounts.
func (g *UserGateway) List(ctx context.Context) ([]domain.User, error) {
	var dto struct {
		Data []userDTO `json:"data"`
	}
	err := g.client.do(ctx, request{
		method: http.MethodGet,
		path:   "/users",
	}, &dto)
	if err != nil {
		return nil, err
	}

	users := make([]domain.User, 0, len(dto.Data))
	for _, d := range dto.Data {
		users = append(users, d.toDomain())
	}
	return users, nil
}

// Create adds an account.
func (g *UserGateway) Create(ctx context.Context, user driven.NewUser) (*domain.User, error) {
	var dto userDTO
	if err := g.client.doJSON(ctx, http.MethodPost, "/users", payloadFrom(user), &dto); err != nil {
		return nil, err
	}
	created := dto.toDomain()
	return &created, nil
}

// Update modifies an account.
func (g *UserGateway) Update(ctx context.Context, id string, user driven.NewUser) (*domain.User, error) {
	var dto userDTO
	err := g.client.doJSON(ctx, http.MethodPut, "/users/"+url.PathEscape(id), payloadFrom(user), &dto)
	if err != nil {
		return nil, err
	}
	updated := dto.toDomain()
	return &updated, nil
}

// Delete removes an account.
func (g *UserGateway) Delete(ctx context.Context, id string) error {
	return g.client.do(ctx, request{
		method: http.MethodDelete,
		path:   "/users/" + url.PathEscape(id),
	}, nil)
}
