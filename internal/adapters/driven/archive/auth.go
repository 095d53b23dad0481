package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/arsipkita/arsip-cli/internal/core/ports/driven"
)

// Ensure AuthGateway implements the interface.
var _ driven.AuthGateway = (*AuthGateway)(nil)

// AuthGateway wraps the login and registration endpoints.
type AuthGateway struct {
	client *Client
}

// NewAuthGateway creates an auth gateway over the shared client.
func NewAuthGateway(client *Client) *AuthGateway {
	return &AuthGateway{client: client}
}

type tokenResponse struct {
	Token string `json:"token"`
}

// Login exchanges credentials for a bearer token.
func (g *AuthGateway) Login(ctx context.Context, username, password string) (string, error) {
	payload := struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}{Username: username, Password: password}

	var dto tokenResponse
	if err := g.doPublic(ctx, "/auth/login", payload, &dto); err != nil {
		return "", err
	}
	return dto.Token, nil
}

// Register creates an account and returns its bearer token.
func (g *AuthGateway) Register(ctx context.Context, name, username, password string) (string, error) {
	payload := struct {
		Name     string `json:"name"`
		Username string `json:"username"`
		Password string `json:"password"`
	}{Name: name, Username: username, Password: password}

	var dto tokenResponse
	if err := g.doPublic(ctx, "/auth/register", payload, &dto); err != nil {
		return "", err
	}
	return dto.Token, nil
}

// doPublic posts JSON to an unauthenticated endpoint, where a 401 maps
// to bad credentials rather than an expired session.
func (g *AuthGateway) doPublic(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding request body: %w", err)
	}
	return g.client.do(ctx, request{
		method:      http.MethodPost,
		path:        path,
		body:        bytes.NewReader(body),
		contentType: "application/json",
		public:      true,
	}, out)
}
