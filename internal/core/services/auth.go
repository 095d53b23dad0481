package services

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/arsipkita/arsip-cli/internal/core/domain"
	"github.com/arsipkita/arsip-cli/internal/core/ports/driven"
	"github.com/arsipkita/arsip-cli/internal/core/ports/driving"
)

// Ensure AuthServiceImpl implements the interface.
var _ driving.AuthService = (*AuthServiceImpl)(nil)

// loginRequest is validated before the credentials leave the client.
type loginRequest struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

// registerRequest is validated before the account create is sent.
type registerRequest struct {
	Name     string `validate:"required"`
	Username string `validate:"required,min=3"`
	Password string `validate:"required,min=6"`
}

// sessionClaims are the token claims the archive backend issues.
// The server owns the signature; the client only reads the payload.
type sessionClaims struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// AuthServiceImpl manages the sign-in lifecycle against the auth
// gateway and the persisted token.
type AuthServiceImpl struct {
	gateway driven.AuthGateway
	tokens  driven.TokenStore
	now     func() time.Time
}

// NewAuthService creates an auth service.
func NewAuthService(gateway driven.AuthGateway, tokens driven.TokenStore) *AuthServiceImpl {
	return &AuthServiceImpl{
		gateway: gateway,
		tokens:  tokens,
		now:     time.Now,
	}
}

// Login exchanges credentials for a session and persists the token.
func (s *AuthServiceImpl) Login(ctx context.Context, username, password string) (*domain.Session, error) {
	req := loginRequest{Username: username, Password: password}
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("login: %w: %v", domain.ErrInvalidInput, err)
	}

	token, err := s.gateway.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}

	session, err := s.sessionFromToken(token)
	if err != nil {
		return nil, err
	}

	if err := s.tokens.Save(token); err != nil {
		return nil, fmt.Errorf("persisting token: %w", err)
	}
	return session, nil
}

// Register creates an account and signs it in.
func (s *AuthServiceImpl) Register(ctx context.Context, name, username, password string) (*domain.Session, error) {
	req := registerRequest{Name: name, Username: username, Password: password}
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("register: %w: %v", domain.ErrInvalidInput, err)
	}

	token, err := s.gateway.Register(ctx, name, username, password)
	if err != nil {
		return nil, err
	}

	session, err := s.sessionFromToken(token)
	if err != nil {
		return nil, err
	}

	if err := s.tokens.Save(token); err != nil {
		return nil, fmt.Errorf("persisting token: %w", err)
	}
	return session, nil
}

// Logout clears the persisted token.
func (s *AuthServiceImpl) Logout() error {
	return s.tokens.Clear()
}

// Current rebuilds the session from the persisted token.
func (s *AuthServiceImpl) Current() (*domain.Session, error) {
	token, err := s.tokens.Load()
	if err != nil {
		return nil, fmt.Errorf("loading token: %w", err)
	}
	if token == "" {
		return nil, domain.ErrNoSession
	}

	session, err := s.sessionFromToken(token)
	if err != nil {
		return nil, err
	}
	if session.Expired(s.now()) {
		return nil, domain.ErrSessionExpired
	}
	return session, nil
}

// sessionFromToken extracts the session identity from the token
// claims. The signature is not verified client-side: the server
// rejects tampered tokens, the client only needs the identity for
// display and client-side filtering.
func (s *AuthServiceImpl) sessionFromToken(token string) (*domain.Session, error) {
	var claims sessionClaims
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return nil, fmt.Errorf("parsing token claims: %w", err)
	}

	role := domain.Role(claims.Role)
	if !role.IsValid() {
		role = domain.RoleStaff
	}

	session := &domain.Session{
		UserID:   claims.Subject,
		Name:     claims.Name,
		Username: claims.Username,
		Role:     role,
		Token:    token,
	}
	if claims.ExpiresAt != nil {
		session.ExpiresAt = claims.ExpiresAt.Time
	}
	return session, nil
}
