package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/brightcms/backoffice/client"
	"github.com/brightcms/backoffice/client/auth/store"
	"github.com/brightcms/backoffice/client/auth/transport"
)

// User is the authenticated account returned by the login endpoint.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	Role  string `json:"role,omitempty"`
}

// Service drives the login/logout session lifecycle against the /auth
// endpoints. Token refresh is not here: it belongs to the transport, which
// performs it transparently on 401.
type Service struct {
	api    *client.Service
	tokens store.Store
}

func New(api *client.Service, tokens store.Store) *Service {
	return &Service{api: api, tokens: tokens}
}

// Login exchanges credentials for an access token, stores the token and
// returns the authenticated user. A 401 here surfaces as invalid
// credentials; it never triggers the refresh protocol.
func (s *Service) Login(ctx context.Context, email, password string) (*User, error) {
	payload := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Email: email, Password: password}

	var out struct {
		Token string `json:"token"`
		User  *User  `json:"user"`
	}
	ctx = transport.WithoutRefresh(ctx)
	if err := s.api.Post(ctx, "/auth/login", payload, &out); err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}
	if out.Token == "" {
		return nil, errors.New("login response missing token")
	}
	if err := s.tokens.SetToken(out.Token); err != nil {
		return nil, fmt.Errorf("failed to store session token: %w", err)
	}
	return out.User, nil
}

// Logout ends the session. The server is notified best-effort; the local
// token is cleared regardless.
func (s *Service) Logout(ctx context.Context) error {
	_ = s.api.Post(transport.WithoutRefresh(ctx), "/auth/logout", nil, nil)
	return s.tokens.Clear()
}

// Authenticated reports whether a session token is currently held.
func (s *Service) Authenticated() bool {
	_, ok := s.tokens.Token()
	return ok
}
