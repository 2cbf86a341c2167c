package auth

import (
	"context"
	"encoding/json"

	"github.com/landahan-pos/console/internal/upstream"
)

// Credentials is the login/register body. Passwords pass through to the
// backend verbatim; nothing is hashed or stored here.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Status is the backend's session verdict.
type Status struct {
	Authenticated bool            `json:"authenticated"`
	User          json.RawMessage `json:"user,omitempty"`
}

// Client is the slice of the upstream client the auth flows need.
// Satisfied by *upstream.Client.
type Client interface {
	Get(ctx context.Context, path string, out interface{}) error
	Post(ctx context.Context, path string, body, out interface{}) error
}

var _ Client = (*upstream.Client)(nil)

// Service proxies the backend auth endpoints for one console session.
type Service struct {
	client Client
}

func NewService(client Client) *Service {
	return &Service{client: client}
}

type messageResponse struct {
	Message string `json:"message"`
}

// Login exchanges credentials for a backend session cookie, which lands
// in the session's cookie jar.
func (s *Service) Login(ctx context.Context, creds Credentials) (string, error) {
	var resp messageResponse
	if err := s.client.Post(ctx, "/login", creds, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (s *Service) Register(ctx context.Context, creds Credentials) (string, error) {
	var resp messageResponse
	if err := s.client.Post(ctx, "/register", creds, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// AuthStatus asks the backend whether the jarred session cookie is still
// good.
func (s *Service) AuthStatus(ctx context.Context) (Status, error) {
	var status Status
	if err := s.client.Get(ctx, "/auth-status", &status); err != nil {
		return Status{}, err
	}
	return status, nil
}

func (s *Service) Logout(ctx context.Context) error {
	return s.client.Post(ctx, "/logout", nil, nil)
}
