package accountapi

// Package accountapi provides the typed client for the remote account
// service's /login and /register endpoints, layered over the authenticated
// request pipeline.

import (
	"context"
	"encoding/json"
	"fmt"

	domainauth "github.com/target/mmk-mobile-client/internal/domain/auth"
	apperrors "github.com/target/mmk-mobile-client/internal/errors"
	"github.com/target/mmk-mobile-client/internal/ports"
	"github.com/target/mmk-mobile-client/internal/transport"
)

// Client implements ports.AccountAPI against the remote account service.
type Client struct {
	transport *transport.Client
}

var _ ports.AccountAPI = (*Client)(nil)

// NewClient constructs a new Client over the given pipeline.
func NewClient(t *transport.Client) *Client {
	if t == nil {
		panic("transport client is required")
	}
	return &Client{transport: t}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// authData is the inner payload of a login or register envelope.
type authData struct {
	User  *domainauth.Profile `json:"user"`
	Token string              `json:"token"`
}

// Login calls POST /login. A returned error is transport-level; a declined
// login comes back as an AuthResult with Status false.
func (c *Client) Login(ctx context.Context, in ports.LoginInput) (ports.AuthResult, error) {
	env, err := c.transport.Post(ctx, "/login", loginRequest{
		Email:    in.Email,
		Password: in.Password,
	})
	if err != nil {
		return ports.AuthResult{}, fmt.Errorf("login: %w", err)
	}
	return resultFromEnvelope(env)
}

// Register calls POST /register. The wire payload carries exactly the four
// registration fields; no token is returned by this endpoint.
func (c *Client) Register(ctx context.Context, in ports.RegisterInput) (ports.AuthResult, error) {
	env, err := c.transport.Post(ctx, "/register", registerRequest{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Password:  in.Password,
	})
	if err != nil {
		return ports.AuthResult{}, fmt.Errorf("register: %w", err)
	}
	return resultFromEnvelope(env)
}

func resultFromEnvelope(env *transport.Envelope) (ports.AuthResult, error) {
	result := ports.AuthResult{
		Status:    env.Status,
		HasErrors: env.HasErrors(),
		Message:   env.Message,
	}

	if env.HasData() {
		var data authData
		if err := json.Unmarshal(env.Data, &data); err != nil {
			return ports.AuthResult{}, apperrors.Wrap(err, apperrors.ErrCodeTransport, "decode response payload")
		}
		result.User = data.User
		result.Token = data.Token
	}

	return result, nil
}
