package ports

// Package ports defines interfaces (hexagonal ports) for the session and
// authenticated-request subsystem. Implementations live in internal/adapters
// and internal/transport; orchestration in internal/service.

import (
	"context"

	domainauth "github.com/target/mmk-mobile-client/internal/domain/auth"
)

// CredentialKey names one of the durable credential slots.
type CredentialKey string

const (
	// KeyToken holds the opaque bearer token.
	KeyToken CredentialKey = "TOKEN"
	// KeyUserInfo holds the serialized user profile.
	KeyUserInfo CredentialKey = "USER_INFO"
)

// CredentialStore persists the credential slots across process restarts.
// Each operation is individually durable on success; no multi-key atomicity
// is guaranteed by implementations.
type CredentialStore interface {
	// Get returns the stored value, or ErrNotFound when the key is absent.
	Get(ctx context.Context, key CredentialKey) (string, error)
	Set(ctx context.Context, key CredentialKey, value string) error
	// Remove deletes the key. Removing an absent key is not an error.
	Remove(ctx context.Context, key CredentialKey) error
}

// LoginInput carries the credentials for a login call. Values are assumed to
// have already passed local field validation.
type LoginInput struct {
	Email    string
	Password string
}

// RegisterInput carries the fields transmitted to the register endpoint.
// The local-only password confirmation never appears here.
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// AuthResult is the normalized outcome of a login or register call.
// Status and HasErrors mirror the service envelope's success and failure
// indicators; User and Token are the unwrapped payload fields.
type AuthResult struct {
	Status    bool
	HasErrors bool
	Message   string
	User      *domainauth.Profile
	Token     string
}

// AccountAPI issues calls against the remote account service. A returned
// error is always infrastructure-level (transport); business-level rejection
// is reported through AuthResult.
type AccountAPI interface {
	Login(ctx context.Context, in LoginInput) (AuthResult, error)
	Register(ctx context.Context, in RegisterInput) (AuthResult, error)
}

// Navigator receives the post-commit navigation signal. The UI layer
// implements it; tests record it.
type Navigator interface {
	Home()
}

// ErrNotFound is returned by credential stores when a key is absent.
type notFoundError struct{}

func (notFoundError) Error() string { return "credential not found" }

var ErrNotFound error = notFoundError{}
