package auth

// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"sync"

	domainauth "github.com/target/mmk-mobile-client/internal/domain/auth"
	apperrors "github.com/target/mmk-mobile-client/internal/errors"
	"github.com/target/mmk-mobile-client/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.CredentialStore = (*MemoryCredentialStore)(nil)
	_ ports.AccountAPI      = (*StubAccountAPI)(nil)
	_ ports.Navigator       = (*RecordingNavigator)(nil)
)

// MemoryCredentialStore is an in-memory credential store for unit tests with
// optional failure injection and per-key call counting.
type MemoryCredentialStore struct {
	mu     sync.Mutex
	values map[ports.CredentialKey]string

	// Failure injection: when set, the corresponding operation fails with a
	// persistence error. FailSetKeys fails only the listed keys.
	FailGets    bool
	FailRemoves bool
	FailSetKeys map[ports.CredentialKey]bool

	getCalls    map[ports.CredentialKey]int
	setCalls    map[ports.CredentialKey]int
	removeCalls map[ports.CredentialKey]int
	setOrder    []ports.CredentialKey
}

// NewMemoryCredentialStore creates an empty in-memory credential store.
func NewMemoryCredentialStore() *MemoryCredentialStore {
	return &MemoryCredentialStore{
		values:      make(map[ports.CredentialKey]string),
		getCalls:    make(map[ports.CredentialKey]int),
		setCalls:    make(map[ports.CredentialKey]int),
		removeCalls: make(map[ports.CredentialKey]int),
	}
}

func (m *MemoryCredentialStore) Get(_ context.Context, key ports.CredentialKey) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.getCalls[key]++
	if m.FailGets {
		return "", apperrors.Persistence("injected get failure")
	}
	value, ok := m.values[key]
	if !ok {
		return "", ports.ErrNotFound
	}
	return value, nil
}

func (m *MemoryCredentialStore) Set(_ context.Context, key ports.CredentialKey, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.setCalls[key]++
	m.setOrder = append(m.setOrder, key)
	if m.FailSetKeys[key] {
		return apperrors.Persistence("injected set failure")
	}
	m.values[key] = value
	return nil
}

func (m *MemoryCredentialStore) Remove(_ context.Context, key ports.CredentialKey) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.removeCalls[key]++
	if m.FailRemoves {
		return apperrors.Persistence("injected remove failure")
	}
	delete(m.values, key)
	return nil
}

// Has reports whether a key currently holds a value.
func (m *MemoryCredentialStore) Has(key ports.CredentialKey) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.values[key]
	return ok
}

// Value returns the stored value for a key, or empty string when absent.
func (m *MemoryCredentialStore) Value(key ports.CredentialKey) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.values[key]
}

// GetCalls returns how many times Get was invoked for a key.
func (m *MemoryCredentialStore) GetCalls(key ports.CredentialKey) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.getCalls[key]
}

// SetCalls returns how many times Set was invoked for a key.
func (m *MemoryCredentialStore) SetCalls(key ports.CredentialKey) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.setCalls[key]
}

// RemoveCalls returns how many times Remove was invoked for a key.
func (m *MemoryCredentialStore) RemoveCalls(key ports.CredentialKey) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.removeCalls[key]
}

// SetOrder returns the keys passed to Set in invocation order.
func (m *MemoryCredentialStore) SetOrder() []ports.CredentialKey {
	m.mu.Lock()
	defer m.mu.Unlock()
	order := make([]ports.CredentialKey, len(m.setOrder))
	copy(order, m.setOrder)
	return order
}

// StubAccountAPI simulates the remote account service with canned results.
type StubAccountAPI struct {
	LoginFunc    func(ctx context.Context, in ports.LoginInput) (ports.AuthResult, error)
	RegisterFunc func(ctx context.Context, in ports.RegisterInput) (ports.AuthResult, error)

	// Canned results used when the corresponding func is nil.
	LoginResult    ports.AuthResult
	LoginErr       error
	RegisterResult ports.AuthResult
	RegisterErr    error

	LastLogin    *ports.LoginInput
	LastRegister *ports.RegisterInput
}

// NewStubAccountAPI creates a stub whose login and register succeed with a
// deterministic user and token.
func NewStubAccountAPI() *StubAccountAPI {
	user := &domainauth.Profile{
		ID:            "user-1",
		Email:         "a@x.com",
		EmailVerified: true,
		Role:          domainauth.RoleUser,
	}
	return &StubAccountAPI{
		LoginResult:    ports.AuthResult{Status: true, User: user, Token: "abc"},
		RegisterResult: ports.AuthResult{Status: true, User: user},
	}
}

func (s *StubAccountAPI) Login(ctx context.Context, in ports.LoginInput) (ports.AuthResult, error) {
	s.LastLogin = &in
	if s.LoginFunc != nil {
		return s.LoginFunc(ctx, in)
	}
	return s.LoginResult, s.LoginErr
}

func (s *StubAccountAPI) Register(ctx context.Context, in ports.RegisterInput) (ports.AuthResult, error) {
	s.LastRegister = &in
	if s.RegisterFunc != nil {
		return s.RegisterFunc(ctx, in)
	}
	return s.RegisterResult, s.RegisterErr
}

// RecordingNavigator records navigation signals for assertions.
type RecordingNavigator struct {
	HomeCalls int
	// OnHome runs on each Home call, letting tests observe ordering.
	OnHome func()
}

func (n *RecordingNavigator) Home() {
	n.HomeCalls++
	if n.OnHome != nil {
		n.OnHome()
	}
}
