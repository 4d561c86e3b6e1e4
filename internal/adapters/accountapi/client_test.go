package accountapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	domainauth "github.com/target/mmk-mobile-client/internal/domain/auth"
	apperrors "github.com/target/mmk-mobile-client/internal/errors"
	mocks "github.com/target/mmk-mobile-client/internal/mocks/auth"
	"github.com/target/mmk-mobile-client/internal/ports"
	"github.com/target/mmk-mobile-client/internal/transport"
)

func newClientForServer(t *testing.T, server *httptest.Server) *Client {
	t.Helper()
	pipeline, err := transport.NewClient(transport.ClientOptions{
		BaseURL:     server.URL,
		Credentials: mocks.NewMemoryCredentialStore(),
	})
	require.NoError(t, err)
	return NewClient(pipeline)
}

func TestLogin_Success(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{
			"status": true,
			"data": {
				"user": {"id": "u1", "email": "a@x.com", "emailVerified": true, "role": "user"},
				"token": "abc"
			}
		}`))
	}))
	defer server.Close()

	client := newClientForServer(t, server)
	result, err := client.Login(context.Background(), ports.LoginInput{Email: "a@x.com", Password: "password1"})

	require.NoError(t, err)
	assert.Equal(t, "/login", gotPath)
	assert.Equal(t, map[string]any{"email": "a@x.com", "password": "password1"}, gotBody)

	assert.True(t, result.Status)
	assert.False(t, result.HasErrors)
	assert.Equal(t, "abc", result.Token)
	require.NotNil(t, result.User)
	assert.Equal(t, "u1", result.User.ID)
	assert.True(t, result.User.EmailVerified)
	assert.Equal(t, domainauth.RoleUser, result.User.Role)
}

func TestLogin_ServiceRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status": false, "message": "Sai mật khẩu"}`))
	}))
	defer server.Close()

	client := newClientForServer(t, server)
	result, err := client.Login(context.Background(), ports.LoginInput{Email: "a@x.com", Password: "wrong"})

	require.NoError(t, err)
	assert.False(t, result.Status)
	assert.Equal(t, "Sai mật khẩu", result.Message)
	assert.Nil(t, result.User)
}

func TestLogin_EnvelopeErrorsFlagged(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status": true, "errors": {"email": "not found"}}`))
	}))
	defer server.Close()

	client := newClientForServer(t, server)
	result, err := client.Login(context.Background(), ports.LoginInput{Email: "a@x.com", Password: "p"})

	require.NoError(t, err)
	assert.True(t, result.HasErrors)
}

func TestLogin_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	client := newClientForServer(t, server)
	_, err := client.Login(context.Background(), ports.LoginInput{Email: "a@x.com", Password: "p"})

	require.Error(t, err)
	assert.True(t, apperrors.IsTransport(err))
}

func TestRegister_PayloadShape(t *testing.T) {
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{
			"status": true,
			"data": {"user": {"id": "u2", "email": "b@x.com", "emailVerified": false, "role": "user"}}
		}`))
	}))
	defer server.Close()

	client := newClientForServer(t, server)
	result, err := client.Register(context.Background(), ports.RegisterInput{
		FirstName: "Nguyen",
		LastName:  "An",
		Email:     "b@x.com",
		Password:  "password1",
	})

	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"firstName": "Nguyen",
		"lastName":  "An",
		"email":     "b@x.com",
		"password":  "password1",
	}, gotBody)

	// register returns no token in this contract
	assert.True(t, result.Status)
	assert.Empty(t, result.Token)
	require.NotNil(t, result.User)
	assert.Equal(t, "u2", result.User.ID)
}

func TestLogin_MalformedDataPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status": true, "data": "not an object"}`))
	}))
	defer server.Close()

	client := newClientForServer(t, server)
	_, err := client.Login(context.Background(), ports.LoginInput{Email: "a@x.com", Password: "p"})

	require.Error(t, err)
	assert.True(t, apperrors.IsTransport(err))
}
