package transport

// Package transport wraps a generic HTTP client with the three hooks every
// outbound account-service call goes through: bearer credential attachment,
// success normalization, and failure classification.

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	apperrors "github.com/target/mmk-mobile-client/internal/errors"
	"github.com/target/mmk-mobile-client/internal/ports"
)

// DefaultRequestTimeout bounds the full request/response round trip when no
// custom HTTP client is supplied.
const DefaultRequestTimeout = 30 * time.Second

// headerToken is the credential header name expected by the account service.
// The value carries the usual "Bearer <token>" form under this legacy name.
const headerToken = "token"

// headerRequestID tags every outbound request for log correlation.
const headerRequestID = "X-Request-ID"

// maxResponseBody caps how much of an error response body is read when
// extracting a failure message.
const maxResponseBody = 1 << 20

// Envelope is the account service's response framing. Data holds the inner
// payload; callers decode it into their own types.
type Envelope struct {
	Status  bool            `json:"status"`
	Errors  json.RawMessage `json:"errors,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
}

// HasErrors reports whether the envelope carries a non-null errors field.
func (e *Envelope) HasErrors() bool {
	trimmed := strings.TrimSpace(string(e.Errors))
	return trimmed != "" && trimmed != "null"
}

// HasData reports whether the envelope carries a non-null data field.
func (e *Envelope) HasData() bool {
	trimmed := strings.TrimSpace(string(e.Data))
	return trimmed != "" && trimmed != "null"
}

// ClientOptions groups dependencies for Client.
type ClientOptions struct {
	BaseURL     string
	Credentials ports.CredentialStore
	HTTPClient  *http.Client // Optional, defaults to a client with DefaultRequestTimeout
	Logger      *slog.Logger // Optional
}

// Client is the authenticated request pipeline. Each request independently
// reads the current token from the credential store before dispatch; there is
// no shared lock across concurrent requests.
type Client struct {
	baseURL    string
	creds      ports.CredentialStore
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient constructs a new Client.
func NewClient(opts ClientOptions) (*Client, error) {
	if opts.BaseURL == "" {
		return nil, errors.New("base URL is required")
	}
	if opts.Credentials == nil {
		return nil, errors.New("credential store is required")
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultRequestTimeout}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:    strings.TrimSuffix(opts.BaseURL, "/"),
		creds:      opts.Credentials,
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// Post sends body as JSON to path and returns the decoded response envelope.
// Any network failure, timeout, or non-2xx status comes back as a transport
// error; the request is never retried here.
func (c *Client) Post(ctx context.Context, path string, body any) (*Envelope, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, apperrors.Wrapf(err, apperrors.ErrCodeInternal, "encode request body for %s", path)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, apperrors.Wrapf(err, apperrors.ErrCodeInternal, "build request for %s", path)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(headerRequestID, uuid.NewString())

	c.attachCredential(ctx, req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.Wrapf(err, apperrors.ErrCodeTransport, "request %s failed", path)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.logger.WarnContext(ctx, "close response body failed", "path", path, "error", cerr)
		}
	}()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, apperrors.Wrapf(err, apperrors.ErrCodeTransport, "read response from %s", path)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, apperrors.Transport(failureMessage(path, resp.StatusCode, raw))
	}

	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, apperrors.Wrapf(err, apperrors.ErrCodeTransport, "decode response from %s", path)
	}

	return &env, nil
}

// attachCredential sets the bearer header when a token is available.
// Attaching is best-effort: a missing token or an unreadable store sends the
// request unauthenticated rather than failing it.
func (c *Client) attachCredential(ctx context.Context, req *http.Request) {
	token, err := c.creds.Get(ctx, ports.KeyToken)
	if err != nil {
		if !errors.Is(err, ports.ErrNotFound) {
			c.logger.WarnContext(ctx, "credential read failed, sending request unauthenticated", "error", err)
		}
		return
	}
	if token == "" {
		return
	}
	req.Header.Set(headerToken, "Bearer "+token)
}

// failureMessage extracts the best-available human-readable message from a
// non-2xx response. The service envelope's message wins when present.
func failureMessage(path string, status int, raw []byte) string {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err == nil && env.Message != "" {
		return env.Message
	}
	return fmt.Sprintf("request %s failed with status %d %s", path, status, http.StatusText(status))
}
