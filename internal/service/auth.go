package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	domainauth "github.com/target/mmk-mobile-client/internal/domain/auth"
	apperrors "github.com/target/mmk-mobile-client/internal/errors"
	"github.com/target/mmk-mobile-client/internal/ports"
	"github.com/target/mmk-mobile-client/internal/session"
	"golang.org/x/sync/errgroup"
)

// Status is the observable phase of a login or register invocation.
type Status string

const (
	StatusIdle       Status = "idle"
	StatusSubmitting Status = "submitting"
	StatusSucceeded  Status = "succeeded"
	StatusRejected   Status = "rejected"
)

// User-facing fallback messages, kept in the product locale. Server-supplied
// rejection messages take precedence when present.
const (
	msgLoginSucceeded    = "Đăng nhập thành công"
	msgLoginFailed       = "Đăng nhập thất bại"
	msgRegisterSucceeded = "Đăng ký tài khoản thành công"
	msgRegisterFailed    = "Đăng ký thất bại"
)

// Outcome is the terminal state of one auth operation. Err carries the
// classified cause for rejected outcomes; Message is what the UI displays.
type Outcome struct {
	Status  Status
	Message string
	Err     error
}

// Succeeded reports whether the operation reached the Succeeded state.
func (o Outcome) Succeeded() bool { return o.Status == StatusSucceeded }

// Rejected reports whether the operation reached the Rejected state.
func (o Outcome) Rejected() bool { return o.Status == StatusRejected }

// LoginInput carries login form values that already passed field validation.
type LoginInput struct {
	Email    string
	Password string
}

// RegisterInput carries register form values that already passed field
// validation. ConfirmPassword is a local-only validation artifact; it is
// never transmitted to the account service.
type RegisterInput struct {
	FirstName       string
	LastName        string
	Email           string
	Password        string
	ConfirmPassword string
}

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	API         ports.AccountAPI      // Required: remote account service client
	Credentials ports.CredentialStore // Required: durable credential slots
	State       *session.State        // Required: observable session state
	Navigator   ports.Navigator       // Optional: receives the post-commit home signal
	Logger      *slog.Logger          // Optional: structured logger
	OnStatus    func(Status)          // Optional: observes Submitting/terminal transitions
}

// AuthService orchestrates login, registration, logout, and startup
// hydration. Within one invocation, credential writes happen before the
// session state Replace, which happens before the navigation signal.
// Concurrent invocations are not serialized; the last Replace wins.
type AuthService struct {
	api      ports.AccountAPI
	creds    ports.CredentialStore
	state    *session.State
	nav      ports.Navigator
	logger   *slog.Logger
	onStatus func(Status)
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	if opts.API == nil {
		panic("AccountAPI is required")
	}
	if opts.Credentials == nil {
		panic("CredentialStore is required")
	}
	if opts.State == nil {
		panic("session State is required")
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &AuthService{
		api:      opts.API,
		creds:    opts.Credentials,
		state:    opts.State,
		nav:      opts.Navigator,
		logger:   logger,
		onStatus: opts.OnStatus,
	}
}

// Login submits credentials and, on success, commits the returned token and
// profile to durable storage before the session state reflects them.
// Transport and persistence failures surface as a rejected outcome with a
// generic message; a service rejection carries the server's message.
func (s *AuthService) Login(ctx context.Context, in LoginInput) Outcome {
	s.transition(StatusSubmitting)

	result, err := s.api.Login(ctx, ports.LoginInput{
		Email:    in.Email,
		Password: in.Password,
	})
	if err != nil {
		s.logger.WarnContext(ctx, "login request failed", "email", in.Email, "error", err)
		return s.reject(msgLoginFailed, err)
	}

	if !result.Status || result.HasErrors || result.User == nil || result.Token == "" {
		message := result.Message
		if message == "" {
			message = msgLoginFailed
		}
		s.logger.InfoContext(ctx, "login rejected by service", "email", in.Email, "message", result.Message)
		return s.reject(message, apperrors.Rejected(message))
	}

	sess := domainauth.Session{Token: result.Token, Profile: result.User}
	if commitErr := s.persistSession(ctx, sess); commitErr != nil {
		s.logger.ErrorContext(ctx, "persist session failed", "error", commitErr)
		return s.reject(msgLoginFailed, commitErr)
	}

	s.state.Replace(sess)
	s.navigateHome()
	return s.succeed(msgLoginSucceeded)
}

// Register submits the registration form, stripping the local password
// confirmation. On success only the profile is persisted; the register
// contract returns no token, so the resulting session carries a profile
// without a bearer credential.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) Outcome {
	s.transition(StatusSubmitting)

	result, err := s.api.Register(ctx, ports.RegisterInput{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Password:  in.Password,
	})
	if err != nil {
		s.logger.WarnContext(ctx, "register request failed", "email", in.Email, "error", err)
		return s.reject(msgRegisterFailed, err)
	}

	if !result.Status || result.HasErrors || result.User == nil {
		message := result.Message
		if message == "" {
			message = msgRegisterFailed
		}
		s.logger.InfoContext(ctx, "register rejected by service", "email", in.Email, "message", result.Message)
		return s.reject(message, apperrors.Rejected(message))
	}

	sess := domainauth.Session{Profile: result.User}
	if commitErr := s.persistSession(ctx, sess); commitErr != nil {
		s.logger.ErrorContext(ctx, "persist profile failed", "error", commitErr)
		return s.reject(msgRegisterFailed, commitErr)
	}

	s.state.Replace(sess)
	s.navigateHome()
	return s.succeed(msgRegisterSucceeded)
}

// Logout clears the in-memory session first so the UI reflects the
// logged-out state immediately, then removes both credential slots.
// Removal failures are logged and swallowed; a stale credential on disk is
// no longer trusted and is overwritten by the next login.
func (s *AuthService) Logout(ctx context.Context) {
	s.state.Replace(domainauth.Session{})

	for _, key := range []ports.CredentialKey{ports.KeyToken, ports.KeyUserInfo} {
		if err := s.creds.Remove(ctx, key); err != nil {
			s.logger.WarnContext(ctx, "remove credential failed", "key", string(key), "error", err)
		}
	}
}

// Hydrate populates the session state from durable storage exactly once at
// startup. A stored profile without a token is treated as an absent session.
// Every path calls Replace exactly once, including the empty result.
func (s *AuthService) Hydrate(ctx context.Context) error {
	var token, userInfo string
	var tokenFound, profileFound bool

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		value, err := s.creds.Get(gctx, ports.KeyToken)
		if err != nil {
			if errors.Is(err, ports.ErrNotFound) {
				return nil
			}
			return apperrors.Wrap(err, apperrors.ErrCodePersistence, "read stored token")
		}
		token = value
		tokenFound = true
		return nil
	})
	g.Go(func() error {
		value, err := s.creds.Get(gctx, ports.KeyUserInfo)
		if err != nil {
			if errors.Is(err, ports.ErrNotFound) {
				return nil
			}
			return apperrors.Wrap(err, apperrors.ErrCodePersistence, "read stored profile")
		}
		userInfo = value
		profileFound = true
		return nil
	})

	if err := g.Wait(); err != nil {
		s.logger.WarnContext(ctx, "hydration read failed, starting logged out", "error", err)
		s.state.Replace(domainauth.Session{})
		return err
	}

	if !tokenFound {
		if profileFound {
			s.logger.WarnContext(ctx, "stored profile without token, discarding session")
		}
		s.state.Replace(domainauth.Session{})
		return nil
	}

	var profile domainauth.Profile
	if !profileFound || json.Unmarshal([]byte(userInfo), &profile) != nil {
		s.logger.WarnContext(ctx, "stored token without usable profile, discarding session")
		s.state.Replace(domainauth.Session{})
		return nil
	}

	s.state.Replace(domainauth.Session{Token: token, Profile: &profile})
	return nil
}

// persistSession writes the credential slots for a new session, token first.
// Both writes are attempted even when the first fails; any failure surfaces
// as a persistence error and blocks the session state update upstream.
func (s *AuthService) persistSession(ctx context.Context, sess domainauth.Session) error {
	var firstErr error

	if sess.Token != "" {
		if err := s.creds.Set(ctx, ports.KeyToken, sess.Token); err != nil {
			firstErr = apperrors.Wrap(err, apperrors.ErrCodePersistence, "persist token")
		}
	}

	profileJSON, err := json.Marshal(sess.Profile)
	if err != nil {
		if firstErr != nil {
			return firstErr
		}
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "encode profile")
	}
	if err := s.creds.Set(ctx, ports.KeyUserInfo, string(profileJSON)); err != nil && firstErr == nil {
		firstErr = apperrors.Wrap(err, apperrors.ErrCodePersistence, "persist profile")
	}

	return firstErr
}

func (s *AuthService) navigateHome() {
	if s.nav != nil {
		s.nav.Home()
	}
}

func (s *AuthService) transition(status Status) {
	if s.onStatus != nil {
		s.onStatus(status)
	}
}

func (s *AuthService) reject(message string, err error) Outcome {
	s.transition(StatusRejected)
	return Outcome{Status: StatusRejected, Message: message, Err: err}
}

func (s *AuthService) succeed(message string) Outcome {
	s.transition(StatusSucceeded)
	return Outcome{Status: StatusSucceeded, Message: message}
}
