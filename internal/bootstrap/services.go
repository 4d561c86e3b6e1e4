package bootstrap

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/redis/go-redis/v9"
	"github.com/target/mmk-mobile-client/config"
	"github.com/target/mmk-mobile-client/internal/adapters/accountapi"
	"github.com/target/mmk-mobile-client/internal/adapters/filestore"
	"github.com/target/mmk-mobile-client/internal/adapters/redisstore"
	"github.com/target/mmk-mobile-client/internal/ports"
	"github.com/target/mmk-mobile-client/internal/service"
	"github.com/target/mmk-mobile-client/internal/session"
	"github.com/target/mmk-mobile-client/internal/transport"
)

// ServiceDeps carries the shared dependencies for building the session
// subsystem.
type ServiceDeps struct {
	Config    *config.AppConfig
	Logger    *slog.Logger
	Navigator ports.Navigator // Optional
	OnStatus  func(service.Status)
}

// Services holds the wired session subsystem.
type Services struct {
	Credentials ports.CredentialStore
	State       *session.State
	Auth        *service.AuthService

	redisClient *redis.Client
}

// NewCredentialStore builds the credential store selected by configuration.
// For the redis backend the returned client is connected lazily on first use.
func NewCredentialStore(cfg *config.AppConfig) (ports.CredentialStore, *redis.Client, error) {
	switch cfg.Storage.Backend {
	case config.StorageBackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Storage.Redis.Addr,
			Password: cfg.Storage.Redis.Password,
			DB:       cfg.Storage.Redis.DB,
		})
		return redisstore.New(client), client, nil
	case config.StorageBackendFile:
		store, err := filestore.New(cfg.Storage.Dir)
		if err != nil {
			return nil, nil, fmt.Errorf("init file credential store: %w", err)
		}
		return store, nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

// NewServices wires the credential store, request pipeline, session state,
// and auth service from configuration.
func NewServices(deps *ServiceDeps) (*Services, error) {
	if deps == nil || deps.Config == nil {
		return nil, fmt.Errorf("config is required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	creds, redisClient, err := NewCredentialStore(deps.Config)
	if err != nil {
		return nil, err
	}

	pipeline, err := transport.NewClient(transport.ClientOptions{
		BaseURL:     deps.Config.API.BaseURL,
		Credentials: creds,
		HTTPClient:  &http.Client{Timeout: deps.Config.API.RequestTimeout},
		Logger:      logger,
	})
	if err != nil {
		return nil, fmt.Errorf("init request pipeline: %w", err)
	}

	state := session.NewState()
	auth := service.NewAuthService(service.AuthServiceOptions{
		API:         accountapi.NewClient(pipeline),
		Credentials: creds,
		State:       state,
		Navigator:   deps.Navigator,
		Logger:      logger,
		OnStatus:    deps.OnStatus,
	})

	return &Services{
		Credentials: creds,
		State:       state,
		Auth:        auth,
		redisClient: redisClient,
	}, nil
}

// Close releases backend connections held by the subsystem.
func (s *Services) Close() error {
	if s.redisClient != nil {
		return s.redisClient.Close()
	}
	return nil
}
