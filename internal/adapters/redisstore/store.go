package redisstore

// Package redisstore provides a Redis-backed credential store, used when the
// client runs against shared infrastructure (dev rigs, integration tests).

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/target/mmk-mobile-client/internal/ports"
)

// Store persists credential slots under a fixed key namespace. Entries carry
// no TTL; they are cleared only by explicit logout.
type Store struct {
	client redis.UniversalClient
	prefix string
}

var _ ports.CredentialStore = (*Store)(nil)

// New creates a Store with the default key prefix.
func New(client redis.UniversalClient) *Store {
	return &Store{
		client: client,
		prefix: "account:credential:",
	}
}

// NewWithPrefix creates a Store with a custom key prefix.
func NewWithPrefix(client redis.UniversalClient, prefix string) *Store {
	return &Store{
		client: client,
		prefix: prefix,
	}
}

func (s *Store) Get(ctx context.Context, key ports.CredentialKey) (string, error) {
	value, err := s.client.Get(ctx, s.prefix+string(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ports.ErrNotFound
		}
		return "", fmt.Errorf("redis get %s: %w", key, err)
	}
	return value, nil
}

func (s *Store) Set(ctx context.Context, key ports.CredentialKey, value string) error {
	if err := s.client.Set(ctx, s.prefix+string(key), value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (s *Store) Remove(ctx context.Context, key ports.CredentialKey) error {
	if err := s.client.Del(ctx, s.prefix+string(key)).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}
