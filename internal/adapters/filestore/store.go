package filestore

// Package filestore provides the default on-device credential store: one
// file per credential slot under a private directory, written atomically.

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/target/mmk-mobile-client/internal/ports"
)

// Store persists credential slots as files named after their keys.
type Store struct {
	dir string
}

var _ ports.CredentialStore = (*Store)(nil)

// New creates the storage directory if needed and returns a Store.
func New(dir string) (*Store, error) {
	if dir == "" {
		return nil, errors.New("storage directory is required")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create credential dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) Get(_ context.Context, key ports.CredentialKey) (string, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ports.ErrNotFound
		}
		return "", fmt.Errorf("read credential %s: %w", key, err)
	}
	return string(data), nil
}

// Set writes through a temp file and renames it into place so a crash never
// leaves a half-written slot behind.
func (s *Store) Set(_ context.Context, key ports.CredentialKey, value string) error {
	tmp, err := os.CreateTemp(s.dir, string(key)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp credential file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(value); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write credential %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close credential %s: %w", key, err)
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("chmod credential %s: %w", key, err)
	}
	if err := os.Rename(tmpName, s.path(key)); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("store credential %s: %w", key, err)
	}
	return nil
}

func (s *Store) Remove(_ context.Context, key ports.CredentialKey) error {
	if err := os.Remove(s.path(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove credential %s: %w", key, err)
	}
	return nil
}

func (s *Store) path(key ports.CredentialKey) string {
	return filepath.Join(s.dir, string(key))
}
