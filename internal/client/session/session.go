// Package session holds the bearer token proving an authenticated
// identity. The token is opaque to the client: it is written on login,
// attached to every outgoing request, and cleared on logout or when the
// server rejects it. No expiry is checked locally.
package session

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/shopkeeper/internal/client/state"
)

// Store is the session token store. Get reports whether a token is
// currently held.
type Store interface {
	Get(ctx context.Context) (token string, ok bool, err error)
	Set(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// SQLiteStore persists the token through the state repository, so an
// established session survives a restart of the CLI.
type SQLiteStore struct {
	repo state.Repository
}

func NewSQLiteStore(repo state.Repository) *SQLiteStore {
	return &SQLiteStore{repo: repo}
}

func (s *SQLiteStore) Get(ctx context.Context) (string, bool, error) {
	v, err := s.repo.Get(ctx, state.KeyToken)
	if err != nil {
		return "", false, fmt.Errorf("failed to read session token: %w", err)
	}
	if len(v) == 0 {
		return "", false, nil
	}
	return string(v), true, nil
}

func (s *SQLiteStore) Set(ctx context.Context, token string) error {
	if err := s.repo.Set(ctx, state.KeyToken, []byte(token)); err != nil {
		return fmt.Errorf("failed to store session token: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	if err := s.repo.Delete(ctx, state.KeyToken); err != nil {
		return fmt.Errorf("failed to clear session token: %w", err)
	}
	return nil
}
