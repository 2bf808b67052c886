// Package state persists small pieces of client state (the session token,
// the last visited route) in a local SQLite database so they survive
// restarts of the CLI.
package state

import "context"

// Well-known keys stored in the state table.
const (
	KeyToken     = "token"
	KeyLastRoute = "last_route"
)

// Repository is a durable key/value store. Get returns (nil, nil) when
// the key is absent.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
