// Package api wraps the remote catalog backend. It owns the single HTTP
// client bound to the configured base endpoint, attaches the bearer token
// from the session store to every outgoing request, and maps transport and
// status failures to the domain errors defined in errors.go, so raw
// transport errors never reach the view layer.
package api

import (
	"context"

	"github.com/dmitrijs2005/shopkeeper/internal/client/models"
)

// Client is the remote API surface consumed by the services layer.
// Every method performs exactly one network call; there is no retry.
type Client interface {
	Close() error
	Register(ctx context.Context, email, username string, password []byte) error
	Login(ctx context.Context, username string, password []byte) (string, error)
	GetProfile(ctx context.Context) (models.Profile, error)
	ListProducts(ctx context.Context, filter models.Filter) ([]models.Product, error)
	GetProduct(ctx context.Context, id int64) (models.Product, error)
	CreateProduct(ctx context.Context, params models.CreateProductParams) (models.Product, error)
	UpdateProduct(ctx context.Context, id int64, patch models.ProductPatch) error
	DeleteProduct(ctx context.Context, id int64) error
}

// TokenSource supplies the current session token, if any. It is read on
// every outgoing request, so a token stored after the client was built is
// picked up immediately. session.Store satisfies this interface.
type TokenSource interface {
	Get(ctx context.Context) (token string, ok bool, err error)
}
