// Package services contains the application services of the catalog CLI.
// This file defines the authentication service: registration, login,
// profile retrieval and session lifecycle.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/shopkeeper/internal/client/api"
	"github.com/dmitrijs2005/shopkeeper/internal/client/models"
	"github.com/dmitrijs2005/shopkeeper/internal/client/session"
)

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Register: create a new account on the server.
//   - Login: authenticate and persist the returned bearer token.
//   - Profile: fetch the authenticated user's profile.
//   - Logout: discard the persisted session.
//   - HasSession: report whether a token is currently held.
//
// Session expiry policy: any authenticated call rejected for authorization
// reasons clears the stored token before the error is returned, so the
// route guard denies protected views on the very next navigation.
type AuthService interface {
	Register(ctx context.Context, email, username string, password []byte) error
	Login(ctx context.Context, username string, password []byte) error
	Profile(ctx context.Context) (models.Profile, error)
	Logout(ctx context.Context) error
	HasSession(ctx context.Context) bool
}

type authService struct {
	client api.Client
	store  session.Store
}

// NewAuthService constructs an AuthService bound to the given API client
// and session store.
func NewAuthService(client api.Client, store session.Store) AuthService {
	return &authService{client: client, store: store}
}

func (a *authService) Register(ctx context.Context, email, username string, password []byte) error {
	return a.client.Register(ctx, email, username, password)
}

// Login exchanges credentials for a token and persists it. The session
// survives restarts of the CLI; no expiry is checked locally.
func (a *authService) Login(ctx context.Context, username string, password []byte) error {
	token, err := a.client.Login(ctx, username, password)
	if err != nil {
		return err
	}
	if err := a.store.Set(ctx, token); err != nil {
		return fmt.Errorf("login succeeded but session could not be persisted: %w", err)
	}
	return nil
}

func (a *authService) Profile(ctx context.Context) (models.Profile, error) {
	p, err := a.client.GetProfile(ctx)
	if err != nil {
		return models.Profile{}, clearSessionIfExpired(ctx, a.store, err)
	}
	return p, nil
}

func (a *authService) Logout(ctx context.Context) error {
	return a.store.Clear(ctx)
}

func (a *authService) HasSession(ctx context.Context) bool {
	_, ok, err := a.store.Get(ctx)
	return err == nil && ok
}

// clearSessionIfExpired enforces the session expiry policy. The original
// error is returned unchanged so callers can still match on it.
func clearSessionIfExpired(ctx context.Context, store session.Store, err error) error {
	if errors.Is(err, api.ErrSessionExpired) {
		_ = store.Clear(ctx)
	}
	return err
}
