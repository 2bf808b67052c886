package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/shopkeeper/internal/client/models"
)

type registerRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
}

// Register creates a new account. Field-level problems reported by the
// server come back as models.FieldErrors; a duplicate account as
// ErrAlreadyExists.
func (c *HTTPClient) Register(ctx context.Context, email, username string, password []byte) error {
	req := registerRequest{Email: email, Username: username, Password: string(password)}

	err := c.do(ctx, http.MethodPost, "/api/auth/register", nil, req, nil)
	if err == nil {
		return nil
	}

	var se *statusError
	if !errors.As(err, &se) {
		return err
	}
	if se.code == http.StatusConflict {
		return ErrAlreadyExists
	}
	if fe, msg := parseErrorBody(se.body); fe != nil {
		return fe
	} else if msg != "" {
		if se.code == http.StatusBadRequest || se.code == http.StatusUnprocessableEntity {
			return fmt.Errorf("%w: %s", ErrAlreadyExists, msg)
		}
		return fmt.Errorf("%w: %s", ErrUnavailable, msg)
	}
	return fmt.Errorf("%w: status %d", ErrUnavailable, se.code)
}

// Login exchanges credentials for a bearer token. Storing the token is the
// caller's responsibility.
func (c *HTTPClient) Login(ctx context.Context, username string, password []byte) (string, error) {
	req := loginRequest{Username: username, Password: string(password)}

	var resp loginResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/login", nil, req, &resp)
	if err != nil {
		var se *statusError
		if errors.As(err, &se) {
			switch se.code {
			case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden:
				return "", ErrInvalidCredentials
			}
			return "", fmt.Errorf("%w: status %d", ErrUnavailable, se.code)
		}
		return "", err
	}

	if resp.AccessToken == "" {
		return "", fmt.Errorf("%w: empty access token in response", ErrUnavailable)
	}
	return resp.AccessToken, nil
}

// GetProfile fetches the authenticated user's profile.
func (c *HTTPClient) GetProfile(ctx context.Context) (models.Profile, error) {
	var p models.Profile
	if err := c.do(ctx, http.MethodGet, "/api/auth/profile", nil, nil, &p); err != nil {
		return models.Profile{}, mapAuthenticated(err)
	}
	return p, nil
}
