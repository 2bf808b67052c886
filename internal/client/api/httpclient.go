package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/shopkeeper/internal/client/models"
)

// maxBodySize caps how much of a response body is read into memory.
const maxBodySize = 1 << 20

// HTTPClient talks to the catalog backend over HTTP/JSON. All requests go
// through a bearerTransport that injects the Authorization header when the
// token source currently holds a token.
type HTTPClient struct {
	baseURL *url.URL
	httpc   *http.Client
	timeout time.Duration
}

// NewHTTPClient builds a client bound to the given base endpoint. tokens
// may be nil, in which case all requests are sent unauthenticated.
func NewHTTPClient(endpoint string, timeout time.Duration, tokens TokenSource) (*HTTPClient, error) {
	base, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint %q: %w", endpoint, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid endpoint %q: scheme and host required", endpoint)
	}

	return &HTTPClient{
		baseURL: base,
		timeout: timeout,
		httpc: &http.Client{
			Transport: &bearerTransport{base: http.DefaultTransport, tokens: tokens},
		},
	}, nil
}

// Close releases idle connections held by the underlying transport.
func (c *HTTPClient) Close() error {
	c.httpc.CloseIdleConnections()
	return nil
}

// bearerTransport reads the session token on every request and, when one
// is present, attaches it as "Authorization: Bearer <token>".
type bearerTransport struct {
	base   http.RoundTripper
	tokens TokenSource
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.tokens != nil {
		token, ok, err := t.tokens.Get(req.Context())
		if err != nil {
			return nil, err
		}
		if ok {
			req = req.Clone(req.Context())
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	return t.base.RoundTrip(req)
}

// statusError carries a non-2xx response until the calling operation maps
// it to a domain error. It never escapes the package.
type statusError struct {
	code int
	body []byte
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.code)
}

// do performs a single best-effort request and decodes a 2xx JSON body
// into out (when out is non-nil and a body is present). Non-2xx responses
// come back as *statusError; transport failures as wrapped ErrUnavailable.
func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &statusError{code: resp.StatusCode, body: data}
	}

	if out != nil && len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("%w: malformed response body: %v", ErrUnavailable, err)
		}
	}
	return nil
}

// errorBody is the defensive union of error shapes the backend has been
// observed to produce: a field-errors array, or a single message under
// either "message" or "error".
type errorBody struct {
	Errors  []models.FieldError `json:"errors"`
	Message string              `json:"message"`
	Reason  string              `json:"error"`
}

func parseErrorBody(data []byte) (models.FieldErrors, string) {
	var eb errorBody
	if err := json.Unmarshal(data, &eb); err != nil {
		return nil, ""
	}
	if len(eb.Errors) > 0 {
		return models.FieldErrors(eb.Errors), ""
	}
	if eb.Message != "" {
		return nil, eb.Message
	}
	return nil, eb.Reason
}

// mapAuthenticated maps a failed bearer-authenticated call: authorization
// rejections mean the session is no longer valid.
func mapAuthenticated(err error) error {
	var se *statusError
	if !errors.As(err, &se) {
		return err
	}
	switch se.code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrSessionExpired
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		if fe, msg := parseErrorBody(se.body); fe != nil {
			return fe
		} else if msg != "" {
			return fmt.Errorf("%w: %s", ErrUnavailable, msg)
		}
	}
	return fmt.Errorf("%w: status %d", ErrUnavailable, se.code)
}
