// Package client implements the typed REST client for the ScholarSphere
// backend. It owns bearer-token injection, request correlation ids,
// response decoding with boundary validation, and the mapping from HTTP
// status classes to the apperrors taxonomy. It holds no application state;
// the stateful behavior (session, feed, polling) lives in internal/app.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/yigit/scholarsphere-cli/internal/pkg/apperrors"
)

// CredentialSource supplies the current bearer credential, if any.
// The session manager is the only implementation outside of tests.
type CredentialSource func() (string, bool)

// Client is the typed REST client for the backend.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	credential CredentialSource
	logger     zerolog.Logger
}

// New creates a Client for the backend at baseURL. credential may be nil
// for a purely anonymous client.
func New(baseURL string, timeout time.Duration, credential CredentialSource, logger zerolog.Logger) (*Client, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("client: invalid base URL %q: %w", baseURL, err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("client: base URL %q must be absolute", baseURL)
	}

	if credential == nil {
		credential = func() (string, bool) { return "", false }
	}

	return &Client{
		baseURL:    parsed,
		httpClient: &http.Client{Timeout: timeout},
		credential: credential,
		logger:     logger,
	}, nil
}

// BaseURL returns the backend base URL the client was built with.
func (c *Client) BaseURL() string {
	return strings.TrimRight(c.baseURL.String(), "/")
}

// endpoint builds an absolute URL for a backend path plus query parameters.
func (c *Client) endpoint(path string, query url.Values) string {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// newRequest builds a request with the standard headers: JSON accept,
// a fresh X-Request-ID for log correlation, and the bearer credential
// when one is present.
func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), body)
	if err != nil {
		return nil, fmt.Errorf("client: building %s %s: %w", method, path, err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	if token, ok := c.credential(); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req, nil
}

// doJSON executes a request with an optional JSON body and decodes the
// response into out when out is non-nil. out must be a pointer; decoding
// runs the boundary validation in models (deserialize-or-reject), and any
// validation failure surfaces as ErrDecodeRejected.
//
// decode is the decoder applied to a 2xx body; pass nil to discard it.
func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, body interface{}, decode func(io.Reader) error) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("client: encoding %s %s body: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := c.newRequest(ctx, method, path, query, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.execute(req, decode)
}

// execute sends the request, maps failure statuses onto the apperrors
// taxonomy, and applies decode to a successful body.
func (c *Client) execute(req *http.Request, decode func(io.Reader) error) error {
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn().
			Str("method", req.Method).
			Str("url", req.URL.Path).
			Err(err).
			Msg("Request failed at transport level")
		return apperrors.NewTransportError(fmt.Sprintf("request to %s failed: %v", req.URL.Path, err))
	}
	defer resp.Body.Close()

	c.logger.Debug().
		Str("method", req.Method).
		Str("url", req.URL.Path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("Request completed")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.mapStatus(resp)
	}

	if decode == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := decode(resp.Body); err != nil {
		return apperrors.NewDecodeRejectedError(err.Error())
	}
	return nil
}

// serverError is the error envelope the backend uses. Older endpoints
// return a bare {"detail": "..."}; newer ones wrap it. Both are accepted.
type serverError struct {
	Detail  string `json:"detail"`
	Message string `json:"message"`
	Error   *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// detailText extracts the human-readable detail from an error body, for
// surfacing verbatim per the error policy.
func (e serverError) detailText() string {
	switch {
	case e.Detail != "":
		return e.Detail
	case e.Message != "":
		return e.Message
	case e.Error != nil && e.Error.Message != "":
		return e.Error.Message
	}
	return ""
}

// mapStatus converts a non-2xx response into the client error taxonomy.
func (c *Client) mapStatus(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))

	var srvErr serverError
	_ = json.Unmarshal(body, &srvErr)
	detail := srvErr.detailText()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		if detail == "" {
			detail = "please sign in"
		}
		return apperrors.NewUnauthenticatedError(detail)

	case resp.StatusCode == http.StatusNotFound:
		if detail == "" {
			detail = fmt.Sprintf("%s not found", resp.Request.URL.Path)
		}
		return apperrors.NewResourceNotFoundError(detail)

	case resp.StatusCode == http.StatusConflict:
		if detail == "" {
			detail = "conflicting request"
		}
		return apperrors.NewCustomError(apperrors.ErrConflict, detail)

	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		if detail == "" {
			detail = fmt.Sprintf("request rejected with status %d", resp.StatusCode)
		}
		return apperrors.NewValidationRejectedError(detail)

	default:
		return apperrors.NewTransportError(fmt.Sprintf("server returned status %d", resp.StatusCode))
	}
}
