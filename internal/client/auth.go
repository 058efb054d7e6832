package client

import (
	"context"
	"io"
	"net/url"

	"github.com/yigit/scholarsphere-cli/internal/app/models"
)

// ResolveIdentity verifies the current credential against the backend and
// returns the profile it belongs to. The credential source must already be
// serving the candidate credential when this is called.
func (c *Client) ResolveIdentity(ctx context.Context) (*models.UserProfile, error) {
	var profile models.UserProfile
	err := c.doJSON(ctx, "GET", "/auth/me", nil, nil, func(r io.Reader) error {
		return models.DecodeValid(r, &profile)
	})
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// LoginRedirectURL builds the URL the user's browser is sent to in order to
// begin the external OAuth flow. The backend completes the provider
// handshake and redirects to redirectURI with `token` and `user` query
// parameters; state is echoed back for the caller to verify.
func (c *Client) LoginRedirectURL(redirectURI, state string) string {
	query := url.Values{}
	query.Set("redirect_uri", redirectURI)
	if state != "" {
		query.Set("state", state)
	}
	return c.endpoint("/auth/google", query)
}
