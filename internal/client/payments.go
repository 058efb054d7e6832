package client

import (
	"context"
	"io"
	"net/url"

	"github.com/yigit/scholarsphere-cli/internal/app/models"
)

// createCheckoutRequest is the body of POST /payments/create-checkout.
type createCheckoutRequest struct {
	PosterID string `json:"poster_id"`
}

// CreateCheckout opens a checkout session with the external payment
// provider for a poster submission fee. The caller sends the user's
// browser to the returned URL; the provider owns everything after that.
func (c *Client) CreateCheckout(ctx context.Context, posterID string) (*models.CheckoutSession, error) {
	var session models.CheckoutSession
	req := createCheckoutRequest{PosterID: posterID}
	err := c.doJSON(ctx, "POST", "/payments/create-checkout", nil, req, func(r io.Reader) error {
		return models.DecodeValid(r, &session)
	})
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// CheckoutStatus returns the state of a checkout session.
func (c *Client) CheckoutStatus(ctx context.Context, sessionID string) (*models.CheckoutStatus, error) {
	var status models.CheckoutStatus
	err := c.doJSON(ctx, "GET", "/payments/status/"+url.PathEscape(sessionID), nil, nil, func(r io.Reader) error {
		return models.DecodeValid(r, &status)
	})
	if err != nil {
		return nil, err
	}
	return &status, nil
}
