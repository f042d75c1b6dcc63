package gateway

import (
	"context"
	"fmt"

	"github.com/opanaf/donations/providers"
)

const (
	DefaultCurrency    = "usd"
	DefaultDescription = "OPANAF donation"

	successPage = "/youth-empowerment.html?payment=success"
	cancelPage  = "/youth-empowerment.html?payment=cancel"
)

func (c *Controller) normalize(req *providers.PayableRequest) {
	if req.Currency == "" {
		req.Currency = DefaultCurrency
	}
	if req.Description == "" {
		req.Description = DefaultDescription
	}
	if req.SuccessUrl == "" {
		req.SuccessUrl = c.siteUrl + successPage
	}
	if req.CancelUrl == "" {
		req.CancelUrl = c.siteUrl + cancelPage
	}
}

// CreateCheckoutSession creates a hosted checkout session for the donation.
// Missing fields are substituted with site level defaults first
func (c *Controller) CreateCheckoutSession(ctx context.Context, req *providers.PayableRequest) (p providers.Payable, err error) {
	c.normalize(req)

	p, err = c.checkout.CreatePayable(ctx, req)
	if err != nil {
		return p, fmt.Errorf("failed to initiate checkout session: %w", err)
	}
	return p, nil
}

// CreatePaymentIntent creates an in-page payment intent for the donation
func (c *Controller) CreatePaymentIntent(ctx context.Context, req *providers.PayableRequest) (p providers.Payable, err error) {
	c.normalize(req)

	p, err = c.intents.CreatePayable(ctx, req)
	if err != nil {
		return p, fmt.Errorf("failed to initiate payment intent: %w", err)
	}
	return p, nil
}

// CreateOrder creates a capture intent order on the alternate provider
func (c *Controller) CreateOrder(ctx context.Context, req *providers.PayableRequest) (p providers.Payable, err error) {
	p, err = c.orders.CreatePayable(ctx, req)
	if err != nil {
		return p, fmt.Errorf("failed to initiate order: %w", err)
	}
	return p, nil
}
