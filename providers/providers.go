package providers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/opanaf/donations/decimal"
)

type (
	// PayableRequest describes the donation the payable is created for
	PayableRequest struct {
		// Amount in major units
		Amount decimal.Decimal
		// ISO 4217 currency code, lowercase
		Currency string
		// Description shown on the provider's payment page
		Description string
		// Optional receipt email
		ReceiptEmail string
		// Redirect target after a completed checkout
		SuccessUrl string
		// Redirect target after an abandoned checkout
		CancelUrl string
	}
	// Payable is the provider side object the client pays against
	Payable struct {
		// Provider assigned identifier
		Id string
		// Hosted page to redirect the client to
		RedirectUrl string
		// Client side secret for in-page payment collection
		ClientSecret string
		// Raw provider response, kept for pass-through handlers
		Raw json.RawMessage
	}
)

// APIError is an error the provider reported in-band with a response body
type APIError struct {
	StatusCode int
	Body       []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("provider returned status %d: %s", e.StatusCode, string(e.Body))
}

// Initiator creates a payable from an amount and currency
type Initiator interface {
	CreatePayable(ctx context.Context, req *PayableRequest) (p Payable, err error)
}
