package router

import (
	"github.com/opanaf/donations/decimal"
	"github.com/opanaf/donations/providers"
)

// PublicConfig is the non secret configuration handed to the browser
type PublicConfig struct {
	StripePublishableKey string `json:"stripePublishableKey"`
	PaypalClientId       string `json:"paypalClientId"`
	PaypalEnv            string `json:"paypalEnv"`
}

// Donation is the inbound body of every initiator route. All fields are
// optional, absent bodies behave like an empty object
type Donation struct {
	Amount       decimal.Decimal `json:"amount"`
	Currency     string          `json:"currency,omitempty"`
	Description  string          `json:"description,omitempty"`
	ReceiptEmail string          `json:"receipt_email,omitempty"`
	SuccessUrl   string          `json:"success_url,omitempty"`
	CancelUrl    string          `json:"cancel_url,omitempty"`
}

func (d *Donation) ToRequest() (req providers.PayableRequest) {
	req = providers.PayableRequest{
		Amount:       d.Amount,
		Currency:     d.Currency,
		Description:  d.Description,
		ReceiptEmail: d.ReceiptEmail,
		SuccessUrl:   d.SuccessUrl,
		CancelUrl:    d.CancelUrl,
	}
	return req
}

type (
	// Session is returned by the checkout session route. Url is where the
	// client must redirect to
	Session struct {
		Url string `json:"url"`
		Id  string `json:"id"`
	}
	// Intent is returned by the payment intent route. ClientSecret feeds
	// the in-page card element
	Intent struct {
		ClientSecret string `json:"client_secret"`
		Id           string `json:"id"`
	}
)

func SessionFromPayable(src *providers.Payable) (out Session) {
	return Session{
		Url: src.RedirectUrl,
		Id:  src.Id,
	}
}

func IntentFromPayable(src *providers.Payable) (out Intent) {
	return Intent{
		ClientSecret: src.ClientSecret,
		Id:           src.Id,
	}
}
