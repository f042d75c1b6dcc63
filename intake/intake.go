package intake

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/opanaf/donations/decimal"
)

// Form field names of the donation intake endpoint. The sink matches
// submissions to a form by these names, they must not change
const (
	FormName = "donation"

	fieldFormName      = "form-name"
	fieldDonorName     = "donor-name"
	fieldDonorEmail    = "donor-email"
	fieldAmount        = "amount"
	fieldCurrency      = "currency"
	fieldPaymentMethod = "payment-method"
	fieldTransactionId = "transaction-id"
	fieldPaymentStatus = "payment-status"
	fieldTimestamp     = "timestamp"
)

// Record is the normalized representation of a completed donation,
// independent of which provider produced it
type Record struct {
	DonorName  string
	DonorEmail string
	// Amount in major units
	Amount decimal.Decimal
	// ISO 4217 code, uppercased on submission
	Currency string
	// Tag identifying the provider and flow, e.g. stripe-checkout
	PaymentMethod string
	TransactionId string
	PaymentStatus string
	Timestamp     time.Time
}

// Values builds the form submission for the record
func (r *Record) Values() (form url.Values) {
	form = url.Values{}
	form.Set(fieldFormName, FormName)
	form.Set(fieldDonorName, r.DonorName)
	form.Set(fieldDonorEmail, r.DonorEmail)
	form.Set(fieldAmount, r.Amount.String())
	form.Set(fieldCurrency, strings.ToUpper(r.Currency))
	form.Set(fieldPaymentMethod, r.PaymentMethod)
	form.Set(fieldTransactionId, r.TransactionId)
	form.Set(fieldPaymentStatus, r.PaymentStatus)
	form.Set(fieldTimestamp, r.Timestamp.UTC().Format(time.RFC3339))
	return form
}

type Config struct {
	// Host name of the intake endpoint, scheme allowed and stripped.
	// When empty the per-call fallback host is used
	Host string
	// HTTP Client to use
	Client *http.Client
}

// Client submits donation records to the form intake endpoint
type Client struct {
	host   string
	client *http.Client
}

// Sink persists donation records, best effort
type Sink interface {
	Submit(ctx context.Context, fallbackHost string, record *Record) (err error)
}

var _ Sink = (*Client)(nil)

func New(config Config) (c *Client) {
	c = &Client{
		host:   StripScheme(config.Host),
		client: config.Client,
	}
	if c.client == nil {
		c.client = &http.Client{Timeout: 30 * time.Second}
	}
	return c
}

// StripScheme removes a leading http:// or https:// from a site URL
func StripScheme(site string) (host string) {
	host = strings.TrimPrefix(site, "https://")
	host = strings.TrimPrefix(host, "http://")
	return strings.TrimSuffix(host, "/")
}

// Submit posts the record as an URL encoded form to the intake endpoint.
// The target host is the configured one, then fallbackHost, then localhost
func (c *Client) Submit(ctx context.Context, fallbackHost string, record *Record) (err error) {
	host := c.host
	if host == "" {
		host = fallbackHost
	}
	if host == "" {
		host = "localhost"
	}

	form := record.Values()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, "https://"+host+"/", strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to prepare submission: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to submit record: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("intake endpoint returned status %d", res.StatusCode)
	}
	return nil
}
