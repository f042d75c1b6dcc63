package paypal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/opanaf/donations/providers"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

const (
	SandboxBaseUrl = "https://api-m.sandbox.paypal.com"
	LiveBaseUrl    = "https://api-m.paypal.com"

	EnvLive = "live"
)

type Config struct {
	ClientId     string
	ClientSecret string
	// "sandbox" or "live", selects the API host
	Env string
	// Base URL override, used by tests
	BaseUrl string
	// HTTP Client used for the token exchange and the API calls
	Client *http.Client
}

// Client talks to the PayPal Orders API. Access tokens are obtained through
// the client credentials grant and refreshed transparently
type Client struct {
	base   string
	client *http.Client
}

var _ providers.Initiator = (*Client)(nil)

func New(config Config) (c *Client) {
	base := config.BaseUrl
	if base == "" {
		base = SandboxBaseUrl
		if config.Env == EnvLive {
			base = LiveBaseUrl
		}
	}

	credentials := clientcredentials.Config{
		ClientID:     config.ClientId,
		ClientSecret: config.ClientSecret,
		TokenURL:     base + "/v1/oauth2/token",
		AuthStyle:    oauth2.AuthStyleInHeader,
	}

	ctx := context.Background()
	if config.Client != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, config.Client)
	} else {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, &http.Client{Timeout: 30 * time.Second})
	}

	c = &Client{
		base:   base,
		client: credentials.Client(ctx),
	}
	return c
}

type (
	amount struct {
		CurrencyCode string `json:"currency_code"`
		Value        string `json:"value"`
	}
	purchaseUnit struct {
		Amount amount `json:"amount"`
	}
	orderRequest struct {
		Intent        string         `json:"intent"`
		PurchaseUnits []purchaseUnit `json:"purchase_units"`
	}
)

// CreatePayable creates a capture intent order in USD. The raw provider
// response is returned as-is, errors PayPal reports in-band included
func (c *Client) CreatePayable(ctx context.Context, req *providers.PayableRequest) (p providers.Payable, err error) {
	order := orderRequest{
		Intent: "CAPTURE",
		PurchaseUnits: []purchaseUnit{
			{Amount: amount{CurrencyCode: "USD", Value: req.Amount.Text()}},
		},
	}

	contents, err := json.Marshal(order)
	if err != nil {
		return p, fmt.Errorf("failed to marshal order: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/v2/checkout/orders", bytes.NewReader(contents))
	if err != nil {
		return p, fmt.Errorf("failed to prepare request: %w", err)
	}
	request.Header.Set("Content-Type", "application/json")

	res, err := c.client.Do(request)
	if err != nil {
		return p, fmt.Errorf("failed to send request: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return p, fmt.Errorf("failed to read response: %w", err)
	}

	var out struct {
		Id string `json:"id"`
	}
	err = json.Unmarshal(body, &out)
	if err != nil {
		return p, fmt.Errorf("failed to decode order: %w", err)
	}

	p = providers.Payable{
		Id:  out.Id,
		Raw: body,
	}
	return p, nil
}
