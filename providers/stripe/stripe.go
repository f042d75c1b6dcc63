package stripe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/opanaf/donations/providers"
)

const DefaultBaseUrl = "https://api.stripe.com"

var ErrSecretNotConfigured = errors.New("Stripe secret not configured")

type Config struct {
	// Secret API key. Empty means the client is not configured
	Secret string
	// Base URL of the API. Defaults to the public endpoint
	BaseUrl string
	// HTTP Client to use
	Client *http.Client
}

// Client talks to the Stripe REST API using form encoded requests
type Client struct {
	secret string
	base   string
	client *http.Client
}

func New(config Config) (c *Client) {
	c = &Client{
		secret: config.Secret,
		base:   config.BaseUrl,
		client: config.Client,
	}
	if c.base == "" {
		c.base = DefaultBaseUrl
	}
	if c.client == nil {
		c.client = &http.Client{Timeout: 30 * time.Second}
	}
	return c
}

type errorEnvelope struct {
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) do(ctx context.Context, path string, form url.Values) (body []byte, err error) {
	if c.secret == "" {
		return nil, ErrSecretNotConfigured
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to prepare request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer res.Body.Close()

	body, err = io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var envelope errorEnvelope
	err = json.Unmarshal(body, &envelope)
	if err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if envelope.Error != nil {
		return nil, &providers.APIError{StatusCode: res.StatusCode, Body: body}
	}
	return body, nil
}

// Sessions creates hosted checkout sessions
type Sessions struct {
	Client *Client
}

var _ providers.Initiator = (*Sessions)(nil)

type session struct {
	Id  string `json:"id"`
	Url string `json:"url"`
}

func (s *Sessions) CreatePayable(ctx context.Context, req *providers.PayableRequest) (p providers.Payable, err error) {
	form := url.Values{}
	form.Set("payment_method_types[]", "card")
	form.Set("mode", "payment")
	form.Set("success_url", req.SuccessUrl)
	form.Set("cancel_url", req.CancelUrl)
	form.Set("line_items[0][price_data][currency]", req.Currency)
	form.Set("line_items[0][price_data][product_data][name]", req.Description)
	form.Set("line_items[0][price_data][unit_amount]", strconv.FormatInt(req.Amount.ToMinor(), 10))
	form.Set("line_items[0][quantity]", "1")

	body, err := s.Client.do(ctx, "/v1/checkout/sessions", form)
	if err != nil {
		return p, fmt.Errorf("failed to create checkout session: %w", err)
	}

	var out session
	err = json.Unmarshal(body, &out)
	if err != nil {
		return p, fmt.Errorf("failed to decode session: %w", err)
	}

	p = providers.Payable{
		Id:          out.Id,
		RedirectUrl: out.Url,
		Raw:         body,
	}
	return p, nil
}

// Intents creates payment intents collected in-page
type Intents struct {
	Client *Client
}

var _ providers.Initiator = (*Intents)(nil)

type intent struct {
	Id           string `json:"id"`
	ClientSecret string `json:"client_secret"`
}

func (i *Intents) CreatePayable(ctx context.Context, req *providers.PayableRequest) (p providers.Payable, err error) {
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(req.Amount.ToMinor(), 10))
	form.Set("currency", req.Currency)
	form.Set("description", req.Description)
	form.Set("receipt_email", req.ReceiptEmail)

	body, err := i.Client.do(ctx, "/v1/payment_intents", form)
	if err != nil {
		return p, fmt.Errorf("failed to create payment intent: %w", err)
	}

	var out intent
	err = json.Unmarshal(body, &out)
	if err != nil {
		return p, fmt.Errorf("failed to decode intent: %w", err)
	}

	p = providers.Payable{
		Id:           out.Id,
		ClientSecret: out.ClientSecret,
		Raw:          body,
	}
	return p, nil
}
