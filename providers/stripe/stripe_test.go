package stripe_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/opanaf/donations/providers"
	"github.com/opanaf/donations/providers/stripe"
	"github.com/stretchr/testify/assert"

	"github.com/opanaf/donations/utils"
)

func donation(amount string) (req providers.PayableRequest) {
	req = providers.PayableRequest{
		Currency:     "usd",
		Description:  "OPANAF donation",
		ReceiptEmail: "donor@example.org",
		SuccessUrl:   "https://example.org/ok",
		CancelUrl:    "https://example.org/no",
	}
	req.Amount.FromString(amount)
	return req
}

func Test_Sessions(t *testing.T) {
	t.Run("Succeed", func(t *testing.T) {
		assertions := assert.New(t)

		var received map[string][]string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assertions.Equal(http.MethodPost, r.Method)
			assertions.Equal("/v1/checkout/sessions", r.URL.Path)
			assertions.Equal("Bearer sk_test_123", r.Header.Get("Authorization"))

			r.ParseForm()
			received = r.PostForm
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"id":"cs_test_1","url":"https://checkout.stripe.com/pay/cs_test_1"}`))
		}))
		defer server.Close()

		client := stripe.New(stripe.Config{
			Secret:  "sk_test_123",
			BaseUrl: server.URL,
			Client:  server.Client(),
		})
		sessions := stripe.Sessions{Client: client}

		ctx, cancel := utils.NewContext()
		defer cancel()

		req := donation("25")
		payable, err := sessions.CreatePayable(ctx, &req)
		assertions.Nil(err, "failed to create session")
		assertions.Equal("cs_test_1", payable.Id)
		assertions.Equal("https://checkout.stripe.com/pay/cs_test_1", payable.RedirectUrl)

		assertions.Equal([]string{"2500"}, received["line_items[0][price_data][unit_amount]"], "amount must be converted to minor units")
		assertions.Equal([]string{"usd"}, received["line_items[0][price_data][currency]"])
		assertions.Equal([]string{"OPANAF donation"}, received["line_items[0][price_data][product_data][name]"])
		assertions.Equal([]string{"1"}, received["line_items[0][quantity]"])
		assertions.Equal([]string{"card"}, received["payment_method_types[]"])
		assertions.Equal([]string{"payment"}, received["mode"])
		assertions.Equal([]string{"https://example.org/ok"}, received["success_url"])
		assertions.Equal([]string{"https://example.org/no"}, received["cancel_url"])
	})
	t.Run("ProviderError", func(t *testing.T) {
		assertions := assert.New(t)

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":{"type":"invalid_request_error","message":"Invalid currency"}}`))
		}))
		defer server.Close()

		client := stripe.New(stripe.Config{
			Secret:  "sk_test_123",
			BaseUrl: server.URL,
			Client:  server.Client(),
		})
		sessions := stripe.Sessions{Client: client}

		ctx, cancel := utils.NewContext()
		defer cancel()

		req := donation("25")
		_, err := sessions.CreatePayable(ctx, &req)
		assertions.NotNil(err, "expected provider error")

		var apiErr *providers.APIError
		assertions.ErrorAs(err, &apiErr, "expected an APIError")
		assertions.Contains(string(apiErr.Body), "Invalid currency")
	})
	t.Run("NoSecret", func(t *testing.T) {
		assertions := assert.New(t)

		var calls int
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
		}))
		defer server.Close()

		client := stripe.New(stripe.Config{
			BaseUrl: server.URL,
			Client:  server.Client(),
		})
		sessions := stripe.Sessions{Client: client}

		ctx, cancel := utils.NewContext()
		defer cancel()

		req := donation("25")
		_, err := sessions.CreatePayable(ctx, &req)
		assertions.ErrorIs(err, stripe.ErrSecretNotConfigured)
		assertions.Zero(calls, "must not reach the network without a secret")
	})
}

func Test_Intents(t *testing.T) {
	t.Run("Succeed", func(t *testing.T) {
		assertions := assert.New(t)

		var received map[string][]string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assertions.Equal("/v1/payment_intents", r.URL.Path)

			r.ParseForm()
			received = r.PostForm
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"id":"pi_test_1","client_secret":"pi_test_1_secret_x"}`))
		}))
		defer server.Close()

		client := stripe.New(stripe.Config{
			Secret:  "sk_test_123",
			BaseUrl: server.URL,
			Client:  server.Client(),
		})
		intents := stripe.Intents{Client: client}

		ctx, cancel := utils.NewContext()
		defer cancel()

		req := donation("10.50")
		payable, err := intents.CreatePayable(ctx, &req)
		assertions.Nil(err, "failed to create intent")
		assertions.Equal("pi_test_1", payable.Id)
		assertions.Equal("pi_test_1_secret_x", payable.ClientSecret)

		assertions.Equal([]string{"1050"}, received["amount"])
		assertions.Equal([]string{"usd"}, received["currency"])
		assertions.Equal([]string{"donor@example.org"}, received["receipt_email"])
	})
	t.Run("NoSecret", func(t *testing.T) {
		assertions := assert.New(t)

		intents := stripe.Intents{Client: stripe.New(stripe.Config{})}

		ctx, cancel := utils.NewContext()
		defer cancel()

		req := donation("10")
		_, err := intents.CreatePayable(ctx, &req)
		assertions.ErrorIs(err, stripe.ErrSecretNotConfigured)
	})
}
