package router

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/opanaf/donations/gateway"
	"github.com/opanaf/donations/providers"
	"github.com/opanaf/donations/providers/stripe"
)

// Manages the entire HTTP surface of the donations gateway
type Router struct {
	// Gateway controller
	Gateway *gateway.Controller
	// Public configuration served to the browser
	Public PublicConfig
	// Base Gin Group to use for routing
	Base gin.IRoutes
}

const (
	ConfigPath          = "/api/config"
	OrdersPath          = "/api/paypal/orders"
	CheckoutSessionPath = "/api/stripe/checkout-sessions"
	PaymentIntentPath   = "/api/stripe/payment-intents"
	WebhookPath         = "/api/stripe/webhook"

	SignatureHeader = "Stripe-Signature"
)

// NoMethod answers requests with an unsupported method. Install it with
// gin's HandleMethodNotAllowed enabled
func NoMethod(ctx *gin.Context) {
	ctx.String(http.StatusMethodNotAllowed, "Method not allowed")
}

// RequestId tags every request with an identifier for log correlation
func RequestId() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id := uuid.NewString()
		ctx.Header("X-Request-Id", id)
		ctx.Next()

		if len(ctx.Errors) > 0 {
			log.Println("ERROR|REQUEST", id, ctx.Request.Method, ctx.Request.URL.Path, ctx.Errors.String())
		}
	}
}

func (r *Router) config(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, r.Public)
}

// bind decodes the request body, treating an absent body as an empty object
func (r *Router) bind(ctx *gin.Context, out any) (ok bool) {
	payload, err := io.ReadAll(ctx.Request.Body)
	if err != nil {
		ctx.String(http.StatusInternalServerError, "Server error")
		return false
	}
	if len(payload) == 0 {
		payload = []byte("{}")
	}

	err = json.Unmarshal(payload, out)
	if err != nil {
		ctx.String(http.StatusBadRequest, "Invalid payload")
		return false
	}
	return true
}

func (r *Router) createOrder(ctx *gin.Context) {
	var donation Donation
	if !r.bind(ctx, &donation) {
		return
	}

	req := donation.ToRequest()
	payable, err := r.Gateway.CreateOrder(ctx, &req)
	if err != nil {
		log.Println("ERROR|PAYPAL|ORDER", err)
		ctx.String(http.StatusInternalServerError, err.Error())
		return
	}

	ctx.Data(http.StatusOK, "application/json", payable.Raw)
}

func (r *Router) createCheckoutSession(ctx *gin.Context) {
	var donation Donation
	if !r.bind(ctx, &donation) {
		return
	}

	req := donation.ToRequest()
	payable, err := r.Gateway.CreateCheckoutSession(ctx, &req)
	if err != nil {
		r.initiatorError(ctx, "SESSION", err)
		return
	}

	out := SessionFromPayable(&payable)
	ctx.JSON(http.StatusOK, &out)
}

func (r *Router) createPaymentIntent(ctx *gin.Context) {
	var donation Donation
	if !r.bind(ctx, &donation) {
		return
	}

	req := donation.ToRequest()
	payable, err := r.Gateway.CreatePaymentIntent(ctx, &req)
	if err != nil {
		r.initiatorError(ctx, "INTENT", err)
		return
	}

	out := IntentFromPayable(&payable)
	ctx.JSON(http.StatusOK, &out)
}

// initiatorError maps Stripe facing failures: misconfiguration fails before
// any network call with 500, provider reported errors surface as 400 with
// the raw error body, anything else is a plain 500
func (r *Router) initiatorError(ctx *gin.Context, topic string, err error) {
	log.Println("ERROR|STRIPE|"+topic, err)

	var apiErr *providers.APIError
	switch {
	case errors.Is(err, stripe.ErrSecretNotConfigured):
		ctx.String(http.StatusInternalServerError, "Stripe secret not configured")
	case errors.As(err, &apiErr):
		ctx.String(http.StatusBadRequest, string(apiErr.Body))
	default:
		ctx.String(http.StatusInternalServerError, err.Error())
	}
}

func (r *Router) stripeWebhook(ctx *gin.Context) {
	payload, err := ctx.GetRawData()
	if err != nil {
		ctx.String(http.StatusInternalServerError, "Server error")
		return
	}

	err = r.Gateway.HandleEvent(ctx, ctx.GetHeader(SignatureHeader), payload, ctx.Request.Host)
	switch {
	case err == nil:
		ctx.String(http.StatusOK, "Received")
	case errors.Is(err, gateway.ErrNoWebhookSecret):
		log.Println("ERROR|WEBHOOK|CONFIG", err)
		ctx.String(http.StatusInternalServerError, "Webhook secret not configured")
	case errors.Is(err, gateway.ErrBadSignature):
		log.Println("WARN|WEBHOOK|SIGNATURE", err)
		ctx.String(http.StatusBadRequest, "Signature verification failed")
	case errors.Is(err, gateway.ErrBadPayload):
		log.Println("WARN|WEBHOOK|PAYLOAD", err)
		ctx.String(http.StatusBadRequest, "Invalid payload")
	default:
		log.Println("ERROR|WEBHOOK|EVENT", err)
		ctx.String(http.StatusInternalServerError, "Server error")
	}
}

// Register routes in the Gin engine
func (r *Router) Register() {
	r.Base.Any(ConfigPath, r.config)
	r.Base.POST(OrdersPath, r.createOrder)
	r.Base.POST(CheckoutSessionPath, r.createCheckoutSession)
	r.Base.POST(PaymentIntentPath, r.createPaymentIntent)
	r.Base.POST(WebhookPath, r.stripeWebhook)
}
