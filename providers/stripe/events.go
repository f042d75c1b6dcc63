package stripe

// Webhook event types this service reacts to
const (
	EventCheckoutSessionCompleted = "checkout.session.completed"
	EventPaymentIntentSucceeded   = "payment_intent.succeeded"
)

type (
	CustomerDetails struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	DisplayItem struct {
		Amount int64 `json:"amount"`
	}
	// Session is the checkout session object carried by a
	// checkout.session.completed event
	Session struct {
		Id string `json:"id"`
		// Amount in minor units
		AmountTotal int64  `json:"amount_total"`
		Currency    string `json:"currency"`
		// Legacy API versions report the amount per line item instead
		DisplayItems    []DisplayItem     `json:"display_items"`
		CustomerDetails *CustomerDetails  `json:"customer_details"`
		CustomerEmail   string            `json:"customer_email"`
		Metadata        map[string]string `json:"metadata"`
	}
	// Intent is the payment intent object carried by a
	// payment_intent.succeeded event
	Intent struct {
		Id string `json:"id"`
		// Amount in minor units
		Amount       int64             `json:"amount"`
		Currency     string            `json:"currency"`
		ReceiptEmail string            `json:"receipt_email"`
		Metadata     map[string]string `json:"metadata"`
	}
)
