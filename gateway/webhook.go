package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/opanaf/donations/intake"
	"github.com/opanaf/donations/providers/stripe"
	"github.com/opanaf/donations/utils"
	"github.com/opanaf/donations/webhook"
)

const (
	// Fallback donor name when the event carries none
	AnonymousDonor = "Stripe Donor"

	StatusCompleted = "completed"

	MethodCheckout      = "stripe-checkout"
	MethodPaymentIntent = "stripe-payment-intent"
)

// HandleEvent verifies and processes one inbound provider notification.
// fallbackHost is the inbound request's host, used as the intake target when
// no site URL is configured. A nil return means the event is acknowledged,
// including events of types this service does not react to
func (c *Controller) HandleEvent(ctx context.Context, sigHeader string, payload []byte, fallbackHost string) (err error) {
	if c.secret == "" {
		return ErrNoWebhookSecret
	}

	if !webhook.Verify(sigHeader, payload, c.secret) {
		return ErrBadSignature
	}

	var event webhook.Event
	err = json.Unmarshal(payload, &event)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBadPayload, err)
	}

	record, ok, err := c.recordFromEvent(&event)
	if err != nil {
		return fmt.Errorf("failed to process event %q: %w", event.Type, err)
	}
	if !ok {
		return nil
	}

	seen, err := c.markProcessed(record.TransactionId)
	if err != nil {
		// Ledger trouble must not drop the donation record
		log.Println("failed to update event ledger:", err)
	}
	if seen {
		log.Println("skipping already processed transaction:", record.TransactionId)
		return nil
	}

	// Fire and forget. The provider gets its acknowledgement no matter
	// what happens to the submission
	go func() {
		ctx, cancel := utils.NewContext()
		defer cancel()

		err := c.intake.Submit(ctx, fallbackHost, &record)
		if err != nil {
			log.Println("failed to submit donation record:", err)
		}
	}()

	return nil
}

// recordFromEvent maps a recognized event to a donation record.
// ok is false for event types this service does not react to
func (c *Controller) recordFromEvent(event *webhook.Event) (record intake.Record, ok bool, err error) {
	switch event.Type {
	case stripe.EventCheckoutSessionCompleted:
		var session stripe.Session
		err = json.Unmarshal(event.Data.Object, &session)
		if err != nil {
			return record, false, fmt.Errorf("failed to decode session: %w", err)
		}

		minor := session.AmountTotal
		if minor == 0 && len(session.DisplayItems) > 0 {
			minor = session.DisplayItems[0].Amount
		}

		record = intake.Record{
			DonorName:     AnonymousDonor,
			PaymentMethod: MethodCheckout,
			TransactionId: session.Id,
			PaymentStatus: StatusCompleted,
			Timestamp:     time.Now(),
		}
		record.Amount.FromMinor(minor)
		record.Currency = currencyOrDefault(session.Currency)

		if session.CustomerDetails != nil && session.CustomerDetails.Name != "" {
			record.DonorName = session.CustomerDetails.Name
		} else if name := session.Metadata["donor_name"]; name != "" {
			record.DonorName = name
		}
		if session.CustomerDetails != nil && session.CustomerDetails.Email != "" {
			record.DonorEmail = session.CustomerDetails.Email
		} else {
			record.DonorEmail = session.CustomerEmail
		}

		return record, true, nil

	case stripe.EventPaymentIntentSucceeded:
		var pi stripe.Intent
		err = json.Unmarshal(event.Data.Object, &pi)
		if err != nil {
			return record, false, fmt.Errorf("failed to decode intent: %w", err)
		}

		record = intake.Record{
			DonorName:     AnonymousDonor,
			PaymentMethod: MethodPaymentIntent,
			TransactionId: pi.Id,
			PaymentStatus: StatusCompleted,
			Timestamp:     time.Now(),
		}
		record.Amount.FromMinor(pi.Amount)
		record.Currency = currencyOrDefault(pi.Currency)

		if name := pi.Metadata["donor_name"]; name != "" {
			record.DonorName = name
		}
		if pi.ReceiptEmail != "" {
			record.DonorEmail = pi.ReceiptEmail
		} else {
			record.DonorEmail = pi.Metadata["donor_email"]
		}

		return record, true, nil
	}

	return record, false, nil
}

func currencyOrDefault(currency string) string {
	if currency == "" {
		return DefaultCurrency
	}
	return currency
}
