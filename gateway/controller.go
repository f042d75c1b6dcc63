package gateway

import (
	"errors"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/opanaf/donations/intake"
	"github.com/opanaf/donations/providers"
)

var (
	ErrNoWebhookSecret = errors.New("webhook secret not configured")
	ErrBadSignature    = errors.New("signature verification failed")
	ErrBadPayload      = errors.New("invalid payload")
)

type Controller struct {
	checkout providers.Initiator
	intents  providers.Initiator
	orders   providers.Initiator
	intake   intake.Sink
	db       *badger.DB
	siteUrl  string
	secret   string
}

type Config struct {
	// Initiator for hosted checkout sessions
	Checkout providers.Initiator
	// Initiator for in-page payment intents
	Intents providers.Initiator
	// Initiator for capture intent orders on the alternate provider
	Orders providers.Initiator
	// Sink receiving completed donation records
	Intake intake.Sink
	// Optional processed event ledger. Nil disables deduplication
	DB *badger.DB
	// Public site origin, used for default redirect URLs
	SiteUrl string
	// Secret verifying inbound webhook signatures
	WebhookSecret string
}

func New(config Config) (ctrl Controller) {
	ctrl.checkout = config.Checkout
	ctrl.intents = config.Intents
	ctrl.orders = config.Orders
	ctrl.intake = config.Intake
	ctrl.db = config.DB
	ctrl.siteUrl = config.SiteUrl
	ctrl.secret = config.WebhookSecret

	return ctrl
}
