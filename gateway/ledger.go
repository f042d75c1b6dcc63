package gateway

import (
	"errors"
	"fmt"
	"time"

	badger "github.com/dgraph-io/badger/v4"
)

func EventKey(transactionId string) (key []byte) {
	return []byte(fmt.Sprintf("/events/%s", transactionId))
}

// markProcessed records the transaction in the ledger and reports whether it
// was already there. Without a configured ledger every delivery is new,
// matching the provider's at-least-once semantics
func (c *Controller) markProcessed(transactionId string) (seen bool, err error) {
	if c.db == nil || transactionId == "" {
		return false, nil
	}

	err = c.db.Update(func(txn *badger.Txn) (err error) {
		key := EventKey(transactionId)

		_, err = txn.Get(key)
		switch {
		case err == nil:
			seen = true
			return nil
		case errors.Is(err, badger.ErrKeyNotFound):
		default:
			return fmt.Errorf("failed to query event ledger: %w", err)
		}

		err = txn.Set(key, []byte(time.Now().UTC().Format(time.RFC3339)))
		if err != nil {
			return fmt.Errorf("failed to record event: %w", err)
		}
		return nil
	})
	if err != nil {
		return seen, fmt.Errorf("failed to update ledger: %w", err)
	}
	return seen, nil
}
