package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"strings"
)

// Signature is the parsed form of a Stripe-Signature header:
// t=<unix-ts>,v1=<hex>[,v1=<hex>...]
type Signature struct {
	// Signing timestamp
	Timestamp string
	// Candidate signatures. More than one appears during secret rotation
	Candidates []string
}

// ParseSignature groups the comma separated key=value pairs of the header.
// Keys other than t and v1 are ignored
func ParseSignature(header string) (sig Signature) {
	for _, part := range strings.Split(header, ",") {
		key, value, found := strings.Cut(part, "=")
		if !found || key == "" || value == "" {
			continue
		}
		switch key {
		case "t":
			if sig.Timestamp == "" {
				sig.Timestamp = value
			}
		case "v1":
			sig.Candidates = append(sig.Candidates, value)
		}
	}
	return sig
}

// Sign computes the hex encoded HMAC-SHA256 of "{timestamp}.{payload}"
func Sign(secret, timestamp string, payload []byte) (signature string) {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(timestamp))
	mac.Write([]byte{'.'})
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify reports whether any v1 candidate in the header matches the expected
// signature of the payload. Candidates are compared in constant time;
// length mismatched candidates are skipped without comparing content
func Verify(header string, payload []byte, secret string) (ok bool) {
	sig := ParseSignature(header)
	if sig.Timestamp == "" || len(sig.Candidates) == 0 {
		return false
	}

	expected := []byte(Sign(secret, sig.Timestamp, payload))
	for _, candidate := range sig.Candidates {
		if len(candidate) != len(expected) {
			continue
		}
		if subtle.ConstantTimeCompare([]byte(candidate), expected) == 1 {
			return true
		}
	}
	return false
}

// Event is the outer envelope of a provider notification
type Event struct {
	Type string `json:"type"`
	Data struct {
		Object json.RawMessage `json:"object"`
	} `json:"data"`
}
