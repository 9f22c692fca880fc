// Package webhook verifies the signatures the identity provider attaches
// to its webhook deliveries (Svix scheme: HMAC-SHA256 over
// "id.timestamp.payload", base64, versioned signature list).
package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strconv"
	"strings"
	"time"
)

const (
	secretPrefix = "whsec_"

	// Deliveries older or newer than this are rejected to limit replay.
	timestampTolerance = 5 * time.Minute
)

var (
	ErrMissingHeaders   = errors.New("webhook headers missing")
	ErrInvalidTimestamp = errors.New("webhook timestamp invalid or outside tolerance")
	ErrNoMatchingSig    = errors.New("no matching webhook signature")
)

// Verifier checks webhook deliveries against the shared signing secret.
type Verifier struct {
	key []byte
}

// NewVerifier parses the provider's signing secret, with or without the
// "whsec_" prefix.
func NewVerifier(secret string) (*Verifier, error) {
	if secret == "" {
		return nil, errors.New("webhook signing secret is required")
	}
	key, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(secret, secretPrefix))
	if err != nil {
		return nil, errors.New("webhook signing secret is not valid base64")
	}
	return &Verifier{key: key}, nil
}

// Verify validates one delivery. msgID, timestamp and signatures come from
// the svix-id, svix-timestamp and svix-signature headers; payload is the
// raw request body. The signature header may carry several space-separated
// "v1,<base64>" entries; any single match passes.
func (v *Verifier) Verify(payload []byte, msgID, timestamp, signatures string) error {
	return v.verifyAt(payload, msgID, timestamp, signatures, time.Now())
}

func (v *Verifier) verifyAt(payload []byte, msgID, timestamp, signatures string, now time.Time) error {
	if msgID == "" || timestamp == "" || signatures == "" {
		return ErrMissingHeaders
	}

	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return ErrInvalidTimestamp
	}
	sent := time.Unix(ts, 0)
	if sent.Before(now.Add(-timestampTolerance)) || sent.After(now.Add(timestampTolerance)) {
		return ErrInvalidTimestamp
	}

	mac := hmac.New(sha256.New, v.key)
	mac.Write([]byte(msgID))
	mac.Write([]byte("."))
	mac.Write([]byte(timestamp))
	mac.Write([]byte("."))
	mac.Write(payload)
	expected := mac.Sum(nil)

	for _, entry := range strings.Fields(signatures) {
		version, sig, found := strings.Cut(entry, ",")
		if !found || version != "v1" {
			continue
		}
		decoded, err := base64.StdEncoding.DecodeString(sig)
		if err != nil {
			continue
		}
		if hmac.Equal(decoded, expected) {
			return nil
		}
	}
	return ErrNoMatchingSig
}

// Sign produces the "v1,<base64>" signature for a delivery. Used by tests
// and local tooling that replays webhook events.
func (v *Verifier) Sign(payload []byte, msgID, timestamp string) string {
	mac := hmac.New(sha256.New, v.key)
	mac.Write([]byte(msgID))
	mac.Write([]byte("."))
	mac.Write([]byte(timestamp))
	mac.Write([]byte("."))
	mac.Write(payload)
	return "v1," + base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
