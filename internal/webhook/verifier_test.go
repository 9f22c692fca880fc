package webhook

import (
	"encoding/base64"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "whsec_dGhpcy1pcy1hLXRlc3Qtc2lnbmluZy1rZXk="

func TestNewVerifier(t *testing.T) {
	_, err := NewVerifier(testSecret)
	require.NoError(t, err)

	// Prefix is optional.
	_, err = NewVerifier("dGhpcy1pcy1hLXRlc3Qtc2lnbmluZy1rZXk=")
	require.NoError(t, err)

	_, err = NewVerifier("")
	assert.Error(t, err)

	_, err = NewVerifier("whsec_!!!not-base64!!!")
	assert.Error(t, err)
}

func TestVerifyValidSignature(t *testing.T) {
	v, err := NewVerifier(testSecret)
	require.NoError(t, err)

	payload := []byte(`{"type":"user.created","data":{"id":"user_123"}}`)
	now := time.Now()
	ts := strconv.FormatInt(now.Unix(), 10)
	sig := v.Sign(payload, "msg_1", ts)

	assert.NoError(t, v.verifyAt(payload, "msg_1", ts, sig, now))
}

func TestVerifyPicksMatchFromSignatureList(t *testing.T) {
	v, err := NewVerifier(testSecret)
	require.NoError(t, err)

	payload := []byte(`{}`)
	now := time.Now()
	ts := strconv.FormatInt(now.Unix(), 10)
	good := v.Sign(payload, "msg_1", ts)
	bogus := "v1," + base64.StdEncoding.EncodeToString([]byte("wrong"))

	assert.NoError(t, v.verifyAt(payload, "msg_1", ts, bogus+" "+good, now))
}

func TestVerifyRejectsTamperedPayload(t *testing.T) {
	v, err := NewVerifier(testSecret)
	require.NoError(t, err)

	now := time.Now()
	ts := strconv.FormatInt(now.Unix(), 10)
	sig := v.Sign([]byte(`{"a":1}`), "msg_1", ts)

	err = v.verifyAt([]byte(`{"a":2}`), "msg_1", ts, sig, now)
	assert.ErrorIs(t, err, ErrNoMatchingSig)
}

func TestVerifyRejectsWrongKey(t *testing.T) {
	v, err := NewVerifier(testSecret)
	require.NoError(t, err)
	other, err := NewVerifier("whsec_YW5vdGhlci1rZXktZW50aXJlbHk=")
	require.NoError(t, err)

	payload := []byte(`{}`)
	now := time.Now()
	ts := strconv.FormatInt(now.Unix(), 10)
	sig := other.Sign(payload, "msg_1", ts)

	assert.ErrorIs(t, v.verifyAt(payload, "msg_1", ts, sig, now), ErrNoMatchingSig)
}

func TestVerifyMissingHeaders(t *testing.T) {
	v, err := NewVerifier(testSecret)
	require.NoError(t, err)

	assert.ErrorIs(t, v.Verify([]byte(`{}`), "", "123", "v1,sig"), ErrMissingHeaders)
	assert.ErrorIs(t, v.Verify([]byte(`{}`), "msg_1", "", "v1,sig"), ErrMissingHeaders)
	assert.ErrorIs(t, v.Verify([]byte(`{}`), "msg_1", "123", ""), ErrMissingHeaders)
}

func TestVerifyTimestampTolerance(t *testing.T) {
	v, err := NewVerifier(testSecret)
	require.NoError(t, err)

	payload := []byte(`{}`)
	now := time.Now()

	stale := strconv.FormatInt(now.Add(-10*time.Minute).Unix(), 10)
	sig := v.Sign(payload, "msg_1", stale)
	assert.ErrorIs(t, v.verifyAt(payload, "msg_1", stale, sig, now), ErrInvalidTimestamp)

	future := strconv.FormatInt(now.Add(10*time.Minute).Unix(), 10)
	sig = v.Sign(payload, "msg_1", future)
	assert.ErrorIs(t, v.verifyAt(payload, "msg_1", future, sig, now), ErrInvalidTimestamp)

	assert.ErrorIs(t, v.verifyAt(payload, "msg_1", "not-a-number", "v1,sig", now), ErrInvalidTimestamp)
}

func TestVerifyIgnoresUnknownVersions(t *testing.T) {
	v, err := NewVerifier(testSecret)
	require.NoError(t, err)

	payload := []byte(`{}`)
	now := time.Now()
	ts := strconv.FormatInt(now.Unix(), 10)
	sig := v.Sign(payload, "msg_1", ts)
	v2 := "v2," + sig[len("v1,"):]

	assert.ErrorIs(t, v.verifyAt(payload, "msg_1", ts, v2, now), ErrNoMatchingSig)
}
