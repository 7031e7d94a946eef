package payments_test

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/skimonitor/api/payments"
	"github.com/stretchr/testify/require"
)

const webhookSecret = "whsec_test_secret"

func signPayload(payload []byte, ts time.Time) string {
	mac := hmac.New(sha256.New, []byte(webhookSecret))
	fmt.Fprintf(mac, "%d.", ts.Unix())
	mac.Write(payload)
	return fmt.Sprintf("t=%d,v1=%s", ts.Unix(), hex.EncodeToString(mac.Sum(nil)))
}

func TestVerifyWebhookSignature(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	payload := []byte(`{"type":"checkout.session.completed"}`)

	header := signPayload(payload, now)
	require.NoError(t, payments.VerifyWebhookSignature(payload, header, webhookSecret, now))
}

func TestVerifyWebhookSignatureRejectsTamperedPayload(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	header := signPayload([]byte(`{"amount":100}`), now)

	err := payments.VerifyWebhookSignature([]byte(`{"amount":999}`), header, webhookSecret, now)
	require.Error(t, err)
}

func TestVerifyWebhookSignatureRejectsWrongSecret(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	payload := []byte(`{}`)
	header := signPayload(payload, now)

	err := payments.VerifyWebhookSignature(payload, header, "whsec_other", now)
	require.Error(t, err)
}

func TestVerifyWebhookSignatureRejectsStaleTimestamp(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	payload := []byte(`{}`)
	header := signPayload(payload, now.Add(-6*time.Minute))

	err := payments.VerifyWebhookSignature(payload, header, webhookSecret, now)
	require.Error(t, err)
}

func TestVerifyWebhookSignatureRejectsMalformedHeader(t *testing.T) {
	now := time.Now()
	for _, header := range []string{"", "t=abc,v1=00", "v1=deadbeef", "t=12345"} {
		err := payments.VerifyWebhookSignature([]byte(`{}`), header, webhookSecret, now)
		require.Error(t, err, "header %q should be rejected", header)
	}
}

func TestParseWebhookEvent(t *testing.T) {
	payload := []byte(`{
		"type": "checkout.session.completed",
		"data": {"object": {"id": "cs_test_123", "status": "complete", "payment_status": "paid"}}
	}`)

	event, err := payments.ParseWebhookEvent(payload)
	require.NoError(t, err)
	require.Equal(t, "checkout.session.completed", event.Type)
	require.Equal(t, "cs_test_123", event.Data.Object.ID)
	require.Equal(t, "paid", event.Data.Object.PaymentStatus)
}
