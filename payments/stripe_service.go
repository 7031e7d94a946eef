package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	config "github.com/skimonitor/api/configs"
	"github.com/shopspring/decimal"
)

const stripeBaseURL = "https://api.stripe.com/v1"

// webhookTolerance bounds how old a signed webhook timestamp may be before
// the signature is rejected as a possible replay.
const webhookTolerance = 5 * time.Minute

var httpClient = &http.Client{Timeout: 10 * time.Second}

type CheckoutSession struct {
	SessionID string
	URL       string
}

type CheckoutStatus struct {
	SessionID     string
	Status        string
	PaymentStatus string
	AmountTotal   int64
	Currency      string
}

type checkoutSessionResponse struct {
	ID            string `json:"id"`
	URL           string `json:"url"`
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
	AmountTotal   int64  `json:"amount_total"`
	Currency      string `json:"currency"`
}

// CreateCheckoutSession opens a hosted checkout session with the provider.
// Amounts are converted to minor units (cents) on the wire.
func CreateCheckoutSession(amount decimal.Decimal, currency, productName, successURL, cancelURL string, metadata map[string]string) (*CheckoutSession, error) {
	apiKey := config.Config("STRIPE_API_KEY")
	if apiKey == "" {
		return nil, errors.New("STRIPE_API_KEY is not set")
	}

	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("success_url", successURL)
	form.Set("cancel_url", cancelURL)
	form.Set("line_items[0][quantity]", "1")
	form.Set("line_items[0][price_data][currency]", currency)
	form.Set("line_items[0][price_data][product_data][name]", productName)
	form.Set("line_items[0][price_data][unit_amount]", strconv.FormatInt(amount.Mul(decimal.NewFromInt(100)).IntPart(), 10))
	for k, v := range metadata {
		form.Set(fmt.Sprintf("metadata[%s]", k), v)
	}

	req, err := http.NewRequest(http.MethodPost, stripeBaseURL+"/checkout/sessions", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout request: %v", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach payment provider: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read checkout response: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Printf("Stripe API error: %s", string(respBody))
		return nil, fmt.Errorf("payment provider returned status %d", resp.StatusCode)
	}

	var session checkoutSessionResponse
	if err := json.Unmarshal(respBody, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal checkout response: %v", err)
	}

	return &CheckoutSession{SessionID: session.ID, URL: session.URL}, nil
}

// GetCheckoutStatus polls the provider for the current state of a session.
func GetCheckoutStatus(sessionID string) (*CheckoutStatus, error) {
	apiKey := config.Config("STRIPE_API_KEY")
	if apiKey == "" {
		return nil, errors.New("STRIPE_API_KEY is not set")
	}

	req, err := http.NewRequest(http.MethodGet, stripeBaseURL+"/checkout/sessions/"+url.PathEscape(sessionID), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create status request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach payment provider: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read status response: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Printf("Stripe API error: %s", string(respBody))
		return nil, fmt.Errorf("payment provider returned status %d", resp.StatusCode)
	}

	var session checkoutSessionResponse
	if err := json.Unmarshal(respBody, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal status response: %v", err)
	}

	return &CheckoutStatus{
		SessionID:     session.ID,
		Status:        session.Status,
		PaymentStatus: session.PaymentStatus,
		AmountTotal:   session.AmountTotal,
		Currency:      session.Currency,
	}, nil
}

type WebhookEvent struct {
	Type string `json:"type"`
	Data struct {
		Object struct {
			ID            string `json:"id"`
			Status        string `json:"status"`
			PaymentStatus string `json:"payment_status"`
		} `json:"object"`
	} `json:"data"`
}

// VerifyWebhookSignature checks the Stripe-Signature header
// ("t=<unix>,v1=<hex hmac>") against the raw payload.
func VerifyWebhookSignature(payload []byte, sigHeader, secret string, now time.Time) error {
	var timestamp string
	var signatures []string

	for _, part := range strings.Split(sigHeader, ",") {
		pair := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(pair) != 2 {
			continue
		}
		switch pair[0] {
		case "t":
			timestamp = pair[1]
		case "v1":
			signatures = append(signatures, pair[1])
		}
	}

	if timestamp == "" || len(signatures) == 0 {
		return errors.New("malformed signature header")
	}

	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return errors.New("malformed signature timestamp")
	}
	if now.Sub(time.Unix(ts, 0)) > webhookTolerance {
		return errors.New("signature timestamp outside tolerance")
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(timestamp))
	mac.Write([]byte("."))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))

	for _, sig := range signatures {
		if hmac.Equal([]byte(expected), []byte(sig)) {
			return nil
		}
	}
	return errors.New("no matching signature")
}

// ParseWebhookEvent decodes a verified webhook payload.
func ParseWebhookEvent(payload []byte) (*WebhookEvent, error) {
	var event WebhookEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal webhook event: %v", err)
	}
	return &event, nil
}
