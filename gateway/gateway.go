// Package gateway is the payment-gateway collaborator boundary. The
// booking core only ever sees the Client interface; signature mechanics
// and the provider's HTTP API stay on this side of the line.
package gateway

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"
)

// Order is the provider-side order a guest pays against.
type Order struct {
	OrderID  string  `json:"orderId"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// Client is what the booking core consumes. CreateOrder registers an
// amount with the provider before redirecting the guest; VerifySignature
// checks the callback signature after payment.
type Client interface {
	CreateOrder(amount float64, receiptID string) (*Order, error)
	VerifySignature(orderID, paymentID, signature string) bool
}

// Config comes from the environment; see NewClientFromEnv in main.
type Config struct {
	BaseURL   string
	KeyID     string
	KeySecret string
	Currency  string
}

// httpClient talks to the provider's order API and verifies callback
// signatures as HMAC-SHA256 over "orderID|paymentID" with the key
// secret, the scheme checkout providers document for server-side
// verification.
type httpClient struct {
	cfg  Config
	http *http.Client
}

func NewClient(cfg Config) Client {
	if cfg.Currency == "" {
		cfg.Currency = "THB"
	}
	return &httpClient{
		cfg:  cfg,
		http: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *httpClient) CreateOrder(amount float64, receiptID string) (*Order, error) {
	payload := map[string]interface{}{
		"amount":   amount,
		"currency": c.cfg.Currency,
		"receipt":  receiptID,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	url := strings.TrimRight(c.cfg.BaseURL, "/") + "/v1/orders"
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(c.cfg.KeyID, c.cfg.KeySecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gateway order request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("gateway order request returned status %d", resp.StatusCode)
	}

	var out struct {
		ID       string  `json:"id"`
		Amount   float64 `json:"amount"`
		Currency string  `json:"currency"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("gateway order response decode failed: %w", err)
	}

	return &Order{OrderID: out.ID, Amount: out.Amount, Currency: out.Currency}, nil
}

func (c *httpClient) VerifySignature(orderID, paymentID, signature string) bool {
	return verifyHMAC(c.cfg.KeySecret, orderID, paymentID, signature)
}

func verifyHMAC(secret, orderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(strings.TrimSpace(signature)))
}

// SignPayload produces the signature VerifySignature expects. Exported
// for tests and for sandbox tooling that simulates provider callbacks.
func SignPayload(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// mockClient stands in when gateway credentials are absent, the same
// way unconfigured SMTP falls back to logging. Orders get a fake id and
// every well-formed signature check uses the "mock" secret.
type mockClient struct {
	seq int
}

func NewMockClient() Client {
	return &mockClient{}
}

func (m *mockClient) CreateOrder(amount float64, receiptID string) (*Order, error) {
	m.seq++
	order := &Order{
		OrderID:  fmt.Sprintf("order_mock_%d_%d", time.Now().Unix(), m.seq),
		Amount:   amount,
		Currency: "THB",
	}
	log.Printf("[MOCK GATEWAY] created order %s amount %.2f receipt %s", order.OrderID, amount, receiptID)
	return order, nil
}

func (m *mockClient) VerifySignature(orderID, paymentID, signature string) bool {
	return verifyHMAC("mock", orderID, paymentID, signature)
}
