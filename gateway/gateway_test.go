package gateway

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignAndVerify(t *testing.T) {
	sig := SignPayload("secret", "order_1", "pay_1")
	assert.True(t, verifyHMAC("secret", "order_1", "pay_1", sig))
	assert.False(t, verifyHMAC("secret", "order_1", "pay_1", sig+"x"))
	assert.False(t, verifyHMAC("secret", "order_2", "pay_1", sig))
	assert.False(t, verifyHMAC("other", "order_1", "pay_1", sig))

	// surrounding whitespace from a sloppy client is tolerated
	assert.True(t, verifyHMAC("secret", "order_1", "pay_1", " "+sig+"\n"))
}

func TestHTTPClientCreateOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/orders", r.URL.Path)
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "key_id", user)
		assert.Equal(t, "key_secret", pass)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, 2000.0, body["amount"])
		assert.Equal(t, "booking_1", body["receipt"])

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id": "order_abc", "amount": 2000.0, "currency": "THB",
		})
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL, KeyID: "key_id", KeySecret: "key_secret"})
	order, err := client.CreateOrder(2000, "booking_1")
	require.NoError(t, err)
	assert.Equal(t, "order_abc", order.OrderID)
	assert.Equal(t, 2000.0, order.Amount)
	assert.Equal(t, "THB", order.Currency)
}

func TestHTTPClientCreateOrderErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL, KeyID: "bad", KeySecret: "bad"})
	_, err := client.CreateOrder(100, "booking_2")
	assert.Error(t, err)
}

func TestMockClient(t *testing.T) {
	client := NewMockClient()

	a, err := client.CreateOrder(500, "booking_1")
	require.NoError(t, err)
	b, err := client.CreateOrder(500, "booking_2")
	require.NoError(t, err)
	assert.NotEqual(t, a.OrderID, b.OrderID)

	sig := SignPayload("mock", a.OrderID, "pay_1")
	assert.True(t, client.VerifySignature(a.OrderID, "pay_1", sig))
	assert.False(t, client.VerifySignature(a.OrderID, "pay_1", "bogus"))
}
