package trojan

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SAFFEMIRZA/dex-bot/internal/service/exchange"
	"github.com/SAFFEMIRZA/dex-bot/pkg/decimalx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_PlaceOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer trojan-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "0xabc", body["token_address"])
		assert.Equal(t, "buy", body["side"])
		assert.InDelta(t, 0.01, body["amount"], 1e-12)

		_, _ = w.Write([]byte(`{"order_id": "T-1", "status": "submitted"}`))
	}))
	defer srv.Close()

	svc := NewService(srv.URL, "trojan-key")
	confirmation, err := svc.PlaceOrder(context.Background(), exchange.OrderReq{
		TokenAddress: "0xabc",
		Symbol:       "PEPE",
		Side:         exchange.Buy,
		Amount:       decimalx.MustFromString("0.01"),
	})
	require.NoError(t, err)
	assert.Equal(t, "T-1", confirmation.Id)
	assert.JSONEq(t, `{"order_id": "T-1", "status": "submitted"}`, string(confirmation.Raw))
}

func TestService_PlaceOrder_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": "insufficient balance"}`))
	}))
	defer srv.Close()

	_, err := NewService(srv.URL, "k").PlaceOrder(context.Background(), exchange.OrderReq{
		TokenAddress: "0xabc",
		Side:         exchange.Buy,
		Amount:       decimalx.MustFromString("0.01"),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, exchange.ErrOrderRejected)
	assert.Contains(t, err.Error(), "insufficient balance")
}

func TestExtractOrderId(t *testing.T) {
	assert.Equal(t, "42", extractOrderId(json.RawMessage(`{"id": 42}`)))
	assert.Equal(t, "abc", extractOrderId(json.RawMessage(`{"orderId": "abc"}`)))
	assert.Equal(t, "", extractOrderId(json.RawMessage(`{"status": "ok"}`)))
	assert.Equal(t, "", extractOrderId(json.RawMessage(`[1, 2]`)))
}
