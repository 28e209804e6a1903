package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jafarshop/storefront/internal/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClient(config.BackendConfig{
		BaseURL:        srv.URL + "/", // trailing slash is normalized away
		TimeoutSeconds: 5,
	}, zap.NewNop())
}

func TestCreateOrderParsesEnvelope(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/orders", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req OrderRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "credit_card", req.PaymentMethod)

		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": map[string]interface{}{"id": "ord_42", "status": "created", "total": 45.95},
		})
	})

	order, err := client.CreateOrder(context.Background(), OrderRequest{
		Items:         []OrderLineItem{{ProductID: "p1", Quantity: 1}},
		PaymentMethod: "credit_card",
	})
	require.NoError(t, err)
	assert.Equal(t, "ord_42", order.ID)
	assert.Equal(t, "created", order.Status)
}

func TestCreateOrderMissingID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"data": map[string]interface{}{}})
	})

	_, err := client.CreateOrder(context.Background(), OrderRequest{})
	assert.Error(t, err)
}

func TestCreateOrderSurfacesServerMessage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]string{"message": "item out of stock"})
	})

	_, err := client.CreateOrder(context.Background(), OrderRequest{})
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
	assert.Equal(t, "item out of stock", apiErr.Message)
}

func TestCreateOrderErrorFieldFallback(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "malformed order"})
	})

	_, err := client.CreateOrder(context.Background(), OrderRequest{})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "malformed order", apiErr.Message)
}

func TestCreateOrderNonJSONFailureBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "<html>boom</html>", http.StatusInternalServerError)
	})

	_, err := client.CreateOrder(context.Background(), OrderRequest{})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Empty(t, apiErr.Message)
	assert.Contains(t, apiErr.Error(), "status 500")
}

func TestProcessPaymentSuccessAndFailure(t *testing.T) {
	var got PaymentRequest
	fail := false
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/payment/process", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		if fail {
			w.WriteHeader(http.StatusPaymentRequired)
			json.NewEncoder(w).Encode(map[string]string{"message": "card declined"})
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"status": "paid"})
	})

	req := PaymentRequest{
		OrderID:       "ord_42",
		PaymentMethod: "credit_card",
		Amount:        45.95,
		Currency:      "USD",
		CardDetails: &CardDetails{
			Number:   "4242424242424242",
			ExpMonth: 12,
			ExpYear:  2025,
			CVC:      "123",
		},
	}
	require.NoError(t, client.ProcessPayment(context.Background(), req))
	assert.Equal(t, "ord_42", got.OrderID)
	require.NotNil(t, got.CardDetails)
	assert.Equal(t, 12, got.CardDetails.ExpMonth)

	fail = true
	err := client.ProcessPayment(context.Background(), req)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "card declined", apiErr.Message)
}

func TestPaymentRequestOmitsNilCardDetails(t *testing.T) {
	data, err := json.Marshal(PaymentRequest{OrderID: "ord_1", PaymentMethod: "paypal"})
	require.NoError(t, err)
	assert.NotContains(t, string(data), "cardDetails")
}

func TestContextCancellation(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.CreateOrder(ctx, OrderRequest{})
	assert.Error(t, err)
}
