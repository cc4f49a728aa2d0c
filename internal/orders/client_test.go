package orders

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/trendythreads/storefront/internal/config"
	"github.com/trendythreads/storefront/internal/domain"
)

func testRequest() CreateOrderRequest {
	return CreateOrderRequest{
		FullName:    "Jane Doe",
		Email:       "jane@example.com",
		Address:     "House 1, Road 2",
		PhoneNumber: "+8801712345678",
		District:    "Dhaka",
		Product: domain.ProductSnapshot{
			ID:          "prod-1",
			Title:       "Classic Tee",
			NormalPrice: 1200,
		},
		Size: "M",
	}
}

func newTestClient(baseURL string) *Client {
	return NewClient(config.CheckoutConfig{OrderAPIBaseURL: baseURL, CountryCode: "+880"}, zap.NewNop())
}

func TestClient_CreateOrderSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/orders", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		rw.WriteHeader(http.StatusCreated)
		json.NewEncoder(rw).Encode(CreateOrderResponse{Success: true, OrderID: "order-1"})
	}))
	defer srv.Close()

	resp, err := newTestClient(srv.URL).CreateOrder(context.Background(), testRequest())

	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "order-1", resp.OrderID)
}

func TestClient_CreateOrderBusinessRejection(t *testing.T) {
	// A parseable rejection is not a transport error; the caller reads
	// the Success flag and message.
	srv := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		rw.WriteHeader(http.StatusConflict)
		json.NewEncoder(rw).Encode(CreateOrderResponse{Success: false, Message: "Duplicate order"})
	}))
	defer srv.Close()

	resp, err := newTestClient(srv.URL).CreateOrder(context.Background(), testRequest())

	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, "Duplicate order", resp.Message)
}

func TestClient_CreateOrderUnparseableBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		rw.WriteHeader(http.StatusInternalServerError)
		rw.Write([]byte("<html>oops</html>"))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).CreateOrder(context.Background(), testRequest())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "order API error")
}

func TestClient_CreateOrderTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	_, err := newTestClient(srv.URL).CreateOrder(context.Background(), testRequest())
	require.Error(t, err)
}

func TestClient_MissingBaseURL(t *testing.T) {
	_, err := newTestClient("").CreateOrder(context.Background(), testRequest())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestClient_TrailingSlashTrimmed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/orders", r.URL.Path)
		json.NewEncoder(rw).Encode(CreateOrderResponse{Success: true})
	}))
	defer srv.Close()

	resp, err := newTestClient(srv.URL + "/").CreateOrder(context.Background(), testRequest())
	require.NoError(t, err)
	assert.True(t, resp.Success)
}
