package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/trendythreads/storefront/internal/config"
	"github.com/trendythreads/storefront/internal/domain"
	"github.com/trendythreads/storefront/internal/repository"
	"github.com/trendythreads/storefront/pkg/errors"
)

const testAPIKey = "test-admin-key"

type fakeOrderRepo struct {
	orders map[uuid.UUID]*domain.Order
}

func (f *fakeOrderRepo) Create(_ context.Context, order *domain.Order) error {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	f.orders[order.ID] = order
	return nil
}

func (f *fakeOrderRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Order, error) {
	order, ok := f.orders[id]
	if !ok {
		return nil, &errors.ErrNotFound{Resource: "order", ID: id.String()}
	}
	return order, nil
}

func (f *fakeOrderRepo) List(_ context.Context, status *domain.OrderStatus, limit, offset int) ([]*domain.Order, error) {
	var out []*domain.Order
	for _, order := range f.orders {
		if status != nil && order.Status != *status {
			continue
		}
		out = append(out, order)
	}
	return out, nil
}

func (f *fakeOrderRepo) UpdateStatus(_ context.Context, id uuid.UUID, status domain.OrderStatus) error {
	order, ok := f.orders[id]
	if !ok {
		return &errors.ErrNotFound{Resource: "order", ID: id.String()}
	}
	order.Status = status
	return nil
}

type fakeEventRepo struct {
	events []*domain.OrderEvent
}

func (f *fakeEventRepo) Create(_ context.Context, event *domain.OrderEvent) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	f.events = append(f.events, event)
	return nil
}

func (f *fakeEventRepo) ListByOrderID(_ context.Context, orderID uuid.UUID) ([]*domain.OrderEvent, error) {
	var out []*domain.OrderEvent
	for _, event := range f.events {
		if event.OrderID == orderID {
			out = append(out, event)
		}
	}
	return out, nil
}

type fakeAdminRepo struct{}

func (f *fakeAdminRepo) Create(_ context.Context, admin *domain.Admin) error { return nil }

func (f *fakeAdminRepo) GetByAPIKey(_ context.Context, apiKey string) (*domain.Admin, error) {
	if apiKey != testAPIKey {
		return nil, &errors.ErrUnauthorized{Message: "invalid API key"}
	}
	return &domain.Admin{ID: uuid.New(), Name: "Store Owner", IsActive: true}, nil
}

func newTestRouter() (*gin.Engine, *fakeOrderRepo, *fakeEventRepo) {
	gin.SetMode(gin.TestMode)

	orderRepo := &fakeOrderRepo{orders: make(map[uuid.UUID]*domain.Order)}
	eventRepo := &fakeEventRepo{}
	repos := &repository.Repositories{
		Order:      orderRepo,
		OrderEvent: eventRepo,
		Admin:      &fakeAdminRepo{},
	}

	cfg := &config.Config{Environment: "test"}
	return NewRouter(cfg, repos, zap.NewNop()), orderRepo, eventRepo
}

func validOrderBody() string {
	return `{
		"fullName": "Jane Doe",
		"email": "jane@example.com",
		"address": "House 1, Road 2",
		"phoneNumber": "+8801712345678",
		"district": "Dhaka",
		"product": {"id": "prod-1", "title": "Classic Tee", "normalPrice": 1200, "offerPrice": 850},
		"size": "M",
		"notes": "Deliver after 6pm"
	}`
}

func doRequest(router *gin.Engine, method, path, body, apiKey string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set("X-API-Key", apiKey)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCreateOrder(t *testing.T) {
	router, orderRepo, eventRepo := newTestRouter()

	rec := doRequest(router, http.MethodPost, "/api/orders", validOrderBody(), "")

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		OrderID string `json:"orderId"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.NotEmpty(t, resp.OrderID)

	orderID, err := uuid.Parse(resp.OrderID)
	require.NoError(t, err)

	order := orderRepo.orders[orderID]
	require.NotNil(t, order)
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.Equal(t, "+8801712345678", order.PhoneNumber)
	require.NotNil(t, order.Product.OfferPrice)
	assert.Equal(t, 850.0, *order.Product.OfferPrice)

	// Tracking history is seeded with the placed event
	require.Len(t, eventRepo.events, 1)
	assert.Equal(t, domain.OrderStatusPending, eventRepo.events[0].Status)
}

func TestCreateOrder_InvalidPayload(t *testing.T) {
	router, orderRepo, _ := newTestRouter()

	rec := doRequest(router, http.MethodPost, "/api/orders", `{"email": "jane@example.com"}`, "")

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp struct {
		Success bool `json:"success"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Empty(t, orderRepo.orders)
}

func TestGetOrder(t *testing.T) {
	router, _, _ := newTestRouter()

	created := doRequest(router, http.MethodPost, "/api/orders", validOrderBody(), "")
	require.Equal(t, http.StatusCreated, created.Code)

	var createResp struct {
		OrderID string `json:"orderId"`
	}
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &createResp))

	rec := doRequest(router, http.MethodGet, "/api/orders/"+createResp.OrderID, "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Status  string `json:"status"`
		Size    string `json:"size"`
		History []struct {
			Status string `json:"status"`
		} `json:"history"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "PENDING", resp.Status)
	assert.Equal(t, "M", resp.Size)
	require.Len(t, resp.History, 1)
	assert.Equal(t, "PENDING", resp.History[0].Status)
}

func TestGetOrder_NotFound(t *testing.T) {
	router, _, _ := newTestRouter()

	rec := doRequest(router, http.MethodGet, "/api/orders/"+uuid.NewString(), "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(router, http.MethodGet, "/api/orders/not-a-uuid", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminRoutes_RequireAPIKey(t *testing.T) {
	router, _, _ := newTestRouter()

	rec := doRequest(router, http.MethodGet, "/api/admin/orders", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(router, http.MethodGet, "/api/admin/orders", "", "wrong-key")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(router, http.MethodGet, "/api/admin/orders", "", testAPIKey)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminUpdateOrderStatus(t *testing.T) {
	router, orderRepo, _ := newTestRouter()

	created := doRequest(router, http.MethodPost, "/api/orders", validOrderBody(), "")
	var createResp struct {
		OrderID string `json:"orderId"`
	}
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &createResp))

	path := "/api/admin/orders/" + createResp.OrderID + "/status"

	// Pending to confirmed is allowed
	rec := doRequest(router, http.MethodPatch, path, `{"status": "CONFIRMED", "note": "Called the customer"}`, testAPIKey)
	require.Equal(t, http.StatusOK, rec.Code)

	orderID, _ := uuid.Parse(createResp.OrderID)
	assert.Equal(t, domain.OrderStatusConfirmed, orderRepo.orders[orderID].Status)

	// Confirmed back to pending is not
	rec = doRequest(router, http.MethodPatch, path, `{"status": "PENDING"}`, testAPIKey)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Unknown statuses are rejected outright
	rec = doRequest(router, http.MethodPatch, path, `{"status": "TELEPORTED"}`, testAPIKey)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminUpdateOrderStatus_NotFound(t *testing.T) {
	router, _, _ := newTestRouter()

	path := "/api/admin/orders/" + uuid.NewString() + "/status"
	rec := doRequest(router, http.MethodPatch, path, `{"status": "CONFIRMED"}`, testAPIKey)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealth(t *testing.T) {
	router, _, _ := newTestRouter()

	rec := doRequest(router, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
