package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	apperrors "aquapark/internal/errors"
	"aquapark/internal/external"
	"aquapark/internal/middleware"
	"aquapark/internal/models"
	"aquapark/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Minimal in-memory stores backing the HTTP tests.

type memInventory struct {
	records map[string]*models.InventoryRecord
}

func (m *memInventory) GetByDate(ctx context.Context, date string) (*models.InventoryRecord, error) {
	record, ok := m.records[date]
	if !ok {
		return nil, nil
	}
	copy := *record
	return &copy, nil
}

func (m *memInventory) Reserve(ctx context.Context, date string, quantity int) error {
	record, ok := m.records[date]
	if !ok || !record.IsActive || record.TicketsSold+quantity > record.TotalTickets {
		return apperrors.ErrCapacityExceeded
	}
	record.TicketsSold += quantity
	return nil
}

func (m *memInventory) List(ctx context.Context) ([]models.InventoryRecord, error) { return nil, nil }
func (m *memInventory) Create(ctx context.Context, record *models.InventoryRecord) error {
	return nil
}
func (m *memInventory) Update(ctx context.Context, date string, totalTickets *int, isActive *bool) error {
	return nil
}
func (m *memInventory) Delete(ctx context.Context, date string) error { return nil }

type memOrders struct {
	byOrderID    map[string]*models.Order
	byTicketCode map[string]*models.Order
}

func newMemOrders() *memOrders {
	return &memOrders{
		byOrderID:    make(map[string]*models.Order),
		byTicketCode: make(map[string]*models.Order),
	}
}

func (m *memOrders) Create(ctx context.Context, order *models.Order) error {
	order.PaymentStatus = models.PaymentPending
	order.CreatedAt = time.Now()
	m.byOrderID[order.OrderID] = order
	m.byTicketCode[order.TicketCode] = order
	return nil
}

func (m *memOrders) GetByOrderID(ctx context.Context, orderID string) (*models.Order, error) {
	return m.byOrderID[orderID], nil
}

func (m *memOrders) GetByTicketCode(ctx context.Context, ticketCode string) (*models.Order, error) {
	return m.byTicketCode[ticketCode], nil
}

func (m *memOrders) List(ctx context.Context, limit int) ([]models.Order, error) { return nil, nil }

func (m *memOrders) UpdatePaymentStatus(ctx context.Context, orderID, status, paymentID string) error {
	order, ok := m.byOrderID[orderID]
	if !ok {
		return fmt.Errorf("order %s not found", orderID)
	}
	order.PaymentStatus = status
	order.PaymentID = &paymentID
	return nil
}

func (m *memOrders) SetPreferenceID(ctx context.Context, orderID, preferenceID string) error {
	order, ok := m.byOrderID[orderID]
	if !ok {
		return fmt.Errorf("order %s not found", orderID)
	}
	order.PreferenceID = &preferenceID
	return nil
}

func (m *memOrders) MarkValidated(ctx context.Context, ticketCode string, staffID int64, staffName string) (bool, error) {
	order, ok := m.byTicketCode[ticketCode]
	if !ok || order.Validated || order.PaymentStatus != models.PaymentApproved {
		return false, nil
	}
	now := time.Now()
	order.Validated = true
	order.ValidatedAt = &now
	order.ValidatedBy = &staffID
	order.ValidatedByName = &staffName
	return true, nil
}

type memCatalog struct{}

func (memCatalog) GetByID(ctx context.Context, ticketID string) (*models.TicketType, error) {
	return &models.TicketType{TicketID: ticketID, Name: "Day Pass", Price: 80, IsActive: true}, nil
}

type memGateway struct {
	configured bool
	payments   map[string]*external.Payment
	paymentErr error
}

func (g *memGateway) Configured() bool { return g.configured }

func (g *memGateway) CreatePreference(ctx context.Context, req external.PreferenceRequest) (*external.PreferenceResponse, error) {
	return &external.PreferenceResponse{ID: "pref-1", InitPoint: "https://mp.test/init/pref-1"}, nil
}

func (g *memGateway) GetPayment(ctx context.Context, paymentID string) (*external.Payment, error) {
	if g.paymentErr != nil {
		return nil, g.paymentErr
	}
	payment, ok := g.payments[paymentID]
	if !ok {
		return nil, fmt.Errorf("payment %s not found", paymentID)
	}
	return payment, nil
}

type noopPublisher struct{}

func (noopPublisher) Publish(subject string, data interface{}) error { return nil }

type testEnv struct {
	router    *gin.Engine
	inventory *memInventory
	orders    *memOrders
	gateway   *memGateway
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	inventory := &memInventory{records: make(map[string]*models.InventoryRecord)}
	orders := newMemOrders()
	gateway := &memGateway{configured: true, payments: make(map[string]*external.Payment)}

	urls := service.URLs{FrontendURL: "https://park.test", BackendURL: "https://api.park.test"}
	services := &service.Services{
		Orders:     service.NewOrderService(inventory, orders, memCatalog{}, gateway, noopPublisher{}, urls),
		Inventory:  service.NewInventoryService(inventory),
		Validation: service.NewValidationService(orders, noopPublisher{}),
	}

	h := NewHandlers(services, nil)

	router := gin.New()
	router.GET("/api/availability", h.CheckAvailability)
	router.POST("/api/orders", h.CreateOrder)
	router.GET("/api/orders/:order_id", h.GetOrder)
	router.POST("/api/webhooks/mercadopago", h.OnPaymentNotification)

	// Staff routes with a stub auth that injects the gate employee
	staff := router.Group("/api/staff")
	staff.Use(func(c *gin.Context) {
		c.Request = c.Request.WithContext(middleware.ContextWithStaff(
			c.Request.Context(),
			middleware.Staff{ID: 7, Name: "Ana", Role: models.RoleStaff},
		))
		c.Next()
	})
	staff.POST("/validate-ticket", h.ValidateTicket)
	staff.GET("/ticket-info/:ticket_code", h.TicketInfo)

	return &testEnv{router: router, inventory: inventory, orders: orders, gateway: gateway}
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func orderBody(quantity int) map[string]interface{} {
	return map[string]interface{}{
		"customer": map[string]interface{}{
			"name":  "Maria Silva",
			"email": "maria@example.com",
			"phone": "11999887766",
		},
		"items": []map[string]interface{}{
			{"ticket_id": "adult", "quantity": quantity, "unit_price": 80},
		},
		"total_amount": float64(quantity) * 80,
		"visit_date":   "2026-01-15",
	}
}

func TestCreateOrderEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.inventory.records["2026-01-15"] = &models.InventoryRecord{
		Date: "2026-01-15", TotalTickets: 10, IsActive: true,
	}

	w := env.do(t, http.MethodPost, "/api/orders", orderBody(2))
	require.Equal(t, http.StatusCreated, w.Code)

	var resp models.CreateOrderResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.OrderID)
	assert.Equal(t, "pref-1", resp.PreferenceID)
	assert.Equal(t, "https://mp.test/init/pref-1", resp.InitPoint)
}

func TestCreateOrderEndpoint_ValidationError(t *testing.T) {
	env := newTestEnv(t)

	body := orderBody(1)
	delete(body, "customer")

	w := env.do(t, http.MethodPost, "/api/orders", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateOrderEndpoint_InsufficientCapacity(t *testing.T) {
	env := newTestEnv(t)
	env.inventory.records["2026-01-15"] = &models.InventoryRecord{
		Date: "2026-01-15", TotalTickets: 10, TicketsSold: 9, IsActive: true,
	}

	w := env.do(t, http.MethodPost, "/api/orders", orderBody(2))
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, float64(1), resp["remaining"])
}

func TestGetOrderEndpoint_NotFound(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/orders/ORDER-MISSING1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAvailabilityEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.inventory.records["2026-01-15"] = &models.InventoryRecord{
		Date: "2026-01-15", TotalTickets: 100, TicketsSold: 40, IsActive: true,
	}

	w := env.do(t, http.MethodGet, "/api/availability?date=2026-01-15&quantity=5", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.AvailabilityResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Available)
	assert.Equal(t, 60, resp.Remaining)
}

func TestAvailabilityEndpoint_MissingDate(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, http.MethodGet, "/api/availability", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAvailabilityEndpoint_BadQuantity(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, http.MethodGet, "/api/availability?date=2026-01-15&quantity=zero", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWebhookEndpoint_Success(t *testing.T) {
	env := newTestEnv(t)

	order := &models.Order{OrderID: "ORDER-AAAA1111", TicketCode: "TKT-AAAA11112222"}
	require.NoError(t, env.orders.Create(context.Background(), order))
	env.gateway.payments["555"] = &external.Payment{
		ID: "555", Status: "approved", ExternalReference: order.OrderID,
	}

	body := map[string]interface{}{
		"type":   "payment",
		"action": "payment.updated",
		"data":   map[string]interface{}{"id": "555"},
	}
	w := env.do(t, http.MethodPost, "/api/webhooks/mercadopago", body)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.WebhookResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)

	assert.Equal(t, models.PaymentApproved, env.orders.byOrderID[order.OrderID].PaymentStatus)
}

func TestWebhookEndpoint_AlwaysAnswers200(t *testing.T) {
	env := newTestEnv(t)
	env.gateway.paymentErr = fmt.Errorf("gateway returned status 500")

	body := map[string]interface{}{
		"type": "payment",
		"data": map[string]interface{}{"id": "555"},
	}
	w := env.do(t, http.MethodPost, "/api/webhooks/mercadopago", body)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.WebhookResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
}

func TestValidateTicketEndpoint(t *testing.T) {
	env := newTestEnv(t)

	order := &models.Order{OrderID: "ORDER-AAAA1111", TicketCode: "TKT-AAAA11112222"}
	require.NoError(t, env.orders.Create(context.Background(), order))
	require.NoError(t, env.orders.UpdatePaymentStatus(context.Background(), order.OrderID, models.PaymentApproved, "555"))

	body := map[string]interface{}{"ticket_code": order.TicketCode}

	w := env.do(t, http.MethodPost, "/api/staff/validate-ticket", body)
	require.Equal(t, http.StatusOK, w.Code)

	var first models.ValidationResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &first))
	assert.True(t, first.Valid)
	require.NotNil(t, first.ValidatedByName)
	assert.Equal(t, "Ana", *first.ValidatedByName)

	// Same code scanned again is rejected, still with HTTP 200
	w = env.do(t, http.MethodPost, "/api/staff/validate-ticket", body)
	require.Equal(t, http.StatusOK, w.Code)

	var second models.ValidationResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &second))
	assert.False(t, second.Valid)
	assert.Equal(t, "already used", second.Message)
}

func TestTicketInfoEndpoint_NotFound(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, http.MethodGet, "/api/staff/ticket-info/TKT-MISSING00000", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
