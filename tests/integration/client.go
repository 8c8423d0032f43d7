package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"aquapark/internal/models"
)

// TestClient provides methods for exercising the API over HTTP
type TestClient struct {
	BaseURL    string
	HTTPClient *http.Client

	// Basic Auth credentials for staff endpoints
	StaffEmail    string
	StaffPassword string
}

// NewTestClient creates a new test client
func NewTestClient(baseURL string) *TestClient {
	return &TestClient{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// makeRequest makes an HTTP request and returns the response
func (c *TestClient) makeRequest(t *testing.T, method, path string, body interface{}, auth bool) *http.Response {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal request body: %v", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, c.BaseURL+path, reqBody)
	if err != nil {
		t.Fatalf("Failed to create request: %v", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth {
		req.SetBasicAuth(c.StaffEmail, c.StaffPassword)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		t.Fatalf("Failed to make request: %v", err)
	}

	return resp
}

// CheckAvailability queries remaining capacity for a visit date
func (c *TestClient) CheckAvailability(t *testing.T, date string, quantity int) *models.AvailabilityResponse {
	path := fmt.Sprintf("/api/availability?date=%s&quantity=%d", date, quantity)
	resp := c.makeRequest(t, "GET", path, nil, false)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("Expected status 200, got %d. Body: %s", resp.StatusCode, string(body))
	}

	var availability models.AvailabilityResponse
	if err := json.NewDecoder(resp.Body).Decode(&availability); err != nil {
		t.Fatalf("Failed to decode availability response: %v", err)
	}

	return &availability
}

// CreateOrder creates a new order and returns the checkout handle
func (c *TestClient) CreateOrder(t *testing.T, req models.CreateOrderRequest) *models.CreateOrderResponse {
	resp := c.makeRequest(t, "POST", "/api/orders", req, false)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("Expected status 201, got %d. Body: %s", resp.StatusCode, string(body))
	}

	var order models.CreateOrderResponse
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		t.Fatalf("Failed to decode order response: %v", err)
	}

	return &order
}

// GetOrder fetches an order by its public id
func (c *TestClient) GetOrder(t *testing.T, orderID string) *models.Order {
	resp := c.makeRequest(t, "GET", "/api/orders/"+orderID, nil, false)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("Expected status 200, got %d. Body: %s", resp.StatusCode, string(body))
	}

	var order models.Order
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		t.Fatalf("Failed to decode order: %v", err)
	}

	return &order
}

// SendPaymentWebhook posts a payment gateway notification
func (c *TestClient) SendPaymentWebhook(t *testing.T, notification models.PaymentNotificationPayload) *models.WebhookResponse {
	resp := c.makeRequest(t, "POST", "/api/webhooks/mercadopago", notification, false)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("Expected status 200, got %d. Body: %s", resp.StatusCode, string(body))
	}

	var result models.WebhookResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode webhook response: %v", err)
	}

	return &result
}

// ValidateTicket scans a ticket code at the gate
func (c *TestClient) ValidateTicket(t *testing.T, ticketCode string) *models.ValidationResult {
	req := models.ValidateTicketRequest{TicketCode: ticketCode}

	resp := c.makeRequest(t, "POST", "/api/staff/validate-ticket", req, true)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("Expected status 200, got %d. Body: %s", resp.StatusCode, string(body))
	}

	var result models.ValidationResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode validation result: %v", err)
	}

	return &result
}

// TicketInfo looks up an order by ticket code without consuming it
func (c *TestClient) TicketInfo(t *testing.T, ticketCode string) *models.OrderSummary {
	resp := c.makeRequest(t, "GET", "/api/staff/ticket-info/"+ticketCode, nil, true)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("Expected status 200, got %d. Body: %s", resp.StatusCode, string(body))
	}

	var summary models.OrderSummary
	if err := json.NewDecoder(resp.Body).Decode(&summary); err != nil {
		t.Fatalf("Failed to decode ticket info: %v", err)
	}

	return &summary
}

// HealthCheck checks if the API is healthy
func (c *TestClient) HealthCheck(t *testing.T) {
	resp := c.makeRequest(t, "GET", "/health", nil, false)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Health check failed with status %d", resp.StatusCode)
	}
}
