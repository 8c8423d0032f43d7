package models

import (
	"encoding/json"
	"strings"
	"time"
)

// CustomerInfo - customer snapshot sent with an order
type CustomerInfo struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
	Phone string `json:"phone"`
}

// OrderItemRequest - one requested line item
type OrderItemRequest struct {
	TicketID  string  `json:"ticket_id" binding:"required"`
	Quantity  int     `json:"quantity" binding:"required,gt=0"`
	UnitPrice float64 `json:"unit_price" binding:"gte=0"`
}

// CreateOrderRequest - body of POST /api/orders
type CreateOrderRequest struct {
	Customer    CustomerInfo       `json:"customer" binding:"required"`
	Items       []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
	TotalAmount float64            `json:"total_amount" binding:"gte=0"`
	VisitDate   string             `json:"visit_date" binding:"required,datetime=2006-01-02"`
}

// TotalQuantity sums quantities across the requested items.
func (r *CreateOrderRequest) TotalQuantity() int {
	total := 0
	for _, item := range r.Items {
		total += item.Quantity
	}
	return total
}

// CreateOrderResponse - checkout handle returned to the storefront
type CreateOrderResponse struct {
	OrderID      string `json:"order_id"`
	PreferenceID string `json:"preference_id"`
	InitPoint    string `json:"init_point"`
}

// AvailabilityResponse - answer of GET /api/availability
type AvailabilityResponse struct {
	Available bool   `json:"available"`
	Remaining int    `json:"remaining"`
	Message   string `json:"message,omitempty"`
}

// PaymentNotificationPayload - webhook body from the payment gateway.
// Only the resource type and id are trusted; the authoritative status is
// always re-fetched from the gateway.
type PaymentNotificationPayload struct {
	Type   string                  `json:"type"`
	Action string                  `json:"action"`
	Data   PaymentNotificationData `json:"data"`
}

// PaymentNotificationData holds the webhook resource id. The gateway sends it
// as a string in webhook deliveries and as a number in test payloads, so both
// are accepted.
type PaymentNotificationData struct {
	ID string `json:"id"`
}

func (d *PaymentNotificationData) UnmarshalJSON(b []byte) error {
	var raw struct {
		ID json.RawMessage `json:"id"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	id := strings.Trim(string(raw.ID), `"`)
	if id == "null" {
		id = ""
	}
	d.ID = id
	return nil
}

// WebhookResponse - always returned with HTTP 200 so the gateway does not
// retry indefinitely on permanent failures
type WebhookResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// ValidateTicketRequest - body of POST /api/staff/validate-ticket
type ValidateTicketRequest struct {
	TicketCode string `json:"ticket_code" binding:"required"`
}

// OrderSummary - staff-facing view of an order
type OrderSummary struct {
	OrderID         string      `json:"order_id"`
	TicketCode      string      `json:"ticket_code"`
	CustomerName    string      `json:"customer_name"`
	VisitDate       string      `json:"visit_date"`
	TotalAmount     float64     `json:"total_amount"`
	PaymentStatus   string      `json:"payment_status"`
	Validated       bool        `json:"validated"`
	ValidatedAt     *time.Time  `json:"validated_at,omitempty"`
	ValidatedByName *string     `json:"validated_by_name,omitempty"`
	Items           []OrderItem `json:"items"`
}

// ValidationResult - outcome of a gate scan
type ValidationResult struct {
	Valid           bool          `json:"valid"`
	Message         string        `json:"message"`
	ValidatedAt     *time.Time    `json:"validated_at,omitempty"`
	ValidatedByName *string       `json:"validated_by_name,omitempty"`
	Order           *OrderSummary `json:"order,omitempty"`
}

// CreateAvailabilityRequest - admin body to configure a sellable date
type CreateAvailabilityRequest struct {
	Date         string `json:"date" binding:"required,datetime=2006-01-02"`
	TotalTickets int    `json:"total_tickets" binding:"required,gte=0"`
}

// UpdateAvailabilityRequest - admin partial update of a date's record
type UpdateAvailabilityRequest struct {
	TotalTickets *int  `json:"total_tickets" binding:"omitempty,gte=0"`
	IsActive     *bool `json:"is_active"`
}

// CreateTicketTypeRequest - admin body to add a catalog entry
type CreateTicketTypeRequest struct {
	TicketID    string  `json:"ticket_id" binding:"required"`
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	Price       float64 `json:"price" binding:"gte=0"`
}

// UpdateTicketTypeRequest - admin partial update of a catalog entry
type UpdateTicketTypeRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" binding:"omitempty,gte=0"`
	IsActive    *bool    `json:"is_active"`
}

// CreateStaffRequest - admin body to register a staff account
type CreateStaffRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}
