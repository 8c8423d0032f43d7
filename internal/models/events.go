package models

import "time"

// NATS event subjects
const (
	EventOrderCreated    = "order.created"
	EventPaymentUpdated  = "payment.updated"
	EventTicketValidated = "ticket.validated"
)

// OrderCreatedEvent is published once a pending order has been persisted
type OrderCreatedEvent struct {
	OrderID     string    `json:"order_id"`
	VisitDate   string    `json:"visit_date"`
	TotalAmount float64   `json:"total_amount"`
	Quantity    int       `json:"quantity"`
	Timestamp   time.Time `json:"timestamp"`
}

// PaymentUpdatedEvent is published after a webhook has been reconciled
type PaymentUpdatedEvent struct {
	OrderID       string    `json:"order_id"`
	PaymentID     string    `json:"payment_id"`
	PaymentStatus string    `json:"payment_status"`
	Timestamp     time.Time `json:"timestamp"`
}

// TicketValidatedEvent is published on the first successful gate validation
type TicketValidatedEvent struct {
	OrderID     string    `json:"order_id"`
	TicketCode  string    `json:"ticket_code"`
	ValidatedBy int64     `json:"validated_by"`
	Timestamp   time.Time `json:"timestamp"`
}
