package models

import (
	"time"
)

// Payment statuses an order can be in. The gateway vocabulary is mapped onto
// these in the order service; anything unrecognized stays pending.
const (
	PaymentPending   = "pending"
	PaymentApproved  = "approved"
	PaymentRejected  = "rejected"
	PaymentCancelled = "cancelled"
	PaymentRefunded  = "refunded"
)

// Staff roles
const (
	RoleStaff = "staff"
	RoleAdmin = "admin"
)

// InventoryRecord tracks ticket capacity for a single visit date (YYYY-MM-DD).
type InventoryRecord struct {
	Date         string    `json:"date" db:"date"`
	TotalTickets int       `json:"total_tickets" db:"total_tickets"`
	TicketsSold  int       `json:"tickets_sold" db:"tickets_sold"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Remaining returns how many tickets can still be sold for the date.
func (r *InventoryRecord) Remaining() int {
	return r.TotalTickets - r.TicketsSold
}

// OrderItem is a single line item of an order. Stored as JSONB on the order row.
type OrderItem struct {
	TicketID  string  `json:"ticket_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// Order represents one checkout attempt. The customer fields are a snapshot
// taken at creation time, not a foreign key.
type Order struct {
	ID              int64       `json:"id" db:"id"`
	OrderID         string      `json:"order_id" db:"order_id"`
	TicketCode      string      `json:"ticket_code" db:"ticket_code"`
	CustomerName    string      `json:"customer_name" db:"customer_name"`
	CustomerEmail   string      `json:"customer_email" db:"customer_email"`
	CustomerPhone   string      `json:"customer_phone" db:"customer_phone"`
	Items           []OrderItem `json:"items" db:"items"`
	TotalAmount     float64     `json:"total_amount" db:"total_amount"`
	VisitDate       string      `json:"visit_date" db:"visit_date"`
	PaymentStatus   string      `json:"payment_status" db:"payment_status"`
	PaymentID       *string     `json:"payment_id" db:"payment_id"`
	PreferenceID    *string     `json:"preference_id" db:"preference_id"`
	Validated       bool        `json:"validated" db:"validated"`
	ValidatedAt     *time.Time  `json:"validated_at" db:"validated_at"`
	ValidatedBy     *int64      `json:"validated_by" db:"validated_by"`
	ValidatedByName *string     `json:"validated_by_name" db:"validated_by_name"`
	CreatedAt       time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at" db:"updated_at"`
}

// TotalQuantity sums the quantities across all line items.
func (o *Order) TotalQuantity() int {
	total := 0
	for _, item := range o.Items {
		total += item.Quantity
	}
	return total
}

// TicketType is a catalog entry for a sellable ticket kind (adult, child, ...).
type TicketType struct {
	TicketID    string    `json:"ticket_id" db:"ticket_id"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description" db:"description"`
	Price       float64   `json:"price" db:"price"`
	IsActive    bool      `json:"is_active" db:"is_active"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// StaffUser represents a gate/admin employee account
type StaffUser struct {
	StaffID      int64     `json:"staff_id" db:"staff_id"`
	Email        string    `json:"email" db:"email"`
	Name         string    `json:"name" db:"name"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         string    `json:"role" db:"role"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
