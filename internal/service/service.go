package service

import (
	"context"

	"aquapark/internal/external"
	"aquapark/internal/models"
	"aquapark/internal/repository"
)

// InventoryLedger is what the order workflow needs from the per-date
// ticket inventory.
type InventoryLedger interface {
	GetByDate(ctx context.Context, date string) (*models.InventoryRecord, error)
	Reserve(ctx context.Context, date string, quantity int) error
}

// InventoryStore adds the administrative operations on top of the ledger.
type InventoryStore interface {
	InventoryLedger
	List(ctx context.Context) ([]models.InventoryRecord, error)
	Create(ctx context.Context, record *models.InventoryRecord) error
	Update(ctx context.Context, date string, totalTickets *int, isActive *bool) error
	Delete(ctx context.Context, date string) error
}

// OrderStore is the durable record of purchase attempts.
type OrderStore interface {
	Create(ctx context.Context, order *models.Order) error
	GetByOrderID(ctx context.Context, orderID string) (*models.Order, error)
	GetByTicketCode(ctx context.Context, ticketCode string) (*models.Order, error)
	List(ctx context.Context, limit int) ([]models.Order, error)
	UpdatePaymentStatus(ctx context.Context, orderID, status, paymentID string) error
	SetPreferenceID(ctx context.Context, orderID, preferenceID string) error
	MarkValidated(ctx context.Context, ticketCode string, staffID int64, staffName string) (bool, error)
}

// TicketCatalog resolves display titles for checkout line items.
type TicketCatalog interface {
	GetByID(ctx context.Context, ticketID string) (*models.TicketType, error)
}

// PaymentGateway is the external checkout provider.
type PaymentGateway interface {
	Configured() bool
	CreatePreference(ctx context.Context, req external.PreferenceRequest) (*external.PreferenceResponse, error)
	GetPayment(ctx context.Context, paymentID string) (*external.Payment, error)
}

// Publisher emits domain events. Publish failures are logged, never fatal.
type Publisher interface {
	Publish(subject string, data interface{}) error
}

// URLs holds the storefront and backend base URLs used for gateway
// redirect and webhook callbacks.
type URLs struct {
	FrontendURL string
	BackendURL  string
}

type Services struct {
	Orders     *OrderService
	Inventory  *InventoryService
	Validation *ValidationService
	Catalog    *CatalogService
	Staff      *StaffService
}

func NewServices(repos *repository.Repositories, gateway PaymentGateway, publisher Publisher, urls URLs) *Services {
	return &Services{
		Orders:     NewOrderService(repos.Inventory, repos.Orders, repos.TicketTypes, gateway, publisher, urls),
		Inventory:  NewInventoryService(repos.Inventory),
		Validation: NewValidationService(repos.Orders, publisher),
		Catalog:    NewCatalogService(repos.TicketTypes),
		Staff:      NewStaffService(repos.Staff),
	}
}
