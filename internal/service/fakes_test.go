package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	apperrors "aquapark/internal/errors"
	"aquapark/internal/external"
	"aquapark/internal/models"
)

// In-memory fakes for the stores and clients the services depend on. They
// mirror the semantics of the real implementations closely enough that the
// workflow tests exercise the same state transitions.

type fakeInventory struct {
	mu            sync.Mutex
	records       map[string]*models.InventoryRecord
	beforeReserve func()
}

func newFakeInventory() *fakeInventory {
	return &fakeInventory{records: make(map[string]*models.InventoryRecord)}
}

func (f *fakeInventory) GetByDate(ctx context.Context, date string) (*models.InventoryRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	record, ok := f.records[date]
	if !ok {
		return nil, nil
	}
	copy := *record
	return &copy, nil
}

func (f *fakeInventory) Reserve(ctx context.Context, date string, quantity int) error {
	if f.beforeReserve != nil {
		f.beforeReserve()
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	record, ok := f.records[date]
	if !ok || !record.IsActive || record.TicketsSold+quantity > record.TotalTickets {
		return apperrors.ErrCapacityExceeded
	}
	record.TicketsSold += quantity
	return nil
}

func (f *fakeInventory) List(ctx context.Context) ([]models.InventoryRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.InventoryRecord
	for _, record := range f.records {
		out = append(out, *record)
	}
	return out, nil
}

func (f *fakeInventory) Create(ctx context.Context, record *models.InventoryRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	record.IsActive = true
	record.CreatedAt = time.Now()
	record.UpdatedAt = record.CreatedAt
	copy := *record
	f.records[record.Date] = &copy
	return nil
}

func (f *fakeInventory) Update(ctx context.Context, date string, totalTickets *int, isActive *bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	record, ok := f.records[date]
	if !ok {
		return apperrors.ErrNotFound
	}
	if totalTickets != nil {
		record.TotalTickets = *totalTickets
	}
	if isActive != nil {
		record.IsActive = *isActive
	}
	record.UpdatedAt = time.Now()
	return nil
}

func (f *fakeInventory) Delete(ctx context.Context, date string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.records[date]; !ok {
		return apperrors.ErrNotFound
	}
	delete(f.records, date)
	return nil
}

type fakeOrderStore struct {
	mu            sync.Mutex
	byOrderID     map[string]*models.Order
	byTicketCode  map[string]*models.Order
	createErr     error
	statusUpdates int
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{
		byOrderID:    make(map[string]*models.Order),
		byTicketCode: make(map[string]*models.Order),
	}
}

func (f *fakeOrderStore) Create(ctx context.Context, order *models.Order) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	order.PaymentStatus = models.PaymentPending
	order.CreatedAt = time.Now()
	order.UpdatedAt = order.CreatedAt
	stored := *order
	f.byOrderID[order.OrderID] = &stored
	f.byTicketCode[order.TicketCode] = &stored
	return nil
}

func (f *fakeOrderStore) GetByOrderID(ctx context.Context, orderID string) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	order, ok := f.byOrderID[orderID]
	if !ok {
		return nil, nil
	}
	copy := *order
	return &copy, nil
}

func (f *fakeOrderStore) GetByTicketCode(ctx context.Context, ticketCode string) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	order, ok := f.byTicketCode[ticketCode]
	if !ok {
		return nil, nil
	}
	copy := *order
	return &copy, nil
}

func (f *fakeOrderStore) List(ctx context.Context, limit int) ([]models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Order
	for _, order := range f.byOrderID {
		out = append(out, *order)
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

// UpdatePaymentStatus mirrors the conditional update in the real store: an
// identical status+payment id pair changes nothing, updated_at included.
func (f *fakeOrderStore) UpdatePaymentStatus(ctx context.Context, orderID, status, paymentID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	order, ok := f.byOrderID[orderID]
	if !ok {
		return fmt.Errorf("order %s not found", orderID)
	}
	if order.PaymentStatus == status && order.PaymentID != nil && *order.PaymentID == paymentID {
		return nil
	}
	order.PaymentStatus = status
	order.PaymentID = &paymentID
	order.UpdatedAt = time.Now()
	f.statusUpdates++
	return nil
}

func (f *fakeOrderStore) SetPreferenceID(ctx context.Context, orderID, preferenceID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	order, ok := f.byOrderID[orderID]
	if !ok {
		return fmt.Errorf("order %s not found", orderID)
	}
	order.PreferenceID = &preferenceID
	return nil
}

// MarkValidated mirrors the real store's compare-and-set: only one caller can
// flip an approved, unvalidated ticket.
func (f *fakeOrderStore) MarkValidated(ctx context.Context, ticketCode string, staffID int64, staffName string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	order, ok := f.byTicketCode[ticketCode]
	if !ok || order.Validated || order.PaymentStatus != models.PaymentApproved {
		return false, nil
	}
	now := time.Now()
	order.Validated = true
	order.ValidatedAt = &now
	order.ValidatedBy = &staffID
	order.ValidatedByName = &staffName
	order.UpdatedAt = now
	return true, nil
}

type fakeCatalog struct {
	tickets map[string]*models.TicketType
}

func newFakeCatalog(tickets ...*models.TicketType) *fakeCatalog {
	f := &fakeCatalog{tickets: make(map[string]*models.TicketType)}
	for _, ticket := range tickets {
		f.tickets[ticket.TicketID] = ticket
	}
	return f
}

func (f *fakeCatalog) GetByID(ctx context.Context, ticketID string) (*models.TicketType, error) {
	return f.tickets[ticketID], nil
}

type fakeGateway struct {
	configured    bool
	preference    *external.PreferenceResponse
	preferenceErr error
	payments      map[string]*external.Payment
	paymentErr    error

	lastPreference *external.PreferenceRequest
	getCalls       int
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		configured: true,
		preference: &external.PreferenceResponse{
			ID:        "pref-123",
			InitPoint: "https://gateway.test/checkout/pref-123",
		},
		payments: make(map[string]*external.Payment),
	}
}

func (f *fakeGateway) Configured() bool {
	return f.configured
}

func (f *fakeGateway) CreatePreference(ctx context.Context, req external.PreferenceRequest) (*external.PreferenceResponse, error) {
	f.lastPreference = &req
	if f.preferenceErr != nil {
		return nil, f.preferenceErr
	}
	return f.preference, nil
}

func (f *fakeGateway) GetPayment(ctx context.Context, paymentID string) (*external.Payment, error) {
	f.getCalls++
	if f.paymentErr != nil {
		return nil, f.paymentErr
	}
	payment, ok := f.payments[paymentID]
	if !ok {
		return nil, fmt.Errorf("payment %s not found", paymentID)
	}
	return payment, nil
}

type fakePublisher struct {
	mu       sync.Mutex
	subjects []string
	err      error
}

func (f *fakePublisher) Publish(subject string, data interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.subjects = append(f.subjects, subject)
	return nil
}

func (f *fakePublisher) published(subject string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, s := range f.subjects {
		if s == subject {
			count++
		}
	}
	return count
}
