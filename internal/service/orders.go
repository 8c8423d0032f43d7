package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	apperrors "aquapark/internal/errors"
	"aquapark/internal/external"
	"aquapark/internal/logger"
	"aquapark/internal/metrics"
	"aquapark/internal/models"

	"github.com/google/uuid"
)

type OrderService struct {
	inventory InventoryLedger
	orders    OrderStore
	catalog   TicketCatalog
	gateway   PaymentGateway
	publisher Publisher
	urls      URLs
}

func NewOrderService(inventory InventoryLedger, orders OrderStore, catalog TicketCatalog, gateway PaymentGateway, publisher Publisher, urls URLs) *OrderService {
	return &OrderService{
		inventory: inventory,
		orders:    orders,
		catalog:   catalog,
		gateway:   gateway,
		publisher: publisher,
		urls:      urls,
	}
}

func newOrderID() string {
	return "ORDER-" + strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
}

func newTicketCode() string {
	return "TKT-" + strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:12])
}

// Create runs the full purchase workflow: capacity check, pending order,
// inventory reservation, checkout preference. A gateway failure after the
// order is persisted leaves the pending order and its reserved slot behind;
// there is no compensating release (see DESIGN.md).
func (s *OrderService) Create(ctx context.Context, req *models.CreateOrderRequest) (*models.CreateOrderResponse, error) {
	if !s.gateway.Configured() {
		return nil, apperrors.ErrGatewayNotConfigured
	}

	totalQuantity := req.TotalQuantity()

	record, err := s.inventory.GetByDate(ctx, req.VisitDate)
	if err != nil {
		return nil, fmt.Errorf("failed to get inventory for %s: %w", req.VisitDate, err)
	}

	// A date with no active inventory record sells without a cap. The
	// storefront has always behaved this way; kept as explicit policy.
	capped := record != nil && record.IsActive
	if capped && totalQuantity > record.Remaining() {
		return nil, &apperrors.InsufficientCapacityError{Remaining: record.Remaining()}
	}

	order := &models.Order{
		OrderID:       newOrderID(),
		TicketCode:    newTicketCode(),
		CustomerName:  req.Customer.Name,
		CustomerEmail: req.Customer.Email,
		CustomerPhone: req.Customer.Phone,
		Items:         make([]models.OrderItem, 0, len(req.Items)),
		TotalAmount:   req.TotalAmount,
		VisitDate:     req.VisitDate,
	}
	for _, item := range req.Items {
		order.Items = append(order.Items, models.OrderItem{
			TicketID:  item.TicketID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	metrics.OrdersCreated.Inc()

	if capped {
		if err := s.inventory.Reserve(ctx, req.VisitDate, totalQuantity); err != nil {
			if errors.Is(err, apperrors.ErrCapacityExceeded) {
				// Lost the race between the availability check and the
				// guarded increment. The pending order stays behind.
				remaining := 0
				if fresh, ferr := s.inventory.GetByDate(ctx, req.VisitDate); ferr == nil && fresh != nil {
					remaining = fresh.Remaining()
				}
				return nil, &apperrors.InsufficientCapacityError{Remaining: remaining}
			}
			return nil, fmt.Errorf("failed to reserve inventory: %w", err)
		}
	}

	preference, err := s.gateway.CreatePreference(ctx, s.buildPreference(ctx, order))
	if err != nil {
		logger.WithContext(ctx).Error("Failed to create payment preference",
			"error", err,
			"order_id", order.OrderID)
		return nil, fmt.Errorf("%w: %v", apperrors.ErrGatewayFailure, err)
	}

	if err := s.orders.SetPreferenceID(ctx, order.OrderID, preference.ID); err != nil {
		return nil, fmt.Errorf("failed to store preference id: %w", err)
	}

	event := models.OrderCreatedEvent{
		OrderID:     order.OrderID,
		VisitDate:   order.VisitDate,
		TotalAmount: order.TotalAmount,
		Quantity:    totalQuantity,
		Timestamp:   time.Now(),
	}
	if err := s.publisher.Publish(models.EventOrderCreated, event); err != nil {
		logger.WithContext(ctx).Error("Failed to publish order created event",
			"error", err,
			"order_id", order.OrderID)
	}

	return &models.CreateOrderResponse{
		OrderID:      order.OrderID,
		PreferenceID: preference.ID,
		InitPoint:    preference.InitPoint,
	}, nil
}

// buildPreference resolves catalog titles for the line items and assembles
// the gateway request. Items with an unknown ticket id are skipped.
func (s *OrderService) buildPreference(ctx context.Context, order *models.Order) external.PreferenceRequest {
	items := make([]external.PreferenceItem, 0, len(order.Items))
	for _, item := range order.Items {
		ticket, err := s.catalog.GetByID(ctx, item.TicketID)
		if err != nil || ticket == nil {
			logger.WithContext(ctx).Warn("Skipping unknown ticket type in preference",
				"ticket_id", item.TicketID,
				"order_id", order.OrderID)
			continue
		}
		items = append(items, external.PreferenceItem{
			Title:     ticket.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	phone := external.PreferencePhone{}
	if len(order.CustomerPhone) > 2 {
		phone.AreaCode = order.CustomerPhone[:2]
		phone.Number = order.CustomerPhone[2:]
	}

	return external.PreferenceRequest{
		Items: items,
		Payer: external.PreferencePayer{
			Name:  order.CustomerName,
			Email: order.CustomerEmail,
			Phone: phone,
		},
		ExternalReference: order.OrderID,
		BackURLs: external.PreferenceBackURLs{
			Success: s.urls.FrontendURL + "/pagamento/sucesso",
			Failure: s.urls.FrontendURL + "/pagamento/erro",
			Pending: s.urls.FrontendURL + "/pagamento/pendente",
		},
		AutoReturn:      "approved",
		NotificationURL: s.urls.BackendURL + "/api/webhooks/mercadopago",
	}
}

func (s *OrderService) Get(ctx context.Context, orderID string) (*models.Order, error) {
	order, err := s.orders.GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil {
		return nil, apperrors.ErrNotFound
	}
	return order, nil
}

func (s *OrderService) ListRecent(ctx context.Context, limit int) ([]models.Order, error) {
	orders, err := s.orders.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// mapGatewayStatus converts the gateway's status vocabulary into ours.
// Anything unrecognized stays pending rather than failing the webhook.
func mapGatewayStatus(status string) string {
	switch status {
	case "approved":
		return models.PaymentApproved
	case "pending", "in_process":
		return models.PaymentPending
	case "rejected":
		return models.PaymentRejected
	case "cancelled":
		return models.PaymentCancelled
	case "refunded":
		return models.PaymentRefunded
	default:
		return models.PaymentPending
	}
}

// HandlePaymentNotification reconciles a webhook notification. The payload's
// own status field is never trusted; the authoritative state is re-fetched
// from the gateway and applied by external reference. Unknown or malformed
// payloads are ignored without error so the gateway stops retrying.
func (s *OrderService) HandlePaymentNotification(ctx context.Context, payload *models.PaymentNotificationPayload) error {
	if payload.Type != "payment" {
		logger.WithContext(ctx).Info("Ignoring non-payment notification", "type", payload.Type)
		return nil
	}

	paymentID := payload.Data.ID
	if paymentID == "" {
		logger.WithContext(ctx).Warn("Payment notification without resource id")
		return nil
	}

	if !s.gateway.Configured() {
		return apperrors.ErrGatewayNotConfigured
	}

	payment, err := s.gateway.GetPayment(ctx, paymentID)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrGatewayFailure, err)
	}

	orderID := payment.ExternalReference
	if orderID == "" {
		logger.WithContext(ctx).Warn("Payment without external reference", "payment_id", paymentID)
		return nil
	}

	order, err := s.orders.GetByOrderID(ctx, orderID)
	if err != nil {
		return fmt.Errorf("failed to get order %s: %w", orderID, err)
	}
	if order == nil {
		logger.WithContext(ctx).Warn("Payment references unknown order",
			"payment_id", paymentID,
			"order_id", orderID)
		return nil
	}

	status := mapGatewayStatus(payment.Status)
	if err := s.orders.UpdatePaymentStatus(ctx, orderID, status, paymentID); err != nil {
		return fmt.Errorf("failed to update payment status: %w", err)
	}
	metrics.PaymentNotifications.WithLabelValues(status).Inc()

	event := models.PaymentUpdatedEvent{
		OrderID:       orderID,
		PaymentID:     paymentID,
		PaymentStatus: status,
		Timestamp:     time.Now(),
	}
	if err := s.publisher.Publish(models.EventPaymentUpdated, event); err != nil {
		logger.WithContext(ctx).Error("Failed to publish payment updated event",
			"error", err,
			"order_id", orderID)
	}

	return nil
}
