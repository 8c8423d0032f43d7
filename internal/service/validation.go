package service

import (
	"context"
	"fmt"
	"time"

	apperrors "aquapark/internal/errors"
	"aquapark/internal/logger"
	"aquapark/internal/metrics"
	"aquapark/internal/models"
)

type ValidationService struct {
	orders    OrderStore
	publisher Publisher
}

func NewValidationService(orders OrderStore, publisher Publisher) *ValidationService {
	return &ValidationService{orders: orders, publisher: publisher}
}

// ValidateTicket performs the one-time gate validation. The state transition
// is a single conditional update in the store, so repeated scans of the same
// code at different gates cannot both win; every loser gets a soft rejection
// describing why, never an error.
func (s *ValidationService) ValidateTicket(ctx context.Context, ticketCode string, staffID int64, staffName string) (*models.ValidationResult, error) {
	won, err := s.orders.MarkValidated(ctx, ticketCode, staffID, staffName)
	if err != nil {
		return nil, fmt.Errorf("failed to validate ticket: %w", err)
	}

	order, err := s.orders.GetByTicketCode(ctx, ticketCode)
	if err != nil {
		return nil, fmt.Errorf("failed to get order by ticket code: %w", err)
	}
	if order == nil {
		return nil, apperrors.ErrNotFound
	}

	if won {
		metrics.TicketValidations.WithLabelValues("validated").Inc()

		event := models.TicketValidatedEvent{
			OrderID:     order.OrderID,
			TicketCode:  order.TicketCode,
			ValidatedBy: staffID,
			Timestamp:   time.Now(),
		}
		if err := s.publisher.Publish(models.EventTicketValidated, event); err != nil {
			logger.WithContext(ctx).Error("Failed to publish ticket validated event",
				"error", err,
				"order_id", order.OrderID)
		}

		return &models.ValidationResult{
			Valid:           true,
			Message:         "ticket validated",
			ValidatedAt:     order.ValidatedAt,
			ValidatedByName: order.ValidatedByName,
			Order:           s.summarize(order),
		}, nil
	}

	if order.Validated {
		metrics.TicketValidations.WithLabelValues("already_used").Inc()
		return &models.ValidationResult{
			Valid:           false,
			Message:         "already used",
			ValidatedAt:     order.ValidatedAt,
			ValidatedByName: order.ValidatedByName,
		}, nil
	}

	metrics.TicketValidations.WithLabelValues("not_approved").Inc()
	return &models.ValidationResult{
		Valid:   false,
		Message: fmt.Sprintf("payment not approved, status: %s", order.PaymentStatus),
	}, nil
}

// TicketInfo returns the staff-facing order summary without touching
// validation state.
func (s *ValidationService) TicketInfo(ctx context.Context, ticketCode string) (*models.OrderSummary, error) {
	order, err := s.orders.GetByTicketCode(ctx, ticketCode)
	if err != nil {
		return nil, fmt.Errorf("failed to get order by ticket code: %w", err)
	}
	if order == nil {
		return nil, apperrors.ErrNotFound
	}

	return s.summarize(order), nil
}

func (s *ValidationService) summarize(order *models.Order) *models.OrderSummary {
	return &models.OrderSummary{
		OrderID:         order.OrderID,
		TicketCode:      order.TicketCode,
		CustomerName:    order.CustomerName,
		VisitDate:       order.VisitDate,
		TotalAmount:     order.TotalAmount,
		PaymentStatus:   order.PaymentStatus,
		Validated:       order.Validated,
		ValidatedAt:     order.ValidatedAt,
		ValidatedByName: order.ValidatedByName,
		Items:           order.Items,
	}
}
