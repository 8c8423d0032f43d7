package service

import (
	"context"
	"testing"

	apperrors "aquapark/internal/errors"
	"aquapark/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTicket_Success(t *testing.T) {
	orders := newFakeOrderStore()
	order := seedOrder(t, orders, models.PaymentApproved)
	publisher := &fakePublisher{}
	svc := NewValidationService(orders, publisher)

	result, err := svc.ValidateTicket(context.Background(), order.TicketCode, 7, "Ana")
	require.NoError(t, err)

	assert.True(t, result.Valid)
	assert.Equal(t, "ticket validated", result.Message)
	require.NotNil(t, result.Order)
	assert.Equal(t, order.OrderID, result.Order.OrderID)
	require.NotNil(t, result.ValidatedAt)
	require.NotNil(t, result.ValidatedByName)
	assert.Equal(t, "Ana", *result.ValidatedByName)

	assert.Equal(t, 1, publisher.published(models.EventTicketValidated))
}

func TestValidateTicket_SecondScanRejected(t *testing.T) {
	orders := newFakeOrderStore()
	order := seedOrder(t, orders, models.PaymentApproved)
	svc := NewValidationService(orders, &fakePublisher{})

	first, err := svc.ValidateTicket(context.Background(), order.TicketCode, 7, "Ana")
	require.NoError(t, err)
	require.True(t, first.Valid)

	second, err := svc.ValidateTicket(context.Background(), order.TicketCode, 9, "Bruno")
	require.NoError(t, err)

	assert.False(t, second.Valid)
	assert.Equal(t, "already used", second.Message)
	// The original validation record is reported, not overwritten
	require.NotNil(t, second.ValidatedByName)
	assert.Equal(t, "Ana", *second.ValidatedByName)
	assert.Equal(t, first.ValidatedAt, second.ValidatedAt)
}

func TestValidateTicket_PaymentNotApproved(t *testing.T) {
	orders := newFakeOrderStore()
	order := seedOrder(t, orders, models.PaymentPending)
	svc := NewValidationService(orders, &fakePublisher{})

	result, err := svc.ValidateTicket(context.Background(), order.TicketCode, 7, "Ana")
	require.NoError(t, err)

	assert.False(t, result.Valid)
	assert.Equal(t, "payment not approved, status: pending", result.Message)

	stored, _ := orders.GetByTicketCode(context.Background(), order.TicketCode)
	assert.False(t, stored.Validated)
}

func TestValidateTicket_NotFound(t *testing.T) {
	svc := NewValidationService(newFakeOrderStore(), &fakePublisher{})

	_, err := svc.ValidateTicket(context.Background(), "TKT-UNKNOWN00000", 7, "Ana")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestTicketInfo_DoesNotConsume(t *testing.T) {
	orders := newFakeOrderStore()
	order := seedOrder(t, orders, models.PaymentApproved)
	svc := NewValidationService(orders, &fakePublisher{})

	summary, err := svc.TicketInfo(context.Background(), order.TicketCode)
	require.NoError(t, err)
	assert.Equal(t, order.OrderID, summary.OrderID)
	assert.False(t, summary.Validated)

	stored, _ := orders.GetByTicketCode(context.Background(), order.TicketCode)
	assert.False(t, stored.Validated)
}

func TestTicketInfo_NotFound(t *testing.T) {
	svc := NewValidationService(newFakeOrderStore(), &fakePublisher{})

	_, err := svc.TicketInfo(context.Background(), "TKT-UNKNOWN00000")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
