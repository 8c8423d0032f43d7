package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"aquapark/internal/database"
	"aquapark/internal/models"
)

type OrderRepository struct {
	db *database.DB
}

func NewOrderRepository(db *database.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

const orderColumns = `
	id, order_id, ticket_code, customer_name, customer_email, customer_phone,
	items, total_amount, visit_date, payment_status, payment_id, preference_id,
	validated, validated_at, validated_by, validated_by_name, created_at, updated_at`

func (r *OrderRepository) Create(ctx context.Context, order *models.Order) error {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal order items: %w", err)
	}

	query := `
		INSERT INTO orders (order_id, ticket_code, customer_name, customer_email,
		                    customer_phone, items, total_amount, visit_date, payment_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 'pending')
		RETURNING id, payment_status, validated, created_at, updated_at`

	return r.db.QueryRowContext(ctx, query,
		order.OrderID,
		order.TicketCode,
		order.CustomerName,
		order.CustomerEmail,
		order.CustomerPhone,
		items,
		order.TotalAmount,
		order.VisitDate,
	).Scan(&order.ID, &order.PaymentStatus, &order.Validated, &order.CreatedAt, &order.UpdatedAt)
}

func (r *OrderRepository) GetByOrderID(ctx context.Context, orderID string) (*models.Order, error) {
	query := `SELECT` + orderColumns + ` FROM orders WHERE order_id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, orderID))
}

func (r *OrderRepository) GetByTicketCode(ctx context.Context, ticketCode string) (*models.Order, error) {
	query := `SELECT` + orderColumns + ` FROM orders WHERE ticket_code = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, ticketCode))
}

func (r *OrderRepository) List(ctx context.Context, limit int) ([]models.Order, error) {
	query := `SELECT` + orderColumns + ` FROM orders ORDER BY created_at DESC LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		order, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}

	return orders, rows.Err()
}

// UpdatePaymentStatus applies a gateway result to the order. Re-applying the
// same status with the same payment id matches no row, so the second
// application leaves every field untouched, including updated_at.
func (r *OrderRepository) UpdatePaymentStatus(ctx context.Context, orderID, status, paymentID string) error {
	query := `
		UPDATE orders
		SET payment_status = $2, payment_id = $3, updated_at = NOW()
		WHERE order_id = $1
		  AND (payment_status IS DISTINCT FROM $2 OR payment_id IS DISTINCT FROM $3)`

	_, err := r.db.ExecContext(ctx, query, orderID, status, paymentID)
	return err
}

func (r *OrderRepository) SetPreferenceID(ctx context.Context, orderID, preferenceID string) error {
	query := `UPDATE orders SET preference_id = $2, updated_at = NOW() WHERE order_id = $1`
	_, err := r.db.ExecContext(ctx, query, orderID, preferenceID)
	return err
}

// MarkValidated flips validated false->true as a single conditional update.
// Returns true only for the request that won the transition; concurrent scans
// of the same code at multiple gates see false and re-read the order.
func (r *OrderRepository) MarkValidated(ctx context.Context, ticketCode string, staffID int64, staffName string) (bool, error) {
	query := `
		UPDATE orders
		SET validated = TRUE, validated_at = NOW(), validated_by = $2,
		    validated_by_name = $3, updated_at = NOW()
		WHERE ticket_code = $1
		  AND validated = FALSE
		  AND payment_status = 'approved'`

	result, err := r.db.ExecContext(ctx, query, ticketCode, staffID, staffName)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *OrderRepository) scanOne(row *sql.Row) (*models.Order, error) {
	order, err := r.scanRow(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return order, err
}

func (r *OrderRepository) scanRow(row rowScanner) (*models.Order, error) {
	order := &models.Order{}
	var items []byte

	err := row.Scan(
		&order.ID,
		&order.OrderID,
		&order.TicketCode,
		&order.CustomerName,
		&order.CustomerEmail,
		&order.CustomerPhone,
		&items,
		&order.TotalAmount,
		&order.VisitDate,
		&order.PaymentStatus,
		&order.PaymentID,
		&order.PreferenceID,
		&order.Validated,
		&order.ValidatedAt,
		&order.ValidatedBy,
		&order.ValidatedByName,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(items, &order.Items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal order items: %w", err)
	}

	return order, nil
}
