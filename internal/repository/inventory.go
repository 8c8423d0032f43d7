package repository

import (
	"context"
	"database/sql"

	"aquapark/internal/database"
	apperrors "aquapark/internal/errors"
	"aquapark/internal/models"
)

type InventoryRepository struct {
	db *database.DB
}

func NewInventoryRepository(db *database.DB) *InventoryRepository {
	return &InventoryRepository{db: db}
}

func (r *InventoryRepository) GetByDate(ctx context.Context, date string) (*models.InventoryRecord, error) {
	record := &models.InventoryRecord{}
	query := `
		SELECT date, total_tickets, tickets_sold, is_active, created_at, updated_at
		FROM ticket_inventory
		WHERE date = $1`

	err := r.db.QueryRowContext(ctx, query, date).Scan(
		&record.Date,
		&record.TotalTickets,
		&record.TicketsSold,
		&record.IsActive,
		&record.CreatedAt,
		&record.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return record, err
}

func (r *InventoryRepository) List(ctx context.Context) ([]models.InventoryRecord, error) {
	var records []models.InventoryRecord
	query := `
		SELECT date, total_tickets, tickets_sold, is_active, created_at, updated_at
		FROM ticket_inventory
		ORDER BY date ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var record models.InventoryRecord
		err := rows.Scan(
			&record.Date,
			&record.TotalTickets,
			&record.TicketsSold,
			&record.IsActive,
			&record.CreatedAt,
			&record.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, rows.Err()
}

func (r *InventoryRepository) Create(ctx context.Context, record *models.InventoryRecord) error {
	query := `
		INSERT INTO ticket_inventory (date, total_tickets, tickets_sold, is_active)
		VALUES ($1, $2, 0, TRUE)
		RETURNING tickets_sold, is_active, created_at, updated_at`

	return r.db.QueryRowContext(ctx, query,
		record.Date,
		record.TotalTickets,
	).Scan(&record.TicketsSold, &record.IsActive, &record.CreatedAt, &record.UpdatedAt)
}

func (r *InventoryRepository) Update(ctx context.Context, date string, totalTickets *int, isActive *bool) error {
	query := `
		UPDATE ticket_inventory
		SET total_tickets = COALESCE($2, total_tickets),
		    is_active = COALESCE($3, is_active),
		    updated_at = NOW()
		WHERE date = $1`

	result, err := r.db.ExecContext(ctx, query, date, totalTickets, isActive)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

func (r *InventoryRepository) Delete(ctx context.Context, date string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM ticket_inventory WHERE date = $1`, date)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

// Reserve increments tickets_sold by quantity as a single guarded update so
// concurrent orders for the same date can never push sold past the capacity.
func (r *InventoryRepository) Reserve(ctx context.Context, date string, quantity int) error {
	query := `
		UPDATE ticket_inventory
		SET tickets_sold = tickets_sold + $2, updated_at = NOW()
		WHERE date = $1
		  AND is_active = TRUE
		  AND tickets_sold + $2 <= total_tickets`

	result, err := r.db.ExecContext(ctx, query, date, quantity)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperrors.ErrCapacityExceeded
	}

	return nil
}
