package repository

import (
	"context"
	"database/sql"

	"aquapark/internal/database"
	apperrors "aquapark/internal/errors"
	"aquapark/internal/models"
)

type TicketTypeRepository struct {
	db *database.DB
}

func NewTicketTypeRepository(db *database.DB) *TicketTypeRepository {
	return &TicketTypeRepository{db: db}
}

func (r *TicketTypeRepository) GetByID(ctx context.Context, ticketID string) (*models.TicketType, error) {
	ticket := &models.TicketType{}
	query := `
		SELECT ticket_id, name, description, price, is_active, created_at, updated_at
		FROM ticket_types
		WHERE ticket_id = $1`

	err := r.db.QueryRowContext(ctx, query, ticketID).Scan(
		&ticket.TicketID,
		&ticket.Name,
		&ticket.Description,
		&ticket.Price,
		&ticket.IsActive,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return ticket, err
}

func (r *TicketTypeRepository) List(ctx context.Context, activeOnly bool) ([]models.TicketType, error) {
	query := `
		SELECT ticket_id, name, description, price, is_active, created_at, updated_at
		FROM ticket_types`
	if activeOnly {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tickets []models.TicketType
	for rows.Next() {
		var ticket models.TicketType
		err := rows.Scan(
			&ticket.TicketID,
			&ticket.Name,
			&ticket.Description,
			&ticket.Price,
			&ticket.IsActive,
			&ticket.CreatedAt,
			&ticket.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, ticket)
	}

	return tickets, rows.Err()
}

func (r *TicketTypeRepository) Create(ctx context.Context, ticket *models.TicketType) error {
	query := `
		INSERT INTO ticket_types (ticket_id, name, description, price, is_active)
		VALUES ($1, $2, $3, $4, TRUE)
		RETURNING is_active, created_at, updated_at`

	return r.db.QueryRowContext(ctx, query,
		ticket.TicketID,
		ticket.Name,
		ticket.Description,
		ticket.Price,
	).Scan(&ticket.IsActive, &ticket.CreatedAt, &ticket.UpdatedAt)
}

func (r *TicketTypeRepository) Update(ctx context.Context, ticketID string, req *models.UpdateTicketTypeRequest) error {
	query := `
		UPDATE ticket_types
		SET name = COALESCE($2, name),
		    description = COALESCE($3, description),
		    price = COALESCE($4, price),
		    is_active = COALESCE($5, is_active),
		    updated_at = NOW()
		WHERE ticket_id = $1`

	result, err := r.db.ExecContext(ctx, query, ticketID, req.Name, req.Description, req.Price, req.IsActive)
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

func (r *TicketTypeRepository) Delete(ctx context.Context, ticketID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM ticket_types WHERE ticket_id = $1`, ticketID)
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
