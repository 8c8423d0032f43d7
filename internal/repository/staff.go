package repository

import (
	"context"
	"database/sql"

	"aquapark/internal/database"
	apperrors "aquapark/internal/errors"
	"aquapark/internal/models"
)

type StaffRepository struct {
	db *database.DB
}

func NewStaffRepository(db *database.DB) *StaffRepository {
	return &StaffRepository{db: db}
}

func (r *StaffRepository) GetByEmail(ctx context.Context, email string) (*models.StaffUser, error) {
	staff := &models.StaffUser{}
	query := `
		SELECT staff_id, email, name, password_hash, role, is_active, created_at
		FROM staff_users
		WHERE email = $1`

	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&staff.StaffID,
		&staff.Email,
		&staff.Name,
		&staff.PasswordHash,
		&staff.Role,
		&staff.IsActive,
		&staff.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return staff, err
}

func (r *StaffRepository) List(ctx context.Context) ([]models.StaffUser, error) {
	query := `
		SELECT staff_id, email, name, password_hash, role, is_active, created_at
		FROM staff_users
		ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var staffList []models.StaffUser
	for rows.Next() {
		var staff models.StaffUser
		err := rows.Scan(
			&staff.StaffID,
			&staff.Email,
			&staff.Name,
			&staff.PasswordHash,
			&staff.Role,
			&staff.IsActive,
			&staff.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		staffList = append(staffList, staff)
	}

	return staffList, rows.Err()
}

func (r *StaffRepository) Create(ctx context.Context, staff *models.StaffUser) error {
	query := `
		INSERT INTO staff_users (email, name, password_hash, role, is_active)
		VALUES ($1, $2, $3, $4, TRUE)
		RETURNING staff_id, is_active, created_at`

	return r.db.QueryRowContext(ctx, query,
		staff.Email,
		staff.Name,
		staff.PasswordHash,
		staff.Role,
	).Scan(&staff.StaffID, &staff.IsActive, &staff.CreatedAt)
}

func (r *StaffRepository) Delete(ctx context.Context, staffID int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM staff_users WHERE staff_id = $1`, staffID)
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
