package service

import (
	"context"
	"crypto/sha256"
	"fmt"

	apperrors "aquapark/internal/errors"
	"aquapark/internal/models"
)

// StaffStore manages gate and admin accounts.
type StaffStore interface {
	GetByEmail(ctx context.Context, email string) (*models.StaffUser, error)
	List(ctx context.Context) ([]models.StaffUser, error)
	Create(ctx context.Context, staff *models.StaffUser) error
	Delete(ctx context.Context, staffID int64) error
}

type StaffService struct {
	staff StaffStore
}

func NewStaffService(staff StaffStore) *StaffService {
	return &StaffService{staff: staff}
}

// HashPassword derives the stored credential hash. Must match what StaffAuth
// computes from the Basic Auth password.
func HashPassword(password string) string {
	hash := sha256.Sum256([]byte(password))
	return fmt.Sprintf("%x", hash)
}

func (s *StaffService) Create(ctx context.Context, req *models.CreateStaffRequest, role string) (*models.StaffUser, error) {
	existing, err := s.staff.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing staff: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("staff account %s already exists", req.Email)
	}

	if role == "" {
		role = models.RoleStaff
	}

	staff := &models.StaffUser{
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: HashPassword(req.Password),
		Role:         role,
	}
	if err := s.staff.Create(ctx, staff); err != nil {
		return nil, fmt.Errorf("failed to create staff: %w", err)
	}

	return staff, nil
}

func (s *StaffService) List(ctx context.Context) ([]models.StaffUser, error) {
	staffList, err := s.staff.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list staff: %w", err)
	}
	return staffList, nil
}

func (s *StaffService) Delete(ctx context.Context, staffID int64) error {
	if err := s.staff.Delete(ctx, staffID); err != nil {
		if err == apperrors.ErrNotFound {
			return err
		}
		return fmt.Errorf("failed to delete staff: %w", err)
	}
	return nil
}
