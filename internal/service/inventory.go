package service

import (
	"context"
	"fmt"

	apperrors "aquapark/internal/errors"
	"aquapark/internal/models"
)

type InventoryService struct {
	inventory InventoryStore
}

func NewInventoryService(inventory InventoryStore) *InventoryService {
	return &InventoryService{inventory: inventory}
}

// CheckAvailability answers the storefront's pre-checkout question. A date
// without an active record reports unavailable here even though the order
// workflow would sell it uncapped; that asymmetry is inherited behavior the
// storefront relies on to hide unconfigured dates.
func (s *InventoryService) CheckAvailability(ctx context.Context, date string, quantity int) (*models.AvailabilityResponse, error) {
	record, err := s.inventory.GetByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to get inventory for %s: %w", date, err)
	}

	if record == nil || !record.IsActive {
		return &models.AvailabilityResponse{
			Available: false,
			Remaining: 0,
			Message:   "no availability configured for this date",
		}, nil
	}

	remaining := record.Remaining()
	if remaining >= quantity {
		return &models.AvailabilityResponse{Available: true, Remaining: remaining}, nil
	}

	return &models.AvailabilityResponse{
		Available: false,
		Remaining: remaining,
		Message:   fmt.Sprintf("only %d tickets available", remaining),
	}, nil
}

func (s *InventoryService) List(ctx context.Context) ([]models.InventoryRecord, error) {
	records, err := s.inventory.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}
	return records, nil
}

func (s *InventoryService) Create(ctx context.Context, req *models.CreateAvailabilityRequest) (*models.InventoryRecord, error) {
	existing, err := s.inventory.GetByDate(ctx, req.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing inventory: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("availability already exists for %s", req.Date)
	}

	record := &models.InventoryRecord{
		Date:         req.Date,
		TotalTickets: req.TotalTickets,
	}
	if err := s.inventory.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create inventory: %w", err)
	}

	return record, nil
}

func (s *InventoryService) Update(ctx context.Context, date string, req *models.UpdateAvailabilityRequest) error {
	if err := s.inventory.Update(ctx, date, req.TotalTickets, req.IsActive); err != nil {
		if err == apperrors.ErrNotFound {
			return err
		}
		return fmt.Errorf("failed to update inventory: %w", err)
	}
	return nil
}

func (s *InventoryService) Delete(ctx context.Context, date string) error {
	if err := s.inventory.Delete(ctx, date); err != nil {
		if err == apperrors.ErrNotFound {
			return err
		}
		return fmt.Errorf("failed to delete inventory: %w", err)
	}
	return nil
}
