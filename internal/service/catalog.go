package service

import (
	"context"
	"fmt"

	apperrors "aquapark/internal/errors"
	"aquapark/internal/models"
)

// TicketTypeStore adds catalog administration on top of TicketCatalog.
type TicketTypeStore interface {
	TicketCatalog
	List(ctx context.Context, activeOnly bool) ([]models.TicketType, error)
	Create(ctx context.Context, ticket *models.TicketType) error
	Update(ctx context.Context, ticketID string, req *models.UpdateTicketTypeRequest) error
	Delete(ctx context.Context, ticketID string) error
}

type CatalogService struct {
	tickets TicketTypeStore
}

func NewCatalogService(tickets TicketTypeStore) *CatalogService {
	return &CatalogService{tickets: tickets}
}

func (s *CatalogService) List(ctx context.Context, activeOnly bool) ([]models.TicketType, error) {
	tickets, err := s.tickets.List(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list ticket types: %w", err)
	}
	return tickets, nil
}

func (s *CatalogService) Create(ctx context.Context, req *models.CreateTicketTypeRequest) (*models.TicketType, error) {
	existing, err := s.tickets.GetByID(ctx, req.TicketID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing ticket type: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("ticket type %s already exists", req.TicketID)
	}

	ticket := &models.TicketType{
		TicketID:    req.TicketID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, fmt.Errorf("failed to create ticket type: %w", err)
	}

	return ticket, nil
}

func (s *CatalogService) Update(ctx context.Context, ticketID string, req *models.UpdateTicketTypeRequest) error {
	if err := s.tickets.Update(ctx, ticketID, req); err != nil {
		if err == apperrors.ErrNotFound {
			return err
		}
		return fmt.Errorf("failed to update ticket type: %w", err)
	}
	return nil
}

func (s *CatalogService) Delete(ctx context.Context, ticketID string) error {
	if err := s.tickets.Delete(ctx, ticketID); err != nil {
		if err == apperrors.ErrNotFound {
			return err
		}
		return fmt.Errorf("failed to delete ticket type: %w", err)
	}
	return nil
}
