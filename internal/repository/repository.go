package repository

import (
	"aquapark/internal/database"
)

type Repositories struct {
	Inventory   *InventoryRepository
	Orders      *OrderRepository
	TicketTypes *TicketTypeRepository
	Staff       *StaffRepository
}

func NewRepositories(db *database.DB) *Repositories {
	return &Repositories{
		Inventory:   NewInventoryRepository(db),
		Orders:      NewOrderRepository(db),
		TicketTypes: NewTicketTypeRepository(db),
		Staff:       NewStaffRepository(db),
	}
}
