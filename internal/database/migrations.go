package database

import (
	"fmt"
	"log/slog"
)

func (db *DB) RunMigrations() error {
	slog.Info("Running database migrations...")

	migrations := []string{
		createTicketInventoryTable,
		createOrdersTable,
		createTicketTypesTable,
		createStaffUsersTable,
		createOrdersVisitDateIndex,
	}

	for i, migration := range migrations {
		slog.Info("Running migration", "step", i+1)
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	slog.Info("All migrations completed successfully")
	return nil
}

const createTicketInventoryTable = `
CREATE TABLE IF NOT EXISTS ticket_inventory (
    date VARCHAR(10) PRIMARY KEY,
    total_tickets INTEGER NOT NULL,
    tickets_sold INTEGER NOT NULL DEFAULT 0,
    is_active BOOLEAN NOT NULL DEFAULT TRUE,
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP NOT NULL DEFAULT NOW(),

    CHECK (total_tickets >= 0),
    CHECK (tickets_sold >= 0 AND tickets_sold <= total_tickets)
);`

const createOrdersTable = `
CREATE TABLE IF NOT EXISTS orders (
    id SERIAL PRIMARY KEY,
    order_id VARCHAR(32) UNIQUE NOT NULL,
    ticket_code VARCHAR(32) UNIQUE NOT NULL,
    customer_name VARCHAR(255) NOT NULL,
    customer_email VARCHAR(255) NOT NULL,
    customer_phone VARCHAR(50) NOT NULL DEFAULT '',
    items JSONB NOT NULL DEFAULT '[]',
    total_amount DECIMAL(10,2) NOT NULL DEFAULT 0,
    visit_date VARCHAR(10) NOT NULL,
    payment_status VARCHAR(20) NOT NULL DEFAULT 'pending',
    payment_id VARCHAR(255),
    preference_id VARCHAR(255),
    validated BOOLEAN NOT NULL DEFAULT FALSE,
    validated_at TIMESTAMP,
    validated_by INTEGER,
    validated_by_name VARCHAR(255),
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP NOT NULL DEFAULT NOW(),

    CHECK (payment_status IN ('pending', 'approved', 'rejected', 'cancelled', 'refunded'))
);`

const createTicketTypesTable = `
CREATE TABLE IF NOT EXISTS ticket_types (
    ticket_id VARCHAR(64) PRIMARY KEY,
    name VARCHAR(255) NOT NULL,
    description TEXT,
    price DECIMAL(10,2) NOT NULL DEFAULT 0,
    is_active BOOLEAN NOT NULL DEFAULT TRUE,
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP NOT NULL DEFAULT NOW()
);`

const createStaffUsersTable = `
CREATE TABLE IF NOT EXISTS staff_users (
    staff_id SERIAL PRIMARY KEY,
    email VARCHAR(255) UNIQUE NOT NULL,
    name VARCHAR(255) NOT NULL,
    password_hash VARCHAR(64) NOT NULL,
    role VARCHAR(20) NOT NULL DEFAULT 'staff',
    is_active BOOLEAN NOT NULL DEFAULT TRUE,
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),

    CHECK (role IN ('staff', 'admin'))
);`

const createOrdersVisitDateIndex = `
CREATE INDEX IF NOT EXISTS orders_visit_date_idx ON orders (visit_date);
CREATE INDEX IF NOT EXISTS orders_payment_id_idx ON orders (payment_id);`
