package database

import (
	"database/sql"
	"log"
)

// Note: In production, use a proper migration tool
var schema = []string{
	`CREATE TABLE IF NOT EXISTS stations (
		id        SERIAL PRIMARY KEY,
		name      VARCHAR(100) NOT NULL,
		latitude  DOUBLE PRECISION NOT NULL,
		longitude DOUBLE PRECISION NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS routes (
		id             SERIAL PRIMARY KEY,
		source_id      INTEGER NOT NULL REFERENCES stations(id) ON DELETE CASCADE,
		destination_id INTEGER NOT NULL REFERENCES stations(id) ON DELETE CASCADE,
		distance       INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS train_types (
		id   SERIAL PRIMARY KEY,
		name VARCHAR(100) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS crews (
		id         SERIAL PRIMARY KEY,
		first_name VARCHAR(50) NOT NULL,
		last_name  VARCHAR(50) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS trains (
		id            SERIAL PRIMARY KEY,
		name          VARCHAR(100) NOT NULL,
		cargo_num     INTEGER NOT NULL CHECK (cargo_num > 0),
		seats         INTEGER NOT NULL CHECK (seats > 0),
		train_type_id INTEGER NOT NULL REFERENCES train_types(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS train_crews (
		train_id INTEGER NOT NULL REFERENCES trains(id) ON DELETE CASCADE,
		crew_id  INTEGER NOT NULL REFERENCES crews(id) ON DELETE CASCADE,
		PRIMARY KEY (train_id, crew_id)
	)`,
	`CREATE TABLE IF NOT EXISTS journeys (
		id             SERIAL PRIMARY KEY,
		route_id       INTEGER NOT NULL REFERENCES routes(id) ON DELETE CASCADE,
		train_id       INTEGER NOT NULL REFERENCES trains(id) ON DELETE CASCADE,
		departure_time TIMESTAMPTZ NOT NULL,
		arrival_time   TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id         SERIAL PRIMARY KEY,
		user_id    INTEGER NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	// The unique constraint over (journey_id, cargo, seat) is the single
	// serialization point for seat conflicts: concurrent bookings of the same
	// physical seat are decided here, not by application-level checks.
	`CREATE TABLE IF NOT EXISTS tickets (
		id         SERIAL PRIMARY KEY,
		cargo      INTEGER NOT NULL,
		seat       INTEGER NOT NULL,
		journey_id INTEGER NOT NULL REFERENCES journeys(id) ON DELETE CASCADE,
		order_id   INTEGER NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
		CONSTRAINT unique_ticket_journey_cargo_seat UNIQUE (journey_id, cargo, seat)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_tickets_order ON tickets (order_id)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_user ON orders (user_id, created_at DESC)`,
}

// RunMigrations ensures all required tables exist
func RunMigrations(db *sql.DB) error {
	log.Println("Checking database schema...")

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	log.Println("Database schema is up to date")
	return nil
}
