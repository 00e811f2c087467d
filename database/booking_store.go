package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"train-station-api/models"
)

// Postgres error codes relevant to booking
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// BookingStore is the Postgres-backed storage collaborator for order booking.
// The tickets table's unique constraint on (journey_id, cargo, seat) is the
// final arbiter of seat conflicts.
type BookingStore struct {
	db *sql.DB
}

// NewBookingStore returns a store bound to the given database handle
func NewBookingStore(db *sql.DB) *BookingStore {
	return &BookingStore{db: db}
}

// JourneyTrain resolves a journey together with its train configuration
func (s *BookingStore) JourneyTrain(ctx context.Context, journeyID int) (models.Journey, error) {
	var journey models.Journey
	var train models.Train

	err := s.db.QueryRowContext(ctx, `
		SELECT
			j.id, j.route_id, j.train_id, j.departure_time, j.arrival_time,
			t.id, t.name, t.cargo_num, t.seats, t.train_type_id
		FROM journeys j
		JOIN trains t ON j.train_id = t.id
		WHERE j.id = $1
	`, journeyID).Scan(
		&journey.ID, &journey.RouteID, &journey.TrainID, &journey.DepartureTime, &journey.ArrivalTime,
		&train.ID, &train.Name, &train.CargoNum, &train.Seats, &train.TrainTypeID,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Journey{}, models.ErrJourneyNotFound
		}
		return models.Journey{}, fmt.Errorf("query journey %d: %w", journeyID, err)
	}

	journey.Train = train
	return journey, nil
}

// CreateOrder persists the order row and every requested ticket as one
// transaction. Any failing insert rolls back the whole batch, so other
// transactions never observe an order with partial tickets.
func (s *BookingStore) CreateOrder(ctx context.Context, userID int, reqs []models.TicketRequest) (models.Order, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Order{}, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	var order models.Order
	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (user_id)
		VALUES ($1)
		RETURNING id, created_at
	`, userID).Scan(&order.ID, &order.CreatedAt)

	if err != nil {
		return models.Order{}, fmt.Errorf("failed to create order: %w", err)
	}

	order.UserID = userID
	order.Tickets = make([]models.Ticket, 0, len(reqs))

	for _, req := range reqs {
		ticket := models.Ticket{
			Cargo:     req.Cargo,
			Seat:      req.Seat,
			JourneyID: req.JourneyID,
			OrderID:   order.ID,
		}

		err = tx.QueryRowContext(ctx, `
			INSERT INTO tickets (cargo, seat, journey_id, order_id)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`, req.Cargo, req.Seat, req.JourneyID, order.ID).Scan(&ticket.ID)

		if err != nil {
			var pqErr *pq.Error
			if errors.As(err, &pqErr) {
				switch string(pqErr.Code) {
				case pgUniqueViolation:
					return models.Order{}, &models.SeatTakenError{
						JourneyID: req.JourneyID,
						Cargo:     req.Cargo,
						Seat:      req.Seat,
					}
				case pgForeignKeyViolation:
					// Journey deleted between validation and insert.
					return models.Order{}, models.ErrJourneyNotFound
				}
			}
			return models.Order{}, fmt.Errorf("failed to add ticket: %w", err)
		}

		order.Tickets = append(order.Tickets, ticket)
	}

	if err = tx.Commit(); err != nil {
		return models.Order{}, fmt.Errorf("failed to commit order: %w", err)
	}

	return order, nil
}

// TicketCount returns the number of committed tickets for a journey. Reads
// outside the booking transaction see either the pre- or post-commit state,
// never a partial order.
func (s *BookingStore) TicketCount(ctx context.Context, journeyID int) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM tickets
		WHERE journey_id = $1
	`, journeyID).Scan(&count)

	if err != nil {
		return 0, fmt.Errorf("count tickets for journey %d: %w", journeyID, err)
	}
	return count, nil
}

// OrdersByUser returns a user's orders with their tickets, newest first
func (s *BookingStore) OrdersByUser(ctx context.Context, userID int) ([]models.Order, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT
			o.id, o.user_id, o.created_at,
			t.id, t.cargo, t.seat, t.journey_id
		FROM orders o
		LEFT JOIN tickets t ON t.order_id = o.id
		WHERE o.user_id = $1
		ORDER BY o.created_at DESC, o.id DESC, t.id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("query orders for user %d: %w", userID, err)
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		var order models.Order
		var ticketID, cargo, seat, journeyID sql.NullInt64

		err := rows.Scan(&order.ID, &order.UserID, &order.CreatedAt,
			&ticketID, &cargo, &seat, &journeyID)
		if err != nil {
			return nil, err
		}

		if len(orders) == 0 || orders[len(orders)-1].ID != order.ID {
			orders = append(orders, order)
		}

		if ticketID.Valid {
			last := &orders[len(orders)-1]
			last.Tickets = append(last.Tickets, models.Ticket{
				ID:        int(ticketID.Int64),
				Cargo:     int(cargo.Int64),
				Seat:      int(seat.Int64),
				JourneyID: int(journeyID.Int64),
				OrderID:   last.ID,
			})
		}
	}

	return orders, rows.Err()
}
