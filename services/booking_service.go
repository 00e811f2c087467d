package services

import (
	"context"
	"log"

	"train-station-api/models"
)

// BookingStore is the storage collaborator the booking core depends on. The
// implementation must commit an order and its tickets atomically and reject
// duplicate (journey, cargo, seat) triples with models.SeatTakenError.
type BookingStore interface {
	JourneyTrain(ctx context.Context, journeyID int) (models.Journey, error)
	CreateOrder(ctx context.Context, userID int, tickets []models.TicketRequest) (models.Order, error)
	TicketCount(ctx context.Context, journeyID int) (int, error)
	OrdersByUser(ctx context.Context, userID int) ([]models.Order, error)
}

// EventPublisher notifies downstream consumers about committed orders
type EventPublisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

// BookingService coordinates order creation: it validates every requested
// ticket against the train's bounds, then hands the whole batch to the store
// for an all-or-nothing commit. Seat conflicts between concurrent orders are
// decided solely by the storage layer's unique constraint; the service holds
// no locks of its own.
type BookingService struct {
	store  BookingStore
	events EventPublisher
}

// NewBookingService creates a booking service. events may be nil.
func NewBookingService(store BookingStore, events EventPublisher) *BookingService {
	return &BookingService{store: store, events: events}
}

// CreateOrder books all requested tickets under one new order. Either every
// ticket is reserved or none are; a failed call leaves no rows behind.
func (s *BookingService) CreateOrder(ctx context.Context, userID int, reqs []models.TicketRequest) (*models.Order, error) {
	if len(reqs) == 0 {
		return nil, models.ErrEmptyOrder
	}

	// Resolve each journey once and bounds-check every request before any
	// storage mutation. Occupancy is not checked here: the unique constraint
	// decides seat conflicts at commit time.
	journeys := make(map[int]models.Journey, len(reqs))
	for _, req := range reqs {
		journey, ok := journeys[req.JourneyID]
		if !ok {
			var err error
			journey, err = s.store.JourneyTrain(ctx, req.JourneyID)
			if err != nil {
				return nil, err
			}
			journeys[req.JourneyID] = journey
		}

		if err := models.ValidateTicket(req.Cargo, req.Seat, journey.Train); err != nil {
			return nil, err
		}
	}

	order, err := s.store.CreateOrder(ctx, userID, reqs)
	if err != nil {
		return nil, err
	}

	log.Printf("Order created: id=%d user=%d tickets=%d", order.ID, userID, len(order.Tickets))

	if s.events != nil {
		if err := s.events.PublishJSON(ctx, "order.created", map[string]any{
			"order_id": order.ID,
			"user_id":  order.UserID,
			"tickets":  order.Tickets,
		}); err != nil {
			log.Printf("Failed to publish order.created for order %d: %v", order.ID, err)
		}
	}

	return &order, nil
}

// AvailableSeats returns the count of seats still for sale on a journey:
// train capacity minus committed tickets.
func (s *BookingService) AvailableSeats(ctx context.Context, journeyID int) (int, error) {
	journey, err := s.store.JourneyTrain(ctx, journeyID)
	if err != nil {
		return 0, err
	}

	capacity, err := journey.Train.Capacity()
	if err != nil {
		return 0, err
	}

	sold, err := s.store.TicketCount(ctx, journeyID)
	if err != nil {
		return 0, err
	}

	return capacity - sold, nil
}

// OrdersByUser returns the user's orders with tickets, newest first
func (s *BookingService) OrdersByUser(ctx context.Context, userID int) ([]models.Order, error) {
	return s.store.OrdersByUser(ctx, userID)
}

var bookingService *BookingService

// InitBookingService wires the package-level service used by the handlers
func InitBookingService(store BookingStore, events EventPublisher) {
	bookingService = NewBookingService(store, events)
}

// CreateOrder books tickets through the package-level booking service
func CreateOrder(ctx context.Context, userID int, reqs []models.TicketRequest) (*models.Order, error) {
	return bookingService.CreateOrder(ctx, userID, reqs)
}

// AvailableSeats reports remaining capacity through the package-level service
func AvailableSeats(ctx context.Context, journeyID int) (int, error) {
	return bookingService.AvailableSeats(ctx, journeyID)
}

// OrdersByUser lists a user's orders through the package-level service
func OrdersByUser(ctx context.Context, userID int) ([]models.Order, error) {
	return bookingService.OrdersByUser(ctx, userID)
}
