package services_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"train-station-api/models"
	"train-station-api/services"
)

type seatKey struct {
	journeyID, cargo, seat int
}

// fakeStore is an in-memory BookingStore. Like the real Postgres store it
// commits an order's tickets all-or-nothing and rejects duplicate
// (journey, cargo, seat) triples atomically, which lets the tests exercise
// the coordinator's concurrency contract without a database.
type fakeStore struct {
	mu           sync.Mutex
	journeys     map[int]models.Journey
	taken        map[seatKey]int
	orders       map[int]models.Order
	nextOrderID  int
	nextTicketID int
	createCalls  int
}

func newFakeStore(journeys ...models.Journey) *fakeStore {
	s := &fakeStore{
		journeys: map[int]models.Journey{},
		taken:    map[seatKey]int{},
		orders:   map[int]models.Order{},
	}
	for _, j := range journeys {
		s.journeys[j.ID] = j
	}
	return s
}

func (s *fakeStore) JourneyTrain(_ context.Context, journeyID int) (models.Journey, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	journey, ok := s.journeys[journeyID]
	if !ok {
		return models.Journey{}, models.ErrJourneyNotFound
	}
	return journey, nil
}

func (s *fakeStore) CreateOrder(_ context.Context, userID int, reqs []models.TicketRequest) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.createCalls++

	// The whole batch is checked under the lock before anything is written,
	// mirroring the transactional rollback of the real store.
	batch := map[seatKey]bool{}
	for _, req := range reqs {
		key := seatKey{req.JourneyID, req.Cargo, req.Seat}
		if _, sold := s.taken[key]; sold || batch[key] {
			return models.Order{}, &models.SeatTakenError{
				JourneyID: req.JourneyID,
				Cargo:     req.Cargo,
				Seat:      req.Seat,
			}
		}
		batch[key] = true
	}

	s.nextOrderID++
	order := models.Order{ID: s.nextOrderID, UserID: userID}
	for _, req := range reqs {
		s.nextTicketID++
		order.Tickets = append(order.Tickets, models.Ticket{
			ID:        s.nextTicketID,
			Cargo:     req.Cargo,
			Seat:      req.Seat,
			JourneyID: req.JourneyID,
			OrderID:   order.ID,
		})
		s.taken[seatKey{req.JourneyID, req.Cargo, req.Seat}] = order.ID
	}
	s.orders[order.ID] = order

	return order, nil
}

func (s *fakeStore) TicketCount(_ context.Context, journeyID int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for key := range s.taken {
		if key.journeyID == journeyID {
			count++
		}
	}
	return count, nil
}

func (s *fakeStore) OrdersByUser(_ context.Context, userID int) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders := []models.Order{}
	for _, order := range s.orders {
		if order.UserID == userID {
			orders = append(orders, order)
		}
	}
	return orders, nil
}

func (s *fakeStore) orderCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.orders)
}

type fakePublisher struct {
	mu   sync.Mutex
	keys []string
}

func (p *fakePublisher) PublishJSON(_ context.Context, key string, _ any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.keys = append(p.keys, key)
	return nil
}

// journey 1 runs a train with 2 cargo cars of 3 seats each (capacity 6)
func smallJourney() models.Journey {
	return models.Journey{
		ID:      1,
		TrainID: 1,
		Train:   models.Train{ID: 1, Name: "Express", CargoNum: 2, Seats: 3},
	}
}

func TestCreateOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("should commit the order with all its tickets", func(t *testing.T) {
		store := newFakeStore(smallJourney())
		svc := services.NewBookingService(store, nil)

		order, err := svc.CreateOrder(ctx, 42, []models.TicketRequest{
			{JourneyID: 1, Cargo: 1, Seat: 1},
			{JourneyID: 1, Cargo: 2, Seat: 3},
		})
		require.NoError(t, err)

		assert.NotZero(t, order.ID)
		assert.Equal(t, 42, order.UserID)
		require.Len(t, order.Tickets, 2)
		assert.Equal(t, order.ID, order.Tickets[0].OrderID)
	})

	t.Run("should reject an empty batch before touching storage", func(t *testing.T) {
		store := newFakeStore(smallJourney())
		svc := services.NewBookingService(store, nil)

		_, err := svc.CreateOrder(ctx, 42, nil)
		require.ErrorIs(t, err, models.ErrEmptyOrder)

		assert.Zero(t, store.createCalls)
		assert.Zero(t, store.orderCount())
	})

	t.Run("should reject an unknown journey before any mutation", func(t *testing.T) {
		store := newFakeStore(smallJourney())
		svc := services.NewBookingService(store, nil)

		_, err := svc.CreateOrder(ctx, 42, []models.TicketRequest{
			{JourneyID: 999, Cargo: 1, Seat: 1},
		})
		require.ErrorIs(t, err, models.ErrJourneyNotFound)

		assert.Zero(t, store.createCalls)
	})

	t.Run("should reject out-of-range cargo naming the bound", func(t *testing.T) {
		store := newFakeStore(smallJourney())
		svc := services.NewBookingService(store, nil)

		_, err := svc.CreateOrder(ctx, 42, []models.TicketRequest{
			{JourneyID: 1, Cargo: 3, Seat: 1},
		})
		require.Error(t, err)

		var outOfRange *models.OutOfRangeError
		require.ErrorAs(t, err, &outOfRange)
		assert.Equal(t, "cargo", outOfRange.Field)
		assert.Equal(t, 2, outOfRange.Max)
		assert.Zero(t, store.createCalls)
	})

	t.Run("should fail the whole batch when one ticket is invalid", func(t *testing.T) {
		store := newFakeStore(smallJourney())
		svc := services.NewBookingService(store, nil)

		_, err := svc.CreateOrder(ctx, 42, []models.TicketRequest{
			{JourneyID: 1, Cargo: 1, Seat: 1},
			{JourneyID: 1, Cargo: 1, Seat: 4}, // seat out of range
		})
		require.Error(t, err)

		var outOfRange *models.OutOfRangeError
		require.ErrorAs(t, err, &outOfRange)
		assert.Equal(t, "seat", outOfRange.Field)

		count, err := store.TicketCount(ctx, 1)
		require.NoError(t, err)
		assert.Zero(t, count)
		assert.Zero(t, store.orderCount())
	})

	t.Run("should fail when the batch books the same seat twice", func(t *testing.T) {
		store := newFakeStore(smallJourney())
		svc := services.NewBookingService(store, nil)

		_, err := svc.CreateOrder(ctx, 42, []models.TicketRequest{
			{JourneyID: 1, Cargo: 1, Seat: 1},
			{JourneyID: 1, Cargo: 1, Seat: 1},
		})
		require.Error(t, err)

		var seatTaken *models.SeatTakenError
		require.ErrorAs(t, err, &seatTaken)

		count, err := store.TicketCount(ctx, 1)
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("should fail with seat taken when the seat was sold earlier", func(t *testing.T) {
		store := newFakeStore(smallJourney())
		svc := services.NewBookingService(store, nil)

		_, err := svc.CreateOrder(ctx, 42, []models.TicketRequest{{JourneyID: 1, Cargo: 1, Seat: 1}})
		require.NoError(t, err)

		_, err = svc.CreateOrder(ctx, 43, []models.TicketRequest{{JourneyID: 1, Cargo: 1, Seat: 1}})
		require.Error(t, err)

		var seatTaken *models.SeatTakenError
		require.ErrorAs(t, err, &seatTaken)
		assert.Equal(t, 1, seatTaken.JourneyID)
		assert.Equal(t, 1, seatTaken.Cargo)
		assert.Equal(t, 1, seatTaken.Seat)

		// the failed attempt left nothing behind
		assert.Equal(t, 1, store.orderCount())
	})

	t.Run("should publish order.created after a successful commit", func(t *testing.T) {
		store := newFakeStore(smallJourney())
		publisher := &fakePublisher{}
		svc := services.NewBookingService(store, publisher)

		_, err := svc.CreateOrder(ctx, 42, []models.TicketRequest{{JourneyID: 1, Cargo: 1, Seat: 1}})
		require.NoError(t, err)

		assert.Equal(t, []string{"order.created"}, publisher.keys)
	})

	t.Run("should not publish when the booking fails", func(t *testing.T) {
		store := newFakeStore(smallJourney())
		publisher := &fakePublisher{}
		svc := services.NewBookingService(store, publisher)

		_, err := svc.CreateOrder(ctx, 42, []models.TicketRequest{{JourneyID: 1, Cargo: 3, Seat: 1}})
		require.Error(t, err)

		assert.Empty(t, publisher.keys)
	})
}

func TestAvailableSeats(t *testing.T) {
	ctx := context.Background()

	t.Run("should report capacity minus committed tickets", func(t *testing.T) {
		store := newFakeStore(smallJourney())
		svc := services.NewBookingService(store, nil)

		available, err := svc.AvailableSeats(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, 6, available)

		_, err = svc.CreateOrder(ctx, 42, []models.TicketRequest{{JourneyID: 1, Cargo: 1, Seat: 1}})
		require.NoError(t, err)

		available, err = svc.AvailableSeats(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, 5, available)
	})

	t.Run("should fail for an unknown journey", func(t *testing.T) {
		store := newFakeStore()
		svc := services.NewBookingService(store, nil)

		_, err := svc.AvailableSeats(ctx, 1)
		require.ErrorIs(t, err, models.ErrJourneyNotFound)
	})

	t.Run("should surface invalid train configuration", func(t *testing.T) {
		store := newFakeStore(models.Journey{ID: 2, Train: models.Train{ID: 2, CargoNum: 0, Seats: 3}})
		svc := services.NewBookingService(store, nil)

		_, err := svc.AvailableSeats(ctx, 2)
		require.Error(t, err)

		var invalid *models.InvalidConfigurationError
		assert.ErrorAs(t, err, &invalid)
	})
}

func TestConcurrentBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("exactly one of two identical concurrent bookings wins", func(t *testing.T) {
		store := newFakeStore(smallJourney())
		svc := services.NewBookingService(store, nil)

		start := make(chan struct{})
		errs := make(chan error, 2)

		for i := 0; i < 2; i++ {
			userID := 42 + i
			go func() {
				<-start
				_, err := svc.CreateOrder(ctx, userID, []models.TicketRequest{
					{JourneyID: 1, Cargo: 2, Seat: 3},
				})
				errs <- err
			}()
		}
		close(start)

		var failures []error
		for i := 0; i < 2; i++ {
			if err := <-errs; err != nil {
				failures = append(failures, err)
			}
		}

		require.Len(t, failures, 1, "exactly one booking must fail")

		var seatTaken *models.SeatTakenError
		require.ErrorAs(t, failures[0], &seatTaken)
		assert.Equal(t, 2, seatTaken.Cargo)
		assert.Equal(t, 3, seatTaken.Seat)

		count, err := store.TicketCount(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("disjoint concurrent bookings all succeed", func(t *testing.T) {
		store := newFakeStore(smallJourney())
		svc := services.NewBookingService(store, nil)

		var wg sync.WaitGroup
		errs := make(chan error, 6)

		for cargo := 1; cargo <= 2; cargo++ {
			for seat := 1; seat <= 3; seat++ {
				wg.Add(1)
				go func(cargo, seat int) {
					defer wg.Done()
					_, err := svc.CreateOrder(ctx, 42, []models.TicketRequest{
						{JourneyID: 1, Cargo: cargo, Seat: seat},
					})
					errs <- err
				}(cargo, seat)
			}
		}
		wg.Wait()
		close(errs)

		for err := range errs {
			assert.NoError(t, err)
		}

		available, err := svc.AvailableSeats(ctx, 1)
		require.NoError(t, err)
		assert.Zero(t, available)
	})
}

func TestOrdersByUser(t *testing.T) {
	ctx := context.Background()

	store := newFakeStore(smallJourney())
	svc := services.NewBookingService(store, nil)

	_, err := svc.CreateOrder(ctx, 42, []models.TicketRequest{{JourneyID: 1, Cargo: 1, Seat: 1}})
	require.NoError(t, err)
	_, err = svc.CreateOrder(ctx, 43, []models.TicketRequest{{JourneyID: 1, Cargo: 1, Seat: 2}})
	require.NoError(t, err)

	orders, err := svc.OrdersByUser(ctx, 42)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, 42, orders[0].UserID)
	require.Len(t, orders[0].Tickets, 1)
	assert.Equal(t, 1, orders[0].Tickets[0].Seat)
}
