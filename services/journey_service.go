package services

import (
	"database/sql"
	"errors"
	"fmt"

	"train-station-api/database"
	"train-station-api/models"
)

// CreateJourney inserts a new journey
func CreateJourney(req models.JourneyRequest) (*models.Journey, error) {
	db := database.GetDB()

	if !req.ArrivalTime.After(req.DepartureTime) {
		return nil, fmt.Errorf("arrival time must be after departure time")
	}

	journey := models.Journey{
		RouteID:       req.RouteID,
		TrainID:       req.TrainID,
		DepartureTime: req.DepartureTime,
		ArrivalTime:   req.ArrivalTime,
	}

	err := db.QueryRow(`
		INSERT INTO journeys (route_id, train_id, departure_time, arrival_time)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, journey.RouteID, journey.TrainID, journey.DepartureTime, journey.ArrivalTime).Scan(&journey.ID)

	if err != nil {
		return nil, fmt.Errorf("failed to create journey: %w", err)
	}

	return &journey, nil
}

// GetAllJourneys retrieves the journey list view. Seat availability for every
// journey is derived in a single batched query (capacity minus committed
// ticket count) rather than one round trip per journey.
func GetAllJourneys() ([]models.JourneySummary, error) {
	db := database.GetDB()
	rows, err := db.Query(`
		SELECT
			j.id, r.distance, t.name, tt.name, j.departure_time,
			t.id, t.cargo_num, t.seats,
			COUNT(tk.id)
		FROM journeys j
		JOIN routes r ON j.route_id = r.id
		JOIN trains t ON j.train_id = t.id
		JOIN train_types tt ON t.train_type_id = tt.id
		LEFT JOIN tickets tk ON tk.journey_id = j.id
		GROUP BY j.id, r.distance, t.name, tt.name, j.departure_time, t.id, t.cargo_num, t.seats
		ORDER BY j.id
	`)
	if err != nil {
		return nil, fmt.Errorf("error querying journeys: %w", err)
	}
	defer rows.Close()

	journeys := []models.JourneySummary{}
	for rows.Next() {
		var summary models.JourneySummary
		var train models.Train
		var sold int

		err := rows.Scan(
			&summary.ID, &summary.RouteDistance, &summary.TrainName, &summary.TrainType,
			&summary.DepartureTime,
			&train.ID, &train.CargoNum, &train.Seats,
			&sold,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning journey: %w", err)
		}

		capacity, err := train.Capacity()
		if err != nil {
			return nil, err
		}

		summary.TicketsAvailable = capacity - sold
		journeys = append(journeys, summary)
	}

	return journeys, rows.Err()
}

// GetJourney retrieves a journey with its route, train, crew and the seats
// already taken on it
func GetJourney(id int) (*models.JourneyDetail, error) {
	db := database.GetDB()

	var detail models.JourneyDetail
	err := db.QueryRow(`
		SELECT
			j.id, j.route_id, j.train_id, j.departure_time, j.arrival_time,
			r.id, r.source_id, r.destination_id, r.distance,
			s.id, s.name, s.latitude, s.longitude,
			d.id, d.name, d.latitude, d.longitude,
			t.id, t.name, t.cargo_num, t.seats, t.train_type_id,
			tt.id, tt.name
		FROM journeys j
		JOIN routes r ON j.route_id = r.id
		JOIN stations s ON r.source_id = s.id
		JOIN stations d ON r.destination_id = d.id
		JOIN trains t ON j.train_id = t.id
		JOIN train_types tt ON t.train_type_id = tt.id
		WHERE j.id = $1
	`, id).Scan(
		&detail.ID, &detail.RouteID, &detail.TrainID, &detail.DepartureTime, &detail.ArrivalTime,
		&detail.Route.ID, &detail.Route.SourceID, &detail.Route.DestinationID, &detail.Route.Distance,
		&detail.Route.Source.ID, &detail.Route.Source.Name, &detail.Route.Source.Latitude, &detail.Route.Source.Longitude,
		&detail.Route.Destination.ID, &detail.Route.Destination.Name, &detail.Route.Destination.Latitude, &detail.Route.Destination.Longitude,
		&detail.Train.ID, &detail.Train.Name, &detail.Train.CargoNum, &detail.Train.Seats, &detail.Train.TrainTypeID,
		&detail.Train.TrainType.ID, &detail.Train.TrainType.Name,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	crews, err := trainCrews(db, detail.Train.ID)
	if err != nil {
		return nil, err
	}
	detail.Train.Crews = crews

	taken, err := takenSeats(db, detail.ID)
	if err != nil {
		return nil, err
	}
	detail.TakenSeats = taken

	capacity, err := detail.Train.Capacity()
	if err != nil {
		return nil, err
	}
	detail.TicketsAvailable = capacity - len(taken)

	return &detail, nil
}

func takenSeats(db *sql.DB, journeyID int) ([]models.TakenSeat, error) {
	rows, err := db.Query(`
		SELECT cargo, seat
		FROM tickets
		WHERE journey_id = $1
		ORDER BY cargo, seat
	`, journeyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seats := []models.TakenSeat{}
	for rows.Next() {
		var seat models.TakenSeat
		if err := rows.Scan(&seat.Cargo, &seat.Seat); err != nil {
			return nil, err
		}
		seats = append(seats, seat)
	}

	return seats, rows.Err()
}
