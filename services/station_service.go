package services

import (
	"database/sql"
	"errors"
	"fmt"

	"train-station-api/database"
	"train-station-api/models"
)

// ErrNotFound is returned when a requested resource does not exist
var ErrNotFound = errors.New("not found")

// CreateStation inserts a new station
func CreateStation(req models.StationRequest) (*models.Station, error) {
	db := database.GetDB()

	station := models.Station{
		Name:      req.Name,
		Latitude:  *req.Latitude,
		Longitude: *req.Longitude,
	}

	err := db.QueryRow(`
		INSERT INTO stations (name, latitude, longitude)
		VALUES ($1, $2, $3)
		RETURNING id
	`, station.Name, station.Latitude, station.Longitude).Scan(&station.ID)

	if err != nil {
		return nil, fmt.Errorf("failed to create station: %w", err)
	}

	return &station, nil
}

// GetAllStations retrieves all stations
func GetAllStations() ([]models.Station, error) {
	db := database.GetDB()
	rows, err := db.Query(`
		SELECT id, name, latitude, longitude
		FROM stations
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stations := []models.Station{}
	for rows.Next() {
		var station models.Station
		err := rows.Scan(&station.ID, &station.Name, &station.Latitude, &station.Longitude)
		if err != nil {
			return nil, err
		}
		stations = append(stations, station)
	}

	return stations, rows.Err()
}

// GetStation retrieves a station by ID
func GetStation(id int) (*models.Station, error) {
	db := database.GetDB()

	var station models.Station
	err := db.QueryRow(`
		SELECT id, name, latitude, longitude
		FROM stations
		WHERE id = $1
	`, id).Scan(&station.ID, &station.Name, &station.Latitude, &station.Longitude)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &station, nil
}

// CreateRoute inserts a new route between two stations
func CreateRoute(req models.RouteRequest) (*models.Route, error) {
	db := database.GetDB()

	route := models.Route{
		SourceID:      req.SourceID,
		DestinationID: req.DestinationID,
		Distance:      req.Distance,
	}

	err := db.QueryRow(`
		INSERT INTO routes (source_id, destination_id, distance)
		VALUES ($1, $2, $3)
		RETURNING id
	`, route.SourceID, route.DestinationID, route.Distance).Scan(&route.ID)

	if err != nil {
		return nil, fmt.Errorf("failed to create route: %w", err)
	}

	return GetRoute(route.ID)
}

// GetAllRoutes retrieves all routes with their stations
func GetAllRoutes() ([]models.Route, error) {
	db := database.GetDB()
	rows, err := db.Query(`
		SELECT
			r.id, r.source_id, r.destination_id, r.distance,
			s.id, s.name, s.latitude, s.longitude,
			d.id, d.name, d.latitude, d.longitude
		FROM routes r
		JOIN stations s ON r.source_id = s.id
		JOIN stations d ON r.destination_id = d.id
		ORDER BY r.id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	routes := []models.Route{}
	for rows.Next() {
		var route models.Route
		err := rows.Scan(
			&route.ID, &route.SourceID, &route.DestinationID, &route.Distance,
			&route.Source.ID, &route.Source.Name, &route.Source.Latitude, &route.Source.Longitude,
			&route.Destination.ID, &route.Destination.Name, &route.Destination.Latitude, &route.Destination.Longitude,
		)
		if err != nil {
			return nil, err
		}
		routes = append(routes, route)
	}

	return routes, rows.Err()
}

// GetRoute retrieves a route by ID with its stations
func GetRoute(id int) (*models.Route, error) {
	db := database.GetDB()

	var route models.Route
	err := db.QueryRow(`
		SELECT
			r.id, r.source_id, r.destination_id, r.distance,
			s.id, s.name, s.latitude, s.longitude,
			d.id, d.name, d.latitude, d.longitude
		FROM routes r
		JOIN stations s ON r.source_id = s.id
		JOIN stations d ON r.destination_id = d.id
		WHERE r.id = $1
	`, id).Scan(
		&route.ID, &route.SourceID, &route.DestinationID, &route.Distance,
		&route.Source.ID, &route.Source.Name, &route.Source.Latitude, &route.Source.Longitude,
		&route.Destination.ID, &route.Destination.Name, &route.Destination.Latitude, &route.Destination.Longitude,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &route, nil
}
