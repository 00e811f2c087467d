package services

import (
	"database/sql"
	"errors"
	"fmt"

	"train-station-api/database"
	"train-station-api/models"
)

// CreateTrainType inserts a new train type
func CreateTrainType(req models.TrainTypeRequest) (*models.TrainType, error) {
	db := database.GetDB()

	trainType := models.TrainType{Name: req.Name}
	err := db.QueryRow(`
		INSERT INTO train_types (name)
		VALUES ($1)
		RETURNING id
	`, trainType.Name).Scan(&trainType.ID)

	if err != nil {
		return nil, fmt.Errorf("failed to create train type: %w", err)
	}

	return &trainType, nil
}

// GetAllTrainTypes retrieves all train types
func GetAllTrainTypes() ([]models.TrainType, error) {
	db := database.GetDB()
	rows, err := db.Query(`SELECT id, name FROM train_types ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	types := []models.TrainType{}
	for rows.Next() {
		var trainType models.TrainType
		if err := rows.Scan(&trainType.ID, &trainType.Name); err != nil {
			return nil, err
		}
		types = append(types, trainType)
	}

	return types, rows.Err()
}

// CreateCrew inserts a new crew member
func CreateCrew(req models.CrewRequest) (*models.Crew, error) {
	db := database.GetDB()

	crew := models.Crew{FirstName: req.FirstName, LastName: req.LastName}
	err := db.QueryRow(`
		INSERT INTO crews (first_name, last_name)
		VALUES ($1, $2)
		RETURNING id
	`, crew.FirstName, crew.LastName).Scan(&crew.ID)

	if err != nil {
		return nil, fmt.Errorf("failed to create crew: %w", err)
	}

	return &crew, nil
}

// GetAllCrews retrieves all crew members
func GetAllCrews() ([]models.Crew, error) {
	db := database.GetDB()
	rows, err := db.Query(`
		SELECT id, first_name, last_name
		FROM crews
		ORDER BY last_name, first_name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	crews := []models.Crew{}
	for rows.Next() {
		var crew models.Crew
		if err := rows.Scan(&crew.ID, &crew.FirstName, &crew.LastName); err != nil {
			return nil, err
		}
		crews = append(crews, crew)
	}

	return crews, rows.Err()
}

// CreateTrain inserts a new train and assigns its crew in one transaction
func CreateTrain(req models.TrainRequest) (*models.Train, error) {
	db := database.GetDB()

	tx, err := db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	var trainID int
	err = tx.QueryRow(`
		INSERT INTO trains (name, cargo_num, seats, train_type_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, req.Name, req.CargoNum, req.Seats, req.TrainTypeID).Scan(&trainID)

	if err != nil {
		return nil, fmt.Errorf("failed to create train: %w", err)
	}

	for _, crewID := range req.CrewIDs {
		_, err = tx.Exec(`
			INSERT INTO train_crews (train_id, crew_id)
			VALUES ($1, $2)
		`, trainID, crewID)
		if err != nil {
			return nil, fmt.Errorf("failed to assign crew %d: %w", crewID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit train: %w", err)
	}

	return GetTrain(trainID)
}

// GetAllTrains retrieves all trains with their types
func GetAllTrains() ([]models.Train, error) {
	db := database.GetDB()
	rows, err := db.Query(`
		SELECT
			t.id, t.name, t.cargo_num, t.seats, t.train_type_id,
			tt.id, tt.name
		FROM trains t
		JOIN train_types tt ON t.train_type_id = tt.id
		ORDER BY t.id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	trains := []models.Train{}
	for rows.Next() {
		var train models.Train
		err := rows.Scan(
			&train.ID, &train.Name, &train.CargoNum, &train.Seats, &train.TrainTypeID,
			&train.TrainType.ID, &train.TrainType.Name,
		)
		if err != nil {
			return nil, err
		}
		trains = append(trains, train)
	}

	return trains, rows.Err()
}

// GetTrain retrieves a train by ID with its type and crew
func GetTrain(id int) (*models.Train, error) {
	db := database.GetDB()

	var train models.Train
	err := db.QueryRow(`
		SELECT
			t.id, t.name, t.cargo_num, t.seats, t.train_type_id,
			tt.id, tt.name
		FROM trains t
		JOIN train_types tt ON t.train_type_id = tt.id
		WHERE t.id = $1
	`, id).Scan(
		&train.ID, &train.Name, &train.CargoNum, &train.Seats, &train.TrainTypeID,
		&train.TrainType.ID, &train.TrainType.Name,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	crews, err := trainCrews(db, train.ID)
	if err != nil {
		return nil, err
	}
	train.Crews = crews

	return &train, nil
}

func trainCrews(db *sql.DB, trainID int) ([]models.Crew, error) {
	rows, err := db.Query(`
		SELECT c.id, c.first_name, c.last_name
		FROM crews c
		JOIN train_crews tc ON tc.crew_id = c.id
		WHERE tc.train_id = $1
		ORDER BY c.id
	`, trainID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	crews := []models.Crew{}
	for rows.Next() {
		var crew models.Crew
		if err := rows.Scan(&crew.ID, &crew.FirstName, &crew.LastName); err != nil {
			return nil, err
		}
		crews = append(crews, crew)
	}

	return crews, rows.Err()
}
