package models

// TrainType categorizes trains (e.g. freight, express)
type TrainType struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Train represents rolling stock: CargoNum cargo cars with Seats places each.
// The configuration is treated as immutable once a journey references the
// train; existing tickets are never retroactively invalidated.
type Train struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	CargoNum    int    `json:"cargo_num"`
	Seats       int    `json:"seats"`
	TrainTypeID int    `json:"train_type_id"`

	// Joined fields
	TrainType TrainType `json:"train_type"`
	Crews     []Crew    `json:"crews,omitempty"`
}

// Capacity returns the total number of sellable seats on the train.
func (t Train) Capacity() (int, error) {
	if t.CargoNum <= 0 || t.Seats <= 0 {
		return 0, &InvalidConfigurationError{TrainID: t.ID, CargoNum: t.CargoNum, Seats: t.Seats}
	}
	return t.CargoNum * t.Seats, nil
}

// TrainTypeRequest represents a train type creation request
type TrainTypeRequest struct {
	Name string `json:"name" binding:"required"`
}

// TrainRequest represents a train creation request
type TrainRequest struct {
	Name        string `json:"name" binding:"required"`
	CargoNum    int    `json:"cargo_num" binding:"required,gt=0"`
	Seats       int    `json:"seats" binding:"required,gt=0"`
	TrainTypeID int    `json:"train_type_id" binding:"required"`
	CrewIDs     []int  `json:"crew_ids"`
}
