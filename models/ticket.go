package models

// Ticket is one sold place on a journey. Tickets are created only inside an
// order's transaction and never mutated afterwards; they disappear only when
// their order or journey is deleted.
type Ticket struct {
	ID        int `json:"id"`
	Cargo     int `json:"cargo"`
	Seat      int `json:"seat"`
	JourneyID int `json:"journey_id"`
	OrderID   int `json:"order_id"`
}

// TicketRequest is one requested place within an order. Cargo and seat
// bounds are checked by ValidateTicket rather than binding tags so the error
// can name the train's actual limits.
type TicketRequest struct {
	JourneyID int `json:"journey_id" binding:"required"`
	Cargo     int `json:"cargo"`
	Seat      int `json:"seat"`
}

// ValidateTicket checks a requested (cargo, seat) pair against the train's
// configured bounds. The check is structural only: occupancy is decided by
// the tickets table's unique constraint at commit time, never here.
func ValidateTicket(cargo, seat int, train Train) error {
	if cargo < 1 || cargo > train.CargoNum {
		return &OutOfRangeError{Field: "cargo", Value: cargo, Max: train.CargoNum}
	}
	if seat < 1 || seat > train.Seats {
		return &OutOfRangeError{Field: "seat", Value: seat, Max: train.Seats}
	}
	return nil
}
