package models

import (
	"errors"
	"fmt"
)

// ErrEmptyOrder is returned when an order request carries no tickets.
// It is rejected before any storage mutation.
var ErrEmptyOrder = errors.New("order must contain at least one ticket")

// ErrJourneyNotFound is returned when a ticket request references a journey
// that does not exist.
var ErrJourneyNotFound = errors.New("journey not found")

// InvalidConfigurationError reports a train whose capacity fields are not
// positive. Upstream data entry should prevent this; it surfaces as a
// server-side data error and is never retried.
type InvalidConfigurationError struct {
	TrainID  int
	CargoNum int
	Seats    int
}

func (e *InvalidConfigurationError) Error() string {
	return fmt.Sprintf("train %d has invalid configuration: cargo_num=%d seats=%d",
		e.TrainID, e.CargoNum, e.Seats)
}

// OutOfRangeError reports a ticket attribute outside the train's configured
// bounds. Field is "cargo" or "seat"; Max is the corresponding capacity bound.
type OutOfRangeError struct {
	Field string
	Value int
	Max   int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("%s must be in range: (1, %d)", e.Field, e.Max)
}

// SeatTakenError reports a collision with an already-committed ticket for the
// same journey. The caller may resubmit with a different seat.
type SeatTakenError struct {
	JourneyID int
	Cargo     int
	Seat      int
}

func (e *SeatTakenError) Error() string {
	return fmt.Sprintf("seat %d in cargo %d is already taken on journey %d",
		e.Seat, e.Cargo, e.JourneyID)
}
