package models

import "time"

// Journey is a scheduled run of a train over a route. Its seat universe is
// fixed by the train's capacity.
type Journey struct {
	ID            int       `json:"id"`
	RouteID       int       `json:"route_id"`
	TrainID       int       `json:"train_id"`
	DepartureTime time.Time `json:"departure_time"`
	ArrivalTime   time.Time `json:"arrival_time"`

	// Joined fields
	Route Route `json:"route"`
	Train Train `json:"train"`
}

// JourneySummary is the list-view projection of a journey, including the
// count of seats still available for sale.
type JourneySummary struct {
	ID               int       `json:"id"`
	RouteDistance    int       `json:"route_distance"`
	TrainName        string    `json:"train_name"`
	TrainType        string    `json:"train_type"`
	DepartureTime    time.Time `json:"departure_time"`
	TicketsAvailable int       `json:"tickets_available"`
}

// TakenSeat identifies one already-sold place on a journey
type TakenSeat struct {
	Cargo int `json:"cargo"`
	Seat  int `json:"seat"`
}

// JourneyDetail is the retrieve-view projection of a journey with the seats
// already committed for it.
type JourneyDetail struct {
	Journey
	TakenSeats       []TakenSeat `json:"taken_seats"`
	TicketsAvailable int         `json:"tickets_available"`
}

// JourneyRequest represents a journey creation request
type JourneyRequest struct {
	RouteID       int       `json:"route_id" binding:"required"`
	TrainID       int       `json:"train_id" binding:"required"`
	DepartureTime time.Time `json:"departure_time" binding:"required"`
	ArrivalTime   time.Time `json:"arrival_time" binding:"required"`
}
