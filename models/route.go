package models

// Route connects a source station to a destination station
type Route struct {
	ID            int `json:"id"`
	SourceID      int `json:"source_id"`
	DestinationID int `json:"destination_id"`
	Distance      int `json:"distance"`

	// Joined fields
	Source      Station `json:"source"`
	Destination Station `json:"destination"`
}

// RouteRequest represents a route creation request
type RouteRequest struct {
	SourceID      int `json:"source_id" binding:"required"`
	DestinationID int `json:"destination_id" binding:"required"`
	Distance      int `json:"distance" binding:"required,gt=0"`
}
