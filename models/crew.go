package models

// Crew represents a crew member assigned to trains
type Crew struct {
	ID        int    `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// FullName returns the crew member's display name
func (c Crew) FullName() string {
	return c.FirstName + " " + c.LastName
}

// CrewRequest represents a crew creation request
type CrewRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
}
