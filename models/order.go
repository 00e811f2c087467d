package models

import "time"

// Order is a user's atomic purchase unit: all of its tickets are committed
// together or not at all.
type Order struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	Tickets   []Ticket  `json:"tickets"`
}

// OrderRequest represents an order creation request
type OrderRequest struct {
	Tickets []TicketRequest `json:"tickets" binding:"required,min=1,dive"`
}
