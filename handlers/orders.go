package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"train-station-api/auth"
	"train-station-api/models"
	"train-station-api/services"
)

// CreateOrder books all requested tickets as one atomic order for the
// authenticated user
func CreateOrder(c *gin.Context) {
	var req models.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := auth.UserID(c)

	order, err := services.CreateOrder(c.Request.Context(), userID, req.Tickets)
	if err != nil {
		log.Printf("Error creating order for user %d: %v", userID, err)
		c.JSON(bookingErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, order)
}

// GetOrders returns the authenticated user's orders, newest first
func GetOrders(c *gin.Context) {
	userID := auth.UserID(c)

	orders, err := services.OrdersByUser(c.Request.Context(), userID)
	if err != nil {
		log.Printf("Error getting orders for user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve orders"})
		return
	}

	c.JSON(http.StatusOK, orders)
}

// bookingErrorStatus maps the booking error taxonomy to HTTP statuses:
// caller-recoverable failures are 400, anything else is 500.
func bookingErrorStatus(err error) int {
	var outOfRange *models.OutOfRangeError
	var seatTaken *models.SeatTakenError

	switch {
	case errors.Is(err, models.ErrEmptyOrder),
		errors.Is(err, models.ErrJourneyNotFound),
		errors.As(err, &outOfRange),
		errors.As(err, &seatTaken):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
