package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"train-station-api/models"
	"train-station-api/services"
)

// CreateJourney creates a new journey
func CreateJourney(c *gin.Context) {
	var req models.JourneyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	journey, err := services.CreateJourney(req)
	if err != nil {
		log.Printf("Error creating journey: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, journey)
}

// GetJourneys returns all journeys with remaining seat counts
func GetJourneys(c *gin.Context) {
	journeys, err := services.GetAllJourneys()
	if err != nil {
		log.Printf("Error getting journeys: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve journeys"})
		return
	}

	c.JSON(http.StatusOK, journeys)
}

// GetJourney returns a journey by ID with its taken seats
func GetJourney(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	journey, err := services.GetJourney(id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Journey not found"})
			return
		}
		log.Printf("Error getting journey: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve journey"})
		return
	}

	c.JSON(http.StatusOK, journey)
}

// GetAvailableSeats returns the remaining seat count for one journey
func GetAvailableSeats(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	available, err := services.AvailableSeats(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrJourneyNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Journey not found"})
			return
		}
		log.Printf("Error getting availability for journey %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve availability"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"journey_id":      id,
		"available_seats": available,
	})
}
