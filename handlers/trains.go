package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"train-station-api/models"
	"train-station-api/services"
)

// CreateTrainType creates a new train type
func CreateTrainType(c *gin.Context) {
	var req models.TrainTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	trainType, err := services.CreateTrainType(req)
	if err != nil {
		log.Printf("Error creating train type: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, trainType)
}

// GetTrainTypes returns all train types
func GetTrainTypes(c *gin.Context) {
	types, err := services.GetAllTrainTypes()
	if err != nil {
		log.Printf("Error getting train types: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve train types"})
		return
	}

	c.JSON(http.StatusOK, types)
}

// CreateCrew creates a new crew member
func CreateCrew(c *gin.Context) {
	var req models.CrewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	crew, err := services.CreateCrew(req)
	if err != nil {
		log.Printf("Error creating crew: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, crew)
}

// GetCrews returns all crew members
func GetCrews(c *gin.Context) {
	crews, err := services.GetAllCrews()
	if err != nil {
		log.Printf("Error getting crews: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve crews"})
		return
	}

	c.JSON(http.StatusOK, crews)
}

// CreateTrain creates a new train with its crew assignments
func CreateTrain(c *gin.Context) {
	var req models.TrainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	train, err := services.CreateTrain(req)
	if err != nil {
		log.Printf("Error creating train: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, train)
}

// GetTrains returns all trains
func GetTrains(c *gin.Context) {
	trains, err := services.GetAllTrains()
	if err != nil {
		log.Printf("Error getting trains: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve trains"})
		return
	}

	c.JSON(http.StatusOK, trains)
}

// GetTrain returns a train by ID
func GetTrain(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	train, err := services.GetTrain(id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Train not found"})
			return
		}
		log.Printf("Error getting train: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve train"})
		return
	}

	c.JSON(http.StatusOK, train)
}
