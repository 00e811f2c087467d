package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"train-station-api/models"
	"train-station-api/services"
)

func idParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return 0, false
	}
	return id, true
}

// CreateStation creates a new station
func CreateStation(c *gin.Context) {
	var req models.StationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	station, err := services.CreateStation(req)
	if err != nil {
		log.Printf("Error creating station: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, station)
}

// GetStations returns all stations
func GetStations(c *gin.Context) {
	stations, err := services.GetAllStations()
	if err != nil {
		log.Printf("Error getting stations: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve stations"})
		return
	}

	c.JSON(http.StatusOK, stations)
}

// GetStation returns a station by ID
func GetStation(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	station, err := services.GetStation(id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Station not found"})
			return
		}
		log.Printf("Error getting station: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve station"})
		return
	}

	c.JSON(http.StatusOK, station)
}

// CreateRoute creates a new route
func CreateRoute(c *gin.Context) {
	var req models.RouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	route, err := services.CreateRoute(req)
	if err != nil {
		log.Printf("Error creating route: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, route)
}

// GetRoutes returns all routes
func GetRoutes(c *gin.Context) {
	routes, err := services.GetAllRoutes()
	if err != nil {
		log.Printf("Error getting routes: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve routes"})
		return
	}

	c.JSON(http.StatusOK, routes)
}

// GetRoute returns a route by ID
func GetRoute(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	route, err := services.GetRoute(id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
			return
		}
		log.Printf("Error getting route: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve route"})
		return
	}

	c.JSON(http.StatusOK, route)
}
