package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"train-station-api/auth"
	"train-station-api/config"
	"train-station-api/database"
	"train-station-api/events"
	"train-station-api/handlers"
	"train-station-api/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Printf("Starting Train Station API")

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	if err := database.RunMigrations(database.GetDB()); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Optional order-events publisher
	var publisher services.EventPublisher
	if cfg.AMQPURL != "" {
		pub, err := events.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			log.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		defer pub.Close()
		publisher = pub
		log.Printf("Publishing order events to exchange %q", cfg.AMQPExchange)
	}

	// Wire the booking core to its storage collaborator
	services.InitBookingService(database.NewBookingStore(database.GetDB()), publisher)

	// Setup Gin router
	router := setupRouter(cfg)

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server starting on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with 5 second timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

func setupRouter(cfg *config.Config) *gin.Engine {
	// Set Gin to release mode in production
	if os.Getenv("GIN_MODE") != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	router.Use(auth.RequestID())

	// CORS configuration
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// API routes
	api := router.Group("/api")
	{
		// Station routes
		api.POST("/stations", handlers.CreateStation)
		api.GET("/stations", handlers.GetStations)
		api.GET("/stations/:id", handlers.GetStation)

		// Route routes
		api.POST("/routes", handlers.CreateRoute)
		api.GET("/routes", handlers.GetRoutes)
		api.GET("/routes/:id", handlers.GetRoute)

		// Train routes
		api.POST("/train-types", handlers.CreateTrainType)
		api.GET("/train-types", handlers.GetTrainTypes)
		api.POST("/crews", handlers.CreateCrew)
		api.GET("/crews", handlers.GetCrews)
		api.POST("/trains", handlers.CreateTrain)
		api.GET("/trains", handlers.GetTrains)
		api.GET("/trains/:id", handlers.GetTrain)

		// Journey routes
		api.POST("/journeys", handlers.CreateJourney)
		api.GET("/journeys", handlers.GetJourneys)
		api.GET("/journeys/:id", handlers.GetJourney)
		api.GET("/journeys/:id/available-seats", handlers.GetAvailableSeats)

		// Order routes (authenticated)
		orders := api.Group("/orders", auth.RequireUser(cfg.JWTSecret))
		orders.POST("", handlers.CreateOrder)
		orders.GET("", handlers.GetOrders)
	}

	// 404 handler
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
	})

	return router
}
