package main

import (
	"log"
	"net/http"

	"qube-server/cart"
	"qube-server/config"
	"qube-server/database"
	"qube-server/handlers"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	if err := config.Load(); err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Connect to database
	db, err := database.Connect(config.AppConfig.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	// Initialize tables
	if err := db.InitializeTables(); err != nil {
		log.Fatal("Failed to initialize tables:", err)
	}

	// Seed the demo catalog when the products table is empty
	if err := db.SeedProducts(); err != nil {
		log.Fatal("Failed to seed products:", err)
	}

	// Store-wide purchase policy defaults
	err = cart.SetDefaults(cart.QuantityPolicy{
		Minimum:   config.AppConfig.CartMinimumQuantity,
		Increment: config.AppConfig.CartOrderIncrement,
	})
	if err != nil {
		log.Fatal("Invalid cart policy configuration:", err)
	}

	// Set up structured logging
	var logger *zap.Logger
	if config.AppConfig.Environment == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()

	// Set Gin mode
	if config.AppConfig.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create Gin router
	router := gin.Default()

	// Add CORS middleware
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // Configure this properly for production
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"X-Cart-Key"},
		AllowCredentials: true,
	})

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Qube Server is running",
		})
	})

	handlers.InitializeHandlers(db, logger)

	// API routes
	api := router.Group("/api/v1")
	{
		products := api.Group("/products")
		{
			products.GET("", handlers.GetProducts)
			products.GET("/:id", handlers.GetProduct)
		}

		cartRoutes := api.Group("/cart")
		{
			cartRoutes.GET("", handlers.GetCart)
			cartRoutes.DELETE("", handlers.ClearCart)
			cartRoutes.POST("/items", handlers.AddToCart)
			cartRoutes.PUT("/items/:productId", handlers.UpdateCartItem)
			cartRoutes.DELETE("/items/:productId", handlers.RemoveFromCart)
			cartRoutes.POST("/open", handlers.OpenCart)
			cartRoutes.POST("/close", handlers.CloseCart)
		}

		api.POST("/checkout", handlers.Checkout)
		api.GET("/orders/:id", handlers.GetOrder)

		rfq := api.Group("/rfq")
		{
			rfq.POST("", handlers.CreateRFQ)
			rfq.GET("/:id", handlers.GetRFQ)
		}
	}

	// Start server
	log.Printf("Starting Qube Server on 0.0.0.0:%s", config.AppConfig.ServerPort)
	log.Fatal(http.ListenAndServe("0.0.0.0:"+config.AppConfig.ServerPort, c.Handler(router)))
}
