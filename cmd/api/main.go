package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/justmenoble-ux/mano-web-app/internal/config"
	"github.com/justmenoble-ux/mano-web-app/internal/database"
	"github.com/justmenoble-ux/mano-web-app/internal/extraction"
	"github.com/justmenoble-ux/mano-web-app/internal/handlers"
	"github.com/justmenoble-ux/mano-web-app/internal/logger"
	"github.com/justmenoble-ux/mano-web-app/internal/middleware"
	"github.com/justmenoble-ux/mano-web-app/internal/services"
	"github.com/justmenoble-ux/mano-web-app/internal/validator"

	_ "github.com/justmenoble-ux/mano-web-app/internal/docs" // Import swagger docs
)

// @title           Mano API
// @version         1.0
// @description     Mano is a household expense tracker that attributes spending between two members, extracts transactions from uploaded statements, and keeps recurring expenses up to date.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Register custom binding validators
	validator.Register()

	// Initialize services
	db := dbManager.DB()
	extractor := extraction.NewGeminiExtractor(appConfig.GeminiModel)
	auditService := services.NewAuditService(db)
	householdService := services.NewHouseholdService(db)
	recurrenceService := services.NewRecurrenceService(db)
	statementService := services.NewStatementService(db, extractor)
	transactionService := services.NewTransactionService(db, recurrenceService)
	statsService := services.NewStatsService(db, recurrenceService)

	// Initialize handlers
	householdHandler := handlers.NewHouseholdHandler(householdService, auditService)
	statementHandler := handlers.NewStatementHandler(statementService, auditService)
	transactionHandler := handlers.NewTransactionHandler(transactionService, auditService)
	statsHandler := handlers.NewStatsHandler(statsService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group, everything behind authentication
	v1 := router.Group("/api/v1")
	v1.Use(middleware.AuthMiddleware())

	household := v1.Group("/household")
	household.GET("", householdHandler.GetHousehold)
	household.POST("", householdHandler.SaveHousehold)
	household.PATCH("", householdHandler.UpdateHousehold)

	statements := v1.Group("/statements")
	statements.POST("/upload", statementHandler.UploadStatement)
	statements.GET("", statementHandler.GetStatements)
	statements.GET("/:id", statementHandler.GetStatement)
	statements.POST("/:id/process", statementHandler.ProcessStatement)
	statements.DELETE("/:id", statementHandler.DeleteStatement)

	transactions := v1.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.GetTransactions)
	// Registered before /:id so "bulk-delete" is not parsed as an ID.
	transactions.POST("/bulk-delete", transactionHandler.DeleteTransactions)
	transactions.PATCH("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	v1.GET("/stats", statsHandler.GetStats)

	// Start server
	addr := ":" + appConfig.Port
	log.Infof("Starting server on %s", addr)
	if err := router.Run(addr); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}
