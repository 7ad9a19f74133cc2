package main

import (
	"fmt"
	"net/http"
	"os"

	"splitlist/internal/config"
	"splitlist/internal/database"
	"splitlist/internal/handlers"
	"splitlist/internal/logger"
	"splitlist/internal/middleware"
	"splitlist/internal/recurrence"
	"splitlist/internal/services"
	"splitlist/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "splitlist/internal/docs" // Import swagger docs
)

// @title           Splitlist API
// @version         1.0
// @description     Splitlist is a shared expense tracker: budget lists with categories, recurrence schedules, and expenses that can be shared between users.

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
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Register custom binding validators
	validator.Register()

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	listService := services.NewListService(db, recurrence.UnknownPeriodMode(appConfig.RecurrenceUnknownPeriod))
	categoryService := services.NewCategoryService(db)
	expenseService := services.NewExpenseService(db)
	auditService := services.NewAuditService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	listHandler := handlers.NewListHandler(listService, auditService)
	categoryHandler := handlers.NewCategoryHandler(categoryService, auditService)
	expenseHandler := handlers.NewExpenseHandler(expenseService, auditService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
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
		if err := dbManager.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// User profile
	protected.GET("/auth/me", authHandler.GetProfile)

	// List routes
	lists := protected.Group("/lists")
	lists.POST("", listHandler.CreateList)
	lists.GET("", listHandler.GetLists)
	lists.GET("/:id", listHandler.GetList)
	lists.POST("/:id/share", listHandler.ShareList)

	// List-scoped category routes
	lists.POST("/:id/categories", categoryHandler.AddCategory)
	lists.PUT("/:id/categories/:categoryID", categoryHandler.UpdateCategory)
	lists.DELETE("/:id/categories/:categoryID", categoryHandler.RemoveCategory)

	// List-scoped expense routes
	lists.POST("/:id/expenses", expenseHandler.CreateExpense)
	lists.GET("/:id/expenses", expenseHandler.GetExpenses)
	lists.PUT("/:id/expenses/:expenseID", expenseHandler.UpdateExpense)
	lists.DELETE("/:id/expenses/:expenseID", expenseHandler.DeleteExpense)

	log.Infof("Starting Splitlist backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
