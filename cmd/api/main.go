package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"budgetr/internal/config"
	"budgetr/internal/database"
	"budgetr/internal/handlers"
	"budgetr/internal/logger"
	"budgetr/internal/middleware"
	"budgetr/internal/services"
	"budgetr/internal/validator"

	_ "budgetr/internal/docs" // Import swagger docs
)

// @title           Budgetr API
// @version         1.0
// @description     Budgetr is a personal budgeting application: split a monthly income across categories by percentage, log dated entries against them, and track goals and credit card sign-up bonuses.
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
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Register custom request validators
	validator.Register()

	// Initialize services
	db := dbManager.DB()
	auditService := services.NewAuditService(db)
	userService := services.NewUserService(db)
	categoryService := services.NewCategoryService(db)
	budgetService := services.NewBudgetService(db)
	entryService := services.NewEntryService(db)
	goalService := services.NewGoalService(db)
	trackerService := services.NewTrackerService(db)
	onboardingService := services.NewOnboardingService(db)
	progressService := services.NewProgressService(db, budgetService, entryService)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, auditService)
	categoryHandler := handlers.NewCategoryHandler(categoryService, auditService)
	budgetHandler := handlers.NewBudgetHandler(budgetService, auditService)
	entryHandler := handlers.NewEntryHandler(entryService, auditService)
	goalHandler := handlers.NewGoalHandler(goalService, auditService)
	trackerHandler := handlers.NewTrackerHandler(trackerService, auditService)
	onboardingHandler := handlers.NewOnboardingHandler(onboardingService, auditService)
	progressHandler := handlers.NewProgressHandler(progressService)

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
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/auth/me", authHandler.Me)

	// Onboarding
	protected.POST("/onboarding", onboardingHandler.Complete)

	// Category routes
	categories := protected.Group("/categories")
	categories.POST("", categoryHandler.CreateCategory)
	categories.GET("", categoryHandler.GetCategories)
	categories.PUT("/reorder", categoryHandler.ReorderCategories)
	categories.PUT("/:id", categoryHandler.UpdateCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)

	// Goal, tracker and progress routes live under their category
	categories.PUT("/:id/goal", withCategoryParam(goalHandler.UpsertGoal))
	categories.DELETE("/:id/goal", withCategoryParam(goalHandler.DeleteGoal))
	categories.PUT("/:id/tracker", withCategoryParam(trackerHandler.UpsertTracker))
	categories.GET("/:id/progress", withCategoryParam(progressHandler.GetCategoryProgress))
	categories.GET("/:id/streak", withCategoryParam(progressHandler.GetStreak))

	// Budget period routes
	budgets := protected.Group("/budgets")
	budgets.GET("", budgetHandler.GetBudget)
	budgets.PUT("/income", budgetHandler.UpdateIncome)
	budgets.PUT("/allocations", budgetHandler.ReplaceAllocations)

	// Entry routes
	entries := protected.Group("/entries")
	entries.POST("", entryHandler.CreateEntry)
	entries.GET("", entryHandler.GetEntries)
	entries.PUT("/:id", entryHandler.UpdateEntry)
	entries.DELETE("/:id", entryHandler.DeleteEntry)

	// Goal and tracker listings
	protected.GET("/goals", goalHandler.GetGoals)
	trackers := protected.Group("/trackers")
	trackers.GET("", trackerHandler.GetTrackers)
	trackers.PUT("/:id", trackerHandler.UpdateTracker)
	trackers.DELETE("/:id", trackerHandler.DeleteTracker)

	// Dashboard
	protected.GET("/dashboard", progressHandler.GetDashboard)

	log.Infof("Starting Budgetr backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}

// withCategoryParam exposes the :id path parameter under the categoryId
// name the nested handlers read.
func withCategoryParam(handler gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Params = append(c.Params, gin.Param{Key: "categoryId", Value: c.Param("id")})
		handler(c)
	}
}
