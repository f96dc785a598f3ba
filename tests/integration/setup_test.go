package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"budgetr/internal/handlers"
	"budgetr/internal/logger"
	"budgetr/internal/middleware"
	"budgetr/internal/models"
	"budgetr/internal/services"
	"budgetr/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:integrationdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.User{},
		&models.UserSettings{},
		&models.Category{},
		&models.Budget{},
		&models.Allocation{},
		&models.Entry{},
		&models.Goal{},
		&models.CreditCardTracker{},
		&models.AuditLog{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)

	// Services
	auditService := services.NewAuditService(db)
	userService := services.NewUserService(db)
	categoryService := services.NewCategoryService(db)
	budgetService := services.NewBudgetService(db)
	entryService := services.NewEntryService(db)
	goalService := services.NewGoalService(db)
	trackerService := services.NewTrackerService(db)
	onboardingService := services.NewOnboardingService(db)
	progressService := services.NewProgressService(db, budgetService, entryService)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService, auditService)
	categoryHandler := handlers.NewCategoryHandler(categoryService, auditService)
	budgetHandler := handlers.NewBudgetHandler(budgetService, auditService)
	entryHandler := handlers.NewEntryHandler(entryService, auditService)
	goalHandler := handlers.NewGoalHandler(goalService, auditService)
	trackerHandler := handlers.NewTrackerHandler(trackerService, auditService)
	onboardingHandler := handlers.NewOnboardingHandler(onboardingService, auditService)
	progressHandler := handlers.NewProgressHandler(progressService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/auth/me", authHandler.Me)
	protected.POST("/onboarding", onboardingHandler.Complete)

	categories := protected.Group("/categories")
	categories.POST("", categoryHandler.CreateCategory)
	categories.GET("", categoryHandler.GetCategories)
	categories.PUT("/reorder", categoryHandler.ReorderCategories)
	categories.PUT("/:id", categoryHandler.UpdateCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)
	categories.PUT("/:id/goal", aliasCategoryID(goalHandler.UpsertGoal))
	categories.DELETE("/:id/goal", aliasCategoryID(goalHandler.DeleteGoal))
	categories.PUT("/:id/tracker", aliasCategoryID(trackerHandler.UpsertTracker))
	categories.GET("/:id/progress", aliasCategoryID(progressHandler.GetCategoryProgress))
	categories.GET("/:id/streak", aliasCategoryID(progressHandler.GetStreak))

	budgets := protected.Group("/budgets")
	budgets.GET("", budgetHandler.GetBudget)
	budgets.PUT("/income", budgetHandler.UpdateIncome)
	budgets.PUT("/allocations", budgetHandler.ReplaceAllocations)

	entries := protected.Group("/entries")
	entries.POST("", entryHandler.CreateEntry)
	entries.GET("", entryHandler.GetEntries)
	entries.PUT("/:id", entryHandler.UpdateEntry)
	entries.DELETE("/:id", entryHandler.DeleteEntry)

	protected.GET("/goals", goalHandler.GetGoals)
	trackers := protected.Group("/trackers")
	trackers.GET("", trackerHandler.GetTrackers)
	trackers.PUT("/:id", trackerHandler.UpdateTracker)
	trackers.DELETE("/:id", trackerHandler.DeleteTracker)

	protected.GET("/dashboard", progressHandler.GetDashboard)

	return &testApp{DB: db, Router: router}
}

// aliasCategoryID exposes the :id path parameter under the categoryId name.
func aliasCategoryID(handler gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Params = append(c.Params, gin.Param{Key: "categoryId", Value: c.Param("id")})
		handler(c)
	}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// registerUser registers a new user and returns the access token.
func (app *testApp) registerUser(t *testing.T, email, password string) string {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q,"name":"Test User"}`, email, password)
	rec := app.request("POST", "/api/v1/auth/register", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	return result["token"].(string)
}

// onboardUser completes the standard 30/40/30 onboarding and returns the
// created category IDs by name.
func (app *testApp) onboardUser(t *testing.T, token string, month, year int) map[string]float64 {
	t.Helper()
	body := fmt.Sprintf(`{
		"income": 400000,
		"month": %d,
		"year": %d,
		"categories": [
			{"name":"Spending","type":"spending","allocation_pct":30},
			{"name":"Savings","type":"saving","allocation_pct":40},
			{"name":"Investments","type":"investment","allocation_pct":30}
		]
	}`, month, year)
	rec := app.request("POST", "/api/v1/onboarding", body, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("onboarding failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)

	ids := make(map[string]float64)
	for _, raw := range result["categories"].([]interface{}) {
		category := raw.(map[string]interface{})
		ids[category["name"].(string)] = category["id"].(float64)
	}
	return ids
}
