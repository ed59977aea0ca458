package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/justmenoble-ux/mano-web-app/internal/extraction"
	"github.com/justmenoble-ux/mano-web-app/internal/handlers"
	"github.com/justmenoble-ux/mano-web-app/internal/logger"
	"github.com/justmenoble-ux/mano-web-app/internal/middleware"
	"github.com/justmenoble-ux/mano-web-app/internal/models"
	"github.com/justmenoble-ux/mano-web-app/internal/services"
	"github.com/justmenoble-ux/mano-web-app/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB        *gorm.DB
	Router    *gin.Engine
	Extractor *stubExtractor
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

// accountCounter gives each test its own account identity.
var accountCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// stubExtractor replaces the Gemini extractor so statement processing runs
// without network access.
type stubExtractor struct {
	candidates []extraction.Candidate
	err        error
}

func (s *stubExtractor) Extract(_ context.Context, _ string) ([]extraction.Candidate, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.candidates, nil
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.Household{},
		&models.Statement{},
		&models.Transaction{},
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
	extractor := &stubExtractor{}

	// Services
	auditService := services.NewAuditService(db)
	householdService := services.NewHouseholdService(db)
	recurrenceService := services.NewRecurrenceService(db)
	statementService := services.NewStatementService(db, extractor)
	transactionService := services.NewTransactionService(db, recurrenceService)
	statsService := services.NewStatsService(db, recurrenceService)

	// Handlers
	householdHandler := handlers.NewHouseholdHandler(householdService, auditService)
	statementHandler := handlers.NewStatementHandler(statementService, auditService)
	transactionHandler := handlers.NewTransactionHandler(transactionService, auditService)
	statsHandler := handlers.NewStatsHandler(statsService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

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
	transactions.POST("/bulk-delete", transactionHandler.DeleteTransactions)
	transactions.PATCH("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	v1.GET("/stats", statsHandler.GetStats)

	return &testApp{DB: db, Router: router, Extractor: extractor}
}

// newToken issues a signed token for a fresh test account.
func newToken(t *testing.T) (token, accountID string) {
	t.Helper()

	accountID = fmt.Sprintf("acct-%d", accountCounter.Add(1))
	token, err := middleware.GenerateToken(accountID, time.Hour)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	return token, accountID
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
