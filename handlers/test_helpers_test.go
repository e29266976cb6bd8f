package handlers

import (
	"io"
	"net/http/httptest"
	"testing"

	"guitar_builder_app_go/config"
	"guitar_builder_app_go/db"
	"guitar_builder_app_go/models"
	"guitar_builder_app_go/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	// Use unique shared memory name to isolate tests while allowing shared cache for async tasks
	dbName := "mem_" + uuid.New().String()
	testDB, err := gorm.Open(sqlite.Open("file:"+dbName+"?mode=memory&cache=shared&_busy_timeout=5000"), &gorm.Config{})
	assert.NoError(t, err)

	err = testDB.Exec("PRAGMA journal_mode=WAL;").Error
	assert.NoError(t, err)

	err = testDB.AutoMigrate(
		&models.Category{},
		&models.Subcategory{},
		&models.Option{},
		&models.ConstraintRule{},
		&models.SavedBuild{},
	)
	assert.NoError(t, err)

	// Set global DB
	db.DB = testDB

	return testDB
}

// setupConfigurator seeds the default catalog into the test database and
// returns a store ready for handler tests.
func setupConfigurator(t *testing.T) *services.Configurator {
	testDB := setupTestDB(t)
	assert.NoError(t, services.SeedDefaultCatalog(testDB))

	catalog, err := services.LoadCatalog(testDB, services.CatalogFilter{})
	assert.NoError(t, err)
	rules, err := services.LoadRuleSet(testDB)
	assert.NoError(t, err)

	return services.NewConfigurator(catalog, rules)
}

func setupEcho(store *services.Configurator, method, path string, body io.Reader) (*echo.Echo, echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	// Add config and the shared store to context
	c.Set("config", &config.Config{
		Environment:  "test",
		ImageBaseURL: "/static/options",
	})
	c.Set("configurator", store)

	return e, c, rec
}
