package main

import (
	"log"

	"guitar_builder_app_go/config"
	"guitar_builder_app_go/db"
	"guitar_builder_app_go/handlers"
	"guitar_builder_app_go/models"
	"guitar_builder_app_go/services"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	if err := db.Initialize(cfg.DBPath, cfg.Environment); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := db.AutoMigrate(
		&models.Category{},
		&models.Subcategory{},
		&models.Option{},
		&models.ConstraintRule{},
		&models.SavedBuild{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed the default catalog on first run
	if err := services.SeedDefaultCatalog(db.DB); err != nil {
		log.Fatalf("Failed to seed catalog: %v", err)
	}

	// Load the catalog snapshot and rule table once per session
	catalog, err := services.LoadCatalog(db.DB, services.CatalogFilter{})
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}
	rules, err := services.LoadRuleSet(db.DB)
	if err != nil {
		log.Fatalf("Failed to load constraint rules: %v", err)
	}
	for _, problem := range services.LintCatalog(catalog, rules) {
		log.Printf("[CATALOG LINT] %s", problem)
	}

	store := services.NewConfigurator(catalog, rules)

	// Create Echo instance
	e := echo.New()

	// Middleware
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())

	// Make config and the configurator store available to handlers
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("config", cfg)
			c.Set("configurator", store)
			return next(c)
		}
	})

	// Static files (option images served by the image collaborator)
	e.Static("/static", "static")

	// Catalog routes
	e.GET("/api/catalog", handlers.GetCatalogHandler)
	e.GET("/api/catalog/import/template", handlers.CatalogTemplateHandler)
	e.POST("/api/catalog/import", handlers.ImportCatalogHandler)

	// Configurator routes
	e.GET("/api/configurator", handlers.GetConfiguratorStateHandler)
	e.POST("/api/configurator/select", handlers.SelectOptionHandler)
	e.POST("/api/configurator/view", handlers.SetViewHandler)
	e.POST("/api/configurator/reset", handlers.ResetConfiguratorHandler)

	// Saved build routes
	e.GET("/api/builds", handlers.ListBuildsHandler)
	e.POST("/api/builds", handlers.SaveBuildHandler)
	e.POST("/api/builds/:id/load", handlers.LoadBuildHandler)
	e.DELETE("/api/builds/:id", handlers.DeleteBuildHandler)

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := e.Start(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
