package handlers

import (
	"guitar_builder_app_go/config"
	"guitar_builder_app_go/services"

	"github.com/labstack/echo/v4"
)

// GetConfig retrieves the app config injected by the server middleware.
func GetConfig(c echo.Context) *config.Config {
	if cfg, ok := c.Get("config").(*config.Config); ok {
		return cfg
	}
	return &config.Config{}
}

// GetConfigurator retrieves the configurator store injected by the server
// middleware. Handlers never touch the selection directly; every mutation
// goes through the store.
func GetConfigurator(c echo.Context) *services.Configurator {
	store, _ := c.Get("configurator").(*services.Configurator)
	return store
}
