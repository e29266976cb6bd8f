package handlers

import (
	"net/http"

	"guitar_builder_app_go/services"

	"github.com/labstack/echo/v4"
)

type selectRequest struct {
	OptionID uint `json:"option_id"`
}

type viewRequest struct {
	View string `json:"view"`
}

func stateResponse(c echo.Context, state services.ConfiguratorState) error {
	cfg := GetConfig(c)
	services.ResolveImageURLs(state.Layers, cfg.ImageBaseURL)
	return c.JSON(http.StatusOK, state)
}

// GetConfiguratorStateHandler returns the current selection, price and
// preview layers.
func GetConfiguratorStateHandler(c echo.Context) error {
	store := GetConfigurator(c)
	return stateResponse(c, store.State())
}

// SelectOptionHandler applies a pick through the reducer and returns the
// new state. Unknown option ids are a no-op, logged but not an error.
func SelectOptionHandler(c echo.Context) error {
	store := GetConfigurator(c)

	var req selectRequest
	if err := c.Bind(&req); err != nil || req.OptionID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "option_id is required")
	}

	return stateResponse(c, store.Select(req.OptionID))
}

// SetViewHandler switches the preview between front and back.
func SetViewHandler(c echo.Context) error {
	store := GetConfigurator(c)

	var req viewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if req.View != services.ViewFront && req.View != services.ViewBack {
		return echo.NewHTTPError(http.StatusBadRequest, "view must be \"front\" or \"back\"")
	}

	return stateResponse(c, store.SetView(req.View))
}

// ResetConfiguratorHandler restores the catalog defaults.
func ResetConfiguratorHandler(c echo.Context) error {
	store := GetConfigurator(c)
	return stateResponse(c, store.Reset())
}
