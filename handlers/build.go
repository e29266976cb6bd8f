package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"guitar_builder_app_go/db"
	"guitar_builder_app_go/services"

	"github.com/labstack/echo/v4"
)

type saveBuildRequest struct {
	Title   string `json:"title"`
	OwnerID string `json:"owner_id"`
}

// SaveBuildHandler snapshots the current selection into a saved build.
// Persistence failures come back as a failure result, never a panic.
func SaveBuildHandler(c echo.Context) error {
	store := GetConfigurator(c)

	var req saveBuildRequest
	if err := c.Bind(&req); err != nil || req.Title == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "title is required")
	}

	state := store.State()
	build, err := services.SaveBuild(db.DB, store.Catalog(), req.Title, req.OwnerID, state.Selection)
	if err != nil {
		if errors.Is(err, services.ErrCatalogNotReady) {
			return echo.NewHTTPError(http.StatusServiceUnavailable, "Catalog is not ready")
		}
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"error":   "Failed to save build",
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"build":   build,
	})
}

// ListBuildsHandler returns saved builds, optionally filtered by owner.
func ListBuildsHandler(c echo.Context) error {
	builds, err := services.ListBuilds(db.DB, c.QueryParam("owner_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list builds")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"data": builds,
	})
}

// LoadBuildHandler restores a saved build into the configurator, applying
// the drift fallback policy, and returns the resulting state plus how many
// fields needed a fallback.
func LoadBuildHandler(c echo.Context) error {
	store := GetConfigurator(c)

	buildID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid build id")
	}

	result, err := services.LoadBuild(db.DB, store.Catalog(), store.Rules(), uint(buildID))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBuildNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Build not found")
		case errors.Is(err, services.ErrCatalogNotReady):
			return echo.NewHTTPError(http.StatusServiceUnavailable, "Catalog is not ready")
		default:
			return c.JSON(http.StatusInternalServerError, map[string]interface{}{
				"success": false,
				"error":   "Failed to load build",
			})
		}
	}

	state := store.ReplaceSelection(result.Selection)
	cfg := GetConfig(c)
	services.ResolveImageURLs(state.Layers, cfg.ImageBaseURL)

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":           true,
		"build":             result.Build,
		"fallbacks_applied": result.Fallbacks,
		"state":             state,
	})
}

// DeleteBuildHandler removes a saved build.
func DeleteBuildHandler(c echo.Context) error {
	buildID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid build id")
	}

	if err := services.DeleteBuild(db.DB, uint(buildID)); err != nil {
		if errors.Is(err, services.ErrBuildNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Build not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete build")
	}

	return c.NoContent(http.StatusNoContent)
}
