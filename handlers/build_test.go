package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"guitar_builder_app_go/db"
	"guitar_builder_app_go/models"
	"guitar_builder_app_go/services"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func saveBuildThroughHandler(t *testing.T, store *services.Configurator, title string) models.SavedBuild {
	t.Helper()

	_, c, rec := setupEcho(store, http.MethodPost, "/api/builds",
		strings.NewReader(fmt.Sprintf(`{"title": %q, "owner_id": "user-1"}`, title)))
	assert.NoError(t, SaveBuildHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool              `json:"success"`
		Build   models.SavedBuild `json:"build"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.NotZero(t, resp.Build.ID)
	return resp.Build
}

func TestSaveBuildHandler(t *testing.T) {
	store := setupConfigurator(t)
	store.Select(370)

	build := saveBuildThroughHandler(t, store, "Seven String")
	assert.Equal(t, "Seven String", build.Title)
	assert.Equal(t, 100.0, build.TotalPrice)

	// The field record only lives in the database, never in responses.
	var stored models.SavedBuild
	assert.NoError(t, db.DB.First(&stored, build.ID).Error)
	fields, err := stored.FieldMap()
	assert.NoError(t, err)
	assert.Equal(t, "370", fields["strings"])

	t.Run("TitleRequired", func(t *testing.T) {
		_, c, _ := setupEcho(store, http.MethodPost, "/api/builds",
			strings.NewReader(`{"owner_id": "user-1"}`))
		err := SaveBuildHandler(c)
		httpErr, ok := err.(*echo.HTTPError)
		assert.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	})
}

func TestListBuildsHandler(t *testing.T) {
	store := setupConfigurator(t)
	saveBuildThroughHandler(t, store, "First")
	saveBuildThroughHandler(t, store, "Second")

	_, c, rec := setupEcho(store, http.MethodGet, "/api/builds", nil)
	assert.NoError(t, ListBuildsHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []models.SavedBuild `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 2)
}

func TestLoadBuildHandler(t *testing.T) {
	store := setupConfigurator(t)
	store.Select(55)
	build := saveBuildThroughHandler(t, store, "Burl")

	// The store drifts away from the saved build before the reload.
	store.Reset()

	_, c, rec := setupEcho(store, http.MethodPost, "/api/builds/:id/load", nil)
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprintf("%d", build.ID))
	assert.NoError(t, LoadBuildHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success          bool                       `json:"success"`
		FallbacksApplied int                        `json:"fallbacks_applied"`
		State            services.ConfiguratorState `json:"state"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 0, resp.FallbacksApplied)
	assert.Equal(t, uint(55), resp.State.Selection[10].ID)
	assert.Equal(t, 450.0, resp.State.TotalPrice)

	// The store itself now carries the restored selection.
	assert.Equal(t, uint(55), store.State().Selection[10].ID)

	t.Run("NotFound", func(t *testing.T) {
		_, c, _ := setupEcho(store, http.MethodPost, "/api/builds/:id/load", nil)
		c.SetParamNames("id")
		c.SetParamValues("4242")
		err := LoadBuildHandler(c)
		httpErr, ok := err.(*echo.HTTPError)
		assert.True(t, ok)
		assert.Equal(t, http.StatusNotFound, httpErr.Code)
	})

	t.Run("BadID", func(t *testing.T) {
		_, c, _ := setupEcho(store, http.MethodPost, "/api/builds/:id/load", nil)
		c.SetParamNames("id")
		c.SetParamValues("not-a-number")
		err := LoadBuildHandler(c)
		httpErr, ok := err.(*echo.HTTPError)
		assert.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	})
}

func TestDeleteBuildHandler(t *testing.T) {
	store := setupConfigurator(t)
	build := saveBuildThroughHandler(t, store, "Short Lived")

	_, c, rec := setupEcho(store, http.MethodDelete, "/api/builds/:id", nil)
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprintf("%d", build.ID))
	assert.NoError(t, DeleteBuildHandler(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	_, c, _ = setupEcho(store, http.MethodDelete, "/api/builds/:id", nil)
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprintf("%d", build.ID))
	err := DeleteBuildHandler(c)
	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, httpErr.Code)
}
