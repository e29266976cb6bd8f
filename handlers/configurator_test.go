package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"guitar_builder_app_go/services"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func decodeState(t *testing.T, body string) services.ConfiguratorState {
	t.Helper()
	var state services.ConfiguratorState
	assert.NoError(t, json.Unmarshal([]byte(body), &state))
	return state
}

func TestGetConfiguratorStateHandler(t *testing.T) {
	store := setupConfigurator(t)
	_, c, rec := setupEcho(store, http.MethodGet, "/api/configurator", nil)

	err := GetConfiguratorStateHandler(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	state := decodeState(t, rec.Body.String())
	assert.Equal(t, services.ViewFront, state.View)
	assert.Equal(t, 0.0, state.TotalPrice)
	assert.Equal(t, uint(56), state.Selection[10].ID)
	assert.NotEmpty(t, state.Layers)
	for _, layer := range state.Layers {
		assert.True(t, strings.HasPrefix(layer.ImageURL, "/static/options/"),
			"layer %d should carry a resolved image url, got %q", layer.OptionID, layer.ImageURL)
	}
}

func TestSelectOptionHandler(t *testing.T) {
	store := setupConfigurator(t)

	t.Run("AppliesPick", func(t *testing.T) {
		_, c, rec := setupEcho(store, http.MethodPost, "/api/configurator/select",
			strings.NewReader(`{"option_id": 55}`))

		err := SelectOptionHandler(c)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)

		state := decodeState(t, rec.Body.String())
		assert.Equal(t, uint(55), state.Selection[10].ID)
		assert.Equal(t, uint(1017), state.Selection[11].ID)
		assert.Equal(t, 450.0, state.TotalPrice)
	})

	t.Run("MissingOptionID", func(t *testing.T) {
		_, c, _ := setupEcho(store, http.MethodPost, "/api/configurator/select",
			strings.NewReader(`{}`))

		err := SelectOptionHandler(c)
		httpErr, ok := err.(*echo.HTTPError)
		assert.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	})

	t.Run("UnknownOptionIsNoop", func(t *testing.T) {
		before := store.State()
		_, c, rec := setupEcho(store, http.MethodPost, "/api/configurator/select",
			strings.NewReader(`{"option_id": 99999}`))

		err := SelectOptionHandler(c)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)

		state := decodeState(t, rec.Body.String())
		assert.Equal(t, before.TotalPrice, state.TotalPrice)
	})
}

func TestSetViewHandler(t *testing.T) {
	store := setupConfigurator(t)

	_, c, rec := setupEcho(store, http.MethodPost, "/api/configurator/view",
		strings.NewReader(`{"view": "back"}`))
	assert.NoError(t, SetViewHandler(c))

	state := decodeState(t, rec.Body.String())
	assert.Equal(t, services.ViewBack, state.View)
	for _, layer := range state.Layers {
		assert.Equal(t, services.ViewBack, layer.View)
	}

	_, c, _ = setupEcho(store, http.MethodPost, "/api/configurator/view",
		strings.NewReader(`{"view": "sideways"}`))
	err := SetViewHandler(c)
	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestResetConfiguratorHandler(t *testing.T) {
	store := setupConfigurator(t)
	store.Select(55)

	_, c, rec := setupEcho(store, http.MethodPost, "/api/configurator/reset", nil)
	assert.NoError(t, ResetConfiguratorHandler(c))

	state := decodeState(t, rec.Body.String())
	assert.Equal(t, uint(56), state.Selection[10].ID)
	assert.Equal(t, 0.0, state.TotalPrice)
}
