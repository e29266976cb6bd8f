package handlers

import (
	"net/http"

	"guitar_builder_app_go/db"
	"guitar_builder_app_go/models"
	"guitar_builder_app_go/services"

	"github.com/labstack/echo/v4"
)

type catalogOptionView struct {
	models.Option
	Hidden bool `json:"hidden"`
}

type catalogSubcategoryView struct {
	ID      uint                `json:"id"`
	Name    string              `json:"name"`
	Hidden  bool                `json:"hidden"`
	Options []catalogOptionView `json:"options"`
}

type catalogCategoryView struct {
	ID            uint                     `json:"id"`
	Name          string                   `json:"name"`
	Subcategories []catalogSubcategoryView `json:"subcategories"`
}

// GetCatalogHandler returns the catalog tree with per-option visibility
// under the current selection. An optional string_count query parameter
// re-loads the catalog narrowed to compatible options.
func GetCatalogHandler(c echo.Context) error {
	store := GetConfigurator(c)
	catalog := store.Catalog()
	rules := store.Rules()

	if stringCount := c.QueryParam("string_count"); stringCount != "" {
		filtered, err := services.LoadCatalog(db.DB, services.CatalogFilter{StringCount: stringCount})
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load catalog")
		}
		catalog = filtered
	}

	if !catalog.Ready() {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Catalog is not ready")
	}

	selection := store.State().Selection

	tree := make([]catalogCategoryView, 0, len(catalog.Categories()))
	for _, category := range catalog.Categories() {
		catView := catalogCategoryView{ID: category.ID, Name: category.Name}
		for _, sub := range catalog.SubcategoriesForCategory(category.ID) {
			subView := catalogSubcategoryView{
				ID:     sub.ID,
				Name:   sub.Name,
				Hidden: sub.Hidden || rules.SubcategoryHidden(sub.ID, selection),
			}
			for _, opt := range catalog.OptionsForSubcategory(sub.ID) {
				subView.Options = append(subView.Options, catalogOptionView{
					Option: opt,
					Hidden: rules.OptionHidden(opt, selection),
				})
			}
			catView.Subcategories = append(catView.Subcategories, subView)
		}
		tree = append(tree, catView)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"categories": tree,
	})
}

// CatalogTemplateHandler serves the spreadsheet template for option import.
func CatalogTemplateHandler(c echo.Context) error {
	store := GetConfigurator(c)

	buf, err := services.GenerateCatalogTemplate(store.Catalog())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate template")
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="catalog_options.xlsx"`)
	return c.Blob(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// ImportCatalogHandler ingests an uploaded options spreadsheet, then
// reloads the catalog snapshot so new options are immediately selectable.
func ImportCatalogHandler(c echo.Context) error {
	store := GetConfigurator(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing file upload")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Failed to open uploaded file")
	}
	defer file.Close()

	result, err := services.ImportCatalogOptions(db.DB, store.Catalog(), file)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Failed to read spreadsheet")
	}

	if result.SuccessCount > 0 {
		catalog, err := services.LoadCatalog(db.DB, services.CatalogFilter{})
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Import succeeded but catalog reload failed")
		}
		rules, err := services.LoadRuleSet(db.DB)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Import succeeded but rule reload failed")
		}
		store.Reload(catalog, rules)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":         result.FailedCount == 0,
		"total_processed": result.TotalProcessed,
		"success_count":   result.SuccessCount,
		"failed_count":    result.FailedCount,
		"errors":          result.Errors,
	})
}
