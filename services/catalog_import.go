package services

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"guitar_builder_app_go/models"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

const importSheetOptions = "Options"

var importHeaders = []string{
	"Subcategory", "Option Name", "Price USD", "Default",
	"String Count", "Scale Length", "Hardware Color",
	"Z-Index", "Front Image", "Back Image",
}

// ImportResult contains the summary of a catalog import.
type ImportResult struct {
	TotalProcessed int
	SuccessCount   int
	FailedCount    int
	Errors         []string
}

// GenerateCatalogTemplate builds the Excel template admins fill in to add
// catalog options, with one example row per known subcategory.
func GenerateCatalogTemplate(cat *Catalog) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", importSheetOptions)

	headerStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	for i, header := range importHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(importSheetOptions, cell, header)
		f.SetCellStyle(importSheetOptions, cell, cell, headerStyle)
	}

	row := 2
	for _, sub := range cat.Subcategories() {
		f.SetCellValue(importSheetOptions, fmt.Sprintf("A%d", row), sub.Name)
		row++
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to generate template: %w", err)
	}
	return buf, nil
}

// ImportCatalogOptions reads option rows from an uploaded spreadsheet and
// creates them. Rows referencing unknown subcategories fail individually;
// the import itself only fails on an unreadable file.
func ImportCatalogOptions(dbConn *gorm.DB, cat *Catalog, file io.Reader) (*ImportResult, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(importSheetOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", importSheetOptions, err)
	}

	subcatByName := make(map[string]uint)
	for _, sub := range cat.Subcategories() {
		subcatByName[strings.ToLower(sub.Name)] = sub.ID
	}

	result := &ImportResult{}
	for i, row := range rows {
		if i == 0 || len(row) == 0 {
			continue // header or blank
		}
		result.TotalProcessed++

		if err := importOptionRow(dbConn, subcatByName, row); err != nil {
			result.FailedCount++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", i+1, err))
			continue
		}
		result.SuccessCount++
	}

	return result, nil
}

func importOptionRow(dbConn *gorm.DB, subcatByName map[string]uint, row []string) error {
	col := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	subName := col(0)
	name := col(1)
	if subName == "" || name == "" {
		return fmt.Errorf("subcategory and option name are required")
	}

	subID, ok := subcatByName[strings.ToLower(subName)]
	if !ok {
		return fmt.Errorf("unknown subcategory %q", subName)
	}

	option := models.Option{
		SubcategoryID: subID,
		Name:          name,
		Active:        true,
		StringCount:   col(4),
		ScaleLength:   col(5),
		HardwareColor: col(6),
		FrontImage:    col(8),
		BackImage:     col(9),
	}

	if price := col(2); price != "" {
		v, err := strconv.ParseFloat(price, 64)
		if err != nil {
			return fmt.Errorf("invalid price %q", price)
		}
		option.PriceUSD = &v
	}
	if def := strings.ToLower(col(3)); def == "yes" || def == "true" || def == "1" {
		option.IsDefault = true
	}
	if z := col(7); z != "" {
		v, err := strconv.Atoi(z)
		if err != nil {
			return fmt.Errorf("invalid z-index %q", z)
		}
		option.ZIndex = v
	}

	if err := dbConn.Create(&option).Error; err != nil {
		return fmt.Errorf("failed to create option: %w", err)
	}
	return nil
}
