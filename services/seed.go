package services

import (
	"log"

	"guitar_builder_app_go/models"

	"gorm.io/gorm"
)

// SeedDefaultCatalog creates the default guitar catalog and constraint
// rules so a fresh install is configurable immediately. Idempotent: it
// skips any table that already has rows.
func SeedDefaultCatalog(dbConn *gorm.DB) error {
	if err := seedCategories(dbConn); err != nil {
		log.Printf("Error seeding categories: %v", err)
		return err
	}
	if err := seedOptions(dbConn); err != nil {
		log.Printf("Error seeding options: %v", err)
		return err
	}
	if err := seedConstraintRules(dbConn); err != nil {
		log.Printf("Error seeding constraint rules: %v", err)
		return err
	}
	return nil
}

func usd(v float64) *float64 {
	return &v
}

func backZ(v int) *int {
	return &v
}

func seedCategories(dbConn *gorm.DB) error {
	var count int64
	if err := dbConn.Model(&models.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("[SEED] Categories already exist, skipping")
		return nil
	}

	categories := []models.Category{
		{ID: 1, Name: "Body", SortOrder: 1},
		{ID: 2, Name: "Neck", SortOrder: 2},
		{ID: 3, Name: "Hardware", SortOrder: 3},
		{ID: 4, Name: "Electronics", SortOrder: 4},
	}
	for _, category := range categories {
		if err := dbConn.Create(&category).Error; err != nil {
			return err
		}
	}

	subcategories := []models.Subcategory{
		{ID: 10, CategoryID: 1, Name: "Body Wood", SortOrder: 1},
		{ID: 11, CategoryID: 1, Name: "Top Wood", SortOrder: 2},
		{ID: 12, CategoryID: 1, Name: "Finish", SortOrder: 3},
		{ID: 20, CategoryID: 2, Name: "Neck Wood", SortOrder: 1},
		{ID: 21, CategoryID: 2, Name: "Fretboard", SortOrder: 2},
		{ID: 30, CategoryID: 2, Name: "Strings", SortOrder: 3},
		{ID: 31, CategoryID: 2, Name: "Scale", SortOrder: 4},
		{ID: 40, CategoryID: 3, Name: "Hardware Color", SortOrder: 1},
		{ID: 41, CategoryID: 3, Name: "Tuners", SortOrder: 2},
		{ID: 42, CategoryID: 3, Name: "Bridge", SortOrder: 3},
		{ID: 50, CategoryID: 4, Name: "Pickups", SortOrder: 1},
	}
	for _, subcategory := range subcategories {
		if err := dbConn.Create(&subcategory).Error; err != nil {
			return err
		}
	}

	return nil
}

func seedOptions(dbConn *gorm.DB) error {
	var count int64
	if err := dbConn.Model(&models.Option{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("[SEED] Options already exist, skipping")
		return nil
	}

	options := []models.Option{
		// Body Wood. Bodies render behind everything in the back view.
		{ID: 54, SubcategoryID: 10, Name: "Swamp Ash", Active: true, ZIndex: 10, BackZIndex: backZ(0),
			FrontImage: "body_swamp_ash_front.png", BackImage: "body_swamp_ash_back.png"},
		{ID: 55, SubcategoryID: 10, Name: "Buckeye Burl", PriceUSD: usd(450), Active: true, ZIndex: 10, BackZIndex: backZ(0),
			FrontImage: "body_buckeye_front.png", BackImage: "body_buckeye_back.png"},
		{ID: 56, SubcategoryID: 10, Name: "Alder", Active: true, IsDefault: true, ZIndex: 10, BackZIndex: backZ(0),
			FrontImage: "body_alder_front.png", BackImage: "body_alder_back.png"},

		// Top Wood
		{ID: 734, SubcategoryID: 11, Name: "Flame Maple Top", PriceUSD: usd(350), Active: true, ZIndex: 20,
			FrontImage: "top_flame_maple.png"},
		{ID: 735, SubcategoryID: 11, Name: "Quilted Maple Top", PriceUSD: usd(350), Active: true, ZIndex: 20,
			FrontImage: "top_quilted_maple.png"},
		{ID: 1017, SubcategoryID: 11, Name: "Natural Buckeye Top", Active: true, ZIndex: 20,
			FrontImage: "top_buckeye_natural.png"},

		// Finish
		{ID: 60, SubcategoryID: 12, Name: "Satin Natural", Active: true, IsDefault: true, ZIndex: 30,
			FrontImage: "finish_satin.png"},
		{ID: 61, SubcategoryID: 12, Name: "Gloss Sunburst", PriceUSD: usd(200), Active: true, ZIndex: 30,
			FrontImage: "finish_sunburst.png"},

		// Neck Wood
		{ID: 70, SubcategoryID: 20, Name: "Maple", Active: true, IsDefault: true, ZIndex: 40,
			FrontImage: "neck_maple_front.png", BackImage: "neck_maple_back.png"},
		{ID: 71, SubcategoryID: 20, Name: "Roasted Maple", PriceUSD: usd(150), Active: true, ZIndex: 40,
			FrontImage: "neck_roasted_front.png", BackImage: "neck_roasted_back.png"},

		// Fretboard
		{ID: 80, SubcategoryID: 21, Name: "Ebony", Active: true, IsDefault: true, ZIndex: 50,
			FrontImage: "fretboard_ebony.png"},
		{ID: 81, SubcategoryID: 21, Name: "Pau Ferro", Active: true, ZIndex: 50,
			FrontImage: "fretboard_pau_ferro.png"},

		// Strings
		{ID: 369, SubcategoryID: 30, Name: "6 Strings", Active: true, IsDefault: true, StringCount: models.StringCount6, ZIndex: 60,
			FrontImage: "strings_6.png"},
		{ID: 370, SubcategoryID: 30, Name: "7 Strings", PriceUSD: usd(100), Active: true, StringCount: models.StringCount7, ZIndex: 60,
			FrontImage: "strings_7.png"},

		// Scale
		{ID: 380, SubcategoryID: 31, Name: "Standard Scale", Active: true, IsDefault: true, ScaleLength: models.ScaleStandard, ZIndex: 0},
		{ID: 381, SubcategoryID: 31, Name: "Multiscale", PriceUSD: usd(250), Active: true, ScaleLength: models.ScaleMultiscale, ZIndex: 0},

		// Hardware Color (the pair driver; carries no image of its own)
		{ID: 727, SubcategoryID: 40, Name: "Black", Active: true, IsDefault: true, HardwareColor: models.HardwareBlack, ZIndex: 0},
		{ID: 728, SubcategoryID: 40, Name: "Chrome", PriceUSD: usd(50), Active: true, HardwareColor: models.HardwareChrome, ZIndex: 0},

		// Tuners. Bolt-on hardware renders in front of the body in the
		// back view, hence the high override.
		{ID: 102, SubcategoryID: 41, Name: "Tuners Black", Active: true, IsDefault: true, HardwareColor: models.HardwareBlack, ZIndex: 70, BackZIndex: backZ(95),
			FrontImage: "tuners_black_front.png", BackImage: "tuners_black_back.png"},
		{ID: 997, SubcategoryID: 41, Name: "Tuners Chrome", Active: true, HardwareColor: models.HardwareChrome, ZIndex: 70, BackZIndex: backZ(95),
			FrontImage: "tuners_chrome_front.png", BackImage: "tuners_chrome_back.png"},

		// Bridge
		{ID: 725, SubcategoryID: 42, Name: "Hipshot Bridge Black", Active: true, IsDefault: true, HardwareColor: models.HardwareBlack, ScaleLength: models.ScaleStandard, ZIndex: 80, BackZIndex: backZ(96),
			FrontImage: "bridge_hipshot_black.png", BackImage: "bridge_hipshot_black_back.png"},
		{ID: 726, SubcategoryID: 42, Name: "Hipshot Bridge Chrome", Active: true, HardwareColor: models.HardwareChrome, ScaleLength: models.ScaleStandard, ZIndex: 80, BackZIndex: backZ(96),
			FrontImage: "bridge_hipshot_chrome.png", BackImage: "bridge_hipshot_chrome_back.png"},
		{ID: 740, SubcategoryID: 42, Name: "Multiscale Bridge Black", PriceUSD: usd(80), Active: true, HardwareColor: models.HardwareBlack, ScaleLength: models.ScaleMultiscale, ZIndex: 80, BackZIndex: backZ(96),
			FrontImage: "bridge_multiscale_black.png", BackImage: "bridge_multiscale_black_back.png"},

		// Pickups
		{ID: 90, SubcategoryID: 50, Name: "Passive Humbuckers", Active: true, IsDefault: true, StringCount: models.StringCountAll, ZIndex: 90,
			FrontImage: "pickups_humbuckers.png"},
		{ID: 91, SubcategoryID: 50, Name: "7-String Humbuckers", PriceUSD: usd(120), Active: true, StringCount: models.StringCount7, ZIndex: 90,
			FrontImage: "pickups_humbuckers_7.png"},
		{ID: 92, SubcategoryID: 50, Name: "Single Coils", PriceUSD: usd(80), Active: true, StringCount: models.StringCount6, ZIndex: 90,
			FrontImage: "pickups_single_coils.png"},
	}
	for _, option := range options {
		if err := dbConn.Create(&option).Error; err != nil {
			return err
		}
	}

	return nil
}

func seedConstraintRules(dbConn *gorm.DB) error {
	var count int64
	if err := dbConn.Model(&models.ConstraintRule{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("[SEED] Constraint rules already exist, skipping")
		return nil
	}

	tunersChrome := uint(997)
	bridgeChrome := uint(726)

	rules := []models.ConstraintRule{
		// Buckeye Burl bodies force their own natural top and ship
		// satin-only, so the finish picker is suppressed while selected.
		{TriggerOptionID: 55, HiddenOptionIDs: "734,735", AutoSelectIDs: "1017", HiddenSubcategoryIDs: "12"},

		// String-count exclusivity tables.
		{TriggerOptionID: 369, HiddenOptionIDs: "91"},
		{TriggerOptionID: 370, HiddenOptionIDs: "92"},

		// Scale exclusivity: each scale hides the other's bridges.
		{TriggerOptionID: 380, HiddenOptionIDs: "740"},
		{TriggerOptionID: 381, HiddenOptionIDs: "725,726", AutoSelectIDs: "740"},

		// Black/chrome variant pairs mirroring the hardware color pick.
		{TriggerOptionID: 102, PairedOptionID: &tunersChrome},
		{TriggerOptionID: 725, PairedOptionID: &bridgeChrome},
	}
	for _, rule := range rules {
		if err := dbConn.Create(&rule).Error; err != nil {
			return err
		}
	}

	return nil
}
