package database

import (
	"gorm.io/gorm"

	"restaurant-ops/models"
	"restaurant-ops/utils"
)

// Migrate creates the schema and verifies the storage constraints the
// services depend on. The one that matters most is the unique index on
// table_openings.active_table_id: without it the open-table protocol is a
// racy check-then-act.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Table{},
		&models.TableOpening{},
		&models.MenuCategory{},
		&models.MenuItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Bill{},
		&models.Ingredient{},
		&models.ItemIngredient{},
	)
	if err != nil {
		return err
	}

	required := []struct {
		model interface{}
		name  string
	}{
		{&models.TableOpening{}, "idx_table_openings_active_table_id"},
		{&models.Bill{}, "idx_bills_order_id"},
		{&models.OrderItem{}, "idx_order_menu"},
	}
	for _, idx := range required {
		if !db.Migrator().HasIndex(idx.model, idx.name) {
			utils.ErrorLogger.Printf("missing required index %s, creating", idx.name)
			if err := db.Migrator().CreateIndex(idx.model, idx.name); err != nil {
				return err
			}
		}
	}

	utils.InfoLogger.Println("schema migration completed")
	return nil
}
