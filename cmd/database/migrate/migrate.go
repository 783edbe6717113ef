package migration

import (
	"fmt"

	"mymixes/entities"

	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"
)

// Migrate creates or updates every table. Order matters for foreign keys.
func Migrate(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("database handle is nil")
	}

	models := []any{
		&entities.User{},
		&entities.IngredientType{},
		&entities.Recipe{},
		&entities.Ingredient{},
		&entities.Review{},
		&entities.QrToken{},
	}
	for _, model := range models {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("migrate %T: %w", model, err)
		}
	}

	log.Info("Database migration complete")
	return nil
}
