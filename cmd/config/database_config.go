package config

import (
	"fmt"
	"strings"
	"time"

	"mymixes/internal/utils"

	"github.com/gofiber/fiber/v2/log"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const sqlitePrefix = "sqlite://"

// ConnectDB opens DATABASE_URL, or a DSN built from the DB_* settings when it
// is empty. A "sqlite://<path>" URL opens a local sqlite file instead of postgres.
func ConnectDB() (*gorm.DB, error) {
	dsn := utils.GetConfig("DATABASE_URL")
	if dsn == "" {
		dsn = fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
			utils.GetConfig("DB_HOST"),
			utils.GetConfig("DB_USER"),
			utils.GetConfig("DB_PASSWORD"),
			utils.GetConfig("DB_NAME"),
			utils.GetConfig("DB_PORT"),
		)
	}

	gormConfig := &gorm.Config{
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}
	if utils.GetConfig("APP_ENV") == "production" {
		gormConfig.Logger = logger.Default.LogMode(logger.Warn)
	}

	var dialector gorm.Dialector
	if path, ok := strings.CutPrefix(dsn, sqlitePrefix); ok {
		dialector = sqlite.Open(path + "?_foreign_keys=on")
	} else {
		dialector = postgres.Open(dsn)
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	log.Infof("connected to %s database", db.Dialector.Name())
	return db, nil
}
