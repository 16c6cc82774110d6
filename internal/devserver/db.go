package devserver

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"sms-campaign-client/internal/config"
)

// OpenDB connects to sqlite (default) or postgres depending on DB_DRIVER and
// runs the auto-migration.
func OpenDB(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "postgres":
		dialector = postgres.Open(cfg.DBDSN)
	case "sqlite", "":
		dialector = sqlite.Open(cfg.DBPath)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER: %s", cfg.DBDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	err = db.AutoMigrate(
		&Contact{},
		&ContactGroup{},
		&Sender{},
		&ApiKey{},
		&SmsJob{},
		&Transaction{},
		&Tenant{},
		&Profile{},
		&SmsPackage{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to run auto-migration: %w", err)
	}

	log.Println("Database migration completed")
	return db, nil
}
