package database

import (
	"fmt"
	"log"

	"diveops-console/internal/config"
	"diveops-console/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// InitDB connects to Postgres when DB_HOST is configured, otherwise falls
// back to a local SQLite file, and migrates the schema.
func InitDB(cfg *config.Config) {
	var err error
	if cfg.DBHost != "" {
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
			cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort, cfg.DBSSLMode)
		DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Warn),
		})
		if err != nil {
			log.Fatalf("Failed to connect to PostgreSQL: %v", err)
		}
		log.Println("Connected to PostgreSQL successfully")
	} else {
		DB, err = gorm.Open(sqlite.Open(cfg.DBPath), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Warn),
		})
		if err != nil {
			log.Fatalf("Failed to open SQLite database: %v", err)
		}
		log.Printf("Opened SQLite database at %s", cfg.DBPath)
	}

	err = DB.AutoMigrate(
		&models.Message{},
		&models.Contact{},
		&models.ReplyTemplate{},
		&models.ImportLog{},
		&models.SystemSetting{},
	)
	if err != nil {
		log.Fatalf("Failed to run auto-migration: %v", err)
	}

	log.Println("Database migration completed")
}
