package config

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"jemyeonso/interview-ai/internal/models"
)

// InitDatabase opens the postgres pool and migrates the résumé, interview and
// answer analysis tables.
func InitDatabase(cfg *Config) (*gorm.DB, error) {
	logLevel := logger.Warn
	switch cfg.Server.Env {
	case "development":
		logLevel = logger.Info
	case "test":
		logLevel = logger.Silent
	}

	db, err := gorm.Open(postgres.Open(cfg.GetDatabaseDSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access connection pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	log.Printf("✅ Database connected (%s/%s)\n", cfg.Database.Host, cfg.Database.DBName)

	if err := db.AutoMigrate(
		&models.Resume{},
		&models.Interview{},
		&models.AnswerAnalysis{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate interview tables: %w", err)
	}

	log.Println("✅ Interview tables migrated")

	return db, nil
}
