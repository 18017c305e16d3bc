package database

import (
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/crowdbase-dev/crowdbase/internal/config"
	"github.com/crowdbase-dev/crowdbase/internal/models"
)

var DB *gorm.DB

func Connect(cfg *config.Config) error {
	var err error
	DB, err = gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		// TranslateError turns driver-specific duplicate/FK violations into
		// gorm.ErrDuplicatedKey / ErrForeignKeyViolated, which the domain
		// gates depend on for their validation-code mapping.
		TranslateError: true,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	slog.Info("database connected")
	return nil
}

// Migrate runs AutoMigrate for every domain model.
func Migrate() error {
	return DB.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.Image{},
		&models.Category{},
		&models.Project{},
		&models.Task{},
		&models.Application{},
		&models.AuditLog{},
	)
}

func Ping() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
