package db

import (
	"fmt"
	"log"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/parisxmas/formdesk/internal/config"
	"github.com/parisxmas/formdesk/internal/models"
)

// Connect opens the relational store holding dossiers and admin users.
// SQLite is the default; postgres and mysql take a full DSN via DB_DSN.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch cfg.DBType {
	case "sqlite":
		dialector = sqlite.Open(cfg.DBPath)
	case "postgres", "postgresql":
		dialector = postgres.Open(cfg.DBDSN)
	case "mysql", "mariadb":
		dialector = mysql.Open(cfg.DBDSN)
	default:
		return nil, fmt.Errorf("unsupported database type: %s", cfg.DBType)
	}

	gdb, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect %s database: %w", cfg.DBType, err)
	}

	log.Printf("Connected to %s database", cfg.DBType)
	return gdb, nil
}

// AutoMigrate creates or updates the dossier and user tables.
func AutoMigrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&models.Dossier{},
		&models.User{},
	)
}

// Close releases the underlying connection pool.
func Close(gdb *gorm.DB) error {
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
