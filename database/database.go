// database.go - Handles database connection, migration and setup

package database

import (
	"fmt"

	"go-tree-catalog/config"
	"go-tree-catalog/models"
	"go-tree-catalog/security"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the SQLite database, runs migrations for the users and trees
// tables and optionally bootstraps a default admin account.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(cfg.DBPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Tree{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	if err := createDefaultAdmin(db, cfg); err != nil {
		return nil, err
	}
	return db, nil
}

// createDefaultAdmin creates an admin account when explicitly configured and
// no admin exists yet. Credentials come from the environment, never from
// code.
func createDefaultAdmin(db *gorm.DB, cfg *config.Config) error {
	if !cfg.CreateAdmin {
		return nil
	}
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return fmt.Errorf("CREATE_ADMIN set but ADMIN_EMAIL or ADMIN_PASSWORD missing")
	}

	var count int64
	if err := db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := security.HashPassword(cfg.AdminPassword)
	if err != nil {
		return err
	}
	admin := models.User{
		Username: cfg.AdminUsername,
		Email:    cfg.AdminEmail,
		Password: hash,
		Role:     models.RoleAdmin,
	}
	return db.Create(&admin).Error
}
