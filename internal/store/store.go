// Package store owns the Postgres connection, schema migrations and account
// management. Verification results themselves are never persisted.
package store

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"labelcheck/internal/logger"
	"labelcheck/models"
)

// Open connects to Postgres and, when autoMigrate is set, applies schema
// migrations and seed data (master roles plus a default admin account).
func Open(dsn string, autoMigrate bool) (*gorm.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("DB_DSN is not set; a Postgres DSN is required")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if autoMigrate {
		if err := Migrate(db); err != nil {
			return nil, err
		}
	}
	return db, nil
}

// Migrate applies migrations model by model, so a permission failure on one
// table does not block the others, then seeds master data.
func Migrate(db *gorm.DB) error {
	log := logger.WithComponent("store")
	if err := db.AutoMigrate(&models.Role{}); err != nil {
		log.Warn().Err(err).Msg("migration warning (roles)")
	}
	seedRoles(db)
	if err := db.AutoMigrate(&models.User{}); err != nil {
		log.Warn().Err(err).Msg("migration warning (users)")
	}
	if err := db.AutoMigrate(&models.RefreshToken{}); err != nil {
		log.Warn().Err(err).Msg("migration warning (refresh_tokens)")
	}
	return seedAdmin(db)
}

func seedRoles(db *gorm.DB) {
	roles := []models.Role{
		{Name: "administrator", Description: "full access"},
		{Name: "operator", Description: "submits label verifications"},
	}
	for _, r := range roles {
		var cnt int64
		db.Model(&models.Role{}).Where("name = ?", r.Name).Count(&cnt)
		if cnt == 0 {
			db.Create(&r)
		}
	}
}

func seedAdmin(db *gorm.DB) error {
	var count int64
	db.Model(&models.User{}).Where("username = ?", "admin").Count(&count)
	if count > 0 {
		return nil
	}
	var role models.Role
	if err := db.Where("name = ?", "administrator").First(&role).Error; err != nil {
		return fmt.Errorf("administrator role missing: %w", err)
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	rid := role.ID
	admin := models.User{Username: "admin", HashedPassword: hashed, RoleID: &rid}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	seedLog := logger.WithComponent("store")
	seedLog.Info().Msg("seeded admin user: username=admin, password=admin123")
	return nil
}
