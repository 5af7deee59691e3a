package infra

import (
	"fmt"

	"leadbook/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies the idempotent SQL patches that
// AutoMigrate cannot express.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := db.AutoMigrate(
		&model.User{},
		&model.Lead{},
	); err != nil {
		return nil, fmt.Errorf("AutoMigrate: %w", err)
	}

	if err := applySchemaPatches(db); err != nil {
		return nil, fmt.Errorf("schema patches: %w", err)
	}

	return db, nil
}

// applySchemaPatches runs idempotent DDL that GORM AutoMigrate cannot express.
// Each statement uses IF NOT EXISTS semantics so re-running on an already
// patched DB is safe.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// At most one admin account, enforced by the database itself. Two
		// processes racing through the startup seed both insert with
		// ON CONFLICT DO NOTHING against this index, so exactly one wins.
		`CREATE UNIQUE INDEX IF NOT EXISTS uni_users_single_admin
		     ON users (role) WHERE role = 'admin'`,
	}

	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", sql[:min(len(sql), 60)], err)
		}
	}
	return nil
}

// RunMigrations applies the schema (AutoMigrate + patches) for tests.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.User{}, &model.Lead{}); err != nil {
		return err
	}
	return applySchemaPatches(db)
}
