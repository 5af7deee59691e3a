// Package seed owns the "has an admin" invariant: at process start exactly one
// admin account must exist. The insert races safely against concurrent
// startups because the partial unique index on role='admin' plus
// ON CONFLICT DO NOTHING lets exactly one process win.
package seed

import (
	"context"

	"leadbook/internal/config"
	"leadbook/internal/service"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// EnsureAdmin idempotently creates the admin account when none exists.
// Re-running is a no-op; it never updates an existing admin.
func EnsureAdmin(ctx context.Context, db *gorm.DB, cfg *config.Config) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), 12)
	if err != nil {
		return err
	}

	return db.WithContext(ctx).Exec(`
		INSERT INTO users (username, password_hash, role, branch, can_bulk_ingest, created_at, updated_at)
		VALUES (?, ?, 'admin', ?, false, now(), now())
		ON CONFLICT DO NOTHING
	`, service.NormalizeUsername(cfg.AdminUsername), string(hash), cfg.AdminBranch).Error
}
