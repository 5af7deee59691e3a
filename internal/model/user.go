package model

import (
	"time"

	"github.com/google/uuid"
)

// Role: "admin" | "user"
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User stores account identities with role-based access.
// Usernames are normalized (lowercase, trimmed) before they reach the store.
// Accounts are never updated after creation — only created and deleted.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username     string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	Role         string    `gorm:"type:varchar(10);not null;default:'user'"`
	// Branch groups a user's leads; every reference string ends with it.
	Branch string `gorm:"not null"`
	// CanBulkIngest grants access to the bulk ingestion endpoint.
	CanBulkIngest bool `gorm:"not null;default:false"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
