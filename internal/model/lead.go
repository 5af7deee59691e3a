package model

import (
	"time"

	"github.com/google/uuid"
)

// Lead is a single student lead record. All free-text fields default to the
// empty string and are stored trimmed.
type Lead struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name         string    `gorm:"not null;default:''"`
	Std          string    `gorm:"not null;default:''"`
	School       string    `gorm:"not null;default:''"`
	Board        string    `gorm:"not null;default:''"`
	MotherMobile string    `gorm:"column:m_mob_no;not null;default:''"`
	FatherMobile string    `gorm:"column:f_mob_no;not null;default:''"`
	Address      string    `gorm:"not null;default:''"`
	Area         string    `gorm:"not null;default:''"`
	// Reference is the derived attribution string (referrer + branch).
	Reference string `gorm:"not null;default:''"`
	// AddedBy is set exactly once at creation, from the acting principal,
	// and never changes afterwards — not even through edits.
	AddedBy   string `gorm:"index;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
