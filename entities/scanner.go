package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Scanner is a named input device profile. Name is unique per user.
type Scanner struct {
	ID         uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	UserID     uuid.UUID         `gorm:"type:uuid;uniqueIndex:idx_scanners_user_name;not null" json:"user_id"`
	Name       string            `gorm:"uniqueIndex:idx_scanners_user_name;not null" json:"name"`
	Type       string            `gorm:"type:varchar(10);not null" json:"type"` // "camera", "manual", "excel"
	Metadata   datatypes.JSONMap `json:"metadata,omitempty"`
	IsActive   bool              `gorm:"default:true" json:"is_active"`
	LastUsedAt *time.Time        `gorm:"index" json:"last_used_at,omitempty"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
	Timestamp
}

func (s *Scanner) BeforeCreate(tx *gorm.DB) error {
	newID(&s.ID)
	return nil
}
