package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ScanHistory is an append-only log row; it is never updated or deleted.
type ScanHistory struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID       uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	ScannedValue string    `gorm:"not null" json:"scanned_value"`
	Method       string    `gorm:"type:varchar(10);not null" json:"method"` // "camera", "manual", "excel"
	CreatedAt    time.Time `gorm:"index" json:"created_at"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}

func (ScanHistory) TableName() string {
	return "scan_history"
}

func (h *ScanHistory) BeforeCreate(tx *gorm.DB) error {
	newID(&h.ID)
	return nil
}
