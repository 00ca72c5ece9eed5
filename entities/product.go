package entities

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product is owned by the external system of record; the scanner only reads it.
type Product struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	SerialNumber    string    `gorm:"uniqueIndex;not null" json:"serial_number" yaml:"serial_number"`
	ProductName     string    `json:"product_name" yaml:"product_name"`
	ProductCode     string    `json:"product_code" yaml:"product_code"`
	Packaging       string    `json:"packaging" yaml:"packaging"`
	ProductionOrder string    `json:"production_order" yaml:"production_order"`
	ProductionDate  string    `json:"production_date" yaml:"production_date"` // YYYY-MM-DD
	ProductionTime  string    `json:"production_time" yaml:"production_time"` // HH:MM
	Location        string    `json:"location" yaml:"location"`

	Timestamp `yaml:"-"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	newID(&p.ID)
	return nil
}
