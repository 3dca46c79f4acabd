package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Field is a sports venue with a single weekly working window.
// Days are 1..7 (Monday..Sunday), hours come from the bookable set (16..21).
type Field struct {
	ID uint `gorm:"primaryKey" json:"id"`

	FieldOwnerID uint `gorm:"index;not null" json:"field_owner_id"`
	FieldOwner   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Name         string          `gorm:"size:100;not null" json:"name"`
	Location     string          `gorm:"size:200" json:"location"`
	Sport        string          `gorm:"size:100;index" json:"sport"`
	Description  string          `gorm:"type:text" json:"description"`
	ImageURL     string          `gorm:"size:255" json:"image_url"`
	PricePerHour decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0" json:"price_per_hour"`

	StartWorkingDay  int `gorm:"not null;default:1" json:"start_working_day"`
	StartWorkingHour int `gorm:"not null;default:16" json:"start_working_hour"`
	EndWorkingDay    int `gorm:"not null;default:1" json:"end_working_day"`
	EndWorkingHour   int `gorm:"not null;default:16" json:"end_working_hour"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
