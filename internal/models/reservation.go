package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Reservation occupies exactly one (field, date, hour) slot.
// The composite unique index is the authoritative double-booking guard.
type Reservation struct {
	ID uint `gorm:"primaryKey" json:"id"`

	FieldID uint  `gorm:"not null;uniqueIndex:idx_reservation_slot,priority:1" json:"field_id"`
	Field   Field `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	UserID uint `gorm:"not null;index" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	ReservationDate time.Time `gorm:"type:date;not null;uniqueIndex:idx_reservation_slot,priority:2" json:"reservation_date"`
	ReservationHour int       `gorm:"not null;uniqueIndex:idx_reservation_slot,priority:3" json:"reservation_hour"`

	Price            decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0" json:"price"`
	ConfirmationCode string          `gorm:"size:36;uniqueIndex;not null" json:"confirmation_code"`

	CreatedAt time.Time `json:"created_at"`
}
