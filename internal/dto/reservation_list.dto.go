package dto

import "github.com/shopspring/decimal"

type ReservationListDTO struct {
	ID               uint            `json:"id"`
	FieldID          uint            `json:"field_id"`
	FieldName        string          `json:"field_name"`
	UserID           uint            `json:"user_id"`
	Username         string          `json:"username"`
	ReservationDate  string          `json:"reservation_date"`
	DayName          string          `json:"day_name"`
	ReservationHour  int             `json:"reservation_hour"`
	HourLabel        string          `json:"hour_label"`
	Price            decimal.Decimal `json:"price"`
	ConfirmationCode string          `json:"confirmation_code,omitempty"`
}
