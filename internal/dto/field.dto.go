package dto

import (
	"github.com/shopspring/decimal"

	domain "github.com/BruksfildServices01/field-scheduler/internal/domain/reservation"
	"github.com/BruksfildServices01/field-scheduler/internal/models"
)

type WorkingWindowDTO struct {
	StartWorkingDay  int    `json:"start_working_day"`
	StartDayName     string `json:"start_day_name"`
	EndWorkingDay    int    `json:"end_working_day"`
	EndDayName       string `json:"end_day_name"`
	StartWorkingHour int    `json:"start_working_hour"`
	StartHourLabel   string `json:"start_hour_label"`
	EndWorkingHour   int    `json:"end_working_hour"`
	EndHourLabel     string `json:"end_hour_label"`
}

type FieldDTO struct {
	ID            uint             `json:"id"`
	FieldOwnerID  uint             `json:"field_owner_id"`
	Name          string           `json:"name"`
	Location      string           `json:"location"`
	Sport         string           `json:"sport"`
	Description   string           `json:"description"`
	ImageURL      string           `json:"image_url"`
	PricePerHour  decimal.Decimal  `json:"price_per_hour"`
	WorkingWindow WorkingWindowDTO `json:"working_window"`
}

func NewFieldDTO(f *models.Field) FieldDTO {
	return FieldDTO{
		ID:           f.ID,
		FieldOwnerID: f.FieldOwnerID,
		Name:         f.Name,
		Location:     f.Location,
		Sport:        f.Sport,
		Description:  f.Description,
		ImageURL:     f.ImageURL,
		PricePerHour: f.PricePerHour,
		WorkingWindow: WorkingWindowDTO{
			StartWorkingDay:  f.StartWorkingDay,
			StartDayName:     domain.DayName(f.StartWorkingDay),
			EndWorkingDay:    f.EndWorkingDay,
			EndDayName:       domain.DayName(f.EndWorkingDay),
			StartWorkingHour: f.StartWorkingHour,
			StartHourLabel:   domain.HourLabel(f.StartWorkingHour),
			EndWorkingHour:   f.EndWorkingHour,
			EndHourLabel:     domain.HourLabel(f.EndWorkingHour),
		},
	}
}
