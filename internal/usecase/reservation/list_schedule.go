package reservation

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/field-scheduler/internal/domain/reservation"
	"github.com/BruksfildServices01/field-scheduler/internal/dto"
	"github.com/BruksfildServices01/field-scheduler/internal/models"
)

// ScheduleQuery selects a field's schedule when FieldID is set, otherwise
// the schedule of UserID.
type ScheduleQuery struct {
	FieldID uint
	UserID  uint
}

type ListSchedule struct {
	fields domain.FieldRepository
	ledger domain.Ledger
}

func NewListSchedule(
	fields domain.FieldRepository,
	ledger domain.Ledger,
) *ListSchedule {
	return &ListSchedule{
		fields: fields,
		ledger: ledger,
	}
}

// Execute returns reservations ordered by (date, hour) ascending; an empty
// schedule is an empty slice, not an error.
func (uc *ListSchedule) Execute(
	ctx context.Context,
	q ScheduleQuery,
) ([]dto.ReservationListDTO, error) {

	var (
		list []models.Reservation
		err  error
	)

	if q.FieldID != 0 {
		if _, err := uc.fields.GetField(ctx, q.FieldID); err != nil {
			return nil, err
		}
		list, err = uc.ledger.ListByField(ctx, q.FieldID)
	} else {
		list, err = uc.ledger.ListByUser(ctx, q.UserID)
	}
	if err != nil {
		return nil, err
	}

	out := make([]dto.ReservationListDTO, 0, len(list))
	for _, r := range list {
		item := ToListDTO(r)
		// A field schedule is public to the field; codes stay with their booker.
		if q.FieldID != 0 {
			item.ConfirmationCode = ""
		}
		out = append(out, item)
	}

	return out, nil
}

func ToListDTO(r models.Reservation) dto.ReservationListDTO {
	return dto.ReservationListDTO{
		ID:               r.ID,
		FieldID:          r.FieldID,
		FieldName:        r.Field.Name,
		UserID:           r.UserID,
		Username:         r.User.Username,
		ReservationDate:  r.ReservationDate.Format(time.DateOnly),
		DayName:          domain.DayName(domain.ISOWeekday(r.ReservationDate)),
		ReservationHour:  r.ReservationHour,
		HourLabel:        domain.HourLabel(r.ReservationHour),
		Price:            r.Price,
		ConfirmationCode: r.ConfirmationCode,
	}
}
