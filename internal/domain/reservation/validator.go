package reservation

import (
	"context"
	"time"
)

// Validate decides whether (fieldID, date, hour) can be booked. Checks run in
// a fixed order and the first failure is the only one reported:
// working day, then working hour, then slot occupancy.
//
// The hour is expected to come from the bookable set and the date to be a
// real calendar date; the form layer guarantees both.
func Validate(
	ctx context.Context,
	window WorkingWindow,
	slots SlotChecker,
	fieldID uint,
	date time.Time,
	hour int,
) error {

	if !window.IsDayInWindow(ISOWeekday(date)) {
		return ErrOutsideWorkingDays
	}

	if !window.IsHourInWindow(hour) {
		return ErrOutsideWorkingHours
	}

	taken, err := slots.Exists(ctx, fieldID, NormalizeDate(date), hour)
	if err != nil {
		return err
	}
	if taken {
		return ErrSlotAlreadyReserved
	}

	return nil
}
