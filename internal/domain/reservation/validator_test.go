package reservation

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type slotSet map[string]bool

func slotKey(fieldID uint, date time.Time, hour int) string {
	return fmt.Sprintf("%d/%s/%d", fieldID, date.Format(time.DateOnly), hour)
}

func (s slotSet) Exists(_ context.Context, fieldID uint, date time.Time, hour int) (bool, error) {
	return s[slotKey(fieldID, date, hour)], nil
}

type failingChecker struct{ err error }

func (f failingChecker) Exists(context.Context, uint, time.Time, int) (bool, error) {
	return false, f.err
}

var (
	// Tuesday..Thursday, 16:00..20:00
	tueToThu  = WorkingWindow{StartDay: 2, StartHour: 16, EndDay: 4, EndHour: 20}
	wednesday = time.Date(2025, time.March, 12, 0, 0, 0, 0, time.UTC)
	friday    = time.Date(2025, time.March, 14, 0, 0, 0, 0, time.UTC)
)

func TestValidate_AdmitsSlotInsideWindow(t *testing.T) {
	err := Validate(context.Background(), tueToThu, slotSet{}, 1, wednesday, 18)

	assert.NoError(t, err)
}

func TestValidate_RejectsDayOutsideWindow(t *testing.T) {
	err := Validate(context.Background(), tueToThu, slotSet{}, 1, friday, 18)

	assert.ErrorIs(t, err, ErrOutsideWorkingDays)
}

func TestValidate_RejectsHourOutsideWindow(t *testing.T) {
	err := Validate(context.Background(), tueToThu, slotSet{}, 1, wednesday, 21)

	assert.ErrorIs(t, err, ErrOutsideWorkingHours)
}

func TestValidate_RejectsTakenSlot(t *testing.T) {
	taken := slotSet{slotKey(1, wednesday, 18): true}

	err := Validate(context.Background(), tueToThu, taken, 1, wednesday, 18)
	assert.ErrorIs(t, err, ErrSlotAlreadyReserved)

	// other field, same slot
	err = Validate(context.Background(), tueToThu, taken, 2, wednesday, 18)
	assert.NoError(t, err)
}

func TestValidate_DayCheckWinsOverHourAndOccupancy(t *testing.T) {
	taken := slotSet{slotKey(1, friday, 21): true}

	err := Validate(context.Background(), tueToThu, taken, 1, friday, 21)

	assert.ErrorIs(t, err, ErrOutsideWorkingDays)
	assert.NotErrorIs(t, err, ErrOutsideWorkingHours)
}

func TestValidate_HourCheckWinsOverOccupancy(t *testing.T) {
	taken := slotSet{slotKey(1, wednesday, 21): true}

	err := Validate(context.Background(), tueToThu, taken, 1, wednesday, 21)

	assert.ErrorIs(t, err, ErrOutsideWorkingHours)
}

func TestValidate_RepeatedRejectionIsStable(t *testing.T) {
	first := Validate(context.Background(), tueToThu, slotSet{}, 1, friday, 18)
	second := Validate(context.Background(), tueToThu, slotSet{}, 1, friday, 18)

	assert.Equal(t, first, second)
}

func TestValidate_InvertedWindowRejectsEverything(t *testing.T) {
	inverted := WorkingWindow{StartDay: 5, StartHour: 16, EndDay: 2, EndHour: 21}

	for i := 0; i < 7; i++ {
		err := Validate(context.Background(), inverted, slotSet{}, 1, wednesday.AddDate(0, 0, i), 18)
		assert.ErrorIs(t, err, ErrOutsideWorkingDays)
	}
}

func TestValidate_PropagatesLedgerFailure(t *testing.T) {
	boom := errors.New("db down")

	err := Validate(context.Background(), tueToThu, failingChecker{err: boom}, 1, wednesday, 18)

	assert.ErrorIs(t, err, boom)
	assert.False(t, IsRejection(err))
}

func TestRejectionMessage(t *testing.T) {
	assert.Equal(t, "Reservations are only allowed on working days.", RejectionMessage(ErrOutsideWorkingDays))
	assert.Equal(t, "This hour is already reserved for the selected date.", RejectionMessage(ErrSlotAlreadyReserved))
	assert.Equal(t, "", RejectionMessage(ErrFieldNotFound))
	assert.True(t, IsRejection(ErrOutsideWorkingHours))
	assert.False(t, IsRejection(ErrConflict))
}
