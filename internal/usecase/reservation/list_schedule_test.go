package reservation_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/field-scheduler/internal/domain/reservation"
	"github.com/BruksfildServices01/field-scheduler/internal/usecase/reservation"
)

func TestListSchedule_OrderedByDateThenHour(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	uc := f.attempt(nil)

	thursday := wednesday.AddDate(0, 0, 1)
	tuesday := wednesday.AddDate(0, 0, -1)

	for _, in := range []reservation.AttemptBookingInput{
		input(f.field.ID, f.alice.ID, thursday, 16),
		input(f.field.ID, f.bob.ID, wednesday, 20),
		input(f.field.ID, f.alice.ID, wednesday, 17),
		input(f.field.ID, f.alice.ID, tuesday, 19),
	} {
		_, err := uc.Execute(ctx, in)
		require.NoError(t, err)
	}

	list := reservation.NewListSchedule(f.fields, f.ledger)

	byField, err := list.Execute(ctx, reservation.ScheduleQuery{FieldID: f.field.ID})
	require.NoError(t, err)
	require.Len(t, byField, 4)

	var got []string
	for _, r := range byField {
		got = append(got, r.ReservationDate+" "+r.HourLabel)
		assert.Empty(t, r.ConfirmationCode)
	}
	assert.Equal(t, []string{
		"2025-03-11 19:00",
		"2025-03-12 17:00",
		"2025-03-12 20:00",
		"2025-03-13 16:00",
	}, got)
	assert.Equal(t, "Tuesday", byField[0].DayName)
	assert.Equal(t, "bob", byField[2].Username)

	byUser, err := list.Execute(ctx, reservation.ScheduleQuery{UserID: f.alice.ID})
	require.NoError(t, err)
	require.Len(t, byUser, 3)
	assert.Equal(t, 19, byUser[0].ReservationHour)
	assert.Equal(t, 17, byUser[1].ReservationHour)
	assert.Equal(t, 16, byUser[2].ReservationHour)
	assert.NotEmpty(t, byUser[0].ConfirmationCode)
	assert.Equal(t, "Arena", byUser[0].FieldName)
}

func TestListSchedule_Empty(t *testing.T) {
	f := newFixture(t)
	list := reservation.NewListSchedule(f.fields, f.ledger)

	out, err := list.Execute(context.Background(), reservation.ScheduleQuery{UserID: f.bob.ID})
	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)

	_, err = list.Execute(context.Background(), reservation.ScheduleQuery{FieldID: f.field.ID + 50})
	assert.ErrorIs(t, err, domain.ErrFieldNotFound)
}

func TestGetConfirmation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.attempt(nil).Execute(ctx, input(f.field.ID, f.alice.ID, wednesday, 18))
	require.NoError(t, err)

	uc := reservation.NewGetConfirmation(f.ledger)

	got, err := uc.Execute(ctx, res.ID, f.alice.ID)
	require.NoError(t, err)
	assert.Equal(t, res.ConfirmationCode, got.ConfirmationCode)
	assert.Equal(t, "Wednesday", got.DayName)
	assert.Equal(t, "18:00", got.HourLabel)

	_, err = uc.Execute(ctx, res.ID, f.bob.ID)
	assert.ErrorIs(t, err, domain.ErrNotReservationOwner)

	_, err = uc.Execute(ctx, res.ID+1, f.alice.ID)
	assert.ErrorIs(t, err, domain.ErrReservationNotFound)
}
