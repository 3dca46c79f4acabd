package handlers_test

import (
	"fmt"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/field-scheduler/internal/db/dbtest"
	"github.com/BruksfildServices01/field-scheduler/internal/dto"
	"github.com/BruksfildServices01/field-scheduler/internal/events"
	"github.com/BruksfildServices01/field-scheduler/internal/models"
)

func bookPath(fieldID uint) string {
	return fmt.Sprintf("/api/fields/%d/reservations", fieldID)
}

func form(date string, hour int) map[string]any {
	return map[string]any{"reservation_date": date, "reservation_hour": hour}
}

// =============================================================================
// CREATE
// =============================================================================

func TestReservationCreate_Confirmed(t *testing.T) {
	s := newServer(t)
	owner := dbtest.CreateUser(t, s.db, "owner", true)
	alice := dbtest.CreateUser(t, s.db, "alice", false)
	field := dbtest.CreateField(t, s.db, owner.ID)

	w := s.do(http.MethodPost, bookPath(field.ID), s.token(alice), form(wednesday, 18))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	out := decode[dto.ReservationListDTO](t, w)
	assert.Equal(t, field.ID, out.FieldID)
	assert.Equal(t, "Arena", out.FieldName)
	assert.Equal(t, wednesday, out.ReservationDate)
	assert.Equal(t, "Wednesday", out.DayName)
	assert.Equal(t, "18:00", out.HourLabel)
	assert.NotEmpty(t, out.ConfirmationCode)

	require.Len(t, s.events.Events(), 1)
	assert.Equal(t, events.ReservationConfirmed, s.events.Events()[0].Key)
}

func TestReservationCreate_Rejections(t *testing.T) {
	s := newServer(t)
	owner := dbtest.CreateUser(t, s.db, "owner", true)
	alice := dbtest.CreateUser(t, s.db, "alice", false)
	bob := dbtest.CreateUser(t, s.db, "bob", false)
	field := dbtest.CreateField(t, s.db, owner.ID)

	require.Equal(t, http.StatusCreated,
		s.do(http.MethodPost, bookPath(field.ID), s.token(alice), form(wednesday, 18)).Code)

	cases := []struct {
		name   string
		body   map[string]any
		status int
		code   string
		field  string
	}{
		{"day outside window", form(friday, 18), http.StatusUnprocessableEntity, "outside_working_days", "reservation_date"},
		{"hour outside window", form(wednesday, 21), http.StatusUnprocessableEntity, "outside_working_hours", "reservation_hour"},
		{"slot taken", form(wednesday, 18), http.StatusUnprocessableEntity, "slot_already_reserved", ""},
		{"hour not offered", form(wednesday, 15), http.StatusBadRequest, "invalid_choice", "reservation_hour"},
		{"malformed date", form("12/03/2025", 18), http.StatusBadRequest, "invalid_date", "reservation_date"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := s.do(http.MethodPost, bookPath(field.ID), s.token(bob), tc.body)
			require.Equal(t, tc.status, w.Code, w.Body.String())

			body := decode[errorBody](t, w)
			assert.Equal(t, tc.code, body.Code)
			assert.Equal(t, tc.field, body.Field)
			assert.Equal(t, tc.body["reservation_date"], body.Form["reservation_date"])
		})
	}

	var n int64
	require.NoError(t, s.db.Model(&models.Reservation{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}

func TestReservationCreate_UnknownField(t *testing.T) {
	s := newServer(t)
	alice := dbtest.CreateUser(t, s.db, "alice", false)

	w := s.do(http.MethodPost, bookPath(999), s.token(alice), form(wednesday, 18))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "field_not_found", decode[errorBody](t, w).Code)
}

func TestReservationCreate_RequiresAuth(t *testing.T) {
	s := newServer(t)
	w := s.do(http.MethodPost, bookPath(1), "", form(wednesday, 18))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestReservationCreate_ConcurrentSameSlot(t *testing.T) {
	s := newServer(t)
	owner := dbtest.CreateUser(t, s.db, "owner", true)
	field := dbtest.CreateField(t, s.db, owner.ID)

	const n = 6
	tokens := make([]string, n)
	for i := range tokens {
		tokens[i] = s.token(dbtest.CreateUser(t, s.db, fmt.Sprintf("player%d", i), false))
	}

	codes := make([]int, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			codes[i] = s.do(http.MethodPost, bookPath(field.ID), tokens[i], form(wednesday, 17)).Code
		}(i)
	}
	wg.Wait()

	created := 0
	for _, code := range codes {
		if code == http.StatusCreated {
			created++
		} else {
			assert.Equal(t, http.StatusUnprocessableEntity, code)
		}
	}
	assert.Equal(t, 1, created)
}

// =============================================================================
// CONFIRMATION / CANCEL
// =============================================================================

func TestReservationConfirmationAndCancel(t *testing.T) {
	s := newServer(t)
	owner := dbtest.CreateUser(t, s.db, "owner", true)
	alice := dbtest.CreateUser(t, s.db, "alice", false)
	bob := dbtest.CreateUser(t, s.db, "bob", false)
	field := dbtest.CreateField(t, s.db, owner.ID)

	w := s.do(http.MethodPost, bookPath(field.ID), s.token(alice), form(wednesday, 19))
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode[dto.ReservationListDTO](t, w)

	confirmation := fmt.Sprintf("/api/reservations/%d/confirmation", created.ID)
	cancel := fmt.Sprintf("/api/reservations/%d", created.ID)

	w = s.do(http.MethodGet, confirmation, s.token(alice), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, created.ConfirmationCode, decode[dto.ReservationListDTO](t, w).ConfirmationCode)

	// Someone else's reservation: generic denial, row untouched.
	w = s.do(http.MethodGet, confirmation, s.token(bob), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = s.do(http.MethodDelete, cancel, s.token(bob), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.NotContains(t, w.Body.String(), "alice")

	w = s.do(http.MethodDelete, cancel, s.token(alice), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodDelete, cancel, s.token(alice), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// The slot is free again.
	w = s.do(http.MethodPost, bookPath(field.ID), s.token(bob), form(wednesday, 19))
	assert.Equal(t, http.StatusCreated, w.Code)

	keys := []string{}
	for _, ev := range s.events.Events() {
		keys = append(keys, ev.Key)
	}
	assert.Equal(t, []string{
		events.ReservationConfirmed,
		events.ReservationCancelled,
		events.ReservationConfirmed,
	}, keys)
}

func TestReservationCancel_InvalidID(t *testing.T) {
	s := newServer(t)
	alice := dbtest.CreateUser(t, s.db, "alice", false)

	w := s.do(http.MethodDelete, "/api/reservations/abc", s.token(alice), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// =============================================================================
// SCHEDULES / SLOTS
// =============================================================================

func TestSchedules(t *testing.T) {
	s := newServer(t)
	owner := dbtest.CreateUser(t, s.db, "owner", true)
	alice := dbtest.CreateUser(t, s.db, "alice", false)
	bob := dbtest.CreateUser(t, s.db, "bob", false)
	field := dbtest.CreateField(t, s.db, owner.ID)

	for _, b := range []struct {
		token string
		date  string
		hour  int
	}{
		{s.token(alice), "2025-03-13", 16},
		{s.token(bob), wednesday, 20},
		{s.token(alice), wednesday, 17},
	} {
		require.Equal(t, http.StatusCreated,
			s.do(http.MethodPost, bookPath(field.ID), b.token, form(b.date, b.hour)).Code)
	}

	w := s.do(http.MethodGet, "/api/me/schedule", s.token(alice), nil)
	require.Equal(t, http.StatusOK, w.Code)
	mine := decode[listBody[dto.ReservationListDTO]](t, w)
	require.Len(t, mine.Data, 2)
	assert.Equal(t, wednesday, mine.Data[0].ReservationDate)
	assert.Equal(t, 17, mine.Data[0].ReservationHour)
	assert.Equal(t, "2025-03-13", mine.Data[1].ReservationDate)
	assert.NotEmpty(t, mine.Data[0].ConfirmationCode)

	w = s.do(http.MethodGet, fmt.Sprintf("/api/fields/%d/schedule", field.ID), s.token(bob), nil)
	require.Equal(t, http.StatusOK, w.Code)
	all := decode[listBody[dto.ReservationListDTO]](t, w)
	require.Len(t, all.Data, 3)
	assert.Equal(t, []int{17, 20, 16}, []int{
		all.Data[0].ReservationHour, all.Data[1].ReservationHour, all.Data[2].ReservationHour,
	})
	for _, r := range all.Data {
		assert.Empty(t, r.ConfirmationCode)
	}

	w = s.do(http.MethodGet, "/api/fields/999/schedule", s.token(bob), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	empty := s.do(http.MethodGet, "/api/me/schedule", s.token(owner), nil)
	assert.JSONEq(t, `{"data":[],"total":0}`, empty.Body.String())
}

func TestSlots(t *testing.T) {
	s := newServer(t)

	w := s.do(http.MethodGet, "/api/slots", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	out := decode[listBody[map[string]any]](t, w)
	require.Len(t, out.Data, 6)
	assert.Equal(t, "16:00", out.Data[0]["label"])
	assert.Equal(t, "21:00", out.Data[5]["label"])
}
