package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/field-scheduler/internal/domain/reservation"
	"github.com/BruksfildServices01/field-scheduler/internal/httperr"
	"github.com/BruksfildServices01/field-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/field-scheduler/internal/middleware"
	ucReservation "github.com/BruksfildServices01/field-scheduler/internal/usecase/reservation"
)

// ======================================================
// HANDLER
// ======================================================

type ReservationHandler struct {
	attempt      *ucReservation.AttemptBooking
	cancel       *ucReservation.CancelBooking
	schedule     *ucReservation.ListSchedule
	confirmation *ucReservation.GetConfirmation
}

func NewReservationHandler(
	attempt *ucReservation.AttemptBooking,
	cancel *ucReservation.CancelBooking,
	schedule *ucReservation.ListSchedule,
	confirmation *ucReservation.GetConfirmation,
) *ReservationHandler {
	return &ReservationHandler{
		attempt:      attempt,
		cancel:       cancel,
		schedule:     schedule,
		confirmation: confirmation,
	}
}

// ======================================================
// REQUESTS
// ======================================================

// ReservationForm is echoed back on rejection so the client can redisplay it.
type ReservationForm struct {
	ReservationDate string `json:"reservation_date"`
	ReservationHour int    `json:"reservation_hour"`
}

type SlotDTO struct {
	Hour  int    `json:"hour"`
	Label string `json:"label"`
}

var (
	errInvalidDate = httperr.BusinessError{Code: "invalid_date", Field: domain.InputDate}
	errInvalidHour = httperr.BusinessError{Code: "invalid_choice", Field: domain.InputHour}
)

// ======================================================
// CREATE
// ======================================================

func (h *ReservationHandler) Create(c *gin.Context) {
	fieldID, ok := idParam(c, "id")
	if !ok {
		return
	}

	var form ReservationForm
	if err := c.ShouldBindJSON(&form); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	date, err := domain.ParseDate(form.ReservationDate)
	if err != nil {
		httperr.WriteForm(c, http.StatusBadRequest, errInvalidDate, "Enter a valid date (YYYY-MM-DD).", form)
		return
	}

	// Only the fixed slot set is a valid choice; the window check comes later.
	if !domain.IsBookableHour(form.ReservationHour) {
		httperr.WriteForm(c, http.StatusBadRequest, errInvalidHour, "Select a valid hour.", form)
		return
	}

	res, err := h.attempt.Execute(c.Request.Context(), ucReservation.AttemptBookingInput{
		FieldID: fieldID,
		UserID:  middleware.UserID(c),
		Date:    date,
		Hour:    form.ReservationHour,
	})
	if err != nil {
		if domain.IsRejection(err) {
			be, _ := httperr.AsBusiness(err)
			httperr.WriteForm(c, http.StatusUnprocessableEntity, be, domain.RejectionMessage(err), form)
			return
		}
		writeReservationError(c, err)
		return
	}

	httpresp.Created(c, ucReservation.ToListDTO(*res))
}

// ======================================================
// CONFIRMATION / CANCEL
// ======================================================

func (h *ReservationHandler) Confirmation(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	out, err := h.confirmation.Execute(c.Request.Context(), id, middleware.UserID(c))
	if err != nil {
		writeReservationError(c, err)
		return
	}

	httpresp.OK(c, out)
}

func (h *ReservationHandler) Cancel(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.cancel.Execute(c.Request.Context(), id, middleware.UserID(c)); err != nil {
		writeReservationError(c, err)
		return
	}

	httpresp.Message(c, "Reservation cancelled.")
}

// ======================================================
// SCHEDULES
// ======================================================

func (h *ReservationHandler) MySchedule(c *gin.Context) {
	list, err := h.schedule.Execute(c.Request.Context(), ucReservation.ScheduleQuery{
		UserID: middleware.UserID(c),
	})
	if err != nil {
		writeReservationError(c, err)
		return
	}

	httpresp.List(c, list)
}

func (h *ReservationHandler) FieldSchedule(c *gin.Context) {
	fieldID, ok := idParam(c, "id")
	if !ok {
		return
	}

	list, err := h.schedule.Execute(c.Request.Context(), ucReservation.ScheduleQuery{
		FieldID: fieldID,
	})
	if err != nil {
		writeReservationError(c, err)
		return
	}

	httpresp.List(c, list)
}

func (h *ReservationHandler) Slots(c *gin.Context) {
	hours := domain.Hours()
	out := make([]SlotDTO, 0, len(hours))
	for _, hour := range hours {
		out = append(out, SlotDTO{Hour: hour, Label: domain.HourLabel(hour)})
	}
	httpresp.List(c, out)
}

// ======================================================
// ERRORS
// ======================================================

// writeReservationError keeps denial messages generic: a caller cannot tell
// whose reservation an id belongs to.
func writeReservationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrFieldNotFound):
		httperr.NotFound(c, "field_not_found", "Field not found.")
	case errors.Is(err, domain.ErrReservationNotFound):
		httperr.NotFound(c, "reservation_not_found", "Reservation not found.")
	case errors.Is(err, domain.ErrNotReservationOwner):
		httperr.Forbidden(c, "not_authorized", "You are not allowed to perform this action.")
	default:
		httperr.Internal(c, "internal_error", "Unexpected error.")
	}
}
