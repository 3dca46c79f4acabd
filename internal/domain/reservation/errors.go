package reservation

import (
	"errors"

	"github.com/BruksfildServices01/field-scheduler/internal/httperr"
)

const (
	InputDate = "reservation_date"
	InputHour = "reservation_hour"
)

// Rejections reported back to the booking form.
var (
	ErrOutsideWorkingDays  = httperr.ErrBusinessField("outside_working_days", InputDate)
	ErrOutsideWorkingHours = httperr.ErrBusinessField("outside_working_hours", InputHour)
	ErrSlotAlreadyReserved = httperr.ErrBusiness("slot_already_reserved")
)

var (
	ErrFieldNotFound       = httperr.ErrBusiness("field_not_found")
	ErrReservationNotFound = httperr.ErrBusiness("reservation_not_found")
	ErrNotReservationOwner = httperr.ErrBusiness("not_authorized")
)

// ErrConflict is raised by the ledger when the unique slot index rejects an
// insert. The workflow translates it; it never reaches callers.
var ErrConflict = errors.New("reservation ledger: slot conflict")

// IsRejection reports whether err is one of the user-correctable booking rejections.
func IsRejection(err error) bool {
	return errors.Is(err, ErrOutsideWorkingDays) ||
		errors.Is(err, ErrOutsideWorkingHours) ||
		errors.Is(err, ErrSlotAlreadyReserved)
}

// RejectionMessage is the text shown next to the offending input.
func RejectionMessage(err error) string {
	switch {
	case errors.Is(err, ErrOutsideWorkingDays):
		return "Reservations are only allowed on working days."
	case errors.Is(err, ErrOutsideWorkingHours):
		return "Reservations are only allowed during working hours."
	case errors.Is(err, ErrSlotAlreadyReserved):
		return "This hour is already reserved for the selected date."
	default:
		return ""
	}
}
