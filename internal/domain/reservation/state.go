package reservation

import "github.com/BruksfildServices01/field-scheduler/internal/httperr"

// ===============================
// Booking State
// ===============================

type State string

const (
	StatePending   State = "pending"
	StateConfirmed State = "confirmed"
	StateRejected  State = "rejected"
)

// ===============================
// Transitions
// ===============================

// Advance moves a booking attempt out of Pending. Confirmed and Rejected are
// terminal; there is no retry state.
func Advance(current, next State) (State, error) {
	if current != StatePending {
		return current, httperr.ErrBusiness("invalid_state")
	}
	if next != StateConfirmed && next != StateRejected {
		return current, httperr.ErrBusiness("invalid_state")
	}
	return next, nil
}

func (s State) Terminal() bool {
	return s == StateConfirmed || s == StateRejected
}
