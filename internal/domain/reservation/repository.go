package reservation

import (
	"context"
	"time"

	"github.com/BruksfildServices01/field-scheduler/internal/models"
)

// SlotChecker answers whether a slot is already taken.
type SlotChecker interface {
	Exists(
		ctx context.Context,
		fieldID uint,
		date time.Time,
		hour int,
	) (bool, error)
}

// Ledger is the authoritative set of booked (field, date, hour) slots.
type Ledger interface {
	SlotChecker

	// Insert returns ErrConflict when the slot was taken concurrently.
	Insert(
		ctx context.Context,
		r *models.Reservation,
	) error

	// Remove returns ErrReservationNotFound or ErrNotReservationOwner; on the
	// latter the row is returned too so the denial can be attributed.
	Remove(
		ctx context.Context,
		reservationID uint,
		requestingUserID uint,
	) (*models.Reservation, error)

	Get(
		ctx context.Context,
		reservationID uint,
	) (*models.Reservation, error)

	ListByField(
		ctx context.Context,
		fieldID uint,
	) ([]models.Reservation, error)

	ListByUser(
		ctx context.Context,
		userID uint,
	) ([]models.Reservation, error)
}

// FieldRepository loads the field a booking targets.
type FieldRepository interface {
	// GetField returns ErrFieldNotFound when the field does not exist.
	GetField(
		ctx context.Context,
		fieldID uint,
	) (*models.Field, error)
}
