package reservation

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/BruksfildServices01/field-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/field-scheduler/internal/domain/reservation"
	"github.com/BruksfildServices01/field-scheduler/internal/events"
)

// CancelBooking deletes a reservation on behalf of the user who made it.
// Ownership is checked here even though the UI only lists the user's own
// reservations: the id in the request is caller-controlled.
type CancelBooking struct {
	ledger domain.Ledger
	audit  *audit.Dispatcher
	events events.Publisher
}

func NewCancelBooking(
	ledger domain.Ledger,
	audit *audit.Dispatcher,
	publisher events.Publisher,
) *CancelBooking {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &CancelBooking{
		ledger: ledger,
		audit:  audit,
		events: publisher,
	}
}

func (uc *CancelBooking) Execute(
	ctx context.Context,
	reservationID uint,
	requestingUserID uint,
) error {

	res, err := uc.ledger.Remove(ctx, reservationID, requestingUserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotReservationOwner) && res != nil {
			uc.audit.Dispatch(audit.Event{
				FieldID:  res.FieldID,
				UserID:   &requestingUserID,
				Action:   "reservation_cancel_denied",
				Entity:   "reservation",
				EntityID: &reservationID,
			})
		}
		return err
	}

	uc.audit.Dispatch(audit.Event{
		FieldID:  res.FieldID,
		UserID:   &requestingUserID,
		Action:   "reservation_cancelled",
		Entity:   "reservation",
		EntityID: &res.ID,
	})

	if err := uc.events.Publish(ctx, events.ReservationCancelled, events.ReservationEvent{
		ReservationID: res.ID,
		FieldID:       res.FieldID,
		UserID:        res.UserID,
		Date:          res.ReservationDate.Format(time.DateOnly),
		Hour:          res.ReservationHour,
	}); err != nil {
		log.Printf("publish %s: %v", events.ReservationCancelled, err)
	}

	return nil
}
