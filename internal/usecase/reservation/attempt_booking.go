package reservation

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/field-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/field-scheduler/internal/domain/reservation"
	"github.com/BruksfildServices01/field-scheduler/internal/events"
	"github.com/BruksfildServices01/field-scheduler/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type AttemptBookingInput struct {
	FieldID uint
	UserID  uint
	Date    time.Time
	Hour    int
}

// ======================================================
// USE CASE
// ======================================================

// AttemptBooking runs Pending -> Confirmed | Rejected for a single slot.
// On success exactly one ledger row exists; every rejection writes none.
type AttemptBooking struct {
	fields domain.FieldRepository
	ledger domain.Ledger
	audit  *audit.Dispatcher
	events events.Publisher
}

func NewAttemptBooking(
	fields domain.FieldRepository,
	ledger domain.Ledger,
	audit *audit.Dispatcher,
	publisher events.Publisher,
) *AttemptBooking {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &AttemptBooking{
		fields: fields,
		ledger: ledger,
		audit:  audit,
		events: publisher,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *AttemptBooking) Execute(
	ctx context.Context,
	in AttemptBookingInput,
) (*models.Reservation, error) {

	state := domain.StatePending
	date := domain.NormalizeDate(in.Date)

	// --------------------------------------------------
	// 1. Field and its working window
	// --------------------------------------------------
	field, err := uc.fields.GetField(ctx, in.FieldID)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2. Day -> hour -> occupancy
	// --------------------------------------------------
	if err := domain.Validate(
		ctx,
		domain.WindowOf(field),
		uc.ledger,
		field.ID,
		date,
		in.Hour,
	); err != nil {
		if domain.IsRejection(err) {
			uc.reject(state, in, date, err)
		}
		return nil, err
	}

	// --------------------------------------------------
	// 3. Insert; the unique index has the final word
	// --------------------------------------------------
	res := &models.Reservation{
		FieldID:          field.ID,
		UserID:           in.UserID,
		ReservationDate:  date,
		ReservationHour:  in.Hour,
		Price:            field.PricePerHour,
		ConfirmationCode: uuid.NewString(),
	}

	if err := uc.ledger.Insert(ctx, res); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			uc.reject(state, in, date, domain.ErrSlotAlreadyReserved)
			return nil, domain.ErrSlotAlreadyReserved
		}
		return nil, err
	}

	res.Field = *field

	// --------------------------------------------------
	// 4. Confirm
	// --------------------------------------------------
	state, _ = domain.Advance(state, domain.StateConfirmed)

	uc.audit.Dispatch(audit.Event{
		FieldID:  field.ID,
		UserID:   &in.UserID,
		Action:   "reservation_confirmed",
		Entity:   "reservation",
		EntityID: &res.ID,
		Metadata: map[string]any{"state": state},
	})

	if err := uc.events.Publish(ctx, events.ReservationConfirmed, events.ReservationEvent{
		ReservationID:    res.ID,
		FieldID:          res.FieldID,
		UserID:           res.UserID,
		Date:             date.Format(time.DateOnly),
		Hour:             res.ReservationHour,
		ConfirmationCode: res.ConfirmationCode,
	}); err != nil {
		log.Printf("publish %s: %v", events.ReservationConfirmed, err)
	}

	return res, nil
}

func (uc *AttemptBooking) reject(
	state domain.State,
	in AttemptBookingInput,
	date time.Time,
	reason error,
) {
	state, _ = domain.Advance(state, domain.StateRejected)

	uc.audit.Dispatch(audit.Event{
		FieldID: in.FieldID,
		UserID:  &in.UserID,
		Action:  "reservation_rejected",
		Entity:  "reservation",
		Metadata: map[string]any{
			"state":            state,
			"reason":           reason.Error(),
			"reservation_date": date.Format(time.DateOnly),
			"reservation_hour": in.Hour,
		},
	})
}
