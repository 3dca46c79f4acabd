package reservation

import (
	"context"

	domain "github.com/BruksfildServices01/field-scheduler/internal/domain/reservation"
	"github.com/BruksfildServices01/field-scheduler/internal/dto"
)

// GetConfirmation shows a booking's confirmation to the user who made it.
type GetConfirmation struct {
	ledger domain.Ledger
}

func NewGetConfirmation(ledger domain.Ledger) *GetConfirmation {
	return &GetConfirmation{ledger: ledger}
}

func (uc *GetConfirmation) Execute(
	ctx context.Context,
	reservationID uint,
	requestingUserID uint,
) (*dto.ReservationListDTO, error) {

	res, err := uc.ledger.Get(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	if res.UserID != requestingUserID {
		return nil, domain.ErrNotReservationOwner
	}

	out := ToListDTO(*res)
	return &out, nil
}
