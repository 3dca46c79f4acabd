package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/field-scheduler/internal/domain/reservation"
	"github.com/BruksfildServices01/field-scheduler/internal/httperr"
	"github.com/BruksfildServices01/field-scheduler/internal/models"
)

type ReservationGormRepository struct {
	db *gorm.DB
}

func NewReservationGormRepository(db *gorm.DB) *ReservationGormRepository {
	return &ReservationGormRepository{db: db}
}

// --------------------------------------------------
// Slot occupancy
// --------------------------------------------------

// Exists is only a fast path; Insert relies on idx_reservation_slot.
func (r *ReservationGormRepository) Exists(
	ctx context.Context,
	fieldID uint,
	date time.Time,
	hour int,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Where(
			"field_id = ? AND reservation_date = ? AND reservation_hour = ?",
			fieldID,
			domain.NormalizeDate(date),
			hour,
		).
		Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *ReservationGormRepository) Insert(
	ctx context.Context,
	res *models.Reservation,
) error {

	res.ReservationDate = domain.NormalizeDate(res.ReservationDate)

	if err := r.db.WithContext(ctx).Create(res).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			return domain.ErrConflict
		}
		return err
	}

	return nil
}

// --------------------------------------------------
// Cancellation
// --------------------------------------------------

// Remove deletes the reservation if requestingUserID made it. A denied
// request returns the untouched row alongside ErrNotReservationOwner.
func (r *ReservationGormRepository) Remove(
	ctx context.Context,
	reservationID uint,
	requestingUserID uint,
) (*models.Reservation, error) {

	var res models.Reservation

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&res, reservationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrReservationNotFound
			}
			return err
		}

		if res.UserID != requestingUserID {
			return domain.ErrNotReservationOwner
		}

		return tx.Delete(&models.Reservation{}, res.ID).Error
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotReservationOwner) {
			return &res, err
		}
		return nil, err
	}

	return &res, nil
}

// --------------------------------------------------
// Reads
// --------------------------------------------------

func (r *ReservationGormRepository) Get(
	ctx context.Context,
	reservationID uint,
) (*models.Reservation, error) {

	var res models.Reservation
	if err := r.db.WithContext(ctx).
		Preload("Field").
		Preload("User").
		First(&res, reservationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrReservationNotFound
		}
		return nil, err
	}

	return &res, nil
}

func (r *ReservationGormRepository) ListByField(
	ctx context.Context,
	fieldID uint,
) ([]models.Reservation, error) {

	var out []models.Reservation
	if err := r.db.WithContext(ctx).
		Preload("Field").
		Preload("User").
		Where("field_id = ?", fieldID).
		Order("reservation_date ASC, reservation_hour ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}

	return out, nil
}

func (r *ReservationGormRepository) ListByUser(
	ctx context.Context,
	userID uint,
) ([]models.Reservation, error) {

	var out []models.Reservation
	if err := r.db.WithContext(ctx).
		Preload("Field").
		Preload("User").
		Where("user_id = ?", userID).
		Order("reservation_date ASC, reservation_hour ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}

	return out, nil
}

// Compile-time check
var _ domain.Ledger = (*ReservationGormRepository)(nil)
