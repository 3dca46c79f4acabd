package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/field-scheduler/internal/domain/reservation"
	"github.com/BruksfildServices01/field-scheduler/internal/models"
)

type FieldGormRepository struct {
	db *gorm.DB
}

func NewFieldGormRepository(db *gorm.DB) *FieldGormRepository {
	return &FieldGormRepository{db: db}
}

func (r *FieldGormRepository) GetField(
	ctx context.Context,
	fieldID uint,
) (*models.Field, error) {

	var f models.Field
	if err := r.db.WithContext(ctx).First(&f, fieldID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrFieldNotFound
		}
		return nil, err
	}
	return &f, nil
}

// GetOwnedField returns ErrFieldNotFound for fields of other owners too, so
// callers never learn that the id exists.
func (r *FieldGormRepository) GetOwnedField(
	ctx context.Context,
	fieldID uint,
	ownerID uint,
) (*models.Field, error) {

	var f models.Field
	if err := r.db.WithContext(ctx).
		Where("id = ? AND field_owner_id = ?", fieldID, ownerID).
		First(&f).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrFieldNotFound
		}
		return nil, err
	}
	return &f, nil
}

func (r *FieldGormRepository) List(
	ctx context.Context,
	sport string,
) ([]models.Field, error) {

	q := r.db.WithContext(ctx)

	sport = strings.ToLower(strings.TrimSpace(sport))
	if sport != "" {
		q = q.Where("LOWER(sport) = ?", sport)
	}

	var fields []models.Field
	if err := q.Order("id ASC").Find(&fields).Error; err != nil {
		return nil, err
	}
	return fields, nil
}

func (r *FieldGormRepository) ListByOwner(
	ctx context.Context,
	ownerID uint,
) ([]models.Field, error) {

	var fields []models.Field
	if err := r.db.WithContext(ctx).
		Where("field_owner_id = ?", ownerID).
		Order("id ASC").
		Find(&fields).Error; err != nil {
		return nil, err
	}
	return fields, nil
}

func (r *FieldGormRepository) Create(
	ctx context.Context,
	f *models.Field,
) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *FieldGormRepository) Update(
	ctx context.Context,
	f *models.Field,
) error {
	return r.db.WithContext(ctx).Save(f).Error
}

// DeleteCascade removes an owned field and every reservation on it in one
// transaction. The cascade is explicit; the ledger never deletes on its own.
func (r *FieldGormRepository) DeleteCascade(
	ctx context.Context,
	fieldID uint,
	ownerID uint,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var f models.Field
		if err := tx.
			Where("id = ? AND field_owner_id = ?", fieldID, ownerID).
			First(&f).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrFieldNotFound
			}
			return err
		}

		if err := tx.
			Where("field_id = ?", f.ID).
			Delete(&models.Reservation{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Field{}, f.ID).Error
	})
}

// Compile-time check
var _ domain.FieldRepository = (*FieldGormRepository)(nil)
