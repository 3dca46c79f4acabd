package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/field-scheduler/internal/models"
)

var ErrUserNotFound = errors.New("user not found")

type UserGormRepository struct {
	db *gorm.DB
}

func NewUserGormRepository(db *gorm.DB) *UserGormRepository {
	return &UserGormRepository{db: db}
}

// DeleteCascade removes a user, the reservations they made, the fields they
// own and the reservations other users made on those fields.
// Returns the ids of the deleted fields so caches can be invalidated.
func (r *UserGormRepository) DeleteCascade(
	ctx context.Context,
	userID uint,
) ([]uint, error) {

	var fieldIDs []uint

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		if err := tx.
			Model(&models.Field{}).
			Where("field_owner_id = ?", userID).
			Pluck("id", &fieldIDs).Error; err != nil {
			return err
		}

		q := tx.Where("user_id = ?", userID)
		if len(fieldIDs) > 0 {
			q = tx.Where("user_id = ? OR field_id IN ?", userID, fieldIDs)
		}
		if err := q.Delete(&models.Reservation{}).Error; err != nil {
			return err
		}

		if len(fieldIDs) > 0 {
			if err := tx.Delete(&models.Field{}, fieldIDs).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&models.User{}, userID).Error
	})
	if err != nil {
		return nil, err
	}

	return fieldIDs, nil
}
