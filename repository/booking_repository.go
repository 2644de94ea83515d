package repository

import (
	"context"

	apperrors "travel-app/errors"
	"travel-app/models"

	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// List trả về booking, lọc theo user nếu userID khác 0
func (r *BookingRepository) List(ctx context.Context, userID uint, page, limit int) ([]models.Booking, int64, error) {
	var (
		bookings []models.Booking
		total    int64
	)
	tx := r.db.WithContext(ctx).Model(&models.Booking{})
	if userID != 0 {
		tx = tx.Where("user_id = ?", userID)
	}
	tx = tx.Session(&gorm.Session{})
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, mapDBError(err, nil)
	}
	err := tx.Preload("Listing").
		Order("id ASC").
		Offset(offset(page, limit)).
		Limit(limit).
		Find(&bookings).Error
	if err != nil {
		return nil, 0, mapDBError(err, nil)
	}
	return bookings, total, nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := r.db.WithContext(ctx).Preload("Listing").First(&booking, id).Error; err != nil {
		return nil, mapDBError(err, apperrors.ErrBookingNotFound)
	}
	return &booking, nil
}

func (r *BookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	if err := r.db.WithContext(ctx).Omit("Listing", "User").Create(booking).Error; err != nil {
		return mapDBError(err, nil)
	}
	return nil
}

func (r *BookingRepository) Update(ctx context.Context, booking *models.Booking) error {
	if err := r.db.WithContext(ctx).Omit("Listing", "User").Save(booking).Error; err != nil {
		return mapDBError(err, apperrors.ErrBookingNotFound)
	}
	return nil
}

func (r *BookingRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Booking{}, id)
	if res.Error != nil {
		return mapDBError(res.Error, apperrors.ErrBookingNotFound)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrBookingNotFound
	}
	return nil
}
