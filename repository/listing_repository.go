package repository

import (
	"context"

	apperrors "travel-app/errors"
	"travel-app/models"

	"gorm.io/gorm"
)

type ListingRepository struct {
	db *gorm.DB
}

func NewListingRepository(db *gorm.DB) *ListingRepository {
	return &ListingRepository{db: db}
}

func (r *ListingRepository) List(ctx context.Context, page, limit int) ([]models.Listing, int64, error) {
	var (
		listings []models.Listing
		total    int64
	)
	tx := r.db.WithContext(ctx).Model(&models.Listing{})
	tx = tx.Session(&gorm.Session{})
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, mapDBError(err, nil)
	}
	err := tx.Preload("Owner").
		Order("id ASC").
		Offset(offset(page, limit)).
		Limit(limit).
		Find(&listings).Error
	if err != nil {
		return nil, 0, mapDBError(err, nil)
	}
	return listings, total, nil
}

// All trả về toàn bộ listing, dùng cho tìm kiếm
func (r *ListingRepository) All(ctx context.Context) ([]models.Listing, error) {
	var listings []models.Listing
	if err := r.db.WithContext(ctx).Preload("Owner").Order("id ASC").Find(&listings).Error; err != nil {
		return nil, mapDBError(err, nil)
	}
	return listings, nil
}

func (r *ListingRepository) GetByID(ctx context.Context, id uint) (*models.Listing, error) {
	var listing models.Listing
	if err := r.db.WithContext(ctx).Preload("Owner").First(&listing, id).Error; err != nil {
		return nil, mapDBError(err, apperrors.ErrListingNotFound)
	}
	return &listing, nil
}

func (r *ListingRepository) Create(ctx context.Context, listing *models.Listing) error {
	if err := r.db.WithContext(ctx).Omit("Owner").Create(listing).Error; err != nil {
		return mapDBError(err, nil)
	}
	return nil
}

func (r *ListingRepository) Update(ctx context.Context, listing *models.Listing) error {
	if err := r.db.WithContext(ctx).Omit("Owner").Save(listing).Error; err != nil {
		return mapDBError(err, apperrors.ErrListingNotFound)
	}
	return nil
}

// Delete xóa listing cùng các booking và review phụ thuộc
func (r *ListingRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("listing_id = ?", id).Delete(&models.Review{}).Error; err != nil {
			return err
		}
		if err := tx.Where("listing_id = ?", id).Delete(&models.Booking{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Listing{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrListingNotFound
		}
		return nil
	})
	return mapDBError(err, apperrors.ErrListingNotFound)
}
