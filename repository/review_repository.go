package repository

import (
	"context"
	"errors"

	apperrors "travel-app/errors"
	"travel-app/models"

	"gorm.io/gorm"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// List trả về review, lọc theo listing nếu listingID khác nil
func (r *ReviewRepository) List(ctx context.Context, listingID *uint, page, limit int) ([]models.Review, int64, error) {
	var (
		reviews []models.Review
		total   int64
	)
	tx := r.db.WithContext(ctx).Model(&models.Review{})
	if listingID != nil {
		tx = tx.Where("listing_id = ?", *listingID)
	}
	tx = tx.Session(&gorm.Session{})
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, mapDBError(err, nil)
	}
	err := tx.Preload("User").
		Order("created_at DESC, id DESC").
		Offset(offset(page, limit)).
		Limit(limit).
		Find(&reviews).Error
	if err != nil {
		return nil, 0, mapDBError(err, nil)
	}
	return reviews, total, nil
}

func (r *ReviewRepository) GetByID(ctx context.Context, id uint) (*models.Review, error) {
	var review models.Review
	if err := r.db.WithContext(ctx).Preload("User").First(&review, id).Error; err != nil {
		return nil, mapDBError(err, apperrors.ErrReviewNotFound)
	}
	return &review, nil
}

// GetByListingAndUser trả về nil, nil nếu user chưa đánh giá listing
func (r *ReviewRepository) GetByListingAndUser(ctx context.Context, listingID, userID uint) (*models.Review, error) {
	var review models.Review
	err := r.db.WithContext(ctx).
		Where("listing_id = ? AND user_id = ?", listingID, userID).
		First(&review).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, mapDBError(err, nil)
	}
	return &review, nil
}

func (r *ReviewRepository) Create(ctx context.Context, review *models.Review) error {
	if err := r.db.WithContext(ctx).Omit("Listing", "User").Create(review).Error; err != nil {
		mapped := mapDBError(err, nil)
		if apperrors.Code(mapped) == apperrors.ErrCodeDBDuplicate {
			return apperrors.ErrReviewExists
		}
		return mapped
	}
	return nil
}

func (r *ReviewRepository) Update(ctx context.Context, review *models.Review) error {
	if err := r.db.WithContext(ctx).Omit("Listing", "User").Save(review).Error; err != nil {
		return mapDBError(err, apperrors.ErrReviewNotFound)
	}
	return nil
}

func (r *ReviewRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Review{}, id)
	if res.Error != nil {
		return mapDBError(res.Error, apperrors.ErrReviewNotFound)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrReviewNotFound
	}
	return nil
}
