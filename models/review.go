package models

import (
	"fmt"
	"time"

	apperrors "travel-app/errors"

	"gorm.io/gorm"
)

const (
	MinRating = 1
	MaxRating = 5
)

type Review struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ListingID uint      `json:"listing_id" gorm:"not null;uniqueIndex:idx_reviews_listing_user"`
	Listing   *Listing  `json:"listing,omitempty" gorm:"foreignKey:ListingID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_reviews_listing_user"`
	User      *User     `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Rating    int       `json:"rating" gorm:"not null;check:chk_reviews_rating_range,rating BETWEEN 1 AND 5"`
	Comment   *string   `json:"comment" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (r *Review) ValidateRating() error {
	if r.Rating < MinRating || r.Rating > MaxRating {
		return apperrors.NewAppError(apperrors.ErrCodeInvalidRating,
			fmt.Sprintf("rating must be between %d and %d", MinRating, MaxRating), nil)
	}
	return nil
}

func (r *Review) BeforeSave(tx *gorm.DB) error {
	return r.ValidateRating()
}
