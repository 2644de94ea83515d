package models

import (
	"fmt"
	"time"

	apperrors "travel-app/errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DateLayout là định dạng ngày dùng cho start_date / end_date
const DateLayout = "2006-01-02"

type Booking struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	ListingID uint           `json:"listing_id" gorm:"not null;index"`
	Listing   *Listing       `json:"listing,omitempty" gorm:"foreignKey:ListingID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	UserID    uint           `json:"user_id" gorm:"not null;index"`
	User      *User          `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	StartDate datatypes.Date `json:"start_date" gorm:"not null"`
	EndDate   datatypes.Date `json:"end_date" gorm:"not null;check:chk_bookings_end_after_start,end_date > start_date"`
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
}

// ValidateDates đảm bảo end_date lớn hơn start_date
func (b *Booking) ValidateDates() error {
	start := time.Time(b.StartDate)
	end := time.Time(b.EndDate)
	if !end.After(start) {
		return apperrors.NewAppError(apperrors.ErrCodeInvalidDateRange,
			fmt.Sprintf("end_date (%s) must be after start_date (%s)", end.Format(DateLayout), start.Format(DateLayout)), nil)
	}
	return nil
}

func (b *Booking) BeforeSave(tx *gorm.DB) error {
	return b.ValidateDates()
}

// Nights trả về số đêm của booking
func (b *Booking) Nights() int {
	return int(time.Time(b.EndDate).Sub(time.Time(b.StartDate)).Hours() / 24)
}
