package models

import (
	"testing"
	"time"

	apperrors "travel-app/errors"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func date(s string) datatypes.Date {
	t, _ := time.Parse(DateLayout, s)
	return datatypes.Date(t)
}

func TestBookingValidateDates(t *testing.T) {
	tests := []struct {
		name    string
		start   string
		end     string
		wantErr bool
	}{
		{"valid range", "2025-01-10", "2025-01-12", false},
		{"same day", "2025-01-10", "2025-01-10", true},
		{"end before start", "2025-01-12", "2025-01-10", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &Booking{StartDate: date(tt.start), EndDate: date(tt.end)}
			err := b.BeforeSave(nil)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, apperrors.ErrCodeInvalidDateRange, apperrors.Code(err))
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, 2, b.Nights())
		})
	}
}

func TestReviewValidateRating(t *testing.T) {
	for _, rating := range []int{1, 3, 5} {
		assert.NoError(t, (&Review{Rating: rating}).BeforeSave(nil))
	}
	for _, rating := range []int{0, 6, -1} {
		err := (&Review{Rating: rating}).BeforeSave(nil)
		assert.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeInvalidRating, apperrors.Code(err))
	}
}

func TestListingValidatePrice(t *testing.T) {
	assert.NoError(t, (&Listing{PricePerNight: 0}).ValidatePrice())
	assert.Error(t, (&Listing{PricePerNight: -1}).ValidatePrice())
}

func TestAmenitiesScanValue(t *testing.T) {
	a := Amenities{"wifi", "pool"}
	v, err := a.Value()
	assert.NoError(t, err)

	var back Amenities
	assert.NoError(t, back.Scan(v))
	assert.Equal(t, a, back)
}
