package dto

import (
	"time"

	"travel-app/models"
)

type CreateBookingRequest struct {
	ListingID uint   `json:"listing_id" binding:"required"`
	StartDate string `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" binding:"required,datetime=2006-01-02"`
}

// UpdateBookingRequest dùng cho PUT (đủ trường) và PATCH (một phần)
type UpdateBookingRequest struct {
	StartDate *string `json:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate   *string `json:"end_date" binding:"omitempty,datetime=2006-01-02"`
}

func (r *UpdateBookingRequest) Complete() []string {
	var missing []string
	if r.StartDate == nil {
		missing = append(missing, "start_date")
	}
	if r.EndDate == nil {
		missing = append(missing, "end_date")
	}
	return missing
}

type BookingResponse struct {
	ID        uint      `json:"id"`
	ListingID uint      `json:"listing_id"`
	UserID    uint      `json:"user_id"`
	StartDate string    `json:"start_date"`
	EndDate   string    `json:"end_date"`
	Nights    int       `json:"nights"`
	CreatedAt time.Time `json:"created_at"`
}

func ToBookingResponse(b models.Booking) BookingResponse {
	return BookingResponse{
		ID:        b.ID,
		ListingID: b.ListingID,
		UserID:    b.UserID,
		StartDate: time.Time(b.StartDate).Format(models.DateLayout),
		EndDate:   time.Time(b.EndDate).Format(models.DateLayout),
		Nights:    b.Nights(),
		CreatedAt: b.CreatedAt,
	}
}

func ToBookingResponses(bookings []models.Booking) []BookingResponse {
	out := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, ToBookingResponse(b))
	}
	return out
}
