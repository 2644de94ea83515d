package dto

import (
	"time"

	"travel-app/models"
)

type CreateReviewRequest struct {
	ListingID uint    `json:"listing_id" binding:"required"`
	Rating    int     `json:"rating" binding:"required,min=1,max=5"`
	Comment   *string `json:"comment"`
}

type UpdateReviewRequest struct {
	Rating  *int    `json:"rating" binding:"omitempty,min=1,max=5"`
	Comment *string `json:"comment"`
}

type ReviewListQuery struct {
	PageQuery
	ListingID *uint `form:"listing_id"`
}

type ReviewResponse struct {
	ID        uint       `json:"id"`
	ListingID uint       `json:"listing_id"`
	UserID    uint       `json:"user_id"`
	User      *OwnerInfo `json:"user,omitempty"`
	Rating    int        `json:"rating"`
	Comment   *string    `json:"comment"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func ToReviewResponse(r models.Review) ReviewResponse {
	resp := ReviewResponse{
		ID:        r.ID,
		ListingID: r.ListingID,
		UserID:    r.UserID,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if r.User != nil {
		resp.User = &OwnerInfo{ID: r.User.ID, Name: r.User.Name}
	}
	return resp
}

func ToReviewResponses(reviews []models.Review) []ReviewResponse {
	out := make([]ReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, ToReviewResponse(r))
	}
	return out
}
