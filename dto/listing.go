package dto

import (
	"time"

	"travel-app/models"
)

type CreateListingRequest struct {
	Title         string   `json:"title" binding:"required,max=255"`
	Description   string   `json:"description" binding:"required"`
	PricePerNight *float64 `json:"price_per_night" binding:"required,gte=0"`
	Location      string   `json:"location" binding:"required,max=255"`
	Amenities     []string `json:"amenities" binding:"omitempty,dive,max=100"`
}

// UpdateListingRequest dùng cho PUT (đủ trường) và PATCH (một phần)
type UpdateListingRequest struct {
	Title         *string   `json:"title" binding:"omitempty,min=1,max=255"`
	Description   *string   `json:"description"`
	PricePerNight *float64  `json:"price_per_night" binding:"omitempty,gte=0"`
	Location      *string   `json:"location" binding:"omitempty,min=1,max=255"`
	Amenities     *[]string `json:"amenities"`
}

// Complete kiểm tra request PUT có đủ các trường bắt buộc
func (r *UpdateListingRequest) Complete() []string {
	var missing []string
	if r.Title == nil {
		missing = append(missing, "title")
	}
	if r.Description == nil {
		missing = append(missing, "description")
	}
	if r.PricePerNight == nil {
		missing = append(missing, "price_per_night")
	}
	if r.Location == nil {
		missing = append(missing, "location")
	}
	return missing
}

// Apply ghi các trường có giá trị lên listing
func (r *UpdateListingRequest) Apply(l *models.Listing) {
	if r.Title != nil {
		l.Title = *r.Title
	}
	if r.Description != nil {
		l.Description = *r.Description
	}
	if r.PricePerNight != nil {
		l.PricePerNight = *r.PricePerNight
	}
	if r.Location != nil {
		l.Location = *r.Location
	}
	if r.Amenities != nil {
		l.Amenities = models.Amenities(*r.Amenities)
	}
}

type ListingSearchQuery struct {
	Q     string `form:"q" binding:"required"`
	Limit int    `form:"limit" binding:"omitempty,gte=1,lte=100"`
}

type ListingResponse struct {
	ID            uint       `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	PricePerNight float64    `json:"price_per_night"`
	Location      string     `json:"location"`
	Amenities     []string   `json:"amenities"`
	ImageURL      string     `json:"image_url,omitempty"`
	Owner         *OwnerInfo `json:"owner,omitempty"`
	OwnerID       uint       `json:"owner_id"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

type ListingSearchResult struct {
	ListingResponse
	Score int `json:"score"`
}

func ToListingResponse(l models.Listing) ListingResponse {
	resp := ListingResponse{
		ID:            l.ID,
		Title:         l.Title,
		Description:   l.Description,
		PricePerNight: l.PricePerNight,
		Location:      l.Location,
		Amenities:     []string(l.Amenities),
		ImageURL:      l.ImageURL,
		OwnerID:       l.OwnerID,
		CreatedAt:     l.CreatedAt,
		UpdatedAt:     l.UpdatedAt,
	}
	if resp.Amenities == nil {
		resp.Amenities = []string{}
	}
	if l.Owner != nil {
		resp.Owner = &OwnerInfo{ID: l.Owner.ID, Name: l.Owner.Name}
	}
	return resp
}

func ToListingResponses(listings []models.Listing) []ListingResponse {
	out := make([]ListingResponse, 0, len(listings))
	for _, l := range listings {
		out = append(out, ToListingResponse(l))
	}
	return out
}
