package controllers

import (
	"travel-app/dto"
	"travel-app/response"
	"travel-app/services"
	"travel-app/validator"

	"github.com/gin-gonic/gin"
)

type ListingController struct {
	listings *services.ListingService
	reviews  *services.ReviewService
}

func NewListingController(listings *services.ListingService, reviews *services.ReviewService) *ListingController {
	return &ListingController{listings: listings, reviews: reviews}
}

func (ctl *ListingController) GetListings(c *gin.Context) {
	var q dto.PageQuery
	if !bindPage(c, &q) {
		return
	}
	listings, total, err := ctl.listings.List(c.Request.Context(), q.Page, q.Limit)
	if err != nil {
		fail(c, err)
		return
	}
	response.SuccessWithPagination(c, dto.ToListingResponses(listings), q.Page, q.Limit, int(total))
}

func (ctl *ListingController) CreateListing(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.CreateListingRequest
	if !bindJSON(c, &req) {
		return
	}
	listing, err := ctl.listings.Create(c.Request.Context(), userID, req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Created(c, dto.ToListingResponse(*listing))
}

func (ctl *ListingController) GetListingDetail(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	listing, err := ctl.listings.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, dto.ToListingResponse(*listing))
}

// UpdateListing dùng chung cho PUT và PATCH
func (ctl *ListingController) UpdateListing(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateListingRequest
	if !bindJSON(c, &req) {
		return
	}
	listing, err := ctl.listings.Update(c.Request.Context(), userID, id, req, c.Request.Method == "PATCH")
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, dto.ToListingResponse(*listing))
}

func (ctl *ListingController) DeleteListing(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := ctl.listings.Delete(c.Request.Context(), userID, id); err != nil {
		fail(c, err)
		return
	}
	response.NoContent(c)
}

// SearchListings tìm kiếm gần đúng theo địa điểm, tên, tiện ích
func (ctl *ListingController) SearchListings(c *gin.Context) {
	var q dto.ListingSearchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.FromError(c, validator.Translate(err))
		return
	}
	if q.Limit == 0 {
		q.Limit = dto.DefaultLimit
	}
	results, err := ctl.listings.Search(c.Request.Context(), q.Q, q.Limit)
	if err != nil {
		fail(c, err)
		return
	}
	out := make([]dto.ListingSearchResult, 0, len(results))
	for _, r := range results {
		out = append(out, dto.ListingSearchResult{ListingResponse: dto.ToListingResponse(r.Listing), Score: r.Score})
	}
	response.Success(c, out)
}

func (ctl *ListingController) UploadListingImage(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	file, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "Missing file")
		return
	}
	src, err := file.Open()
	if err != nil {
		response.BadRequest(c, "Cannot open file")
		return
	}
	defer src.Close()

	listing, err := ctl.listings.UploadImage(c.Request.Context(), userID, id, src)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, dto.ToListingResponse(*listing))
}

func (ctl *ListingController) GetListingReviews(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var q dto.PageQuery
	if !bindPage(c, &q) {
		return
	}
	reviews, total, err := ctl.reviews.List(c.Request.Context(), &id, q.Page, q.Limit)
	if err != nil {
		fail(c, err)
		return
	}
	response.SuccessWithPagination(c, dto.ToReviewResponses(reviews), q.Page, q.Limit, int(total))
}
