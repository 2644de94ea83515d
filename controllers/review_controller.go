package controllers

import (
	"travel-app/dto"
	"travel-app/response"
	"travel-app/services"
	"travel-app/validator"

	"github.com/gin-gonic/gin"
)

type ReviewController struct {
	reviews *services.ReviewService
}

func NewReviewController(reviews *services.ReviewService) *ReviewController {
	return &ReviewController{reviews: reviews}
}

// GetReviews lọc theo listing_id nếu có
func (ctl *ReviewController) GetReviews(c *gin.Context) {
	var q dto.ReviewListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.FromError(c, validator.Translate(err))
		return
	}
	q.Normalize()
	reviews, total, err := ctl.reviews.List(c.Request.Context(), q.ListingID, q.Page, q.Limit)
	if err != nil {
		fail(c, err)
		return
	}
	response.SuccessWithPagination(c, dto.ToReviewResponses(reviews), q.Page, q.Limit, int(total))
}

func (ctl *ReviewController) CreateReview(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.CreateReviewRequest
	if !bindJSON(c, &req) {
		return
	}
	review, err := ctl.reviews.Create(c.Request.Context(), userID, req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Created(c, dto.ToReviewResponse(*review))
}

func (ctl *ReviewController) GetReviewDetail(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	review, err := ctl.reviews.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, dto.ToReviewResponse(*review))
}

func (ctl *ReviewController) UpdateReview(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateReviewRequest
	if !bindJSON(c, &req) {
		return
	}
	review, err := ctl.reviews.Update(c.Request.Context(), userID, id, req, c.Request.Method == "PATCH")
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, dto.ToReviewResponse(*review))
}

func (ctl *ReviewController) DeleteReview(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := ctl.reviews.Delete(c.Request.Context(), userID, id); err != nil {
		fail(c, err)
		return
	}
	response.NoContent(c)
}
