package controllers

import (
	"strconv"

	"travel-app/dto"
	apperrors "travel-app/errors"
	"travel-app/middleware"
	"travel-app/response"
	"travel-app/validator"

	"github.com/gin-gonic/gin"
)

// parseIDParam đọc id dạng số nguyên dương từ path
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		response.BadRequest(c, "Invalid "+name)
		return 0, false
	}
	return uint(id), true
}

func currentUser(c *gin.Context) (uint, bool) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Unauthorized(c)
	}
	return userID, ok
}

func bindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		response.FromError(c, validator.Translate(err))
		return false
	}
	return true
}

func bindPage(c *gin.Context, q *dto.PageQuery) bool {
	if err := c.ShouldBindQuery(q); err != nil {
		response.FromError(c, validator.Translate(err))
		return false
	}
	q.Normalize()
	return true
}

// fail trả lỗi dạng envelope, lỗi không phải AppError thì không lộ chi tiết
func fail(c *gin.Context, err error) {
	if !apperrors.IsAppError(err) {
		_ = c.Error(err)
	}
	response.FromError(c, err)
}
