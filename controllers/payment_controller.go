package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"travel-app/dto"
	apperrors "travel-app/errors"
	"travel-app/middleware"
	"travel-app/services"
	"travel-app/validator"

	"github.com/gin-gonic/gin"
)

// PaymentController trả body thô ({checkout_url, payment_id}, {status}, {error}),
// không dùng envelope chung
type PaymentController struct {
	payments *services.PaymentService
}

func NewPaymentController(payments *services.PaymentService) *PaymentController {
	return &PaymentController{payments: payments}
}

// InitiatePayment godoc
// @Summary  Khởi tạo thanh toán Chapa
// @Tags     payment
// @Accept   json
// @Produce  json
// @Param    body body dto.InitiatePaymentRequest true "payment"
// @Success  200 {object} dto.InitiatePaymentResponse
// @Failure  400 {object} dto.ErrorResponse
// @Failure  500 {object} dto.ErrorResponse
// @Router   /api/payment/initiate/ [post]
func (ctl *PaymentController) InitiatePayment(c *gin.Context) {
	var req dto.InitiatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		paymentError(c, validator.Translate(err))
		return
	}
	res, err := ctl.payments.Initiate(c.Request.Context(), req)
	if err != nil {
		paymentError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// VerifyPayment godoc
// @Summary  Xác minh thanh toán với Chapa
// @Tags     payment
// @Produce  json
// @Param    payment_id path int true "payment id"
// @Success  200 {object} dto.VerifyPaymentResponse
// @Failure  400 {object} dto.ErrorResponse
// @Failure  404 {object} dto.ErrorResponse
// @Router   /api/payment/verify/{payment_id}/ [get]
func (ctl *PaymentController) VerifyPayment(c *gin.Context) {
	id, ok := paymentID(c)
	if !ok {
		return
	}
	res, err := ctl.payments.Verify(c.Request.Context(), id)
	if err != nil {
		paymentError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GetPayment godoc
// @Summary  Xem bản ghi thanh toán của chính mình
// @Tags     payment
// @Produce  json
// @Security Bearer
// @Param    payment_id path int true "payment id"
// @Success  200 {object} dto.PaymentResponse
// @Failure  401 {object} dto.ErrorResponse
// @Failure  403 {object} dto.ErrorResponse
// @Failure  404 {object} dto.ErrorResponse
// @Router   /api/payment/{payment_id}/ [get]
func (ctl *PaymentController) GetPayment(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		paymentError(c, apperrors.ErrUnauthorized)
		return
	}
	id, ok := paymentID(c)
	if !ok {
		return
	}
	payment, err := ctl.payments.Get(c.Request.Context(), id, userID)
	if err != nil {
		paymentError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPaymentResponse(*payment))
}

func paymentID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("payment_id"), 10, 64)
	if err != nil || id == 0 {
		c.AbortWithStatusJSON(http.StatusNotFound, dto.ErrorResponse{Error: apperrors.ErrPaymentNotFound.Message})
		return 0, false
	}
	return uint(id), true
}

// paymentError: lỗi gateway giữ nguyên status và body của gateway
func paymentError(c *gin.Context, err error) {
	var gwErr *apperrors.GatewayError
	if errors.As(err, &gwErr) {
		c.AbortWithStatusJSON(gwErr.StatusCode, dto.ErrorResponse{Error: gwErr.Payload()})
		return
	}
	if !apperrors.IsAppError(err) {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(apperrors.HTTPStatus(err), dto.ErrorResponse{Error: apperrors.Message(err)})
}
