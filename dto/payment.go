package dto

import (
	"time"

	"travel-app/models"
)

type InitiatePaymentRequest struct {
	UserID           uint    `json:"user_id" binding:"required"`
	BookingReference string  `json:"booking_reference" binding:"required,max=100"`
	Amount           float64 `json:"amount" binding:"required,gt=0"`
	Email            string  `json:"email" binding:"required,email"`
}

type InitiatePaymentResponse struct {
	CheckoutURL string `json:"checkout_url"`
	PaymentID   uint   `json:"payment_id"`
}

type VerifyPaymentResponse struct {
	Status models.PaymentStatus `json:"status"`
}

// ErrorResponse là body lỗi của các endpoint thanh toán
type ErrorResponse struct {
	Error interface{} `json:"error"`
}

type PaymentResponse struct {
	ID               uint                 `json:"id"`
	UserID           uint                 `json:"user_id"`
	BookingReference string               `json:"booking_reference"`
	Amount           float64              `json:"amount"`
	Currency         string               `json:"currency"`
	Status           models.PaymentStatus `json:"status"`
	TransactionID    *string              `json:"transaction_id"`
	CreatedAt        time.Time            `json:"created_at"`
	UpdatedAt        time.Time            `json:"updated_at"`
}

func ToPaymentResponse(p models.Payment) PaymentResponse {
	return PaymentResponse{
		ID:               p.ID,
		UserID:           p.UserID,
		BookingReference: p.BookingReference,
		Amount:           p.Amount,
		Currency:         p.Currency,
		Status:           p.Status,
		TransactionID:    p.TransactionID,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}
