package models

import (
	"fmt"

	apperrors "travel-app/errors"
)

// PaymentState định nghĩa interface cho các trạng thái payment
type PaymentState interface {
	Complete(payment *Payment) error
	Fail(payment *Payment) error
}

// PendingState trạng thái chờ xác minh
type PendingState struct{}

func (s *PendingState) Complete(payment *Payment) error {
	payment.Status = PaymentStatusCompleted
	return nil
}

func (s *PendingState) Fail(payment *Payment) error {
	payment.Status = PaymentStatusFailed
	return nil
}

// CompletedState trạng thái đã thanh toán
type CompletedState struct{}

func (s *CompletedState) Complete(payment *Payment) error {
	return fmt.Errorf("%w: payment already completed", apperrors.ErrInvalidTransition)
}

func (s *CompletedState) Fail(payment *Payment) error {
	return fmt.Errorf("%w: cannot fail completed payment", apperrors.ErrInvalidTransition)
}

// FailedState trạng thái thất bại
type FailedState struct{}

func (s *FailedState) Complete(payment *Payment) error {
	return fmt.Errorf("%w: cannot complete failed payment", apperrors.ErrInvalidTransition)
}

func (s *FailedState) Fail(payment *Payment) error {
	return fmt.Errorf("%w: payment already failed", apperrors.ErrInvalidTransition)
}

// GetPaymentState trả về state tương ứng với trạng thái payment
func GetPaymentState(status PaymentStatus) PaymentState {
	switch status {
	case PaymentStatusCompleted:
		return &CompletedState{}
	case PaymentStatusFailed:
		return &FailedState{}
	default:
		return &PendingState{}
	}
}

// Transition chuyển payment sang trạng thái đích theo state hiện tại
func (p *Payment) Transition(to PaymentStatus) error {
	state := GetPaymentState(p.Status)
	switch to {
	case PaymentStatusCompleted:
		return state.Complete(p)
	case PaymentStatusFailed:
		return state.Fail(p)
	default:
		return fmt.Errorf("%w: unknown target status %q", apperrors.ErrInvalidTransition, to)
	}
}
