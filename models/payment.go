package models

import (
	"time"

	"gorm.io/datatypes"
)

// PaymentStatus là trạng thái của một giao dịch thanh toán
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "Pending"
	PaymentStatusCompleted PaymentStatus = "Completed"
	PaymentStatusFailed    PaymentStatus = "Failed"
)

// IsTerminal cho biết trạng thái không thể chuyển tiếp nữa
func (s PaymentStatus) IsTerminal() bool {
	return s == PaymentStatusCompleted || s == PaymentStatusFailed
}

// Payment là bản ghi kiểm toán cho mỗi lần khởi tạo thanh toán.
// BookingReference là chuỗi tự do, không phải khóa ngoại tới Booking.
type Payment struct {
	ID               uint           `json:"id" gorm:"primaryKey"`
	UserID           uint           `json:"user_id" gorm:"not null;index"`
	User             *User          `json:"-" gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	BookingReference string         `json:"booking_reference" gorm:"size:100;not null;index"`
	Amount           float64        `json:"amount" gorm:"type:numeric(12,2);not null"`
	Currency         string         `json:"currency" gorm:"size:10"`
	Email            string         `json:"email" gorm:"size:255"`
	Status           PaymentStatus  `json:"status" gorm:"size:20;not null;default:Pending;index"`
	TransactionID    *string        `json:"transaction_id" gorm:"size:100;uniqueIndex"`
	GatewayResponse  datatypes.JSON `json:"-"`
	CreatedAt        time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt        time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
}

// HasTransaction cho biết gateway đã nhận giao dịch hay chưa
func (p *Payment) HasTransaction() bool {
	return p.TransactionID != nil && *p.TransactionID != ""
}
