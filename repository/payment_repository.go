package repository

import (
	"context"
	"encoding/json"
	"time"

	apperrors "travel-app/errors"
	"travel-app/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	if payment.Status == "" {
		payment.Status = models.PaymentStatusPending
	}
	if err := r.db.WithContext(ctx).Omit("User").Create(payment).Error; err != nil {
		return mapDBError(err, nil)
	}
	return nil
}

func (r *PaymentRepository) GetByID(ctx context.Context, id uint) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.WithContext(ctx).First(&payment, id).Error; err != nil {
		return nil, mapDBError(err, apperrors.ErrPaymentNotFound)
	}
	return &payment, nil
}

// SetTransaction lưu tx_ref đã được gateway chấp nhận
func (r *PaymentRepository) SetTransaction(ctx context.Context, id uint, txRef string, raw []byte) error {
	updates := map[string]interface{}{"transaction_id": txRef}
	if len(raw) > 0 && json.Valid(raw) {
		updates["gateway_response"] = datatypes.JSON(raw)
	}
	res := r.db.WithContext(ctx).Model(&models.Payment{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return mapDBError(res.Error, apperrors.ErrPaymentNotFound)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrPaymentNotFound
	}
	return nil
}

// TransitionStatus chỉ cập nhật khi payment còn Pending.
// Trả về false nếu payment đã ở trạng thái cuối.
func (r *PaymentRepository) TransitionStatus(ctx context.Context, id uint, to models.PaymentStatus, raw []byte) (bool, error) {
	probe := &models.Payment{Status: models.PaymentStatusPending}
	if err := probe.Transition(to); err != nil {
		return false, err
	}

	updates := map[string]interface{}{"status": to}
	if len(raw) > 0 && json.Valid(raw) {
		updates["gateway_response"] = datatypes.JSON(raw)
	}
	res := r.db.WithContext(ctx).Model(&models.Payment{}).
		Where("id = ? AND status = ?", id, models.PaymentStatusPending).
		Updates(updates)
	if res.Error != nil {
		return false, mapDBError(res.Error, apperrors.ErrPaymentNotFound)
	}
	return res.RowsAffected > 0, nil
}

// FailStalePending đánh dấu Failed cho các payment Pending chưa có transaction_id
// và được tạo trước mốc thời gian
func (r *PaymentRepository) FailStalePending(ctx context.Context, before time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.Payment{}).
		Where("status = ? AND transaction_id IS NULL AND created_at < ?", models.PaymentStatusPending, before).
		Update("status", models.PaymentStatusFailed)
	if res.Error != nil {
		return 0, mapDBError(res.Error, nil)
	}
	return res.RowsAffected, nil
}
