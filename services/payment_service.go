package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"travel-app/builders"
	"travel-app/dto"
	apperrors "travel-app/errors"
	"travel-app/models"
	"travel-app/services/chapa"
	"travel-app/services/logger"
	"travel-app/services/notification"
	"travel-app/validator"

	"github.com/google/uuid"
)

// PaymentConfig là cấu hình tường minh cho PaymentService
type PaymentConfig struct {
	Gateway  chapa.Config
	Currency string
}

// PaymentService điều phối khởi tạo và xác minh thanh toán với gateway
type PaymentService struct {
	cfg      PaymentConfig
	payments PaymentStore
	gateway  Gateway
	sender   notification.Sender
	log      logger.Logger
	newTxRef func() string
}

type PaymentOption func(*PaymentService)

// WithTxRefGenerator thay bộ sinh tx_ref, mặc định là uuid v4
func WithTxRefGenerator(gen func() string) PaymentOption {
	return func(s *PaymentService) { s.newTxRef = gen }
}

func NewPaymentService(cfg PaymentConfig, payments PaymentStore, gateway Gateway, sender notification.Sender, log logger.Logger, opts ...PaymentOption) *PaymentService {
	if cfg.Currency == "" {
		cfg.Currency = builders.DefaultCurrency
	}
	if gateway == nil {
		gateway = chapa.NewClient(cfg.Gateway)
	}
	s := &PaymentService{
		cfg:      cfg,
		payments: payments,
		gateway:  gateway,
		sender:   sender,
		log:      log,
		newTxRef: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initiate tạo payment Pending rồi gọi gateway lấy checkout_url.
// Gateway lỗi thì payment bị đánh dấu Failed và lỗi được trả về.
func (s *PaymentService) Initiate(ctx context.Context, req dto.InitiatePaymentRequest) (*dto.InitiatePaymentResponse, error) {
	if err := validator.ValidateStruct(&req); err != nil {
		return nil, err
	}

	payment := &models.Payment{
		UserID:           req.UserID,
		BookingReference: req.BookingReference,
		Amount:           req.Amount,
		Currency:         s.cfg.Currency,
		Email:            req.Email,
		Status:           models.PaymentStatusPending,
	}
	if err := s.payments.Create(ctx, payment); err != nil {
		return nil, err
	}

	txRef := s.newTxRef()
	payload := builders.NewCheckoutBuilder().
		WithAmount(req.Amount).
		WithCurrency(s.cfg.Currency).
		WithEmail(req.Email).
		WithTxRef(txRef).
		Build()

	// Lệnh gọi gateway không bị hủy theo request
	gwCtx := context.WithoutCancel(ctx)
	resp, err := s.gateway.Initialize(gwCtx, payload)
	if err == nil && resp.CheckoutURL() == "" {
		err = apperrors.NewAppError(apperrors.ErrCodeTransport, "chapa: initialize response has no checkout_url", nil)
	}
	if err != nil {
		s.log.Error("initiate payment %d failed: %v", payment.ID, err)
		s.markFailed(gwCtx, payment.ID, gatewayBody(err))
		return nil, err
	}

	if err := s.payments.SetTransaction(gwCtx, payment.ID, txRef, resp.Raw); err != nil {
		s.log.Error("store transaction for payment %d failed: %v", payment.ID, err)
		s.markFailed(gwCtx, payment.ID, resp.Raw)
		return nil, err
	}
	s.log.Info("payment %d initiated with tx_ref %s", payment.ID, txRef)

	return &dto.InitiatePaymentResponse{
		CheckoutURL: resp.CheckoutURL(),
		PaymentID:   payment.ID,
	}, nil
}

// Verify hỏi gateway trạng thái giao dịch và lưu kết quả.
// Payment đã ở trạng thái cuối thì trả về trạng thái đã lưu, không gọi gateway.
func (s *PaymentService) Verify(ctx context.Context, paymentID uint) (*dto.VerifyPaymentResponse, error) {
	payment, err := s.payments.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if !payment.HasTransaction() {
		return nil, apperrors.ErrTransactionMissing
	}
	if payment.Status.IsTerminal() {
		return &dto.VerifyPaymentResponse{Status: payment.Status}, nil
	}

	gwCtx := context.WithoutCancel(ctx)
	resp, err := s.gateway.Verify(gwCtx, *payment.TransactionID)
	if err != nil {
		s.log.Error("verify payment %d failed: %v", payment.ID, err)
		s.markFailed(gwCtx, payment.ID, nil)
		return nil, err
	}

	target := models.PaymentStatusFailed
	if resp.Succeeded() {
		target = models.PaymentStatusCompleted
	}

	changed, err := s.payments.TransitionStatus(gwCtx, payment.ID, target, resp.Raw)
	if err != nil {
		return nil, err
	}
	if !changed {
		// Một request khác đã chốt trạng thái trước
		current, err := s.payments.GetByID(gwCtx, payment.ID)
		if err != nil {
			return nil, err
		}
		return &dto.VerifyPaymentResponse{Status: current.Status}, nil
	}

	s.log.Info("payment %d verified: %s", payment.ID, target)
	if target == models.PaymentStatusCompleted && s.sender != nil && payment.Email != "" {
		payment.Status = target
		s.sender.Send(payment.Email, notification.NewPaymentDetails(payment))
	}
	return &dto.VerifyPaymentResponse{Status: target}, nil
}

// Get trả về bản ghi payment, chỉ chủ payment được xem
func (s *PaymentService) Get(ctx context.Context, paymentID, userID uint) (*models.Payment, error) {
	payment, err := s.payments.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment.UserID != userID {
		return nil, apperrors.ErrForbidden
	}
	return payment, nil
}

// ExpireStalePayments đánh dấu Failed các payment Pending chưa có giao dịch quá olderThan
func (s *PaymentService) ExpireStalePayments(ctx context.Context, olderThan time.Duration) (int64, error) {
	n, err := s.payments.FailStalePending(ctx, time.Now().Add(-olderThan))
	if err != nil {
		return 0, fmt.Errorf("expire stale payments: %w", err)
	}
	if n > 0 {
		s.log.Info("marked %d stale pending payments as failed", n)
	}
	return n, nil
}

func (s *PaymentService) markFailed(ctx context.Context, id uint, raw []byte) {
	if _, err := s.payments.TransitionStatus(ctx, id, models.PaymentStatusFailed, raw); err != nil {
		s.log.Error("mark payment %d failed: %v", id, err)
	}
}

func gatewayBody(err error) []byte {
	var gwErr *apperrors.GatewayError
	if errors.As(err, &gwErr) {
		return gwErr.Body
	}
	return nil
}
