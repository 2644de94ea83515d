package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode định nghĩa mã lỗi
type ErrorCode string

const (
	// Auth errors
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeInvalidToken ErrorCode = "INVALID_TOKEN"
	ErrCodeMissingToken ErrorCode = "MISSING_TOKEN"
	ErrCodeForbidden    ErrorCode = "FORBIDDEN"

	// Database errors
	ErrCodeDBError      ErrorCode = "DB_ERROR"
	ErrCodeDBNotFound   ErrorCode = "DB_NOT_FOUND"
	ErrCodeDBDuplicate  ErrorCode = "DB_DUPLICATE"
	ErrCodeDBConstraint ErrorCode = "DB_CONSTRAINT"

	// Validation errors
	ErrCodeValidation       ErrorCode = "VALIDATION_ERROR"
	ErrCodeRequiredField    ErrorCode = "REQUIRED_FIELD"
	ErrCodeInvalidFormat    ErrorCode = "INVALID_FORMAT"
	ErrCodeInvalidAmount    ErrorCode = "INVALID_AMOUNT"
	ErrCodeInvalidDateRange ErrorCode = "INVALID_DATE_RANGE"
	ErrCodeInvalidRating    ErrorCode = "INVALID_RATING"

	// Business errors
	ErrCodeNotFound           ErrorCode = "NOT_FOUND"
	ErrCodeConflict           ErrorCode = "CONFLICT"
	ErrCodeInvalidOperation   ErrorCode = "INVALID_OPERATION"
	ErrCodeTransactionMissing ErrorCode = "TRANSACTION_MISSING"

	// Gateway errors
	ErrCodeGateway   ErrorCode = "GATEWAY_ERROR"
	ErrCodeTransport ErrorCode = "TRANSPORT_ERROR"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// AppError định nghĩa lỗi của ứng dụng
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError tạo một AppError mới
func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// IsAppError kiểm tra xem error có phải là AppError không
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError lấy AppError từ error
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// GatewayError là phản hồi không thành công (non-200) từ cổng thanh toán.
// Body giữ nguyên nội dung gateway trả về để chuyển tiếp cho client.
type GatewayError struct {
	StatusCode int
	Body       []byte
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("[%s] gateway returned status %d: %s", ErrCodeGateway, e.StatusCode, string(e.Body))
}

// Payload trả về body dạng JSON nếu hợp lệ, ngược lại trả về chuỗi thô
func (e *GatewayError) Payload() interface{} {
	if len(e.Body) > 0 && json.Valid(e.Body) {
		return json.RawMessage(e.Body)
	}
	return string(e.Body)
}

var (
	// Not found
	ErrUserNotFound    = NewAppError(ErrCodeNotFound, "User not found", nil)
	ErrListingNotFound = NewAppError(ErrCodeNotFound, "Listing not found", nil)
	ErrBookingNotFound = NewAppError(ErrCodeNotFound, "Booking not found", nil)
	ErrReviewNotFound  = NewAppError(ErrCodeNotFound, "Review not found", nil)
	ErrPaymentNotFound = NewAppError(ErrCodeNotFound, "Payment not found", nil)

	// Auth
	ErrUnauthorized = NewAppError(ErrCodeUnauthorized, "Authentication required", nil)
	ErrMissingToken = NewAppError(ErrCodeMissingToken, "Authentication required", nil)
	ErrForbidden    = NewAppError(ErrCodeForbidden, "You do not have permission to perform this action", nil)

	// Business
	ErrReviewExists       = NewAppError(ErrCodeConflict, "You have already reviewed this listing", nil)
	ErrTransactionMissing = NewAppError(ErrCodeTransactionMissing, "Transaction ID missing", nil)
	ErrInvalidTransition  = NewAppError(ErrCodeInvalidOperation, "invalid payment status transition", nil)

	// Validation
	ErrInvalidJSON = NewAppError(ErrCodeInvalidFormat, "Invalid JSON", nil)
)

// HTTPStatus ánh xạ lỗi sang mã HTTP tương ứng
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var gatewayErr *GatewayError
	if errors.As(err, &gatewayErr) {
		return gatewayErr.StatusCode
	}

	appErr := GetAppError(err)
	if appErr == nil {
		return http.StatusInternalServerError
	}

	switch appErr.Code {
	case ErrCodeValidation, ErrCodeRequiredField, ErrCodeInvalidFormat, ErrCodeInvalidAmount,
		ErrCodeInvalidDateRange, ErrCodeInvalidRating, ErrCodeDBConstraint, ErrCodeTransactionMissing:
		return http.StatusBadRequest
	case ErrCodeUnauthorized, ErrCodeInvalidToken, ErrCodeMissingToken:
		return http.StatusUnauthorized
	case ErrCodeForbidden:
		return http.StatusForbidden
	case ErrCodeNotFound, ErrCodeDBNotFound:
		return http.StatusNotFound
	case ErrCodeDBDuplicate, ErrCodeConflict, ErrCodeInvalidOperation:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Message trả về thông điệp an toàn để hiển thị cho client
func Message(err error) string {
	if err == nil {
		return ""
	}
	if appErr := GetAppError(err); appErr != nil {
		return appErr.Message
	}
	var gatewayErr *GatewayError
	if errors.As(err, &gatewayErr) {
		return string(gatewayErr.Body)
	}
	return "Internal server error"
}

// Code trả về mã lỗi, mặc định là lỗi server
func Code(err error) ErrorCode {
	if appErr := GetAppError(err); appErr != nil {
		return appErr.Code
	}
	var gatewayErr *GatewayError
	if errors.As(err, &gatewayErr) {
		return ErrCodeGateway
	}
	return ErrCodeInternal
}
