package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"time"

	apperrors "travel-app/errors"

	"github.com/gin-gonic/gin/binding"
	playground "github.com/go-playground/validator/v10"
)

// DateLayout là định dạng ngày nhận từ client
const DateLayout = "2006-01-02"

func init() {
	if v, ok := binding.Validator.Engine().(*playground.Validate); ok {
		v.RegisterTagNameFunc(jsonFieldName)
	}
}

// jsonFieldName dùng tên trong tag json làm tên field trong thông báo lỗi
func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

// ValidateStruct validate request theo tag `binding`, dùng chung engine với gin
func ValidateStruct(obj interface{}) error {
	if err := binding.Validator.ValidateStruct(obj); err != nil {
		return Translate(err)
	}
	return nil
}

// Translate chuyển lỗi bind/validate thành AppError
func Translate(err error) error {
	if err == nil {
		return nil
	}
	if apperrors.IsAppError(err) {
		return err
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return apperrors.ErrInvalidJSON
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return apperrors.NewAppError(apperrors.ErrCodeInvalidFormat,
			fmt.Sprintf("Invalid type for field %s: expected %s", typeErr.Field, typeErr.Type.String()), err)
	}

	var timeErr *time.ParseError
	if errors.As(err, &timeErr) {
		return apperrors.NewAppError(apperrors.ErrCodeInvalidFormat,
			fmt.Sprintf("Invalid date %q, expected YYYY-MM-DD", timeErr.Value), err)
	}

	var verrs playground.ValidationErrors
	if errors.As(err, &verrs) {
		var missing, invalid []string
		for _, fe := range verrs {
			if fe.Tag() == "required" {
				missing = append(missing, fe.Field())
				continue
			}
			invalid = append(invalid, describe(fe))
		}
		if len(missing) > 0 {
			return apperrors.NewAppError(apperrors.ErrCodeRequiredField,
				"Missing required fields: "+strings.Join(missing, ", "), err)
		}
		return apperrors.NewAppError(apperrors.ErrCodeValidation, strings.Join(invalid, "; "), err)
	}

	return apperrors.NewAppError(apperrors.ErrCodeValidation, err.Error(), err)
}

func describe(fe playground.FieldError) string {
	switch fe.Tag() {
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%s must have at least %s characters", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must have at most %s characters", fe.Field(), fe.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "datetime":
		return fmt.Sprintf("%s must be a date in format YYYY-MM-DD", fe.Field())
	case "url":
		return fmt.Sprintf("%s must be a valid URL", fe.Field())
	default:
		return fmt.Sprintf("%s is invalid (%s)", fe.Field(), fe.Tag())
	}
}

// ParseDate parse ngày theo DateLayout
func ParseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, apperrors.NewAppError(apperrors.ErrCodeInvalidFormat,
			fmt.Sprintf("%s must be a date in format YYYY-MM-DD", field), err)
	}
	return t, nil
}

// ValidateAmount kiểm tra số tiền dương
func ValidateAmount(amount float64) error {
	if amount <= 0 {
		return apperrors.NewAppError(apperrors.ErrCodeInvalidAmount, "amount must be greater than 0", nil)
	}
	return nil
}
