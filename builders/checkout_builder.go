package builders

import (
	"strconv"

	"travel-app/services/chapa"
)

const (
	DefaultCurrency  = "ETB"
	defaultFirstName = "User"
	defaultLastName  = "Booking"
)

// CheckoutBuilder giúp tạo payload khởi tạo thanh toán theo từng bước
type CheckoutBuilder struct {
	req chapa.InitializeRequest
}

// NewCheckoutBuilder tạo builder với currency và tên mặc định
func NewCheckoutBuilder() *CheckoutBuilder {
	return &CheckoutBuilder{
		req: chapa.InitializeRequest{
			Currency:  DefaultCurrency,
			FirstName: defaultFirstName,
			LastName:  defaultLastName,
		},
	}
}

// WithAmount định dạng số tiền với 2 chữ số thập phân
func (b *CheckoutBuilder) WithAmount(amount float64) *CheckoutBuilder {
	b.req.Amount = strconv.FormatFloat(amount, 'f', 2, 64)
	return b
}

// WithCurrency bỏ qua giá trị rỗng
func (b *CheckoutBuilder) WithCurrency(currency string) *CheckoutBuilder {
	if currency != "" {
		b.req.Currency = currency
	}
	return b
}

func (b *CheckoutBuilder) WithEmail(email string) *CheckoutBuilder {
	b.req.Email = email
	return b
}

func (b *CheckoutBuilder) WithPayerName(firstName, lastName string) *CheckoutBuilder {
	if firstName != "" {
		b.req.FirstName = firstName
	}
	if lastName != "" {
		b.req.LastName = lastName
	}
	return b
}

func (b *CheckoutBuilder) WithTxRef(txRef string) *CheckoutBuilder {
	b.req.TxRef = txRef
	return b
}

func (b *CheckoutBuilder) Build() chapa.InitializeRequest {
	return b.req
}
