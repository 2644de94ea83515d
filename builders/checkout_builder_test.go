package builders

import (
	"testing"

	"travel-app/services/chapa"

	"github.com/stretchr/testify/assert"
)

func TestCheckoutBuilder(t *testing.T) {
	got := NewCheckoutBuilder().
		WithAmount(150).
		WithCurrency("").
		WithEmail("guest@example.com").
		WithTxRef("ref-1").
		Build()

	assert.Equal(t, chapa.InitializeRequest{
		Amount:    "150.00",
		Currency:  "ETB",
		Email:     "guest@example.com",
		FirstName: "User",
		LastName:  "Booking",
		TxRef:     "ref-1",
	}, got)
}

func TestCheckoutBuilder_Overrides(t *testing.T) {
	got := NewCheckoutBuilder().
		WithAmount(99.999).
		WithCurrency("USD").
		WithPayerName("Abebe", "").
		Build()

	assert.Equal(t, "100.00", got.Amount)
	assert.Equal(t, "USD", got.Currency)
	assert.Equal(t, "Abebe", got.FirstName)
	assert.Equal(t, "Booking", got.LastName)
}
