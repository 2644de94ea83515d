package notification

import (
	"fmt"
	"time"

	"travel-app/models"

	"github.com/goccy/go-json"
	"github.com/olahol/melody"
)

const (
	// QueueName là hàng đợi durable chứa email xác nhận
	QueueName = "booking.confirmation"

	Subject = "Booking Confirmation"
)

// Sender gửi thông báo xác nhận theo kiểu fire-and-forget
type Sender interface {
	Send(address, details string)
}

// ConfirmationMessage là payload được đẩy vào hàng đợi
type ConfirmationMessage struct {
	Address  string    `json:"address"`
	Subject  string    `json:"subject"`
	Details  string    `json:"details"`
	QueuedAt time.Time `json:"queued_at"`
}

func NewConfirmationMessage(address, details string) ConfirmationMessage {
	return ConfirmationMessage{
		Address:  address,
		Subject:  Subject,
		Details:  details,
		QueuedAt: time.Now().UTC(),
	}
}

// Body trả về nội dung email
func (m ConfirmationMessage) Body() string {
	return fmt.Sprintf("Hello! Your booking is confirmed. Details: %s", m.Details)
}

// NewBookingDetails tạo chuỗi chi tiết booking cho email
func NewBookingDetails(booking *models.Booking, listing *models.Listing) string {
	return fmt.Sprintf("Booking ID: %d, Destination: %s (%s), %s → %s",
		booking.ID,
		listing.Title,
		listing.Location,
		time.Time(booking.StartDate).Format(models.DateLayout),
		time.Time(booking.EndDate).Format(models.DateLayout),
	)
}

// NewPaymentDetails tạo chuỗi chi tiết thanh toán cho email
func NewPaymentDetails(p *models.Payment) string {
	tx := ""
	if p.TransactionID != nil {
		tx = *p.TransactionID
	}
	return fmt.Sprintf("Payment ID: %d, Booking reference: %s, Amount: %.2f %s, Transaction: %s",
		p.ID, p.BookingReference, p.Amount, p.Currency, tx)
}

const (
	// SessionUserKey và SessionEmailKey là key gắn vào session websocket khi kết nối
	SessionUserKey  = "userID"
	SessionEmailKey = "email"
)

// MelodySender chỉ gửi thông báo tới các session websocket của đúng người nhận
type MelodySender struct {
	m *melody.Melody
}

func NewMelodySender(m *melody.Melody) *MelodySender {
	return &MelodySender{m: m}
}

type feedEvent struct {
	Type    string `json:"type"`
	Details string `json:"details"`
}

func (s *MelodySender) Send(address, details string) {
	if s.m == nil || address == "" {
		return
	}
	payload, err := json.Marshal(feedEvent{Type: "confirmation", Details: details})
	if err != nil {
		return
	}
	_ = s.m.BroadcastFilter(payload, func(sess *melody.Session) bool {
		email, ok := sess.Get(SessionEmailKey)
		return ok && email == address
	})
}

// MultiSender gửi cùng một thông báo tới nhiều Sender
type MultiSender []Sender

func (m MultiSender) Send(address, details string) {
	for _, s := range m {
		if s != nil {
			s.Send(address, details)
		}
	}
}

// Senders tách kênh gửi theo loại thông báo
type Senders struct {
	// Booking đi qua feed websocket của chủ booking và hàng đợi email
	Booking Sender
	// Payment chỉ đi qua hàng đợi email, không lên websocket
	Payment Sender
}

// NewSenders dựng các kênh gửi, queue nil thì payment không gửi gì
func NewSenders(m *melody.Melody, queue Sender) Senders {
	booking := MultiSender{NewMelodySender(m)}
	if queue != nil {
		booking = append(booking, queue)
	}
	return Senders{Booking: booking, Payment: queue}
}
