package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"travel-app/services/logger"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
)

type outcome int

const (
	outcomeAck outcome = iota
	outcomeDrop
	outcomeRequeue
)

const (
	defaultPrefetch = 20
	maxBackoff      = 30 * time.Second
)

// Consumer đọc hàng đợi xác nhận và gửi email qua Mailer
type Consumer struct {
	url      string
	queue    string
	mailer   Mailer
	log      logger.Logger
	prefetch int
}

func NewConsumer(url string, mailer Mailer, log logger.Logger) *Consumer {
	return &Consumer{
		url:      url,
		queue:    QueueName,
		mailer:   mailer,
		log:      log,
		prefetch: defaultPrefetch,
	}
}

// Run chạy vòng lặp kết nối lại cho tới khi ctx bị hủy
func (c *Consumer) Run(ctx context.Context) error {
	backoff := time.Second
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		conn, err := amqp.Dial(c.url)
		if err != nil {
			c.log.Error("consumer: dial broker failed: %v, retrying in %s", err, backoff)
			if !sleep(ctx, backoff) {
				return ctx.Err()
			}
			if backoff < maxBackoff {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		err = c.consume(ctx, conn)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.log.Error("consumer: consume loop ended: %v, reconnecting", err)
		if !sleep(ctx, 2*time.Second) {
			return ctx.Err()
		}
	}
}

func (c *Consumer) consume(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(c.prefetch, 0, false); err != nil {
		c.log.Warn("consumer: set QoS failed: %v", err)
	}
	if _, err := ch.QueueDeclare(c.queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	msgs, err := ch.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}
	c.log.Info("consumer: waiting for messages on %s", c.queue)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			switch c.handleDelivery(ctx, d.Body, d.Redelivered) {
			case outcomeAck:
				_ = d.Ack(false)
			case outcomeRequeue:
				_ = d.Nack(false, true)
			default:
				_ = d.Nack(false, false)
			}
		}
	}
}

// handleDelivery gửi email cho một message. Message lỗi định dạng bị bỏ;
// lỗi gửi mail được requeue một lần, lần giao lại vẫn lỗi thì bỏ.
func (c *Consumer) handleDelivery(ctx context.Context, body []byte, redelivered bool) outcome {
	var msg ConfirmationMessage
	if err := json.Unmarshal(body, &msg); err != nil || msg.Address == "" {
		c.log.Error("consumer: malformed message dropped: %v", err)
		return outcomeDrop
	}
	subject := msg.Subject
	if subject == "" {
		subject = Subject
	}
	if err := c.mailer.Send(ctx, msg.Address, subject, msg.Body()); err != nil {
		if redelivered {
			c.log.Error("consumer: send to %s failed again, dropping: %v", msg.Address, err)
			return outcomeDrop
		}
		c.log.Error("consumer: send to %s failed, requeue: %v", msg.Address, err)
		return outcomeRequeue
	}
	c.log.Info("consumer: confirmation sent to %s", msg.Address)
	return outcomeAck
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
