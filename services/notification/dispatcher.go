package notification

import (
	"context"
	"sync"
	"time"

	"travel-app/services/logger"
)

// Publisher đẩy message xác nhận tới hàng đợi
type Publisher interface {
	Publish(ctx context.Context, msg ConfirmationMessage) error
	Close() error
}

const (
	DefaultBufferSize     = 256
	defaultPublishTimeout = 10 * time.Second
)

// Dispatcher nhận message qua channel có buffer và publish trên một goroutine riêng.
// Send không bao giờ block: khi buffer đầy, message bị bỏ và ghi log.
type Dispatcher struct {
	pub   Publisher
	log   logger.Logger
	queue chan ConfirmationMessage
	done  chan struct{}

	mu        sync.RWMutex
	closed    bool
	closeOnce sync.Once
}

func NewDispatcher(pub Publisher, log logger.Logger, bufferSize int) *Dispatcher {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	d := &Dispatcher{
		pub:   pub,
		log:   log,
		queue: make(chan ConfirmationMessage, bufferSize),
		done:  make(chan struct{}),
	}
	go d.run()
	return d
}

func (d *Dispatcher) Send(address, details string) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		d.log.Warn("notification dispatcher closed, dropping message to %s", address)
		return
	}
	select {
	case d.queue <- NewConfirmationMessage(address, details):
	default:
		d.log.Error("notification buffer full, dropping message to %s", address)
	}
}

func (d *Dispatcher) run() {
	defer close(d.done)
	for msg := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), defaultPublishTimeout)
		if err := d.pub.Publish(ctx, msg); err != nil {
			d.log.Error("publish confirmation to %s failed: %v", msg.Address, err)
		} else {
			d.log.Debug("confirmation queued for %s", msg.Address)
		}
		cancel()
	}
}

// Close ngừng nhận message, chờ publish hết buffer rồi đóng publisher
func (d *Dispatcher) Close() error {
	var err error
	d.closeOnce.Do(func() {
		d.mu.Lock()
		d.closed = true
		close(d.queue)
		d.mu.Unlock()
		<-d.done
		err = d.pub.Close()
	})
	return err
}
