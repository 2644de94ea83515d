package jobs

import (
	"context"
	"time"

	"travel-app/services/logger"

	"github.com/robfig/cron/v3"
)

// StalePaymentExpirer đánh dấu Failed các payment Pending treo quá lâu
type StalePaymentExpirer interface {
	ExpireStalePayments(ctx context.Context, olderThan time.Duration) (int64, error)
}

type Options struct {
	SweepSpec  string
	StaleAfter time.Duration
}

// InitCronJobs đăng ký các cron job và khởi động scheduler
func InitCronJobs(c *cron.Cron, payments StalePaymentExpirer, opts Options, log logger.Logger) error {
	if opts.SweepSpec == "" {
		opts.SweepSpec = "@every 5m"
	}
	if opts.StaleAfter <= 0 {
		opts.StaleAfter = 30 * time.Minute
	}

	_, err := c.AddFunc(opts.SweepSpec, SweepStalePayments(payments, opts.StaleAfter, log))
	if err != nil {
		return err
	}

	c.Start()
	log.Info("cron jobs initialized: stale payment sweep %s", opts.SweepSpec)
	return nil
}

// SweepStalePayments trả về job quét payment treo
func SweepStalePayments(payments StalePaymentExpirer, staleAfter time.Duration, log logger.Logger) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		n, err := payments.ExpireStalePayments(ctx, staleAfter)
		if err != nil {
			log.Error("stale payment sweep failed: %v", err)
			return
		}
		log.Debug("stale payment sweep done, %d expired", n)
	}
}
