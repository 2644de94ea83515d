package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"travel-app/services/logger"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExpirer struct {
	calls     int
	olderThan time.Duration
	err       error
}

func (f *fakeExpirer) ExpireStalePayments(ctx context.Context, olderThan time.Duration) (int64, error) {
	f.calls++
	f.olderThan = olderThan
	return 2, f.err
}

func TestSweepStalePayments(t *testing.T) {
	f := &fakeExpirer{}
	SweepStalePayments(f, time.Hour, logger.Nop{})()
	assert.Equal(t, 1, f.calls)
	assert.Equal(t, time.Hour, f.olderThan)

	f.err = errors.New("db down")
	assert.NotPanics(t, SweepStalePayments(f, time.Hour, logger.Nop{}))
}

func TestInitCronJobs(t *testing.T) {
	c := cron.New()
	defer c.Stop()
	require.NoError(t, InitCronJobs(c, &fakeExpirer{}, Options{}, logger.Nop{}))
	assert.Len(t, c.Entries(), 1)

	bad := cron.New()
	assert.Error(t, InitCronJobs(bad, &fakeExpirer{}, Options{SweepSpec: "not a spec"}, logger.Nop{}))
}
