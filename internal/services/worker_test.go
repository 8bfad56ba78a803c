package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorker_RunCollectsErrorsPerJob(t *testing.T) {
	w := NewWorker(2)
	boom := errors.New("boom")

	errs := w.Run(context.Background(), 4, func(_ context.Context, job int) error {
		if job%2 == 1 {
			return boom
		}
		return nil
	})

	require.Len(t, errs, 4)
	assert.NoError(t, errs[0])
	assert.ErrorIs(t, errs[1], boom)
	assert.NoError(t, errs[2])
	assert.ErrorIs(t, errs[3], boom)
}

func TestWorker_RespectsConcurrencyLimit(t *testing.T) {
	w := NewWorker(2)
	var running, peak int32

	w.Run(context.Background(), 8, func(_ context.Context, _ int) error {
		n := atomic.AddInt32(&running, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		atomic.AddInt32(&running, -1)
		return nil
	})

	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(2))
	assert.GreaterOrEqual(t, atomic.LoadInt32(&peak), int32(1))
}

func TestWorker_CancelledContext(t *testing.T) {
	w := NewWorker(1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls int32
	errs := w.Run(ctx, 3, func(_ context.Context, _ int) error {
		atomic.AddInt32(&calls, 1)
		return nil
	})

	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
	for _, err := range errs {
		assert.ErrorIs(t, err, context.Canceled)
	}
}

func TestWorker_NoJobs(t *testing.T) {
	assert.Empty(t, NewWorker(0).Run(context.Background(), 0, nil))
}
