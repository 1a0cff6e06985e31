package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackoffNextGrowsAndCaps(t *testing.T) {
	b := &Backoff{Base: 10 * time.Millisecond, Max: 50 * time.Millisecond, Factor: 2}

	d1 := b.Next()
	d2 := b.Next()
	d3 := b.Next()
	d4 := b.Next()

	assert.Equal(t, 10*time.Millisecond, d1)
	assert.Equal(t, 20*time.Millisecond, d2)
	assert.Equal(t, 40*time.Millisecond, d3)
	assert.Equal(t, 50*time.Millisecond, d4) // capped at Max
	assert.Equal(t, 4, b.Attempt())
}

func TestBackoffReset(t *testing.T) {
	b := &Backoff{Base: 5 * time.Millisecond, Max: time.Second}
	b.Next()
	b.Next()
	b.Reset()
	assert.Equal(t, 0, b.Attempt())
	assert.Equal(t, 5*time.Millisecond, b.Next())
}

func TestDoSucceedsOnFirstAttempt(t *testing.T) {
	calls := 0
	err := Do(context.Background(), &Backoff{Base: time.Millisecond, Max: time.Millisecond}, 3, nil, func(ctx context.Context) error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestDoRetriesThenSucceeds(t *testing.T) {
	calls := 0
	err := Do(context.Background(), &Backoff{Base: time.Millisecond, Max: 2 * time.Millisecond}, 5, nil, func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDoStopsAtMaxAttempts(t *testing.T) {
	calls := 0
	errBoom := errors.New("boom")
	err := Do(context.Background(), &Backoff{Base: time.Millisecond, Max: 2 * time.Millisecond}, 3, nil, func(ctx context.Context) error {
		calls++
		return errBoom
	})
	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, 3, calls)
}

func TestDoHonorsShouldRetry(t *testing.T) {
	calls := 0
	errFatal := errors.New("fatal")
	err := Do(context.Background(), &Backoff{Base: time.Millisecond, Max: time.Millisecond}, 5, func(err error) bool {
		return false // never retry
	}, func(ctx context.Context) error {
		calls++
		return errFatal
	})
	assert.ErrorIs(t, err, errFatal)
	assert.Equal(t, 1, calls)
}

func TestDoRespectsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Do(ctx, &Backoff{Base: time.Millisecond, Max: time.Millisecond}, 3, nil, func(ctx context.Context) error {
		t.Fatal("fn should not be called when context is already cancelled")
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}
