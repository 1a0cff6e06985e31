// Package retry provides a small exponential backoff iterator used by the
// ingestion pipeline's fetch-and-extract retry loop: a reusable
// sleep-or-stop helper whose delays are kept small in tests.
package retry

import (
	"context"
	"math/rand/v2"
	"time"
)

// Backoff generates a bounded, jittered exponential delay sequence.
type Backoff struct {
	// Base is the first delay returned.
	Base time.Duration
	// Max caps the delay; once reached, subsequent calls keep returning Max.
	Max time.Duration
	// Factor multiplies the delay on each step. Defaults to 2 if zero.
	Factor float64
	// Jitter, in [0,1], is the fraction of the computed delay randomized away.
	Jitter float64

	attempt int
}

// Next returns the delay for the current attempt and advances the sequence.
func (b *Backoff) Next() time.Duration {
	factor := b.Factor
	if factor <= 0 {
		factor = 2
	}

	delay := float64(b.Base)
	for i := 0; i < b.attempt; i++ {
		delay *= factor
	}
	if max := float64(b.Max); b.Max > 0 && delay > max {
		delay = max
	}
	b.attempt++

	if b.Jitter > 0 {
		delta := delay * b.Jitter
		delay = delay - delta + rand.Float64()*2*delta
	}
	if delay < 0 {
		delay = 0
	}
	return time.Duration(delay)
}

// Reset restarts the sequence at the base delay.
func (b *Backoff) Reset() { b.attempt = 0 }

// Attempt returns how many times Next has been called since the last Reset.
func (b *Backoff) Attempt() int { return b.attempt }

// Sleep waits for the given duration, or returns ctx.Err() early if ctx is
// cancelled first.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Do runs fn up to maxAttempts times, sleeping according to b between
// attempts, and returns the last error if all attempts fail. fn's error is
// passed to shouldRetry to decide whether another attempt is warranted;
// a nil shouldRetry retries on any non-nil error.
func Do(ctx context.Context, b *Backoff, maxAttempts int, shouldRetry func(error) bool, fn func(ctx context.Context) error) error {
	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}
		if shouldRetry != nil && !shouldRetry(lastErr) {
			return lastErr
		}
		if attempt == maxAttempts-1 {
			break
		}
		if err := Sleep(ctx, b.Next()); err != nil {
			return err
		}
	}
	return lastErr
}
