package request

import (
	"math"
	"math/rand"
	"time"
)

// Backoff computes exponential retry delays with jitter.
type Backoff struct {
	baseDelay time.Duration
	maxDelay  time.Duration
}

// NewBackoff creates a backoff calculator.
func NewBackoff(baseDelay, maxDelay time.Duration) *Backoff {
	return &Backoff{baseDelay: baseDelay, maxDelay: maxDelay}
}

// Delay returns the delay before the given attempt (1-based):
// baseDelay * 2^(failures-1), capped at maxDelay, plus 10% jitter.
func (b *Backoff) Delay(failures int) time.Duration {
	if failures < 1 {
		failures = 1
	}

	multiplier := math.Pow(2, float64(failures-1))
	delay := time.Duration(float64(b.baseDelay) * multiplier)

	if delay > b.maxDelay {
		delay = b.maxDelay
	}

	jitter := time.Duration(rand.Float64() * 0.1 * float64(delay))
	return delay + jitter
}
