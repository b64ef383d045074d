package linking

import (
	"context"
	"time"
)

// RetryPolicy bounds automatic merge retries. The legacy client retried
// once after a fixed 1.5s pause; the policy here is explicit so it can
// be unit-tested with an injected sleeper instead of real delays.
type RetryPolicy struct {
	// MaxAttempts is the total number of merge calls per Reconcile
	// invocation, including the first.
	MaxAttempts int

	// InitialDelay is the pause before the first retry; each further
	// retry doubles it, capped at MaxDelay.
	InitialDelay time.Duration
	MaxDelay     time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:  3,
		InitialDelay: 500 * time.Millisecond,
		MaxDelay:     5 * time.Second,
	}
}

// Delay returns the backoff after the given 1-based attempt number.
func (p RetryPolicy) Delay(attempt int) time.Duration {
	d := p.InitialDelay
	for i := 1; i < attempt; i++ {
		d *= 2
		if p.MaxDelay > 0 && d >= p.MaxDelay {
			return p.MaxDelay
		}
	}
	return d
}

// Sleeper waits for the given duration or until the context is done.
// Tests substitute an instant implementation.
type Sleeper func(ctx context.Context, d time.Duration) error

func defaultSleeper(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
