package backoff

import (
	"time"

	"github.com/sethvargo/go-retry"
)

// Schedule maps a 1-based retry attempt to its delay. Attempts past the end of
// delays reuse the last entry.
func Schedule(delays []time.Duration) func(attempt int) time.Duration {
	steps := append([]time.Duration(nil), delays...)

	return func(attempt int) time.Duration {
		if attempt <= 0 || len(steps) == 0 {
			return 0
		}
		if attempt > len(steps) {
			attempt = len(steps)
		}
		delay := steps[attempt-1]
		if delay < 0 {
			return 0
		}
		return delay
	}
}

// Retry adapts a schedule to go-retry, stopping after maxRetries retries.
// The returned Backoff is stateful; build one per operation.
func Retry(maxRetries int, schedule func(attempt int) time.Duration) retry.Backoff {
	if maxRetries < 0 {
		maxRetries = 0
	}
	attempt := 0
	next := retry.BackoffFunc(func() (time.Duration, bool) {
		attempt++
		return schedule(attempt), false
	})
	return retry.WithMaxRetries(uint64(maxRetries), next)
}
