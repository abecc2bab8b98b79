package cache

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNetwork marks a failure to reach a remote cache backend.
	ErrNetwork = errors.New("network error")

	// ErrCacheMiss is used inside backends to signal an absent key. Get
	// reports a miss as (nil, false, nil) rather than returning it.
	ErrCacheMiss = errors.New("cache miss")
)

// retryable tags an error as transient.
type retryable struct{ err error }

func (r retryable) Error() string { return r.err.Error() }
func (r retryable) Unwrap() error { return r.err }

// Retryable marks err as transient so RetryWithBackoff tries again. A nil
// err stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return retryable{err: err}
}

// IsRetryable reports whether err, or any error it wraps, was marked with
// Retryable.
func IsRetryable(err error) bool {
	var r retryable
	return errors.As(err, &r)
}

// retryBaseDelay is the pause after the first failed attempt.
var retryBaseDelay = 200 * time.Millisecond

const retryAttempts = 3

// RetryWithBackoff calls fn until it succeeds, returns an error not marked
// Retryable, or has been called three times. The pause between calls starts
// at 200ms and doubles.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	delay := retryBaseDelay
	for attempt := 1; ; attempt++ {
		err := fn()
		if err == nil || !IsRetryable(err) || attempt == retryAttempts {
			return err
		}

		t := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
		delay *= 2
	}
}
