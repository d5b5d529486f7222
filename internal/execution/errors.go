package execution

import (
	"errors"
	"time"
)

// External action failures fall into three classes: permanent failures are
// surfaced immediately, rate limited failures are retried after the wait the
// platform asked for, and everything else is treated as transient and
// retried with backoff.

type PermanentError struct {
	Err error
}

func Permanent(err error) *PermanentError {
	return &PermanentError{Err: err}
}

func (e *PermanentError) Error() string {
	return e.Err.Error()
}

func (e *PermanentError) Unwrap() error {
	return e.Err
}

type RateLimitedError struct {
	Err        error
	RetryAfter time.Duration
}

func RateLimited(err error, retryAfter time.Duration) *RateLimitedError {
	return &RateLimitedError{Err: err, RetryAfter: retryAfter}
}

func (e *RateLimitedError) Error() string {
	return e.Err.Error()
}

func (e *RateLimitedError) Unwrap() error {
	return e.Err
}

func IsPermanent(err error) bool {
	var permanent *PermanentError
	return errors.As(err, &permanent)
}

// retryAfter returns the advertised wait for rate limited errors, or 0.
func retryAfter(err error) time.Duration {
	var rateLimited *RateLimitedError
	if errors.As(err, &rateLimited) {
		return rateLimited.RetryAfter
	}
	return 0
}
