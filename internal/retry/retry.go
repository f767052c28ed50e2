// Package retry provides the shared backoff policy wrapping every outbound
// call to the AI and link providers. Classification of what is transient
// lives in the domain error taxonomy; this package only decides when to try
// again.
package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/telepathbot/telepath/internal/domain"
)

const (
	DefaultMaxAttempts  = 3
	DefaultInitialDelay = time.Second
)

type options struct {
	maxAttempts  int
	initialDelay time.Duration
}

type Option func(*options)

// WithMaxAttempts bounds the total number of invocations, first try included.
func WithMaxAttempts(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxAttempts = n
		}
	}
}

// WithInitialDelay sets the wait before the second attempt; each subsequent
// wait doubles.
func WithInitialDelay(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.initialDelay = d
		}
	}
}

// Do runs op, retrying transient failures with exponential backoff. The
// operation is invoked at most maxAttempts times; non-retryable errors are
// returned immediately. The returned error is always classified.
func Do[T any](ctx context.Context, op func() (T, error), opts ...Option) (T, error) {
	o := options{maxAttempts: DefaultMaxAttempts, initialDelay: DefaultInitialDelay}
	for _, apply := range opts {
		apply(&o)
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = o.initialDelay
	b.Multiplier = 2
	b.RandomizationFactor = 0
	b.MaxInterval = o.initialDelay << 16
	b.MaxElapsedTime = 0

	policy := backoff.WithContext(backoff.WithMaxRetries(b, uint64(o.maxAttempts-1)), ctx)

	var result T
	err := backoff.Retry(func() error {
		v, err := op()
		if err != nil {
			classified := domain.Classify(err)
			if !domain.Retryable(classified) {
				return backoff.Permanent(classified)
			}
			return classified
		}
		result = v
		return nil
	}, policy)
	if err != nil {
		var zero T
		return zero, domain.Classify(err)
	}
	return result, nil
}
