package execution

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

const (
	defaultMaxAttempts      = 3
	defaultBaseDelay        = 1 * time.Second
	defaultFailureThreshold = 5
	defaultRecoveryTimeout  = 60 * time.Second
)

var CircuitOpenError = errors.New("operation suspended after repeated failures")

// Action is one external side effect, e.g. a platform ban call.
type Action func(ctx context.Context) error

// Executor runs external actions behind a circuit breaker per operation
// type, so a platform outage on one kind of action does not suspend the
// others. Breaker state is process local and resets on restart.
type Executor struct {
	log *zap.SugaredLogger

	maxAttempts      int
	baseDelay        time.Duration
	failureThreshold uint32
	recoveryTimeout  time.Duration

	mu       sync.Mutex
	breakers map[string]*gobreaker.CircuitBreaker[any]
}

func NewExecutor(log *zap.SugaredLogger) *Executor {
	return &Executor{
		log:              log,
		maxAttempts:      defaultMaxAttempts,
		baseDelay:        defaultBaseDelay,
		failureThreshold: defaultFailureThreshold,
		recoveryTimeout:  defaultRecoveryTimeout,
		breakers:         make(map[string]*gobreaker.CircuitBreaker[any]),
	}
}

func (e *Executor) breaker(operationType string) *gobreaker.CircuitBreaker[any] {
	e.mu.Lock()
	defer e.mu.Unlock()

	cb, ok := e.breakers[operationType]
	if !ok {
		cb = gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
			Name:        operationType,
			MaxRequests: 1,
			Timeout:     e.recoveryTimeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= e.failureThreshold
			},
			OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
				e.log.Warnw("circuit state changed", "operationType", name,
					"from", from.String(), "to", to.String())
			},
		})
		e.breakers[operationType] = cb
	}

	return cb
}

// Do runs action through the breaker for its operation type. Retries happen
// inside a single breaker attempt, so the breaker sees one success or failure
// per call however many attempts were made.
func (e *Executor) Do(ctx context.Context, operationType string, action Action) error {
	_, err := e.breaker(operationType).Execute(func() (any, error) {
		return nil, e.attempt(ctx, operationType, action)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %s", CircuitOpenError, operationType)
	}
	return err
}

func (e *Executor) attempt(ctx context.Context, operationType string, action Action) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = e.baseDelay
	b.Multiplier = 2
	b.MaxElapsedTime = 0

	for attempt := 1; ; attempt++ {
		err := action(ctx)
		if err == nil {
			return nil
		}

		if IsPermanent(err) || attempt >= e.maxAttempts {
			return err
		}

		delay := b.NextBackOff()
		if advertised := retryAfter(err); advertised > 0 {
			delay = advertised
		}

		e.log.Warnw("action failed, retrying", "operationType", operationType,
			"attempt", attempt, "delay", delay, "error", err)

		select {
		case <-ctx.Done():
			return err
		case <-time.After(delay):
		}
	}
}
