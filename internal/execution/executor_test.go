package execution

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestExecutor() *Executor {
	e := NewExecutor(zap.NewNop().Sugar())
	e.baseDelay = time.Millisecond
	return e
}

func TestExecutor_Success(t *testing.T) {
	e := newTestExecutor()

	calls := 0
	err := e.Do(context.Background(), "BAN", func(ctx context.Context) error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestExecutor_PermanentFailureNotRetried(t *testing.T) {
	e := newTestExecutor()

	calls := 0
	cause := errors.New("missing permissions")
	err := e.Do(context.Background(), "BAN", func(ctx context.Context) error {
		calls++
		return Permanent(cause)
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, 1, calls)
}

func TestExecutor_TransientFailureRetried(t *testing.T) {
	e := newTestExecutor()

	calls := 0
	err := e.Do(context.Background(), "BAN", func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("connection reset")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestExecutor_RetriesExhausted(t *testing.T) {
	e := newTestExecutor()

	calls := 0
	cause := errors.New("connection reset")
	err := e.Do(context.Background(), "BAN", func(ctx context.Context) error {
		calls++
		return cause
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, 3, calls)
}

func TestExecutor_RateLimitedWaitRespected(t *testing.T) {
	e := newTestExecutor()

	calls := 0
	start := time.Now()
	err := e.Do(context.Background(), "BAN", func(ctx context.Context) error {
		calls++
		if calls == 1 {
			return RateLimited(errors.New("too many requests"), 50*time.Millisecond)
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
}

func TestExecutor_ContextCancelledDuringBackoff(t *testing.T) {
	e := newTestExecutor()
	e.baseDelay = 10 * time.Second

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	calls := 0
	cause := errors.New("connection reset")
	start := time.Now()
	err := e.Do(ctx, "BAN", func(ctx context.Context) error {
		calls++
		return cause
	})

	require.ErrorIs(t, err, cause)
	assert.Equal(t, 1, calls)
	assert.Less(t, time.Since(start), time.Second)
}

func TestExecutor_BreakerOpensAfterConsecutiveFailures(t *testing.T) {
	e := newTestExecutor()

	cause := Permanent(errors.New("missing permissions"))
	for i := 0; i < 5; i++ {
		err := e.Do(context.Background(), "BAN", func(ctx context.Context) error {
			return cause
		})
		require.NotErrorIs(t, err, CircuitOpenError)
	}

	calls := 0
	err := e.Do(context.Background(), "BAN", func(ctx context.Context) error {
		calls++
		return nil
	})

	require.ErrorIs(t, err, CircuitOpenError)
	assert.Equal(t, 0, calls)
}

func TestExecutor_BreakerIsolatedPerOperationType(t *testing.T) {
	e := newTestExecutor()

	cause := Permanent(errors.New("missing permissions"))
	for i := 0; i < 5; i++ {
		_ = e.Do(context.Background(), "BAN", func(ctx context.Context) error {
			return cause
		})
	}

	err := e.Do(context.Background(), "BAN", func(ctx context.Context) error {
		return nil
	})
	require.ErrorIs(t, err, CircuitOpenError)

	kicks := 0
	err = e.Do(context.Background(), "KICK", func(ctx context.Context) error {
		kicks++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, kicks)
}

func TestExecutor_RetriedCallCountsOnceAgainstBreaker(t *testing.T) {
	e := newTestExecutor()

	// Each call exhausts its 3 attempts. Only whole calls count towards the
	// failure streak, so the breaker stays closed until the 5th call.
	cause := errors.New("connection reset")
	calls := 0
	for i := 0; i < 4; i++ {
		err := e.Do(context.Background(), "BAN", func(ctx context.Context) error {
			calls++
			return cause
		})
		require.NotErrorIs(t, err, CircuitOpenError)
	}
	assert.Equal(t, 12, calls)

	err := e.Do(context.Background(), "BAN", func(ctx context.Context) error {
		calls++
		return cause
	})
	require.NotErrorIs(t, err, CircuitOpenError)
	assert.Equal(t, 15, calls)

	err = e.Do(context.Background(), "BAN", func(ctx context.Context) error {
		calls++
		return nil
	})
	require.ErrorIs(t, err, CircuitOpenError)
	assert.Equal(t, 15, calls)
}

func TestExecutor_BreakerRecovers(t *testing.T) {
	e := newTestExecutor()
	e.recoveryTimeout = 50 * time.Millisecond

	cause := Permanent(errors.New("missing permissions"))
	for i := 0; i < 5; i++ {
		_ = e.Do(context.Background(), "BAN", func(ctx context.Context) error {
			return cause
		})
	}

	err := e.Do(context.Background(), "BAN", func(ctx context.Context) error {
		return nil
	})
	require.ErrorIs(t, err, CircuitOpenError)

	time.Sleep(75 * time.Millisecond)

	calls := 0
	err = e.Do(context.Background(), "BAN", func(ctx context.Context) error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	err = e.Do(context.Background(), "BAN", func(ctx context.Context) error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestExecutor_SuccessResetsFailureStreak(t *testing.T) {
	e := newTestExecutor()

	cause := Permanent(errors.New("missing permissions"))
	fail := func(ctx context.Context) error {
		return cause
	}
	succeed := func(ctx context.Context) error {
		return nil
	}

	for i := 0; i < 4; i++ {
		_ = e.Do(context.Background(), "BAN", fail)
	}
	require.NoError(t, e.Do(context.Background(), "BAN", succeed))

	for i := 0; i < 4; i++ {
		err := e.Do(context.Background(), "BAN", fail)
		require.NotErrorIs(t, err, CircuitOpenError)
	}
}

func TestPermanent(t *testing.T) {
	cause := errors.New("unknown user")
	err := Permanent(cause)

	assert.True(t, IsPermanent(err))
	assert.True(t, IsPermanent(fmt.Errorf("banning member: %w", err)))
	assert.ErrorIs(t, err, cause)
	assert.False(t, IsPermanent(cause))
}

func TestRateLimited(t *testing.T) {
	cause := errors.New("too many requests")
	err := RateLimited(cause, 2*time.Second)

	assert.Equal(t, 2*time.Second, retryAfter(err))
	assert.Equal(t, 2*time.Second, retryAfter(fmt.Errorf("banning member: %w", err)))
	assert.ErrorIs(t, err, cause)
	assert.False(t, IsPermanent(err))
	assert.Equal(t, time.Duration(0), retryAfter(cause))
}
