package storage

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWithRetryRecoversFromTransientFailure(t *testing.T) {
	attempts := 0
	err := withRetry(context.Background(), "load", func() error {
		attempts++
		if attempts < 2 {
			return fmt.Errorf("connection reset")
		}
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 2, attempts)
}

func TestWithRetryBoundedAttempts(t *testing.T) {
	attempts := 0
	cause := fmt.Errorf("connection reset")
	err := withRetry(context.Background(), "load", func() error {
		attempts++
		return cause
	})
	require.Equal(t, retryAttempts, attempts)

	var serr *StoreError
	require.ErrorAs(t, err, &serr)
	require.Equal(t, "load", serr.Op)
	require.ErrorIs(t, err, cause)
}

func TestWithRetryStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	attempts := 0
	start := time.Now()
	err := withRetry(ctx, "load", func() error {
		attempts++
		return fmt.Errorf("connection reset")
	})
	require.Less(t, time.Since(start), retryBase)
	require.Equal(t, 1, attempts)
	require.ErrorIs(t, err, context.Canceled)
}

func TestStoreErrorFormatting(t *testing.T) {
	cause := errors.New("duplicate key")
	err := &StoreError{Op: "save_session", Err: cause}
	require.Equal(t, "storage: save_session: duplicate key", err.Error())
	require.ErrorIs(t, err, cause)
}
