package utils_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/encomendas/tracking-service/pkg/utils"

	"github.com/stretchr/testify/assert"
)

func TestRetry(t *testing.T) {
	cfg := utils.RetryConfig{
		MaxAttempts:  3,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2,
	}

	t.Run("succeeds after transient failures", func(t *testing.T) {
		calls := 0
		err := utils.Retry(cfg, func() error {
			calls++
			if calls < 3 {
				return errors.New("temporary")
			}
			return nil
		})

		assert.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("gives up after max attempts", func(t *testing.T) {
		calls := 0
		wantErr := errors.New("still broken")
		err := utils.Retry(cfg, func() error {
			calls++
			return wantErr
		})

		assert.ErrorIs(t, err, wantErr)
		assert.Equal(t, 3, calls)
	})

	t.Run("permanent errors short-circuit", func(t *testing.T) {
		permanent := errors.New("permanent")
		calls := 0
		err := utils.Retry(cfg, func() error {
			calls++
			return fmt.Errorf("wrapped: %w", permanent)
		}, permanent)

		assert.ErrorIs(t, err, permanent)
		assert.Equal(t, 1, calls)
	})
}
