//go:build unit

package lock_test

import (
	"context"
	"testing"

	"commons-dinner/internal/domain/job"
	"commons-dinner/internal/infra/lock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalLocker(t *testing.T) {
	ctx := context.Background()
	l := lock.NewLocalLocker()

	release, err := l.Acquire(ctx, job.TypeMonthlyBilling)
	require.NoError(t, err)

	_, err = l.Acquire(ctx, job.TypeMonthlyBilling)
	assert.ErrorIs(t, err, job.ErrJobAlreadyRunning)

	other, err := l.Acquire(ctx, job.TypeDailyMaintenance)
	require.NoError(t, err, "different job types do not block each other")
	other()

	release()
	release()

	again, err := l.Acquire(ctx, job.TypeMonthlyBilling)
	require.NoError(t, err)
	again()
}
