package application

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/otcdex/otc-daemon/internal/core/domain"
)

func TestGuardSingleFlightPerOrder(t *testing.T) {
	t.Parallel()

	guard := NewActionGuard()

	require.NoError(t, guard.Begin("order-1", domain.ActionAccept))
	require.Equal(t, domain.ActionStatePending, guard.State("order-1"))

	// a second action of any kind on the same order is rejected
	require.ErrorIs(t, guard.Begin("order-1", domain.ActionCancel), ErrActionInFlight)

	// other orders are unaffected
	require.NoError(t, guard.Begin("order-2", domain.ActionAccept))
	require.Equal(t, 2, guard.PendingCount())

	guard.End("order-1", false)
	require.Equal(t, domain.ActionStateIdle, guard.State("order-1"))
	require.Equal(t, 1, guard.PendingCount())
}

func TestGuardErrorStateDoesNotBlockRetry(t *testing.T) {
	t.Parallel()

	guard := NewActionGuard()

	require.NoError(t, guard.Begin("order-1", domain.ActionConfirmPayment))
	guard.End("order-1", true)
	require.Equal(t, domain.ActionStateError, guard.State("order-1"))

	// the error marker is informational, a retry goes through
	require.NoError(t, guard.Begin("order-1", domain.ActionConfirmPayment))
	require.Equal(t, domain.ActionStatePending, guard.State("order-1"))
}

func TestGuardDirtyWindow(t *testing.T) {
	t.Parallel()

	guard := NewActionGuard()
	beforeAction := time.Now()

	require.NoError(t, guard.Begin("order-1", domain.ActionRequestPayment))

	// while pending every snapshot is stale for this order
	require.True(t, guard.IsDirty("order-1", beforeAction))
	require.True(t, guard.IsDirty("order-1", time.Now()))
	require.False(t, guard.IsDirty("order-2", beforeAction))

	guard.End("order-1", false)

	// settled: a snapshot fetched before the action began is still stale,
	// one fetched after it reflects the mutation
	require.True(t, guard.IsDirty("order-1", beforeAction))
	require.False(t, guard.IsDirty("order-1", time.Now()))
}

func TestGuardClearSettled(t *testing.T) {
	t.Parallel()

	guard := NewActionGuard()
	beforeAction := time.Now()

	require.NoError(t, guard.Begin("order-1", domain.ActionAccept))
	require.NoError(t, guard.Begin("order-2", domain.ActionAccept))
	guard.End("order-1", false)

	guard.ClearSettled()

	// the settled order lost its dirty window, the pending one kept it
	require.False(t, guard.IsDirty("order-1", beforeAction))
	require.True(t, guard.IsDirty("order-2", beforeAction))
	require.Equal(t, 1, guard.PendingCount())
}
