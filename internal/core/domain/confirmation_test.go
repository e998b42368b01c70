package domain_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/otcdex/otc-daemon/internal/core/domain"
)

func TestNewPendingConfirmation(t *testing.T) {
	t.Parallel()

	confirmation := domain.NewPendingConfirmation(
		"order-1", domain.ActionRequestPayment, "0xabc123", "key-1",
		decimal.NewFromInt(140000),
	)

	require.NotEmpty(t, confirmation.ID)
	require.Equal(t, "order-1", confirmation.OrderID)
	require.Zero(t, confirmation.Attempts)
	require.True(t, confirmation.IsDue(time.Now()))
}

func TestMarkAttemptBacksOffExponentially(t *testing.T) {
	t.Parallel()

	confirmation := domain.NewPendingConfirmation(
		"order-1", domain.ActionConfirmPayment, "0xabc123", "key-1",
		decimal.NewFromInt(140000),
	)

	now := time.Now()
	base, max := 5*time.Second, time.Minute

	confirmation.MarkAttempt(now, base, max)
	require.Equal(t, 1, confirmation.Attempts)
	require.Equal(t, now.Add(5*time.Second), confirmation.NextAttemptAt)
	require.False(t, confirmation.IsDue(now))

	confirmation.MarkAttempt(now, base, max)
	require.Equal(t, now.Add(10*time.Second), confirmation.NextAttemptAt)

	confirmation.MarkAttempt(now, base, max)
	require.Equal(t, now.Add(20*time.Second), confirmation.NextAttemptAt)

	// the backoff saturates at max instead of growing unbounded
	for i := 0; i < 10; i++ {
		confirmation.MarkAttempt(now, base, max)
	}
	require.Equal(t, now.Add(max), confirmation.NextAttemptAt)
	require.True(t, confirmation.IsDue(now.Add(max)))
}
