package inmemory

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/otcdex/otc-daemon/internal/core/domain"
)

func TestConfirmationRepository(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewConfirmationRepositoryImpl()

	first := domain.NewPendingConfirmation(
		"order-1", domain.ActionRequestPayment, "0xaaa", "key-1",
		decimal.NewFromInt(140000),
	)
	second := domain.NewPendingConfirmation(
		"order-2", domain.ActionConfirmPayment, "0xbbb", "key-2",
		decimal.NewFromInt(70000),
	)
	second.CreatedAt = first.CreatedAt.Add(time.Second)

	require.NoError(t, repo.AddConfirmation(ctx, first))
	require.NoError(t, repo.AddConfirmation(ctx, second))
	// re-adding the same id is a no-op
	require.NoError(t, repo.AddConfirmation(ctx, first))

	all, err := repo.GetAllConfirmations(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, first.ID, all[0].ID)
	require.Equal(t, second.ID, all[1].ID)

	// both are due right away, a backoff pushes one out of the due set
	due, err := repo.GetDueConfirmations(ctx)
	require.NoError(t, err)
	require.Len(t, due, 2)

	second.MarkAttempt(time.Now(), time.Minute, time.Hour)
	require.NoError(t, repo.UpdateConfirmation(ctx, second))

	due, err = repo.GetDueConfirmations(ctx)
	require.NoError(t, err)
	require.Len(t, due, 1)
	require.Equal(t, first.ID, due[0].ID)

	require.NoError(t, repo.DeleteConfirmation(ctx, first.ID))
	require.ErrorIs(t,
		repo.DeleteConfirmation(ctx, first.ID), domain.ErrConfirmationNotFound,
	)
	require.ErrorIs(t,
		repo.UpdateConfirmation(ctx, first), domain.ErrConfirmationNotFound,
	)
}

func TestOrderCacheRepository(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewOrderCacheRepositoryImpl()

	_, err := repo.GetOrder(ctx, "missing")
	require.ErrorIs(t, err, domain.ErrOrderNotFound)

	orders := []*domain.Order{
		{ID: "o1", Status: domain.OrderStatusOrdered},
		{ID: "o2", Status: domain.OrderStatusAccepted},
	}
	require.NoError(t, repo.ReplaceFeed(ctx, orders, &domain.OrderStats{TotalCount: 2}))

	got, err := repo.GetOrder(ctx, "o2")
	require.NoError(t, err)
	require.Equal(t, domain.OrderStatusAccepted, got.Status)

	all, err := repo.GetAllOrders(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	// feed order is preserved
	require.Equal(t, "o1", all[0].ID)

	feedStats, err := repo.GetStats(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, feedStats.TotalCount)

	// a replace drops rows missing from the new page
	require.NoError(t, repo.ReplaceFeed(
		ctx, []*domain.Order{{ID: "o3"}}, &domain.OrderStats{TotalCount: 1},
	))
	_, err = repo.GetOrder(ctx, "o1")
	require.ErrorIs(t, err, domain.ErrOrderNotFound)
}
