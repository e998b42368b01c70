package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/otcdex/otc-daemon/internal/core/domain"
)

func TestApplyFeedKeepsDirtyRows(t *testing.T) {
	t.Parallel()

	cachedDirty := newTestOrder(domain.OrderStatusAccepted)
	cachedClean := newTestOrder(domain.OrderStatusOrdered)
	stack := newTestStack(t, &mockOrderClient{}, &mockWalletService{}, cachedDirty, cachedClean)

	fetchedAt := time.Now()
	require.NoError(t, stack.guard.Begin(cachedDirty.ID, domain.ActionRequestPayment))

	// the snapshot claims both orders moved back to ordered
	snapDirty := *cachedDirty
	snapDirty.Status = domain.OrderStatusOrdered
	snapClean := *cachedClean
	snapClean.Status = domain.OrderStatusAccepted

	err := stack.feedSvc.ApplyFeed(
		context.Background(),
		[]*domain.Order{&snapDirty, &snapClean},
		&domain.OrderStats{TotalCount: 2},
		fetchedAt,
	)
	require.NoError(t, err)

	got, err := stack.feedSvc.Order(context.Background(), cachedDirty.ID)
	require.NoError(t, err)
	require.Equal(t, domain.OrderStatusAccepted, got.Status)

	got, err = stack.feedSvc.Order(context.Background(), cachedClean.ID)
	require.NoError(t, err)
	require.Equal(t, domain.OrderStatusAccepted, got.Status)
}

func TestApplyFeedRetainsDirtyRowMissingFromSnapshot(t *testing.T) {
	t.Parallel()

	cached := newTestOrder(domain.OrderStatusAccepted)
	stack := newTestStack(t, &mockOrderClient{}, &mockWalletService{}, cached)

	fetchedAt := time.Now()
	require.NoError(t, stack.guard.Begin(cached.ID, domain.ActionConfirmPayment))

	err := stack.feedSvc.ApplyFeed(
		context.Background(), nil, &domain.OrderStats{}, fetchedAt,
	)
	require.NoError(t, err)

	// the in-flight order survived the empty snapshot
	got, err := stack.feedSvc.Order(context.Background(), cached.ID)
	require.NoError(t, err)
	require.Equal(t, cached.ID, got.ID)
}

func TestApplyFeedDropsSettledRowMissingFromSnapshot(t *testing.T) {
	t.Parallel()

	cached := newTestOrder(domain.OrderStatusAccepted)
	stack := newTestStack(t, &mockOrderClient{}, &mockWalletService{}, cached)

	err := stack.feedSvc.ApplyFeed(
		context.Background(), nil, &domain.OrderStats{}, time.Now(),
	)
	require.NoError(t, err)

	_, err = stack.feedSvc.Order(context.Background(), cached.ID)
	require.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestFetchOnceReplacesWholesale(t *testing.T) {
	t.Parallel()

	stale := newTestOrder(domain.OrderStatusOrdered)
	fresh := newTestOrder(domain.OrderStatusAccepted)

	orderClient := &mockOrderClient{}
	orderClient.
		On("GetAllBuyOrders", mock.Anything, mock.Anything).
		Return([]*domain.Order{fresh}, &domain.OrderStats{TotalCount: 1}, nil)

	stack := newTestStack(t, orderClient, &mockWalletService{}, stale)

	// even a settled dirty window does not survive the forced refresh
	require.NoError(t, stack.guard.Begin(stale.ID, domain.ActionCancel))
	stack.guard.End(stale.ID, false)

	require.NoError(t, stack.feedSvc.FetchOnce(context.Background()))

	orders, err := stack.feedSvc.Orders(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.Equal(t, fresh.ID, orders[0].ID)

	require.False(t, stack.guard.IsDirty(stale.ID, time.Time{}))
	orderClient.AssertExpectations(t)
}
