package application

import (
	"context"
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/otcdex/otc-daemon/internal/core/domain"
	"github.com/otcdex/otc-daemon/internal/core/ports"
	"github.com/otcdex/otc-daemon/pkg/stats"
)

// FeedService reconciles the periodic order feed against the local cache.
// Every snapshot replaces the cache wholesale; the only rows spared are
// those inside a dirty window, where an action is still in flight or
// settled after the snapshot's fetch started. A forced refresh after a
// successful mutation always wins and clears the windows.
type FeedService struct {
	backendSvc  ports.BackendService
	repo        domain.OrderCacheRepository
	guard       *ActionGuard
	tradeExpiry time.Duration

	filtersMtx sync.RWMutex
	filters    ports.FeedFilters
}

func NewFeedService(
	backendSvc ports.BackendService,
	repo domain.OrderCacheRepository,
	guard *ActionGuard,
	filters ports.FeedFilters,
	tradeExpiry time.Duration,
) *FeedService {
	return &FeedService{
		backendSvc:  backendSvc,
		repo:        repo,
		guard:       guard,
		tradeExpiry: tradeExpiry,
		filters:     filters,
	}
}

// Filters returns the current filter set POSTed on every poll.
func (s *FeedService) Filters() ports.FeedFilters {
	s.filtersMtx.RLock()
	defer s.filtersMtx.RUnlock()
	return s.filters
}

// SetFilters swaps the filter set; the next tick picks it up.
func (s *FeedService) SetFilters(filters ports.FeedFilters) {
	s.filtersMtx.Lock()
	defer s.filtersMtx.Unlock()
	s.filters = filters
}

// FetchOnce pulls the feed immediately and replaces the cache wholesale.
// Called after every successful mutation to re-sync with authoritative
// state, discarding any optimistic leftovers.
func (s *FeedService) FetchOnce(ctx context.Context) error {
	orders, feedStats, err := s.backendSvc.Orders().GetAllBuyOrders(ctx, s.Filters())
	if err != nil {
		return fmt.Errorf("fetch feed: %w", err)
	}

	if err := s.repo.ReplaceFeed(ctx, orders, feedStats); err != nil {
		return err
	}
	s.guard.ClearSettled()
	return nil
}

// ApplyFeed merges a polled snapshot into the cache. Rows whose order id is
// dirty relative to the snapshot's fetch time keep their cached version;
// dirty cached rows missing from the snapshot are retained so an in-flight
// action never loses its subject mid-mutation.
func (s *FeedService) ApplyFeed(
	ctx context.Context,
	orders []*domain.Order, feedStats *domain.OrderStats, fetchedAt time.Time,
) error {
	stats.FeedPolls.Inc()

	merged := make([]*domain.Order, 0, len(orders))
	seen := make(map[string]struct{}, len(orders))

	for _, order := range orders {
		seen[order.ID] = struct{}{}
		if s.guard.IsDirty(order.ID, fetchedAt) {
			if cached, err := s.repo.GetOrder(ctx, order.ID); err == nil {
				log.WithField("order", order.ID).
					Debug("feed: keeping dirty row over polled snapshot")
				merged = append(merged, cached)
				continue
			}
		}
		merged = append(merged, order)
	}

	cached, err := s.repo.GetAllOrders(ctx)
	if err != nil {
		return err
	}
	for _, order := range cached {
		if _, ok := seen[order.ID]; ok {
			continue
		}
		if s.guard.IsDirty(order.ID, fetchedAt) {
			merged = append(merged, order)
		}
	}

	if s.tradeExpiry > 0 {
		for _, order := range merged {
			if order.Status == domain.OrderStatusAccepted &&
				order.IsExpired(fetchedAt, s.tradeExpiry) {
				log.WithField("order", order.ID).
					Warn("feed: accepted trade passed its expiry window without payment")
			}
		}
	}

	return s.repo.ReplaceFeed(ctx, merged, feedStats)
}

// Orders returns the cached feed page.
func (s *FeedService) Orders(ctx context.Context) ([]*domain.Order, error) {
	return s.repo.GetAllOrders(ctx)
}

// Order returns one cached order by id.
func (s *FeedService) Order(ctx context.Context, orderID string) (*domain.Order, error) {
	return s.repo.GetOrder(ctx, orderID)
}

// Stats returns the cached aggregate statistics block.
func (s *FeedService) Stats(ctx context.Context) (*domain.OrderStats, error) {
	return s.repo.GetStats(ctx)
}
