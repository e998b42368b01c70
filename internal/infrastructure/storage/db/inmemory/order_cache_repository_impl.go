package inmemory

import (
	"context"
	"sync"

	"github.com/otcdex/otc-daemon/internal/core/domain"
)

type orderCacheInmemoryStore struct {
	orders []*domain.Order
	byID   map[string]*domain.Order
	stats  *domain.OrderStats
	locker *sync.RWMutex
}

type OrderCacheRepositoryImpl struct {
	store *orderCacheInmemoryStore
}

// NewOrderCacheRepositoryImpl returns a new empty OrderCacheRepositoryImpl
func NewOrderCacheRepositoryImpl() domain.OrderCacheRepository {
	return &OrderCacheRepositoryImpl{
		store: &orderCacheInmemoryStore{
			byID:   map[string]*domain.Order{},
			locker: &sync.RWMutex{},
		},
	}
}

func (r OrderCacheRepositoryImpl) ReplaceFeed(
	ctx context.Context,
	orders []*domain.Order,
	stats *domain.OrderStats,
) error {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	byID := make(map[string]*domain.Order, len(orders))
	for _, o := range orders {
		byID[o.ID] = o
	}

	r.store.orders = orders
	r.store.byID = byID
	r.store.stats = stats
	return nil
}

func (r OrderCacheRepositoryImpl) GetOrder(
	ctx context.Context,
	orderID string,
) (*domain.Order, error) {
	r.store.locker.RLock()
	defer r.store.locker.RUnlock()

	order, ok := r.store.byID[orderID]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	return order, nil
}

func (r OrderCacheRepositoryImpl) GetAllOrders(
	ctx context.Context,
) ([]*domain.Order, error) {
	r.store.locker.RLock()
	defer r.store.locker.RUnlock()

	orders := make([]*domain.Order, len(r.store.orders))
	copy(orders, r.store.orders)

	return orders, nil
}

func (r OrderCacheRepositoryImpl) GetStats(
	ctx context.Context,
) (*domain.OrderStats, error) {
	r.store.locker.RLock()
	defer r.store.locker.RUnlock()

	return r.store.stats, nil
}
