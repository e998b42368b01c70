package inmemory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/otcdex/otc-daemon/internal/core/domain"
)

type confirmationInmemoryStore struct {
	confirmations map[string]*domain.PendingConfirmation
	locker        *sync.RWMutex
}

type ConfirmationRepositoryImpl struct {
	store *confirmationInmemoryStore
}

// NewConfirmationRepositoryImpl returns a new empty ConfirmationRepositoryImpl
func NewConfirmationRepositoryImpl() domain.ConfirmationJournalRepository {
	return &ConfirmationRepositoryImpl{
		store: &confirmationInmemoryStore{
			confirmations: map[string]*domain.PendingConfirmation{},
			locker:        &sync.RWMutex{},
		},
	}
}

func (r ConfirmationRepositoryImpl) AddConfirmation(
	ctx context.Context,
	confirmation *domain.PendingConfirmation,
) error {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	if _, ok := r.store.confirmations[confirmation.ID]; !ok {
		r.store.confirmations[confirmation.ID] = confirmation
	}
	return nil
}

func (r ConfirmationRepositoryImpl) GetAllConfirmations(
	ctx context.Context,
) ([]*domain.PendingConfirmation, error) {
	r.store.locker.RLock()
	defer r.store.locker.RUnlock()

	confirmations := make([]*domain.PendingConfirmation, 0, len(r.store.confirmations))
	for _, c := range r.store.confirmations {
		confirmations = append(confirmations, c)
	}
	sortByCreation(confirmations)

	return confirmations, nil
}

func (r ConfirmationRepositoryImpl) GetDueConfirmations(
	ctx context.Context,
) ([]*domain.PendingConfirmation, error) {
	r.store.locker.RLock()
	defer r.store.locker.RUnlock()

	now := time.Now()
	confirmations := make([]*domain.PendingConfirmation, 0, len(r.store.confirmations))
	for _, c := range r.store.confirmations {
		if c.IsDue(now) {
			confirmations = append(confirmations, c)
		}
	}
	sortByCreation(confirmations)

	return confirmations, nil
}

func (r ConfirmationRepositoryImpl) UpdateConfirmation(
	ctx context.Context,
	confirmation *domain.PendingConfirmation,
) error {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	if _, ok := r.store.confirmations[confirmation.ID]; !ok {
		return domain.ErrConfirmationNotFound
	}
	r.store.confirmations[confirmation.ID] = confirmation
	return nil
}

func (r ConfirmationRepositoryImpl) DeleteConfirmation(
	ctx context.Context,
	id string,
) error {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	if _, ok := r.store.confirmations[id]; !ok {
		return domain.ErrConfirmationNotFound
	}
	delete(r.store.confirmations, id)
	return nil
}

func sortByCreation(confirmations []*domain.PendingConfirmation) {
	sort.Slice(confirmations, func(i, j int) bool {
		return confirmations[i].CreatedAt.Before(confirmations[j].CreatedAt)
	})
}
