package dbbadger

import (
	"context"
	"time"

	"github.com/timshannon/badgerhold/v4"

	"github.com/otcdex/otc-daemon/internal/core/domain"
)

type confirmationRepositoryImpl struct {
	store *badgerhold.Store
}

// NewConfirmationRepositoryImpl initialize a badger implementation of the
// domain.ConfirmationJournalRepository
func NewConfirmationRepositoryImpl(
	store *badgerhold.Store,
) domain.ConfirmationJournalRepository {
	return confirmationRepositoryImpl{store}
}

func (c confirmationRepositoryImpl) AddConfirmation(
	ctx context.Context, confirmation *domain.PendingConfirmation,
) error {
	if err := c.store.Insert(confirmation.ID, confirmation); err != nil {
		if err == badgerhold.ErrKeyExists {
			return nil
		}
		return err
	}
	return nil
}

func (c confirmationRepositoryImpl) GetAllConfirmations(
	ctx context.Context,
) ([]*domain.PendingConfirmation, error) {
	query := &badgerhold.Query{}
	return c.findConfirmations(query)
}

func (c confirmationRepositoryImpl) GetDueConfirmations(
	ctx context.Context,
) ([]*domain.PendingConfirmation, error) {
	query := badgerhold.Where("NextAttemptAt").Le(time.Now())
	return c.findConfirmations(query)
}

func (c confirmationRepositoryImpl) UpdateConfirmation(
	ctx context.Context, confirmation *domain.PendingConfirmation,
) error {
	return c.store.Update(confirmation.ID, confirmation)
}

func (c confirmationRepositoryImpl) DeleteConfirmation(
	ctx context.Context, id string,
) error {
	var confirmation domain.PendingConfirmation
	if err := c.store.Delete(id, &confirmation); err != nil {
		if err == badgerhold.ErrNotFound {
			return domain.ErrConfirmationNotFound
		}
		return err
	}
	return nil
}

func (c confirmationRepositoryImpl) findConfirmations(
	query *badgerhold.Query,
) ([]*domain.PendingConfirmation, error) {
	var confirmations []*domain.PendingConfirmation

	query.SortBy("CreatedAt")
	if err := c.store.Find(&confirmations, query); err != nil {
		return nil, err
	}

	return confirmations, nil
}
