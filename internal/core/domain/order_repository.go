package domain

import "context"

// OrderCacheRepository holds the last authoritative feed snapshot pulled
// from the backend. The cache is replaced wholesale on every refresh, never
// merged field by field; rows inside a dirty window are the only exception
// and are handled by the caller.
type OrderCacheRepository interface {
	// ReplaceFeed swaps the whole cached page and stats block.
	ReplaceFeed(ctx context.Context, orders []*Order, stats *OrderStats) error
	// GetOrder returns the cached order with the given id, or
	// ErrOrderNotFound.
	GetOrder(ctx context.Context, orderID string) (*Order, error)
	// GetAllOrders returns the cached page in feed order.
	GetAllOrders(ctx context.Context) ([]*Order, error)
	// GetStats returns the cached aggregate statistics block.
	GetStats(ctx context.Context) (*OrderStats, error)
}

// ConfirmationJournalRepository persists pending backend recordings across
// restarts so a transfer that succeeded on-chain is never silently
// forgotten.
type ConfirmationJournalRepository interface {
	AddConfirmation(ctx context.Context, confirmation *PendingConfirmation) error
	GetAllConfirmations(ctx context.Context) ([]*PendingConfirmation, error)
	GetDueConfirmations(ctx context.Context) ([]*PendingConfirmation, error)
	UpdateConfirmation(ctx context.Context, confirmation *PendingConfirmation) error
	DeleteConfirmation(ctx context.Context, id string) error
}
