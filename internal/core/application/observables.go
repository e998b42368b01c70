package application

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/otcdex/otc-daemon/internal/core/domain"
	"github.com/otcdex/otc-daemon/internal/core/ports"
	"github.com/otcdex/otc-daemon/pkg/chain"
	"github.com/otcdex/otc-daemon/pkg/poller"
)

const observeTimeout = 15 * time.Second

// FeedEvent carries one polled feed snapshot.
type FeedEvent struct {
	Orders    []*domain.Order
	Stats     *domain.OrderStats
	FetchedAt time.Time
}

func (e FeedEvent) Key() string { return "feed" }

// BalanceEvent carries one polled balance observation.
type BalanceEvent struct {
	Account string
	Asset   string
	Amount  decimal.Decimal
}

func (e BalanceEvent) Key() string { return "balance:" + e.Account }

// EscrowBalanceEvent carries the two-step escrow observation: the on-chain
// token balance plus the backend-reported native gas balance.
type EscrowBalanceEvent struct {
	Address      string
	TokenBalance decimal.Decimal
	GasBalance   decimal.Decimal
}

func (e EscrowBalanceEvent) Key() string { return "balance:escrow" }

// FeedObservable polls the order-listing endpoint with the feed service's
// current filter set.
type FeedObservable struct {
	BackendSvc ports.BackendService
	FeedSvc    *FeedService
	IntervalMs int
}

func (o *FeedObservable) Key() string   { return "feed" }
func (o *FeedObservable) Interval() int { return o.IntervalMs }

func (o *FeedObservable) Observe() (poller.Event, error) {
	ctx, cancel := context.WithTimeout(context.Background(), observeTimeout)
	defer cancel()

	fetchedAt := time.Now()
	orders, feedStats, err := o.BackendSvc.Orders().GetAllBuyOrders(
		ctx, o.FeedSvc.Filters(),
	)
	if err != nil {
		return nil, fmt.Errorf("feed observable: %w", err)
	}
	return FeedEvent{Orders: orders, Stats: feedStats, FetchedAt: fetchedAt}, nil
}

// TokenBalanceObservable polls one token balance of one address.
type TokenBalanceObservable struct {
	WalletSvc     ports.WalletService
	Network       chain.Network
	TokenContract string
	Asset         string
	Address       string
	Account       string
	IntervalMs    int
}

func (o *TokenBalanceObservable) Key() string   { return "balance:" + o.Account }
func (o *TokenBalanceObservable) Interval() int { return o.IntervalMs }

func (o *TokenBalanceObservable) Observe() (poller.Event, error) {
	if o.Address == "" {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), observeTimeout)
	defer cancel()

	balance, err := o.WalletSvc.TokenBalance(
		ctx, o.Network, o.TokenContract, o.Address,
	)
	if err != nil {
		return nil, fmt.Errorf("balance observable %s: %w", o.Account, err)
	}
	return BalanceEvent{Account: o.Account, Asset: o.Asset, Amount: balance}, nil
}

// EscrowBalanceObservable polls the escrow wallet in two steps: the token
// balance on-chain and the native gas balance as reported by the backend.
type EscrowBalanceObservable struct {
	WalletSvc  ports.WalletService
	BackendSvc ports.BackendService
	Network    chain.Network
	Address    string
	IntervalMs int
}

func (o *EscrowBalanceObservable) Key() string   { return "balance:escrow" }
func (o *EscrowBalanceObservable) Interval() int { return o.IntervalMs }

func (o *EscrowBalanceObservable) Observe() (poller.Event, error) {
	if o.Address == "" {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), observeTimeout)
	defer cancel()

	tokenBalance, err := o.WalletSvc.TokenBalance(
		ctx, o.Network, o.Network.USDTContract, o.Address,
	)
	if err != nil {
		return nil, fmt.Errorf("escrow balance observable: %w", err)
	}
	gasBalance, err := o.BackendSvc.Orders().GetEscrowGasBalance(ctx, o.Address)
	if err != nil {
		return nil, fmt.Errorf("escrow gas observable: %w", err)
	}
	return EscrowBalanceEvent{
		Address:      o.Address,
		TokenBalance: tokenBalance,
		GasBalance:   gasBalance,
	}, nil
}
