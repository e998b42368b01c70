package application

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/otcdex/otc-daemon/internal/core/domain"
)

// Balance accounts tracked by the board.
const (
	BalanceWalletToken     = "wallet_token"
	BalanceWalletSecondary = "wallet_secondary"
	BalanceEscrowToken     = "escrow_token"
	BalanceEscrowGas       = "escrow_gas"
)

type balanceEntry struct {
	amount    decimal.Decimal
	updatedAt time.Time
}

// BalanceBoard holds the last observed balances and market rate. Writers are
// the poller observables; readers are the pre-flight validations of the
// order actions and the CLI. Each account is a single slot, last write wins,
// but a slot is only ever written by its own observable, whose ticks never
// overlap.
type BalanceBoard struct {
	mtx      sync.RWMutex
	balances map[string]balanceEntry
	rate     domain.RateQuote
}

func NewBalanceBoard() *BalanceBoard {
	return &BalanceBoard{balances: make(map[string]balanceEntry)}
}

// SetBalance stores the latest observation for the given account.
func (b *BalanceBoard) SetBalance(account string, amount decimal.Decimal) {
	b.mtx.Lock()
	defer b.mtx.Unlock()

	b.balances[account] = balanceEntry{amount: amount, updatedAt: time.Now()}
}

// Balance returns the last observed amount for the account and whether one
// was observed at all.
func (b *BalanceBoard) Balance(account string) (decimal.Decimal, bool) {
	b.mtx.RLock()
	defer b.mtx.RUnlock()

	entry, ok := b.balances[account]
	return entry.amount, ok
}

// SetRate stores the latest market rate quote.
func (b *BalanceBoard) SetRate(quote domain.RateQuote) {
	b.mtx.Lock()
	defer b.mtx.Unlock()

	b.rate = quote
}

// Rate returns the last market rate quote.
func (b *BalanceBoard) Rate() domain.RateQuote {
	b.mtx.RLock()
	defer b.mtx.RUnlock()

	return b.rate
}
