package application

import "errors"

var (
	// ErrActionInFlight is returned when an order already has a pending
	// action; the new submission is a no-op.
	ErrActionInFlight = errors.New("another action is in flight for this order")
	// ErrEscrowBusy is returned when a different order is mid-escrow; only
	// one transfer sequence runs at a time.
	ErrEscrowBusy = errors.New("another order is currently escrowing")
	// ErrInsufficientBalance ...
	ErrInsufficientBalance = errors.New("wallet balance is lower than the requested amount")
	// ErrInvalidAmount ...
	ErrInvalidAmount = errors.New("amount must be a positive number")
	// ErrInvalidWalletAddress ...
	ErrInvalidWalletAddress = errors.New("malformed wallet address")
	// ErrMissingBankInfo ...
	ErrMissingBankInfo = errors.New("seller bank info is missing or incomplete")
	// ErrOrderNotActionable is returned when the cached order status does not
	// allow the requested transition. The backend remains the judge; this
	// only saves a pointless signature.
	ErrOrderNotActionable = errors.New("order status does not allow this action")
	// ErrNotOrderSeller ...
	ErrNotOrderSeller = errors.New("order is assigned to a different seller")
	// ErrMissingEscrowWallet ...
	ErrMissingEscrowWallet = errors.New("order has no escrow wallet attached")
	// ErrTransferReverted ...
	ErrTransferReverted = errors.New("on-chain transfer was included but reverted")
)
