package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/otcdex/otc-daemon/pkg/chain"
)

// WalletService wraps the external signer daemon holding the seller's key.
// Connection handling, signing prompts and key custody live behind this
// port; a rejected signature surfaces as a plain error. The network is an
// explicit parameter on every call.
type WalletService interface {
	// Address returns the active account address.
	Address(ctx context.Context) (string, error)
	// TokenBalance returns the balance of the given token contract for the
	// address, scaled to token units.
	TokenBalance(
		ctx context.Context, network chain.Network, tokenContract, address string,
	) (decimal.Decimal, error)
	// NativeBalance returns the gas-token balance for the address.
	NativeBalance(
		ctx context.Context, network chain.Network, address string,
	) (decimal.Decimal, error)
	// CreateTransfer builds an unsigned token-transfer transaction.
	CreateTransfer(
		ctx context.Context, network chain.Network, tokenContract, to string,
		amount decimal.Decimal,
	) (string, error)
	// SignTransaction submits the transaction for signature. The call may
	// suspend until the signer approves or rejects.
	SignTransaction(
		ctx context.Context, network chain.Network, unsignedTx string,
	) (string, error)
	// BroadcastTransaction sends the signed transaction and returns its
	// hash as soon as the network accepted it.
	BroadcastTransaction(
		ctx context.Context, network chain.Network, signedTx string,
	) (string, error)
	// WaitForReceipt blocks until the transaction is confirmed or the
	// context expires.
	WaitForReceipt(
		ctx context.Context, network chain.Network, txHash string,
	) (*TxReceipt, error)
	Close()
}

// TxReceipt is the confirmation of a broadcast transaction.
type TxReceipt struct {
	TxHash      string `json:"txHash"`
	BlockNumber uint64 `json:"blockNumber"`
	Success     bool   `json:"success"`
}
