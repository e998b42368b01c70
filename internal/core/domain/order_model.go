package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// noEscrowHash is the placeholder the backend stores for orders whose escrow
// deposit never happened.
const noEscrowHash = "0x"

// BankInfo is the fiat payout coordinate attached to a seller snapshot.
type BankInfo struct {
	BankName      string `json:"bankName"`
	AccountNumber string `json:"accountNumber"`
	AccountHolder string `json:"accountHolder"`
}

// Buyer is the buyer-side party snapshot denormalized onto an order by the
// backend.
type Buyer struct {
	Nickname      string `json:"nickname"`
	DepositName   string `json:"depositName"`
	WalletAddress string `json:"walletAddress"`
}

// Seller is the seller-side party snapshot denormalized onto an order by the
// backend.
type Seller struct {
	Nickname      string          `json:"nickname"`
	WalletAddress string          `json:"walletAddress"`
	BankInfo      *BankInfo       `json:"bankInfo,omitempty"`
	Enabled       bool            `json:"enabled"`
	Rate          decimal.Decimal `json:"rate"`
}

// EscrowWallet is the custodial address holding USDT pending trade
// completion, managed by the backend.
type EscrowWallet struct {
	Address         string          `json:"address"`
	Balance         decimal.Decimal `json:"balance"`
	TransactionHash string          `json:"transactionHash"`
}

// SettlementSplit is one recipient share of a completed trade's proceeds.
type SettlementSplit struct {
	Recipient     string          `json:"recipient"`
	WalletAddress string          `json:"walletAddress"`
	Amount        decimal.Decimal `json:"amount"`
}

// Settlement describes how a confirmed trade's proceeds were distributed
// across platform and agent fee recipients.
type Settlement struct {
	Splits []SettlementSplit `json:"splits"`
	Txid   string            `json:"txid"`
}

// Order is the central entity, read-only for this layer. It is mutated only
// through backend calls and re-fetched afterwards; the backend response is
// always the source of truth.
type Order struct {
	ID      string      `json:"_id"`
	TradeID string      `json:"tradeId"`
	Status  OrderStatus `json:"status"`

	Buyer  *Buyer  `json:"buyer,omitempty"`
	Seller *Seller `json:"seller,omitempty"`

	UsdtAmount    decimal.Decimal `json:"usdtAmount"`
	KrwAmount     decimal.Decimal `json:"krwAmount"`
	Rate          decimal.Decimal `json:"rate"`
	PaymentAmount decimal.Decimal `json:"paymentAmount"`
	AgentFeeRate  decimal.Decimal `json:"agentFeeRate"`
	CenterFeeRate decimal.Decimal `json:"centerFeeRate"`
	TradeFeeRate  decimal.Decimal `json:"tradeFeeRate"`

	EscrowWallet          *EscrowWallet `json:"escrowWallet,omitempty"`
	EscrowTransactionHash string        `json:"escrowTransactionHash,omitempty"`
	TransactionHash       string        `json:"transactionHash,omitempty"`
	TransactionHashFail   string        `json:"transactionHashFail,omitempty"`

	CreatedAt          time.Time  `json:"createdAt"`
	AcceptedAt         *time.Time `json:"acceptedAt,omitempty"`
	PaymentRequestedAt *time.Time `json:"paymentRequestedAt,omitempty"`
	PaymentConfirmedAt *time.Time `json:"paymentConfirmedAt,omitempty"`
	CancelledAt        *time.Time `json:"cancelledAt,omitempty"`

	Settlement *Settlement `json:"settlement,omitempty"`
	AudioOn    bool        `json:"audioOn"`
}

// HasEscrowFunds reports whether an escrow deposit has been recorded for the
// order. The backend stores "0x" when the escrow leg never happened.
func (o *Order) HasEscrowFunds() bool {
	if o.EscrowWallet == nil {
		return false
	}
	hash := o.EscrowWallet.TransactionHash
	return hash != "" && hash != noEscrowHash
}

// IsExpired reports whether the order passed the client-side expiry window
// since its creation. Expiry is a display heuristic only, never a local
// state transition.
func (o *Order) IsExpired(now time.Time, ttl time.Duration) bool {
	return now.After(o.CreatedAt.Add(ttl))
}

// SellerIs reports whether the order is assigned to the given seller wallet.
func (o *Order) SellerIs(walletAddress string) bool {
	return o.Seller != nil && o.Seller.WalletAddress == walletAddress
}

// OrderStats is the aggregate statistics block returned alongside a feed
// page.
type OrderStats struct {
	TotalCount          int             `json:"totalCount"`
	OrderedCount        int             `json:"orderedCount"`
	AcceptedCount       int             `json:"acceptedCount"`
	PaymentRequested    int             `json:"paymentRequestedCount"`
	PaymentConfirmed    int             `json:"paymentConfirmedCount"`
	CancelledCount      int             `json:"cancelledCount"`
	CompletedCount      int             `json:"completedCount"`
	TotalUsdtAmount     decimal.Decimal `json:"totalUsdtAmount"`
	TotalKrwAmount      decimal.Decimal `json:"totalKrwAmount"`
	TotalPaymentAmount  decimal.Decimal `json:"totalPaymentAmount"`
	TotalFeeAmount      decimal.Decimal `json:"totalFeeAmount"`
	SettledUsdtAmount   decimal.Decimal `json:"settledUsdtAmount"`
	SettledKrwAmount    decimal.Decimal `json:"settledKrwAmount"`
	AverageSettleSecond float64         `json:"averageSettleSecond"`
}

// SellerSnapshot is the read-refresh-discard aggregate of a seller's current
// quote and stats for the seller directory view.
type SellerSnapshot struct {
	WalletAddress string          `json:"walletAddress"`
	Nickname      string          `json:"nickname"`
	Rate          decimal.Decimal `json:"rate"`
	EscrowBalance decimal.Decimal `json:"escrowBalance"`
	TradeCount    int             `json:"tradeCount"`
	TradeVolume   decimal.Decimal `json:"tradeVolume"`
	Enabled       bool            `json:"enabled"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// RateQuote is one observation of the external KRW/USDT market rate.
type RateQuote struct {
	Ticker    string
	Price     decimal.Decimal
	Timestamp time.Time
}
