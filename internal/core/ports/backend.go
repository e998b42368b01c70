package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/otcdex/otc-daemon/internal/core/domain"
)

// BackendService is the platform backend surface this layer consumes. Every
// call is JSON over HTTP underneath; implementations decode the
// `{ "result": ... }` envelope and treat an absent or falsy result as a
// failure. Mutating calls carry the client-generated idempotency key so the
// backend can dedupe retried submissions.
type BackendService interface {
	Orders() OrderClient
	Users() UserClient
	Favorites() FavoriteWalletClient
}

// FeedFilters is the filter set POSTed to the order-listing endpoint.
type FeedFilters struct {
	StoreCode     string
	Limit         int
	Page          int
	WalletAddress string
	FromDate      string
	ToDate        string
	Statuses      []domain.OrderStatus
}

// OrderClient covers the /api/order/* surface.
type OrderClient interface {
	GetAllBuyOrders(
		ctx context.Context, filters FeedFilters,
	) ([]*domain.Order, *domain.OrderStats, error)
	AcceptBuyOrder(
		ctx context.Context, idempotencyKey, orderID, sellerWalletAddress,
		tradeID, buyerWalletAddress string,
	) error
	RequestPayment(
		ctx context.Context, idempotencyKey, orderID, transactionHash string,
		paymentBankInfo *domain.BankInfo,
	) error
	ConfirmPaymentWithEscrow(
		ctx context.Context, idempotencyKey, orderID string,
		paymentAmount decimal.Decimal, transactionHash string,
	) error
	ConfirmPaymentWithoutEscrow(
		ctx context.Context, idempotencyKey, orderID string,
		paymentAmount decimal.Decimal, transactionHash string,
	) error
	CancelTradeBySeller(
		ctx context.Context, idempotencyKey, orderID, walletAddress,
		cancelTradeReason string,
	) error
	CancelTradeBySellerWithEscrow(
		ctx context.Context, idempotencyKey, orderID, walletAddress,
		cancelTradeReason string,
	) error
	RollbackPayment(
		ctx context.Context, idempotencyKey, orderID string,
		paymentAmount decimal.Decimal,
	) error
	UpdateSettlement(ctx context.Context, idempotencyKey, orderID string) error
	ToggleAudioNotification(
		ctx context.Context, idempotencyKey, orderID string, audioOn bool,
		walletAddress string,
	) error
	GetEscrowGasBalance(
		ctx context.Context, escrowAddress string,
	) (decimal.Decimal, error)
	GetSellerDirectory(
		ctx context.Context, storeCode string,
	) ([]*domain.SellerSnapshot, error)
}

// User is the backend profile attached to a wallet address.
type User struct {
	WalletAddress string           `json:"walletAddress"`
	Nickname      string           `json:"nickname"`
	DepositName   string           `json:"depositName"`
	StoreCode     string           `json:"storecode"`
	BankInfo      *domain.BankInfo `json:"bankInfo,omitempty"`
	Enabled       bool             `json:"enabled"`
}

// UserClient covers the /api/user/* surface.
type UserClient interface {
	GetUser(ctx context.Context, walletAddress string) (*User, error)
	GetUserByWalletAddress(
		ctx context.Context, walletAddress string,
	) (*User, error)
}

// FavoriteWallet is one saved-recipient entry of the address book.
type FavoriteWallet struct {
	OwnerWalletAddress string `json:"ownerWalletAddress"`
	WalletAddress      string `json:"walletAddress"`
	Label              string `json:"label"`
}

// FavoriteWalletClient covers the /api/favorite-wallets/* surface.
type FavoriteWalletClient interface {
	ListFavoriteWallets(
		ctx context.Context, ownerWalletAddress string,
	) ([]*FavoriteWallet, error)
	AddFavoriteWallet(
		ctx context.Context, ownerWalletAddress, walletAddress, label string,
	) error
	RemoveFavoriteWallet(
		ctx context.Context, ownerWalletAddress, walletAddress string,
	) error
}
