package application

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/otcdex/otc-daemon/internal/core/domain"
	"github.com/otcdex/otc-daemon/internal/core/ports"
	"github.com/otcdex/otc-daemon/pkg/chain"
)

/*
 * BackendService
 */
type mockBackendService struct {
	orders *mockOrderClient
}

func (m *mockBackendService) Orders() ports.OrderClient             { return m.orders }
func (m *mockBackendService) Users() ports.UserClient               { return nil }
func (m *mockBackendService) Favorites() ports.FavoriteWalletClient { return nil }

type mockOrderClient struct {
	mock.Mock
}

func (m *mockOrderClient) GetAllBuyOrders(
	ctx context.Context, filters ports.FeedFilters,
) ([]*domain.Order, *domain.OrderStats, error) {
	args := m.Called(ctx, filters)

	var orders []*domain.Order
	if a := args.Get(0); a != nil {
		orders = a.([]*domain.Order)
	}
	var feedStats *domain.OrderStats
	if a := args.Get(1); a != nil {
		feedStats = a.(*domain.OrderStats)
	}
	return orders, feedStats, args.Error(2)
}

func (m *mockOrderClient) AcceptBuyOrder(
	ctx context.Context, idempotencyKey, orderID, sellerWalletAddress,
	tradeID, buyerWalletAddress string,
) error {
	args := m.Called(
		ctx, idempotencyKey, orderID, sellerWalletAddress, tradeID,
		buyerWalletAddress,
	)
	return args.Error(0)
}

func (m *mockOrderClient) RequestPayment(
	ctx context.Context, idempotencyKey, orderID, transactionHash string,
	paymentBankInfo *domain.BankInfo,
) error {
	args := m.Called(ctx, idempotencyKey, orderID, transactionHash, paymentBankInfo)
	return args.Error(0)
}

func (m *mockOrderClient) ConfirmPaymentWithEscrow(
	ctx context.Context, idempotencyKey, orderID string,
	paymentAmount decimal.Decimal, transactionHash string,
) error {
	args := m.Called(ctx, idempotencyKey, orderID, paymentAmount, transactionHash)
	return args.Error(0)
}

func (m *mockOrderClient) ConfirmPaymentWithoutEscrow(
	ctx context.Context, idempotencyKey, orderID string,
	paymentAmount decimal.Decimal, transactionHash string,
) error {
	args := m.Called(ctx, idempotencyKey, orderID, paymentAmount, transactionHash)
	return args.Error(0)
}

func (m *mockOrderClient) CancelTradeBySeller(
	ctx context.Context, idempotencyKey, orderID, walletAddress,
	cancelTradeReason string,
) error {
	args := m.Called(ctx, idempotencyKey, orderID, walletAddress, cancelTradeReason)
	return args.Error(0)
}

func (m *mockOrderClient) CancelTradeBySellerWithEscrow(
	ctx context.Context, idempotencyKey, orderID, walletAddress,
	cancelTradeReason string,
) error {
	args := m.Called(ctx, idempotencyKey, orderID, walletAddress, cancelTradeReason)
	return args.Error(0)
}

func (m *mockOrderClient) RollbackPayment(
	ctx context.Context, idempotencyKey, orderID string,
	paymentAmount decimal.Decimal,
) error {
	args := m.Called(ctx, idempotencyKey, orderID, paymentAmount)
	return args.Error(0)
}

func (m *mockOrderClient) UpdateSettlement(
	ctx context.Context, idempotencyKey, orderID string,
) error {
	args := m.Called(ctx, idempotencyKey, orderID)
	return args.Error(0)
}

func (m *mockOrderClient) ToggleAudioNotification(
	ctx context.Context, idempotencyKey, orderID string, audioOn bool,
	walletAddress string,
) error {
	args := m.Called(ctx, idempotencyKey, orderID, audioOn, walletAddress)
	return args.Error(0)
}

func (m *mockOrderClient) GetEscrowGasBalance(
	ctx context.Context, escrowAddress string,
) (decimal.Decimal, error) {
	args := m.Called(ctx, escrowAddress)

	var balance decimal.Decimal
	if a := args.Get(0); a != nil {
		balance = a.(decimal.Decimal)
	}
	return balance, args.Error(1)
}

func (m *mockOrderClient) GetSellerDirectory(
	ctx context.Context, storeCode string,
) ([]*domain.SellerSnapshot, error) {
	args := m.Called(ctx, storeCode)

	var directory []*domain.SellerSnapshot
	if a := args.Get(0); a != nil {
		directory = a.([]*domain.SellerSnapshot)
	}
	return directory, args.Error(1)
}

/*
 * WalletService
 */
type mockWalletService struct {
	mock.Mock
}

func (m *mockWalletService) Address(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *mockWalletService) TokenBalance(
	ctx context.Context, network chain.Network, tokenContract, address string,
) (decimal.Decimal, error) {
	args := m.Called(ctx, network, tokenContract, address)

	var balance decimal.Decimal
	if a := args.Get(0); a != nil {
		balance = a.(decimal.Decimal)
	}
	return balance, args.Error(1)
}

func (m *mockWalletService) NativeBalance(
	ctx context.Context, network chain.Network, address string,
) (decimal.Decimal, error) {
	args := m.Called(ctx, network, address)

	var balance decimal.Decimal
	if a := args.Get(0); a != nil {
		balance = a.(decimal.Decimal)
	}
	return balance, args.Error(1)
}

func (m *mockWalletService) CreateTransfer(
	ctx context.Context, network chain.Network, tokenContract, to string,
	amount decimal.Decimal,
) (string, error) {
	args := m.Called(ctx, network, tokenContract, to, amount)
	return args.String(0), args.Error(1)
}

func (m *mockWalletService) SignTransaction(
	ctx context.Context, network chain.Network, unsignedTx string,
) (string, error) {
	args := m.Called(ctx, network, unsignedTx)
	return args.String(0), args.Error(1)
}

func (m *mockWalletService) BroadcastTransaction(
	ctx context.Context, network chain.Network, signedTx string,
) (string, error) {
	args := m.Called(ctx, network, signedTx)
	return args.String(0), args.Error(1)
}

func (m *mockWalletService) WaitForReceipt(
	ctx context.Context, network chain.Network, txHash string,
) (*ports.TxReceipt, error) {
	args := m.Called(ctx, network, txHash)

	var receipt *ports.TxReceipt
	if a := args.Get(0); a != nil {
		receipt = a.(*ports.TxReceipt)
	}
	return receipt, args.Error(1)
}

func (m *mockWalletService) Close() {
	m.Called()
}
