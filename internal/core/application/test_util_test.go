package application

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/thanhpk/randstr"

	"github.com/otcdex/otc-daemon/internal/core/domain"
	"github.com/otcdex/otc-daemon/internal/core/ports"
	"github.com/otcdex/otc-daemon/internal/infrastructure/storage/db/inmemory"
	"github.com/otcdex/otc-daemon/pkg/chain"
)

const (
	testSellerAddress = "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	testBuyerAddress  = "0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
	testEscrowAddress = "0xcccccccccccccccccccccccccccccccccccccccc"
)

var testBankInfo = &domain.BankInfo{
	BankName:      "Kookmin",
	AccountNumber: "110-123-456789",
	AccountHolder: "Hong Gildong",
}

func newTestOrder(status domain.OrderStatus) *domain.Order {
	return &domain.Order{
		ID:      randstr.Hex(12),
		TradeID: randstr.Hex(6),
		Status:  status,
		Buyer: &domain.Buyer{
			Nickname:      "buyer",
			WalletAddress: testBuyerAddress,
		},
		Seller: &domain.Seller{
			Nickname:      "seller",
			WalletAddress: testSellerAddress,
			BankInfo:      testBankInfo,
			Enabled:       true,
		},
		UsdtAmount:   decimal.NewFromInt(100),
		KrwAmount:    decimal.NewFromInt(140000),
		Rate:         decimal.NewFromInt(1400),
		EscrowWallet: &domain.EscrowWallet{Address: testEscrowAddress},
		CreatedAt:    time.Now(),
	}
}

type testStack struct {
	orderSvc    *OrderService
	feedSvc     *FeedService
	guard       *ActionGuard
	sequencer   *TransferSequencer
	journalRepo domain.ConfirmationJournalRepository
	cacheRepo   domain.OrderCacheRepository
	balances    *BalanceBoard
}

// newTestStack wires the services the way the daemon does, with mocks at the
// backend and wallet edges and real in-memory repositories in between.
func newTestStack(
	t *testing.T, orderClient *mockOrderClient, walletSvc *mockWalletService,
	orders ...*domain.Order,
) *testStack {
	t.Helper()

	backendSvc := &mockBackendService{orders: orderClient}
	guard := NewActionGuard()
	balances := NewBalanceBoard()
	journalRepo := inmemory.NewConfirmationRepositoryImpl()
	cacheRepo := inmemory.NewOrderCacheRepositoryImpl()

	require.NoError(t, cacheRepo.ReplaceFeed(
		context.Background(), orders, &domain.OrderStats{TotalCount: len(orders)},
	))

	feedSvc := NewFeedService(backendSvc, cacheRepo, guard, ports.FeedFilters{
		Limit: 100, Page: 1, WalletAddress: testSellerAddress,
	}, 0)
	sequencer := NewTransferSequencer(walletSvc, journalRepo, chain.Polygon)
	orderSvc := NewOrderService(
		backendSvc, walletSvc, feedSvc, guard, sequencer, balances,
		testSellerAddress,
	)

	return &testStack{
		orderSvc:    orderSvc,
		feedSvc:     feedSvc,
		guard:       guard,
		sequencer:   sequencer,
		journalRepo: journalRepo,
		cacheRepo:   cacheRepo,
		balances:    balances,
	}
}
