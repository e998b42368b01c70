package application

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/otcdex/otc-daemon/internal/core/domain"
	"github.com/otcdex/otc-daemon/internal/core/ports"
	"github.com/otcdex/otc-daemon/pkg/stats"
)

// OrderService performs the mutating order actions. Every action follows the
// same discipline: take the per-order guard, validate locally, call the
// backend with a fresh idempotency key, force a feed refresh on success and
// release the guard on every exit path. The backend response, never the
// optimistic local state, is the source of truth afterwards.
type OrderService struct {
	backendSvc    ports.BackendService
	walletSvc     ports.WalletService
	feedSvc       *FeedService
	guard         *ActionGuard
	sequencer     *TransferSequencer
	balances      *BalanceBoard
	walletAddress string
}

func NewOrderService(
	backendSvc ports.BackendService,
	walletSvc ports.WalletService,
	feedSvc *FeedService,
	guard *ActionGuard,
	sequencer *TransferSequencer,
	balances *BalanceBoard,
	walletAddress string,
) *OrderService {
	return &OrderService{
		backendSvc:    backendSvc,
		walletSvc:     walletSvc,
		feedSvc:       feedSvc,
		guard:         guard,
		sequencer:     sequencer,
		balances:      balances,
		walletAddress: walletAddress,
	}
}

// Accept assigns the order to this seller.
func (s *OrderService) Accept(ctx context.Context, orderID string) error {
	return s.runAction(ctx, orderID, domain.ActionAccept, func(order *domain.Order) error {
		if !order.CanAccept() {
			return ErrOrderNotActionable
		}
		if order.Buyer == nil {
			return fmt.Errorf("order %s has no buyer snapshot", orderID)
		}
		return s.backendSvc.Orders().AcceptBuyOrder(
			ctx, uuid.New().String(), orderID, s.walletAddress,
			order.TradeID, order.Buyer.WalletAddress,
		)
	})
}

// RequestPayment records the payment request for an accepted order. With
// escrow enabled the USDT leg is deposited to the order's escrow wallet
// first and the resulting transaction hash is attached to the recording;
// without escrow the recording carries no hash.
func (s *OrderService) RequestPayment(
	ctx context.Context, orderID string, amount decimal.Decimal, withEscrow bool,
) error {
	return s.runAction(ctx, orderID, domain.ActionRequestPayment, func(order *domain.Order) error {
		if !order.CanRequestPayment() {
			return ErrOrderNotActionable
		}
		if !order.SellerIs(s.walletAddress) {
			return ErrNotOrderSeller
		}
		if err := validateAmount(amount); err != nil {
			return err
		}
		bankInfo := order.Seller.BankInfo
		if err := validateBankInfo(bankInfo); err != nil {
			return err
		}

		idempotencyKey := uuid.New().String()

		if !withEscrow {
			return s.backendSvc.Orders().RequestPayment(
				ctx, idempotencyKey, orderID, "", bankInfo,
			)
		}

		if order.EscrowWallet == nil || order.EscrowWallet.Address == "" {
			return ErrMissingEscrowWallet
		}
		if err := validateWalletAddress(order.EscrowWallet.Address); err != nil {
			return err
		}
		if err := s.checkBalance(ctx, amount); err != nil {
			return err
		}

		_, err := s.sequencer.Run(ctx, TransferRequest{
			OrderID:        orderID,
			Kind:           domain.ActionRequestPayment,
			To:             order.EscrowWallet.Address,
			Amount:         amount,
			IdempotencyKey: idempotencyKey,
			PaymentAmount:  order.KrwAmount,
			BankInfo:       bankInfo,
		}, func(ctx context.Context, txHash string) error {
			return s.backendSvc.Orders().RequestPayment(
				ctx, idempotencyKey, orderID, txHash, bankInfo,
			)
		})
		return err
	})
}

// ConfirmPayment marks the buyer's fiat payment as received. Orders with
// escrow funds only need the backend recording; orders without escrow pay
// the buyer directly on-chain and attach the transfer hash.
func (s *OrderService) ConfirmPayment(
	ctx context.Context, orderID string, paymentAmount decimal.Decimal,
) error {
	return s.runAction(ctx, orderID, domain.ActionConfirmPayment, func(order *domain.Order) error {
		if !order.CanConfirmPayment() {
			return ErrOrderNotActionable
		}
		if !order.SellerIs(s.walletAddress) {
			return ErrNotOrderSeller
		}
		if err := validateAmount(paymentAmount); err != nil {
			return err
		}

		idempotencyKey := uuid.New().String()

		if order.HasEscrowFunds() {
			return s.backendSvc.Orders().ConfirmPaymentWithEscrow(
				ctx, idempotencyKey, orderID, paymentAmount,
				order.EscrowWallet.TransactionHash,
			)
		}

		if order.Buyer == nil {
			return fmt.Errorf("order %s has no buyer snapshot", orderID)
		}
		if err := validateWalletAddress(order.Buyer.WalletAddress); err != nil {
			return err
		}
		if err := s.checkBalance(ctx, order.UsdtAmount); err != nil {
			return err
		}

		_, err := s.sequencer.Run(ctx, TransferRequest{
			OrderID:        orderID,
			Kind:           domain.ActionConfirmPayment,
			To:             order.Buyer.WalletAddress,
			Amount:         order.UsdtAmount,
			IdempotencyKey: idempotencyKey,
			PaymentAmount:  paymentAmount,
		}, func(ctx context.Context, txHash string) error {
			return s.backendSvc.Orders().ConfirmPaymentWithoutEscrow(
				ctx, idempotencyKey, orderID, paymentAmount, txHash,
			)
		})
		return err
	})
}

// Cancel aborts the trade. Orders whose escrow deposit was recorded go
// through the escrow-aware endpoint so the backend can reverse the custody
// position; the rest use the plain one.
func (s *OrderService) Cancel(ctx context.Context, orderID, reason string) error {
	return s.runAction(ctx, orderID, domain.ActionCancel, func(order *domain.Order) error {
		if !order.CanCancel() {
			return ErrOrderNotActionable
		}

		idempotencyKey := uuid.New().String()
		if order.HasEscrowFunds() {
			return s.backendSvc.Orders().CancelTradeBySellerWithEscrow(
				ctx, idempotencyKey, orderID, s.walletAddress, reason,
			)
		}
		return s.backendSvc.Orders().CancelTradeBySeller(
			ctx, idempotencyKey, orderID, s.walletAddress, reason,
		)
	})
}

// Rollback reverses a confirmed payment.
func (s *OrderService) Rollback(ctx context.Context, orderID string) error {
	return s.runAction(ctx, orderID, domain.ActionRollback, func(order *domain.Order) error {
		if !order.CanRollback() {
			return ErrOrderNotActionable
		}
		return s.backendSvc.Orders().RollbackPayment(
			ctx, uuid.New().String(), orderID, order.PaymentAmount,
		)
	})
}

// Settle triggers the backend settlement of a confirmed trade.
func (s *OrderService) Settle(ctx context.Context, orderID string) error {
	return s.runAction(ctx, orderID, domain.ActionSettle, func(order *domain.Order) error {
		if !order.CanSettle() {
			return ErrOrderNotActionable
		}
		return s.backendSvc.Orders().UpdateSettlement(
			ctx, uuid.New().String(), orderID,
		)
	})
}

// ToggleAudio flips the per-order notification flag persisted server-side.
func (s *OrderService) ToggleAudio(ctx context.Context, orderID string, audioOn bool) error {
	return s.runAction(ctx, orderID, domain.ActionToggleAudio, func(order *domain.Order) error {
		return s.backendSvc.Orders().ToggleAudioNotification(
			ctx, uuid.New().String(), orderID, audioOn, s.walletAddress,
		)
	})
}

// runAction wraps an action body with the guard, the forced feed refresh
// and outcome accounting.
func (s *OrderService) runAction(
	ctx context.Context, orderID string, kind domain.ActionKind,
	action func(order *domain.Order) error,
) (err error) {
	if err := s.guard.Begin(orderID, kind); err != nil {
		return err
	}
	defer func() {
		s.guard.End(orderID, err != nil)
		outcome := "ok"
		if err != nil {
			outcome = "error"
		}
		stats.Actions.WithLabelValues(string(kind), outcome).Inc()
	}()

	order, err := s.feedSvc.Order(ctx, orderID)
	if err != nil {
		return err
	}

	if err = action(order); err != nil {
		log.WithError(err).WithFields(log.Fields{
			"order": orderID, "kind": kind,
		}).Warn("order action failed")
		return err
	}

	if err = s.feedSvc.FetchOnce(ctx); err != nil {
		// The mutation went through; failing to re-fetch must not fail the
		// action, the next poll tick will catch up.
		log.WithError(err).Warn("forced feed refresh failed")
		err = nil
	}
	return nil
}

// checkBalance validates the requested amount against the last polled
// wallet balance, falling back to a direct read when no observation exists
// yet. The polled value is preferred so an oversized request is rejected
// without any network round trip.
func (s *OrderService) checkBalance(ctx context.Context, amount decimal.Decimal) error {
	balance, ok := s.balances.Balance(BalanceWalletToken)
	if !ok {
		var err error
		balance, err = s.walletSvc.TokenBalance(
			ctx, s.sequencer.network, s.sequencer.network.USDTContract,
			s.walletAddress,
		)
		if err != nil {
			return fmt.Errorf("read wallet balance: %w", err)
		}
	}
	if balance.LessThan(amount) {
		return ErrInsufficientBalance
	}
	return nil
}
