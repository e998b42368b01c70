package application

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/otcdex/otc-daemon/internal/core/domain"
	"github.com/otcdex/otc-daemon/internal/core/ports"
	"github.com/otcdex/otc-daemon/pkg/chain"
)

// SequenceState is the per-order state of the escrow transfer sequencer.
type SequenceState string

const (
	SequenceIdle         SequenceState = "idle"
	SequenceSigning      SequenceState = "signing"
	SequenceBroadcasting SequenceState = "broadcasting"
	SequenceAwaitingHash SequenceState = "awaiting-hash"
	SequenceRecording    SequenceState = "recording"
	SequenceRefreshing   SequenceState = "refreshing"
)

// TransferRequest describes one on-chain leg to be sequenced before a
// backend recording.
type TransferRequest struct {
	OrderID        string
	Kind           domain.ActionKind
	To             string
	Amount         decimal.Decimal
	IdempotencyKey string
	PaymentAmount  decimal.Decimal
	BankInfo       *domain.BankInfo
}

// TransferSequencer runs the sign-broadcast-record workflow for actions that
// need an on-chain transfer before a backend call. One sequence runs at a
// time: a second order asking to escrow while another is mid-sequence is
// rejected up front. A wallet failure aborts the sequence with no backend
// side effect; once a transaction hash exists the recording is journaled
// before the POST, so a recording failure is recoverable after a crash.
type TransferSequencer struct {
	walletSvc   ports.WalletService
	journalRepo domain.ConfirmationJournalRepository
	network     chain.Network

	mtx         sync.Mutex
	states      map[string]SequenceState
	activeOrder string
}

func NewTransferSequencer(
	walletSvc ports.WalletService,
	journalRepo domain.ConfirmationJournalRepository,
	network chain.Network,
) *TransferSequencer {
	return &TransferSequencer{
		walletSvc:   walletSvc,
		journalRepo: journalRepo,
		network:     network,
		states:      make(map[string]SequenceState),
	}
}

// State returns the sequence state for the order.
func (s *TransferSequencer) State(orderID string) SequenceState {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	state, ok := s.states[orderID]
	if !ok {
		return SequenceIdle
	}
	return state
}

func (s *TransferSequencer) setState(orderID string, state SequenceState) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if state == SequenceIdle {
		delete(s.states, orderID)
		return
	}
	s.states[orderID] = state
}

func (s *TransferSequencer) acquire(orderID string) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.activeOrder != "" {
		return ErrEscrowBusy
	}
	s.activeOrder = orderID
	return nil
}

func (s *TransferSequencer) release(orderID string) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.activeOrder == orderID {
		s.activeOrder = ""
	}
}

// Run executes the transfer sequence for the request and invokes record with
// the confirmed transaction hash. The caller owns the feed refresh that
// follows a completed sequence. It returns the transaction hash of the
// transfer leg.
func (s *TransferSequencer) Run(
	ctx context.Context,
	req TransferRequest,
	record func(ctx context.Context, txHash string) error,
) (string, error) {
	if err := s.acquire(req.OrderID); err != nil {
		return "", err
	}
	defer s.release(req.OrderID)
	defer s.setState(req.OrderID, SequenceIdle)

	logger := log.WithFields(log.Fields{
		"order":   req.OrderID,
		"kind":    req.Kind,
		"network": s.network.Name,
	})

	s.setState(req.OrderID, SequenceSigning)
	unsignedTx, err := s.walletSvc.CreateTransfer(
		ctx, s.network, s.network.USDTContract, req.To, req.Amount,
	)
	if err != nil {
		return "", fmt.Errorf("create transfer: %w", err)
	}
	signedTx, err := s.walletSvc.SignTransaction(ctx, s.network, unsignedTx)
	if err != nil {
		// The signature was rejected; the order is unchanged server-side
		// and nothing needs to be journaled.
		return "", fmt.Errorf("sign transfer: %w", err)
	}

	s.setState(req.OrderID, SequenceBroadcasting)
	txHash, err := s.walletSvc.BroadcastTransaction(ctx, s.network, signedTx)
	if err != nil {
		return "", fmt.Errorf("broadcast transfer: %w", err)
	}
	logger = logger.WithField("tx", txHash)
	logger.Info("sequencer: transfer broadcast")

	s.setState(req.OrderID, SequenceAwaitingHash)
	receipt, err := s.walletSvc.WaitForReceipt(ctx, s.network, txHash)
	if err != nil {
		return txHash, fmt.Errorf("wait for receipt: %w", err)
	}
	if !receipt.Success {
		return txHash, ErrTransferReverted
	}

	confirmation := domain.NewPendingConfirmation(
		req.OrderID, req.Kind, txHash, req.IdempotencyKey, req.PaymentAmount,
	)
	confirmation.BankInfo = req.BankInfo
	if err := s.journalRepo.AddConfirmation(ctx, confirmation); err != nil {
		return txHash, fmt.Errorf("journal confirmation: %w", err)
	}

	s.setState(req.OrderID, SequenceRecording)
	if err := record(ctx, txHash); err != nil {
		// The transfer is on-chain but the backend does not know yet. The
		// journal entry stays behind for the recovery loop.
		logger.WithError(err).Error("sequencer: recording failed, confirmation journaled")
		return txHash, fmt.Errorf("record confirmation: %w", err)
	}
	if err := s.journalRepo.DeleteConfirmation(ctx, confirmation.ID); err != nil {
		logger.WithError(err).Warn("sequencer: could not drop journaled confirmation")
	}

	// The caller pulls authoritative state next; the sequence is done once
	// the recording landed.
	s.setState(req.OrderID, SequenceRefreshing)
	logger.Info("sequencer: sequence completed")
	return txHash, nil
}
