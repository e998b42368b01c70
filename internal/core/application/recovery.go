package application

import (
	"context"
	"errors"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/otcdex/otc-daemon/internal/core/domain"
	"github.com/otcdex/otc-daemon/internal/core/ports"
	"github.com/otcdex/otc-daemon/pkg/stats"
)

// errUnknownConfirmationKind signals a corrupted journal entry whose kind no
// recording endpoint matches.
var errUnknownConfirmationKind = errors.New("unknown confirmation kind")

// ConfirmationRecovery replays journaled backend recordings left behind by
// transfers that made it on-chain while the recording POST failed or the
// process died. Retries reuse the original idempotency key, so the backend
// can drop duplicates if the first POST actually landed.
type ConfirmationRecovery struct {
	journalRepo domain.ConfirmationJournalRepository
	backendSvc  ports.BackendService

	interval    time.Duration
	baseBackoff time.Duration
	maxBackoff  time.Duration
	maxAttempts int

	quitChan chan struct{}
}

func NewConfirmationRecovery(
	journalRepo domain.ConfirmationJournalRepository,
	backendSvc ports.BackendService,
	interval, baseBackoff, maxBackoff time.Duration,
	maxAttempts int,
) *ConfirmationRecovery {
	return &ConfirmationRecovery{
		journalRepo: journalRepo,
		backendSvc:  backendSvc,
		interval:    interval,
		baseBackoff: baseBackoff,
		maxBackoff:  maxBackoff,
		maxAttempts: maxAttempts,
		quitChan:    make(chan struct{}, 1),
	}
}

// Start runs the recovery loop until Stop is called. An immediate pass runs
// first so confirmations stranded by a crash are replayed at startup.
func (r *ConfirmationRecovery) Start() {
	r.RetryDue(context.Background())

	ticker := time.NewTicker(r.interval)
	for {
		select {
		case <-ticker.C:
			r.RetryDue(context.Background())
		case <-r.quitChan:
			ticker.Stop()
			return
		}
	}
}

// Stop terminates the recovery loop.
func (r *ConfirmationRecovery) Stop() {
	r.quitChan <- struct{}{}
}

// RetryDue replays every journaled confirmation whose backoff has elapsed.
func (r *ConfirmationRecovery) RetryDue(ctx context.Context) {
	confirmations, err := r.journalRepo.GetDueConfirmations(ctx)
	if err != nil {
		log.WithError(err).Warn("recovery: could not list journal")
		return
	}

	if pending, err := r.journalRepo.GetAllConfirmations(ctx); err != nil {
		log.WithError(err).Warn("recovery: could not count journal entries")
	} else {
		stats.PendingConfirmations.Set(float64(len(pending)))
	}

	for _, confirmation := range confirmations {
		r.retryOne(ctx, confirmation)
	}
}

func (r *ConfirmationRecovery) retryOne(
	ctx context.Context, confirmation *domain.PendingConfirmation,
) {
	logger := log.WithFields(log.Fields{
		"order":    confirmation.OrderID,
		"kind":     confirmation.Kind,
		"tx":       confirmation.TxHash,
		"attempts": confirmation.Attempts,
	})

	if r.maxAttempts > 0 && confirmation.Attempts >= r.maxAttempts {
		// Kept in the journal so the operator sees it on the metrics
		// endpoint; recording it now needs manual reconciliation.
		logger.Error("recovery: confirmation exceeded max attempts")
		return
	}

	if err := r.record(ctx, confirmation); err != nil {
		if errors.Is(err, errUnknownConfirmationKind) {
			// Journal corruption; keeping the entry would retry forever.
			logger.Error("recovery: unknown confirmation kind, dropping journal entry")
			if err := r.journalRepo.DeleteConfirmation(ctx, confirmation.ID); err != nil {
				logger.WithError(err).Warn("recovery: could not drop journal entry")
			}
			return
		}
		confirmation.MarkAttempt(time.Now(), r.baseBackoff, r.maxBackoff)
		if err := r.journalRepo.UpdateConfirmation(ctx, confirmation); err != nil {
			logger.WithError(err).Warn("recovery: could not update journal entry")
		}
		logger.WithError(err).Warn("recovery: recording still failing")
		return
	}

	if err := r.journalRepo.DeleteConfirmation(ctx, confirmation.ID); err != nil {
		logger.WithError(err).Warn("recovery: could not drop journal entry")
		return
	}
	logger.Info("recovery: confirmation recorded")
}

func (r *ConfirmationRecovery) record(
	ctx context.Context, confirmation *domain.PendingConfirmation,
) error {
	switch confirmation.Kind {
	case domain.ActionRequestPayment:
		return r.backendSvc.Orders().RequestPayment(
			ctx, confirmation.IdempotencyKey, confirmation.OrderID,
			confirmation.TxHash, confirmation.BankInfo,
		)
	case domain.ActionConfirmPayment:
		return r.backendSvc.Orders().ConfirmPaymentWithoutEscrow(
			ctx, confirmation.IdempotencyKey, confirmation.OrderID,
			confirmation.PaymentAmount, confirmation.TxHash,
		)
	default:
		return errUnknownConfirmationKind
	}
}
