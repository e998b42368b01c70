package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PendingConfirmation is a journaled backend recording that must not be
// lost: the on-chain transfer already happened, only the POST telling the
// backend about it is still outstanding. Entries are deleted once the
// backend acknowledged the recording and retried with backoff until then.
type PendingConfirmation struct {
	ID             string          `badgerhold:"key"`
	OrderID        string          `badgerholdIndex:"OrderID"`
	Kind           ActionKind      `json:"kind"`
	TxHash         string          `json:"txHash"`
	IdempotencyKey string          `json:"idempotencyKey"`
	PaymentAmount  decimal.Decimal `json:"paymentAmount"`
	BankInfo       *BankInfo       `json:"bankInfo,omitempty"`
	Attempts       int             `json:"attempts"`
	CreatedAt      time.Time       `json:"createdAt"`
	LastAttemptAt  time.Time       `json:"lastAttemptAt"`
	NextAttemptAt  time.Time       `json:"nextAttemptAt"`
}

// NewPendingConfirmation journals a freshly broadcast transfer awaiting its
// backend recording.
func NewPendingConfirmation(
	orderID string, kind ActionKind, txHash, idempotencyKey string,
	paymentAmount decimal.Decimal,
) *PendingConfirmation {
	now := time.Now()
	return &PendingConfirmation{
		ID:             uuid.New().String(),
		OrderID:        orderID,
		Kind:           kind,
		TxHash:         txHash,
		IdempotencyKey: idempotencyKey,
		PaymentAmount:  paymentAmount,
		CreatedAt:      now,
		NextAttemptAt:  now,
	}
}

// MarkAttempt records a failed recording attempt and schedules the next one
// with exponential backoff capped at maxBackoff.
func (p *PendingConfirmation) MarkAttempt(
	now time.Time, baseBackoff, maxBackoff time.Duration,
) {
	p.Attempts++
	p.LastAttemptAt = now

	backoff := baseBackoff << uint(p.Attempts-1)
	if backoff > maxBackoff || backoff <= 0 {
		backoff = maxBackoff
	}
	p.NextAttemptAt = now.Add(backoff)
}

// IsDue reports whether the entry is ready for a retry.
func (p *PendingConfirmation) IsDue(now time.Time) bool {
	return !now.Before(p.NextAttemptAt)
}
