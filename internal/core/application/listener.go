package application

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/otcdex/otc-daemon/internal/core/ports"
	"github.com/otcdex/otc-daemon/pkg/poller"
	"github.com/otcdex/otc-daemon/pkg/stats"
)

// FeedListener defines the needed methods to start and stop the observation
// of the backend feed, the balances and the market rate.
type FeedListener interface {
	Observe()
	StopObserve()
}

type feedListener struct {
	pollerSvc  poller.Service
	rateFeeder ports.RateFeeder
	feedSvc    *FeedService
	guard      *ActionGuard
	balances   *BalanceBoard
}

// NewFeedListener returns a FeedListener dispatching poller and rate-feed
// events to the feed service and the balance board.
func NewFeedListener(
	pollerSvc poller.Service,
	rateFeeder ports.RateFeeder,
	feedSvc *FeedService,
	guard *ActionGuard,
	balances *BalanceBoard,
) FeedListener {
	return &feedListener{
		pollerSvc:  pollerSvc,
		rateFeeder: rateFeeder,
		feedSvc:    feedSvc,
		guard:      guard,
		balances:   balances,
	}
}

func (l *feedListener) Observe() {
	go l.pollerSvc.Start()
	go l.handlePollerEvents()
	if l.rateFeeder != nil {
		// Start blocks while it reads and reconnects; it returns only when
		// stopped or when the venue is unreachable for good.
		go func() {
			if err := l.rateFeeder.Start(); err != nil {
				log.WithError(err).Warn("listener: rate feeder terminated")
			}
		}()
		go l.handleRateQuotes()
	}
}

func (l *feedListener) StopObserve() {
	l.pollerSvc.Stop()
	if l.rateFeeder != nil {
		l.rateFeeder.Stop()
	}
}

func (l *feedListener) handlePollerEvents() {
	for event := range l.pollerSvc.GetEventChannel() {
		switch e := event.(type) {
		case FeedEvent:
			ctx := context.Background()
			if err := l.feedSvc.ApplyFeed(ctx, e.Orders, e.Stats, e.FetchedAt); err != nil {
				log.WithError(err).Warn("listener: could not apply feed snapshot")
			}
			stats.PendingActions.Set(float64(l.guard.PendingCount()))
		case BalanceEvent:
			l.balances.SetBalance(e.Account, e.Amount)
			amount, _ := e.Amount.Float64()
			stats.WalletBalance.WithLabelValues(e.Account, e.Asset).Set(amount)
		case EscrowBalanceEvent:
			l.balances.SetBalance(BalanceEscrowToken, e.TokenBalance)
			l.balances.SetBalance(BalanceEscrowGas, e.GasBalance)
			token, _ := e.TokenBalance.Float64()
			gas, _ := e.GasBalance.Float64()
			stats.WalletBalance.WithLabelValues(BalanceEscrowToken, "USDT").Set(token)
			stats.WalletBalance.WithLabelValues(BalanceEscrowGas, "native").Set(gas)
		default:
			log.Debugf("listener: unhandled event %s", event.Key())
		}
	}
}

func (l *feedListener) handleRateQuotes() {
	for quote := range l.rateFeeder.RateChannel() {
		l.balances.SetRate(quote)
		price, _ := quote.Price.Float64()
		stats.MarketRate.Set(price)
	}
}
