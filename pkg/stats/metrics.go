package stats

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Counters and gauges exposed on the daemon metrics endpoint.
var (
	FeedPolls = promauto.NewCounter(prometheus.CounterOpts{
		Name: "otcd_feed_polls_total",
		Help: "Number of order feed polls performed.",
	})
	PollErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "otcd_poll_errors_total",
		Help: "Number of failed observations, by observable key.",
	}, []string{"key"})
	BackendCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "otcd_backend_calls_total",
		Help: "Number of backend API calls, by endpoint and outcome.",
	}, []string{"endpoint", "outcome"})
	Actions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "otcd_order_actions_total",
		Help: "Number of order actions performed, by kind and outcome.",
	}, []string{"kind", "outcome"})
	PendingActions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "otcd_pending_actions",
		Help: "Number of orders with an action currently in flight.",
	})
	PendingConfirmations = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "otcd_pending_confirmations",
		Help: "Number of journaled transfer confirmations awaiting recording.",
	})
	WalletBalance = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "otcd_wallet_balance",
		Help: "Last observed balances, by account and asset.",
	}, []string{"account", "asset"})
	MarketRate = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "otcd_market_rate_krw",
		Help: "Last observed KRW/USDT market rate.",
	})
)
