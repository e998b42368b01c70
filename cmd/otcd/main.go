package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/otcdex/otc-daemon/config"
	"github.com/otcdex/otc-daemon/internal/core/application"
	"github.com/otcdex/otc-daemon/internal/core/ports"
	backendclient "github.com/otcdex/otc-daemon/internal/infrastructure/backend-client"
	upbitfeeder "github.com/otcdex/otc-daemon/internal/infrastructure/rate-feeder/upbit"
	dbbadger "github.com/otcdex/otc-daemon/internal/infrastructure/storage/db/badger"
	"github.com/otcdex/otc-daemon/internal/infrastructure/storage/db/inmemory"
	walletbridge "github.com/otcdex/otc-daemon/internal/infrastructure/wallet-bridge"
	"github.com/otcdex/otc-daemon/pkg/poller"
	"github.com/otcdex/otc-daemon/pkg/stats"
)

func main() {
	log.SetLevel(log.Level(config.GetInt(config.LogLevelKey)))

	net := config.GetNetwork()
	walletAddress := config.GetString(config.WalletAddressKey)
	escrowAddress := config.GetString(config.EscrowAddressKey)

	if config.GetBool(config.EnableProfilerKey) {
		interval := time.Duration(config.GetInt(config.StatsIntervalKey)) * time.Second
		stats.EnableMemoryStatistics(context.Background(), interval)
	}

	dbDir := filepath.Join(config.GetDatadir(), config.DbLocation)
	dbManager, err := dbbadger.NewDbManager(dbDir, nil)
	if err != nil {
		log.WithError(err).Panic("error while opening db")
	}
	defer dbManager.Close()

	journalRepo := dbbadger.NewConfirmationRepositoryImpl(dbManager.JournalStore)
	orderCacheRepo := inmemory.NewOrderCacheRepositoryImpl()

	backendSvc := backendclient.NewService(
		config.GetString(config.BackendEndpointKey),
		time.Duration(config.GetInt(config.BackendRequestTimeoutKey))*time.Millisecond,
		config.GetInt(config.BackendRequestsPerSecondKey),
	)

	walletSvc, err := walletbridge.NewService(
		config.GetString(config.WalletBridgeEndpointKey),
		time.Duration(config.GetInt(config.WalletBridgeRequestTimeoutKey))*time.Millisecond,
	)
	if err != nil {
		log.WithError(err).Panic("error while connecting to wallet bridge")
	}
	defer walletSvc.Close()

	if walletAddress == "" {
		walletAddress, err = walletSvc.Address(context.Background())
		if err != nil {
			log.WithError(err).Panic("error while resolving wallet address")
		}
	}

	guard := application.NewActionGuard()
	balances := application.NewBalanceBoard()
	feedSvc := application.NewFeedService(backendSvc, orderCacheRepo, guard, ports.FeedFilters{
		StoreCode:     config.GetString(config.StoreCodeKey),
		Limit:         config.GetInt(config.FeedPageLimitKey),
		Page:          1,
		WalletAddress: walletAddress,
	}, time.Duration(config.GetInt(config.TradeExpiryTimeKey))*time.Second)

	pollerSvc := poller.NewService(poller.Opts{
		DefaultInterval:   config.GetInt(config.FeedIntervalKey),
		RequestsPerSecond: config.GetInt(config.BackendRequestsPerSecondKey),
		ErrorHandler: func(err error) {
			key := "unknown"
			var obsErr *poller.ObservationError
			if errors.As(err, &obsErr) {
				key = obsErr.ObservableKey
			}
			stats.PollErrors.WithLabelValues(key).Inc()
			log.WithError(err).Warn("poller: observation failed")
		},
	})
	pollerSvc.AddObservable(&application.FeedObservable{
		BackendSvc: backendSvc,
		FeedSvc:    feedSvc,
		IntervalMs: config.GetInt(config.FeedIntervalKey),
	})
	pollerSvc.AddObservable(&application.TokenBalanceObservable{
		WalletSvc:     walletSvc,
		Network:       net,
		TokenContract: net.USDTContract,
		Asset:         "USDT",
		Address:       walletAddress,
		Account:       application.BalanceWalletToken,
		IntervalMs:    config.GetInt(config.BalanceIntervalKey),
	})
	if contract := config.GetString(config.SecondaryTokenContractKey); contract != "" {
		pollerSvc.AddObservable(&application.TokenBalanceObservable{
			WalletSvc:     walletSvc,
			Network:       net,
			TokenContract: contract,
			Asset:         config.GetString(config.SecondaryTokenSymbolKey),
			Address:       walletAddress,
			Account:       application.BalanceWalletSecondary,
			IntervalMs:    config.GetInt(config.BalanceIntervalKey),
		})
	}
	pollerSvc.AddObservable(&application.EscrowBalanceObservable{
		WalletSvc:  walletSvc,
		BackendSvc: backendSvc,
		Network:    net,
		Address:    escrowAddress,
		IntervalMs: config.GetInt(config.BalanceIntervalKey),
	})

	var rateFeeder ports.RateFeeder
	if !config.GetBool(config.NoRateFeedKey) {
		rateFeeder, err = upbitfeeder.NewService(config.GetInt(config.RateIntervalKey))
		if err != nil {
			log.WithError(err).Warn("rate feeder unavailable, continuing without")
			rateFeeder = nil
		}
	}

	listener := application.NewFeedListener(pollerSvc, rateFeeder, feedSvc, guard, balances)
	listener.Observe()
	defer listener.StopObserve()

	recovery := application.NewConfirmationRecovery(
		journalRepo, backendSvc,
		time.Duration(config.GetInt(config.JournalRetryIntervalKey))*time.Millisecond,
		time.Duration(config.GetInt(config.JournalBaseBackoffKey))*time.Millisecond,
		time.Duration(config.GetInt(config.JournalMaxBackoffKey))*time.Millisecond,
		config.GetInt(config.JournalMaxAttemptsKey),
	)
	go recovery.Start()
	defer recovery.Stop()

	metricsAddr := fmt.Sprintf(":%d", config.GetInt(config.MetricsListeningPortKey))
	metricsServer := &http.Server{Addr: metricsAddr, Handler: promhttp.Handler()}

	g, gctx := errgroup.WithContext(context.Background())
	g.Go(func() error {
		log.Infof("metrics interface is listening on %s", metricsAddr)
		if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
		select {
		case <-sigChan:
		case <-gctx.Done():
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return metricsServer.Shutdown(shutdownCtx)
	})

	log.Infof("daemon is observing orders for %s on %s", walletAddress, net.Name)

	if err := g.Wait(); err != nil {
		log.WithError(err).Error("daemon exited with error")
	}
	log.Debug("exiting")
}
