package main

import (
	"context"
	"errors"
	"time"

	"github.com/otcdex/otc-daemon/internal/core/application"
	"github.com/otcdex/otc-daemon/internal/core/ports"
	backendclient "github.com/otcdex/otc-daemon/internal/infrastructure/backend-client"
	"github.com/otcdex/otc-daemon/internal/infrastructure/storage/db/inmemory"
	walletbridge "github.com/otcdex/otc-daemon/internal/infrastructure/wallet-bridge"
)

const (
	requestTimeout    = 15 * time.Second
	bridgeTimeout     = 30 * time.Second
	requestsPerSecond = 10
	feedPageLimit     = 100
)

func getBackendService() (ports.BackendService, error) {
	state, err := getState()
	if err != nil {
		return nil, err
	}
	address, ok := state["backend"]
	if !ok {
		return nil, errors.New("set backend url with `config set backend`")
	}

	return backendclient.NewService(address, requestTimeout, requestsPerSecond), nil
}

func getWalletService() (ports.WalletService, error) {
	state, err := getState()
	if err != nil {
		return nil, err
	}
	address, ok := state["walletbridge"]
	if !ok {
		return nil, errors.New("set wallet bridge url with `config set walletbridge`")
	}

	return walletbridge.NewService(address, bridgeTimeout)
}

// getOrderService assembles the one-shot action pipeline: backend client,
// signer bridge, a freshly pulled feed cache and the services on top. The
// journal is in-memory here; a recording that fails is logged with its
// transaction hash so the operator can replay it, the daemon's on-disk
// journal is not shared with the CLI.
func getOrderService() (*application.OrderService, func(), error) {
	backendSvc, err := getBackendService()
	if err != nil {
		return nil, nil, err
	}
	walletSvc, err := getWalletService()
	if err != nil {
		return nil, nil, err
	}
	walletAddress, err := getWalletFromState()
	if err != nil {
		walletSvc.Close()
		return nil, nil, err
	}
	network, err := getNetworkFromState()
	if err != nil {
		walletSvc.Close()
		return nil, nil, err
	}

	state, _ := getState()

	guard := application.NewActionGuard()
	balances := application.NewBalanceBoard()
	journalRepo := inmemory.NewConfirmationRepositoryImpl()
	orderCacheRepo := inmemory.NewOrderCacheRepositoryImpl()

	feedSvc := application.NewFeedService(backendSvc, orderCacheRepo, guard, ports.FeedFilters{
		StoreCode:     state["storecode"],
		Limit:         feedPageLimit,
		Page:          1,
		WalletAddress: walletAddress,
	}, 0)
	if err := feedSvc.FetchOnce(context.Background()); err != nil {
		walletSvc.Close()
		return nil, nil, err
	}

	sequencer := application.NewTransferSequencer(walletSvc, journalRepo, network)
	orderSvc := application.NewOrderService(
		backendSvc, walletSvc, feedSvc, guard, sequencer, balances, walletAddress,
	)
	cleanup := func() { walletSvc.Close() }

	return orderSvc, cleanup, nil
}
