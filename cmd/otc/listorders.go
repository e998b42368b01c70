package main

import (
	"context"

	"github.com/urfave/cli/v2"

	"github.com/otcdex/otc-daemon/internal/core/domain"
	"github.com/otcdex/otc-daemon/internal/core/ports"
)

var listorders = cli.Command{
	Name:   "listorders",
	Usage:  "list the buy orders visible to this seller",
	Action: listOrdersAction,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "status",
			Usage: "only list orders with the given status",
		},
		&cli.IntFlag{
			Name:  "page",
			Usage: "page of the feed to pull",
			Value: 1,
		},
		&cli.IntFlag{
			Name:  "limit",
			Usage: "number of orders per page",
			Value: 100,
		},
	},
}

var orderstats = cli.Command{
	Name:   "orderstats",
	Usage:  "print the aggregate order statistics block",
	Action: orderStatsAction,
}

func listOrdersAction(ctx *cli.Context) error {
	backendSvc, err := getBackendService()
	if err != nil {
		return err
	}
	walletAddress, err := getWalletFromState()
	if err != nil {
		return err
	}
	state, _ := getState()

	filters := ports.FeedFilters{
		StoreCode:     state["storecode"],
		Limit:         ctx.Int("limit"),
		Page:          ctx.Int("page"),
		WalletAddress: walletAddress,
	}
	if status := ctx.String("status"); status != "" {
		filters.Statuses = []domain.OrderStatus{domain.OrderStatus(status)}
	}

	orders, _, err := backendSvc.Orders().GetAllBuyOrders(context.Background(), filters)
	if err != nil {
		return err
	}

	printRespJSON(orders)
	return nil
}

func orderStatsAction(ctx *cli.Context) error {
	backendSvc, err := getBackendService()
	if err != nil {
		return err
	}
	walletAddress, err := getWalletFromState()
	if err != nil {
		return err
	}
	state, _ := getState()

	_, feedStats, err := backendSvc.Orders().GetAllBuyOrders(
		context.Background(), ports.FeedFilters{
			StoreCode:     state["storecode"],
			Limit:         1,
			Page:          1,
			WalletAddress: walletAddress,
		},
	)
	if err != nil {
		return err
	}

	printRespJSON(feedStats)
	return nil
}
