package main

import (
	"context"

	"github.com/urfave/cli/v2"
)

var balance = cli.Command{
	Name:   "balance",
	Usage:  "print the seller wallet USDT and native balances",
	Action: balanceAction,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "address",
			Usage: "address to query, defaults to the configured wallet",
		},
	},
}

func balanceAction(ctx *cli.Context) error {
	walletSvc, err := getWalletService()
	if err != nil {
		return err
	}
	defer walletSvc.Close()

	network, err := getNetworkFromState()
	if err != nil {
		return err
	}

	address := ctx.String("address")
	if address == "" {
		address, err = getWalletFromState()
		if err != nil {
			return err
		}
	}

	tokenBalance, err := walletSvc.TokenBalance(
		context.Background(), network, network.USDTContract, address,
	)
	if err != nil {
		return err
	}
	nativeBalance, err := walletSvc.NativeBalance(context.Background(), network, address)
	if err != nil {
		return err
	}

	printRespJSON(map[string]interface{}{
		"address":            address,
		"network":            network.Name,
		"usdt":               tokenBalance,
		network.NativeSymbol: nativeBalance,
	})
	return nil
}
