package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"
)

var favorites = cli.Command{
	Name:  "favorites",
	Usage: "manage the saved-recipient address book",
	Subcommands: []*cli.Command{
		{
			Name:   "list",
			Usage:  "list the saved wallets",
			Action: favoritesListAction,
		},
		{
			Name:      "add",
			Usage:     "save a wallet address with a label",
			ArgsUsage: "<walletAddress> <label>",
			Action:    favoritesAddAction,
		},
		{
			Name:      "remove",
			Usage:     "remove a saved wallet address",
			ArgsUsage: "<walletAddress>",
			Action:    favoritesRemoveAction,
		},
	},
}

func favoritesListAction(ctx *cli.Context) error {
	backendSvc, err := getBackendService()
	if err != nil {
		return err
	}
	walletAddress, err := getWalletFromState()
	if err != nil {
		return err
	}

	wallets, err := backendSvc.Favorites().ListFavoriteWallets(
		context.Background(), walletAddress,
	)
	if err != nil {
		return err
	}

	printRespJSON(wallets)
	return nil
}

func favoritesAddAction(ctx *cli.Context) error {
	if ctx.NArg() < 2 {
		return &invalidUsageError{ctx, "add"}
	}

	backendSvc, err := getBackendService()
	if err != nil {
		return err
	}
	walletAddress, err := getWalletFromState()
	if err != nil {
		return err
	}

	if err := backendSvc.Favorites().AddFavoriteWallet(
		context.Background(), walletAddress,
		ctx.Args().Get(0), ctx.Args().Get(1),
	); err != nil {
		return err
	}

	fmt.Printf("wallet %s saved\n", ctx.Args().Get(0))
	return nil
}

func favoritesRemoveAction(ctx *cli.Context) error {
	if ctx.NArg() < 1 {
		return &invalidUsageError{ctx, "remove"}
	}

	backendSvc, err := getBackendService()
	if err != nil {
		return err
	}
	walletAddress, err := getWalletFromState()
	if err != nil {
		return err
	}

	if err := backendSvc.Favorites().RemoveFavoriteWallet(
		context.Background(), walletAddress, ctx.Args().First(),
	); err != nil {
		return err
	}

	fmt.Printf("wallet %s removed\n", ctx.Args().First())
	return nil
}
