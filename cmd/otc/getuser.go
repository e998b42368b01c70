package main

import (
	"context"

	"github.com/urfave/cli/v2"
)

var getuser = cli.Command{
	Name:      "getuser",
	Usage:     "fetch the user profile behind a wallet address",
	ArgsUsage: "<walletAddress>",
	Action:    getUserAction,
}

func getUserAction(ctx *cli.Context) error {
	if ctx.NArg() < 1 {
		return &invalidUsageError{ctx, "getuser"}
	}

	backendSvc, err := getBackendService()
	if err != nil {
		return err
	}

	user, err := backendSvc.Users().GetUserByWalletAddress(
		context.Background(), ctx.Args().First(),
	)
	if err != nil {
		return err
	}

	printRespJSON(user)
	return nil
}
