package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"
)

var settle = cli.Command{
	Name:      "settle",
	Usage:     "trigger the settlement of a confirmed trade",
	ArgsUsage: "<orderID>",
	Action:    settleAction,
}

func settleAction(ctx *cli.Context) error {
	if ctx.NArg() < 1 {
		return &invalidUsageError{ctx, "settle"}
	}
	orderID := ctx.Args().First()

	orderSvc, cleanup, err := getOrderService()
	if err != nil {
		return err
	}
	defer cleanup()

	if err := orderSvc.Settle(context.Background(), orderID); err != nil {
		return err
	}

	fmt.Printf("settlement updated for order %s\n", orderID)
	return nil
}
