package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"
)

var accept = cli.Command{
	Name:      "accept",
	Usage:     "accept a buy order and assign it to this seller",
	ArgsUsage: "<orderID>",
	Action:    acceptAction,
}

func acceptAction(ctx *cli.Context) error {
	if ctx.NArg() < 1 {
		return &invalidUsageError{ctx, "accept"}
	}
	orderID := ctx.Args().First()

	orderSvc, cleanup, err := getOrderService()
	if err != nil {
		return err
	}
	defer cleanup()

	if err := orderSvc.Accept(context.Background(), orderID); err != nil {
		return err
	}

	fmt.Printf("order %s accepted\n", orderID)
	return nil
}
