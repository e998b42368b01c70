package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"
)

var rollback = cli.Command{
	Name:      "rollback",
	Usage:     "reverse a confirmed payment",
	ArgsUsage: "<orderID>",
	Action:    rollbackAction,
}

func rollbackAction(ctx *cli.Context) error {
	if ctx.NArg() < 1 {
		return &invalidUsageError{ctx, "rollback"}
	}
	orderID := ctx.Args().First()

	orderSvc, cleanup, err := getOrderService()
	if err != nil {
		return err
	}
	defer cleanup()

	if err := orderSvc.Rollback(context.Background(), orderID); err != nil {
		return err
	}

	fmt.Printf("payment rolled back for order %s\n", orderID)
	return nil
}
