package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"
)

var cancel = cli.Command{
	Name:      "cancel",
	Usage:     "cancel a trade as seller",
	ArgsUsage: "<orderID>",
	Action:    cancelAction,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "reason",
			Usage: "reason shown to the buyer",
			Value: "cancelled by seller",
		},
	},
}

func cancelAction(ctx *cli.Context) error {
	if ctx.NArg() < 1 {
		return &invalidUsageError{ctx, "cancel"}
	}
	orderID := ctx.Args().First()

	orderSvc, cleanup, err := getOrderService()
	if err != nil {
		return err
	}
	defer cleanup()

	if err := orderSvc.Cancel(
		context.Background(), orderID, ctx.String("reason"),
	); err != nil {
		return err
	}

	fmt.Printf("order %s cancelled\n", orderID)
	return nil
}
