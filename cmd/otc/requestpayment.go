package main

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"
)

var requestpayment = cli.Command{
	Name:      "requestpayment",
	Usage:     "request the KRW payment for an accepted order",
	ArgsUsage: "<orderID> <usdtAmount>",
	Action:    requestPaymentAction,
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "no-escrow",
			Usage: "skip the escrow deposit and only record the request",
		},
	},
}

func requestPaymentAction(ctx *cli.Context) error {
	if ctx.NArg() < 2 {
		return &invalidUsageError{ctx, "requestpayment"}
	}
	orderID := ctx.Args().Get(0)
	amount, err := decimal.NewFromString(ctx.Args().Get(1))
	if err != nil {
		return fmt.Errorf("invalid amount: %s", ctx.Args().Get(1))
	}

	orderSvc, cleanup, err := getOrderService()
	if err != nil {
		return err
	}
	defer cleanup()

	withEscrow := !ctx.Bool("no-escrow")
	if err := orderSvc.RequestPayment(
		context.Background(), orderID, amount, withEscrow,
	); err != nil {
		return err
	}

	fmt.Printf("payment requested for order %s\n", orderID)
	return nil
}
