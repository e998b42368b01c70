package main

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"
)

var confirmpayment = cli.Command{
	Name:      "confirmpayment",
	Usage:     "confirm the buyer's KRW payment and release the USDT leg",
	ArgsUsage: "<orderID> <krwAmount>",
	Action:    confirmPaymentAction,
}

func confirmPaymentAction(ctx *cli.Context) error {
	if ctx.NArg() < 2 {
		return &invalidUsageError{ctx, "confirmpayment"}
	}
	orderID := ctx.Args().Get(0)
	paymentAmount, err := decimal.NewFromString(ctx.Args().Get(1))
	if err != nil {
		return fmt.Errorf("invalid amount: %s", ctx.Args().Get(1))
	}

	orderSvc, cleanup, err := getOrderService()
	if err != nil {
		return err
	}
	defer cleanup()

	if err := orderSvc.ConfirmPayment(
		context.Background(), orderID, paymentAmount,
	); err != nil {
		return err
	}

	fmt.Printf("payment confirmed for order %s\n", orderID)
	return nil
}
