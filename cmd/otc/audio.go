package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"
)

var audio = cli.Command{
	Name:      "audio",
	Usage:     "toggle the audio notification flag of an order",
	ArgsUsage: "<orderID> <on|off>",
	Action:    audioAction,
}

func audioAction(ctx *cli.Context) error {
	if ctx.NArg() < 2 {
		return &invalidUsageError{ctx, "audio"}
	}
	orderID := ctx.Args().Get(0)

	var audioOn bool
	switch ctx.Args().Get(1) {
	case "on":
		audioOn = true
	case "off":
		audioOn = false
	default:
		return &invalidUsageError{ctx, "audio"}
	}

	orderSvc, cleanup, err := getOrderService()
	if err != nil {
		return err
	}
	defer cleanup()

	if err := orderSvc.ToggleAudio(context.Background(), orderID, audioOn); err != nil {
		return err
	}

	fmt.Printf("audio notification for order %s set to %s\n", orderID, ctx.Args().Get(1))
	return nil
}
