package main

import (
	"context"
	"errors"

	"github.com/urfave/cli/v2"
)

var sellers = cli.Command{
	Name:   "sellers",
	Usage:  "list the sellers registered in the configured store",
	Action: sellersAction,
}

func sellersAction(ctx *cli.Context) error {
	backendSvc, err := getBackendService()
	if err != nil {
		return err
	}

	state, _ := getState()
	storeCode, ok := state["storecode"]
	if !ok || storeCode == "" {
		return errors.New("set store code with `config set storecode`")
	}

	directory, err := backendSvc.Orders().GetSellerDirectory(
		context.Background(), storeCode,
	)
	if err != nil {
		return err
	}

	printRespJSON(directory)
	return nil
}
