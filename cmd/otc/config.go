package main

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/otcdex/otc-daemon/pkg/chain"
)

var (
	networkFlag = cli.StringFlag{
		Name:  "network",
		Usage: "the EVM network to settle on: ethereum, polygon, arbitrum or bsc",
		Value: chain.Polygon.Name,
	}

	backendFlag = cli.StringFlag{
		Name:  "backend",
		Usage: "trading backend base url",
		Value: "http://localhost:4000",
	}

	bridgeFlag = cli.StringFlag{
		Name:  "walletbridge",
		Usage: "wallet signer daemon base url",
		Value: "http://localhost:7345",
	}

	walletFlag = cli.StringFlag{
		Name:  "wallet",
		Usage: "seller wallet address",
		Value: "",
	}

	storecodeFlag = cli.StringFlag{
		Name:  "storecode",
		Usage: "store code the order feed is scoped to",
		Value: "",
	}
)

var configCmd = cli.Command{
	Name:   "config",
	Usage:  "Print local configuration of the otc CLI",
	Action: configAction,
	Subcommands: []*cli.Command{
		{
			Name:   "set",
			Usage:  "set a <key> <value> in the local state",
			Action: configSetAction,
		},
		{
			Name:   "init",
			Usage:  "initialize the local state with flags",
			Action: configInitAction,
			Flags: []cli.Flag{
				&networkFlag,
				&backendFlag,
				&bridgeFlag,
				&walletFlag,
				&storecodeFlag,
			},
		},
	},
}

func configAction(ctx *cli.Context) error {
	state, err := getState()
	if err != nil {
		return err
	}

	for key, value := range state {
		fmt.Println(key + ": " + value)
	}

	return nil
}

func configInitAction(c *cli.Context) error {
	if _, err := chain.FromName(c.String("network")); err != nil {
		return err
	}

	return setState(map[string]string{
		"network":      c.String("network"),
		"backend":      c.String("backend"),
		"walletbridge": c.String("walletbridge"),
		"wallet":       c.String("wallet"),
		"storecode":    c.String("storecode"),
	})
}

func configSetAction(c *cli.Context) error {
	if c.NArg() < 2 {
		return errors.New("key and value are missing")
	}

	key := c.Args().Get(0)
	value := c.Args().Get(1)

	if err := setState(map[string]string{key: value}); err != nil {
		return err
	}

	fmt.Printf("%s %s has been set\n", key, value)

	return nil
}

func getWalletFromState() (string, error) {
	state, err := getState()
	if err != nil {
		return "", err
	}
	wallet, ok := state["wallet"]
	if !ok || wallet == "" {
		return "", errors.New("set wallet address with `config set wallet`")
	}
	return wallet, nil
}

func getNetworkFromState() (chain.Network, error) {
	state, err := getState()
	if err != nil {
		return chain.Network{}, err
	}
	name, ok := state["network"]
	if !ok {
		return chain.Polygon, nil
	}
	return chain.FromName(name)
}
