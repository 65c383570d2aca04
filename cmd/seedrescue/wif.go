package main

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/seedrescue/seedrescue/pkg/wallet"
)

var checkwif = cli.Command{
	Name:      "wif",
	Usage:     "validate a private key in wallet import format",
	ArgsUsage: "<wif>",
	Action:    checkWIFAction,
}

func checkWIFAction(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return errors.New("expecting exactly one WIF argument")
	}

	if err := wallet.ValidateWIF(ctx.Args().First(), netParams()); err != nil {
		return err
	}

	fmt.Println("valid")
	return nil
}
