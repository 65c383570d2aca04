package main

import (
	"errors"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/seedrescue/seedrescue/internal/config"
	"github.com/seedrescue/seedrescue/pkg/mnemonic"
	"github.com/seedrescue/seedrescue/pkg/wallet"
)

var addresses = cli.Command{
	Name:      "addresses",
	Usage:     "derive the address set of a complete mnemonic, no network traffic",
	ArgsUsage: `"word1 word2 ... word12"`,
	Action:    addressesAction,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "passphrase",
			Usage: "optional BIP39 passphrase used for seed derivation",
		},
		&cli.IntFlag{
			Name:  "count",
			Usage: "number of addresses derived per path template, 0 reads the configured default",
		},
		&cli.BoolFlag{
			Name:  "show-keys",
			Usage: "include the WIF private key of every address in the output",
		},
	},
}

func addressesAction(ctx *cli.Context) error {
	if ctx.NArg() < 1 {
		return errors.New("missing mnemonic argument")
	}

	phrase, err := mnemonic.ParsePartialPhrase(
		strings.Join(ctx.Args().Slice(), " "),
	)
	if err != nil {
		return err
	}
	if phrase.NumMissing() > 0 {
		return errors.New(
			"mnemonic must be complete, use the mnemonic command to " +
				"search the completions of a partial phrase",
		)
	}

	count := ctx.Int("count")
	if count <= 0 {
		count = config.GetInt(config.AddressesPerPathKey)
	}

	derived, err := wallet.DeriveAddresses(wallet.DeriveAddressesOpts{
		Mnemonic:   strings.Fields(phrase.String()),
		Passphrase: ctx.String("passphrase"),
		Count:      uint32(count),
		NetParams:  netParams(),
	})
	if err != nil {
		return err
	}

	showKeys := ctx.Bool("show-keys")
	entries := make([]map[string]interface{}, 0, len(derived))
	for _, a := range derived {
		entry := map[string]interface{}{
			"address":         a.Address,
			"derivation_path": a.Path.String(),
			"scheme":          a.Template,
		}
		if showKeys {
			entry["wif"] = a.WIF
		}
		entries = append(entries, entry)
	}

	return printJSON(entries)
}
