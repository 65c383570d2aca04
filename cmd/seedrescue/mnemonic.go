package main

import (
	"context"
	"errors"
	"os/signal"
	"strings"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/tyler-smith/go-bip39"
	"github.com/urfave/cli/v2"

	"github.com/seedrescue/seedrescue/internal/config"
	"github.com/seedrescue/seedrescue/pkg/mnemonic"
	"github.com/seedrescue/seedrescue/pkg/searcher"
	"github.com/seedrescue/seedrescue/pkg/wallet"
)

var searchmnemonic = cli.Command{
	Name:      "mnemonic",
	Usage:     "search the completions of a partial mnemonic for a funded wallet",
	ArgsUsage: `"word1 word2 ? word4 ... ?"`,
	Action:    searchMnemonicAction,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "passphrase",
			Usage: "optional BIP39 passphrase used for seed derivation",
		},
		&cli.IntFlag{
			Name:  "count",
			Usage: "number of addresses derived per path template, 0 reads the configured default",
		},
	},
}

func searchMnemonicAction(ctx *cli.Context) error {
	if ctx.NArg() < 1 {
		return errors.New(
			"missing partial phrase argument, mark unknown words with ?",
		)
	}

	phrase, err := mnemonic.ParsePartialPhrase(
		strings.Join(ctx.Args().Slice(), " "),
	)
	if err != nil {
		return err
	}
	generator, err := mnemonic.NewGenerator(phrase, bip39.GetWordList())
	if err != nil {
		return err
	}

	count := ctx.Int("count")
	if count <= 0 {
		count = config.GetInt(config.AddressesPerPathKey)
	}
	passphrase := ctx.String("passphrase")
	params := netParams()
	derive := func(candidate []string) ([]wallet.DerivedAddress, error) {
		return wallet.DeriveAddresses(wallet.DeriveAddressesOpts{
			Mnemonic:   candidate,
			Passphrase: passphrase,
			Count:      uint32(count),
			NetParams:  params,
		})
	}

	if ctx.Bool("offline") {
		return dumpCandidates(generator, derive)
	}

	explorerSvc, err := buildExplorerService(ctx)
	if err != nil {
		return err
	}
	searchSvc, err := searcher.NewService(searcher.Opts{
		Generator:    generator,
		ExplorerSvc:  explorerSvc,
		Derive:       derive,
		RequestDelay: config.GetDuration(config.RequestDelayKey),
	})
	if err != nil {
		return err
	}

	searchCtx, stop := signal.NotifyContext(
		context.Background(), syscall.SIGINT, syscall.SIGTERM,
	)
	defer stop()

	result, err := searchSvc.Search(searchCtx)
	if err != nil {
		return err
	}

	if !result.Found {
		log.Infof(
			"no funded wallet found, %d candidates exhausted in %s",
			result.Checked, result.Elapsed,
		)
		return nil
	}

	return printJSON(map[string]interface{}{
		"mnemonic":        strings.Join(result.Mnemonic, " "),
		"address":         result.Address.Address,
		"derivation_path": result.Address.Path.String(),
		"balance_sats":    result.Balance,
		"checked":         result.Checked,
		"elapsed":         result.Elapsed.String(),
	})
}

// dumpCandidates prints every candidate with its address set, it never
// generates network traffic.
func dumpCandidates(
	generator *mnemonic.Generator, derive searcher.DeriveFunc,
) error {
	for {
		candidate, ok := generator.Next()
		if !ok {
			return nil
		}
		addresses, err := derive(candidate)
		if err != nil {
			log.WithError(err).Warn("skipping underivable candidate")
			continue
		}

		entries := make([]map[string]interface{}, 0, len(addresses))
		for _, a := range addresses {
			entries = append(entries, map[string]interface{}{
				"address":         a.Address,
				"derivation_path": a.Path.String(),
			})
		}
		if err := printJSON(map[string]interface{}{
			"mnemonic":  strings.Join(candidate, " "),
			"addresses": entries,
		}); err != nil {
			return err
		}
	}
}
