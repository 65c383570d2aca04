package main

import (
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/seedrescue/seedrescue/internal/config"
)

var version = "0.1.0"

func main() {
	app := cli.NewApp()

	app.Version = version
	app.Name = "seedrescue CLI"
	app.Usage = "recover a bitcoin wallet from a partially known mnemonic seed phrase"
	app.Flags = []cli.Flag{
		&cli.BoolFlag{
			Name:  "local-node",
			Usage: "use a local bitcoin node instead of the public balance APIs",
		},
		&cli.BoolFlag{
			Name:  "use-proxy",
			Usage: "route all provider requests through the configured SOCKS5 proxy",
		},
		&cli.BoolFlag{
			Name:  "offline",
			Usage: "offline mode, derive and print addresses without any network traffic",
		},
	}
	app.Before = func(ctx *cli.Context) error {
		if err := config.InitConfig(); err != nil {
			return err
		}
		if err := setupLogger(); err != nil {
			return err
		}

		log.Warn(
			"this tool handles private key material, prefer offline mode " +
				"for sensitive operations",
		)
		return nil
	}
	app.Commands = append(
		app.Commands,
		&searchmnemonic,
		&addresses,
		&checkwif,
	)

	if err := app.Run(os.Args); err != nil {
		fatal(err)
	}
}

func setupLogger() error {
	log.SetLevel(log.Level(config.GetInt(config.LogLevelKey)))
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp: true,
	})

	if logFile := config.GetString(config.LogFileKey); logFile != "" {
		file, err := os.OpenFile(
			logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644,
		)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		log.SetOutput(io.MultiWriter(os.Stderr, file))
	}
	return nil
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "[seedrescue] %v\n", err)
	os.Exit(1)
}
