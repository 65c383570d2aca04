package main

import (
	"encoding/json"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/urfave/cli/v2"

	"github.com/seedrescue/seedrescue/internal/config"
	"github.com/seedrescue/seedrescue/pkg/explorer"
)

func netParams() *chaincfg.Params {
	if config.IsMainnet() {
		return &chaincfg.MainNetParams
	}
	return &chaincfg.TestNet3Params
}

func buildExplorerService(ctx *cli.Context) (explorer.Service, error) {
	proxyAddr := ""
	if ctx.Bool("use-proxy") {
		proxyAddr = config.GetString(config.ProxyAddrKey)
	}
	httpClient, err := explorer.NewHTTPClient(
		config.GetDuration(config.RequestTimeoutKey), proxyAddr,
	)
	if err != nil {
		return nil, err
	}

	var providers []explorer.Provider
	if ctx.Bool("local-node") {
		nodeProvider, err := explorer.NewNodeProvider(explorer.NodeOpts{
			Host:     config.GetString(config.RPCHostKey),
			Port:     config.GetInt(config.RPCPortKey),
			User:     config.GetString(config.RPCUserKey),
			Password: config.GetString(config.RPCPasswordKey),
		}, httpClient)
		if err != nil {
			return nil, err
		}
		providers = []explorer.Provider{nodeProvider}
	} else {
		providers = []explorer.Provider{
			explorer.NewBlockchainInfoProvider(
				config.GetString(config.BlockchainInfoURLKey), httpClient,
			),
			explorer.NewBlockCypherProvider(
				config.GetString(config.BlockCypherURLKey), httpClient,
			),
			explorer.NewBTCComProvider(
				config.GetString(config.BTCComURLKey), httpClient,
			),
		}
	}

	return explorer.NewService(explorer.ServiceOpts{
		Providers:  providers,
		MaxRetries: config.GetInt(config.MaxRetriesKey),
	})
}

func printJSON(v interface{}) error {
	payload, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(payload))
	return nil
}
