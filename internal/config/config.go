package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

const (
	// LogLevelKey are the different logging levels. For reference on the values https://godoc.org/github.com/sirupsen/logrus#Level
	LogLevelKey = "LOG_LEVEL"
	// LogFileKey is the path of the log file written next to stderr output. Empty disables file logging
	LogFileKey = "LOG_FILE"
	// RequestDelayKey is the pause between two consecutive balance checks to respect provider rate limits
	RequestDelayKey = "REQUEST_DELAY"
	// RequestTimeoutKey bounds every single provider request
	RequestTimeoutKey = "REQUEST_TIMEOUT"
	// MaxRetriesKey is the number of full passes over the provider list before a lookup gives up
	MaxRetriesKey = "MAX_RETRIES"
	// AddressesPerPathKey is the number of indexes derived per derivation path template for every candidate
	AddressesPerPathKey = "ADDRESSES_PER_PATH"
	// NetworkKey selects the bitcoin network, either mainnet or testnet
	NetworkKey = "NETWORK"
	// ProxyAddrKey is the host:port of the SOCKS5 proxy used when proxy routing is enabled, typically a local Tor daemon
	ProxyAddrKey = "PROXY_ADDR"
	// BlockchainInfoURLKey overrides the blockchain.info API base url
	BlockchainInfoURLKey = "BLOCKCHAIN_INFO_URL"
	// BlockCypherURLKey overrides the blockcypher API base url
	BlockCypherURLKey = "BLOCKCYPHER_URL"
	// BTCComURLKey overrides the btc.com API base url
	BTCComURLKey = "BTC_COM_URL"
	// RPCHostKey is the host of the local full node used in local-node mode
	RPCHostKey = "RPC_HOST"
	// RPCPortKey is the port of the local full node used in local-node mode
	RPCPortKey = "RPC_PORT"
	// RPCUserKey is the rpc username of the local full node
	RPCUserKey = "RPC_USER"
	// RPCPasswordKey is the rpc password of the local full node
	RPCPasswordKey = "RPC_PASSWORD"

	networkMainnet = "mainnet"
	networkTestnet = "testnet"
)

var vip *viper.Viper

func InitConfig() error {
	vip = viper.New()
	vip.SetEnvPrefix("SEEDRESCUE")
	vip.AutomaticEnv()

	vip.SetDefault(LogLevelKey, 4)
	vip.SetDefault(LogFileKey, "wallet_recovery.log")
	vip.SetDefault(RequestDelayKey, 1500*time.Millisecond)
	vip.SetDefault(RequestTimeoutKey, 15*time.Second)
	vip.SetDefault(MaxRetriesKey, 3)
	vip.SetDefault(AddressesPerPathKey, 20)
	vip.SetDefault(NetworkKey, networkMainnet)
	vip.SetDefault(ProxyAddrKey, "127.0.0.1:9050")
	vip.SetDefault(RPCHostKey, "localhost")
	vip.SetDefault(RPCPortKey, 8332)
	vip.SetDefault(RPCUserKey, "bitcoinrpc")

	if err := validate(); err != nil {
		return fmt.Errorf("error while validating config: %s", err)
	}

	return nil
}

func GetString(key string) string {
	return vip.GetString(key)
}

func GetInt(key string) int {
	return vip.GetInt(key)
}

func GetDuration(key string) time.Duration {
	return vip.GetDuration(key)
}

func GetBool(key string) bool {
	return vip.GetBool(key)
}

// IsMainnet returns whether the configured network is mainnet.
func IsMainnet() bool {
	return GetString(NetworkKey) == networkMainnet
}

func validate() error {
	if network := GetString(NetworkKey); network != networkMainnet &&
		network != networkTestnet {
		return fmt.Errorf(
			"%s must be either %s or %s", NetworkKey,
			networkMainnet, networkTestnet,
		)
	}

	if GetInt(MaxRetriesKey) <= 0 {
		return fmt.Errorf("%s must be a positive number", MaxRetriesKey)
	}

	if GetInt(AddressesPerPathKey) <= 0 {
		return fmt.Errorf("%s must be a positive number", AddressesPerPathKey)
	}

	if GetDuration(RequestDelayKey) < 0 {
		return fmt.Errorf("%s must not be negative", RequestDelayKey)
	}

	return nil
}
