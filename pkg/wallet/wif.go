package wallet

import (
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
)

// ExportWIF serializes a private key to Wallet Import Format for the
// given network. Keys are always exported in compressed form since all
// derived addresses are computed from compressed public keys.
func ExportWIF(privKey *btcec.PrivateKey, netParams *chaincfg.Params) (string, error) {
	if netParams == nil {
		return "", ErrNullNetwork
	}
	wif, err := btcutil.NewWIF(privKey, netParams, true)
	if err != nil {
		return "", err
	}
	return wif.String(), nil
}

// ValidateWIF checks that the given string is a well formed WIF
// private key for the given network.
func ValidateWIF(wifStr string, netParams *chaincfg.Params) error {
	if len(wifStr) <= 0 {
		return ErrNullWIF
	}
	if netParams == nil {
		return ErrNullNetwork
	}

	wif, err := btcutil.DecodeWIF(wifStr)
	if err != nil {
		return ErrInvalidWIF
	}
	if !wif.IsForNet(netParams) {
		return ErrWIFNetworkMismatch
	}
	return nil
}
