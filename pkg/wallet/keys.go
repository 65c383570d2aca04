package wallet

import (
	"strings"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
	"github.com/tyler-smith/go-bip39"
)

// DerivedAddress pairs an encoded address with the coordinates that
// produced it, so a positive balance can be reported back with the
// exact path to re-derive the key.
type DerivedAddress struct {
	Address  string
	Path     DerivationPath
	Template string
	Index    uint32
	WIF      string
}

// DeriveAddressesOpts groups the parameters for deriving the full
// address set of one candidate mnemonic.
type DeriveAddressesOpts struct {
	Mnemonic   []string
	Passphrase string
	// Count is the number of indexes derived per path template.
	Count uint32
	// NetParams must be set, the caller is explicit about the target
	// network.
	NetParams *chaincfg.Params
	// Templates defaults to DefaultPathTemplates when empty.
	Templates []PathTemplate
}

func (o DeriveAddressesOpts) validate() error {
	if len(o.Mnemonic) <= 0 {
		return ErrNullMnemonic
	}
	if o.NetParams == nil {
		return ErrNullNetwork
	}
	if !isMnemonicValid(o.Mnemonic) {
		return ErrInvalidMnemonic
	}
	for _, t := range o.templates() {
		if t.Purpose != 44 && t.Purpose != 49 && t.Purpose != 84 {
			return ErrUnsupportedPurpose
		}
	}
	return nil
}

func (o DeriveAddressesOpts) count() uint32 {
	if o.Count <= 0 {
		return 20
	}
	return o.Count
}

func (o DeriveAddressesOpts) templates() []PathTemplate {
	if len(o.Templates) <= 0 {
		return DefaultPathTemplates
	}
	return o.Templates
}

// NewSeedFromMnemonic returns the BIP39 seed bytes for the given
// mnemonic and passphrase. The same inputs always return the same
// seed.
func NewSeedFromMnemonic(mnemonic []string, passphrase string) ([]byte, error) {
	if len(mnemonic) <= 0 {
		return nil, ErrNullMnemonic
	}
	if !isMnemonicValid(mnemonic) {
		return nil, ErrInvalidMnemonic
	}
	return bip39.NewSeed(strings.Join(mnemonic, " "), passphrase), nil
}

// DeriveAddresses derives the bounded address set of a candidate
// mnemonic: every path template of opts at every index in
// [0, opts.Count). The output is deterministic for identical opts.
func DeriveAddresses(opts DeriveAddressesOpts) ([]DerivedAddress, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	seed, err := NewSeedFromMnemonic(opts.Mnemonic, opts.Passphrase)
	if err != nil {
		return nil, err
	}
	masterKey, err := hdkeychain.NewMaster(seed, opts.NetParams)
	if err != nil {
		return nil, err
	}

	templates := opts.templates()
	addresses := make([]DerivedAddress, 0, int(opts.count())*len(templates))
	for i := uint32(0); i < opts.count(); i++ {
		for _, template := range templates {
			path := template.At(i)
			childKey, err := deriveChildKey(masterKey, path)
			if err != nil {
				return nil, err
			}
			pubKey, err := childKey.ECPubKey()
			if err != nil {
				return nil, err
			}
			address, err := encodeAddress(pubKey, template.Purpose, opts.NetParams)
			if err != nil {
				return nil, err
			}
			privKey, err := childKey.ECPrivKey()
			if err != nil {
				return nil, err
			}
			wif, err := ExportWIF(privKey, opts.NetParams)
			if err != nil {
				return nil, err
			}

			addresses = append(addresses, DerivedAddress{
				Address:  address,
				Path:     path,
				Template: template.Name,
				Index:    i,
				WIF:      wif,
			})
		}
	}

	return addresses, nil
}

func deriveChildKey(
	masterKey *hdkeychain.ExtendedKey,
	path DerivationPath,
) (*hdkeychain.ExtendedKey, error) {
	childKey := masterKey
	var err error
	for _, step := range path {
		childKey, err = childKey.Derive(step)
		if err != nil {
			return nil, err
		}
	}
	return childKey, nil
}

func encodeAddress(
	pubKey *btcec.PublicKey,
	purpose uint32,
	netParams *chaincfg.Params,
) (string, error) {
	pubKeyHash := btcutil.Hash160(pubKey.SerializeCompressed())

	switch purpose {
	case 44:
		addr, err := btcutil.NewAddressPubKeyHash(pubKeyHash, netParams)
		if err != nil {
			return "", err
		}
		return addr.EncodeAddress(), nil

	case 49:
		// P2SH wrapping of the v0 witness program
		redeemScript, err := txscript.NewScriptBuilder().
			AddOp(txscript.OP_0).
			AddData(pubKeyHash).
			Script()
		if err != nil {
			return "", err
		}
		addr, err := btcutil.NewAddressScriptHash(redeemScript, netParams)
		if err != nil {
			return "", err
		}
		return addr.EncodeAddress(), nil

	case 84:
		addr, err := btcutil.NewAddressWitnessPubKeyHash(pubKeyHash, netParams)
		if err != nil {
			return "", err
		}
		return addr.EncodeAddress(), nil

	default:
		return "", ErrUnsupportedPurpose
	}
}

func isMnemonicValid(mnemonic []string) bool {
	return bip39.IsMnemonicValid(strings.Join(mnemonic, " "))
}
