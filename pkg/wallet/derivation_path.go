package wallet

import (
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
)

// DerivationPath is the internal representation of a hierarchical
// deterministic wallet account
type DerivationPath []uint32

// PathTemplate is a derivation path scheme with one free coordinate.
// The recovery engine enumerates every template at every index before
// moving on to the next candidate mnemonic.
type PathTemplate struct {
	// Name identifies the scheme in logs and reports.
	Name string
	// Purpose is the BIP43 purpose field, it selects the address
	// encoding (44' legacy, 49' nested segwit, 84' native segwit).
	Purpose uint32
	format  string
}

var (
	// DefaultPathTemplates are the schemes checked for every candidate.
	// The last one varies the account level instead of the address
	// index, some legacy wallets rotated accounts rather than indexes.
	DefaultPathTemplates = []PathTemplate{
		{Name: "legacy", Purpose: 44, format: "m/44'/0'/0'/0/%d"},
		{Name: "nested-segwit", Purpose: 49, format: "m/49'/0'/0'/0/%d"},
		{Name: "native-segwit", Purpose: 84, format: "m/84'/0'/0'/0/%d"},
		{Name: "legacy-account", Purpose: 44, format: "m/44'/0'/%d'/0/0"},
	}
)

// At returns the concrete derivation path of the template for the
// given index.
func (t PathTemplate) At(index uint32) DerivationPath {
	path, err := ParseDerivationPath(fmt.Sprintf(t.format, index))
	if err != nil {
		// templates are package constants, a parse failure here is a
		// programming error
		panic(err)
	}
	return path
}

// ParseDerivationPath converts a derivation path string to the
// internal binary representation
func ParseDerivationPath(strPath string) (DerivationPath, error) {
	var path DerivationPath

	elems := strings.Split(strPath, "/")
	switch {
	case strPath == "":
		return nil, ErrNullDerivationPath

	case containsEmptyString(elems):
		return nil, ErrMalformedDerivationPath
	case len(elems) < 2:
		return nil, ErrMalformedDerivationPath

	case len(elems) > 1:
		if strings.TrimSpace(elems[0]) == "m" {
			elems = elems[1:]
		}

	default:
		return nil, ErrInvalidDerivationPath
	}

	// all remaining elems are relative, append one by one
	for _, elem := range elems {
		elem = strings.TrimSpace(elem)
		var value uint32

		if strings.HasSuffix(elem, "'") {
			value = hdkeychain.HardenedKeyStart
			elem = strings.TrimSpace(strings.TrimSuffix(elem, "'"))
		}

		// use big int for convertion
		bigval, ok := new(big.Int).SetString(elem, 0)
		if !ok {
			return nil, fmt.Errorf("invalid elem '%s' in path", elem)
		}

		max := math.MaxUint32 - value
		if bigval.Sign() < 0 || bigval.Cmp(big.NewInt(int64(max))) > 0 {
			if value == 0 {
				return nil, fmt.Errorf("elem %v must be in range [0, %d]", bigval, max)
			}
			return nil, fmt.Errorf("elem %v must be in hardened range [0, %d]", bigval, max)
		}
		value += uint32(bigval.Uint64())

		path = append(path, value)
	}

	return path, nil
}

// String converts a binary derivation path to its canonical representation
func (path DerivationPath) String() string {
	if len(path) <= 0 {
		return ""
	}

	result := "m"
	for _, component := range path {
		var hardened bool
		if component >= hdkeychain.HardenedKeyStart {
			component -= hdkeychain.HardenedKeyStart
			hardened = true
		}
		result = fmt.Sprintf("%s/%d", result, component)
		if hardened {
			result += "'"
		}
	}
	return result
}

func containsEmptyString(composedPath []string) bool {
	for _, s := range composedPath {
		if s == "" {
			return true
		}
	}
	return false
}
