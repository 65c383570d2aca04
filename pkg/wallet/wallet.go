package wallet

import (
	"errors"
)

var (
	// ErrNullMnemonic ...
	ErrNullMnemonic = errors.New("mnemonic is null")
	// ErrNullNetwork ...
	ErrNullNetwork = errors.New("network params are null")
	// ErrNullDerivationPath ...
	ErrNullDerivationPath = errors.New("derivation path must not be null")
	// ErrMalformedDerivationPath ...
	ErrMalformedDerivationPath = errors.New(
		"path must not start or end with a '/'",
	)
	// ErrInvalidDerivationPath ...
	ErrInvalidDerivationPath = errors.New("invalid derivation path")
	// ErrInvalidMnemonic ...
	ErrInvalidMnemonic = errors.New(
		"mnemonic is invalid, either for its length, some word not " +
			"included in the wordlist, or the checksum",
	)
	// ErrUnsupportedPurpose ...
	ErrUnsupportedPurpose = errors.New(
		"purpose must be one of 44', 49' or 84'",
	)
	// ErrNullWIF ...
	ErrNullWIF = errors.New("wif string must not be null")
	// ErrInvalidWIF ...
	ErrInvalidWIF = errors.New("wif is not a valid base58check private key")
	// ErrWIFNetworkMismatch ...
	ErrWIFNetworkMismatch = errors.New("wif is not for the given network")
)
