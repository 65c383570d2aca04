package wallet

import (
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportAndValidateWIF(t *testing.T) {
	privKey, err := btcec.NewPrivateKey()
	require.NoError(t, err)

	wif, err := ExportWIF(privKey, &chaincfg.MainNetParams)
	require.NoError(t, err)
	assert.NotEmpty(t, wif)

	assert.NoError(t, ValidateWIF(wif, &chaincfg.MainNetParams))
	assert.Equal(
		t, ErrWIFNetworkMismatch, ValidateWIF(wif, &chaincfg.TestNet3Params),
	)
}

func TestValidateWIFShouldFail(t *testing.T) {
	tests := []struct {
		name string
		wif  string
		err  error
	}{
		{"null wif", "", ErrNullWIF},
		{"not base58check", "definitely-not-a-wif", ErrInvalidWIF},
		{"truncated", "5HueCGU8rMjxEXxiPuD5BDk", ErrInvalidWIF},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.err, ValidateWIF(tt.wif, &chaincfg.MainNetParams))
		})
	}
}
