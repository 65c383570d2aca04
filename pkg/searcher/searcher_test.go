package searcher

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tyler-smith/go-bip39"

	"github.com/seedrescue/seedrescue/pkg/explorer"
	"github.com/seedrescue/seedrescue/pkg/mnemonic"
	"github.com/seedrescue/seedrescue/pkg/wallet"
)

// fundedExplorer reports a positive balance for one address and a
// known zero for everything else.
type fundedExplorer struct {
	fundedAddress string
	balance       uint64
	numCalls      int
}

func (e *fundedExplorer) GetBalance(
	_ context.Context, address string,
) (explorer.BalanceResult, error) {
	e.numCalls++
	if address == e.fundedAddress {
		return explorer.BalanceResult{Sats: e.balance, Known: true}, nil
	}
	return explorer.BalanceResult{Known: true}, nil
}

func newTestGenerator(t *testing.T) *mnemonic.Generator {
	t.Helper()
	phrase, err := mnemonic.ParsePartialPhrase(
		strings.Repeat("abandon ", 11) + "?",
	)
	require.NoError(t, err)
	generator, err := mnemonic.NewGenerator(phrase, bip39.GetWordList())
	require.NoError(t, err)
	return generator
}

func fakeDerive(candidate []string) ([]wallet.DerivedAddress, error) {
	// one synthetic address per candidate, keyed by its last word
	return []wallet.DerivedAddress{
		{Address: "addr-" + candidate[len(candidate)-1], Index: 0},
	}, nil
}

func TestSearchStopsOnFirstPositiveBalance(t *testing.T) {
	explorerSvc := &fundedExplorer{fundedAddress: "addr-about", balance: 500}
	svc, err := NewService(Opts{
		Generator:   newTestGenerator(t),
		ExplorerSvc: explorerSvc,
		Derive:      fakeDerive,
	})
	require.NoError(t, err)

	result, err := svc.Search(context.Background())
	require.NoError(t, err)

	require.True(t, result.Found)
	assert.Equal(t, "about", result.Mnemonic[11])
	assert.Equal(t, "addr-about", result.Address.Address)
	assert.Equal(t, uint64(500), result.Balance)

	// "about" is the very first checksum-valid completion, nothing
	// beyond it may be queried
	assert.Equal(t, 1, explorerSvc.numCalls)
	assert.Equal(t, uint64(1), result.Checked)

	event := <-svc.GetEventChannel()
	found, ok := event.(FoundEvent)
	require.True(t, ok)
	assert.Equal(t, "addr-about", found.Address.Address)
	assert.Equal(t, uint64(500), found.Balance)
}

func TestSearchReportsExhaustion(t *testing.T) {
	explorerSvc := &fundedExplorer{fundedAddress: "addr-not-in-wordlist"}
	svc, err := NewService(Opts{
		Generator:     newTestGenerator(t),
		ExplorerSvc:   explorerSvc,
		Derive:        fakeDerive,
		ProgressEvery: 50,
	})
	require.NoError(t, err)

	result, err := svc.Search(context.Background())
	require.NoError(t, err)

	assert.False(t, result.Found)
	assert.Equal(t, uint64(128), result.Checked)
	assert.Equal(t, 128, explorerSvc.numCalls)

	var sawProgress, sawExhausted bool
	for {
		var event Event
		select {
		case event = <-svc.GetEventChannel():
		default:
			event = nil
		}
		if event == nil {
			break
		}
		switch e := event.(type) {
		case ProgressEvent:
			sawProgress = true
			assert.Greater(t, e.PerSecond, float64(0))
		case ExhaustedEvent:
			sawExhausted = true
			assert.Equal(t, uint64(128), e.Checked)
		}
	}
	assert.True(t, sawProgress)
	assert.True(t, sawExhausted)
}

func TestSearchSkipsUnderivableCandidates(t *testing.T) {
	derivationErr := errors.New("cryptographic failure")
	failedOnce := false
	derive := func(candidate []string) ([]wallet.DerivedAddress, error) {
		if !failedOnce {
			failedOnce = true
			return nil, derivationErr
		}
		return fakeDerive(candidate)
	}

	explorerSvc := &fundedExplorer{fundedAddress: "addr-not-in-wordlist"}
	svc, err := NewService(Opts{
		Generator:   newTestGenerator(t),
		ExplorerSvc: explorerSvc,
		Derive:      derive,
	})
	require.NoError(t, err)

	result, err := svc.Search(context.Background())
	require.NoError(t, err)

	// the failing candidate is counted but not checked on-chain
	assert.False(t, result.Found)
	assert.Equal(t, uint64(128), result.Checked)
	assert.Equal(t, 127, explorerSvc.numCalls)
}

func TestSearchHonorsContextCancellation(t *testing.T) {
	svc, err := NewService(Opts{
		Generator:   newTestGenerator(t),
		ExplorerSvc: &fundedExplorer{},
		Derive:      fakeDerive,
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = svc.Search(ctx)
	assert.Equal(t, context.Canceled, err)
}

func TestSearchEndToEndWithRealDerivation(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping derivation-heavy test in short mode")
	}

	// the funded address is m/44'/0'/0'/0/0 of "abandon ... about"
	explorerSvc := &fundedExplorer{
		fundedAddress: "1LqBGSKuX5yYUonjxT5qGfpUsXKYYWeabA",
		balance:       123456,
	}
	derive := func(candidate []string) ([]wallet.DerivedAddress, error) {
		return wallet.DeriveAddresses(wallet.DeriveAddressesOpts{
			Mnemonic:  candidate,
			Count:     1,
			NetParams: &chaincfg.MainNetParams,
		})
	}

	svc, err := NewService(Opts{
		Generator:   newTestGenerator(t),
		ExplorerSvc: explorerSvc,
		Derive:      derive,
	})
	require.NoError(t, err)

	result, err := svc.Search(context.Background())
	require.NoError(t, err)

	require.True(t, result.Found)
	assert.Equal(t, "about", result.Mnemonic[11])
	assert.Equal(t, "1LqBGSKuX5yYUonjxT5qGfpUsXKYYWeabA", result.Address.Address)
	assert.Equal(t, "m/44'/0'/0'/0/0", result.Address.Path.String())
	assert.Equal(t, uint64(123456), result.Balance)
}

func TestNewServiceShouldFail(t *testing.T) {
	generator := newTestGenerator(t)
	explorerSvc := &fundedExplorer{}

	tests := []struct {
		name string
		opts Opts
		err  error
	}{
		{"null generator", Opts{ExplorerSvc: explorerSvc, Derive: fakeDerive}, ErrNullGenerator},
		{"null explorer", Opts{Generator: generator, Derive: fakeDerive}, ErrNullExplorer},
		{"null derive", Opts{Generator: generator, ExplorerSvc: explorerSvc}, ErrNullDeriveFunc},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewService(tt.opts)
			assert.Equal(t, tt.err, err)
		})
	}
}
