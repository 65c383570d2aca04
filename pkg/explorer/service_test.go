package explorer

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAddress = "1LqBGSKuX5yYUonjxT5qGfpUsXKYYWeabA"

type fakeProvider struct {
	name     string
	balance  uint64
	err      error
	numCalls int
}

func (p *fakeProvider) Name() string { return p.name }

func (p *fakeProvider) GetBalance(
	_ context.Context, _ string,
) (uint64, error) {
	p.numCalls++
	if p.err != nil {
		return 0, p.err
	}
	return p.balance, nil
}

func TestGetBalanceNormalizesEveryProviderFormat(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		newProvider func(apiURL string, httpClient *http.Client) Provider
	}{
		{
			"blockchain.info",
			fmt.Sprintf(`{"%s":{"final_balance":500}}`, testAddress),
			NewBlockchainInfoProvider,
		},
		{
			"blockcypher",
			`{"address":"` + testAddress + `","final_balance":500}`,
			NewBlockCypherProvider,
		},
		{
			"btc.com",
			`{"data":{"confirmed":500},"err_no":0}`,
			NewBTCComProvider,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(
				func(w http.ResponseWriter, r *http.Request) {
					fmt.Fprint(w, tt.body)
				},
			))
			defer server.Close()

			provider := tt.newProvider(server.URL, server.Client())
			svc, err := NewService(ServiceOpts{
				Providers: []Provider{provider},
			})
			require.NoError(t, err)

			result, err := svc.GetBalance(context.Background(), testAddress)
			require.NoError(t, err)
			assert.True(t, result.Known)
			assert.Equal(t, uint64(500), result.Sats)
		})
	}
}

func TestGetBalanceFallsThroughToNextProvider(t *testing.T) {
	failing := &fakeProvider{name: "failing", err: errors.New("timeout")}
	working := &fakeProvider{name: "working", balance: 42}

	svc, err := NewService(ServiceOpts{
		Providers: []Provider{failing, working},
	})
	require.NoError(t, err)

	result, err := svc.GetBalance(context.Background(), testAddress)
	require.NoError(t, err)
	assert.True(t, result.Known)
	assert.Equal(t, uint64(42), result.Sats)
	assert.Equal(t, 1, failing.numCalls)
	assert.Equal(t, 1, working.numCalls)
}

func TestGetBalanceReturnsUnknownWhenAllProvidersFail(t *testing.T) {
	first := &fakeProvider{name: "first", err: errors.New("timeout")}
	second := &fakeProvider{name: "second", err: errors.New("bad gateway")}

	svc := &service{
		providers:   []Provider{first, second},
		maxRetries:  DefaultMaxRetries,
		backoffBase: time.Millisecond,
		sleep:       sleepWithContext,
	}

	result, err := svc.GetBalance(context.Background(), testAddress)
	require.NoError(t, err)

	// exhausted retries must surface as unknown, never as zero
	assert.False(t, result.Known)
	assert.False(t, result.Positive())
	assert.Equal(t, DefaultMaxRetries, first.numCalls)
	assert.Equal(t, DefaultMaxRetries, second.numCalls)
}

func TestGetBalanceBacksOffExponentially(t *testing.T) {
	failing := &fakeProvider{name: "failing", err: errors.New("timeout")}

	sleeps := make([]time.Duration, 0)
	svc := &service{
		providers:   []Provider{failing},
		maxRetries:  4,
		backoffBase: time.Second,
		sleep: func(_ context.Context, d time.Duration) error {
			sleeps = append(sleeps, d)
			return nil
		},
	}

	result, err := svc.GetBalance(context.Background(), testAddress)
	require.NoError(t, err)
	assert.False(t, result.Known)

	// one wait between each pass, doubling every time
	require.Len(t, sleeps, 3)
	assert.Equal(t, []time.Duration{
		1 * time.Second, 2 * time.Second, 4 * time.Second,
	}, sleeps)
	for i := 1; i < len(sleeps); i++ {
		assert.Greater(t, int64(sleeps[i]), int64(sleeps[i-1]))
	}
}

func TestGetBalanceStopsOnCancelledContext(t *testing.T) {
	failing := &fakeProvider{name: "failing", err: errors.New("timeout")}

	svc := &service{
		providers:   []Provider{failing},
		maxRetries:  DefaultMaxRetries,
		backoffBase: time.Second,
		sleep:       sleepWithContext,
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.GetBalance(ctx, testAddress)
	assert.Equal(t, context.Canceled, err)
}

func TestGetBalanceShouldFail(t *testing.T) {
	svc, err := NewService(ServiceOpts{
		Providers: []Provider{&fakeProvider{name: "any"}},
	})
	require.NoError(t, err)

	_, err = svc.GetBalance(context.Background(), "")
	assert.Equal(t, ErrNullAddress, err)

	_, err = NewService(ServiceOpts{})
	assert.Equal(t, ErrNullProviders, err)
}

func TestProviderRejectsMalformedResponse(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		newProvider func(apiURL string, httpClient *http.Client) Provider
	}{
		{"blockchain.info missing address", `{}`, NewBlockchainInfoProvider},
		{"blockcypher missing balance", `{"address":"x"}`, NewBlockCypherProvider},
		{"btc.com null data", `{"data":null}`, NewBTCComProvider},
		{"not json", `<html>rate limited</html>`, NewBlockchainInfoProvider},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(
				func(w http.ResponseWriter, r *http.Request) {
					fmt.Fprint(w, tt.body)
				},
			))
			defer server.Close()

			provider := tt.newProvider(server.URL, server.Client())
			_, err := provider.GetBalance(context.Background(), testAddress)
			assert.True(t, errors.Is(err, ErrMalformedResponse))
		})
	}
}
