package explorer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

const defaultBlockchainInfoURL = "https://blockchain.info"

type blockchainInfoProvider struct {
	apiProvider
	apiURL string
}

// NewBlockchainInfoProvider returns a Provider backed by the
// blockchain.info balance API. The response is a JSON object keyed by
// the queried address.
func NewBlockchainInfoProvider(apiURL string, httpClient *http.Client) Provider {
	if apiURL == "" {
		apiURL = defaultBlockchainInfoURL
	}
	return &blockchainInfoProvider{
		apiProvider: newAPIProvider("blockchain.info", httpClient),
		apiURL:      apiURL,
	}
}

func (p *blockchainInfoProvider) GetBalance(
	ctx context.Context, address string,
) (uint64, error) {
	url := fmt.Sprintf("%s/balance?active=%s", p.apiURL, address)
	body, err := p.fetch(ctx, url)
	if err != nil {
		return 0, err
	}

	var resp map[string]struct {
		FinalBalance uint64 `json:"final_balance"`
	}
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	entry, ok := resp[address]
	if !ok {
		return 0, fmt.Errorf("%w: address %s missing", ErrMalformedResponse, address)
	}
	return entry.FinalBalance, nil
}
