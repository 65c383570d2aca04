package explorer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

const defaultBTCComURL = "https://chain.api.btc.com"

type btcComProvider struct {
	apiProvider
	apiURL string
}

// NewBTCComProvider returns a Provider backed by the btc.com address
// API. The balance lives in a nested data.confirmed field.
func NewBTCComProvider(apiURL string, httpClient *http.Client) Provider {
	if apiURL == "" {
		apiURL = defaultBTCComURL
	}
	return &btcComProvider{
		apiProvider: newAPIProvider("btc.com", httpClient),
		apiURL:      apiURL,
	}
}

func (p *btcComProvider) GetBalance(
	ctx context.Context, address string,
) (uint64, error) {
	url := fmt.Sprintf("%s/v3/address/%s", p.apiURL, address)
	body, err := p.fetch(ctx, url)
	if err != nil {
		return 0, err
	}

	var resp struct {
		Data *struct {
			Confirmed uint64 `json:"confirmed"`
		} `json:"data"`
	}
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if resp.Data == nil {
		return 0, fmt.Errorf("%w: data missing", ErrMalformedResponse)
	}
	return resp.Data.Confirmed, nil
}
