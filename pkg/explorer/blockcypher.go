package explorer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

const defaultBlockCypherURL = "https://api.blockcypher.com"

type blockCypherProvider struct {
	apiProvider
	apiURL string
}

// NewBlockCypherProvider returns a Provider backed by the BlockCypher
// address balance API. The response is a flat JSON object with a
// final_balance field.
func NewBlockCypherProvider(apiURL string, httpClient *http.Client) Provider {
	if apiURL == "" {
		apiURL = defaultBlockCypherURL
	}
	return &blockCypherProvider{
		apiProvider: newAPIProvider("blockcypher", httpClient),
		apiURL:      apiURL,
	}
}

func (p *blockCypherProvider) GetBalance(
	ctx context.Context, address string,
) (uint64, error) {
	url := fmt.Sprintf("%s/v1/btc/main/addrs/%s/balance", p.apiURL, address)
	body, err := p.fetch(ctx, url)
	if err != nil {
		return 0, err
	}

	var resp struct {
		FinalBalance *uint64 `json:"final_balance"`
	}
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if resp.FinalBalance == nil {
		return 0, fmt.Errorf("%w: final_balance missing", ErrMalformedResponse)
	}
	return *resp.FinalBalance, nil
}
