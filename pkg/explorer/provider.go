package explorer

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sony/gobreaker"

	"github.com/seedrescue/seedrescue/pkg/circuitbreaker"
)

// apiProvider holds what every HTTP balance provider shares: the http
// client and a circuit breaker keyed to the provider name.
type apiProvider struct {
	name   string
	client *client
	cb     *gobreaker.CircuitBreaker
}

func newAPIProvider(name string, httpClient *http.Client) apiProvider {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultRequestTimeout}
	}
	return apiProvider{
		name:   name,
		client: &client{httpClient},
		cb:     circuitbreaker.NewCircuitBreaker(name),
	}
}

func (p apiProvider) Name() string {
	return p.name
}

func (p apiProvider) fetch(ctx context.Context, url string) (string, error) {
	iBody, err := p.cb.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		status, body, err := p.client.get(req)
		if err != nil {
			return nil, err
		}
		if status != http.StatusOK {
			return nil, fmt.Errorf("status %d: %s", status, body)
		}
		return body, nil
	})
	if err != nil {
		return "", err
	}
	return iBody.(string), nil
}
