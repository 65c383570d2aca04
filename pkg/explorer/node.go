package explorer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"
)

var (
	// ErrNullRPCHost ...
	ErrNullRPCHost = errors.New("rpc host must not be null")
	// ErrNullRPCCredentials ...
	ErrNullRPCCredentials = errors.New("rpc user and password must not be null")
	// ErrNegativeBalance ...
	ErrNegativeBalance = errors.New("node returned a negative balance")
)

// satsPerBTC scales getreceivedbyaddress whole-coin amounts to the
// satoshi unit shared by every other provider.
var satsPerBTC = decimal.New(1, 8)

// NodeOpts groups the connection parameters of a local bitcoind.
type NodeOpts struct {
	Host     string
	Port     int
	User     string
	Password string
}

func (o NodeOpts) validate() error {
	if o.Host == "" {
		return ErrNullRPCHost
	}
	if o.User == "" || o.Password == "" {
		return ErrNullRPCCredentials
	}
	return nil
}

func (o NodeOpts) url() string {
	port := o.Port
	if port <= 0 {
		port = 8332
	}
	return fmt.Sprintf("http://%s:%d", o.Host, port)
}

type nodeProvider struct {
	rpcURL   string
	user     string
	password string
	client   *client
}

// NewNodeProvider returns a Provider that asks a local full node for
// the amount received by an address via the authenticated
// getreceivedbyaddress JSON-RPC call. The node must have the address
// in its wallet (watch-only is enough) for the answer to be
// meaningful.
func NewNodeProvider(opts NodeOpts, httpClient *http.Client) (Provider, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultRequestTimeout}
	}
	return &nodeProvider{
		rpcURL:   opts.url(),
		user:     opts.User,
		password: opts.Password,
		client:   &client{httpClient},
	}, nil
}

func (p *nodeProvider) Name() string {
	return "bitcoind"
}

func (p *nodeProvider) GetBalance(
	ctx context.Context, address string,
) (uint64, error) {
	payload, _ := json.Marshal(map[string]interface{}{
		"jsonrpc": "1.0",
		"id":      "seedrescue",
		"method":  "getreceivedbyaddress",
		"params":  []interface{}{address, 1},
	})
	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, p.rpcURL, bytes.NewReader(payload),
	)
	if err != nil {
		return 0, err
	}
	req.SetBasicAuth(p.user, p.password)
	req.Header.Set("Content-Type", "application/json")

	status, body, err := p.client.get(req)
	if err != nil {
		return 0, err
	}

	var resp struct {
		Result json.Number `json:"result"`
		Error  *struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if resp.Error != nil {
		return 0, fmt.Errorf(
			"rpc error %d: %s", resp.Error.Code, resp.Error.Message,
		)
	}
	if status != http.StatusOK {
		return 0, fmt.Errorf("status %d: %s", status, body)
	}

	btc, err := decimal.NewFromString(resp.Result.String())
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	sats := btc.Mul(satsPerBTC)
	if sats.IsNegative() {
		return 0, ErrNegativeBalance
	}
	return uint64(sats.IntPart()), nil
}
