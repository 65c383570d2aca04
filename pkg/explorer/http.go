package explorer

import (
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"golang.org/x/net/proxy"
)

// DefaultRequestTimeout bounds every single provider request.
const DefaultRequestTimeout = 15 * time.Second

// NewHTTPClient returns the http client shared by the API providers.
// When socks5Addr is not empty all requests are dialed through the
// given SOCKS5 proxy, typically a local Tor daemon.
func NewHTTPClient(timeout time.Duration, socks5Addr string) (*http.Client, error) {
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	if socks5Addr == "" {
		return &http.Client{Timeout: timeout}, nil
	}

	dialer, err := proxy.SOCKS5("tcp", socks5Addr, nil, &net.Dialer{
		Timeout:   5 * time.Second,
		KeepAlive: 60 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("socks5 proxy: %w", err)
	}
	contextDialer, ok := dialer.(proxy.ContextDialer)
	if !ok {
		return nil, fmt.Errorf("socks5 proxy: dialer has no context support")
	}

	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			DialContext: contextDialer.DialContext,
		},
	}, nil
}

type client struct {
	*http.Client
}

func (c *client) get(req *http.Request) (int, string, error) {
	rs, err := c.Do(req)
	if err != nil {
		return 0, "", err
	}
	defer rs.Body.Close()

	bodyBytes, err := io.ReadAll(rs.Body)
	if err != nil {
		return -1, "", err
	}
	return rs.StatusCode, string(bodyBytes), nil
}
