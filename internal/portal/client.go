package portal

import (
	"net/http"
	"time"
)

// transportDefaults groups the connection-pool knobs set once at
// construction time.
type transportDefaults struct {
	maxIdleConns        int
	maxIdleConnsPerHost int
	maxConnsPerHost     int
}

var defaultTransport = transportDefaults{
	maxIdleConns:        100,
	maxIdleConnsPerHost: 20,
	maxConnsPerHost:     40,
}

// NewHTTPClient builds the shared http.Client used for non-portal outbound
// calls: the cookie server (§4.4) and any status proxying (§4.5's
// /login_stat route). It carries no cookie jar of its own — the portal
// wrapper owns cookie state — and a modest connection pool sized for a
// handful of periodic calls rather than thousands of concurrent sessions.
func NewHTTPClient(timeout time.Duration) *http.Client {
	transport := &http.Transport{
		DisableKeepAlives:     false,
		MaxIdleConns:          defaultTransport.maxIdleConns,
		MaxIdleConnsPerHost:   defaultTransport.maxIdleConnsPerHost,
		MaxConnsPerHost:       defaultTransport.maxConnsPerHost,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	return &http.Client{
		Transport: transport,
		Timeout:   timeout,
	}
}
