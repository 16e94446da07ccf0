package recovery

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"

	"github.com/campusdata/webreg-collector/internal/config"
	"github.com/campusdata/webreg-collector/internal/corestate"
	"github.com/campusdata/webreg-collector/internal/logging"
	"github.com/campusdata/webreg-collector/internal/portal"
)

var testLog = logging.New(logging.LevelError)

func newTestState(t *testing.T, cookieServerURL string) *corestate.State {
	t.Helper()
	addr, port := splitHostPort(t, cookieServerURL)
	cfg := &config.Config{
		CookieServer: config.AddressPort{Address: addr, Port: port},
		WrapperData:  nil,
	}
	st, err := corestate.New(cfg, portal.NewUnwired(), portal.NewUnwired(), nil, testLog)
	if err != nil {
		t.Fatalf("corestate.New: %v", err)
	}
	return st
}

func splitHostPort(t *testing.T, rawURL string) (string, int) {
	t.Helper()
	u, err := url.Parse(rawURL)
	if err != nil {
		t.Fatalf("parse test server URL: %v", err)
	}
	host, portStr, err := net.SplitHostPort(u.Host)
	if err != nil {
		t.Fatalf("split host/port: %v", err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		t.Fatalf("parse port: %v", err)
	}
	return host, port
}

func TestFetchCookieReady(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"cookie":"abc123"}`))
	}))
	defer srv.Close()

	state := newTestState(t, srv.URL)
	cookies, ready, err := fetchCookie(context.Background(), state)
	if err != nil {
		t.Fatalf("fetchCookie: %v", err)
	}
	if !ready || cookies != "abc123" {
		t.Fatalf("fetchCookie = (%q, %v), want (\"abc123\", true)", cookies, ready)
	}
}

func TestFetchCookieNotReady(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"cookie":null}`))
	}))
	defer srv.Close()

	state := newTestState(t, srv.URL)
	cookies, ready, err := fetchCookie(context.Background(), state)
	if err != nil {
		t.Fatalf("fetchCookie: %v", err)
	}
	if ready || cookies != "" {
		t.Fatalf("fetchCookie = (%q, %v), want (\"\", false)", cookies, ready)
	}
}

func TestFetchCookieMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	state := newTestState(t, srv.URL)
	if _, _, err := fetchCookie(context.Background(), state); err == nil {
		t.Fatal("expected an error for a malformed cookie response body")
	}
}
