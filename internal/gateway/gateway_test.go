package gateway_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/campusdata/webreg-collector/internal/config"
	"github.com/campusdata/webreg-collector/internal/corestate"
	"github.com/campusdata/webreg-collector/internal/gateway"
	"github.com/campusdata/webreg-collector/internal/keystore"
	"github.com/campusdata/webreg-collector/internal/logging"
	"github.com/campusdata/webreg-collector/internal/portal"
)

var testLog = logging.New(logging.LevelError)

func newTestState(t *testing.T) *corestate.State {
	t.Helper()
	cfg := &config.Config{
		APIBaseEndpoint: config.AddressPort{Address: "127.0.0.1", Port: 0},
		CookieServer:    config.AddressPort{Address: "127.0.0.1", Port: 1},
		WrapperData: []config.TermDatum{
			{Term: "FA22", Cooldown: 30},
		},
	}
	st, err := corestate.New(cfg, portal.NewUnwired(), portal.NewUnwired(), nil, testLog)
	if err != nil {
		t.Fatalf("corestate.New: %v", err)
	}
	return st
}

func TestHealthReportsRunningFlag(t *testing.T) {
	state := newTestState(t)
	srv := httptest.NewServer(gateway.New(state, false))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var body map[string]bool
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["api"] != false {
		t.Fatalf("api = %v, want false before the tracker loop starts", body["api"])
	}
}

func TestLiveRoutesRejectWhenNotReady(t *testing.T) {
	state := newTestState(t)
	srv := httptest.NewServer(gateway.New(state, false))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/live/FA22/terms")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500 (not ready)", resp.StatusCode)
	}
}

func TestTimingRejectsUnknownTerm(t *testing.T) {
	state := newTestState(t)
	srv := httptest.NewServer(gateway.New(state, false))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/timing/ZZ99")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
}

func TestTimingReturnsSnapshotForKnownTerm(t *testing.T) {
	state := newTestState(t)
	srv := httptest.NewServer(gateway.New(state, false))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/timing/FA22")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var body map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, ok := body["ttl_requests"]; !ok {
		t.Fatal("expected ttl_requests in the timing response")
	}
}

func TestForwardedRoutesRejectMissingCookie(t *testing.T) {
	state := newTestState(t)
	state.SetRunning(true)
	srv := httptest.NewServer(gateway.New(state, false))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/live/FA22/schedule")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 (missing cookie)", resp.StatusCode)
	}
}

func TestForwardedRoutesRejectUnauthorizedWhenKeysRequired(t *testing.T) {
	ks, err := keystore.Open(t.TempDir() + "/keys.db")
	if err != nil {
		t.Fatalf("keystore.Open: %v", err)
	}
	defer ks.Close()

	state := newTestState(t)
	state.KeyStore = ks
	state.SetRunning(true)
	srv := httptest.NewServer(gateway.New(state, true))
	defer srv.Close()

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/live/FA22/schedule", nil)
	req.Header.Set("Cookie", "jsessionid=abc")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401 (no bearer token)", resp.StatusCode)
	}
}

func TestForwardedRoutesSucceedWithValidKey(t *testing.T) {
	ks, err := keystore.Open(t.TempDir() + "/keys.db")
	if err != nil {
		t.Fatalf("keystore.Open: %v", err)
	}
	defer ks.Close()
	key, err := ks.Issue(nil)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	state := newTestState(t)
	state.KeyStore = ks
	state.SetRunning(true)
	srv := httptest.NewServer(gateway.New(state, true))
	defer srv.Close()

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/live/FA22/schedule", nil)
	req.Header.Set("Cookie", "jsessionid=abc")
	req.Header.Set("Authorization", "Bearer "+key)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	// The stub wrapper has no real backend, so this request reaches the
	// handler and fails there (500 from the unwired error) rather than
	// being rejected by auth (401) or cookie presence (400).
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusBadRequest {
		t.Fatalf("status = %d, want the request to clear auth and cookie middleware", resp.StatusCode)
	}
}
