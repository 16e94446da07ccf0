package corestate_test

import (
	"testing"

	"github.com/campusdata/webreg-collector/internal/config"
	"github.com/campusdata/webreg-collector/internal/corestate"
	"github.com/campusdata/webreg-collector/internal/logging"
	"github.com/campusdata/webreg-collector/internal/portal"
)

var testLog = logging.New(logging.LevelError)

func newTestConfig() *config.Config {
	return &config.Config{
		APIBaseEndpoint: config.AddressPort{Address: "127.0.0.1", Port: 9090},
		CookieServer:    config.AddressPort{Address: "127.0.0.1", Port: 9091},
		WrapperData: []config.TermDatum{
			{Term: "FA22", Cooldown: 30},
			{Term: "WI23", Cooldown: 15},
		},
	}
}

func TestNewBuildsTermRegistry(t *testing.T) {
	state, err := corestate.New(newTestConfig(), portal.NewUnwired(), portal.NewUnwired(), nil, testLog)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !state.Terms.Has("FA22") || !state.Terms.Has("WI23") {
		t.Fatalf("expected both configured terms to be registered, got %v", state.Terms.Codes())
	}
}

func TestNewRejectsMalformedTermCode(t *testing.T) {
	cfg := newTestConfig()
	cfg.WrapperData = []config.TermDatum{{Term: "ZZ99"}}
	if _, err := corestate.New(cfg, portal.NewUnwired(), portal.NewUnwired(), nil, testLog); err == nil {
		t.Fatal("expected an error for a malformed term code")
	}
}

func TestRunningAndStopFlags(t *testing.T) {
	state, err := corestate.New(newTestConfig(), portal.NewUnwired(), portal.NewUnwired(), nil, testLog)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if state.IsRunning() {
		t.Fatal("a fresh state should not be running")
	}
	state.SetRunning(true)
	if !state.IsRunning() {
		t.Fatal("SetRunning(true) should make IsRunning report true")
	}

	if state.ShouldStop() {
		t.Fatal("a fresh state should not have a stop requested")
	}
	state.RequestStop()
	if !state.ShouldStop() {
		t.Fatal("RequestStop should make ShouldStop report true")
	}
}
