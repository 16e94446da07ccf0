// Package corestate holds the Wrapper State of spec.md §3: the single
// process-wide structure tying together the term registry, the shared
// portal wrapper, the cookie-forwarding wrapper, and the running/stop
// flags that the Tracker Loop and the HTTP Gateway both read.
//
// Grounded on original_source/crates/webreg/src/types.rs's WrapperState.
package corestate

import (
	"net/http"
	"sync/atomic"
	"time"

	"github.com/campusdata/webreg-collector/internal/config"
	"github.com/campusdata/webreg-collector/internal/keystore"
	"github.com/campusdata/webreg-collector/internal/logging"
	"github.com/campusdata/webreg-collector/internal/portal"
	"github.com/campusdata/webreg-collector/internal/schema"
	"github.com/campusdata/webreg-collector/internal/termreg"
)

// State is the process-wide Wrapper State. One instance is constructed at
// startup and shared, by pointer, with the Tracker Loop and the HTTP
// Gateway for the lifetime of the process.
type State struct {
	Terms *termreg.Registry

	stopFlag  atomic.Bool
	isRunning atomic.Bool

	HTTPClient *http.Client

	// WrapperShared is used for non-user requests (catalog/search); its
	// cookies are rotated in place by Session Recovery.
	WrapperShared portal.Wrapper
	// WrapperForwarded is configured to close its connection after each
	// request; handlers that override cookies per caller use this one so a
	// caller's session never lingers in a pooled connection.
	WrapperForwarded portal.Wrapper

	APIBaseEndpoint config.AddressPort
	CookieServer    config.AddressPort

	// KeyStore is present only when the API-key-auth middleware is enabled.
	KeyStore *keystore.Store

	// SchemaGuard flags portal responses whose JSON shape has drifted from
	// the first one seen for a given operation, so raw-mode handlers can
	// surface "the portal changed shape" instead of failing silently.
	SchemaGuard *schema.Guard

	Log *logging.Logger
}

// New constructs a State from a loaded Config and the two wrapper handles.
// The caller supplies the wrappers because their concrete construction
// depends on the external portal wrapper library, which this package does
// not implement (see internal/portal).
func New(cfg *config.Config, shared, forwarded portal.Wrapper, ks *keystore.Store, log *logging.Logger) (*State, error) {
	reg, err := termreg.NewRegistry(cfg.WrapperData)
	if err != nil {
		return nil, err
	}

	return &State{
		Terms:            reg,
		HTTPClient:       portal.NewHTTPClient(30 * time.Second),
		WrapperShared:    shared,
		WrapperForwarded: forwarded,
		APIBaseEndpoint:  cfg.APIBaseEndpoint,
		CookieServer:     cfg.CookieServer,
		KeyStore:         ks,
		SchemaGuard:      schema.NewGuard(),
		Log:              log,
	}, nil
}

// IsRunning reports whether the Tracker Loop is currently actively polling.
func (s *State) IsRunning() bool { return s.isRunning.Load() }

// SetRunning transitions the running flag. The Tracker Loop is the only
// writer; it is invariant that this is set true strictly before polling
// begins and false strictly after the last poll returns.
func (s *State) SetRunning(running bool) { s.isRunning.Store(running) }

// ShouldStop reports whether a shutdown has been requested.
func (s *State) ShouldStop() bool { return s.stopFlag.Load() }

// RequestStop sets the global stop flag. Set exactly once, by the signal
// handler; once true it never becomes false again.
func (s *State) RequestStop() { s.stopFlag.Store(true) }
