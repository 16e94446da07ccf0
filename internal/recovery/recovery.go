// Package recovery implements Session Recovery (spec.md §4.4): the login
// and re-registration state machine run on initial startup and after any
// term worker exits while the process is not shutting down.
//
// Grounded on original_source/crates/webreg/src/scraper/tracker.rs's
// try_login/login_with_cookies, using an exponential-backoff retry shape
// with a capped failure count before giving up.
package recovery

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/campusdata/webreg-collector/internal/corestate"
	"github.com/campusdata/webreg-collector/internal/logging"
	"github.com/campusdata/webreg-collector/internal/portal"
)

const (
	maxLoginFailures    = 30
	maxRegisterAttempts = 25
	baseDelay           = 8 * time.Second
	generalDelay        = 3 * time.Second
	backoffGrowth       = 1.2
)

type cookieResponse struct {
	Cookie interface{} `json:"cookie"`
}

// Run executes the full Session Recovery state machine against state,
// returning true iff a usable session was established. It never returns
// while the process-wide stop flag is set without first checking it.
func Run(ctx context.Context, state *corestate.State, log *logging.Logger) bool {
	n := 0
	for n <= maxLoginFailures {
		delay := time.Duration(math.Pow(backoffGrowth, float64(n)) * float64(baseDelay))
		select {
		case <-ctx.Done():
			return false
		case <-time.After(delay):
		}

		if state.ShouldStop() {
			return false
		}

		cookies, ready, err := fetchCookie(ctx, state)
		if err != nil {
			log.Errorf("recovery: fetch cookie: %v", err)
			n++
			continue
		}
		if !ready {
			// The cookie server signals "not ready yet" by omitting a string
			// cookie field; this is not a failure, so n is not incremented.
			continue
		}

		if register(ctx, state, cookies, log) {
			return true
		}
		n++
	}
	return false
}

// fetchCookie performs one GET against the cookie server's /cookie
// endpoint. ready is false when the body parses but the "cookie" field is
// not a string — the portal's signal that the cookie is not ready yet.
func fetchCookie(ctx context.Context, state *corestate.State) (cookies string, ready bool, err error) {
	url := fmt.Sprintf("http://%s/cookie", state.CookieServer.String())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", false, fmt.Errorf("build request: %w", err)
	}

	resp, err := state.HTTPClient.Do(req)
	if err != nil {
		return "", false, fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", false, fmt.Errorf("read body: %w", err)
	}

	var parsed cookieResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", false, fmt.Errorf("parse body: %w", err)
	}

	cookie, ok := parsed.Cookie.(string)
	if !ok {
		return "", false, nil
	}
	return cookie, true, nil
}

// register drives the second half of spec.md §4.4: set the shared
// wrapper's cookies, re-register all terms, and confirm each configured
// term actually yields a course via an empty-builder search before
// declaring the session usable.
func register(ctx context.Context, state *corestate.State, cookies string, log *logging.Logger) bool {
	state.WrapperShared.SetCookies(cookies)

	t := 0
	for t <= maxRegisterAttempts {
		select {
		case <-ctx.Done():
			return false
		case <-time.After(generalDelay):
		}

		if err := state.WrapperShared.RegisterAllTerms(ctx); err != nil {
			log.Errorf("recovery: register all terms: %v", err)
			t++
			continue
		}

		ok := true
		for _, term := range state.Terms.All() {
			sections, err := state.WrapperShared.Req(term.Term).Parsed().SearchCourses(ctx, portal.SearchType{})
			if err != nil || len(sections) == 0 {
				ok = false
				break
			}
		}
		if ok {
			return true
		}
		t++
	}
	return false
}
