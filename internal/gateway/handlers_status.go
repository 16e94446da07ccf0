package gateway

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/campusdata/webreg-collector/internal/apierr"
	"github.com/campusdata/webreg-collector/internal/corestate"
)

// handleHealth reports whether the tracker loop is actively polling.
func handleHealth(state *corestate.State) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"api": state.IsRunning()})
	}
}

// handleTiming returns the term's Stats Tracker snapshot.
func handleTiming(state *corestate.State) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		term := termFromContext(r.Context())
		numRequests, totalTimeMs, recent := term.Stats.Snapshot()
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"ttl_requests":    numRequests,
			"ttl_time_ms":     totalTimeMs,
			"recent_requests": recent,
		})
	}
}

var allowedLoginStats = map[string]bool{"start": true, "history": true}

// handleLoginStat proxies to the cookie server's /<stat> endpoint, where
// stat is restricted to {start, history}. Falls back to "0" for start and
// "[]" for history if the upstream body cannot be parsed, matching the
// original's tolerance for a half-initialized cookie server.
func handleLoginStat(state *corestate.State) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stat := chi.URLParam(r, "stat")
		if !allowedLoginStats[stat] {
			writeError(w, apierr.General(http.StatusBadRequest, "stat must be one of: start, history", stat))
			return
		}

		url := fmt.Sprintf("http://%s/%s", state.CookieServer.String(), stat)
		req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, url, nil)
		if err != nil {
			writeError(w, apierr.URLParse(err))
			return
		}

		resp, err := state.HTTPClient.Do(req)
		if err != nil {
			writeError(w, apierr.Transport(err))
			return
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		if err != nil {
			writeError(w, apierr.Transport(err))
			return
		}

		var parsed interface{}
		if json.Unmarshal(body, &parsed) != nil {
			if stat == "start" {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte("0"))
			} else {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte("[]"))
			}
			return
		}
		writeJSON(w, http.StatusOK, parsed)
	}
}
