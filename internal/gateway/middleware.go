package gateway

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/campusdata/webreg-collector/internal/apierr"
	"github.com/campusdata/webreg-collector/internal/corestate"
	"github.com/campusdata/webreg-collector/internal/keystore"
)

// readiness rejects with 500 when the tracker loop has not completed
// initial login or is between recovery cycles, per spec.md §4.5.
func readiness(state *corestate.State) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !state.IsRunning() {
				writeError(w, apierr.General(http.StatusInternalServerError,
					"the API isn't ready to make requests at this time", ""))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// termValidation rejects with 404 when the ":term" path parameter does not
// name a configured term, case-insensitively, and injects the matched Info
// into the request context for handlers to use.
func termValidation(state *corestate.State) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			code := chi.URLParam(r, "term")
			info, ok := state.Terms.Get(code)
			if !ok {
				writeError(w, apierr.General(http.StatusNotFound, "the specified term cannot be found", code))
				return
			}
			next.ServeHTTP(w, r.WithContext(withTerm(r.Context(), info)))
		})
	}
}

// cookiePresence requires a non-empty, ASCII Cookie header, rejecting with
// 400 otherwise.
func cookiePresence(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie := r.Header.Get("Cookie")
		if cookie == "" {
			writeError(w, apierr.General(http.StatusBadRequest,
				"you must provide your portal cookies for this endpoint", ""))
			return
		}
		if !isASCII(cookie) {
			writeError(w, apierr.General(http.StatusBadRequest,
				"your cookies must only contain ASCII characters", ""))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] > 127 {
			return false
		}
	}
	return true
}

// apiKeyAuth requires "Authorization: Bearer <prefix>#<token>" and validates
// it against the Key Store, injecting the prefix into the request context
// on success.
func apiKeyAuth(ks *keystore.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok || token == "" {
				writeError(w, apierr.General(http.StatusUnauthorized, "you didn't provide a bearer token", ""))
				return
			}

			prefix, key, ok := strings.Cut(token, "#")
			if !ok {
				writeError(w, apierr.General(http.StatusUnauthorized,
					"token is in an invalid format (missing separator)", ""))
				return
			}

			result, err := ks.Check(prefix, key)
			if err != nil {
				writeError(w, apierr.General(http.StatusInternalServerError, "could not validate token", err.Error()))
				return
			}

			switch result {
			case keystore.Valid:
				next.ServeHTTP(w, r.WithContext(withKeyPrefix(r.Context(), prefix)))
			case keystore.ExpiredKey:
				writeError(w, apierr.General(http.StatusUnauthorized, "token is expired", ""))
			default:
				writeError(w, apierr.General(http.StatusUnauthorized, "token is invalid or the key doesn't exist", ""))
			}
		})
	}
}
