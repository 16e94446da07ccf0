package gateway

import (
	"encoding/json"
	"net/http"

	"github.com/campusdata/webreg-collector/internal/apierr"
	"github.com/campusdata/webreg-collector/internal/corestate"
	"github.com/campusdata/webreg-collector/internal/portal"
)

// checkDrift runs the portal response for a raw-mode operation through the
// state's schema guard and logs anything it flags. A malformed or
// non-object body is expected for some operations (the not-valid-JSON raw
// passthrough case) and is not itself drift, so that case is silently
// ignored here.
func checkDrift(state *corestate.State, op string, body []byte) {
	drifts, err := state.SchemaGuard.CheckResponse(op, body)
	if err != nil || state.Log == nil {
		return
	}
	for _, d := range drifts {
		state.Log.Errorf("%s: %s", op, d)
	}
}

// handleListTerms lists every configured term code.
func handleListTerms(state *corestate.State) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, state.Terms.Codes())
	}
}

// rawQuery reports whether the request asked for the portal's raw,
// pass-through response via ?raw=true.
func rawQuery(r *http.Request) bool {
	return r.URL.Query().Get("raw") == "true"
}

func handleCourseInfo(state *corestate.State) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		term := termFromContext(r.Context())
		subject := r.URL.Query().Get("subject")
		number := r.URL.Query().Get("number")
		if subject == "" || number == "" {
			writeError(w, apierr.Input("subject and number query parameters are required"))
			return
		}

		userOps := state.WrapperForwarded.Req(term.Term).Parsed().OverrideCookies(r.Header.Get("Cookie"))
		if rawQuery(r) {
			raw := state.WrapperForwarded.Req(term.Term).Raw().OverrideCookies(r.Header.Get("Cookie"))
			body, err := raw.GetCourseInfo(r.Context(), subject, number)
			if err != nil {
				writeError(w, err)
				return
			}
			checkDrift(state, "course_info", body)
			writeRawOrRaw(w, body)
			return
		}

		body, err := userOps.GetCourseInfo(r.Context(), subject, number)
		if err != nil {
			writeError(w, err)
			return
		}
		writeRawOrRaw(w, body)
	}
}

func handlePrerequisites(state *corestate.State) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		term := termFromContext(r.Context())
		subject := r.URL.Query().Get("subject")
		number := r.URL.Query().Get("number")
		if subject == "" || number == "" {
			writeError(w, apierr.Input("subject and number query parameters are required"))
			return
		}

		if rawQuery(r) {
			raw := state.WrapperForwarded.Req(term.Term).Raw().OverrideCookies(r.Header.Get("Cookie"))
			body, err := raw.GetPrerequisites(r.Context(), subject, number)
			if err != nil {
				writeError(w, err)
				return
			}
			checkDrift(state, "prerequisites", body)
			writeRawOrRaw(w, body)
			return
		}

		userOps := state.WrapperForwarded.Req(term.Term).Parsed().OverrideCookies(r.Header.Get("Cookie"))
		body, err := userOps.GetPrerequisites(r.Context(), subject, number)
		if err != nil {
			writeError(w, err)
			return
		}
		writeRawOrRaw(w, body)
	}
}

// searchBody is the untagged sum type a /live/:term/search request body
// decodes into: exactly one of sectionId, sectionIds, or an advanced search
// specification should be populated.
type searchBody struct {
	SectionID   *string              `json:"sectionId"`
	SectionIDs  []string             `json:"sectionIds"`
	Levels      []string             `json:"levels"`
	Departments []string             `json:"departments"`
	Days        []string             `json:"days"`
	StartTime   *portal.RawTimeField `json:"startTime"`
	EndTime     *portal.RawTimeField `json:"endTime"`
}

func (b searchBody) toSearchType() portal.SearchType {
	if b.SectionID != nil {
		return portal.SearchType{SectionID: *b.SectionID}
	}
	if len(b.SectionIDs) > 0 {
		return portal.SearchType{SectionIDs: b.SectionIDs}
	}
	return portal.SearchType{SearchQuery: &portal.SearchRequest{
		Levels:      portal.ParseLevels(b.Levels),
		Departments: b.Departments,
		Days:        portal.ParseDays(b.Days),
		StartTime:   portal.ParseTime(b.StartTime),
		EndTime:     portal.ParseTime(b.EndTime),
	}}
}

func handleSearch(state *corestate.State) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		term := termFromContext(r.Context())

		var body searchBody
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, apierr.Input("request body must be a valid search specification"))
			return
		}
		req := body.toSearchType()

		if rawQuery(r) {
			raw, err := state.WrapperShared.Req(term.Term).Raw().SearchCourses(r.Context(), req)
			if err != nil {
				writeError(w, err)
				return
			}
			checkDrift(state, "search", raw)
			writeRawOrRaw(w, raw)
			return
		}

		sections, err := state.WrapperShared.Req(term.Term).Parsed().SearchCourses(r.Context(), req)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, sections)
	}
}

func handleSubjectCodes(state *corestate.State) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		term := termFromContext(r.Context())
		userOps := state.WrapperForwarded.Req(term.Term).Parsed().OverrideCookies(r.Header.Get("Cookie"))
		codes, err := userOps.GetSubjectCodes(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, codes)
	}
}

func handleDepartmentCodes(state *corestate.State) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		term := termFromContext(r.Context())
		userOps := state.WrapperForwarded.Req(term.Term).Parsed().OverrideCookies(r.Header.Get("Cookie"))
		codes, err := userOps.GetDepartmentCodes(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, codes)
	}
}

// writeRawOrRaw writes body verbatim with 200. It is labelled
// application/json only when it is valid JSON; a non-JSON body is returned
// as-is without that content type.
func writeRawOrRaw(w http.ResponseWriter, body []byte) {
	var probe interface{}
	if json.Unmarshal(body, &probe) == nil {
		w.Header().Set("Content-Type", "application/json")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
