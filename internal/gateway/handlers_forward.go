package gateway

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/campusdata/webreg-collector/internal/apierr"
	"github.com/campusdata/webreg-collector/internal/corestate"
	"github.com/campusdata/webreg-collector/internal/portal"
)

// forwardedUser resolves the per-user operations handle for this request,
// scoped to the term in context and the caller's forwarded cookies.
func forwardedUser(state *corestate.State, r *http.Request) portal.UserOps {
	term := termFromContext(r.Context())
	return state.WrapperForwarded.Req(term.Term).Parsed().OverrideCookies(r.Header.Get("Cookie"))
}

func writeSuccess(w http.ResponseWriter, value interface{}) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": value})
}

func handleRegisterTerm(state *corestate.State) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := forwardedUser(state, r).AssociateTerm(r.Context()); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleSchedule(state *corestate.State) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var name *string
		if n := r.URL.Query().Get("name"); n != "" {
			name = &n
		}

		if rawQuery(r) {
			term := termFromContext(r.Context())
			raw := state.WrapperForwarded.Req(term.Term).Raw().OverrideCookies(r.Header.Get("Cookie"))
			body, err := raw.GetSchedule(r.Context(), name)
			if err != nil {
				writeError(w, err)
				return
			}
			writeRawOrRaw(w, body)
			return
		}

		entries, err := forwardedUser(state, r).GetSchedule(r.Context(), name)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, entries)
	}
}

func handleScheduleList(state *corestate.State) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		names, err := forwardedUser(state, r).GetScheduleList(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, names)
	}
}

func handleEvents(state *corestate.State) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		val, err := forwardedUser(state, r).GetEvents(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeSuccess(w, val)
	}
}

type renameScheduleBody struct {
	OldName string `json:"oldName"`
	NewName string `json:"newName"`
}

func handleRenameSchedule(state *corestate.State) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body renameScheduleBody
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, apierr.Input("request body must specify oldName and newName"))
			return
		}
		val, err := forwardedUser(state, r).RenameSchedule(r.Context(), body.OldName, body.NewName)
		if err != nil {
			writeError(w, err)
			return
		}
		writeSuccess(w, val)
	}
}

type addSectionBody struct {
	SectionID     string  `json:"sectionId"`
	GradingOption *string `json:"gradingOption"`
	UnitCount     *int64  `json:"unitCount"`
	Validate      *bool   `json:"validate"`
}

func (b addSectionBody) toRequest() portal.AddSectionRequest {
	req := portal.AddSectionRequest{
		SectionID:     b.SectionID,
		GradingOption: portal.ParseGradeOption(b.GradingOption),
	}
	if b.UnitCount != nil && *b.UnitCount >= 0 && *b.UnitCount <= 255 {
		u := uint8(*b.UnitCount)
		req.UnitCount = &u
	}
	return req
}

func (b addSectionBody) shouldValidate() bool {
	if b.Validate == nil {
		return true
	}
	return *b.Validate
}

func handleAddSection(state *corestate.State) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body addSectionBody
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, apierr.Input("request body must specify sectionId"))
			return
		}
		val, err := forwardedUser(state, r).AddSection(r.Context(), body.toRequest(), body.shouldValidate())
		if err != nil {
			writeError(w, err)
			return
		}
		writeSuccess(w, val)
	}
}

func handleValidateAddSection(state *corestate.State) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body addSectionBody
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, apierr.Input("request body must specify sectionId"))
			return
		}
		val, err := forwardedUser(state, r).ValidateAddSection(r.Context(), body.toRequest())
		if err != nil {
			writeError(w, err)
			return
		}
		writeSuccess(w, val)
	}
}

type sectionIDBody struct {
	SectionID string `json:"sectionId"`
}

// handleDropSection is not a direct pass-through: it first fetches the
// caller's schedule to determine whether the target section is enrolled or
// waitlisted (only those two states are droppable), then drops it with the
// corresponding add type. A section absent from the schedule, or present
// with a non-droppable status, is reported as 404.
func handleDropSection(state *corestate.State) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body sectionIDBody
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, apierr.Input("request body must specify sectionId"))
			return
		}

		user := forwardedUser(state, r)
		schedule, err := user.GetSchedule(r.Context(), nil)
		if err != nil {
			writeError(w, err)
			return
		}

		var kind portal.AddType
		found := false
		for _, entry := range schedule {
			if entry.SectionID != body.SectionID {
				continue
			}
			switch entry.Status {
			case portal.Enrolled:
				kind, found = portal.AddEnroll, true
			case portal.Waitlist:
				kind, found = portal.AddWaitlist, true
			}
			break
		}
		if !found {
			writeError(w, apierr.SectionNotFound(fmt.Sprintf("you don't appear to be enrolled in section %s", body.SectionID)))
			return
		}

		val, err := user.DropSection(r.Context(), portal.ExplicitAddType{SectionID: body.SectionID, Kind: kind})
		if err != nil {
			writeError(w, err)
			return
		}
		writeSuccess(w, val)
	}
}

type planAddBody struct {
	SubjectCode   string  `json:"subjectCode"`
	CourseCode    string  `json:"courseCode"`
	SectionID     string  `json:"sectionId"`
	SectionCode   string  `json:"sectionCode"`
	GradingOption *string `json:"gradingOption"`
	ScheduleName  *string `json:"scheduleName"`
	UnitCount     int64   `json:"unitCount"`
	Validate      *bool   `json:"validate"`
}

func (b planAddBody) toRequest() portal.PlanAddRequest {
	unitCount := b.UnitCount
	if unitCount < 0 || unitCount > 255 {
		unitCount = 4
	}
	return portal.PlanAddRequest{
		SubjectCode:   b.SubjectCode,
		CourseCode:    b.CourseCode,
		SectionID:     b.SectionID,
		SectionCode:   b.SectionCode,
		GradingOption: portal.ParseGradeOption(b.GradingOption),
		ScheduleName:  b.ScheduleName,
		UnitCount:     uint8(unitCount),
	}
}

func (b planAddBody) shouldValidate() bool {
	if b.Validate == nil {
		return true
	}
	return *b.Validate
}

func handleAddPlan(state *corestate.State) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body planAddBody
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, apierr.Input("request body must specify a plan-add specification"))
			return
		}
		val, err := forwardedUser(state, r).AddToPlan(r.Context(), body.toRequest(), body.shouldValidate())
		if err != nil {
			writeError(w, err)
			return
		}
		writeSuccess(w, val)
	}
}

func handleValidateAddPlan(state *corestate.State) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body planAddBody
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, apierr.Input("request body must specify a plan-add specification"))
			return
		}
		val, err := forwardedUser(state, r).ValidateAddToPlan(r.Context(), body.toRequest())
		if err != nil {
			writeError(w, err)
			return
		}
		writeSuccess(w, val)
	}
}

func handleRemovePlan(state *corestate.State) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body sectionScheduleNameBody
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, apierr.Input("request body must specify sectionId"))
			return
		}
		val, err := forwardedUser(state, r).RemoveFromPlan(r.Context(), body.SectionID, body.ScheduleName)
		if err != nil {
			writeError(w, err)
			return
		}
		writeSuccess(w, val)
	}
}

type sectionScheduleNameBody struct {
	SectionID    string  `json:"sectionId"`
	ScheduleName *string `json:"scheduleName"`
}
