// Package gateway implements the HTTP Gateway of spec.md §4.5: a router
// with four conditionally-applied middleware layers in front of the
// status, live-query, and cookie-forwarded schedule endpoints.
//
// Grounded on the four middleware files and the endpoint handlers of
// original_source/crates/webreg/src/server/, generalized from axum's
// State-extractor style to chi's router + per-route middleware chaining.
package gateway

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/campusdata/webreg-collector/internal/corestate"
)

// New builds the full router. requireAuth enables the API-key-auth layer
// on the cookie-forwarded schedule routes when the Key Store is
// configured; when false (no --keys flag at startup) those routes run
// without it.
func New(state *corestate.State, requireAuth bool) http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", "Cookie"},
	}))

	r.Get("/health", handleHealth(state))
	r.Get("/login_stat/{stat}", handleLoginStat(state))

	r.Route("/timing/{term}", func(r chi.Router) {
		r.Use(termValidation(state))
		r.Get("/", handleTiming(state))
	})

	r.Route("/live/{term}", func(r chi.Router) {
		r.Use(readiness(state))

		r.Get("/terms", handleListTerms(state))

		r.Group(func(r chi.Router) {
			r.Use(termValidation(state))

			r.Get("/course_info", handleCourseInfo(state))
			r.Get("/prerequisites", handlePrerequisites(state))
			r.Get("/search", handleSearch(state))
			r.Get("/subject_codes", handleSubjectCodes(state))
			r.Get("/department_codes", handleDepartmentCodes(state))

			r.Group(func(r chi.Router) {
				r.Use(cookiePresence)
				if requireAuth && state.KeyStore != nil {
					r.Use(apiKeyAuth(state.KeyStore))
				}

				r.Get("/schedule", handleSchedule(state))
				r.Get("/schedule_list", handleScheduleList(state))
				r.Get("/events", handleEvents(state))
				r.Post("/register_term", handleRegisterTerm(state))
				r.Post("/add_section", handleAddSection(state))
				r.Post("/validate_add_section", handleValidateAddSection(state))
				r.Post("/drop_section", handleDropSection(state))
				r.Post("/add_plan", handleAddPlan(state))
				r.Post("/validate_add_plan", handleValidateAddPlan(state))
				r.Post("/remove_plan", handleRemovePlan(state))
				r.Post("/rename_schedule", handleRenameSchedule(state))
			})
		})
	})

	return r
}
