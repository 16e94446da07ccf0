package portal

import (
	"context"
	"errors"
)

// errNotWired is returned by every operation on unwiredWrapper: it exists
// only so this repo compiles and runs its own control flow (Session
// Recovery, the Tracker Loop, the HTTP Gateway) standalone. Production
// deployment plugs in a real Wrapper backed by an actual portal client
// library; this repo does not implement one, per its external-collaborator
// contract (§6.3).
var errNotWired = errors.New("portal: no wrapper implementation has been wired in")

type unwiredWrapper struct{}

// NewUnwired returns a Wrapper whose every operation fails with
// errNotWired. It is the default used by cmd/webreg-collector until a real
// wrapper is configured, and lets the rest of this repo (config loading,
// Session Recovery's retry/backoff shape, the Tracker Loop's fan-out, the
// HTTP Gateway's routing and middleware) be exercised and tested on its own.
func NewUnwired() Wrapper { return unwiredWrapper{} }

func (unwiredWrapper) SetCookies(string) {}

func (unwiredWrapper) RegisterAllTerms(context.Context) error { return errNotWired }

func (unwiredWrapper) Req(string) TermOps { return unwiredTermOps{} }

type unwiredTermOps struct{}

func (unwiredTermOps) Parsed() ParsedOps { return unwiredParsedOps{} }
func (unwiredTermOps) Raw() RawOps       { return unwiredRawOps{} }

type unwiredParsedOps struct{}

func (unwiredParsedOps) SearchCourses(context.Context, SearchType) ([]SectionSummary, error) {
	return nil, errNotWired
}
func (unwiredParsedOps) GetEnrollmentCount(context.Context, string, string) ([]EnrollmentCount, error) {
	return nil, errNotWired
}
func (unwiredParsedOps) OverrideCookies(string) UserOps { return unwiredUserOps{} }

type unwiredRawOps struct{}

func (unwiredRawOps) SearchCourses(context.Context, SearchType) ([]byte, error) {
	return nil, errNotWired
}
func (unwiredRawOps) GetEnrollmentCount(context.Context, string, string) ([]byte, error) {
	return nil, errNotWired
}
func (unwiredRawOps) OverrideCookies(string) RawUserOps { return unwiredRawUserOps{} }

type unwiredUserOps struct{}

func (unwiredUserOps) GetSchedule(context.Context, *string) ([]ScheduleEntry, error) {
	return nil, errNotWired
}
func (unwiredUserOps) GetScheduleList(context.Context) ([]string, error) { return nil, errNotWired }
func (unwiredUserOps) GetEvents(context.Context) (interface{}, error)    { return nil, errNotWired }
func (unwiredUserOps) RenameSchedule(context.Context, string, string) (interface{}, error) {
	return nil, errNotWired
}
func (unwiredUserOps) AddSection(context.Context, AddSectionRequest, bool) (interface{}, error) {
	return nil, errNotWired
}
func (unwiredUserOps) ValidateAddSection(context.Context, AddSectionRequest) (interface{}, error) {
	return nil, errNotWired
}
func (unwiredUserOps) DropSection(context.Context, ExplicitAddType) (interface{}, error) {
	return nil, errNotWired
}
func (unwiredUserOps) AddToPlan(context.Context, PlanAddRequest, bool) (interface{}, error) {
	return nil, errNotWired
}
func (unwiredUserOps) ValidateAddToPlan(context.Context, PlanAddRequest) (interface{}, error) {
	return nil, errNotWired
}
func (unwiredUserOps) RemoveFromPlan(context.Context, string, *string) (interface{}, error) {
	return nil, errNotWired
}
func (unwiredUserOps) AssociateTerm(context.Context) error { return errNotWired }
func (unwiredUserOps) GetCourseInfo(context.Context, string, string) ([]byte, error) {
	return nil, errNotWired
}
func (unwiredUserOps) GetPrerequisites(context.Context, string, string) ([]byte, error) {
	return nil, errNotWired
}
func (unwiredUserOps) GetSubjectCodes(context.Context) ([]string, error)    { return nil, errNotWired }
func (unwiredUserOps) GetDepartmentCodes(context.Context) ([]string, error) { return nil, errNotWired }

type unwiredRawUserOps struct{}

func (unwiredRawUserOps) GetSchedule(context.Context, *string) ([]byte, error) {
	return nil, errNotWired
}
func (unwiredRawUserOps) GetScheduleList(context.Context) ([]byte, error) { return nil, errNotWired }
func (unwiredRawUserOps) GetEvents(context.Context) ([]byte, error)       { return nil, errNotWired }
func (unwiredRawUserOps) RenameSchedule(context.Context, string, string) ([]byte, error) {
	return nil, errNotWired
}
func (unwiredRawUserOps) AddSection(context.Context, AddSectionRequest, bool) ([]byte, error) {
	return nil, errNotWired
}
func (unwiredRawUserOps) ValidateAddSection(context.Context, AddSectionRequest) ([]byte, error) {
	return nil, errNotWired
}
func (unwiredRawUserOps) DropSection(context.Context, ExplicitAddType) ([]byte, error) {
	return nil, errNotWired
}
func (unwiredRawUserOps) AddToPlan(context.Context, PlanAddRequest, bool) ([]byte, error) {
	return nil, errNotWired
}
func (unwiredRawUserOps) ValidateAddToPlan(context.Context, PlanAddRequest) ([]byte, error) {
	return nil, errNotWired
}
func (unwiredRawUserOps) RemoveFromPlan(context.Context, string, *string) ([]byte, error) {
	return nil, errNotWired
}
func (unwiredRawUserOps) AssociateTerm(context.Context) ([]byte, error) { return nil, errNotWired }
func (unwiredRawUserOps) GetCourseInfo(context.Context, string, string) ([]byte, error) {
	return nil, errNotWired
}
func (unwiredRawUserOps) GetPrerequisites(context.Context, string, string) ([]byte, error) {
	return nil, errNotWired
}
func (unwiredRawUserOps) GetSubjectCodes(context.Context) ([]byte, error)    { return nil, errNotWired }
func (unwiredRawUserOps) GetDepartmentCodes(context.Context) ([]byte, error) { return nil, errNotWired }
