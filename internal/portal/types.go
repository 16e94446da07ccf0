// Package portal defines the contract this collector holds against the
// portal wrapper: the data types exchanged and the operations consumed.
// There is no implementation of the wrapper itself here — it is an external
// collaborator (a separate scraping library, analogous to the original
// Rust implementation's webweg crate) that this repo only calls through the
// Wrapper interface.
package portal

import "context"

// EnrollmentStatus is the status of one section on a student's schedule,
// as returned by the portal. Only Enrolled and Waitlisted sections are
// droppable (spec.md §4.5's drop_section precondition).
type EnrollmentStatus string

const (
	Enrolled  EnrollmentStatus = "enrolled"
	Waitlist  EnrollmentStatus = "waitlist"
	Planned   EnrollmentStatus = "planned"
	Dropped   EnrollmentStatus = "dropped"
)

// SectionSummary is one section row as returned by a catalog/advanced
// search, carrying everything the Tracker Loop needs to write a CSV row.
type SectionSummary struct {
	SubjectCourseID string
	SectionCode     string
	SectionID       string
	Instructors     []string
	Available       int
	Waitlist        int
	Total           int
}

// EnrollmentCount is the result of a per-(subject, course) enrollment-count
// poll: one entry per section of that course.
type EnrollmentCount struct {
	SubjectCourseID string
	SectionCode     string
	SectionID       string
	Instructors     []string
	Available       int
	Waitlist        int
	Total           int
	EnrolledCount   int
}

// ScheduleEntry is one row of a student's schedule, used by the drop_section
// handler to find the section being dropped and its current status.
type ScheduleEntry struct {
	SectionID string
	Status    EnrollmentStatus
}

// CourseLevel is a search-filter level token: lower-division,
// upper-division, or graduate. Translated from request-body strings
// "l"/"u"/"g" per spec.md §4.5.
type CourseLevel string

const (
	LowerDivision CourseLevel = "lower"
	UpperDivision CourseLevel = "upper"
	Graduate      CourseLevel = "graduate"
)

// DayOfWeek is a meeting-day token, translated from request-body strings
// like "M", "Tu", "Th" per spec.md §4.5.
type DayOfWeek string

const (
	Monday    DayOfWeek = "M"
	Tuesday   DayOfWeek = "Tu"
	Wednesday DayOfWeek = "W"
	Thursday  DayOfWeek = "Th"
	Friday    DayOfWeek = "F"
	Saturday  DayOfWeek = "Sa"
	Sunday    DayOfWeek = "Su"
)

// TimeOfDay is an hour/minute pair, only meaningful when both fields were
// supplied together in the request body (spec.md §4.5).
type TimeOfDay struct {
	Hour   uint32
	Minute uint32
}

// SearchRequest is the translated advanced-search specification built from
// a term's configured SearchQuery or from a live /search request body.
type SearchRequest struct {
	Levels      []CourseLevel
	Departments []string
	Days        []DayOfWeek
	StartTime   *TimeOfDay
	EndTime     *TimeOfDay
}

// SearchType is the untagged sum type a /live/:term/search body decodes
// into: either an explicit section ID, a list of section IDs, or an
// advanced search specification.
type SearchType struct {
	SectionID   string
	SectionIDs  []string
	SearchQuery *SearchRequest
}

// AddType distinguishes an ordinary add from a waitlist add.
type AddType string

const (
	AddEnroll   AddType = "enroll"
	AddWaitlist AddType = "waitlist"
)

// ExplicitAddType pairs the section ID being dropped with the add type it
// was enrolled under, as derived by the drop_section handler from the
// student's existing schedule entry.
type ExplicitAddType struct {
	SectionID string
	Kind      AddType
}

// Wrapper is the contract this collector holds against the portal wrapper
// library per spec.md §6.3. SetCookies and RegisterAllTerms act on the
// wrapper's own internal cookie jar; every other operation is scoped to one
// term (req) and optionally overrides cookies for a single call
// (OverrideCookies), as used by handlers forwarding a caller's own session.
type Wrapper interface {
	SetCookies(cookies string)
	RegisterAllTerms(ctx context.Context) error

	Req(term string) TermOps
}

// TermOps is the set of operations scoped to a single term.
type TermOps interface {
	Parsed() ParsedOps
	Raw() RawOps
}

// ParsedOps are operations whose response is decoded into the Go domain
// types above.
type ParsedOps interface {
	SearchCourses(ctx context.Context, req SearchType) ([]SectionSummary, error)
	GetEnrollmentCount(ctx context.Context, subject, course string) ([]EnrollmentCount, error)

	// OverrideCookies scopes the remaining per-user operations to the given
	// caller-supplied cookie string for this call only, leaving the
	// wrapper's own shared cookies untouched.
	OverrideCookies(cookies string) UserOps
}

// RawOps mirrors ParsedOps but returns the portal's response body
// unmodified, per spec.md §6.3's raw-variant contract.
type RawOps interface {
	SearchCourses(ctx context.Context, req SearchType) ([]byte, error)
	GetEnrollmentCount(ctx context.Context, subject, course string) ([]byte, error)
	OverrideCookies(cookies string) RawUserOps
}

// GradeOption is the grading basis requested for an add/plan operation.
// An unrecognised request value defaults to Letter, matching the portal's
// own fallback.
type GradeOption string

const (
	Letter      GradeOption = "L"
	PassNoPass  GradeOption = "P"
	Satisfactory GradeOption = "S"
)

// ParseGradeOption translates a request-body grading-option string,
// defaulting to Letter for anything unrecognised or absent.
func ParseGradeOption(raw *string) GradeOption {
	if raw == nil {
		return Letter
	}
	switch *raw {
	case "L", "l":
		return Letter
	case "P", "p":
		return PassNoPass
	case "S", "s":
		return Satisfactory
	default:
		return Letter
	}
}

// AddSectionRequest carries the fields needed to enroll in or waitlist a
// section: the section ID, grading basis, and an optional unit-count
// override.
type AddSectionRequest struct {
	SectionID     string
	GradingOption GradeOption
	UnitCount     *uint8
}

// PlanAddRequest carries the fields needed to add a section to a student's
// saved plan.
type PlanAddRequest struct {
	SubjectCode   string
	CourseCode    string
	SectionID     string
	SectionCode   string
	GradingOption GradeOption
	ScheduleName  *string
	UnitCount     uint8
}

// UserOps are the per-user (cookie-forwarded) operations, parsed form.
// Most mutating operations return the portal's own success acknowledgement
// value verbatim rather than a fixed Go type, since the portal's notion of
// "success" varies in shape per operation; handlers wrap it as
// {"success": <value>}.
type UserOps interface {
	GetSchedule(ctx context.Context, scheduleName *string) ([]ScheduleEntry, error)
	GetScheduleList(ctx context.Context) ([]string, error)
	GetEvents(ctx context.Context) (interface{}, error)
	RenameSchedule(ctx context.Context, oldName, newName string) (interface{}, error)
	AddSection(ctx context.Context, req AddSectionRequest, validate bool) (interface{}, error)
	ValidateAddSection(ctx context.Context, req AddSectionRequest) (interface{}, error)
	DropSection(ctx context.Context, addType ExplicitAddType) (interface{}, error)
	AddToPlan(ctx context.Context, req PlanAddRequest, validate bool) (interface{}, error)
	ValidateAddToPlan(ctx context.Context, req PlanAddRequest) (interface{}, error)
	RemoveFromPlan(ctx context.Context, sectionID string, scheduleName *string) (interface{}, error)
	AssociateTerm(ctx context.Context) error
	GetCourseInfo(ctx context.Context, subject, number string) ([]byte, error)
	GetPrerequisites(ctx context.Context, subject, number string) ([]byte, error)
	GetSubjectCodes(ctx context.Context) ([]string, error)
	GetDepartmentCodes(ctx context.Context) ([]string, error)
}

// RawUserOps mirrors UserOps but every operation returns the raw response
// body.
type RawUserOps interface {
	GetSchedule(ctx context.Context, scheduleName *string) ([]byte, error)
	GetScheduleList(ctx context.Context) ([]byte, error)
	GetEvents(ctx context.Context) ([]byte, error)
	RenameSchedule(ctx context.Context, oldName, newName string) ([]byte, error)
	AddSection(ctx context.Context, req AddSectionRequest, validate bool) ([]byte, error)
	ValidateAddSection(ctx context.Context, req AddSectionRequest) ([]byte, error)
	DropSection(ctx context.Context, addType ExplicitAddType) ([]byte, error)
	AddToPlan(ctx context.Context, req PlanAddRequest, validate bool) ([]byte, error)
	ValidateAddToPlan(ctx context.Context, req PlanAddRequest) ([]byte, error)
	RemoveFromPlan(ctx context.Context, sectionID string, scheduleName *string) ([]byte, error)
	AssociateTerm(ctx context.Context) ([]byte, error)
	GetCourseInfo(ctx context.Context, subject, number string) ([]byte, error)
	GetPrerequisites(ctx context.Context, subject, number string) ([]byte, error)
	GetSubjectCodes(ctx context.Context) ([]byte, error)
	GetDepartmentCodes(ctx context.Context) ([]byte, error)
}
