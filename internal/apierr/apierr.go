// Package apierr implements the error taxonomy of spec.md §7: portal and
// transport failures translated into HTTP status codes and a standard JSON
// error body.
//
// Grounded on original_source/crates/webreg/src/server/types.rs's
// ApiErrorType enum; the Kind constants below are the Go analogue of that
// enum's variants.
package apierr

import (
	"fmt"
	"net/http"
)

// Kind classifies the error for logging. It does not determine the HTTP
// status: every constructor sets Status explicitly.
type Kind string

const (
	KindTransport       Kind = "transport"
	KindURLParse        Kind = "url_parse"
	KindInput           Kind = "input"
	KindDeserialize     Kind = "deserialize"
	KindPortalStatus    Kind = "portal_status"
	KindPortalBusiness  Kind = "portal_business"
	KindSectionNotFound Kind = "section_not_found"
	KindSessionInvalid  Kind = "session_invalid"
	KindTimeParse       Kind = "time_parse"
	KindGeneral         Kind = "general"
)

// APIError is the error type every HTTP handler surfaces to callers. It
// satisfies the standard error interface so it can be returned, wrapped, and
// inspected with errors.As like any other error.
type APIError struct {
	Kind    Kind
	Status  int
	Message string
	Context string
	Err     error
}

func (e *APIError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Message, e.Context)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *APIError) Unwrap() error { return e.Err }

// Body is the standard JSON error body shape: {"error": "...", "context": "..."}.
func (e *APIError) Body() map[string]string {
	b := map[string]string{"error": e.Message}
	if e.Context != "" {
		b["context"] = e.Context
	}
	return b
}

func newErr(kind Kind, status int, msg string, err error) *APIError {
	ctx := ""
	if err != nil {
		ctx = err.Error()
	}
	return &APIError{Kind: kind, Status: status, Message: msg, Context: ctx, Err: err}
}

// Transport wraps an outbound HTTP transport failure. Mapped to 500.
func Transport(err error) *APIError {
	return newErr(KindTransport, http.StatusInternalServerError, "an internal request error occurred", err)
}

// URLParse wraps a malformed-internal-URL failure. Mapped to 500.
func URLParse(err error) *APIError {
	return newErr(KindURLParse, http.StatusInternalServerError, "an internal URL parsing error occurred", err)
}

// Input signals an invalid argument was passed to a portal call. Mapped to 400.
func Input(context string) *APIError {
	return &APIError{Kind: KindInput, Status: http.StatusBadRequest, Message: "a bad argument was passed in", Context: context}
}

// Deserialize signals the portal returned non-JSON or an unexpected shape,
// which usually means the session cookies are no longer valid. Mapped to the
// distinctive 418 per spec.md §7.
func Deserialize(err error) *APIError {
	return newErr(KindDeserialize, http.StatusTeapot,
		"an error occurred converting the portal response to JSON; your session may not be valid", err)
}

// PortalStatus wraps a non-2xx status code returned by the portal itself,
// forwarding that same status code to the caller.
func PortalStatus(status int, context string) *APIError {
	return &APIError{Kind: KindPortalStatus, Status: status, Message: "a non-OK status code was returned by the portal", Context: context}
}

// PortalBusiness wraps a business-level error string returned by the portal
// (e.g. "time conflict", "already enrolled"). Mapped to 400.
func PortalBusiness(context string) *APIError {
	return &APIError{Kind: KindPortalBusiness, Status: http.StatusBadRequest, Message: "the portal returned an error regarding this request", Context: context}
}

// SectionNotFound signals an enrolled-schedule or catalog lookup miss.
// Mapped to 404.
func SectionNotFound(context string) *APIError {
	return &APIError{Kind: KindSectionNotFound, Status: http.StatusNotFound, Message: "the section ID specified was not found", Context: context}
}

// SessionInvalid signals the portal rejected the supplied cookies outright.
// Mapped to 401.
func SessionInvalid() *APIError {
	return &APIError{Kind: KindSessionInvalid, Status: http.StatusUnauthorized, Message: "your session is not valid; try a different set of portal cookies"}
}

// TimeParse wraps a failure to parse a portal-supplied timestamp. Mapped to 500.
func TimeParse(err error) *APIError {
	return newErr(KindTimeParse, http.StatusInternalServerError, "an error occurred parsing a time value", err)
}

// General builds an ad-hoc error with an explicit status, for handler-local
// conditions that don't fit one of the portal-derived kinds above (e.g. the
// drop-section precondition failure).
func General(status int, msg, context string) *APIError {
	return &APIError{Kind: KindGeneral, Status: status, Message: msg, Context: context}
}
