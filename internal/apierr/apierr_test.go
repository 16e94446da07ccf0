package apierr_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/campusdata/webreg-collector/internal/apierr"
)

func TestConstructorsMapToExpectedStatus(t *testing.T) {
	cases := []struct {
		name string
		err  *apierr.APIError
		want int
	}{
		{"Transport", apierr.Transport(errors.New("boom")), http.StatusInternalServerError},
		{"URLParse", apierr.URLParse(errors.New("boom")), http.StatusInternalServerError},
		{"Input", apierr.Input("bad field"), http.StatusBadRequest},
		{"Deserialize", apierr.Deserialize(errors.New("boom")), http.StatusTeapot},
		{"PortalStatus", apierr.PortalStatus(503, "upstream down"), 503},
		{"PortalBusiness", apierr.PortalBusiness("time conflict"), http.StatusBadRequest},
		{"SectionNotFound", apierr.SectionNotFound("no such section"), http.StatusNotFound},
		{"SessionInvalid", apierr.SessionInvalid(), http.StatusUnauthorized},
		{"TimeParse", apierr.TimeParse(errors.New("boom")), http.StatusInternalServerError},
		{"General", apierr.General(422, "custom", "ctx"), 422},
	}
	for _, c := range cases {
		if c.err.Status != c.want {
			t.Errorf("%s: Status = %d, want %d", c.name, c.err.Status, c.want)
		}
	}
}

func TestUnwrapExposesUnderlyingError(t *testing.T) {
	inner := errors.New("dial tcp: connection refused")
	err := apierr.Transport(inner)
	if !errors.Is(err, inner) {
		t.Fatal("errors.Is should find the wrapped error")
	}
}

func TestBodyIncludesContextOnlyWhenSet(t *testing.T) {
	withCtx := apierr.Input("sectionId is required")
	body := withCtx.Body()
	if body["context"] != "sectionId is required" {
		t.Errorf("context = %q, want %q", body["context"], "sectionId is required")
	}

	noCtx := apierr.SessionInvalid()
	if _, ok := noCtx.Body()["context"]; ok {
		t.Error("Body() should omit \"context\" when Context is empty")
	}
}

func TestErrorStringFormat(t *testing.T) {
	err := apierr.SectionNotFound("section 12345")
	got := err.Error()
	if got == "" {
		t.Fatal("Error() returned empty string")
	}
	want := "section_not_found: the section ID specified was not found (section 12345)"
	if got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
}
