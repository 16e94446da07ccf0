package portal_test

import (
	"reflect"
	"testing"

	"github.com/campusdata/webreg-collector/internal/portal"
)

func TestBuildSearchRequestIgnoresUnknownLevels(t *testing.T) {
	req := portal.BuildSearchRequest([]string{"L", "u", "bogus"}, []string{"CSE"})
	want := []portal.CourseLevel{portal.LowerDivision, portal.UpperDivision}
	if !reflect.DeepEqual(req.Levels, want) {
		t.Fatalf("Levels = %v, want %v", req.Levels, want)
	}
	if !reflect.DeepEqual(req.Departments, []string{"CSE"}) {
		t.Fatalf("Departments = %v, want [CSE]", req.Departments)
	}
}

func TestParseDay(t *testing.T) {
	cases := map[string]portal.DayOfWeek{
		"M": portal.Monday, "tu": portal.Tuesday, "TH": portal.Thursday,
	}
	for token, want := range cases {
		got, ok := portal.ParseDay(token)
		if !ok || got != want {
			t.Errorf("ParseDay(%q) = (%v, %v), want (%v, true)", token, got, ok, want)
		}
	}
	if _, ok := portal.ParseDay("xx"); ok {
		t.Error("ParseDay(\"xx\") should report false")
	}
}

func TestParseDaysDropsUnknown(t *testing.T) {
	got := portal.ParseDays([]string{"M", "zz", "F"})
	want := []portal.DayOfWeek{portal.Monday, portal.Friday}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ParseDays = %v, want %v", got, want)
	}
}

func TestParseTimeRequiresBothFields(t *testing.T) {
	if got := portal.ParseTime(nil); got != nil {
		t.Fatalf("ParseTime(nil) = %v, want nil", got)
	}

	hour := int64(9)
	if got := portal.ParseTime(&portal.RawTimeField{Hour: &hour}); got != nil {
		t.Fatalf("ParseTime with only hour = %v, want nil", got)
	}

	minute := int64(30)
	got := portal.ParseTime(&portal.RawTimeField{Hour: &hour, Minute: &minute})
	if got == nil || got.Hour != 9 || got.Minute != 30 {
		t.Fatalf("ParseTime = %v, want {9 30}", got)
	}
}

func TestParseTimeRejectsOutOfRange(t *testing.T) {
	neg := int64(-1)
	minute := int64(0)
	if got := portal.ParseTime(&portal.RawTimeField{Hour: &neg, Minute: &minute}); got != nil {
		t.Fatalf("ParseTime with negative hour = %v, want nil", got)
	}
}

func TestParseGradeOptionDefaultsToLetter(t *testing.T) {
	if got := portal.ParseGradeOption(nil); got != portal.Letter {
		t.Fatalf("ParseGradeOption(nil) = %v, want Letter", got)
	}
	bogus := "Q"
	if got := portal.ParseGradeOption(&bogus); got != portal.Letter {
		t.Fatalf("ParseGradeOption(%q) = %v, want Letter", bogus, got)
	}
	p := "p"
	if got := portal.ParseGradeOption(&p); got != portal.PassNoPass {
		t.Fatalf("ParseGradeOption(%q) = %v, want PassNoPass", p, got)
	}
}
