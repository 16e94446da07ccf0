package tracker

import (
	"os"
	"testing"
)

func TestSanitizeInstructors(t *testing.T) {
	cases := []struct {
		in   []string
		want string
	}{
		{nil, ""},
		{[]string{"Smith, John"}, "Smith; John"},
		{[]string{"Smith, John", "Doe, Jane"}, "Smith; John & Doe; Jane"},
		{[]string{"Vahab Pournaghshband"}, "Vahab Pournaghshband"},
	}
	for _, c := range cases {
		if got := sanitizeInstructors(c.in); got != c.want {
			t.Errorf("sanitizeInstructors(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestSplitSubjectCourseID(t *testing.T) {
	cases := []struct {
		id          string
		wantSubject string
		wantCourse  string
	}{
		{"CSE 100", "CSE", "100"},
		{"CSE 100R", "CSE", "100R"},
		{"MATH 20C L", "MATH", "20C L"},
		{"", "", ""},
		{"CSE", "CSE", ""},
	}
	for _, c := range cases {
		subject, course := splitSubjectCourseID(c.id)
		if subject != c.wantSubject || course != c.wantCourse {
			t.Errorf("splitSubjectCourseID(%q) = (%q, %q), want (%q, %q)", c.id, subject, course, c.wantSubject, c.wantCourse)
		}
	}
}

func TestCooldownOrMin(t *testing.T) {
	if got := cooldownOrMin(30); got != 30 {
		t.Errorf("cooldownOrMin(30) = %v, want 30", got)
	}
	if got := cooldownOrMin(0); got != 0.1 {
		t.Errorf("cooldownOrMin(0) = %v, want 0.1", got)
	}
	if got := cooldownOrMin(-5); got != 0.1 {
		t.Errorf("cooldownOrMin(-5) = %v, want 0.1", got)
	}
}

func TestOpenEnrollmentCSVCreatesThenAppends(t *testing.T) {
	dir := t.TempDir()
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	defer os.Chdir(cwd)
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir: %v", err)
	}

	f1, isNew1, err := openEnrollmentCSV("FA22")
	if err != nil {
		t.Fatalf("openEnrollmentCSV: %v", err)
	}
	name := f1.Name()
	f1.Close()
	if !isNew1 {
		t.Fatal("first open of a fresh filename should report isNew = true")
	}

	f2, isNew2, err := openEnrollmentCSV("FA22")
	if err != nil {
		t.Fatalf("openEnrollmentCSV: %v", err)
	}
	defer f2.Close()
	if isNew2 {
		t.Fatal("reopening the same filename within the same second should report isNew = false")
	}
	if f2.Name() != name {
		t.Fatalf("filename changed between calls: %q vs %q", name, f2.Name())
	}
}
