package tracker

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/campusdata/webreg-collector/internal/corestate"
	"github.com/campusdata/webreg-collector/internal/logging"
	"github.com/campusdata/webreg-collector/internal/portal"
	"github.com/campusdata/webreg-collector/internal/termreg"
	"golang.org/x/time/rate"
)

// maxConsecutiveFailures is the per-term failure threshold past which a
// worker gives up on the current polling cycle (spec.md §4.3).
const maxConsecutiveFailures = 12

// csvHeader is written only when a new file is created.
var csvHeader = []string{"time", "subj_course_id", "sec_code", "sec_id", "prof", "available", "waitlist", "total", "enrolled_ct"}

// runTermWorker executes one term's polling loop to completion. It returns
// when it decides to stop: empty search results, too many consecutive
// failures, or a stop signal (global or loop-local). Rows go to the term's
// CSV file only when the term has SaveDataToFile set; otherwise the term is
// still polled and timed but nothing is written to disk.
func runTermWorker(ctx context.Context, state *corestate.State, term *termreg.Info, loopStop func() bool, log *logging.Logger) {
	var out io.Writer = io.Discard
	writeHeader := false
	if term.SaveDataToFile {
		file, isNew, err := openEnrollmentCSV(term.Term)
		if err != nil {
			log.Errorf("tracker[%s]: open CSV: %v", term.Term, err)
			return
		}
		defer file.Close()
		out, writeHeader = file, isNew
	}

	w := csv.NewWriter(out)
	if writeHeader {
		if err := w.Write(csvHeader); err != nil {
			log.Errorf("tracker[%s]: write header: %v", term.Term, err)
		}
		w.Flush()
	}

	limiter := rate.NewLimiter(rate.Limit(1/cooldownOrMin(term.CooldownSec)), 1)

mainLoop:
	for {
		w.Flush()

		var sections []portal.SectionSummary
		for _, q := range term.SearchQuery {
			req := portal.BuildSearchRequest(q.Levels, q.Departments)
			res, err := state.WrapperShared.Req(term.Term).Parsed().SearchCourses(ctx, portal.SearchType{SearchQuery: req})
			if err != nil {
				log.Errorf("tracker[%s]: search query failed: %v", term.Term, err)
			} else {
				sections = append(sections, res...)
			}
			time.Sleep(time.Second)
		}

		if len(sections) == 0 {
			log.Infof("tracker[%s]: search returned no sections, stopping this cycle", term.Term)
			break mainLoop
		}

		failCount := 0
		for _, sec := range sections {
			if state.ShouldStop() || loopStop() {
				break mainLoop
			}
			if failCount > maxConsecutiveFailures {
				break mainLoop
			}

			subject, course := splitSubjectCourseID(sec.SubjectCourseID)
			t0 := time.Now()
			counts, err := state.WrapperShared.Req(term.Term).Parsed().GetEnrollmentCount(ctx, subject, course)
			elapsed := time.Since(t0)
			term.Stats.Record(elapsed.Milliseconds())

			switch {
			case err != nil:
				failCount++
				log.Errorf("tracker[%s]: enrollment count for %s: %v", term.Term, sec.SubjectCourseID, err)
			case len(counts) == 0:
				failCount++
				log.Infof("tracker[%s]: empty enrollment data for %s, were you logged out?", term.Term, sec.SubjectCourseID)
			default:
				failCount = 0
				now := time.Now().UnixMilli()
				for _, c := range counts {
					row := []string{
						strconv.FormatInt(now, 10),
						c.SubjectCourseID,
						c.SectionCode,
						c.SectionID,
						sanitizeInstructors(c.Instructors),
						strconv.Itoa(c.Available),
						strconv.Itoa(c.Waitlist),
						strconv.Itoa(c.Total),
						strconv.Itoa(c.EnrolledCount),
					}
					if err := w.Write(row); err != nil {
						log.Errorf("tracker[%s]: write row: %v", term.Term, err)
					}
				}
			}

			if err := limiter.Wait(ctx); err != nil {
				break mainLoop
			}
		}
	}

	w.Flush()
}

// sanitizeInstructors joins instructor names with " & ", after replacing
// any comma within a single name with a semicolon so the CSV column count
// is never broken by an unescaped name like "Last, First".
func sanitizeInstructors(names []string) string {
	cleaned := make([]string, len(names))
	for i, n := range names {
		cleaned[i] = strings.ReplaceAll(n, ",", ";")
	}
	return strings.Join(cleaned, " & ")
}

// splitSubjectCourseID splits a "CSE 100" style identifier into its subject
// and course number halves.
func splitSubjectCourseID(id string) (subject, course string) {
	parts := strings.Fields(id)
	if len(parts) == 0 {
		return "", ""
	}
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

// cooldownOrMin floors the configured cooldown so a misconfigured zero or
// negative value cannot produce an unbounded rate.Limiter.
func cooldownOrMin(cooldown float64) float64 {
	if cooldown <= 0 {
		return 0.1
	}
	return cooldown
}

// openEnrollmentCSV opens (creating if absent) the CSV file for the given
// term, named per spec.md §6.2 with a local-time timestamp, and reports
// whether it was newly created.
func openEnrollmentCSV(term string) (*os.File, bool, error) {
	now := time.Now()
	name := fmt.Sprintf("enrollment_%04d-%02d-%02dT%02d_%02d_%02d_%s.csv",
		now.Year(), now.Month(), now.Day(), now.Hour(), now.Minute(), now.Second(), term)

	_, statErr := os.Stat(name)
	isNew := os.IsNotExist(statErr)

	f, err := os.OpenFile(name, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644) // #nosec G304 -- name is derived from config-supplied term code
	if err != nil {
		return nil, false, err
	}
	return f, isNew, nil
}
