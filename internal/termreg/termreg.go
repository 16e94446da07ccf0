// Package termreg holds per-term configuration and state: the Term Info
// record of spec.md §3 and a read-mostly registry of them keyed by term
// code.
//
// Grounded on original_source/crates/webreg/src/types.rs's TermInfo, with
// a concurrent-registry shape (map guarded by RWMutex, built once at
// startup).
package termreg

import (
	"fmt"
	"strings"
	"sync"

	"github.com/campusdata/webreg-collector/internal/config"
	"github.com/campusdata/webreg-collector/internal/stats"
)

// validPrefixes enumerates the two-letter term-code prefixes spec.md §3
// recognises.
var validPrefixes = map[string]bool{"FA": true, "WI": true, "SP": true, "S1": true, "S2": true}

// Info is one configured term: its polling parameters and its Stats
// Tracker. Created at startup and never mutated thereafter except through
// Stats.
type Info struct {
	Term           string
	CooldownSec    float64
	SearchQuery    []config.SearchQuery
	SaveDataToFile bool
	Stats          *stats.Tracker
}

// ValidTermCode reports whether code looks like "FA22": a two-letter
// prefix drawn from {FA, WI, SP, S1, S2} followed by a two-digit year.
func ValidTermCode(code string) bool {
	if len(code) != 4 {
		return false
	}
	prefix := strings.ToUpper(code[:2])
	if !validPrefixes[prefix] {
		return false
	}
	for _, r := range code[2:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Registry is the process-wide, build-once-read-many map from term code to
// Info. Lookups are case-insensitive: keys are stored and compared
// uppercased.
type Registry struct {
	mu    sync.RWMutex
	terms map[string]*Info
}

// NewRegistry builds a Registry from the config's wrapperData entries. A
// malformed term code is rejected rather than silently admitted, since an
// unroutable term would otherwise 404 every request for it at runtime
// instead of failing fast at startup.
func NewRegistry(data []config.TermDatum) (*Registry, error) {
	r := &Registry{terms: make(map[string]*Info, len(data))}
	for _, d := range data {
		code := strings.ToUpper(d.Term)
		if !ValidTermCode(code) {
			return nil, fmt.Errorf("termreg: invalid term code %q", d.Term)
		}
		r.terms[code] = &Info{
			Term:           code,
			CooldownSec:    d.Cooldown,
			SearchQuery:    d.SearchQuery,
			SaveDataToFile: d.SaveDataToFile,
			Stats:          stats.New(),
		}
	}
	return r, nil
}

// Get looks up a term by code, case-insensitively.
func (r *Registry) Get(code string) (*Info, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	info, ok := r.terms[strings.ToUpper(code)]
	return info, ok
}

// Has reports whether code names a known term.
func (r *Registry) Has(code string) bool {
	_, ok := r.Get(code)
	return ok
}

// All returns every configured Info, in no particular order.
func (r *Registry) All() []*Info {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Info, 0, len(r.terms))
	for _, info := range r.terms {
		out = append(out, info)
	}
	return out
}

// Codes returns every configured term code, in no particular order.
func (r *Registry) Codes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.terms))
	for code := range r.terms {
		out = append(out, code)
	}
	return out
}
