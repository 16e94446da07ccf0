// Package schema detects when a portal response's JSON shape drifts from
// what this collector has seen before, so an operator can tell "the portal
// changed its response format" apart from "this particular request simply
// failed".
//
// A Guard keeps one baseline shape per portal operation (search, enrollment
// count, schedule, …), since each is shaped completely differently, and
// exposes a single CheckResponse call that learns the first response it
// sees and flags structural differences in every one after that.
package schema

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"
)

// DriftKind classifies one structural difference between a baseline and a
// newly observed portal response.
type DriftKind string

const (
	DriftMissingField DriftKind = "missing_field"
	DriftAddedField   DriftKind = "added_field"
	DriftTypeChanged  DriftKind = "type_changed"
)

// Drift describes one detected structural change for one field path.
type Drift struct {
	Kind         DriftKind
	Field        string
	BaselineType string
	CurrentType  string
}

func (d Drift) String() string {
	switch d.Kind {
	case DriftMissingField:
		return fmt.Sprintf("schema drift [%s] field %q missing (was %s)", d.Kind, d.Field, d.BaselineType)
	case DriftAddedField:
		return fmt.Sprintf("schema drift [%s] field %q added (type %s)", d.Kind, d.Field, d.CurrentType)
	case DriftTypeChanged:
		return fmt.Sprintf("schema drift [%s] field %q changed %s -> %s", d.Kind, d.Field, d.BaselineType, d.CurrentType)
	default:
		return fmt.Sprintf("schema drift [%s] field %q", d.Kind, d.Field)
	}
}

// fieldTypes maps dot-separated field paths to their JSON type names.
type fieldTypes map[string]string

// Guard tracks one baseline shape per portal operation name and flags
// drift against it on every subsequent call. Safe for concurrent use.
type Guard struct {
	mu         sync.Mutex
	baselines  map[string]fieldTypes
}

// NewGuard returns a Guard with no baselines recorded yet.
func NewGuard() *Guard {
	return &Guard{baselines: make(map[string]fieldTypes)}
}

// CheckResponse records op's baseline shape the first time it's called for
// that operation, and returns the drift against that baseline on every
// subsequent call. body must be a JSON object; a non-object or malformed
// body is reported as an error rather than drift, since that is the
// Deserialize failure path, not a shape change.
func (g *Guard) CheckResponse(op string, body []byte) ([]Drift, error) {
	current, err := extractFieldTypes(body)
	if err != nil {
		return nil, fmt.Errorf("schema: %s: %w", op, err)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	baseline, known := g.baselines[op]
	if !known {
		g.baselines[op] = current
		return nil, nil
	}
	return diff(baseline, current), nil
}

// Forget clears the recorded baseline for op, if any, so the next response
// re-establishes it. Useful after a deliberate portal version bump.
func (g *Guard) Forget(op string) {
	g.mu.Lock()
	delete(g.baselines, op)
	g.mu.Unlock()
}

func extractFieldTypes(data []byte) (fieldTypes, error) {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}
	obj, ok := raw.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("expected JSON object, got %T", raw)
	}
	out := make(fieldTypes)
	walk(obj, "", out)
	return out, nil
}

func walk(obj map[string]interface{}, prefix string, out fieldTypes) {
	for k, v := range obj {
		path := k
		if prefix != "" {
			path = prefix + "." + k
		}
		switch val := v.(type) {
		case map[string]interface{}:
			out[path] = "object"
			walk(val, path, out)
		case []interface{}:
			out[path] = "array"
		case string:
			out[path] = "string"
		case float64:
			out[path] = "number"
		case bool:
			out[path] = "bool"
		case nil:
			out[path] = "null"
		default:
			out[path] = "unknown"
		}
	}
}

func diff(baseline, current fieldTypes) []Drift {
	var drifts []Drift

	for field, bType := range baseline {
		cType, ok := current[field]
		if !ok {
			drifts = append(drifts, Drift{Kind: DriftMissingField, Field: field, BaselineType: bType})
			continue
		}
		if cType != bType {
			drifts = append(drifts, Drift{Kind: DriftTypeChanged, Field: field, BaselineType: bType, CurrentType: cType})
		}
	}
	for field, cType := range current {
		if _, ok := baseline[field]; !ok {
			drifts = append(drifts, Drift{Kind: DriftAddedField, Field: field, CurrentType: cType})
		}
	}

	sort.Slice(drifts, func(i, j int) bool {
		if drifts[i].Field != drifts[j].Field {
			return drifts[i].Field < drifts[j].Field
		}
		return string(drifts[i].Kind) < string(drifts[j].Kind)
	})
	return drifts
}
