package tokens

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Presence reports what a lookup found at a token path.
type Presence int

const (
	// Absent means the path does not exist (or holds an empty value).
	Absent Presence = iota
	// Present means a value of the requested shape was found.
	Present
	// Malformed means something exists at the path but has the wrong shape.
	Malformed
)

func (p Presence) String() string {
	switch p {
	case Present:
		return "present"
	case Malformed:
		return "malformed"
	default:
		return "absent"
	}
}

// Group is one token group (or nested sub-group) as it arrives from storage:
// slot name -> string, number, or nested group. Shapes are not trusted.
type Group map[string]any

// Lookup walks path through nested groups.
func (g Group) Lookup(path ...string) (any, Presence) {
	if len(g) == 0 || len(path) == 0 {
		return nil, Absent
	}

	var cur any = g
	for _, key := range path {
		m, ok := asMap(cur)
		if !ok {
			return nil, Malformed
		}
		next, exists := m[key]
		if !exists || next == nil {
			return nil, Absent
		}
		cur = next
	}

	return cur, Present
}

// Sub returns the nested group at path, or nil when absent or not a group.
func (g Group) Sub(path ...string) Group {
	v, p := g.Lookup(path...)
	if p != Present {
		return nil
	}
	m, ok := asMap(v)
	if !ok {
		return nil
	}
	return m
}

// String returns the trimmed string at path. Numbers, groups and lists are Malformed.
func (g Group) String(path ...string) (string, Presence) {
	v, p := g.Lookup(path...)
	if p != Present {
		return "", p
	}
	s, ok := v.(string)
	if !ok {
		return "", Malformed
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", Absent
	}
	return s, Present
}

// Number returns the number at path. Numeric strings ("1.25") are accepted.
func (g Group) Number(path ...string) (float64, Presence) {
	v, p := g.Lookup(path...)
	if p != Present {
		return 0, p
	}
	return AsNumber(v)
}

// AsNumber converts a decoded scalar into a float64.
func AsNumber(v any) (float64, Presence) {
	switch n := v.(type) {
	case float64:
		return n, Present
	case float32:
		return float64(n), Present
	case int:
		return float64(n), Present
	case int64:
		return float64(n), Present
	case int32:
		return float64(n), Present
	case uint64:
		return float64(n), Present
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, Malformed
		}
		return f, Present
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0, Absent
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, Malformed
		}
		return f, Present
	default:
		return 0, Malformed
	}
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case Group:
		return m, true
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			ks, ok := k.(string)
			if !ok {
				return nil, false
			}
			out[ks] = val
		}
		return out, true
	default:
		return nil, false
	}
}
