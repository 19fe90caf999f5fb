package tokens

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGroupLookup(t *testing.T) {
	g := Group{
		"accent": map[string]any{
			"primary": "#2563eb",
			"muted":   42,
		},
		"flat":  "oops",
		"empty": "   ",
		"yaml":  map[any]any{"alt": "#7c3aed"},
	}

	tests := []struct {
		name     string
		path     []string
		want     string
		presence Presence
	}{
		{name: "nested string", path: []string{"accent", "primary"}, want: "#2563eb", presence: Present},
		{name: "number where string expected", path: []string{"accent", "muted"}, presence: Malformed},
		{name: "missing slot", path: []string{"accent", "highlight"}, presence: Absent},
		{name: "missing group", path: []string{"border", "default"}, presence: Absent},
		{name: "walk through scalar", path: []string{"flat", "primary"}, presence: Malformed},
		{name: "blank string", path: []string{"empty"}, presence: Absent},
		{name: "map with interface keys", path: []string{"yaml", "alt"}, want: "#7c3aed", presence: Present},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, presence := g.String(tt.path...)
			assert.Equal(t, tt.presence, presence)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGroupNumber(t *testing.T) {
	g := Group{
		"float":   1.5,
		"int":     2,
		"string":  "0.75",
		"bad":     "wide",
		"json":    json.Number("0.25"),
		"grouped": map[string]any{"a": 1},
	}

	v, p := g.Number("float")
	assert.Equal(t, Present, p)
	assert.InDelta(t, 1.5, v, 0)

	v, p = g.Number("int")
	assert.Equal(t, Present, p)
	assert.InDelta(t, 2.0, v, 0)

	v, p = g.Number("string")
	assert.Equal(t, Present, p)
	assert.InDelta(t, 0.75, v, 0)

	v, p = g.Number("json")
	assert.Equal(t, Present, p)
	assert.InDelta(t, 0.25, v, 0)

	_, p = g.Number("bad")
	assert.Equal(t, Malformed, p)

	_, p = g.Number("grouped")
	assert.Equal(t, Malformed, p)

	_, p = g.Number("missing")
	assert.Equal(t, Absent, p)
}

func TestNilGroupIsAbsent(t *testing.T) {
	var g Group
	_, p := g.String("accent", "primary")
	assert.Equal(t, Absent, p)
	assert.Nil(t, g.Sub("accent"))

	var theme *Theme
	assert.Nil(t, theme.Group(GroupColor))
}
