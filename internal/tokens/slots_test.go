package tokens

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotsAreUniqueAndOrdered(t *testing.T) {
	seenID := make(map[SlotID]bool)
	seenProp := make(map[string]bool)
	for _, s := range Slots() {
		assert.False(t, seenID[s.ID], "duplicate id %s", s.ID)
		assert.False(t, seenProp[s.Property], "duplicate property %s", s.Property)
		seenID[s.ID] = true
		seenProp[s.Property] = true

		assert.True(t, strings.HasPrefix(s.Property, "--"), s.Property)
		assert.True(t, strings.HasPrefix(string(s.ID), string(s.Group)+"."), s.ID)
		assert.NotEmpty(t, s.Path)

		got, ok := Lookup(s.ID)
		require.True(t, ok)
		assert.Equal(t, s.Property, got.Property)
	}

	assert.Equal(t, BackgroundFrame, Slots()[0].ID)
}

func TestSlotsReturnsCopy(t *testing.T) {
	first := Slots()
	first[0].Property = "--changed"
	assert.NotEqual(t, "--changed", Slots()[0].Property)
}

func TestLookup(t *testing.T) {
	slot, ok := Lookup(AccentPrimary)
	require.True(t, ok)
	assert.Equal(t, "--color-accent-primary", slot.Property)
	assert.Equal(t, []string{"accent", "primary"}, slot.Path)
	assert.Equal(t, KindColor, slot.Kind)

	_, ok = Lookup("color.accent.nope")
	assert.False(t, ok)
}

func TestParseKeyword(t *testing.T) {
	d, ok := ParseDensity("  Compact ")
	assert.True(t, ok)
	assert.Equal(t, DensityCompact, d)

	_, ok = ParseDensity("roomy")
	assert.False(t, ok)

	e, ok := ParseFeaturedEffect("PULSE")
	assert.True(t, ok)
	assert.Equal(t, FeaturedPulse, e)

	b, ok := ParseBorderEffect("GLOW")
	require.True(t, ok)
	assert.Equal(t, EffectGlow, b)

	_, ok = ParseShape("")
	assert.False(t, ok)

	_, ok = ParseSpatialEffect("")
	assert.False(t, ok)
}

func TestKeywords(t *testing.T) {
	kw := Keywords()
	assert.Equal(t, []string{"compact", "comfortable"}, kw["density"])
	assert.Contains(t, kw["spatial_effect"], "glass")
	assert.Contains(t, kw["page_name"], "neon")
}
