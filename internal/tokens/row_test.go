package tokens

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromRow(t *testing.T) {
	row := ThemeRow{
		ID:           7,
		Name:         "Aurora",
		ColorTokens:  `{"accent":{"primary":"#00ffaa"}}`,
		ShapeTokens:  `{"corner": {"md": 0.5}`, // truncated JSON
		Colors:       `{"primary":"#111111","accent":"#222222"}`,
		Fonts:        `{"heading":"Poppins"}`,
		WidgetStyles: `{"border_effect":"glow","glow_width":10}`,
	}

	theme, errs := FromRow(row)
	require.NotNil(t, theme)
	require.Len(t, errs, 1)

	var decodeErr *DecodeError
	require.ErrorAs(t, errs[0], &decodeErr)
	assert.Equal(t, "shape_tokens", decodeErr.Column)

	accent, p := theme.ColorTokens.String("accent", "primary")
	assert.Equal(t, Present, p)
	assert.Equal(t, "#00ffaa", accent)
	assert.Nil(t, theme.ShapeTokens)

	assert.Equal(t, "#111111", theme.Colors.Primary)
	assert.Equal(t, "#222222", theme.Colors.Accent)
	assert.Equal(t, "Poppins", theme.Fonts.Heading)

	width, p := theme.WidgetStyles.Number("glow_width")
	assert.Equal(t, Present, p)
	assert.InDelta(t, 10.0, width, 0)
}

func TestDecodeGroupEmpty(t *testing.T) {
	g, err := DecodeGroup("")
	require.NoError(t, err)
	assert.Nil(t, g)

	g, err = DecodeGroup("null")
	require.NoError(t, err)
	assert.Nil(t, g)

	_, err = DecodeGroup(`["not","an","object"]`)
	assert.Error(t, err)
}
