package podabio

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	out := t.TempDir()

	result, err := Generate(GenerateConfig{
		SourceDir: filepath.Join("testdata", "themes"),
		PageFile:  filepath.Join("testdata", "page.yaml"),
		OutputDir: out,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, result.FilesScanned)
	assert.Equal(t, 2, result.ThemesRendered)
	assert.Empty(t, result.Warnings)

	require.Len(t, result.Manifest.Themes, 2)
	aurora, noisy := result.Manifest.Themes[0], result.Manifest.Themes[1]
	assert.Equal(t, int64(7), aurora.ID)
	assert.Equal(t, "theme-aurora-borealis.css", aurora.CSSFile)
	assert.Equal(t, "theme-aurora-borealis", aurora.BodyClass)
	assert.True(t, aurora.Active)
	assert.Equal(t, "testdata/themes/aurora.yaml", aurora.Source)
	assert.Equal(t, "theme-noisy.css", noisy.CSSFile)
	assert.Greater(t, noisy.Diagnostics, 0)

	// The page targets theme 7 only.
	css, err := os.ReadFile(filepath.Join(out, aurora.CSSFile))
	require.NoError(t, err)
	assert.Contains(t, string(css), "--color-accent-primary: #123456;")

	css, err = os.ReadFile(filepath.Join(out, noisy.CSSFile))
	require.NoError(t, err)
	assert.NotContains(t, string(css), "#123456")
	assert.NotContains(t, string(css), "body { color: blue")

	data, err := os.ReadFile(filepath.Join(out, ManifestFile))
	require.NoError(t, err)
	var manifest Manifest
	require.NoError(t, json.Unmarshal(data, &manifest))
	assert.Equal(t, result.Manifest, manifest)
}

func TestGenerateIsRepeatable(t *testing.T) {
	first, second := t.TempDir(), t.TempDir()
	for _, dir := range []string{first, second} {
		_, err := Generate(GenerateConfig{SourceDir: filepath.Join("testdata", "themes"), OutputDir: dir})
		require.NoError(t, err)
	}

	for _, name := range []string{"theme-aurora-borealis.css", "theme-noisy.css", ManifestFile} {
		a, err := os.ReadFile(filepath.Join(first, name))
		require.NoError(t, err)
		b, err := os.ReadFile(filepath.Join(second, name))
		require.NoError(t, err)
		assert.Equal(t, string(a), string(b), name)
	}
}

func TestGenerateSkipsBadFixtures(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, "broken.yaml"), []byte("name: [unclosed\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "nameless.yaml"), []byte("id: 3\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "twins.yaml"), []byte(`themes:
  - id: 1
    name: Twin
  - id: 2
    name: twin
`), 0o644))

	page := filepath.Join(src, "page.json")
	require.NoError(t, os.WriteFile(page, []byte(`{"page": {"theme_id": 99}}`), 0o644))

	result, err := Generate(GenerateConfig{SourceDir: src, PageFile: page, OutputDir: filepath.Join(src, "out")})
	require.NoError(t, err)

	assert.Equal(t, 2, result.ThemesRendered)
	require.Len(t, result.Warnings, 3)
	assert.Contains(t, result.Warnings[0], "broken.yaml")
	assert.Contains(t, result.Warnings[1], "name")
	assert.Contains(t, result.Warnings[2], "theme_id 99")

	require.Len(t, result.Manifest.Themes, 2)
	assert.Equal(t, "theme-twin.css", result.Manifest.Themes[0].CSSFile)
	assert.Equal(t, "theme-twin-2.css", result.Manifest.Themes[1].CSSFile)
}

func TestGenerateErrors(t *testing.T) {
	_, err := Generate(GenerateConfig{SourceDir: "testdata"})
	assert.Error(t, err)

	_, err = Generate(GenerateConfig{
		SourceDir: "testdata",
		PageFile:  filepath.Join("testdata", "themes", "aurora.yaml"),
		OutputDir: t.TempDir(),
	})
	assert.ErrorContains(t, err, "no page overrides")
}

func TestCSSFileName(t *testing.T) {
	used := make(map[string]bool)
	assert.Equal(t, "theme-a.css", cssFileName("theme-a", 1, used))
	assert.Equal(t, "theme-a-2.css", cssFileName("theme-a", 2, used))
	assert.Equal(t, "theme-a-3.css", cssFileName("theme-a", 3, used))
	assert.Equal(t, "theme-12.css", cssFileName("", 12, used))
}
