package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phil426/podabio-sub000/internal/fixtures"
	"github.com/phil426/podabio-sub000/internal/tokens"
)

// resetKoanf creates a fresh koanf instance for each test.
func resetKoanf() {
	k = koanf.New(".")
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), ".podabio.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))
	return configPath
}

func TestConfigFileLoading(t *testing.T) {
	resetKoanf()

	configPath := writeConfig(t, `
verbose: true
log-level: info

generate:
  source: custom/themes
  output-dir: custom/output

check:
  strict: true
  max-issues: 10

engine:
  density: compact
`)
	require.NoError(t, loadConfigFromPath(configPath))

	assert.True(t, k.Bool("verbose"))
	assert.Equal(t, "info", k.String("log-level"))
	assert.Equal(t, "custom/themes", k.String("generate.source"))
	assert.Equal(t, "custom/output", k.String("generate.output-dir"))
	assert.True(t, k.Bool("check.strict"))
	assert.Equal(t, 10, k.Int("check.max-issues"))
	assert.Equal(t, "compact", k.String("engine.density"))
}

func TestConfigFileNotFound_UsesDefaults(t *testing.T) {
	resetKoanf()

	// A missing config file is not an error
	require.NoError(t, loadConfigFromPath("/nonexistent/.podabio.yaml"))

	config := buildGenerateConfig()
	assert.Equal(t, "themes", config.SourceDir)
	assert.Equal(t, "public/themes", config.OutputDir)
	assert.Empty(t, config.PageFile)
}

func TestEnvVarOverridesConfigFile(t *testing.T) {
	resetKoanf()

	configPath := writeConfig(t, `
generate:
  source: from-file
  output-dir: from-file
check:
  strict: false
`)

	t.Setenv("PODABIO_GENERATE_OUTPUT_DIR", "from-env")
	t.Setenv("PODABIO_CHECK_STRICT", "true")
	t.Setenv("PODABIO_LOG_LEVEL", "debug")

	require.NoError(t, loadConfigFromPath(configPath))

	assert.Equal(t, "from-file", k.String("generate.source"))
	assert.Equal(t, "from-env", k.String("generate.output-dir"))
	assert.True(t, k.Bool("check.strict"))
	assert.Equal(t, "debug", k.String("log-level"))
}

func TestEnvKey(t *testing.T) {
	tests := map[string]string{
		"PODABIO_VERBOSE":               "verbose",
		"PODABIO_LOG_LEVEL":             "log-level",
		"PODABIO_GENERATE_SOURCE":       "generate.source",
		"PODABIO_GENERATE_OUTPUT_DIR":   "generate.output-dir",
		"PODABIO_CHECK_MAX_SAME_ISSUES": "check.max-same-issues",
		"PODABIO_ENGINE_FONTS_URL":      "engine.fonts-url",
	}
	for in, want := range tests {
		assert.Equal(t, want, envKey(in), in)
	}
}

func TestFlagDefaultsDoNotShadowConfigFile(t *testing.T) {
	resetKoanf()

	configPath := writeConfig(t, `
generate:
  source: from-file
  output-dir: from-file
`)

	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("config", "", "")
	cmd.Flags().String("source", "themes", "")
	cmd.Flags().String("output-dir", "public/themes", "")
	require.NoError(t, cmd.ParseFlags([]string{"--config", configPath, "--output-dir", "from-flag"}))
	require.NoError(t, loadConfig(cmd))

	config := buildGenerateConfig()
	assert.Equal(t, "from-file", config.SourceDir)
	assert.Equal(t, "from-flag", config.OutputDir)
}

func TestBuildGenerateConfig_FromConfigFile(t *testing.T) {
	resetKoanf()

	configPath := writeConfig(t, `
generate:
  source: src/themes
  output-dir: gen/out
  page: page.yaml
  include:
    - "**/*.json"
`)
	require.NoError(t, loadConfigFromPath(configPath))

	config := buildGenerateConfig()
	assert.Equal(t, "src/themes", config.SourceDir)
	assert.Equal(t, "gen/out", config.OutputDir)
	assert.Equal(t, "page.yaml", config.PageFile)
	assert.Equal(t, []string{"**/*.json"}, config.Includes)
}

func TestBuildCheckConfig_Defaults(t *testing.T) {
	resetKoanf()

	config := buildCheckConfig()
	assert.Equal(t, "themes", config.SourceDir)
	assert.Equal(t, fixtures.DefaultPatterns, config.Includes)
	assert.False(t, config.Strict)
	assert.Equal(t, 0, config.MaxIssues)
	assert.Equal(t, 0, config.MaxSameIssues)
	assert.True(t, config.PrintIssuedLines)
	assert.True(t, config.PrintLinterName)
	assert.False(t, config.UseColors)
}

func TestBuildCheckConfig_FromConfigFile(t *testing.T) {
	resetKoanf()

	configPath := writeConfig(t, `
color: true
check:
  source: fixtures
  strict: true
  max-same-issues: 3
  print-lines: false
`)
	require.NoError(t, loadConfigFromPath(configPath))

	config := buildCheckConfig()
	assert.Equal(t, "fixtures", config.SourceDir)
	assert.True(t, config.Strict)
	assert.Equal(t, 3, config.MaxSameIssues)
	assert.False(t, config.PrintIssuedLines)
	assert.True(t, config.UseColors)
}

func TestBuildEngineConfig(t *testing.T) {
	resetKoanf()

	configPath := writeConfig(t, `
engine:
  density: compact
  font-weights: [300, 700]
  fonts-url: https://fonts.example.com/css2
  defaults:
    color.accent.primary: "#ff00ff"
  base-scale:
    md: 1.25
  density-multipliers:
    compact:
      md: 0.5
`)
	require.NoError(t, loadConfigFromPath(configPath))

	cfg, err := buildEngineConfig()
	require.NoError(t, err)
	assert.Equal(t, tokens.DensityCompact, cfg.DefaultDensity)
	assert.Equal(t, []int{300, 700}, cfg.FontWeights)
	assert.Equal(t, "https://fonts.example.com/css2", cfg.FontsBaseURL)
	assert.Equal(t, "#ff00ff", cfg.Defaults[tokens.AccentPrimary])
	assert.InDelta(t, 1.25, cfg.BaseScale["md"], 0.001)
	assert.InDelta(t, 0.5, cfg.Density[tokens.DensityCompact]["md"], 0.001)
	assert.InDelta(t, 0.75, cfg.Density[tokens.DensityCompact]["lg"], 0.001)
}

func TestBuildEngineConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"unknown slot", "engine:\n  defaults:\n    color.nope: red\n", "unknown slot"},
		{"unsafe default", "engine:\n  defaults:\n    color.accent.primary: \"red; }\"\n", "engine config"},
		{"unknown density", "engine:\n  density: roomy\n", "unknown density"},
		{"unknown step", "engine:\n  base-scale:\n    3xl: 4\n", "unknown step"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetKoanf()
			require.NoError(t, loadConfigFromPath(writeConfig(t, tt.content)))
			_, err := buildEngineConfig()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestBuildLogger(t *testing.T) {
	resetKoanf()
	log, err := buildLogger()
	require.NoError(t, err)
	assert.NotNil(t, log)

	k.Set("quiet", true)
	log, err = buildLogger()
	require.NoError(t, err)
	assert.Nil(t, log)

	resetKoanf()
	k.Set("log-level", "loud")
	_, err = buildLogger()
	assert.Error(t, err)
}

func TestInitCommand_CreatesConfigFile(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(origDir)
	})

	cmd := rootCmd
	cmd.SetArgs([]string{"init"})
	require.NoError(t, cmd.Execute())

	// Verify file was created
	data, err := os.ReadFile(".podabio.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "engine:")
	assert.Contains(t, string(data), "generate:")
	assert.Contains(t, string(data), "check:")

	// The written defaults load and build a valid engine config.
	resetKoanf()
	require.NoError(t, loadConfigFromPath(".podabio.yaml"))
	_, err = buildEngineConfig()
	require.NoError(t, err)
	assert.Equal(t, "public/themes", buildGenerateConfig().OutputDir)
}

func TestInitCommand_RefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(origDir)
	})

	require.NoError(t, os.WriteFile(".podabio.yaml", []byte("existing"), 0644))

	cmd := rootCmd
	cmd.SetArgs([]string{"init"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestInitCommand_ForceOverwrite(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(origDir)
	})

	require.NoError(t, os.WriteFile(".podabio.yaml", []byte("existing"), 0644))

	cmd := rootCmd
	cmd.SetArgs([]string{"init", "--force"})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(".podabio.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "engine:")
}

func TestGetStringWithFallback(t *testing.T) {
	resetKoanf()

	// No keys set - should return default
	assert.Equal(t, "default", getStringWithFallback("flag-key", "config.key", "default"))

	k.Set("config.key", "from-config")
	assert.Equal(t, "from-config", getStringWithFallback("flag-key", "config.key", "default"))

	k.Set("flag-key", "from-flag")
	assert.Equal(t, "from-flag", getStringWithFallback("flag-key", "config.key", "default"))
}

func TestGetStringsWithFallback(t *testing.T) {
	resetKoanf()

	assert.Equal(t, []string{"a"}, getStringsWithFallback("flag-key", "config.key", []string{"a"}))

	k.Set("config.key", []string{"b", "c"})
	assert.Equal(t, []string{"b", "c"}, getStringsWithFallback("flag-key", "config.key", []string{"a"}))
}

func TestGetBoolWithFallback(t *testing.T) {
	resetKoanf()

	// No keys set - should return default
	assert.False(t, getBoolWithFallback("flag-key", "config.key", false))
	assert.True(t, getBoolWithFallback("flag-key", "config.key", true))

	k.Set("config.key", false)
	assert.False(t, getBoolWithFallback("flag-key", "config.key", true))
}

func TestGetIntWithFallback(t *testing.T) {
	resetKoanf()

	// No keys set - should return default
	assert.Equal(t, 42, getIntWithFallback("flag-key", "config.key", 42))

	k.Set("flag-key", 7)
	assert.Equal(t, 7, getIntWithFallback("flag-key", "config.key", 42))
}
