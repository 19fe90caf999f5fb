package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"

	podabio "github.com/phil426/podabio-sub000"
	"github.com/phil426/podabio-sub000/internal/fixtures"
	"github.com/phil426/podabio-sub000/internal/logger"
	"github.com/phil426/podabio-sub000/internal/themecss"
	"github.com/phil426/podabio-sub000/internal/tokens"
)

var k = koanf.New(".")

// configSections are the top-level config keys that hold nested settings.
var configSections = map[string]bool{
	"render":   true,
	"generate": true,
	"check":    true,
	"engine":   true,
}

// loadConfig loads configuration with precedence: flags > env > file > defaults.
// It must be called after cobra parses flags (in PreRunE or RunE).
func loadConfig(cmd *cobra.Command) error {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = ".podabio.yaml"
	}

	if err := loadConfigFromPath(configPath); err != nil {
		return err
	}

	// 3. CLI flags, only the ones that were explicitly set. With a nil
	// koanf the provider skips unchanged flags, so flag defaults never
	// shadow file or env values.
	if err := k.Load(posflag.Provider(cmd.Flags(), ".", nil), nil); err != nil {
		return fmt.Errorf("loading command flags: %w", err)
	}

	return nil
}

// loadConfigFromPath loads configuration from a file and environment variables.
// This is separated from loadConfig to allow testing without a cobra command.
func loadConfigFromPath(configPath string) error {
	// 1. Config file (lowest precedence among providers)
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading config file %s: %w", configPath, err)
		}
	}

	// 2. Environment variables (PODABIO_* prefix)
	if err := k.Load(env.Provider("PODABIO_", ".", envKey), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}

	return nil
}

// envKey maps an environment variable to its config key:
//
//	PODABIO_GENERATE_OUTPUT_DIR -> generate.output-dir
//	PODABIO_CHECK_STRICT        -> check.strict
//	PODABIO_LOG_LEVEL           -> log-level
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, "PODABIO_"))
	section, rest, found := strings.Cut(key, "_")
	if found && configSections[section] {
		return section + "." + strings.ReplaceAll(rest, "_", "-")
	}
	return strings.ReplaceAll(key, "_", "-")
}

// buildLogger returns nil in quiet mode; a nil logger discards everything.
func buildLogger() (*logger.Logger, error) {
	if getBoolWithFallback("quiet", "quiet", false) {
		return nil, nil
	}
	level := getStringWithFallback("log-level", "log-level", "warn")
	if getBoolWithFallback("verbose", "verbose", false) {
		level = "debug"
	}
	log, err := logger.New(logger.Options{
		Level:         level,
		HumanReadable: !getBoolWithFallback("log-json", "log-json", false),
	})
	if err != nil {
		return nil, fmt.Errorf("log-level %q: %w", level, err)
	}
	return log, nil
}

// buildEngineConfig layers the engine.* settings over themecss.DefaultConfig.
func buildEngineConfig() (themecss.Config, error) {
	cfg := themecss.DefaultConfig()

	defaults := k.Cut("engine.defaults")
	for _, key := range sortedKeys(defaults) {
		id := tokens.SlotID(key)
		if _, ok := tokens.Lookup(id); !ok {
			return cfg, fmt.Errorf("engine.defaults: unknown slot %q", key)
		}
		cfg.Defaults[id] = defaults.String(key)
	}

	scale := k.Cut("engine.base-scale")
	for _, step := range sortedKeys(scale) {
		if _, ok := cfg.BaseScale[step]; !ok {
			return cfg, fmt.Errorf("engine.base-scale: unknown step %q", step)
		}
		cfg.BaseScale[step] = scale.Float64(step)
	}

	multipliers := k.Cut("engine.density-multipliers")
	for _, key := range sortedKeys(multipliers) {
		name, step, _ := strings.Cut(key, ".")
		density, ok := tokens.ParseDensity(name)
		if !ok {
			return cfg, fmt.Errorf("engine.density-multipliers: unknown density %q", name)
		}
		if cfg.Density[density] == nil {
			cfg.Density[density] = make(map[string]float64)
		}
		cfg.Density[density][step] = multipliers.Float64(key)
	}

	if name := k.String("engine.density"); name != "" {
		density, ok := tokens.ParseDensity(name)
		if !ok {
			return cfg, fmt.Errorf("engine.density: unknown density %q", name)
		}
		cfg.DefaultDensity = density
	}
	if weights := k.Ints("engine.font-weights"); len(weights) > 0 {
		cfg.FontWeights = weights
	}
	if url := k.String("engine.fonts-url"); url != "" {
		cfg.FontsBaseURL = url
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("engine config: %w", err)
	}
	return cfg, nil
}

func sortedKeys(sub *koanf.Koanf) []string {
	keys := sub.Keys()
	sort.Strings(keys)
	return keys
}

// buildGenerateConfig constructs the library's GenerateConfig from koanf state.
func buildGenerateConfig() podabio.GenerateConfig {
	return podabio.GenerateConfig{
		SourceDir: getStringWithFallback("source", "generate.source", "themes"),
		Includes:  getStringsWithFallback("include", "generate.include", fixtures.DefaultPatterns),
		PageFile:  getStringWithFallback("page", "generate.page", ""),
		OutputDir: getStringWithFallback("output-dir", "generate.output-dir", "public/themes"),
	}
}

// buildCheckConfig constructs the library's CheckConfig from koanf state.
func buildCheckConfig() podabio.CheckConfig {
	return podabio.CheckConfig{
		SourceDir:        getStringWithFallback("source", "check.source", "themes"),
		Includes:         getStringsWithFallback("include", "check.include", fixtures.DefaultPatterns),
		PageFile:         getStringWithFallback("page", "check.page", ""),
		Strict:           getBoolWithFallback("strict", "check.strict", false),
		MaxIssues:        getIntWithFallback("max-issues", "check.max-issues", 0),
		MaxSameIssues:    getIntWithFallback("max-same-issues", "check.max-same-issues", 0),
		PrintIssuedLines: getBoolWithFallback("print-lines", "check.print-lines", true),
		PrintLinterName:  getBoolWithFallback("print-linter-name", "check.print-linter-name", true),
		UseColors:        getBoolWithFallback("color", "color", false),
	}
}

// getStringWithFallback checks the flag key first, then the config file key, then returns the default.
func getStringWithFallback(flagKey, configKey, defaultVal string) string {
	if v := k.String(flagKey); v != "" {
		return v
	}
	if v := k.String(configKey); v != "" {
		return v
	}
	return defaultVal
}

// getStringsWithFallback is getStringWithFallback for list values.
func getStringsWithFallback(flagKey, configKey string, defaultVal []string) []string {
	if v := k.Strings(flagKey); len(v) > 0 {
		return v
	}
	if v := k.Strings(configKey); len(v) > 0 {
		return v
	}
	return defaultVal
}

// getBoolWithFallback checks the flag key first, then the config file key, then returns the default.
func getBoolWithFallback(flagKey, configKey string, defaultVal bool) bool {
	if k.Exists(flagKey) {
		return k.Bool(flagKey)
	}
	if k.Exists(configKey) {
		return k.Bool(configKey)
	}
	return defaultVal
}

// getIntWithFallback checks the flag key first, then the config file key, then returns the default.
func getIntWithFallback(flagKey, configKey string, defaultVal int) int {
	if k.Exists(flagKey) {
		return k.Int(flagKey)
	}
	if k.Exists(configKey) {
		return k.Int(configKey)
	}
	return defaultVal
}
