package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	podabio "github.com/phil426/podabio-sub000"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Render every theme fixture to a CSS file",
	Long: `Render each theme under the source directory to <slug>.css in the
output directory and write a manifest.json indexing them.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runGenerate(cmd.OutOrStdout())
	},
}

func init() {
	f := generateCmd.Flags()
	f.String("source", "themes", "Directory holding theme fixtures")
	f.StringSlice("include", nil, "Fixture glob patterns relative to --source (default **/*.yaml, **/*.yml, **/*.json)")
	f.String("page", "", "Page override fixture applied to matching themes")
	f.String("output-dir", "public/themes", "Output directory for stylesheets and manifest.json")
}

func runGenerate(stdout io.Writer) error {
	log, err := buildLogger()
	if err != nil {
		return err
	}
	engine, err := buildEngineConfig()
	if err != nil {
		return err
	}

	config := buildGenerateConfig()
	config.Engine = &engine
	config.Logger = log

	result, err := podabio.Generate(config)
	if err != nil {
		return fmt.Errorf("generate failed: %w", err)
	}

	if getBoolWithFallback("quiet", "quiet", false) {
		return nil
	}

	useColors := getBoolWithFallback("color", "color", false)
	for _, w := range result.Warnings {
		fmt.Fprintln(stdout, podabio.RenderStyle(podabio.StyleYellow, "warning: "+w, useColors))
	}
	fmt.Fprintln(stdout, podabio.RenderStyle(podabio.StyleGreen,
		fmt.Sprintf("Rendered %d themes from %d files into %s", result.ThemesRendered, result.FilesScanned, config.OutputDir),
		useColors))
	return nil
}
