package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default .podabio.yaml config file",
	Long:  `Create a .podabio.yaml configuration file in the current directory with sensible defaults.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")

		if _, err := os.Stat(".podabio.yaml"); err == nil && !force {
			return fmt.Errorf(".podabio.yaml already exists (use --force to overwrite)")
		}

		if err := os.WriteFile(".podabio.yaml", []byte(defaultConfig), 0644); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Created .podabio.yaml")
		return nil
	},
}

const defaultConfig = `# podabio configuration

# Shared settings
verbose: false
log-level: warn

# Engine defaults, applied below every theme and page
engine:
  density: comfortable      # compact | comfortable
  font-weights: [400, 500, 600, 700]
  fonts-url: https://fonts.googleapis.com/css2
  # defaults:
  #   color.accent.primary: "#2563eb"
  # base-scale:
  #   md: 1
  # density-multipliers:
  #   compact:
  #     md: 0.8

# Single render settings
render:
  format: css               # css | head | json

# Batch generation settings
generate:
  source: themes
  output-dir: public/themes
  include:
    - "**/*.yaml"
    - "**/*.yml"
    - "**/*.json"

# Check settings
check:
  source: themes
  strict: false
  output-format: issues     # issues | summary | full | json
  max-issues: 0             # 0 = unlimited
  max-same-issues: 0        # 0 = unlimited
  print-lines: true
  print-linter-name: true
`

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite existing config file")
}
