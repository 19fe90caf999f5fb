package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "podabio",
	Short: "Theme stylesheet renderer and checker for link-in-bio pages",
	Long: `Resolve page themes into CSS custom properties.
Page overrides beat theme tokens, theme tokens beat legacy fields,
and every slot ends at a safe built-in default.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags (inherited by all subcommands)
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().Bool("quiet", false, "Suppress all output (exit code only)")
	rootCmd.PersistentFlags().Bool("color", false, "Force color output")
	rootCmd.PersistentFlags().String("config", ".podabio.yaml", "Config file path")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug|info|warn|error (default warn)")
	rootCmd.PersistentFlags().Bool("log-json", false, "Write logs as JSON instead of console text")

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(versionCmd)
}
