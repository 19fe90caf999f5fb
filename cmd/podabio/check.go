package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	podabio "github.com/phil426/podabio-sub000"
)

// errCheckFailed means the report was printed and the gate failed.
var errCheckFailed = errors.New("check failed")

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check theme fixtures for token problems",
	Long: `Validate theme and page fixtures and report malformed tokens, unsafe
values and unknown keywords with their file positions.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runCheck(cmd.OutOrStdout())
	},
}

func init() {
	f := checkCmd.Flags()
	f.String("source", "themes", "Directory holding theme fixtures")
	f.StringSlice("include", nil, "Fixture glob patterns relative to --source")
	f.String("page", "", "Page override fixture to check alongside the themes")
	f.Bool("strict", false, "Exit 1 on any issue (CI mode)")
	f.String("output-format", "", "Output format: issues|summary|full|json")
	f.Int("max-issues", 0, "Max issues to show (0=unlimited)")
	f.Int("max-same-issues", 0, "Max repeated issues to show (0=unlimited)")
	f.Bool("print-lines", true, "Show source lines with issues")
	f.Bool("print-linter-name", true, "Show (themecheck) suffix on issues")
}

func runCheck(stdout io.Writer) error {
	log, err := buildLogger()
	if err != nil {
		return err
	}
	engine, err := buildEngineConfig()
	if err != nil {
		return err
	}

	config := buildCheckConfig()
	config.Engine = &engine
	config.Logger = log

	result, err := podabio.Check(config)
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	quiet := getBoolWithFallback("quiet", "quiet", false)
	format := podabio.DetermineOutputFormat(getStringWithFallback("output-format", "check.output-format", ""), quiet)
	if !quiet {
		if err := podabio.WriteOutput(stdout, result, format, config); err != nil {
			return err
		}
	}

	// Soft gate: only errors fail unless strict.
	if result.Failed(config.Strict) {
		return errCheckFailed
	}
	return nil
}
