// Command pdfcomply analyzes a PDF file for compliance with formatting and
// content rules and prints a JSON report.
package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/pyhub-apps/pdfcomply-golang/pkg/analyzer"
)

const version = "0.1.0"

// exit code 1 means the document failed one or more checks; 2 means the
// analysis itself could not run
var errChecksFailed = fmt.Errorf("compliance checks failed")

func main() {
	root := newRootCommand()
	if err := root.Execute(); err != nil {
		if err == errChecksFailed {
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(2)
	}
}

func newRootCommand() *cobra.Command {
	var (
		policyPath string
		pretty     bool
		logLevel   string
	)

	root := &cobra.Command{
		Use:           "pdfcomply",
		Short:         "PDF compliance analyzer",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	analyze := &cobra.Command{
		Use:   "analyze <file.pdf>",
		Short: "Analyze a PDF file and print the compliance report as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(logLevel)
			if err != nil {
				return err
			}

			policy := analyzer.DefaultPolicy()
			if policyPath != "" {
				policy, err = analyzer.LoadPolicy(policyPath)
				if err != nil {
					return err
				}
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}

			result := analyzer.New(policy, logger).Analyze(data)

			var report []byte
			if pretty {
				report, err = json.MarshalIndent(result, "", "  ")
			} else {
				report, err = json.Marshal(result)
			}
			if err != nil {
				return fmt.Errorf("failed to serialize report: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), string(report))

			if !result.AllPass() {
				return errChecksFailed
			}
			return nil
		},
	}

	analyze.Flags().StringVar(&policyPath, "policy", "", "YAML policy file overriding the defaults")
	analyze.Flags().BoolVar(&pretty, "pretty", false, "indent the JSON report")
	analyze.Flags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(analyze)
	return root
}

// newLogger builds a text slog.Logger writing to stderr so the report on
// stdout stays machine-readable
func newLogger(level string) (*slog.Logger, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l})
	return slog.New(handler), nil
}
