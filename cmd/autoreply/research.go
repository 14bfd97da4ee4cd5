package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/autoreply/internal/compensation"
	"github.com/jonathan/autoreply/internal/observability"
	"github.com/jonathan/autoreply/internal/pipeline"
)

func newResearchCmd(opts *rootOptions) *cobra.Command {
	var (
		text    string
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "research",
		Short: "Estimate compensation for the role an outreach message describes",
		Long: `Resolve role, seniority and location from the text, look up Levels.fyi and
Glassdoor, fall back to the heuristic table, and print the result as JSON.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			text = strings.TrimSpace(text)
			if text == "" {
				return fmt.Errorf("--text must not be empty")
			}

			d := newDeps(cmd.Context(), opts.cfg)
			defer func() { _ = d.Close() }()

			report := d.estimator.Research(cmd.Context(), compensation.Input{
				Summary:       pipeline.Truncate(text, pipeline.SummaryLimit),
				RecruiterText: text,
				ContextText:   text,
			})
			if verbose {
				observability.NewPrinter(cmd.ErrOrStderr()).PrintResearch(report)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(report); err != nil {
				return fmt.Errorf("encoding report: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "Recruiter message text")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print a formatted summary to stderr")
	_ = cmd.MarkFlagRequired("text")

	return cmd
}
