package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/autoreply/internal/display"
	"github.com/jonathan/autoreply/internal/extract"
	"github.com/jonathan/autoreply/internal/observability"
	"github.com/jonathan/autoreply/internal/pipeline"
	"github.com/jonathan/autoreply/internal/types"
)

var errNoInput = errors.New("one of --text-file, --html-file or --selection is required")

// clipboard receives replies that have no file to go to.
var clipboard display.Clipboard = display.SystemClipboard{}

type generateOptions struct {
	textFile  string
	htmlFile  string
	focus     string
	selection string
	pageURL   string
	insert    int
	into      string
	composer  bool
	verbose   bool
}

func newGenerateCmd(opts *rootOptions) *cobra.Command {
	g := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Research an outreach message and draft replies",
		Long: `Run the outreach pipeline once on captured page text or an HTML snapshot and
print the compensation research and the drafted replies. With --insert the
chosen reply is written to --into, or copied to the clipboard.`,
		Example: `  autoreply generate --text-file message.txt
  autoreply generate --html-file thread.html --focus "#reply" --page-url https://www.linkedin.com/messaging/
  autoreply generate --text-file message.txt --insert 2 --into draft.txt`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			trigger, err := g.trigger()
			if err != nil {
				return err
			}

			var onProgress pipeline.ProgressCallback
			if g.verbose {
				onProgress = observability.NewPrinter(cmd.ErrOrStderr()).PrintProgress
			}

			d := newDeps(cmd.Context(), opts.cfg)
			defer func() { _ = d.Close() }()

			session := display.NewSession(clipboard)
			defer session.Close()

			d.orchestrator(onProgress).Run(cmd.Context(), trigger, pipeline.EmitterFunc(func(msg types.Message) {
				session.Handle(msg)
			}))

			view := session.View()
			if view.Kind == display.ViewError {
				return errors.New(view.Error)
			}
			display.Render(cmd.OutOrStdout(), view)

			if g.insert == 0 {
				return nil
			}
			if _, err := session.Insert(display.FileTarget{Path: g.into, Composer: g.composer}, g.insert-1); err != nil {
				return fmt.Errorf("inserting reply: %w", err)
			}
			display.Render(cmd.OutOrStdout(), session.View())
			return nil
		},
	}

	cmd.Flags().StringVar(&g.textFile, "text-file", "", "File holding the recruiter message text")
	cmd.Flags().StringVar(&g.htmlFile, "html-file", "", "File holding an HTML snapshot of the page")
	cmd.Flags().StringVar(&g.focus, "focus", "", "CSS selector of the focused reply box in the snapshot")
	cmd.Flags().StringVar(&g.selection, "selection", "", "Selected text used when nothing can be extracted")
	cmd.Flags().StringVar(&g.pageURL, "page-url", "", "URL the snapshot was taken from")
	cmd.Flags().IntVar(&g.insert, "insert", 0, "Insert reply N (1-based) after generating")
	cmd.Flags().StringVar(&g.into, "into", "", "File that receives the inserted reply")
	cmd.Flags().BoolVar(&g.composer, "composer", false, "Append to --into like a message composer instead of replacing it")
	cmd.Flags().BoolVarP(&g.verbose, "verbose", "v", false, "Print each pipeline step to stderr")
	cmd.MarkFlagsMutuallyExclusive("text-file", "html-file")

	return cmd
}

// trigger builds the context provider from the input flags.
func (g *generateOptions) trigger() (pipeline.Trigger, error) {
	trigger := pipeline.Trigger{Provider: extract.MissingProvider{}, Selection: g.selection}

	switch {
	case g.htmlFile != "":
		content, err := os.ReadFile(g.htmlFile)
		if err != nil {
			return trigger, fmt.Errorf("reading snapshot: %w", err)
		}
		trigger.Provider = extract.SnapshotProvider{Snapshot: extract.Snapshot{
			HTML:          string(content),
			FocusSelector: g.focus,
			URL:           g.pageURL,
		}}
	case g.textFile != "":
		content, err := os.ReadFile(g.textFile)
		if err != nil {
			return trigger, fmt.Errorf("reading message: %w", err)
		}
		text := strings.TrimSpace(string(content))
		trigger.Provider = extract.StaticProvider{Context: types.RecruiterContext{PrimaryText: text, ContextText: text}}
	case strings.TrimSpace(g.selection) == "":
		return trigger, errNoInput
	}

	return trigger, nil
}
