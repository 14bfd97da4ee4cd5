// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/autoreply/internal/compensation"
	"github.com/jonathan/autoreply/internal/pipeline"
	"github.com/jonathan/autoreply/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// Box prints a formatted box with a title and content. Long lines wrap at
// word boundaries.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func Box(out io.Writer, title string, content string) {
	inner := boxWidth - 4
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(out, "┌%s┐\n", border)
	fmt.Fprintf(out, "│ %-*s │\n", inner, Clip(title, inner))
	fmt.Fprintf(out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		for _, wrapped := range Wrap(line, inner) {
			fmt.Fprintf(out, "│ %-*s │\n", inner, wrapped)
		}
	}

	fmt.Fprintf(out, "└%s┘\n", border)
}

// Clip shortens s to width characters, ending in "..." when cut.
func Clip(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	if width <= 3 {
		return string([]rune(s)[:width])
	}
	return string([]rune(s)[:width-3]) + "..."
}

// Wrap splits line into pieces no wider than width, breaking at spaces when
// possible.
func Wrap(line string, width int) []string {
	if utf8.RuneCountInString(line) <= width {
		return []string{line}
	}

	var lines []string
	var current []rune
	for _, word := range strings.Fields(line) {
		w := []rune(word)
		for len(w) > width {
			if len(current) > 0 {
				lines = append(lines, string(current))
				current = nil
			}
			lines = append(lines, string(w[:width]))
			w = w[width:]
		}
		switch {
		case len(current) == 0:
			current = w
		case len(current)+1+len(w) <= width:
			current = append(append(current, ' '), w...)
		default:
			lines = append(lines, string(current))
			current = w
		}
	}
	if len(current) > 0 {
		lines = append(lines, string(current))
	}
	return lines
}

// PrintProgress outputs one pipeline step and, when it carries a result,
// the matching summary box.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintProgress(event pipeline.ProgressEvent) {
	fmt.Fprintf(p.out, "[run %d] %-16s %s\n", event.RunID, event.Step, event.Message)

	switch content := event.Content.(type) {
	case types.Classification:
		p.PrintClassification(content)
	case types.Personalization:
		p.PrintPersonalization(content)
	case compensation.Report:
		p.PrintResearch(content)
	case []string:
		p.PrintReplies(content)
	case string:
		p.PrintSummary(content)
	}
}

// PrintSummary outputs the summary of the recruiter message.
func (p *Printer) PrintSummary(summary string) {
	if summary == "" {
		return
	}
	Box(p.out, "SUMMARY", summary)
}

// PrintClassification outputs the outreach verdict and where it came from.
func (p *Printer) PrintClassification(c types.Classification) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Label:    %s\n", c.Label))
	sb.WriteString(fmt.Sprintf("Source:   %s", c.Source))
	if c.Raw != "" {
		sb.WriteString(fmt.Sprintf("\nRaw:      %s", Clip(c.Raw, 40)))
	}
	Box(p.out, "CLASSIFICATION", sb.String())
}

// PrintPersonalization outputs the guessed first names.
func (p *Printer) PrintPersonalization(person types.Personalization) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Recruiter: %s\n", nameOrUnknown(person.RecruiterName)))
	sb.WriteString(fmt.Sprintf("Candidate: %s", nameOrUnknown(person.UserName)))
	Box(p.out, "NAMES", sb.String())
}

func nameOrUnknown(name *string) string {
	if name == nil || *name == "" {
		return "(unknown)"
	}
	return *name
}

// PrintResearch outputs the resolved role and compensation estimates.
func (p *Printer) PrintResearch(report compensation.Report) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Role:      %s\n", report.Metadata.Role))
	sb.WriteString(fmt.Sprintf("Seniority: %s\n", report.Metadata.Seniority))
	sb.WriteString(fmt.Sprintf("Location:  %s\n", report.Metadata.Location))
	sb.WriteString("\n")
	sb.WriteString(ResearchLines(report.Research))
	Box(p.out, "COMPENSATION RESEARCH", sb.String())
}

// ResearchLines formats the per-source estimates and the overall grade.
func ResearchLines(r types.ResearchResult) string {
	lines := []string{
		fmt.Sprintf("Glassdoor:  %s (%s)", orDefault(r.Glassdoor.Amount, types.AmountUnavailable), orDefault(r.Glassdoor.Grade, types.GradeNA)),
		fmt.Sprintf("Levels.fyi: %s (%s)", orDefault(r.Levels.Amount, types.AmountUnavailable), orDefault(r.Levels.Grade, types.GradeNA)),
	}
	if r.OverallGrade != "" {
		lines = append(lines, fmt.Sprintf("Overall Grade: %s", r.OverallGrade))
	}
	return strings.Join(lines, "\n")
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

// PrintReplies outputs the first few replies, numbered from 1.
func (p *Printer) PrintReplies(replies []string) {
	if len(replies) == 0 {
		return
	}

	var sb strings.Builder
	count := min(len(replies), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("#%d\n%s", i+1, replies[i]))
		if i < count-1 {
			sb.WriteString("\n\n")
		}
	}
	if len(replies) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n\n... and %d more replies", len(replies)-maxItemsToShow))
	}

	Box(p.out, "REPLIES", sb.String())
}
