// Package classify decides whether captured text is recruiter outreach.
package classify

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"github.com/jonathan/autoreply/internal/llm"
	"github.com/jonathan/autoreply/internal/metrics"
	"github.com/jonathan/autoreply/internal/prompts"
	"github.com/jonathan/autoreply/internal/types"
)

// Verdict is the normalized answer of the generative classifier.
type Verdict int

const (
	// VerdictUnknown covers an unavailable model, a failed call or an unrecognized answer
	VerdictUnknown Verdict = iota
	VerdictOutreach
	VerdictOther
)

var signals = compileAll(
	`\bhir(?:e|ing)\b`,
	`\brecruit(er|ing)?\b`,
	`\bjob\b`,
	`\brole\b`,
	`\bposition\b`,
	`\bopening\b`,
	`\bopportunit(?:y|ies)\b`,
	`\bheadcount\b`,
	`\binterview\b`,
	`\blet['’]?s\s+(?:chat|connect|talk)\b`,
	`\bchat\s+(?:about|regarding)\b`,
	`\bconnect\s+(?:about|regarding)\b`,
	`\btalent\b`,
	`\bcandidate\b`,
	`\bjoin\s+(?:us|our)\b`,
	`\blooking\s+to\s+(?:hire|fill|bring)\b`,
	`\bstaff(?:ing)?\b`,
	`\bfound(?:ing)?\s+engineer\b`,
	`\bfounders?\b`,
	`\bstartup\b`,
	`\bstealth\b`,
	`\bwould\s+you\s+be\s+open\b`,
	`\bi'?d\s+love\s+to\s+(?:chat|connect)\b`,
	`\bsaw\s+your\s+profile\b`,
	`\breach(?:ing)?\s+out\b`,
	`\bcompensation\b`,
	`\bpackage\b`,
	`\boffer\b`,
	`\bnew\s+headcount\b`,
)

var nonLetters = regexp.MustCompile(`[^A-Za-z]`)

func compileAll(patterns ...string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		compiled[i] = regexp.MustCompile(p)
	}
	return compiled
}

// Signals returns the recruiting-signal patterns in evaluation order.
func Signals() []*regexp.Regexp {
	return append([]*regexp.Regexp(nil), signals...)
}

// Heuristic reports whether the recruiter text or summary contains any
// recruiting signal. Blank input is never outreach.
func Heuristic(recruiterText, summary string) bool {
	text := strings.ToLower(recruiterText + " " + summary)
	if strings.TrimSpace(text) == "" {
		return false
	}
	for _, re := range signals {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// CombinedText is the text shown to the generative classifier.
func CombinedText(summary, recruiterText, contextText string) string {
	parts := []string{"Recruiter message:", recruiterText}
	if contextText != "" && contextText != recruiterText {
		parts = append(parts, "Additional context:\n"+contextText)
	}
	parts = append(parts, "Summary:", summary)

	kept := parts[:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "\n\n")
}

// ParseVerdict strips non-letters, upper-cases and matches by prefix.
func ParseVerdict(raw string) Verdict {
	normalized := strings.ToUpper(nonLetters.ReplaceAllString(raw, ""))
	switch {
	case strings.HasPrefix(normalized, "OUTREACH"):
		return VerdictOutreach
	case strings.HasPrefix(normalized, "OTHER"):
		return VerdictOther
	default:
		return VerdictUnknown
	}
}

// Decide applies the decision table. A positive heuristic overrides a
// negative model verdict but never the other way around.
func Decide(verdict Verdict, heuristic bool, raw string) types.Classification {
	switch verdict {
	case VerdictOutreach:
		return classification(true, types.SourceWriter, raw)
	case VerdictOther:
		if heuristic {
			return classification(true, types.SourceWriterHeuristic, raw)
		}
		return classification(false, types.SourceWriter, raw)
	default:
		return classification(heuristic, types.SourceHeuristic, "")
	}
}

func classification(outreach bool, source, raw string) types.Classification {
	label := types.LabelOther
	if outreach {
		label = types.LabelOutreach
	}
	return types.Classification{Label: label, IsOutreach: outreach, Source: source, Raw: raw}
}

// Classifier combines the generative verdict with the keyword heuristic.
type Classifier struct {
	writer llm.Writer
}

// New creates a Classifier. A nil writer classifies by heuristic only.
func New(writer llm.Writer) *Classifier {
	if writer == nil {
		writer = llm.UnavailableWriter{}
	}
	return &Classifier{writer: writer}
}

// Classify never fails; model errors fall back to the heuristic.
func (c *Classifier) Classify(ctx context.Context, summary, recruiterText, contextText string) types.Classification {
	heuristic := Heuristic(recruiterText, summary)
	verdict, raw := c.ask(ctx, summary, recruiterText, contextText)

	result := Decide(verdict, heuristic, raw)
	metrics.ClassificationsTotal.WithLabelValues(result.Source, result.Label).Inc()
	return result
}

func (c *Classifier) ask(ctx context.Context, summary, recruiterText, contextText string) (Verdict, string) {
	if !c.writer.Available() {
		return VerdictUnknown, ""
	}

	prompt, err := prompts.Build(prompts.ClassifyOutreach, map[string]string{
		"Text": CombinedText(summary, recruiterText, contextText),
	})
	if err != nil {
		slog.Warn("outreach prompt unavailable", "error", err)
		return VerdictUnknown, ""
	}

	answer, err := c.writer.Generate(ctx, prompt)
	if err != nil {
		slog.Warn("writer outreach classification failed, falling back to heuristics", "error", err)
		return VerdictUnknown, ""
	}

	raw := strings.TrimSpace(answer)
	verdict := ParseVerdict(raw)
	if verdict == VerdictUnknown {
		slog.Debug("unrecognized outreach verdict", "raw", raw)
	}
	return verdict, raw
}
