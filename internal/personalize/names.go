// Package personalize guesses the recruiter's and candidate's first names.
package personalize

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"github.com/jonathan/autoreply/internal/llm"
	"github.com/jonathan/autoreply/internal/prompts"
	"github.com/jonathan/autoreply/internal/schemas"
	"github.com/jonathan/autoreply/internal/types"
)

var (
	namePattern    = regexp.MustCompile(`[A-Za-z][A-Za-z' -]*`)
	tokenSeparator = regexp.MustCompile(`[\s-]`)
)

// SanitizeFirstName keeps the first letter-led token of value, title-cased.
// It returns nil when nothing name-like is present.
func SanitizeFirstName(value string) *string {
	text := strings.TrimSpace(value)
	if text == "" {
		return nil
	}

	match := namePattern.FindString(text)
	if match == "" {
		return nil
	}

	name := tokenSeparator.Split(match, 2)[0]
	titled := strings.ToUpper(name[:1]) + strings.ToLower(name[1:])
	return &titled
}

type nameFields struct {
	RecruiterFirstName *string `json:"recruiterFirstName"`
	CandidateFirstName *string `json:"candidateFirstName"`
}

// ParseNames reads the model's JSON answer. Malformed output yields false.
func ParseNames(raw string) (types.Personalization, bool) {
	trimmed := llm.StripCodeFences(raw)
	if trimmed == "" {
		return types.Personalization{}, false
	}
	var fields nameFields
	if err := schemas.Decode(schemas.Personalization, []byte(trimmed), &fields); err != nil {
		slog.Debug("discarding name output", "error", err)
		return types.Personalization{}, false
	}

	return types.Personalization{
		RecruiterName: sanitizePtr(fields.RecruiterFirstName),
		UserName:      sanitizePtr(fields.CandidateFirstName),
	}, true
}

func sanitizePtr(v *string) *string {
	if v == nil {
		return nil
	}
	return SanitizeFirstName(*v)
}

// Extractor asks the generative writer for first names.
type Extractor struct {
	writer llm.Writer
}

// New creates an Extractor. A nil writer always yields unknown names.
func New(writer llm.Writer) *Extractor {
	if writer == nil {
		writer = llm.UnavailableWriter{}
	}
	return &Extractor{writer: writer}
}

// Extract never fails; any problem degrades to unknown names.
func (e *Extractor) Extract(ctx context.Context, summary, recruiterText, contextText string) types.Personalization {
	if !e.writer.Available() {
		return types.Personalization{}
	}

	prompt, err := prompts.Build(prompts.ExtractNames, map[string]string{
		"RecruiterText": recruiterText,
		"Details":       prompts.Details(recruiterText, contextText, summary),
	})
	if err != nil {
		slog.Warn("name prompt unavailable", "error", err)
		return types.Personalization{}
	}

	output, err := e.writer.GenerateJSON(ctx, prompt)
	if err != nil {
		slog.Warn("personalization extraction failed, using fallback", "error", err)
		return types.Personalization{}
	}

	names, ok := ParseNames(output)
	if !ok {
		return types.Personalization{}
	}
	return names
}
