package compensation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jonathan/autoreply/internal/llm"
	"github.com/jonathan/autoreply/internal/prompts"
	"github.com/jonathan/autoreply/internal/schemas"
	"github.com/jonathan/autoreply/internal/types"
)

// ErrUnparseable marks model or payload output that could not be read.
var ErrUnparseable = errors.New("unparseable output")

// Input is the text an estimate is researched from.
type Input struct {
	Summary       string
	RecruiterText string
	ContextText   string
}

// AssistPrompt builds the research prompt for the generative writer.
func AssistPrompt(in Input) (string, error) {
	return prompts.Build(prompts.ResearchCompensation, map[string]string{
		"RecruiterText": in.RecruiterText,
		"Details":       prompts.Details(in.RecruiterText, in.ContextText, in.Summary),
	})
}

// ParseAssist reads the model's research JSON. Both the flat keys
// (glassdoorAmount, levelsGrade, ...) and nested glassdoor/levels objects are
// accepted. Missing amounts leave that estimate absent.
func ParseAssist(raw string) (Suggestion, bool) {
	trimmed := llm.StripCodeFences(raw)
	if trimmed == "" {
		return Suggestion{}, false
	}
	var parsed map[string]any
	if err := schemas.Decode(schemas.Research, []byte(trimmed), &parsed); err != nil {
		slog.Debug("discarding research output", "error", err)
		return Suggestion{}, false
	}

	var s Suggestion
	if est, ok := assistEstimate(parsed, "glassdoor"); ok {
		s.Glassdoor = &est
	}
	if est, ok := assistEstimate(parsed, "levels"); ok {
		s.Levels = &est
	}
	if grade, ok := scalarString(parsed["overallGrade"]); ok {
		s.OverallGrade = strings.TrimSpace(grade)
	}
	return s, true
}

func assistEstimate(parsed map[string]any, prefix string) (types.CompEstimate, bool) {
	if nested, present := parsed[prefix]; present && nested != nil {
		return NormalizeCandidate(nested)
	}
	return NormalizeCandidate(map[string]any{
		"amount": parsed[prefix+"Amount"],
		"grade":  parsed[prefix+"Grade"],
	})
}

// Assist asks the writer for an estimate. Any failure yields no suggestion.
func Assist(ctx context.Context, writer llm.Writer, in Input) (Suggestion, error) {
	if writer == nil || !writer.Available() {
		return Suggestion{}, llm.ErrUnavailable
	}

	prompt, err := AssistPrompt(in)
	if err != nil {
		return Suggestion{}, fmt.Errorf("building research prompt: %w", err)
	}

	output, err := writer.GenerateJSON(ctx, prompt)
	if err != nil {
		return Suggestion{}, fmt.Errorf("generating research: %w", err)
	}

	suggestion, ok := ParseAssist(output)
	if !ok {
		return Suggestion{}, fmt.Errorf("research output: %w", ErrUnparseable)
	}
	return suggestion, nil
}
