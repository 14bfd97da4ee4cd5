package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jonathan/autoreply/internal/prompts"
)

// ErrUnavailable is returned by every capability variant that has no backing model
var ErrUnavailable = errors.New("generative capability unavailable")

// SummaryOptions mirrors the on-device summarizer options
type SummaryOptions struct {
	Format string // "plain-text"
	Length string // "short", "medium", "long"
}

// DefaultSummaryOptions returns the options used by the pipeline
func DefaultSummaryOptions() SummaryOptions {
	return SummaryOptions{Format: "plain-text", Length: "medium"}
}

// Summarizer condenses recruiter text
type Summarizer interface {
	Available() bool
	Summarize(ctx context.Context, text string, opts SummaryOptions) (string, error)
}

// Writer answers free-form prompts
type Writer interface {
	Available() bool
	Generate(ctx context.Context, prompt string) (string, error)
	GenerateJSON(ctx context.Context, prompt string) (string, error)
}

// Proofreader corrects grammar in a single reply
type Proofreader interface {
	Available() bool
	Proofread(ctx context.Context, text string) (string, error)
}

// Capabilities bundles the three generative capabilities handed to the pipeline.
type Capabilities struct {
	Summarizer  Summarizer
	Writer      Writer
	Proofreader Proofreader
}

// Offline returns capabilities that are all unavailable.
func Offline() Capabilities {
	return Capabilities{
		Summarizer:  UnavailableSummarizer{},
		Writer:      UnavailableWriter{},
		Proofreader: UnavailableProofreader{},
	}
}

// FromClient backs every capability with the given client.
// A nil client yields Offline capabilities.
func FromClient(client Client) Capabilities {
	if client == nil {
		return Offline()
	}
	return Capabilities{
		Summarizer:  &clientSummarizer{client: client},
		Writer:      &clientWriter{client: client, tier: TierLite, jsonTier: TierStandard},
		Proofreader: &clientProofreader{client: client},
	}
}

// Normalize replaces nil capabilities with their unavailable variants.
func (c Capabilities) Normalize() Capabilities {
	if c.Summarizer == nil {
		c.Summarizer = UnavailableSummarizer{}
	}
	if c.Writer == nil {
		c.Writer = UnavailableWriter{}
	}
	if c.Proofreader == nil {
		c.Proofreader = UnavailableProofreader{}
	}
	return c
}

// --- Unavailable variants ---

// UnavailableSummarizer is the summarizer used when no model is configured
type UnavailableSummarizer struct{}

// Available always reports false
func (UnavailableSummarizer) Available() bool { return false }

// Summarize always fails with ErrUnavailable
func (UnavailableSummarizer) Summarize(context.Context, string, SummaryOptions) (string, error) {
	return "", ErrUnavailable
}

// UnavailableWriter is the writer used when no model is configured
type UnavailableWriter struct{}

// Available always reports false
func (UnavailableWriter) Available() bool { return false }

// Generate always fails with ErrUnavailable
func (UnavailableWriter) Generate(context.Context, string) (string, error) {
	return "", ErrUnavailable
}

// GenerateJSON always fails with ErrUnavailable
func (UnavailableWriter) GenerateJSON(context.Context, string) (string, error) {
	return "", ErrUnavailable
}

// UnavailableProofreader is the proofreader used when no model is configured
type UnavailableProofreader struct{}

// Available always reports false
func (UnavailableProofreader) Available() bool { return false }

// Proofread always fails with ErrUnavailable
func (UnavailableProofreader) Proofread(context.Context, string) (string, error) {
	return "", ErrUnavailable
}

// --- Client-backed variants ---

type clientWriter struct {
	client   Client
	tier     ModelTier
	jsonTier ModelTier
}

func (w *clientWriter) Available() bool { return true }

func (w *clientWriter) Generate(ctx context.Context, prompt string) (string, error) {
	return w.client.GenerateContent(ctx, prompt, w.tier)
}

func (w *clientWriter) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	return w.client.GenerateJSON(ctx, prompt, w.jsonTier)
}

type clientSummarizer struct {
	client Client
}

func (s *clientSummarizer) Available() bool { return true }

func (s *clientSummarizer) Summarize(ctx context.Context, text string, opts SummaryOptions) (string, error) {
	prompt, err := prompts.Build(prompts.Summarize, map[string]string{
		"Format": opts.Format,
		"Length": opts.Length,
		"Text":   text,
	})
	if err != nil {
		return "", err
	}
	summary, err := s.client.GenerateContent(ctx, prompt, TierLite)
	if err != nil {
		return "", fmt.Errorf("summarize: %w", err)
	}
	return strings.TrimSpace(summary), nil
}

type clientProofreader struct {
	client Client
}

func (p *clientProofreader) Available() bool { return true }

func (p *clientProofreader) Proofread(ctx context.Context, text string) (string, error) {
	prompt, err := prompts.Build(prompts.Proofread, map[string]string{"Text": text})
	if err != nil {
		return "", err
	}
	corrected, err := p.client.GenerateContent(ctx, prompt, TierLite)
	if err != nil {
		return "", fmt.Errorf("proofread: %w", err)
	}
	return strings.TrimSpace(corrected), nil
}
