// Package pipeline provides the orchestration for a single outreach reply run.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/jonathan/autoreply/internal/classify"
	"github.com/jonathan/autoreply/internal/compensation"
	"github.com/jonathan/autoreply/internal/compose"
	"github.com/jonathan/autoreply/internal/extract"
	"github.com/jonathan/autoreply/internal/llm"
	"github.com/jonathan/autoreply/internal/metrics"
	"github.com/jonathan/autoreply/internal/personalize"
	"github.com/jonathan/autoreply/internal/pipeline/steps"
	"github.com/jonathan/autoreply/internal/types"
)

// User-facing run failures
const (
	DefaultErrorMessage = "Something went wrong while generating replies."
	MsgNoRecruiterText  = "Couldn't capture the recruiter message. Make sure the thread is visible, place the cursor in the reply box, and try again."
)

// SummaryLimit is the length of the truncation fallback summary.
const SummaryLimit = 300

// ErrContextUnavailable means no usable recruiter text was captured.
var ErrContextUnavailable = errors.New("recruiter context unavailable")

// RunError is a run failure whose Message is shown to the user.
type RunError struct {
	Message string
	Cause   error
}

func (e *RunError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *RunError) Unwrap() error {
	return e.Cause
}

// UserMessage returns the text shown for a failed run.
func UserMessage(err error) string {
	var runErr *RunError
	if errors.As(err, &runErr) && runErr.Message != "" {
		return runErr.Message
	}
	return DefaultErrorMessage
}

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step     string `json:"step"`
	Category string `json:"category"`
	Message  string `json:"message"`
	RunID    uint64 `json:"run_id,omitempty"`
	Content  any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// Emitter receives the display messages of a run.
type Emitter interface {
	Emit(msg types.Message)
}

// EmitterFunc adapts a function to Emitter.
type EmitterFunc func(msg types.Message)

// Emit implements Emitter.
func (f EmitterFunc) Emit(msg types.Message) {
	f(msg)
}

// Trigger is one user action: where to ask for context and the text the
// user had selected, if any.
type Trigger struct {
	Provider  extract.ContextProvider
	Selection string
}

// Options configures an Orchestrator.
type Options struct {
	Capabilities llm.Capabilities
	// Estimator defaults to a heuristic-and-assist estimator without network lookups.
	Estimator  *compensation.Estimator
	OnProgress ProgressCallback
}

// Orchestrator sequences the components of a run and numbers every run.
type Orchestrator struct {
	caps         llm.Capabilities
	classifier   *classify.Classifier
	personalizer *personalize.Extractor
	estimator    *compensation.Estimator
	onProgress   ProgressCallback
	runs         atomic.Uint64
}

// New creates an Orchestrator.
func New(opts Options) *Orchestrator {
	caps := opts.Capabilities.Normalize()
	estimator := opts.Estimator
	if estimator == nil {
		estimator = compensation.NewEstimator(compensation.Options{Writer: caps.Writer})
	}
	return &Orchestrator{
		caps:         caps,
		classifier:   classify.New(caps.Writer),
		personalizer: personalize.New(caps.Writer),
		estimator:    estimator,
		onProgress:   opts.OnProgress,
	}
}

// NextRunID reserves a run identifier. Identifiers start at 1 and only grow.
func (o *Orchestrator) NextRunID() uint64 {
	return o.runs.Add(1)
}

// Run performs one run and emits a loading status followed by exactly one
// READY or ERROR message, all carrying the same RunID. It returns that RunID.
func (o *Orchestrator) Run(ctx context.Context, trigger Trigger, emitter Emitter) uint64 {
	runID := o.NextRunID()
	emitter.Emit(types.Message{Type: types.MessageStatus, RunID: runID, Status: types.StatusLoading})

	bundle, err := o.Generate(ctx, runID, trigger)
	if err != nil {
		emitter.Emit(types.Message{Type: types.MessageError, RunID: runID, Message: UserMessage(err)})
		return runID
	}

	emitter.Emit(types.Message{Type: types.MessageReady, RunID: runID, Bundle: bundle})
	return runID
}

type run struct {
	id      uint64
	tracker *steps.Tracker
}

// Generate executes the steps of a run without emitting display messages.
// Panics are recovered into an error.
func (o *Orchestrator) Generate(ctx context.Context, runID uint64, trigger Trigger) (bundle *types.Bundle, err error) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			slog.Error("pipeline run panicked", "run_id", runID, "panic", r)
			bundle, err = nil, fmt.Errorf("run %d panicked: %v", runID, r)
		}

		result := metrics.RunResultReady
		if err != nil {
			result = metrics.RunResultFailed
			slog.Warn("pipeline run failed", "run_id", runID, "error", err)
		}
		metrics.RunsTotal.WithLabelValues(result).Inc()
		slog.Debug("pipeline run finished", "run_id", runID, "result", result, "duration", time.Since(start))
	}()

	r := &run{id: runID, tracker: steps.NewTracker()}
	var (
		recruiterText, contextText, summary string
		classification                      types.Classification
		personalization                     types.Personalization
		replies                             []string
		report                              compensation.Report
	)

	err = o.step(r, steps.RequestContext, func() (string, any, error) {
		var acquireErr error
		recruiterText, contextText, acquireErr = acquire(ctx, trigger)
		return "Captured recruiter message", nil, acquireErr
	})
	if err != nil {
		return nil, err
	}

	_ = o.step(r, steps.Summarize, func() (string, any, error) {
		source := contextText
		if source == "" {
			source = recruiterText
		}
		summary = Summarize(ctx, o.caps.Summarizer, source)
		return "Summarized recruiter message", summary, nil
	})

	_ = o.step(r, steps.Classify, func() (string, any, error) {
		classification = o.classifier.Classify(ctx, summary, recruiterText, contextText)
		return fmt.Sprintf("Classified as %s", classification.Label), classification, nil
	})

	_ = o.step(r, steps.Personalize, func() (string, any, error) {
		personalization = o.personalizer.Extract(ctx, summary, recruiterText, contextText)
		return "Extracted names", personalization, nil
	})

	_ = o.step(r, steps.Compose, func() (string, any, error) {
		replies = []string{}
		if classification.IsOutreach {
			replies = compose.Compose(personalization)
		}
		return fmt.Sprintf("Composed %d replies", len(replies)), nil, nil
	})

	_ = o.step(r, steps.Polish, func() (string, any, error) {
		replies = compose.Polish(ctx, o.caps.Proofreader, replies)
		return "Polished replies", replies, nil
	})

	_ = o.step(r, steps.Research, func() (string, any, error) {
		report = o.estimator.Research(ctx, compensation.Input{
			Summary:       summary,
			RecruiterText: recruiterText,
			ContextText:   contextText,
		})
		return fmt.Sprintf("Estimated compensation for %s", report.Metadata.Role), report, nil
	})

	return &types.Bundle{
		Summary:        summary,
		Original:       recruiterText,
		Context:        contextText,
		Classification: classification,
		Replies:        replies,
		Research:       report.Research,
	}, nil
}

// step runs fn once its dependencies are complete and reports progress.
// Only a dependency violation or an error returned by fn is an error.
func (o *Orchestrator) step(r *run, name string, fn func() (string, any, error)) error {
	if err := r.tracker.Begin(name); err != nil {
		panic(fmt.Sprintf("step %s out of order: %v", name, err))
	}

	message, content, err := fn()
	if err != nil {
		return err
	}
	r.tracker.Complete(name)

	if o.onProgress != nil {
		o.onProgress(ProgressEvent{
			Step:     name,
			Category: steps.StepRegistry[name].Category,
			Message:  message,
			RunID:    r.id,
			Content:  content,
		})
	}
	return nil
}

// acquire obtains the recruiter text, using the selection when the provider
// cannot be reached or captured nothing.
func acquire(ctx context.Context, trigger Trigger) (recruiterText, contextText string, err error) {
	selection := strings.TrimSpace(trigger.Selection)
	provider := trigger.Provider
	if provider == nil {
		provider = extract.MissingProvider{}
	}

	captured, err := provider.RequestContext(ctx)
	if err != nil {
		if selection == "" {
			return "", "", contextFailure(err)
		}
		slog.Debug("context request failed, using selection", "error", err)
		captured = types.RecruiterContext{PrimaryText: selection, ContextText: selection}
	}

	contextText = strings.TrimSpace(captured.ContextText)
	recruiterText = strings.TrimSpace(captured.PrimaryText)
	if recruiterText == "" {
		recruiterText = selection
	}
	if recruiterText == "" {
		message := captured.Error
		if message == "" {
			message = MsgNoRecruiterText
		}
		return "", "", &RunError{Message: message, Cause: ErrContextUnavailable}
	}
	return recruiterText, contextText, nil
}

func contextFailure(err error) error {
	var ctxErr *extract.ContextError
	switch {
	case errors.Is(err, extract.ErrReceiverMissing):
		return &RunError{Message: extract.MsgStillLoading, Cause: err}
	case errors.As(err, &ctxErr):
		return &RunError{Message: ctxErr.Message, Cause: err}
	default:
		return fmt.Errorf("requesting recruiter context: %w", err)
	}
}

// Summarize condenses text with the summarizer. An unavailable or failing
// summarizer, or an empty summary, falls back to Truncate.
func Summarize(ctx context.Context, summarizer llm.Summarizer, text string) string {
	if summarizer != nil && summarizer.Available() {
		summary, err := summarizer.Summarize(ctx, text, llm.DefaultSummaryOptions())
		switch {
		case err != nil:
			slog.Warn("summarizer failed, falling back to truncation", "error", err)
		case strings.TrimSpace(summary) != "":
			return strings.TrimSpace(summary)
		}
	}
	return Truncate(text, SummaryLimit)
}

// Truncate shortens text longer than limit characters to its first
// limit-1 characters, trimmed, followed by an ellipsis.
func Truncate(text string, limit int) string {
	runes := []rune(text)
	if limit <= 0 || len(runes) <= limit {
		return text
	}
	return strings.TrimSpace(string(runes[:limit-1])) + "…"
}
