package compensation

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/autoreply/internal/fetch"
	"github.com/jonathan/autoreply/internal/llm"
	"github.com/jonathan/autoreply/internal/metrics"
	"github.com/jonathan/autoreply/internal/roles"
	"github.com/jonathan/autoreply/internal/types"
)

// Options configures an Estimator.
type Options struct {
	// Fetcher performs the external lookups. Nil disables them.
	Fetcher fetch.Fetcher
	// Writer backs the generative assist. Nil or unavailable disables it.
	Writer           llm.Writer
	LevelsBaseURL    string
	GlassdoorBaseURL string
}

// Estimator produces a ResearchResult from every available source.
type Estimator struct {
	fetcher          fetch.Fetcher
	writer           llm.Writer
	levelsBaseURL    string
	glassdoorBaseURL string
}

// NewEstimator creates an Estimator.
func NewEstimator(opts Options) *Estimator {
	writer := opts.Writer
	if writer == nil {
		writer = llm.UnavailableWriter{}
	}
	levels := opts.LevelsBaseURL
	if levels == "" {
		levels = DefaultLevelsBaseURL
	}
	glassdoor := opts.GlassdoorBaseURL
	if glassdoor == "" {
		glassdoor = DefaultGlassdoorBaseURL
	}
	return &Estimator{
		fetcher:          opts.Fetcher,
		writer:           writer,
		levelsBaseURL:    levels,
		glassdoorBaseURL: glassdoor,
	}
}

// Report is the research result together with the metadata it was derived from.
type Report struct {
	Metadata types.RoleMetadata   `json:"metadata"`
	Research types.ResearchResult `json:"research"`
}

// Research resolves the role from the input and estimates compensation for it.
func (e *Estimator) Research(ctx context.Context, in Input) Report {
	meta := roles.Resolve(in.Summary, in.RecruiterText, in.ContextText)
	return Report{Metadata: meta, Research: e.Estimate(ctx, meta, in)}
}

// Estimate always returns a best-effort result. Every source is attempted once
// and concurrently; a failing source is logged and treated as absent.
func (e *Estimator) Estimate(ctx context.Context, meta types.RoleMetadata, in Input) types.ResearchResult {
	var (
		levels, glassdoor, assist Suggestion
		g                         errgroup.Group
	)

	g.Go(func() error {
		levels = e.contain(SourceLevels, func() (Suggestion, error) { return e.lookupLevels(ctx, meta) })
		return nil
	})
	g.Go(func() error {
		glassdoor = e.contain(SourceGlassdoor, func() (Suggestion, error) { return e.lookupGlassdoor(ctx, meta) })
		return nil
	})
	g.Go(func() error {
		assist = e.contain(SourceAssist, func() (Suggestion, error) { return Assist(ctx, e.writer, in) })
		return nil
	})
	_ = g.Wait()

	heuristic, ok := Heuristic(meta)
	recordOutcome(SourceHeuristic, ok, nil)

	return Merge(assist, levels, glassdoor, heuristic)
}

// contain runs one source, converting failures and panics into an absent suggestion.
func (e *Estimator) contain(source string, run func() (Suggestion, error)) (s Suggestion) {
	defer func() {
		if r := recover(); r != nil {
			slog.Warn("compensation source panicked", "source", source, "panic", r)
			metrics.SourceResultsTotal.WithLabelValues(source, metrics.OutcomeFailed).Inc()
			s = Suggestion{}
		}
	}()

	s, err := run()
	if err != nil {
		recordOutcome(source, false, err)
		return Suggestion{}
	}
	recordOutcome(source, true, nil)
	return s
}

func recordOutcome(source string, ok bool, err error) {
	switch {
	case errors.Is(err, llm.ErrUnavailable), errors.Is(err, errNoFetcher):
		metrics.SourceResultsTotal.WithLabelValues(source, metrics.OutcomeSkipped).Inc()
	case err != nil:
		slog.Warn("compensation source failed, falling back", "source", source, "error", err)
		metrics.SourceResultsTotal.WithLabelValues(source, metrics.OutcomeFailed).Inc()
	case !ok:
		metrics.SourceResultsTotal.WithLabelValues(source, metrics.OutcomeAbsent).Inc()
	default:
		metrics.SourceResultsTotal.WithLabelValues(source, metrics.OutcomeOK).Inc()
	}
}

var errNoFetcher = errors.New("no fetcher configured")

func (e *Estimator) lookupLevels(ctx context.Context, meta types.RoleMetadata) (Suggestion, error) {
	if e.fetcher == nil {
		return Suggestion{}, errNoFetcher
	}

	role := meta.Role
	if role == "" {
		role = types.DefaultRole
	}
	u := LevelsURL(e.levelsBaseURL, role)

	result, err := e.fetcher.Fetch(ctx, u)
	if err != nil {
		return Suggestion{}, &LookupError{Source: SourceLevels, URL: u, Message: "request failed", Cause: err}
	}

	p, ok := ParseLevels([]byte(result.Body), meta.Location)
	if !ok {
		return Suggestion{}, &LookupError{Source: SourceLevels, URL: u, Message: "no usable compensation values", Cause: ErrUnparseable}
	}

	est := p.Estimate()
	return Suggestion{Levels: &est, OverallGrade: est.Grade}, nil
}

func (e *Estimator) lookupGlassdoor(ctx context.Context, meta types.RoleMetadata) (Suggestion, error) {
	if e.fetcher == nil {
		return Suggestion{}, errNoFetcher
	}

	role := meta.Role
	if role == "" {
		role = types.DefaultRole
	}
	u := GlassdoorURL(e.glassdoorBaseURL, role, meta.Location)

	result, err := e.fetcher.Fetch(ctx, u)
	if err != nil {
		return Suggestion{}, &LookupError{Source: SourceGlassdoor, URL: u, Message: "request failed", Cause: err}
	}

	p, ok := ParseGlassdoor(result.Body)
	if !ok {
		return Suggestion{}, &LookupError{Source: SourceGlassdoor, URL: u, Message: "payload missing percentiles", Cause: ErrUnparseable}
	}

	est := p.Estimate()
	return Suggestion{Glassdoor: &est, OverallGrade: est.Grade}, nil
}
