package extract

import (
	"context"

	"github.com/jonathan/autoreply/internal/types"
)

// ContextProvider answers a request for the recruiter context near the focused input.
// Implementations return ErrReceiverMissing when the page side cannot be reached.
type ContextProvider interface {
	RequestContext(ctx context.Context) (types.RecruiterContext, error)
}

// ProviderFunc adapts a function to ContextProvider.
type ProviderFunc func(ctx context.Context) (types.RecruiterContext, error)

// RequestContext implements ContextProvider.
func (f ProviderFunc) RequestContext(ctx context.Context) (types.RecruiterContext, error) {
	return f(ctx)
}

// StaticProvider returns text captured by the page itself.
type StaticProvider struct {
	Context types.RecruiterContext
}

// RequestContext implements ContextProvider.
func (p StaticProvider) RequestContext(ctx context.Context) (types.RecruiterContext, error) {
	if err := ctx.Err(); err != nil {
		return types.RecruiterContext{}, err
	}
	return p.Context, nil
}

// SnapshotProvider extracts context from an HTML snapshot on request.
type SnapshotProvider struct {
	Snapshot Snapshot
}

// RequestContext implements ContextProvider.
func (p SnapshotProvider) RequestContext(ctx context.Context) (types.RecruiterContext, error) {
	if err := ctx.Err(); err != nil {
		return types.RecruiterContext{}, err
	}
	return ExtractSnapshot(p.Snapshot)
}

// MissingProvider stands in for a page that has not loaded its extractor yet.
type MissingProvider struct{}

// RequestContext implements ContextProvider.
func (MissingProvider) RequestContext(context.Context) (types.RecruiterContext, error) {
	return types.RecruiterContext{}, ErrReceiverMissing
}
