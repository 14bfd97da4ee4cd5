package main

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/jonathan/autoreply/internal/cache"
	"github.com/jonathan/autoreply/internal/compensation"
	"github.com/jonathan/autoreply/internal/config"
	"github.com/jonathan/autoreply/internal/fetch"
	"github.com/jonathan/autoreply/internal/llm"
	"github.com/jonathan/autoreply/internal/pipeline"
)

// deps holds the collaborators shared by every command that runs the pipeline.
type deps struct {
	caps      llm.Capabilities
	estimator *compensation.Estimator
	closers   []io.Closer
}

// newDeps wires the generative model, the lookup fetcher and the estimator.
// A missing model or cache degrades the run instead of failing it.
func newDeps(ctx context.Context, cfg *config.Config) *deps {
	d := &deps{caps: llm.Offline()}

	if cfg.LLM.Enabled() {
		client, err := llm.NewClient(ctx, cfg.LLM.ModelConfig(), cfg.LLM.APIKey)
		if err != nil {
			slog.Warn("generative model unavailable, using heuristics only", "error", err)
		} else {
			d.caps = llm.FromClient(client)
			d.closers = append(d.closers, client)
		}
	} else {
		slog.Info("generative model disabled, using heuristics only", "provider", cfg.LLM.Provider)
	}

	d.estimator = compensation.NewEstimator(compensation.Options{
		Fetcher:          d.fetcher(ctx, cfg),
		Writer:           d.caps.Writer,
		LevelsBaseURL:    cfg.Sources.LevelsBaseURL,
		GlassdoorBaseURL: cfg.Sources.GlassdoorBaseURL,
	})
	return d
}

func (d *deps) fetcher(ctx context.Context, cfg *config.Config) fetch.Fetcher {
	var next fetch.Fetcher = fetch.NewHTTPFetcher(&fetch.Options{
		Timeout:   cfg.Fetch.Timeout,
		UserAgent: fetch.DefaultUserAgent,
	})
	if cfg.Fetch.UseBrowser {
		next = &fetch.FallbackFetcher{Primary: next, Secondary: &fetch.BrowserFetcher{}}
	}

	var store redis.Cmdable
	if cfg.Redis.Addr != "" {
		client, err := cache.NewClient(ctx, cache.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			slog.Warn("redis unavailable, lookups will not be cached", "addr", cfg.Redis.Addr, "error", err)
		} else {
			store = client
			d.closers = append(d.closers, client)
		}
	}

	return fetch.NewCachedFetcher(next, store, &fetch.CachedFetcherConfig{CacheTTL: cfg.Fetch.CacheTTL})
}

// orchestrator builds a pipeline over the shared collaborators.
func (d *deps) orchestrator(onProgress pipeline.ProgressCallback) *pipeline.Orchestrator {
	return pipeline.New(pipeline.Options{
		Capabilities: d.caps,
		Estimator:    d.estimator,
		OnProgress:   onProgress,
	})
}

// Close releases the model client and the redis connection.
func (d *deps) Close() error {
	var errs []error
	for _, c := range d.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}
