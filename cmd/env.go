package main

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"github.com/LucasDotTrade/lucas-brain/internal/crossref"
	"github.com/LucasDotTrade/lucas-brain/internal/extract"
	"github.com/LucasDotTrade/lucas-brain/internal/pipeline"
	"github.com/LucasDotTrade/lucas-brain/internal/semantic"
	"github.com/LucasDotTrade/lucas-brain/internal/store"
	"github.com/LucasDotTrade/lucas-brain/pkg/anthropic"
)

// pipelineEnv bundles the wired validation pipeline and its store.
type pipelineEnv struct {
	Store    store.Store
	Pipeline *pipeline.Pipeline
}

// initPipeline validates config for the given mode and wires the full stack:
// store, Anthropic collaborators, cross-reference engine, pipeline.
func initPipeline(ctx context.Context, mode string) (*pipelineEnv, error) {
	if err := cfg.Validate(mode); err != nil {
		return nil, err
	}

	st, err := store.Open(ctx, cfg.Store.Driver, cfg.Store.DatabaseURL, &store.PoolConfig{
		MaxConns: cfg.Store.MaxConns,
		MinConns: cfg.Store.MinConns,
	})
	if err != nil {
		return nil, eris.Wrap(err, "init: open store")
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close()
		return nil, eris.Wrap(err, "init: migrate store")
	}

	client := anthropic.NewClient(cfg.Anthropic.Key)
	timeout := time.Duration(cfg.Anthropic.TimeoutSecs) * time.Second
	limit := rate.Limit(cfg.Anthropic.RequestsPerSec)

	extractor := extract.NewAnthropic(client, extract.Opts{
		Model:     cfg.Anthropic.ExtractionModel,
		MaxTokens: int64(cfg.Anthropic.MaxTokens),
		Timeout:   timeout,
		RateLimit: limit,
	})
	comparator := semantic.NewAnthropic(client, semantic.Opts{
		Model:     cfg.Anthropic.ComparisonModel,
		Timeout:   timeout,
		RateLimit: limit,
	})
	engine := crossref.New(comparator, cfg.Validation.CompareConcurrency)

	return &pipelineEnv{
		Store:    st,
		Pipeline: pipeline.New(st, extractor, engine, cfg.Validation.ExtractConcurrency),
	}, nil
}

func (e *pipelineEnv) Close() {
	if e.Store != nil {
		_ = e.Store.Close()
	}
}
