// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package imagesearch resolves a free-text image query into a concrete
// picture URL plus attribution text. Photo-search providers (Unsplash,
// Pexels) implement the Provider interface, and the Resolver tries them in
// priority order until one succeeds.
package imagesearch

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"deckforge/internal/metrics"
)

// ErrNoResults is returned by a provider whose search came back empty.
var ErrNoResults = errors.New("imagesearch: no results")

// Result is a resolved picture. The zero value is the failure marker: both
// fields are set on success and both are empty otherwise.
type Result struct {
	URL         string `json:"url"`
	Attribution string `json:"attribution"`
}

// Resolved reports whether r carries a usable picture.
func (r Result) Resolved() bool {
	return r.URL != "" && r.Attribution != ""
}

// Provider defines the interface that all photo-search providers implement.
// Each provider handles its own HTTP communication and response parsing.
type Provider interface {
	// Search looks up query and returns the first matching picture.
	Search(ctx context.Context, query string) (Result, error)

	// Name returns the provider identifier (e.g., "unsplash", "pexels").
	Name() string
}

// ProviderConfig holds the credentials and settings for a single provider.
type ProviderConfig struct {
	Name    string
	APIKey  string
	BaseURL string
}

// Cache stores successful resolutions between requests.
type Cache interface {
	Get(ctx context.Context, query string) (Result, bool)
	Set(ctx context.Context, query string, r Result)
}

// Resolver tries providers in order and returns the first success.
// All methods are safe for concurrent use.
type Resolver struct {
	mu        sync.RWMutex
	providers []Provider
	cache     Cache
	metrics   *metrics.Metrics
}

// NewResolver creates a resolver with a provider for every config that has
// a non-empty API key, keeping the order of configs. Providers without keys
// and unknown names are silently skipped. cache and m may be nil.
func NewResolver(configs []ProviderConfig, cache Cache, m *metrics.Metrics) *Resolver {
	r := &Resolver{cache: cache, metrics: m}

	for _, cfg := range configs {
		if cfg.APIKey == "" {
			continue
		}
		switch cfg.Name {
		case "unsplash":
			r.providers = append(r.providers, newUnsplash(cfg))
		case "pexels":
			r.providers = append(r.providers, newPexels(cfg))
		}
	}
	return r
}

// Register appends a provider to the end of the chain. This allows
// injecting custom providers (e.g. for testing).
func (r *Resolver) Register(p Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers = append(r.providers, p)
}

// Available returns the provider names in the order they are tried.
func (r *Resolver) Available() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.providers))
	for _, p := range r.providers {
		names = append(names, p.Name())
	}
	return names
}

// Resolve returns the first picture any provider finds for query. It never
// fails: provider errors are logged and the next provider is tried, and when
// the chain is exhausted the zero Result is returned.
func (r *Resolver) Resolve(ctx context.Context, query string) Result {
	q := strings.TrimSpace(query)
	if q == "" {
		return Result{}
	}

	if r.cache != nil {
		if res, ok := r.cache.Get(ctx, q); ok && res.Resolved() {
			slog.Debug("image query cache hit", "query", q)
			return res
		}
	}

	r.mu.RLock()
	chain := make([]Provider, len(r.providers))
	copy(chain, r.providers)
	r.mu.RUnlock()

	for _, p := range chain {
		res, err := p.Search(ctx, q)
		switch {
		case errors.Is(err, ErrNoResults):
			r.metrics.ImageLookup(p.Name(), metrics.OutcomeMiss)
			slog.Debug("image provider found nothing", "provider", p.Name(), "query", q)
			continue
		case err != nil:
			r.metrics.ImageLookup(p.Name(), metrics.OutcomeError)
			slog.Warn("image provider failed", "provider", p.Name(), "query", q, "error", err)
			continue
		case !res.Resolved():
			r.metrics.ImageLookup(p.Name(), metrics.OutcomeMiss)
			continue
		}

		r.metrics.ImageLookup(p.Name(), metrics.OutcomeHit)
		if r.cache != nil {
			r.cache.Set(ctx, q, res)
		}
		return res
	}

	slog.Info("image query unresolved", "query", q, "providers", len(chain))
	return Result{}
}
