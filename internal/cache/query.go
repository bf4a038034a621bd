// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// query.go provides a Valkey-backed cache of resolved image queries.
// A query that resolved once maps to the same picture and credits for the
// TTL, so repeated decks about the same topic skip the search APIs.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"deckforge/internal/imagesearch"
)

const (
	// queryKeyPrefix is the Valkey key prefix for resolved image queries.
	queryKeyPrefix = "imgq:"

	// DefaultQueryTTL is how long a resolved query stays cached.
	DefaultQueryTTL = 24 * time.Hour
)

// QueryCache implements imagesearch.Cache on top of Valkey. Errors are
// logged and treated as misses.
type QueryCache struct {
	client *redis.Client
	ttl    time.Duration
}

var _ imagesearch.Cache = (*QueryCache)(nil)

// NewQueryCache creates a new query cache backed by the given Valkey client.
func NewQueryCache(client *redis.Client, ttl time.Duration) *QueryCache {
	if ttl == 0 {
		ttl = DefaultQueryTTL
	}
	return &QueryCache{client: client, ttl: ttl}
}

// QueryKey returns the Valkey key for a query. Keys are case-insensitive.
func QueryKey(query string) string {
	return queryKeyPrefix + strings.ToLower(strings.TrimSpace(query))
}

// Get returns the cached resolution for query.
func (qc *QueryCache) Get(ctx context.Context, query string) (imagesearch.Result, bool) {
	val, err := qc.client.Get(ctx, QueryKey(query)).Bytes()
	if errors.Is(err, redis.Nil) {
		return imagesearch.Result{}, false
	}
	if err != nil {
		slog.Warn("query cache get error", "query", query, "error", err)
		return imagesearch.Result{}, false
	}

	var res imagesearch.Result
	if err := json.Unmarshal(val, &res); err != nil {
		slog.Warn("query cache corrupt entry", "query", query, "error", err)
		return imagesearch.Result{}, false
	}
	if !res.Resolved() {
		return imagesearch.Result{}, false
	}
	return res, true
}

// Set stores a successful resolution. Unresolved results are ignored.
func (qc *QueryCache) Set(ctx context.Context, query string, res imagesearch.Result) {
	if !res.Resolved() {
		return
	}
	val, err := json.Marshal(res)
	if err != nil {
		slog.Warn("query cache marshal error", "query", query, "error", err)
		return
	}
	if err := qc.client.Set(ctx, QueryKey(query), val, qc.ttl).Err(); err != nil {
		slog.Warn("query cache set error", "query", query, "error", err)
	}
}
