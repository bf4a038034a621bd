// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package imagesearch

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// PexelsAttribution credits every picture that comes from Pexels.
const PexelsAttribution = "Photos provided by Pexels"

// pexelsProvider implements the Provider interface using the Pexels photo
// search API. It is the fallback source, so credits are a fixed string.
type pexelsProvider struct {
	config ProviderConfig
	client *http.Client
}

// newPexels creates a new Pexels provider.
func newPexels(cfg ProviderConfig) *pexelsProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.pexels.com"
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &pexelsProvider{
		config: cfg,
		client: newHTTPClient(),
	}
}

func (p *pexelsProvider) Name() string { return "pexels" }

func (p *pexelsProvider) Search(ctx context.Context, query string) (Result, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("per_page", "1")

	var resp pexelsResponse
	err := getJSON(ctx, p.client, p.config.BaseURL+"/v1/search", params, map[string]string{
		"Authorization": p.config.APIKey,
	}, &resp)
	if err != nil {
		return Result{}, fmt.Errorf("pexels: %w", err)
	}

	if len(resp.Photos) == 0 || resp.Photos[0].Src.Large == "" {
		return Result{}, ErrNoResults
	}

	return Result{
		URL:         resp.Photos[0].Src.Large,
		Attribution: PexelsAttribution,
	}, nil
}

// --- Request/Response types ---

type pexelsResponse struct {
	Photos []pexelsPhoto `json:"photos"`
}

type pexelsPhoto struct {
	Src pexelsSrc `json:"src"`
}

type pexelsSrc struct {
	Large string `json:"large"`
}
