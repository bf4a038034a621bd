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

// unsplashProvider implements the Provider interface using the Unsplash
// photo search API. Credits name the photographer.
type unsplashProvider struct {
	config ProviderConfig
	client *http.Client
}

// newUnsplash creates a new Unsplash provider.
func newUnsplash(cfg ProviderConfig) *unsplashProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.unsplash.com"
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &unsplashProvider{
		config: cfg,
		client: newHTTPClient(),
	}
}

func (p *unsplashProvider) Name() string { return "unsplash" }

// Search returns the first photo for query, credited as
// "Photo by {photographer} on Unsplash".
func (p *unsplashProvider) Search(ctx context.Context, query string) (Result, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("per_page", "1")

	var resp unsplashResponse
	err := getJSON(ctx, p.client, p.config.BaseURL+"/search/photos", params, map[string]string{
		"Authorization":  "Client-ID " + p.config.APIKey,
		"Accept-Version": "v1",
	}, &resp)
	if err != nil {
		return Result{}, fmt.Errorf("unsplash: %w", err)
	}

	if len(resp.Results) == 0 || resp.Results[0].URLs.Regular == "" {
		return Result{}, ErrNoResults
	}

	photo := resp.Results[0]
	return Result{
		URL:         photo.URLs.Regular,
		Attribution: fmt.Sprintf("Photo by %s on Unsplash", strings.TrimSpace(photo.User.Name)),
	}, nil
}

// --- Request/Response types ---

type unsplashResponse struct {
	Results []unsplashPhoto `json:"results"`
}

type unsplashPhoto struct {
	URLs unsplashURLs `json:"urls"`
	User unsplashUser `json:"user"`
}

type unsplashURLs struct {
	Regular string `json:"regular"`
}

type unsplashUser struct {
	Name string `json:"name"`
}
