// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package imagesearch

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

// ---------- Helpers ----------

// newTestServer creates an httptest.Server that responds with the given status
// code and body bytes. The caller must call Close on the returned server.
func newTestServer(t *testing.T, statusCode int, body []byte) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		w.Write(body)
	}))
}

// unsplashBody builds a search response with one photo.
func unsplashBody(url, author string) []byte {
	resp := unsplashResponse{Results: []unsplashPhoto{
		{URLs: unsplashURLs{Regular: url}, User: unsplashUser{Name: author}},
	}}
	b, _ := json.Marshal(resp)
	return b
}

// pexelsBody builds a search response with one photo.
func pexelsBody(url string) []byte {
	resp := pexelsResponse{Photos: []pexelsPhoto{{Src: pexelsSrc{Large: url}}}}
	b, _ := json.Marshal(resp)
	return b
}

// =====================================================================
// Unsplash Provider Tests
// =====================================================================

func TestUnsplashSearch_Success(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, unsplashBody("https://images.unsplash.com/a.jpg", "Ann Lee"))
	defer srv.Close()

	p := newUnsplash(ProviderConfig{Name: "unsplash", APIKey: "key", BaseURL: srv.URL})
	got, err := p.Search(context.Background(), "mountains")
	if err != nil {
		t.Fatalf("Search: unexpected error: %v", err)
	}
	want := Result{URL: "https://images.unsplash.com/a.jpg", Attribution: "Photo by Ann Lee on Unsplash"}
	if got != want {
		t.Errorf("Search: got %+v, want %+v", got, want)
	}
}

func TestUnsplashSearch_VerifiesRequest(t *testing.T) {
	var path, query, auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		query = r.URL.Query().Get("query")
		auth = r.Header.Get("Authorization")
		w.Write(unsplashBody("u", "a"))
	}))
	defer srv.Close()

	p := newUnsplash(ProviderConfig{APIKey: "abc123", BaseURL: srv.URL + "/"})
	if _, err := p.Search(context.Background(), "red barn"); err != nil {
		t.Fatalf("Search: %v", err)
	}
	if path != "/search/photos" {
		t.Errorf("path: got %q, want /search/photos", path)
	}
	if query != "red barn" {
		t.Errorf("query: got %q, want %q", query, "red barn")
	}
	if auth != "Client-ID abc123" {
		t.Errorf("Authorization: got %q, want %q", auth, "Client-ID abc123")
	}
}

func TestUnsplashSearch_Failures(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		noResults bool
	}{
		{name: "server error", status: http.StatusInternalServerError, body: `{"errors":["boom"]}`},
		{name: "unauthorized", status: http.StatusUnauthorized, body: `{"errors":["bad key"]}`},
		{name: "malformed json", status: http.StatusOK, body: `{"results": [`},
		{name: "empty results", status: http.StatusOK, body: `{"results": []}`, noResults: true},
		{name: "missing url", status: http.StatusOK, body: `{"results": [{"user": {"name": "x"}}]}`, noResults: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, tt.status, []byte(tt.body))
			defer srv.Close()

			p := newUnsplash(ProviderConfig{APIKey: "k", BaseURL: srv.URL})
			got, err := p.Search(context.Background(), "q")
			if err == nil {
				t.Fatal("expected error")
			}
			if errors.Is(err, ErrNoResults) != tt.noResults {
				t.Errorf("ErrNoResults: got %v, want %v (err=%v)", errors.Is(err, ErrNoResults), tt.noResults, err)
			}
			if got != (Result{}) {
				t.Errorf("failed search returned %+v, want zero Result", got)
			}
		})
	}
}

// =====================================================================
// Pexels Provider Tests
// =====================================================================

func TestPexelsSearch_Success(t *testing.T) {
	var auth, path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		path = r.URL.Path
		w.Write(pexelsBody("https://images.pexels.com/p.jpeg"))
	}))
	defer srv.Close()

	p := newPexels(ProviderConfig{APIKey: "pex-key", BaseURL: srv.URL})
	got, err := p.Search(context.Background(), "ocean")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	want := Result{URL: "https://images.pexels.com/p.jpeg", Attribution: PexelsAttribution}
	if got != want {
		t.Errorf("Search: got %+v, want %+v", got, want)
	}
	if auth != "pex-key" {
		t.Errorf("Authorization: got %q, want pex-key", auth)
	}
	if path != "/v1/search" {
		t.Errorf("path: got %q, want /v1/search", path)
	}
}

func TestPexelsSearch_EmptyPhotos(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, []byte(`{"photos": []}`))
	defer srv.Close()

	p := newPexels(ProviderConfig{APIKey: "k", BaseURL: srv.URL})
	if _, err := p.Search(context.Background(), "q"); !errors.Is(err, ErrNoResults) {
		t.Errorf("got %v, want ErrNoResults", err)
	}
}

func TestProviderNames(t *testing.T) {
	if newUnsplash(ProviderConfig{}).Name() != "unsplash" {
		t.Error("unsplash name")
	}
	if newPexels(ProviderConfig{}).Name() != "pexels" {
		t.Error("pexels name")
	}
}
