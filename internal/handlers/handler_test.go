// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler tests:
// in-memory collaborators and a chi router wired like production.
package handlers

import (
	"context"
	"errors"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"deckforge/internal/imagesearch"
	"deckforge/internal/models"
	"deckforge/internal/presentation"
	"deckforge/internal/render"
)

const testDomain = "https://decks.example.com"

// memoryStore is an in-memory SlideshowRepository that deep-copies on the
// way in and out, like a database would.
type memoryStore struct {
	mu      sync.Mutex
	shows   map[uuid.UUID]models.Slideshow
	failErr error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{shows: map[uuid.UUID]models.Slideshow{}}
}

func (m *memoryStore) Create(_ context.Context, show *models.Slideshow) (uuid.UUID, error) {
	if m.failErr != nil {
		return uuid.Nil, m.failErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	show.ID = uuid.New()
	m.shows[show.ID] = cloneShow(*show)
	return show.ID, nil
}

func (m *memoryStore) FindByID(_ context.Context, id uuid.UUID) (*models.Slideshow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	show, ok := m.shows[id]
	if !ok {
		return nil, nil
	}
	c := cloneShow(show)
	return &c, nil
}

func (m *memoryStore) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.shows)
}

func cloneShow(s models.Slideshow) models.Slideshow {
	out := s
	out.Slides = make([]models.Slide, len(s.Slides))
	for i, sl := range s.Slides {
		out.Slides[i] = sl
		out.Slides[i].Bullets = models.SplitBullets(models.JoinBullets(sl.Bullets))
		if sl.Image != nil {
			img := *sl.Image
			out.Slides[i].Image = &img
		}
	}
	return out
}

// stubResolver answers from a fixed table; unknown queries fail.
type stubResolver struct {
	results map[string]imagesearch.Result
	queries []string
}

func (s *stubResolver) Resolve(_ context.Context, query string) imagesearch.Result {
	s.queries = append(s.queries, query)
	return s.results[query]
}

// recordingEncoder keeps the last laid-out document and returns fixed bytes.
type recordingEncoder struct {
	mu   sync.Mutex
	last render.Document
	err  error
}

func (e *recordingEncoder) Encode(_ context.Context, doc render.Document) (any, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.last = doc
	if e.err != nil {
		return nil, e.err
	}
	return []byte("PK\x03\x04" + doc.Title), nil
}

func (e *recordingEncoder) document() render.Document {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.last
}

// memoryArchive is an in-memory DeckArchive.
type memoryArchive struct {
	mu    sync.Mutex
	decks map[string][]byte
}

func newMemoryArchive() *memoryArchive { return &memoryArchive{decks: map[string][]byte{}} }

func (a *memoryArchive) Load(_ context.Context, id uuid.UUID, themeKey string) []byte {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.decks[id.String()+"/"+themeKey]
}

func (a *memoryArchive) Save(_ context.Context, id uuid.UUID, themeKey string, data []byte) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.decks[id.String()+"/"+themeKey] = data
}

// exportEntry is one recorded download.
type exportEntry struct {
	id     uuid.UUID
	theme  string
	source string
}

type memoryExports struct {
	mu      sync.Mutex
	entries []exportEntry
}

func (m *memoryExports) Log(_ context.Context, id uuid.UUID, themeKey, source string, _ int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, exportEntry{id: id, theme: themeKey, source: source})
}

// testEnv bundles a handler group with its fakes.
type testEnv struct {
	store    *memoryStore
	resolver *stubResolver
	encoder  *recordingEncoder
	archive  *memoryArchive
	exports  *memoryExports
	server   *httptest.Server
}

// newTestEnv wires the slideshow handlers on a chi router the same way the
// production router mounts them.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	enc := &recordingEncoder{}
	env := newTestEnvWithEncoder(t, enc)
	env.encoder = enc
	return env
}

// newTestEnvWithEncoder is newTestEnv with a caller-supplied encoder; the
// env's encoder field stays nil.
func newTestEnvWithEncoder(t *testing.T, enc presentation.Encoder) *testEnv {
	t.Helper()

	env := &testEnv{
		store:    newMemoryStore(),
		resolver: &stubResolver{results: map[string]imagesearch.Result{}},
		archive:  newMemoryArchive(),
		exports:  &memoryExports{},
	}
	h := NewSlideshows(env.store, env.resolver, presentation.NewAssembler(enc, nil), env.archive, env.exports, testDomain+"/")

	r := chi.NewRouter()
	r.Get("/", Home)
	r.Get("/health", Health)
	r.Get("/themes", Themes)
	r.Post("/slideshow/{theme}", h.Create)
	r.Get("/slideshow/{id}/{theme}", h.Download)

	env.server = httptest.NewServer(r)
	t.Cleanup(env.server.Close)
	return env
}

var errBoom = errors.New("boom")
