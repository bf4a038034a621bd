// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"deckforge/internal/metrics"
)

// deckContentType is the MIME type archived decks are stored with.
const deckContentType = "application/vnd.openxmlformats-officedocument.presentationml.presentation"

// ObjectStore is the subset of Client the archive needs.
type ObjectStore interface {
	Upload(ctx context.Context, key, contentType string, data []byte) error
	Download(ctx context.Context, key string) ([]byte, error)
}

// DeckArchive keeps rendered decks in object storage. Slideshows never
// change after creation, so an archived deck stays valid for its id and
// theme; callers only save decks that rendered completely. A nil
// *DeckArchive is a no-op archive.
type DeckArchive struct {
	objects ObjectStore
	metrics *metrics.Metrics
}

// NewDeckArchive returns an archive over objects. It returns nil when
// objects is nil so callers can pass the result through unconditionally.
func NewDeckArchive(objects ObjectStore, m *metrics.Metrics) *DeckArchive {
	if objects == nil {
		return nil
	}
	return &DeckArchive{objects: objects, metrics: m}
}

// DeckKey returns the object key for a slideshow rendered with a theme.
func DeckKey(id uuid.UUID, themeKey string) string {
	return fmt.Sprintf("decks/%s/%s.pptx", id, themeKey)
}

// Load returns the archived deck, or nil when none is stored. Storage
// errors are logged and reported as a miss.
func (a *DeckArchive) Load(ctx context.Context, id uuid.UUID, themeKey string) []byte {
	if a == nil {
		return nil
	}

	key := DeckKey(id, themeKey)
	data, err := a.objects.Download(ctx, key)
	switch {
	case errors.Is(err, ErrObjectNotFound):
		a.metrics.ArchiveLookup(metrics.OutcomeMiss)
		return nil
	case err != nil:
		a.metrics.ArchiveLookup(metrics.OutcomeError)
		slog.Warn("deck archive load failed", "key", key, "error", err)
		return nil
	case len(data) == 0:
		a.metrics.ArchiveLookup(metrics.OutcomeMiss)
		return nil
	}

	a.metrics.ArchiveLookup(metrics.OutcomeHit)
	slog.Debug("deck archive hit", "key", key, "bytes", len(data))
	return data
}

// Save stores a rendered deck. Failures are logged and otherwise ignored.
func (a *DeckArchive) Save(ctx context.Context, id uuid.UUID, themeKey string, data []byte) {
	if a == nil || len(data) == 0 {
		return
	}

	key := DeckKey(id, themeKey)
	if err := a.objects.Upload(ctx, key, deckContentType, data); err != nil {
		slog.Warn("deck archive save failed", "key", key, "error", err)
		return
	}
	slog.Debug("deck archived", "key", key, "bytes", len(data))
}
