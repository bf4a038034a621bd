// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"deckforge/internal/imagesearch"
	"deckforge/internal/models"
	"deckforge/internal/presentation"
	"deckforge/internal/store"
	"deckforge/internal/theme"
)

// SlideshowRepository persists slideshows.
type SlideshowRepository interface {
	Create(ctx context.Context, show *models.Slideshow) (uuid.UUID, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Slideshow, error)
}

// ImageResolver turns an image query into a picture URL and credits.
type ImageResolver interface {
	Resolve(ctx context.Context, query string) imagesearch.Result
}

// DeckAssembler renders a slideshow into a presentation file.
type DeckAssembler interface {
	Assemble(ctx context.Context, show *models.Slideshow, themeName string) (presentation.Deck, error)
}

// DeckArchive keeps rendered decks between downloads. Load returns nil on
// a miss.
type DeckArchive interface {
	Load(ctx context.Context, id uuid.UUID, themeKey string) []byte
	Save(ctx context.Context, id uuid.UUID, themeKey string, data []byte)
}

// ExportRecorder records completed downloads.
type ExportRecorder interface {
	Log(ctx context.Context, slideshowID uuid.UUID, themeKey, source string, size int)
}

// Slideshows groups the slideshow ingestion and download handlers.
type Slideshows struct {
	store     SlideshowRepository
	resolver  ImageResolver
	assembler DeckAssembler
	archive   DeckArchive
	exports   ExportRecorder
	domain    string
}

// NewSlideshows creates the slideshow handler group. archive and exports
// may be nil. domain is the public base URL used in creation responses.
func NewSlideshows(repo SlideshowRepository, resolver ImageResolver, assembler DeckAssembler, archive DeckArchive, exports ExportRecorder, domain string) *Slideshows {
	return &Slideshows{
		store:     repo,
		resolver:  resolver,
		assembler: assembler,
		archive:   archive,
		exports:   exports,
		domain:    strings.TrimRight(domain, "/"),
	}
}

// Create validates a slideshow body, resolves slide images and persists
// the result. It answers 201 with the download URL for the requested theme.
func (h *Slideshows) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	themeName := chi.URLParam(r, "theme")

	show, err := decodeSlideshow(r)
	if err != nil {
		slog.Info("rejected slideshow body", "error", err)
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}

	h.resolveImages(ctx, show)

	id, err := h.store.Create(ctx, show)
	if err != nil {
		slog.Error("save slideshow failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to save slideshow"})
		return
	}

	slog.Info("slideshow created", "id", id, "slides", len(show.Slides), "theme", themeName)
	writeJSON(w, http.StatusCreated, map[string]string{"url": h.slideshowURL(id, themeName)})
}

// resolveImages replaces each image query with a found picture, one slide
// at a time. Unresolved queries are left exactly as the client sent them.
func (h *Slideshows) resolveImages(ctx context.Context, show *models.Slideshow) {
	if h.resolver == nil {
		return
	}
	for i := range show.Slides {
		slide := &show.Slides[i]
		if !slide.HasImageQuery() {
			continue
		}
		res := h.resolver.Resolve(ctx, slide.Image.URL)
		if res.Attribution == "" {
			continue
		}
		slide.Image.URL = res.URL
		slide.Image.Caption = res.Attribution
	}
}

// Download renders a stored slideshow with the theme from the path and
// streams it as an attachment.
func (h *Slideshows) Download(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	themeName := chi.URLParam(r, "theme")
	themeKey := theme.Key(themeName)

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Slideshow not found"})
		return
	}

	show, err := h.store.FindByID(ctx, id)
	if err != nil {
		slog.Error("load slideshow failed", "id", id, "error", err)
		http.Error(w, "Error generating PowerPoint", http.StatusInternalServerError)
		return
	}
	if show == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Slideshow not found"})
		return
	}

	source := store.SourceArchive
	var deck []byte
	if h.archive != nil {
		deck = h.archive.Load(ctx, id, themeKey)
	}
	if deck == nil {
		source = store.SourceRendered
		rendered, err := h.assembler.Assemble(ctx, show, themeName)
		if err != nil {
			slog.Error("generate presentation failed", "id", id, "theme", themeKey, "error", err)
			http.Error(w, "Error generating PowerPoint", http.StatusInternalServerError)
			return
		}
		deck = rendered.Data

		// A deck with missing pictures is served but not archived, so the
		// next download tries the pictures again.
		switch {
		case rendered.Degraded:
			slog.Info("deck has placeholder pictures, not archiving", "id", id, "theme", themeKey)
		case h.archive != nil:
			h.archive.Save(ctx, id, themeKey, deck)
		}
	}

	if h.exports != nil {
		h.exports.Log(ctx, id, themeKey, source, len(deck))
	}

	w.Header().Set("Content-Type", presentation.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s%s"`, id, presentation.FileExtension))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(deck)))
	w.WriteHeader(http.StatusOK)
	w.Write(deck)
}

// slideshowURL builds the public download URL. The theme is echoed as the
// client sent it.
func (h *Slideshows) slideshowURL(id uuid.UUID, themeName string) string {
	return fmt.Sprintf("%s/slideshow/%s/%s", h.domain, id, themeName)
}
