// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package presentation assembles a slideshow into an encoded presentation
// file: it resolves the theme, lays out the title slide and every content
// slide in order, hands the pages to an Encoder, and normalizes whatever
// the encoder produces into a single byte slice.
package presentation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"deckforge/internal/metrics"
	"deckforge/internal/models"
	"deckforge/internal/render"
	"deckforge/internal/theme"
)

// ContentType is the MIME type of the produced document.
const ContentType = "application/vnd.openxmlformats-officedocument.presentationml.presentation"

// FileExtension is appended to the slideshow ID to build a download name.
const FileExtension = ".pptx"

// ErrGeneration is returned when the document could not be encoded.
// The wrapped cause is meant for logs, not for clients.
var ErrGeneration = errors.New("presentation: generation failed")

// Encoder turns rendered pages into a document. The returned value must be
// one of the representations accepted by Bytes.
type Encoder interface {
	Encode(ctx context.Context, doc render.Document) (any, error)
}

// degrader is implemented by encoder outputs that can report substituted
// content.
type degrader interface {
	Degraded() bool
}

// Deck is an assembled presentation.
type Deck struct {
	Data []byte

	// Degraded is set when the encoder substituted content after a failure
	// that may not repeat. Such decks are fine to serve but not to keep.
	Degraded bool
}

// Assembler builds presentations with a fixed encoder.
type Assembler struct {
	encoder Encoder
	metrics *metrics.Metrics
}

// NewAssembler creates an Assembler. m may be nil.
func NewAssembler(enc Encoder, m *metrics.Metrics) *Assembler {
	return &Assembler{encoder: enc, metrics: m}
}

// Layout renders the slideshow into pages without encoding them. The first
// page is always the title slide; content slides follow in input order.
func Layout(show *models.Slideshow, th theme.Theme) render.Document {
	doc := render.Document{
		Title: show.TitleSlide.PresentationName,
		Theme: th,
		Pages: make([]render.Page, 0, len(show.Slides)+1),
	}

	doc.Pages = append(doc.Pages, render.Record(show.TitleSlide.AsSlide(), th, true))

	for i, s := range show.Slides {
		doc.Pages = append(doc.Pages, render.Record(s, th, titleStyled(i)))
	}
	return doc
}

// titleStyled reports whether the content slide at index also gets the
// title-slide background. The first content slide does, so every deck has
// two title-styled slides.
// TODO: confirm with product whether the first content slide should use the
// content background; flipping this changes every generated deck.
func titleStyled(index int) bool {
	return index == 0
}

// Assemble lays out show with the theme named themeName and encodes it.
// Any encoding problem is reported as ErrGeneration and no bytes are
// returned.
func (a *Assembler) Assemble(ctx context.Context, show *models.Slideshow, themeName string) (Deck, error) {
	started := time.Now()
	th := theme.Resolve(themeName)
	doc := Layout(show, th)

	deck, err := a.encode(ctx, doc)
	a.metrics.Render(started, len(doc.Pages), err)
	if err != nil {
		slog.Error("presentation encoding failed",
			"slideshow", show.ID,
			"theme", th.Key,
			"error", err,
		)
		return Deck{}, fmt.Errorf("%w: %v", ErrGeneration, err)
	}

	slog.Debug("presentation assembled",
		"slideshow", show.ID,
		"theme", th.Key,
		"slides", len(doc.Pages),
		"bytes", len(deck.Data),
		"degraded", deck.Degraded,
		"duration", time.Since(started).String(),
	)
	return deck, nil
}

func (a *Assembler) encode(ctx context.Context, doc render.Document) (Deck, error) {
	out, err := a.encoder.Encode(ctx, doc)
	if err != nil {
		return Deck{}, fmt.Errorf("encode: %w", err)
	}
	data, err := Bytes(out)
	if err != nil {
		return Deck{}, err
	}
	if len(data) == 0 {
		return Deck{}, errors.New("encoder produced an empty document")
	}

	deck := Deck{Data: data}
	if d, ok := out.(degrader); ok {
		deck.Degraded = d.Degraded()
	}
	return deck, nil
}
