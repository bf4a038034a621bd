// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package pptx writes rendered pages into a PowerPoint 2007+ document using
// GoPPT. Each page is replayed onto its own GoPPT slide through a Canvas
// adapter; the encoder never decides layout on its own.
package pptx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	ppt "github.com/VantageDataChat/GoPPT"

	"deckforge/internal/imaging"
	"deckforge/internal/render"
)

// creator is written into the document properties of every deck.
const creator = "deckforge"

// DefaultPictureBudget bounds the time spent fetching all pictures of one
// deck. Pictures still missing when it runs out are drawn as placeholders.
const DefaultPictureBudget = 45 * time.Second

// ImageSource provides picture bytes for image elements.
type ImageSource interface {
	Fetch(ctx context.Context, url string) (imaging.Picture, error)
}

// Encoder builds PPTX documents. It is safe for concurrent use as long as
// its ImageSource is.
type Encoder struct {
	images ImageSource
	budget time.Duration
}

// NewEncoder creates an Encoder. images may be nil, in which case every
// picture is drawn as a placeholder.
func NewEncoder(images ImageSource) *Encoder {
	return &Encoder{images: images, budget: DefaultPictureBudget}
}

// Output is an encoded deck.
type Output struct {
	data []byte

	// Placeholders counts pictures that could not be fetched for a reason
	// that may not repeat, such as a timeout or a 5xx answer.
	Placeholders int
}

// WriteTo writes the encoded deck to w.
func (o *Output) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(o.data)
	return int64(n), err
}

// Degraded reports whether a later encode of the same document could
// produce a more complete deck.
func (o *Output) Degraded() bool {
	return o.Placeholders > 0
}

// Encode writes doc into a new presentation and serializes it. The result
// is always an *Output.
func (e *Encoder) Encode(ctx context.Context, doc render.Document) (any, error) {
	if len(doc.Pages) == 0 {
		return nil, errors.New("pptx: document has no pages")
	}

	pictures := ctx
	if e.budget > 0 {
		var cancel context.CancelFunc
		pictures, cancel = context.WithTimeout(ctx, e.budget)
		defer cancel()
	}
	out := &Output{}

	p := ppt.New()
	p.GetDocumentProperties().Title = doc.Title
	p.GetDocumentProperties().Creator = creator

	for i, page := range doc.Pages {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("pptx: %w", err)
		}

		// A new presentation starts with one empty slide.
		var slide *ppt.Slide
		if i == 0 {
			slide = p.GetActiveSlide()
		} else {
			slide = p.CreateSlide()
		}
		page.Draw(&slideCanvas{ctx: pictures, slide: slide, images: e.images, index: i, out: out})
	}

	w, err := ppt.NewWriter(p, ppt.WriterPowerPoint2007)
	if err != nil {
		return nil, fmt.Errorf("pptx: create writer: %w", err)
	}
	pw, ok := w.(*ppt.PPTXWriter)
	if !ok {
		return nil, fmt.Errorf("pptx: unexpected writer type %T", w)
	}

	var buf bytes.Buffer
	if err := pw.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("pptx: write: %w", err)
	}
	out.data = buf.Bytes()
	return out, nil
}
