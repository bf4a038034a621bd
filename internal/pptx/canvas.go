// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package pptx

import (
	"context"
	"errors"
	"log/slog"

	ppt "github.com/VantageDataChat/GoPPT"

	"deckforge/internal/imaging"
	"deckforge/internal/render"
)

// emuPerInch converts layout inches into OOXML English Metric Units.
const emuPerInch = 914400

// bulletGlyph prefixes every bullet paragraph.
const bulletGlyph = "• "

// placeholderColor fills the image frame when a picture is unavailable.
const placeholderColor = "FFE0E0E0"

// slideCanvas adapts one GoPPT slide to render.Canvas.
type slideCanvas struct {
	ctx    context.Context
	slide  *ppt.Slide
	images ImageSource
	index  int
	out    *Output
}

// SetBackground covers the slide with a filled shape. It is drawn first,
// so everything else stacks on top of it.
func (c *slideCanvas) SetBackground(color string) {
	bg := c.slide.CreateRichTextShape()
	place(bg, render.Rect{W: render.SlideWidth, H: render.SlideHeight})
	bg.SetFill(solidFill(argb(color)))
}

func (c *slideCanvas) AddText(text string, frame render.Rect, style render.TextStyle) {
	shape := c.slide.CreateRichTextShape()
	place(shape, frame)
	tr := shape.CreateTextRun(text)
	applyStyle(tr.GetFont(), style)
	if style.Align == render.AlignCenter {
		alignCenter(shape.GetActiveParagraph())
	}
}

// AddBullets writes one paragraph per item. GoPPT anchors text boxes at
// the top, which is what valign asks for in every current layout.
func (c *slideCanvas) AddBullets(items []string, frame render.Rect, style render.TextStyle, valign render.VAlign) {
	if valign != render.VAlignTop {
		slog.Debug("pptx: vertical alignment not supported, using top", "slide", c.index)
	}
	shape := c.slide.CreateRichTextShape()
	place(shape, frame)
	for i, item := range items {
		if i > 0 {
			shape.CreateParagraph()
		}
		tr := shape.CreateTextRun(bulletGlyph + item)
		applyStyle(tr.GetFont(), style)
	}
}

func (c *slideCanvas) AddImage(url string, frame render.Rect) {
	if c.images == nil {
		c.placeholder(frame)
		return
	}

	pic, err := c.images.Fetch(c.ctx, url)
	if err != nil {
		level := slog.LevelWarn
		if errors.Is(err, context.Canceled) {
			level = slog.LevelDebug
		}
		slog.Log(c.ctx, level, "pptx: picture unavailable, drawing placeholder",
			"slide", c.index,
			"url", url,
			"error", err,
		)
		if !errors.Is(err, imaging.ErrNotFetchable) {
			c.out.Placeholders++
		}
		c.placeholder(frame)
		return
	}

	img := c.slide.CreateDrawingShape()
	img.SetImageData(pic.Data, pic.ContentType)
	img.SetOffsetX(emu(frame.X)).SetOffsetY(emu(frame.Y))
	img.SetWidth(emu(frame.W)).SetHeight(emu(frame.H))
}

func (c *slideCanvas) placeholder(frame render.Rect) {
	box := c.slide.CreateRichTextShape()
	place(box, frame)
	box.SetFill(solidFill(placeholderColor))
}

// place positions a text shape on the slide.
func place(shape *ppt.RichTextShape, frame render.Rect) {
	shape.SetOffsetX(emu(frame.X)).SetOffsetY(emu(frame.Y))
	shape.SetWidth(emu(frame.W)).SetHeight(emu(frame.H))
}

func applyStyle(f *ppt.Font, style render.TextStyle) {
	f.SetSize(style.Size).SetBold(style.Bold).SetColor(ppt.NewColor(argb(style.Color)))
	f.Name = style.Font
	f.Italic = style.Italic
}

// helper: create a solid fill
func solidFill(color string) *ppt.Fill {
	return ppt.NewFill().SetSolid(ppt.NewColor(color))
}

// helper: set paragraph alignment to center
func alignCenter(p *ppt.Paragraph) {
	p.SetAlignment(ppt.NewAlignment().SetHorizontal(ppt.HorizontalCenter))
}

// argb turns a six digit hex color into an opaque ARGB string.
func argb(rgb string) string {
	return "FF" + rgb
}

func emu(inches float64) int64 {
	return int64(inches * emuPerInch)
}
