// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package render lays out a single slide on a Canvas. Positions and sizes
// are fixed layout constants in inches on a 10 x 5.625 (16:9) slide; they
// never depend on content length.
package render

import (
	"deckforge/internal/models"
	"deckforge/internal/theme"
)

// Slide dimensions in inches.
const (
	SlideWidth  = 10.0
	SlideHeight = 5.625
)

// smallerBy is how many points bullets and captions shrink below the
// subtitle size.
const smallerBy = 2

// Fixed layout frames.
var (
	TitleFrame    = Rect{X: 0.5, Y: 0.5, W: 9, H: 0.6}
	SubtitleFrame = Rect{X: 0.5, Y: 1, W: 9, H: 0.5}
	BulletsFrame  = Rect{X: 0.76, Y: 1.75, W: 4, H: 3}
	ImageFrame    = Rect{X: 5, Y: 1, W: 4, H: 3}
	CaptionFrame  = Rect{X: 5, Y: 4.1, W: 4, H: 0.5}
)

// Rect is a frame in inches measured from the slide's top-left corner.
type Rect struct {
	X, Y, W, H float64
}

// Align is the horizontal alignment of text inside its frame.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
)

// VAlign is the vertical anchoring of text inside its frame.
type VAlign int

const (
	VAlignTop VAlign = iota
	VAlignMiddle
)

// TextStyle describes how a run of text is drawn.
type TextStyle struct {
	Font   string
	Size   int
	Color  string
	Bold   bool
	Italic bool
	Align  Align
}

// Canvas receives the visual elements of one slide.
type Canvas interface {
	SetBackground(color string)
	AddText(text string, frame Rect, style TextStyle)
	AddBullets(items []string, frame Rect, style TextStyle, valign VAlign)
	AddImage(url string, frame Rect)
}

// Slide draws content onto c using th. isTitle selects the title-slide
// background; everything else is styled identically for both kinds.
func Slide(c Canvas, content models.Slide, th theme.Theme, isTitle bool) {
	c.SetBackground(th.Background(isTitle))

	c.AddText(content.Title, TitleFrame, TextStyle{
		Font:  th.TitleFont,
		Size:  th.TitleFontSize,
		Color: th.TitleColor,
		Bold:  th.TitleBold,
	})

	if content.Subtitle != "" {
		c.AddText(content.Subtitle, SubtitleFrame, TextStyle{
			Font:   th.SubtitleFont,
			Size:   th.SubtitleFontSize,
			Color:  th.SubtitleColor,
			Italic: th.SubtitleItalic,
		})
	}

	if len(content.Bullets) > 0 {
		items := make([]string, len(content.Bullets))
		copy(items, content.Bullets)
		c.AddBullets(items, BulletsFrame, bodyStyle(th, AlignLeft), VAlignTop)
	}

	if content.Image != nil {
		c.AddImage(content.Image.URL, ImageFrame)
		if content.Image.Caption != "" {
			c.AddText(content.Image.Caption, CaptionFrame, bodyStyle(th, AlignCenter))
		}
	}
}

// bodyStyle is the style shared by bullets and image captions.
func bodyStyle(th theme.Theme, align Align) TextStyle {
	return TextStyle{
		Font:  th.SubtitleFont,
		Size:  th.SubtitleFontSize - smallerBy,
		Color: th.SubtitleColor,
		Align: align,
	}
}
