// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// bulletSeparator joins bullets into the single column they are stored in.
const bulletSeparator = ","

// Slideshow is a title slide followed by an ordered list of content slides.
// Slide order is significant and survives persistence unchanged.
type Slideshow struct {
	ID         uuid.UUID  `json:"id"`
	TitleSlide TitleSlide `json:"titleSlide"`
	Slides     []Slide    `json:"slides"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// TitleSlide carries the overall presentation name and subtitle.
type TitleSlide struct {
	PresentationName     string `json:"presentationName"`
	PresentationSubtitle string `json:"presentationSubtitle"`
}

// Slide is a single content slide. An empty Subtitle means none.
type Slide struct {
	Title    string   `json:"title"`
	Subtitle string   `json:"subtitle,omitempty"`
	Bullets  []string `json:"bullets,omitempty"`
	Image    *Image   `json:"image,omitempty"`
}

// Image references a picture shown on a slide. Caption holds the
// attribution text when the URL came from a photo-search provider.
type Image struct {
	URL     string `json:"url"`
	Caption string `json:"caption,omitempty"`
}

// AsSlide converts the title slide into the slide shape the renderer draws.
func (t TitleSlide) AsSlide() Slide {
	return Slide{
		Title:    t.PresentationName,
		Subtitle: t.PresentationSubtitle,
	}
}

// HasImageQuery reports whether the slide carries an image reference that
// can be sent to a photo-search provider.
func (s *Slide) HasImageQuery() bool {
	return s.Image != nil && strings.TrimSpace(s.Image.URL) != ""
}

// JoinBullets flattens bullets into their stored form. An empty list
// becomes an empty string.
func JoinBullets(bullets []string) string {
	return strings.Join(bullets, bulletSeparator)
}

// SplitBullets restores bullets from their stored form. An empty string
// yields no bullets.
func SplitBullets(stored string) []string {
	if stored == "" {
		return nil
	}
	return strings.Split(stored, bulletSeparator)
}
