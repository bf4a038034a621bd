// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package theme holds the fixed catalog of visual styles a presentation can
// be rendered with. Themes are looked up by a case-insensitive key; unknown
// keys fall back to the default theme instead of failing.
package theme

import (
	"sort"
	"strings"
)

// Default is the key of the theme used when a name is not recognized.
const Default = "classic"

// Theme is a named bundle of typographic and color rules applied uniformly
// to every slide of a presentation. Colors are six hex digits without "#".
type Theme struct {
	Key  string `json:"key"`
	Name string `json:"name"`

	TitleFont     string `json:"title_font"`
	TitleFontSize int    `json:"title_font_size"`
	TitleColor    string `json:"title_color"`
	TitleBold     bool   `json:"title_bold"`

	SubtitleFont     string `json:"subtitle_font"`
	SubtitleFontSize int    `json:"subtitle_font_size"`
	SubtitleColor    string `json:"subtitle_color"`
	SubtitleItalic   bool   `json:"subtitle_italic"`

	TitleSlideBackground   string `json:"title_slide_background"`
	ContentSlideBackground string `json:"content_slide_background"`
}

// Background returns the slide background color for a title or content slide.
func (t Theme) Background(isTitle bool) string {
	if isTitle {
		return t.TitleSlideBackground
	}
	return t.ContentSlideBackground
}

// catalog is built once at init and never mutated afterwards.
var catalog = map[string]Theme{
	"earthy": {
		Key:                    "earthy",
		Name:                   "Earthy Serenity",
		TitleFont:              "Serif",
		TitleFontSize:          30,
		TitleColor:             "4E342E",
		TitleBold:              true,
		SubtitleFont:           "Sans Serif",
		SubtitleFontSize:       22,
		SubtitleColor:          "795548",
		TitleSlideBackground:   "A5D6A7",
		ContentSlideBackground: "B0BEC5",
	},
	"classic": {
		Key:                    "classic",
		Name:                   "Classic",
		TitleFont:              "Georgia",
		TitleFontSize:          24,
		TitleColor:             "333333",
		TitleBold:              true,
		SubtitleFont:           "Georgia",
		SubtitleFontSize:       18,
		SubtitleColor:          "666666",
		SubtitleItalic:         true,
		TitleSlideBackground:   "FFF0E0",
		ContentSlideBackground: "FFF5E5",
	},
	"corporate": {
		Key:                    "corporate",
		Name:                   "Refined Corporate",
		TitleFont:              "Helvetica",
		TitleFontSize:          32,
		TitleColor:             "4D4847",
		TitleBold:              true,
		SubtitleFont:           "Calibri",
		SubtitleFontSize:       24,
		SubtitleColor:          "5B9BD5",
		TitleSlideBackground:   "FFFFFF",
		ContentSlideBackground: "F4F4F4",
	},
	"confidence": {
		Key:                    "confidence",
		Name:                   "Confidence",
		TitleFont:              "Open Sans",
		TitleFontSize:          30,
		TitleColor:             "005A8B",
		TitleBold:              true,
		SubtitleFont:           "Arial",
		SubtitleFontSize:       24,
		SubtitleColor:          "D24726",
		TitleSlideBackground:   "FFFFFF",
		ContentSlideBackground: "EDEDED",
	},
	"calm": {
		Key:                    "calm",
		Name:                   "Calm Ocean",
		TitleFont:              "Arial",
		TitleFontSize:          30,
		TitleColor:             "0277BD",
		TitleBold:              true,
		SubtitleFont:           "Arial",
		SubtitleFontSize:       24,
		SubtitleColor:          "4DB6AC",
		TitleSlideBackground:   "E0F7FA",
		ContentSlideBackground: "ECEFF1",
	},
}

// Resolve returns the theme registered under name. Matching ignores case
// and surrounding whitespace. Unknown or empty names yield the default theme.
func Resolve(name string) Theme {
	if t, ok := catalog[normalize(name)]; ok {
		return t
	}
	return catalog[Default]
}

// Key returns the catalog key Resolve would pick for name.
func Key(name string) string {
	return Resolve(name).Key
}

// Names returns all catalog keys in sorted order.
func Names() []string {
	names := make([]string, 0, len(catalog))
	for k := range catalog {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// All returns every theme ordered by key.
func All() []Theme {
	names := Names()
	themes := make([]Theme, 0, len(names))
	for _, n := range names {
		themes = append(themes, catalog[n])
	}
	return themes
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
