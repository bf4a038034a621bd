// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package imaging downloads slide pictures and prepares them for embedding
// in a presentation. JPEG, PNG and GIF pictures that already fit are kept
// byte-for-byte; WebP pictures and anything wider than MaxWidth are scaled
// down and re-encoded so every office suite can open the result.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// MaxWidth is the widest picture embedded unchanged. A 4 inch frame at
// 400 dpi stays sharp at this width.
const MaxWidth = 1600

// jpegQuality is used whenever a picture has to be re-encoded as JPEG.
const jpegQuality = 85

// Picture is an image ready to embed.
type Picture struct {
	Data        []byte
	ContentType string
	Width       int
	Height      int
}

// Normalize inspects raw image bytes and returns a picture in a format
// presentation writers accept, scaled to at most maxWidth pixels wide.
// maxWidth <= 0 means MaxWidth.
func Normalize(data []byte, maxWidth int) (Picture, error) {
	if maxWidth <= 0 {
		maxWidth = MaxWidth
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Picture{}, fmt.Errorf("imaging: probe failed: %w", err)
	}

	if passthrough(format) && cfg.Width <= maxWidth {
		return Picture{
			Data:        data,
			ContentType: "image/" + format,
			Width:       cfg.Width,
			Height:      cfg.Height,
		}, nil
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return Picture{}, fmt.Errorf("imaging: decode %s: %w", format, err)
	}

	dst := scale(src, maxWidth)
	b := dst.Bounds()

	var buf bytes.Buffer
	contentType := "image/jpeg"
	if format == "png" || format == "gif" {
		// Keep transparency for formats that may carry it.
		contentType = "image/png"
		err = png.Encode(&buf, dst)
	} else {
		err = jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpegQuality})
	}
	if err != nil {
		return Picture{}, fmt.Errorf("imaging: encode %s: %w", contentType, err)
	}

	return Picture{
		Data:        buf.Bytes(),
		ContentType: contentType,
		Width:       b.Dx(),
		Height:      b.Dy(),
	}, nil
}

// passthrough reports whether pictures of this format can be embedded as-is.
func passthrough(format string) bool {
	switch format {
	case "jpeg", "png", "gif":
		return true
	}
	return false
}

// scale shrinks src to maxWidth keeping its aspect ratio. Pictures that
// already fit are copied unchanged into an RGBA canvas.
func scale(src image.Image, maxWidth int) image.Image {
	sb := src.Bounds()
	w, h := sb.Dx(), sb.Dy()
	if w > maxWidth {
		h = h * maxWidth / w
		w = maxWidth
	}
	if h < 1 {
		h = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, sb, draw.Src, nil)
	return dst
}
