// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"deckforge/internal/models"
)

// SlideshowStore persists slideshows across the slideshows, slides and
// slide_images tables.
type SlideshowStore struct {
	db *sql.DB
}

// NewSlideshowStore creates a new SlideshowStore with the given database connection.
func NewSlideshowStore(db *sql.DB) *SlideshowStore {
	return &SlideshowStore{db: db}
}

// Create writes the slideshow and all of its slides in one transaction and
// returns the generated ID. Slide order is kept in the position column.
// On success show.ID and show.CreatedAt are filled in.
func (s *SlideshowStore) Create(ctx context.Context, show *models.Slideshow) (uuid.UUID, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return uuid.Nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO slideshows (presentation_name, presentation_subtitle)
		VALUES ($1, $2)
		RETURNING id, created_at`,
		show.TitleSlide.PresentationName, show.TitleSlide.PresentationSubtitle,
	).Scan(&show.ID, &show.CreatedAt)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert slideshow: %w", err)
	}

	for i, slide := range show.Slides {
		var slideID uuid.UUID
		err := tx.QueryRowContext(ctx, `
			INSERT INTO slides (slideshow_id, position, title, subtitle, bullets)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id`,
			show.ID, i, slide.Title, slide.Subtitle, models.JoinBullets(slide.Bullets),
		).Scan(&slideID)
		if err != nil {
			return uuid.Nil, fmt.Errorf("insert slide %d: %w", i, err)
		}

		if slide.Image == nil {
			continue
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO slide_images (slide_id, url, caption)
			VALUES ($1, $2, $3)`,
			slideID, slide.Image.URL, slide.Image.Caption,
		)
		if err != nil {
			return uuid.Nil, fmt.Errorf("insert slide %d image: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return uuid.Nil, fmt.Errorf("commit slideshow: %w", err)
	}
	return show.ID, nil
}

// FindByID loads a slideshow with its slides in stored order. Returns nil
// and no error when the slideshow does not exist.
func (s *SlideshowStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Slideshow, error) {
	var show models.Slideshow
	err := s.db.QueryRowContext(ctx, `
		SELECT id, presentation_name, presentation_subtitle, created_at
		FROM slideshows WHERE id = $1`, id,
	).Scan(&show.ID, &show.TitleSlide.PresentationName, &show.TitleSlide.PresentationSubtitle, &show.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find slideshow by id: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT s.title, s.subtitle, s.bullets, i.url, i.caption
		FROM slides s
		LEFT JOIN slide_images i ON i.slide_id = s.id
		WHERE s.slideshow_id = $1
		ORDER BY s.position ASC`, id)
	if err != nil {
		return nil, fmt.Errorf("list slides: %w", err)
	}
	defer rows.Close()

	show.Slides = []models.Slide{}
	for rows.Next() {
		var (
			slide   models.Slide
			bullets string
			url     sql.NullString
			caption sql.NullString
		)
		if err := rows.Scan(&slide.Title, &slide.Subtitle, &bullets, &url, &caption); err != nil {
			return nil, fmt.Errorf("scan slide: %w", err)
		}
		slide.Bullets = models.SplitBullets(bullets)
		if url.Valid {
			slide.Image = &models.Image{URL: url.String, Caption: caption.String}
		}
		show.Slides = append(show.Slides, slide)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate slides: %w", err)
	}
	return &show, nil
}
