// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// export_log.go records every deck download in the database for audit and
// debugging purposes. Each entry captures which slideshow was exported,
// with which theme, and whether the bytes were rendered or archived.
package store

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"
)

// Export sources.
const (
	SourceRendered = "rendered"
	SourceArchive  = "archive"
)

// ExportLogStore handles deck export log operations.
type ExportLogStore struct {
	db *sql.DB
}

// NewExportLogStore creates a new ExportLogStore.
func NewExportLogStore(db *sql.DB) *ExportLogStore {
	return &ExportLogStore{db: db}
}

// Log records an export. Failures are logged and otherwise ignored.
func (s *ExportLogStore) Log(ctx context.Context, slideshowID uuid.UUID, themeKey, source string, size int) {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO deck_exports (slideshow_id, theme, source, size_bytes)
		VALUES ($1, $2, $3, $4)
	`, slideshowID, themeKey, source, size)
	if err != nil {
		slog.Warn("failed to log deck export",
			"slideshow_id", slideshowID,
			"theme", themeKey,
			"source", source,
			"error", err,
		)
		return
	}
	slog.Debug("deck export logged",
		"slideshow_id", slideshowID,
		"theme", themeKey,
		"source", source,
	)
}
