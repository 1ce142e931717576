package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Surya-Mathivanan/pathway-cli/internal/core/domain"
	"github.com/Surya-Mathivanan/pathway-cli/internal/core/ports/driven"
)

type exportLog struct {
	db *sql.DB
}

var _ driven.ExportLog = (*exportLog)(nil)

// Record stores an export record.
func (l *exportLog) Record(ctx context.Context, rec domain.ExportRecord) error {
	if rec.ID == "" {
		return domain.ErrInvalidInput
	}
	_, err := l.db.ExecContext(ctx, `
		INSERT INTO exports (id, pathway_id, title, format, path, pages, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.PathwayID, rec.Title, string(rec.Format), rec.Path, rec.Pages, rec.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("recording export: %w", err)
	}
	return nil
}

// List returns the newest records first.
func (l *exportLog) List(ctx context.Context, limit int) ([]domain.ExportRecord, error) {
	query := `
		SELECT id, pathway_id, title, format, path, pages, created_at
		FROM exports ORDER BY created_at DESC`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := l.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing exports: %w", err)
	}
	defer rows.Close()

	var records []domain.ExportRecord
	for rows.Next() {
		var rec domain.ExportRecord
		var format string
		if err := rows.Scan(&rec.ID, &rec.PathwayID, &rec.Title, &format,
			&rec.Path, &rec.Pages, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning export: %w", err)
		}
		rec.Format = domain.ExportFormat(format)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating exports: %w", err)
	}
	return records, nil
}
