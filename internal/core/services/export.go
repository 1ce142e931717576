package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/Surya-Mathivanan/pathway-cli/internal/core/domain"
	"github.com/Surya-Mathivanan/pathway-cli/internal/core/ports/driven"
	"github.com/Surya-Mathivanan/pathway-cli/internal/core/ports/driving"
	"github.com/Surya-Mathivanan/pathway-cli/internal/logger"
)

// Ensure ExportService implements the interface.
var _ driving.ExportService = (*ExportService)(nil)

// ExportService writes pathways to files.
// Only one export runs at a time.
type ExportService struct {
	renderer driven.SurfaceRenderer
	writer   driven.DocumentWriter
	log      driven.ExportLog
	now      func() time.Time

	exporting atomic.Bool
}

// NewExportService creates an export service. Renderer and writer are only
// needed for PDF exports; log is optional.
func NewExportService(renderer driven.SurfaceRenderer, writer driven.DocumentWriter, log driven.ExportLog) *ExportService {
	return &ExportService{
		renderer: renderer,
		writer:   writer,
		log:      log,
		now:      time.Now,
	}
}

// Export writes p in the given format into dir (the working directory when
// empty). The in-progress flag is cleared whether or not the export succeeds.
func (s *ExportService) Export(
	ctx context.Context,
	p *domain.Pathway,
	format domain.ExportFormat,
	dir string,
) (*domain.ExportRecord, error) {
	if p == nil {
		return nil, domain.ErrNoPathway
	}
	if !format.IsValid() {
		return nil, fmt.Errorf("%w: export format %q", domain.ErrInvalidInput, format)
	}
	if !s.exporting.CompareAndSwap(false, true) {
		return nil, domain.ErrExportInProgress
	}
	defer s.exporting.Store(false)

	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(dir, format.Filename())

	logger.Section("Export")
	logger.Debug("format=%s path=%s", format, path)

	rec := &domain.ExportRecord{
		ID:        uuid.New().String(),
		PathwayID: p.ID,
		Title:     p.Title,
		Format:    format,
		Path:      path,
	}

	var err error
	switch format {
	case domain.ExportFormatText:
		err = writeJSON(path, p)
	case domain.ExportFormatYAML:
		err = writeYAML(path, p)
	case domain.ExportFormatPDF:
		rec.Pages, err = s.writePDF(ctx, path, p)
	}
	if err != nil {
		return nil, err
	}

	rec.CreatedAt = s.now()
	if s.log != nil {
		if err := s.log.Record(ctx, *rec); err != nil {
			logger.Warn("export: could not record history: %v", err)
		}
	}
	logger.Info("Exported %s to %s", format, path)
	return rec, nil
}

// History returns recent exports, newest first.
func (s *ExportService) History(ctx context.Context, limit int) ([]domain.ExportRecord, error) {
	if s.log == nil {
		return nil, nil
	}
	return s.log.List(ctx, limit)
}

func (s *ExportService) writePDF(ctx context.Context, path string, p *domain.Pathway) (int, error) {
	if s.renderer == nil || s.writer == nil {
		return 0, fmt.Errorf("%w: document export not configured", domain.ErrRenderFailed)
	}

	img, err := s.renderer.Render(ctx, p, domain.RasterScale)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", domain.ErrRenderFailed, err)
	}

	bounds := img.Bounds()
	layout := domain.Paginate(
		float64(bounds.Dx()), float64(bounds.Dy()),
		domain.PageWidthMM, domain.PageHeightMM,
	)
	if len(layout.Pages) == 0 {
		return 0, fmt.Errorf("%w: empty surface", domain.ErrRenderFailed)
	}
	logger.Debug("surface %dx%d px, %.1fmm tall, %d page(s)",
		bounds.Dx(), bounds.Dy(), layout.ImageHeight, len(layout.Pages))

	if err := s.writer.Write(ctx, path, img, layout); err != nil {
		return 0, fmt.Errorf("write document: %w", err)
	}
	return len(layout.Pages), nil
}

func writeJSON(path string, p *domain.Pathway) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("encode pathway: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

func writeYAML(path string, p *domain.Pathway) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode pathway: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
