package services

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/Surya-Mathivanan/pathway-cli/internal/adapters/driven/storage/memory"
	"github.com/Surya-Mathivanan/pathway-cli/internal/core/domain"
)

func TestExportService_Text(t *testing.T) {
	dir := t.TempDir()
	log := memory.NewExportLog()
	svc := NewExportService(nil, nil, log)

	rec, err := svc.Export(context.Background(), samplePathway(), domain.ExportFormatText, dir)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "plan.txt"), rec.Path)
	assert.NotEmpty(t, rec.ID)

	data, err := os.ReadFile(rec.Path)
	require.NoError(t, err)
	var decoded domain.Pathway
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "Python DSA in 1 week", decoded.Title)
	assert.Contains(t, string(data), "\n  \"title\"", "dump is indented")

	history, err := svc.History(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, rec.ID, history[0].ID)
}

func TestExportService_YAML(t *testing.T) {
	dir := t.TempDir()
	svc := NewExportService(nil, nil, nil)

	rec, err := svc.Export(context.Background(), samplePathway(), domain.ExportFormatYAML, dir)

	require.NoError(t, err)
	data, err := os.ReadFile(rec.Path)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Equal(t, "p1", decoded["id"])
	assert.Contains(t, decoded, "sections")
}

func TestExportService_PDF_Paginates(t *testing.T) {
	renderer := &mockRenderer{width: 1000, height: 4000}
	writer := &mockDocumentWriter{}
	svc := NewExportService(renderer, writer, nil)
	dir := t.TempDir()

	rec, err := svc.Export(context.Background(), samplePathway(), domain.ExportFormatPDF, dir)

	require.NoError(t, err)
	assert.Equal(t, float64(domain.RasterScale), renderer.scale)
	assert.Equal(t, filepath.Join(dir, "DSA-Plan.pdf"), writer.path)
	// 1000x4000 px at 210mm wide is 840mm tall: three A4 pages.
	assert.Equal(t, 3, rec.Pages)
	assert.Len(t, writer.layout.Pages, 3)
	assert.InDelta(t, 840, writer.layout.ImageHeight, 1e-9)
}

func TestExportService_PDF_RenderFailureResetsFlag(t *testing.T) {
	renderer := &mockRenderer{err: errors.New("font missing")}
	svc := NewExportService(renderer, &mockDocumentWriter{}, nil)
	dir := t.TempDir()

	_, err := svc.Export(context.Background(), samplePathway(), domain.ExportFormatPDF, dir)
	assert.ErrorIs(t, err, domain.ErrRenderFailed)

	// The action is retryable.
	renderer.err = nil
	renderer.width, renderer.height = 100, 100
	_, err = svc.Export(context.Background(), samplePathway(), domain.ExportFormatPDF, dir)
	assert.NoError(t, err)
}

func TestExportService_PDF_NotConfigured(t *testing.T) {
	svc := NewExportService(nil, nil, nil)

	_, err := svc.Export(context.Background(), samplePathway(), domain.ExportFormatPDF, t.TempDir())

	assert.ErrorIs(t, err, domain.ErrRenderFailed)
}

func TestExportService_RejectsConcurrentExport(t *testing.T) {
	writer := &mockDocumentWriter{block: make(chan struct{}), started: make(chan struct{})}
	svc := NewExportService(&mockRenderer{width: 10, height: 10}, writer, nil)
	dir := t.TempDir()

	done := make(chan error, 1)
	go func() {
		_, err := svc.Export(context.Background(), samplePathway(), domain.ExportFormatPDF, dir)
		done <- err
	}()

	select {
	case <-writer.started:
	case <-time.After(5 * time.Second):
		t.Fatal("first export did not start")
	}

	_, err := svc.Export(context.Background(), samplePathway(), domain.ExportFormatText, dir)
	assert.ErrorIs(t, err, domain.ErrExportInProgress)

	close(writer.block)
	require.NoError(t, <-done)

	_, err = svc.Export(context.Background(), samplePathway(), domain.ExportFormatText, dir)
	assert.NoError(t, err)
}

func TestExportService_InvalidInput(t *testing.T) {
	svc := NewExportService(nil, nil, nil)

	_, err := svc.Export(context.Background(), nil, domain.ExportFormatText, t.TempDir())
	assert.ErrorIs(t, err, domain.ErrNoPathway)

	_, err = svc.Export(context.Background(), samplePathway(), "docx", t.TempDir())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestExportService_HistoryWithoutLog(t *testing.T) {
	svc := NewExportService(nil, nil, nil)

	records, err := svc.History(context.Background(), 5)

	require.NoError(t, err)
	assert.Empty(t, records)
}
