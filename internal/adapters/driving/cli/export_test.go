package cli

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Surya-Mathivanan/pathway-cli/internal/core/domain"
)

func TestExportCmd(t *testing.T) {
	t.Run("pdf to flag directory", func(t *testing.T) {
		exporter := &mockExporter{record: &domain.ExportRecord{Path: "/tmp/out/DSA-Plan.pdf", Pages: 3}}
		useServices(t, Services{
			Session: signedIn(),
			Pathway: &mockPathways{current: samplePathway()},
			Export:  exporter,
		})

		out, err := execute(t, "export", "--out", "/tmp/out")

		require.NoError(t, err)
		assert.Equal(t, domain.ExportFormatPDF, exporter.format)
		assert.Equal(t, "/tmp/out", exporter.dir)
		assert.Contains(t, out, "Exported /tmp/out/DSA-Plan.pdf (3 pages)")
	})

	t.Run("directory from settings", func(t *testing.T) {
		settings := newMockSettings()
		settings.settings.Export.Dir = "/data/exports"
		exporter := &mockExporter{record: &domain.ExportRecord{Path: "/data/exports/plan.yaml"}}
		useServices(t, Services{
			Session:  signedIn(),
			Pathway:  &mockPathways{current: samplePathway()},
			Export:   exporter,
			Settings: settings,
		})

		out, err := execute(t, "export", "-f", "yaml")

		require.NoError(t, err)
		assert.Equal(t, domain.ExportFormatYAML, exporter.format)
		assert.Equal(t, "/data/exports", exporter.dir)
		assert.Contains(t, out, "Exported /data/exports/plan.yaml")
	})

	t.Run("defaults to working directory", func(t *testing.T) {
		exporter := &mockExporter{record: &domain.ExportRecord{Path: "plan.txt"}}
		useServices(t, Services{
			Session: signedIn(),
			Pathway: &mockPathways{current: samplePathway()},
			Export:  exporter,
		})

		_, err := execute(t, "export", "-f", "text")

		require.NoError(t, err)
		assert.Equal(t, domain.ExportFormatText, exporter.format)
		assert.Equal(t, ".", exporter.dir)
	})

	t.Run("unknown format", func(t *testing.T) {
		useServices(t, Services{
			Session: signedIn(),
			Pathway: &mockPathways{current: samplePathway()},
			Export:  &mockExporter{},
		})

		_, err := execute(t, "export", "-f", "docx")

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("no pathway", func(t *testing.T) {
		exporter := &mockExporter{}
		useServices(t, Services{Session: signedIn(), Pathway: &mockPathways{}, Export: exporter})

		_, err := execute(t, "export")

		assert.ErrorIs(t, err, domain.ErrNoPathway)
		assert.Empty(t, exporter.format)
	})

	t.Run("export in progress", func(t *testing.T) {
		useServices(t, Services{
			Session: signedIn(),
			Pathway: &mockPathways{current: samplePathway()},
			Export:  &mockExporter{err: domain.ErrExportInProgress},
		})

		_, err := execute(t, "export")

		assert.ErrorIs(t, err, domain.ErrExportInProgress)
	})
}

func TestExportHistoryCmd(t *testing.T) {
	t.Run("lists records", func(t *testing.T) {
		exporter := &mockExporter{history: []domain.ExportRecord{{
			Title: "Python DSA Plan", Format: domain.ExportFormatPDF, Path: "/tmp/DSA-Plan.pdf",
			CreatedAt: time.Date(2026, 6, 1, 9, 30, 0, 0, time.UTC),
		}}}
		useServices(t, Services{Export: exporter})

		out, err := execute(t, "export", "history", "-n", "3")

		require.NoError(t, err)
		assert.Equal(t, 3, exporter.limit)
		assert.Contains(t, out, "Python DSA Plan")
		assert.Contains(t, out, "/tmp/DSA-Plan.pdf")
	})

	t.Run("empty", func(t *testing.T) {
		useServices(t, Services{Export: &mockExporter{}})

		out, err := execute(t, "export", "history")

		require.NoError(t, err)
		assert.Contains(t, out, "No exports yet.")
	})

	t.Run("store error", func(t *testing.T) {
		useServices(t, Services{Export: &mockExporter{err: errors.New("disk")}})

		_, err := execute(t, "export", "history")

		require.Error(t, err)
	})
}
