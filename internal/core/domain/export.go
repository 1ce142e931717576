package domain

import (
	"fmt"
	"time"
)

// ExportFormat selects the file produced by an export.
type ExportFormat string

// Supported export formats.
const (
	ExportFormatText ExportFormat = "txt"
	ExportFormatYAML ExportFormat = "yaml"
	ExportFormatPDF  ExportFormat = "pdf"
)

// IsValid returns true if the format is supported.
func (f ExportFormat) IsValid() bool {
	switch f {
	case ExportFormatText, ExportFormatYAML, ExportFormatPDF:
		return true
	default:
		return false
	}
}

// Filename returns the fixed output filename for the format.
func (f ExportFormat) Filename() string {
	switch f {
	case ExportFormatText:
		return TextExportFilename
	case ExportFormatYAML:
		return YAMLExportFilename
	case ExportFormatPDF:
		return PDFExportFilename
	default:
		return ""
	}
}

// ParseExportFormat parses a user-supplied format name.
func ParseExportFormat(s string) (ExportFormat, error) {
	f := ExportFormat(s)
	if s == "text" {
		f = ExportFormatText
	}
	if !f.IsValid() {
		return "", fmt.Errorf("%w: export format %q", ErrInvalidInput, s)
	}
	return f, nil
}

// ExportRecord describes a completed export.
type ExportRecord struct {
	ID        string
	PathwayID string
	Title     string
	Format    ExportFormat
	Path      string
	// Pages is the page count for paginated formats, 0 otherwise.
	Pages     int
	CreatedAt time.Time
}
