package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportFormat_Filename(t *testing.T) {
	assert.Equal(t, "plan.txt", ExportFormatText.Filename())
	assert.Equal(t, "plan.yaml", ExportFormatYAML.Filename())
	assert.Equal(t, "DSA-Plan.pdf", ExportFormatPDF.Filename())
	assert.Empty(t, ExportFormat("docx").Filename())
}

func TestParseExportFormat(t *testing.T) {
	for _, in := range []string{"txt", "text", "yaml", "pdf"} {
		f, err := ParseExportFormat(in)
		require.NoError(t, err, in)
		assert.True(t, f.IsValid())
	}

	f, err := ParseExportFormat("text")
	require.NoError(t, err)
	assert.Equal(t, ExportFormatText, f)

	_, err = ParseExportFormat("docx")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
