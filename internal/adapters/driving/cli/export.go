package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Surya-Mathivanan/pathway-cli/internal/core/domain"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the current pathway to a file",
	Long: `Write the current pathway to a file.

Formats:
  txt   - indented JSON dump (plan.txt)
  yaml  - YAML dump (plan.yaml)
  pdf   - paginated A4 document (DSA-Plan.pdf)

The output directory defaults to export.dir, or the working directory.`,
	RunE: runExport,
}

var exportHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent exports",
	RunE:  runExportHistory,
}

var (
	exportFormat string
	exportOut    string
	historyLimit int
)

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", string(domain.ExportFormatPDF), "Output format: txt, yaml, pdf")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output directory")
	exportHistoryCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "Number of entries to show (0 = all)")
	exportCmd.AddCommand(exportHistoryCmd)
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	if exportService == nil || pathwayService == nil {
		return errors.New("export service not configured")
	}
	if err := requireSession(); err != nil {
		return err
	}

	format, err := domain.ParseExportFormat(exportFormat)
	if err != nil {
		return err
	}

	dir := exportOut
	if dir == "" && settingsService != nil {
		if s, err := settingsService.Get(); err == nil {
			dir = s.Export.Dir
		}
	}
	if dir == "" {
		dir = "."
	}

	ctx := cmd.Context()
	p, err := pathwayService.Current(ctx)
	if err != nil {
		return friendly(err)
	}

	rec, err := exportService.Export(ctx, p, format, dir)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if rec.Pages > 0 {
		cmd.Printf("Exported %s (%d pages)\n", rec.Path, rec.Pages)
	} else {
		cmd.Printf("Exported %s\n", rec.Path)
	}
	return nil
}

func runExportHistory(cmd *cobra.Command, _ []string) error {
	if exportService == nil {
		return errors.New("export service not configured")
	}

	records, err := exportService.History(cmd.Context(), historyLimit)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		cmd.Println("No exports yet.")
		return nil
	}
	for _, r := range records {
		cmd.Printf("  %s  %-4s  %-30s  %s\n", r.CreatedAt.Local().Format("2006-01-02 15:04"), r.Format, r.Title, r.Path)
	}
	return nil
}
