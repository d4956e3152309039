package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/ethanolivertroy/riskmatrix-tui/internal/grc"
	"github.com/ethanolivertroy/riskmatrix-tui/internal/register"
	"github.com/ethanolivertroy/riskmatrix-tui/internal/score"
	"github.com/ethanolivertroy/riskmatrix-tui/internal/tui"
)

// RunExport writes a ranked report file for the register. Rejected rows
// are reported but do not block the export of the remaining valid rows.
func RunExport(args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	input := fs.String("input", "risk_matrix.csv", "Risk register CSV file")
	format := fs.String("format", "markdown", "Report format: json, csv, or markdown")
	out := fs.String("out", ".", "Output directory")
	gap := fs.Bool("gap", false, "Include a gap analysis section (json and markdown)")
	implemented := fs.String("implemented", "", "Implemented-controls file, one control id per line")
	catalogDir := fs.String("catalogs", "", "Directory of additional control catalog YAML files")
	fs.Parse(args)

	exportFormat, ok := tui.ParseExportFormat(*format)
	if !ok {
		return fmt.Errorf("invalid format %q, use json, csv, or markdown", *format)
	}

	table, rowErrs, err := register.Load(*input)
	if err != nil {
		return err
	}
	for _, rowErr := range rowErrs {
		fmt.Fprintf(os.Stderr, "skipped %s\n", rowErr.Error())
	}

	var report *grc.GapReport
	if *gap {
		report, err = runGapPipeline(table.Records, *catalogDir, *implemented)
		if err != nil {
			return err
		}
	}

	if err := os.MkdirAll(*out, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	ranked := score.Rank(table.Records)
	result := tui.ExportWithGap(ranked.Records, report, exportFormat, *out)
	if result.Err != nil {
		return fmt.Errorf("export failed: %w", result.Err)
	}

	fmt.Printf("Exported %d risks to %s\n", result.Count, result.FilePath)
	return nil
}
