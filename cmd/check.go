package cmd

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/ethanolivertroy/riskmatrix-tui/internal/grc"
	"github.com/ethanolivertroy/riskmatrix-tui/internal/model"
	"github.com/ethanolivertroy/riskmatrix-tui/internal/register"
	"github.com/ethanolivertroy/riskmatrix-tui/internal/score"
)

// RunCheck validates a risk register and prints scores, rankings, and
// optionally a control gap analysis. A fatal load error or more
// rejected rows than -tolerance allows fails the run.
func RunCheck(args []string) error {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	input := fs.String("input", "risk_matrix.csv", "Risk register CSV file")
	top := fs.Int("top", 5, "How many top Critical/High risks to print (0 = all)")
	gap := fs.Bool("gap", false, "Run gap analysis against the control catalogs")
	implemented := fs.String("implemented", "", "Implemented-controls file, one control id per line")
	catalogDir := fs.String("catalogs", "", "Directory of additional control catalog YAML files")
	tolerance := fs.Int("tolerance", 0, "Row errors tolerated before the run fails")
	quiet := fs.Bool("quiet", false, "Only print errors and the summary line")
	fs.Parse(args)

	table, rowErrs, err := register.Load(*input)
	if err != nil {
		return err
	}

	if len(rowErrs) > 0 {
		fmt.Fprintf(os.Stderr, "%d row(s) rejected:\n", len(rowErrs))
		for _, rowErr := range rowErrs {
			fmt.Fprintf(os.Stderr, "  %s\n", rowErr.Error())
		}
	}

	if !*quiet && len(table.Notes) > 0 {
		fmt.Printf("%d value(s) sanitized:\n", len(table.Notes))
		for _, note := range table.Notes {
			fmt.Printf("  %s\n", note)
		}
		fmt.Println()
	}

	stats := score.Compute(table.Records)
	printSummaryLine(table.Source, stats, len(rowErrs))

	if !*quiet {
		printStats(stats)
		fmt.Println()
		printTopRisks(score.Rank(table.Records), *top)
	}

	if *gap {
		// Gap inputs are still loaded in quiet mode so a bad
		// -implemented or -catalogs path fails the run either way.
		report, err := runGapPipeline(table.Records, *catalogDir, *implemented)
		if err != nil {
			return err
		}
		if !*quiet {
			fmt.Println()
			printGapReport(report)
		}
	}

	if len(rowErrs) > *tolerance {
		return fmt.Errorf("%d row error(s) exceed tolerance %d", len(rowErrs), *tolerance)
	}
	return nil
}

// buildMapper assembles the control catalog set: built-in frameworks,
// supplemental frameworks, and any catalogs loaded from catalogDir.
func buildMapper(catalogDir string) (*grc.Mapper, error) {
	catalogs := grc.Builtin().Merge(grc.Supplemental()...)
	if catalogDir != "" {
		extra, err := grc.LoadCatalogDir(catalogDir)
		if err != nil {
			return nil, fmt.Errorf("loading catalogs from %s: %w", catalogDir, err)
		}
		catalogs = catalogs.Merge(extra...)
	}
	return grc.NewMapper(catalogs), nil
}

func loadImplementedSet(path string) (grc.ImplementedSet, error) {
	if path == "" {
		return grc.ImplementedSet{}, nil
	}
	return grc.LoadImplemented(path)
}

// runGapPipeline maps every record to controls and analyzes the gaps
// against the implemented set
func runGapPipeline(records []model.RiskRecord, catalogDir, implementedPath string) (*grc.GapReport, error) {
	mapper, err := buildMapper(catalogDir)
	if err != nil {
		return nil, err
	}
	implementedSet, err := loadImplementedSet(implementedPath)
	if err != nil {
		return nil, err
	}
	mapping := mapper.MapAll(records)
	return mapper.AnalyzeGaps(mapping, implementedSet)
}

func printSummaryLine(source string, stats score.Stats, rowErrCount int) {
	line := fmt.Sprintf("%s: %d risks, %d critical/high, highest score %d, mean %.1f",
		source, stats.Total, stats.CriticalHigh(), stats.HighestScore, stats.MeanScore)
	if rowErrCount > 0 {
		line += fmt.Sprintf(", %d row error(s)", rowErrCount)
	}
	fmt.Println(line)
}

func printStats(stats score.Stats) {
	fmt.Printf("Severity: %d Critical, %d High, %d Medium, %d Low\n",
		stats.BySeverity[model.SeverityCritical],
		stats.BySeverity[model.SeverityHigh],
		stats.BySeverity[model.SeverityMedium],
		stats.BySeverity[model.SeverityLow])
	fmt.Printf("Decisions: %d Avoid, %d Reduce, %d Transfer, %d Accept\n",
		stats.ByDecision[model.DecisionAvoid],
		stats.ByDecision[model.DecisionReduce],
		stats.ByDecision[model.DecisionTransfer],
		stats.ByDecision[model.DecisionAccept])
	if len(stats.TopAssets) > 0 {
		parts := make([]string, 0, 3)
		for i, asset := range stats.TopAssets {
			if i == 3 {
				break
			}
			parts = append(parts, fmt.Sprintf("%s (%d)", asset.Asset, asset.Count))
		}
		fmt.Printf("Top assets: %s\n", strings.Join(parts, ", "))
	}
}

func printTopRisks(ranked score.Ranked, n int) {
	topRisks := score.TopRisks(ranked, n)
	if len(topRisks) == 0 {
		fmt.Println("No Critical or High risks.")
		return
	}
	fmt.Println("Top risks:")
	for _, rec := range topRisks {
		fmt.Printf("  %-6s %3d  %-8s  %s: %s\n",
			rec.ID, rec.Score(), rec.Severity(), rec.Asset, rec.Threat)
	}
}

func printGapReport(report *grc.GapReport) {
	fmt.Println("Gap analysis:")
	for _, gap := range report.Frameworks {
		fmt.Printf("  %s: %d recommended, %d implemented, %d missing\n",
			gap.Framework, gap.RecommendedCount, gap.ImplementedCount, gap.MissingCount)
		if len(gap.Missing) > 0 {
			fmt.Printf("    missing: %s\n", strings.Join(gap.Missing, ", "))
		}
	}
}
