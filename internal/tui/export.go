package tui

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/ethanolivertroy/riskmatrix-tui/internal/grc"
	"github.com/ethanolivertroy/riskmatrix-tui/internal/model"
)

// ExportFormat represents the export file format
type ExportFormat int

const (
	ExportJSON ExportFormat = iota
	ExportCSV
	ExportMarkdown
)

func (f ExportFormat) String() string {
	switch f {
	case ExportJSON:
		return "JSON"
	case ExportCSV:
		return "CSV"
	case ExportMarkdown:
		return "Markdown"
	}
	return ""
}

func (f ExportFormat) Extension() string {
	switch f {
	case ExportJSON:
		return ".json"
	case ExportCSV:
		return ".csv"
	case ExportMarkdown:
		return ".md"
	}
	return ""
}

// ParseExportFormat matches a format name, ignoring case
func ParseExportFormat(s string) (ExportFormat, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return ExportJSON, true
	case "csv":
		return ExportCSV, true
	case "markdown", "md":
		return ExportMarkdown, true
	}
	return ExportJSON, false
}

// ExportScope represents what data to export
type ExportScope int

const (
	ExportCurrentView ExportScope = iota
	ExportFullRegister
)

func (s ExportScope) String() string {
	switch s {
	case ExportCurrentView:
		return "Current View"
	case ExportFullRegister:
		return "Full Register"
	}
	return ""
}

// ExportOption represents a menu option
type ExportOption struct {
	Name   string
	Format ExportFormat
	Scope  ExportScope
}

// PendingExport holds an export awaiting user confirmation
type PendingExport struct {
	Records []model.RiskRecord
	Format  ExportFormat
	Count   int
}

// ExportResult contains the result of an export operation
type ExportResult struct {
	FilePath string
	Count    int
	Err      error
}

// Export writes records to a timestamped report file. Records are
// rendered exactly as handed: no re-scoring, no reordering.
func Export(records []model.RiskRecord, format ExportFormat, outputDir string) ExportResult {
	return ExportWithGap(records, nil, format, outputDir)
}

// ExportWithGap additionally renders a gap analysis section where the
// format carries one. CSV output stays rows-only.
func ExportWithGap(records []model.RiskRecord, gap *grc.GapReport, format ExportFormat, outputDir string) ExportResult {
	timestamp := time.Now().Format("2006-01-02_150405")
	filename := fmt.Sprintf("risk_report_%s%s", timestamp, format.Extension())
	filepath := filepath.Join(outputDir, filename)

	var err error
	switch format {
	case ExportJSON:
		err = exportJSON(records, gap, filepath)
	case ExportCSV:
		err = exportCSV(records, filepath)
	case ExportMarkdown:
		err = exportMarkdown(records, gap, filepath)
	}

	if err != nil {
		return ExportResult{Err: err}
	}

	return ExportResult{FilePath: filepath, Count: len(records)}
}

func exportJSON(records []model.RiskRecord, gap *grc.GapReport, filepath string) error {
	type ExportRisk struct {
		ID             string   `json:"id"`
		Asset          string   `json:"asset"`
		Threat         string   `json:"threat"`
		Vulnerability  string   `json:"vulnerability"`
		Probability    int      `json:"probability"`
		Impact         int      `json:"impact"`
		Score          int      `json:"score"`
		Severity       string   `json:"severity"`
		Decision       string   `json:"decision"`
		Recommendation string   `json:"recommendation,omitempty"`
		ControlRefs    []string `json:"control_refs,omitempty"`
	}

	export := struct {
		ExportedAt string         `json:"exported_at"`
		TotalCount int            `json:"total_count"`
		Risks      []ExportRisk   `json:"risks"`
		Gap        *grc.GapReport `json:"gap_analysis,omitempty"`
	}{
		ExportedAt: time.Now().Format(time.RFC3339),
		TotalCount: len(records),
		Gap:        gap,
	}

	for _, r := range records {
		export.Risks = append(export.Risks, ExportRisk{
			ID:             r.ID,
			Asset:          r.Asset,
			Threat:         r.Threat,
			Vulnerability:  r.Vulnerability,
			Probability:    r.Probability,
			Impact:         r.Impact,
			Score:          r.Score(),
			Severity:       r.Severity().String(),
			Decision:       string(r.Decision),
			Recommendation: r.Recommendation,
			ControlRefs:    r.ControlRefs,
		})
	}

	file, err := os.Create(filepath)
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(export)
}

func exportCSV(records []model.RiskRecord, filepath string) error {
	file, err := os.Create(filepath)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Header
	header := []string{
		"ID", "Asset", "Threat", "Vulnerability", "Probability", "Impact",
		"Score", "Severity", "Decision", "Recommendation", "Controls",
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	// Data rows, field values exactly as validated
	for _, r := range records {
		row := []string{
			r.ID,
			r.Asset,
			r.Threat,
			r.Vulnerability,
			strconv.Itoa(r.Probability),
			strconv.Itoa(r.Impact),
			strconv.Itoa(r.Score()),
			r.Severity().String(),
			string(r.Decision),
			r.Recommendation,
			strings.Join(r.ControlRefs, "; "),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func exportMarkdown(records []model.RiskRecord, gap *grc.GapReport, filepath string) error {
	file, err := os.Create(filepath)
	if err != nil {
		return err
	}
	defer file.Close()

	var b strings.Builder

	// Header
	b.WriteString("# Risk Register Report\n\n")
	b.WriteString(fmt.Sprintf("**Generated:** %s\n\n", time.Now().Format("2006-01-02 15:04:05")))
	b.WriteString(fmt.Sprintf("**Total Risks:** %d\n\n", len(records)))

	// Summary stats
	bandCounts := make(map[model.Severity]int)
	decisionCounts := make(map[model.Decision]int)
	for _, r := range records {
		bandCounts[r.Severity()]++
		decisionCounts[r.Decision]++
	}

	b.WriteString("## Summary\n\n")
	b.WriteString("### By Severity\n\n")
	bands := []model.Severity{model.SeverityCritical, model.SeverityHigh, model.SeverityMedium, model.SeverityLow}
	for _, band := range bands {
		count := bandCounts[band]
		pct := 0.0
		if len(records) > 0 {
			pct = float64(count) / float64(len(records)) * 100
		}
		b.WriteString(fmt.Sprintf("- **%s (%s):** %d (%.1f%%)\n", band, severityRange(band), count, pct))
	}
	b.WriteString("\n### By Decision\n\n")
	for _, d := range model.Decisions {
		count := decisionCounts[d]
		pct := 0.0
		if len(records) > 0 {
			pct = float64(count) / float64(len(records)) * 100
		}
		b.WriteString(fmt.Sprintf("- **%s:** %d (%.1f%%)\n", d, count, pct))
	}
	b.WriteString("\n")

	// Table in the order handed
	b.WriteString("## Risks\n\n")
	b.WriteString("| ID | Asset | Threat | P | I | Score | Severity | Decision |\n")
	b.WriteString("|----|-------|--------|---|---|-------|----------|----------|\n")

	for _, r := range records {
		b.WriteString(fmt.Sprintf("| %s | %s | %s | %d | %d | %d | %s | %s |\n",
			r.ID, mdEscape(r.Asset), mdEscape(r.Threat),
			r.Probability, r.Impact, r.Score(), r.Severity(), r.Decision))
	}

	// Gap analysis
	if gap != nil {
		b.WriteString("\n## Gap Analysis\n\n")
		for _, fw := range gap.Frameworks {
			b.WriteString(fmt.Sprintf("### %s\n\n", fw.Framework))
			b.WriteString(fmt.Sprintf("- **Recommended:** %d | **Implemented:** %d | **Missing:** %d\n",
				fw.RecommendedCount, fw.ImplementedCount, fw.MissingCount))
			if len(fw.Missing) > 0 {
				b.WriteString(fmt.Sprintf("- **Missing controls:** %s\n", strings.Join(fw.Missing, ", ")))
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("\n---\n\n")
	b.WriteString("*Generated by riskmatrix-tui*\n")

	_, err = file.WriteString(b.String())
	return err
}

// mdEscape keeps cell text from breaking the markdown table
func mdEscape(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
