package tui

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ethanolivertroy/riskmatrix-tui/internal/grc"
	"github.com/ethanolivertroy/riskmatrix-tui/internal/model"
)

func testRisk(id string, probability, impact int) model.RiskRecord {
	return model.RiskRecord{
		ID:             id,
		Asset:          "EHR Database",
		Threat:         "Ransomware outbreak",
		Vulnerability:  "Unpatched database server",
		Probability:    probability,
		Impact:         impact,
		Decision:       model.DecisionReduce,
		Recommendation: "Patch quarterly and test restores",
		ControlRefs:    []string{"A.8.8", "164.308(a)(5)"},
	}
}

func TestExportFormatString(t *testing.T) {
	tests := []struct {
		format   ExportFormat
		expected string
	}{
		{ExportJSON, "JSON"},
		{ExportCSV, "CSV"},
		{ExportMarkdown, "Markdown"},
		{ExportFormat(99), ""},
	}

	for _, tt := range tests {
		if got := tt.format.String(); got != tt.expected {
			t.Errorf("ExportFormat(%d).String() = %q, want %q", tt.format, got, tt.expected)
		}
	}
}

func TestExportFormatExtension(t *testing.T) {
	tests := []struct {
		format   ExportFormat
		expected string
	}{
		{ExportJSON, ".json"},
		{ExportCSV, ".csv"},
		{ExportMarkdown, ".md"},
		{ExportFormat(99), ""},
	}

	for _, tt := range tests {
		if got := tt.format.Extension(); got != tt.expected {
			t.Errorf("ExportFormat(%d).Extension() = %q, want %q", tt.format, got, tt.expected)
		}
	}
}

func TestParseExportFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected ExportFormat
		ok       bool
	}{
		{"json", ExportJSON, true},
		{"JSON", ExportJSON, true},
		{"csv", ExportCSV, true},
		{"markdown", ExportMarkdown, true},
		{"md", ExportMarkdown, true},
		{" Markdown ", ExportMarkdown, true},
		{"xlsx", ExportJSON, false},
		{"", ExportJSON, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseExportFormat(tt.input)
			if ok != tt.ok {
				t.Fatalf("ParseExportFormat(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if ok && got != tt.expected {
				t.Errorf("ParseExportFormat(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestExportScopeString(t *testing.T) {
	tests := []struct {
		scope    ExportScope
		expected string
	}{
		{ExportCurrentView, "Current View"},
		{ExportFullRegister, "Full Register"},
		{ExportScope(99), ""},
	}

	for _, tt := range tests {
		if got := tt.scope.String(); got != tt.expected {
			t.Errorf("ExportScope(%d).String() = %q, want %q", tt.scope, got, tt.expected)
		}
	}
}

func TestExport(t *testing.T) {
	records := []model.RiskRecord{
		testRisk("R001", 4, 5),
		testRisk("R002", 2, 3),
	}

	tests := []struct {
		name   string
		format ExportFormat
		ext    string
	}{
		{"JSON export", ExportJSON, ".json"},
		{"CSV export", ExportCSV, ".csv"},
		{"Markdown export", ExportMarkdown, ".md"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			result := Export(records, tt.format, dir)

			if result.Err != nil {
				t.Fatalf("Export() error = %v", result.Err)
			}
			if result.Count != 2 {
				t.Errorf("Export() count = %d, want 2", result.Count)
			}

			base := filepath.Base(result.FilePath)
			if !strings.HasPrefix(base, "risk_report_") {
				t.Errorf("Export() filename = %q, want risk_report_ prefix", base)
			}
			if !strings.HasSuffix(base, tt.ext) {
				t.Errorf("Export() filename = %q, want %s suffix", base, tt.ext)
			}

			if _, err := os.Stat(result.FilePath); err != nil {
				t.Errorf("Export() file not created: %v", err)
			}
		})
	}
}

func TestExportInvalidDir(t *testing.T) {
	records := []model.RiskRecord{testRisk("R001", 3, 3)}

	result := Export(records, ExportJSON, "/nonexistent/path/that/does/not/exist")
	if result.Err == nil {
		t.Error("Export() to invalid dir should return error")
	}
}

func TestExportJSON(t *testing.T) {
	records := []model.RiskRecord{
		testRisk("R001", 4, 5),
		testRisk("R002", 2, 3),
	}

	dir := t.TempDir()
	result := Export(records, ExportJSON, dir)
	if result.Err != nil {
		t.Fatalf("Export() error = %v", result.Err)
	}

	data, err := os.ReadFile(result.FilePath)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	var export struct {
		ExportedAt string `json:"exported_at"`
		TotalCount int    `json:"total_count"`
		Risks      []struct {
			ID          string   `json:"id"`
			Asset       string   `json:"asset"`
			Probability int      `json:"probability"`
			Impact      int      `json:"impact"`
			Score       int      `json:"score"`
			Severity    string   `json:"severity"`
			Decision    string   `json:"decision"`
			ControlRefs []string `json:"control_refs"`
		} `json:"risks"`
	}
	if err := json.Unmarshal(data, &export); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if export.TotalCount != 2 {
		t.Errorf("total_count = %d, want 2", export.TotalCount)
	}
	if len(export.Risks) != 2 {
		t.Fatalf("len(risks) = %d, want 2", len(export.Risks))
	}
	if export.ExportedAt == "" {
		t.Error("exported_at is empty")
	}

	first := export.Risks[0]
	if first.ID != "R001" {
		t.Errorf("first risk id = %q, want R001", first.ID)
	}
	if first.Asset != "EHR Database" {
		t.Errorf("first risk asset = %q, want EHR Database", first.Asset)
	}
	if first.Score != 20 {
		t.Errorf("first risk score = %d, want 20", first.Score)
	}
	if first.Severity != "Critical" {
		t.Errorf("first risk severity = %q, want Critical", first.Severity)
	}
	if first.Decision != "Reduce" {
		t.Errorf("first risk decision = %q, want Reduce", first.Decision)
	}
	if len(first.ControlRefs) != 2 {
		t.Errorf("first risk control refs = %v, want 2 entries", first.ControlRefs)
	}
}

func TestExportJSONWithGap(t *testing.T) {
	records := []model.RiskRecord{testRisk("R001", 4, 5)}
	gap := &grc.GapReport{
		Frameworks: []grc.FrameworkGap{
			{
				Framework:        grc.FrameworkISO27001,
				Recommended:      []string{"A.8.7", "A.8.8"},
				Implemented:      []string{"A.8.7"},
				Missing:          []string{"A.8.8"},
				RecommendedCount: 2,
				ImplementedCount: 1,
				MissingCount:     1,
			},
		},
	}

	dir := t.TempDir()
	result := ExportWithGap(records, gap, ExportJSON, dir)
	if result.Err != nil {
		t.Fatalf("ExportWithGap() error = %v", result.Err)
	}

	data, err := os.ReadFile(result.FilePath)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	var export struct {
		Gap *grc.GapReport `json:"gap_analysis"`
	}
	if err := json.Unmarshal(data, &export); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if export.Gap == nil {
		t.Fatal("gap_analysis missing from JSON export")
	}
	if len(export.Gap.Frameworks) != 1 {
		t.Fatalf("gap frameworks = %d, want 1", len(export.Gap.Frameworks))
	}
	fw := export.Gap.Frameworks[0]
	if fw.Framework != grc.FrameworkISO27001 {
		t.Errorf("gap framework = %q, want %q", fw.Framework, grc.FrameworkISO27001)
	}
	if fw.MissingCount != 1 || len(fw.Missing) != 1 || fw.Missing[0] != "A.8.8" {
		t.Errorf("gap missing = %v (count %d), want [A.8.8]", fw.Missing, fw.MissingCount)
	}
}

func TestExportCSV(t *testing.T) {
	records := []model.RiskRecord{
		testRisk("R001", 4, 5),
		testRisk("R002", 2, 3),
	}

	dir := t.TempDir()
	result := Export(records, ExportCSV, dir)
	if result.Err != nil {
		t.Fatalf("Export() error = %v", result.Err)
	}

	file, err := os.Open(result.FilePath)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}

	if len(rows) != 3 {
		t.Fatalf("CSV rows = %d, want 3 (header + 2 records)", len(rows))
	}

	expectedHeaders := []string{
		"ID", "Asset", "Threat", "Vulnerability", "Probability", "Impact",
		"Score", "Severity", "Decision", "Recommendation", "Controls",
	}
	for i, h := range expectedHeaders {
		if rows[0][i] != h {
			t.Errorf("header[%d] = %q, want %q", i, rows[0][i], h)
		}
	}

	first := rows[1]
	if first[0] != "R001" {
		t.Errorf("first row id = %q, want R001", first[0])
	}
	if first[4] != "4" || first[5] != "5" {
		t.Errorf("first row inputs = %q/%q, want 4/5", first[4], first[5])
	}
	if first[6] != "20" {
		t.Errorf("first row score = %q, want 20", first[6])
	}
	if first[7] != "Critical" {
		t.Errorf("first row severity = %q, want Critical", first[7])
	}
	if first[10] != "A.8.8; 164.308(a)(5)" {
		t.Errorf("first row controls = %q, want joined refs", first[10])
	}
}

func TestExportMarkdown(t *testing.T) {
	records := []model.RiskRecord{
		testRisk("R001", 4, 5),
		testRisk("R002", 2, 3),
	}

	dir := t.TempDir()
	result := Export(records, ExportMarkdown, dir)
	if result.Err != nil {
		t.Fatalf("Export() error = %v", result.Err)
	}

	data, err := os.ReadFile(result.FilePath)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	content := string(data)

	checks := []string{
		"# Risk Register Report",
		"**Total Risks:** 2",
		"## Summary",
		"### By Severity",
		"### By Decision",
		"| ID | Asset | Threat | P | I | Score | Severity | Decision |",
		"R001",
		"R002",
		"*Generated by riskmatrix-tui*",
	}
	for _, check := range checks {
		if !strings.Contains(content, check) {
			t.Errorf("Markdown missing %q", check)
		}
	}
}

func TestExportMarkdownWithGap(t *testing.T) {
	records := []model.RiskRecord{testRisk("R001", 4, 5)}
	gap := &grc.GapReport{
		Frameworks: []grc.FrameworkGap{
			{
				Framework:        grc.FrameworkHIPAA,
				Recommended:      []string{"164.308(a)(5)", "164.312(b)"},
				Missing:          []string{"164.308(a)(5)", "164.312(b)"},
				RecommendedCount: 2,
				MissingCount:     2,
			},
		},
	}

	dir := t.TempDir()
	result := ExportWithGap(records, gap, ExportMarkdown, dir)
	if result.Err != nil {
		t.Fatalf("ExportWithGap() error = %v", result.Err)
	}

	data, err := os.ReadFile(result.FilePath)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	content := string(data)

	checks := []string{
		"## Gap Analysis",
		"### HIPAA",
		"**Missing:** 2",
		"164.308(a)(5), 164.312(b)",
	}
	for _, check := range checks {
		if !strings.Contains(content, check) {
			t.Errorf("Markdown gap section missing %q", check)
		}
	}
}

func TestExportMarkdownEscapesPipes(t *testing.T) {
	risk := testRisk("R001", 3, 3)
	risk.Asset = "Router | Core"

	dir := t.TempDir()
	result := Export([]model.RiskRecord{risk}, ExportMarkdown, dir)
	if result.Err != nil {
		t.Fatalf("Export() error = %v", result.Err)
	}

	data, err := os.ReadFile(result.FilePath)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(data), `Router \| Core`) {
		t.Error("Markdown table cell pipe not escaped")
	}
}

func TestExportEmptyList(t *testing.T) {
	dir := t.TempDir()

	for _, format := range []ExportFormat{ExportJSON, ExportCSV} {
		result := Export([]model.RiskRecord{}, format, dir)
		if result.Err != nil {
			t.Errorf("Export(%s) empty list error = %v", format, result.Err)
		}
		if result.Count != 0 {
			t.Errorf("Export(%s) empty list count = %d, want 0", format, result.Count)
		}
	}
}
