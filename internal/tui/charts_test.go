package tui

import (
	"strings"
	"testing"

	"github.com/ethanolivertroy/riskmatrix-tui/internal/model"
)

func chartRisk(id, asset string, probability, impact int) model.RiskRecord {
	return model.RiskRecord{
		ID:            id,
		Asset:         asset,
		Threat:        "Test threat",
		Vulnerability: "Test weakness",
		Probability:   probability,
		Impact:        impact,
		Decision:      model.DecisionReduce,
	}
}

func TestGetTopAssets(t *testing.T) {
	tests := []struct {
		name          string
		records       []model.RiskRecord
		n             int
		expectedLen   int
		expectedFirst string
		expectedCount int
	}{
		{
			name:        "empty register",
			records:     []model.RiskRecord{},
			n:           10,
			expectedLen: 0,
		},
		{
			name: "single asset",
			records: []model.RiskRecord{
				chartRisk("R001", "EHR Database", 3, 4),
				chartRisk("R002", "EHR Database", 2, 2),
			},
			n:             10,
			expectedLen:   1,
			expectedFirst: "EHR Database",
			expectedCount: 2,
		},
		{
			name: "multiple assets sorted by count",
			records: []model.RiskRecord{
				chartRisk("R001", "Firewall", 1, 1),
				chartRisk("R002", "EHR Database", 3, 4),
				chartRisk("R003", "EHR Database", 2, 2),
				chartRisk("R004", "EHR Database", 4, 4),
				chartRisk("R005", "Wi-Fi", 2, 3),
				chartRisk("R006", "Wi-Fi", 1, 2),
			},
			n:             10,
			expectedLen:   3,
			expectedFirst: "EHR Database",
			expectedCount: 3,
		},
		{
			name: "limit to N assets",
			records: []model.RiskRecord{
				chartRisk("R001", "A", 1, 1),
				chartRisk("R002", "B", 1, 1),
				chartRisk("R003", "C", 1, 1),
				chartRisk("R004", "D", 1, 1),
				chartRisk("R005", "E", 1, 1),
			},
			n:           3,
			expectedLen: 3,
		},
		{
			name: "exact N assets",
			records: []model.RiskRecord{
				chartRisk("R001", "A", 1, 1),
				chartRisk("R002", "B", 1, 1),
				chartRisk("R003", "C", 1, 1),
			},
			n:           3,
			expectedLen: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := GetTopAssets(tt.records, tt.n)

			if len(result) != tt.expectedLen {
				t.Errorf("GetTopAssets() returned %d assets, want %d", len(result), tt.expectedLen)
			}

			if tt.expectedFirst != "" && len(result) > 0 {
				if result[0].Asset != tt.expectedFirst {
					t.Errorf("GetTopAssets() first asset = %q, want %q", result[0].Asset, tt.expectedFirst)
				}
				if result[0].Count != tt.expectedCount {
					t.Errorf("GetTopAssets() first count = %d, want %d", result[0].Count, tt.expectedCount)
				}
			}
		})
	}
}

func TestGetTopAssetsTieBrokenByName(t *testing.T) {
	records := []model.RiskRecord{
		chartRisk("R001", "Zebra Server", 1, 1),
		chartRisk("R002", "Alpha Server", 1, 1),
	}

	result := GetTopAssets(records, 10)

	if len(result) != 2 {
		t.Fatalf("GetTopAssets() returned %d assets, want 2", len(result))
	}
	if result[0].Asset != "Alpha Server" {
		t.Errorf("Tied counts should sort by name: first = %q, want %q", result[0].Asset, "Alpha Server")
	}
}

func TestSeverityRange(t *testing.T) {
	tests := []struct {
		severity model.Severity
		expected string
	}{
		{model.SeverityCritical, "16-25"},
		{model.SeverityHigh, "10-15"},
		{model.SeverityMedium, "5-9"},
		{model.SeverityLow, "1-4"},
	}

	for _, tt := range tests {
		t.Run(tt.severity.String(), func(t *testing.T) {
			if got := severityRange(tt.severity); got != tt.expected {
				t.Errorf("severityRange(%v) = %q, want %q", tt.severity, got, tt.expected)
			}
		})
	}
}

func TestTruncateString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxLen   int
		expected string
	}{
		{"under limit", "short", 10, "short"},
		{"exact limit", "exactly10c", 10, "exactly10c"},
		{"over limit", "this is too long", 10, "this is t."},
		{"one char over", "12345678901", 10, "123456789."},
		{"empty string", "", 10, ""},
		{"max len 1", "abc", 1, "."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncateString(tt.input, tt.maxLen); got != tt.expected {
				t.Errorf("truncateString(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.expected)
			}
		})
	}
}

func TestRenderHeatmap(t *testing.T) {
	records := []model.RiskRecord{
		chartRisk("R001", "EHR Database", 4, 5), // score 20, Critical
		chartRisk("R002", "Firewall", 4, 5),
		chartRisk("R003", "Wi-Fi", 4, 5),
		chartRisk("R004", "VPN", 4, 5),
		chartRisk("R005", "Badge System", 4, 5),
		chartRisk("R006", "NAS", 4, 5),
		chartRisk("R007", "Printer", 1, 1), // score 1, Low
	}

	output := RenderHeatmap(records, 80, 24)

	if !strings.Contains(output, "Score Heatmap") {
		t.Error("Missing heatmap title")
	}
	if !strings.Contains(output, "Probability") {
		t.Error("Missing probability axis label")
	}
	if !strings.Contains(output, "Impact") {
		t.Error("Missing impact axis label")
	}
	if !strings.Contains(output, "Total: 7 risks") {
		t.Error("Missing or incorrect total count")
	}
	if !strings.Contains(output, "Highest score: 20") {
		t.Error("Missing or incorrect highest score")
	}
	// Six records share the probability 4, impact 5 cell; the axis
	// labels only run 1-5 so the count is unambiguous in the output.
	if !strings.Contains(output, "  6  ") {
		t.Error("Missing occupied cell count")
	}
}

func TestRenderHeatmapEmpty(t *testing.T) {
	output := RenderHeatmap(nil, 80, 24)
	if output != "No risk data available" {
		t.Errorf("RenderHeatmap(nil) = %q, want %q", output, "No risk data available")
	}
}

func TestRenderSeverityChartEmpty(t *testing.T) {
	output := RenderSeverityChart(nil, 80, 24)
	if output != "No risk data available" {
		t.Errorf("RenderSeverityChart(nil) = %q, want %q", output, "No risk data available")
	}
}

func TestRenderDecisionChartEmpty(t *testing.T) {
	output := RenderDecisionChart(nil, 80, 24)
	if output != "No risk data available" {
		t.Errorf("RenderDecisionChart(nil) = %q, want %q", output, "No risk data available")
	}
}

func TestRenderAssetChartEmpty(t *testing.T) {
	output := RenderAssetChart(nil, 80, 24)
	if output != "No asset data available" {
		t.Errorf("RenderAssetChart(nil) = %q, want %q", output, "No asset data available")
	}
}
