package model

import (
	"strings"
	"testing"
)

func TestRiskItemTitle(t *testing.T) {
	tests := []struct {
		name     string
		threat   string
		expected string
	}{
		{"standard title", "Ransomware encrypts patient records", "Ransomware encrypts patient records"},
		{"empty title", "", ""},
		{"unicode title", "Exfiltration de données", "Exfiltration de données"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := RiskItem{
				RiskRecord: RiskRecord{Threat: tt.threat},
			}
			if got := item.Title(); got != tt.expected {
				t.Errorf("Title() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestRiskItemDescription(t *testing.T) {
	tests := []struct {
		name     string
		record   RiskRecord
		contains []string
	}{
		{
			name: "full description",
			record: RiskRecord{
				ID:          "R001",
				Asset:       "EHR Database",
				Probability: 4,
				Impact:      5,
			},
			contains: []string{"R001", "EHR Database", "Score: 20", "Critical"},
		},
		{
			name: "low severity",
			record: RiskRecord{
				ID:          "R002",
				Asset:       "Test bench",
				Probability: 1,
				Impact:      2,
			},
			contains: []string{"Score: 2", "Low"},
		},
		{
			name:     "empty fields",
			record:   RiskRecord{},
			contains: []string{"|"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := RiskItem{RiskRecord: tt.record}
			got := item.Description()
			for _, substr := range tt.contains {
				if !strings.Contains(got, substr) {
					t.Errorf("Description() = %q, want to contain %q", got, substr)
				}
			}
		})
	}
}

func TestRiskItemFilterValue(t *testing.T) {
	item := RiskItem{
		RiskRecord: RiskRecord{
			ID:            "R007",
			Asset:         "Payment Gateway",
			Threat:        "Credential stuffing",
			Vulnerability: "No rate limiting on login",
		},
	}

	got := item.FilterValue()

	// Should contain all searchable fields
	expected := []string{"R007", "Payment Gateway", "Credential stuffing", "No rate limiting on login"}
	for _, substr := range expected {
		if !strings.Contains(got, substr) {
			t.Errorf("FilterValue() = %q, want to contain %q", got, substr)
		}
	}
}

func TestRiskItemFilterValueEmpty(t *testing.T) {
	item := RiskItem{
		RiskRecord: RiskRecord{},
	}

	// Should not panic on an empty record
	_ = item.FilterValue()
}
