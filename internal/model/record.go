// Package model defines the core risk register data structures
package model

import "strings"

// Decision is the treatment decision recorded for a risk
type Decision string

const (
	DecisionAvoid    Decision = "Avoid"
	DecisionReduce   Decision = "Reduce"
	DecisionTransfer Decision = "Transfer"
	DecisionAccept   Decision = "Accept"
)

// Decisions lists the four treatment decisions in their canonical order
var Decisions = []Decision{DecisionAvoid, DecisionReduce, DecisionTransfer, DecisionAccept}

// ParseDecision matches s against the known treatment decisions,
// ignoring case and surrounding whitespace. The second return is false
// when s is not a recognized decision.
func ParseDecision(s string) (Decision, bool) {
	s = strings.TrimSpace(s)
	for _, d := range Decisions {
		if strings.EqualFold(s, string(d)) {
			return d, true
		}
	}
	return "", false
}

// Valid reports whether d is one of the four treatment decisions
func (d Decision) Valid() bool {
	_, ok := ParseDecision(string(d))
	return ok
}

// Severity classifies a risk score into one of four bands
type Severity int

const (
	SeverityLow Severity = iota
	SeverityMedium
	SeverityHigh
	SeverityCritical
)

// SeverityFor returns the band for a probability x impact score.
// Bands are contiguous over [1,25]: 1-4 Low, 5-9 Medium, 10-15 High,
// 16-25 Critical. Scores outside [1,25] cannot occur for validated
// records; out-of-range values clamp to the nearest band.
func SeverityFor(score int) Severity {
	switch {
	case score >= 16:
		return SeverityCritical
	case score >= 10:
		return SeverityHigh
	case score >= 5:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

func (s Severity) String() string {
	switch s {
	case SeverityCritical:
		return "Critical"
	case SeverityHigh:
		return "High"
	case SeverityMedium:
		return "Medium"
	default:
		return "Low"
	}
}

// RiskRecord is a single validated row of a risk register
type RiskRecord struct {
	ID             string   `json:"id"`
	Asset          string   `json:"asset"`
	Threat         string   `json:"threat"`
	Vulnerability  string   `json:"vulnerability"`
	Probability    int      `json:"probability"` // 1-5
	Impact         int      `json:"impact"`      // 1-5
	Decision       Decision `json:"decision"`
	Recommendation string   `json:"recommendation,omitempty"`
	ControlRefs    []string `json:"control_refs,omitempty"` // explicit control references, when the register carries them
	Row            int      `json:"-"` // source row in spreadsheet numbering, 0 if synthetic
}

// Score returns the derived risk score. Any score column present in the
// source file is ignored; the product of the validated probability and
// impact is the only score this tool reports.
func (r RiskRecord) Score() int {
	return r.Probability * r.Impact
}

// Severity returns the band the derived score falls in
func (r RiskRecord) Severity() Severity {
	return SeverityFor(r.Score())
}

// ProbabilityLabel returns the qualitative label for a 1-5 probability
// rating, or "Unknown" outside that range.
func ProbabilityLabel(p int) string {
	switch p {
	case 1:
		return "Very Low"
	case 2:
		return "Low"
	case 3:
		return "Medium"
	case 4:
		return "High"
	case 5:
		return "Very High"
	default:
		return "Unknown"
	}
}

// ImpactLabel returns the qualitative label for a 1-5 impact rating,
// or "Unknown" outside that range.
func ImpactLabel(i int) string {
	switch i {
	case 1:
		return "Negligible"
	case 2:
		return "Minor"
	case 3:
		return "Moderate"
	case 4:
		return "Major"
	case 5:
		return "Catastrophic"
	default:
		return "Unknown"
	}
}

