package grc

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// ImplementedSet holds the normalized ids of controls already in place.
// Membership checks compare the first whitespace-delimited token of a
// control id, case-insensitively.
type ImplementedSet map[string]struct{}

// Has reports whether the control id is in the set
func (s ImplementedSet) Has(controlID string) bool {
	_, ok := s[normalizeControlID(controlID)]
	return ok
}

func normalizeControlID(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(fields[0])
}

// ParseImplemented reads an implemented-controls list, one control per
// line. Only the first whitespace-delimited token of each line counts;
// descriptive suffixes are tolerated. Blank lines and lines starting
// with # are skipped.
func ParseImplemented(r io.Reader) (ImplementedSet, error) {
	set := make(ImplementedSet)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if id := normalizeControlID(line); id != "" {
			set[id] = struct{}{}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading implemented controls: %w", err)
	}
	return set, nil
}

// LoadImplemented reads an implemented-controls file
func LoadImplemented(path string) (ImplementedSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening implemented controls: %w", err)
	}
	defer f.Close()
	return ParseImplemented(f)
}

// FrameworkGap is the gap summary for one framework
type FrameworkGap struct {
	Framework        Framework `json:"framework"`
	Recommended      []string  `json:"recommended"`
	Implemented      []string  `json:"implemented"`
	Missing          []string  `json:"missing"`
	RecommendedCount int       `json:"recommended_count"`
	ImplementedCount int       `json:"implemented_count"`
	MissingCount     int       `json:"missing_count"`
}

// GapReport holds per-framework gaps in catalog order. Reports are
// built fresh per invocation and never cached.
type GapReport struct {
	Frameworks []FrameworkGap `json:"frameworks"`
}

// AnalyzeGaps computes, for every framework in the catalog set, the
// recommended control union from the mapping, the implemented subset,
// and the missing remainder. A mapping that references a framework
// absent from the catalogs is a structural error: no partial report is
// returned. A nil implemented set means every recommendation is
// missing.
func (m *Mapper) AnalyzeGaps(mapping Mapping, implemented ImplementedSet) (*GapReport, error) {
	recommended := make(map[Framework]map[string]bool)
	for _, fw := range m.catalogs.Frameworks() {
		recommended[fw] = make(map[string]bool)
	}

	for _, refs := range mapping {
		for _, ref := range refs {
			cat, ok := m.catalogs.Lookup(ref.Framework)
			if !ok {
				return nil, &UnknownFrameworkError{Framework: ref.Framework}
			}
			recommended[cat.Framework][ref.ControlID] = true
		}
	}

	report := &GapReport{}
	for _, fw := range m.catalogs.Frameworks() {
		gap := FrameworkGap{
			Framework:   fw,
			Recommended: []string{},
			Implemented: []string{},
			Missing:     []string{},
		}
		for id := range recommended[fw] {
			gap.Recommended = append(gap.Recommended, id)
			if implemented.Has(id) {
				gap.Implemented = append(gap.Implemented, id)
			} else {
				gap.Missing = append(gap.Missing, id)
			}
		}
		sort.Strings(gap.Recommended)
		sort.Strings(gap.Implemented)
		sort.Strings(gap.Missing)
		gap.RecommendedCount = len(gap.Recommended)
		gap.ImplementedCount = len(gap.Implemented)
		gap.MissingCount = len(gap.Missing)
		report.Frameworks = append(report.Frameworks, gap)
	}
	return report, nil
}
