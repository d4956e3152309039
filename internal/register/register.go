// Package register loads and validates CSV risk registers
package register

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/ethanolivertroy/riskmatrix-tui/internal/model"
)

// Input limits, checked before any row is parsed. Oversized input is a
// fatal error with no partial output.
const (
	MaxFileBytes = 10 << 20 // 10 MiB
	MaxDataRows  = 10000
)

// Canonical column names
const (
	colID             = "ID"
	colAsset          = "Asset"
	colThreat         = "Threat"
	colVulnerability  = "Vulnerability"
	colProbability    = "Probability"
	colImpact         = "Impact"
	colRisk           = "Risk"
	colDecision       = "Decision"
	colRecommendation = "Recommendation"
	colControls       = "Controls"
)

var requiredColumns = []string{
	colID, colAsset, colThreat, colVulnerability, colProbability, colImpact, colDecision,
}

var knownColumns = []string{
	colID, colAsset, colThreat, colVulnerability, colProbability, colImpact,
	colRisk, colDecision, colRecommendation, colControls,
}

// headerAliases maps lowercased alternate header names onto canonical
// columns. The aliases cover the header variants seen in upstream risk
// matrices, including the French ones.
var headerAliases = map[string]string{
	"likelihood":     colProbability,
	"probabilité":    colProbability,
	"probabilite":    colProbability,
	"severity":       colImpact,
	"gravité":        colImpact,
	"gravite":        colImpact,
	"impactbusiness": colImpact,
}

// formulaPrefixes are the cell prefixes a spreadsheet would evaluate
const formulaPrefixes = "=+-@\t\r"

// Table is a validated risk register in source row order
type Table struct {
	Records []model.RiskRecord
	Notes   []Note // sanitization notices, each referencing a kept record
	Source  string // file path, or a label for synthetic registers
}

// Load reads and validates the risk register at path. Row-level
// problems are returned as RowErrors with the remaining valid rows in
// the table; a non-nil error is fatal and means no table was produced.
func Load(path string) (*Table, []RowError, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, nil, fatalf("cannot read %s: %v", path, err)
	}
	if info.Size() > MaxFileBytes {
		return nil, nil, fatalf("%s is %d bytes, limit is %d MiB", path, info.Size(), MaxFileBytes>>20)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fatalf("cannot open %s: %v", path, err)
	}
	defer f.Close()

	table, rowErrs, err := Read(f)
	if err != nil {
		return nil, nil, err
	}
	table.Source = path
	return table, rowErrs, nil
}

// Read parses CSV from r and validates it. The reader is capped at
// MaxFileBytes for callers that do not go through Load.
func Read(r io.Reader) (*Table, []RowError, error) {
	lr := &io.LimitedReader{R: r, N: MaxFileBytes + 1}
	cr := csv.NewReader(lr)
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, nil, fatalf("malformed CSV: %v", err)
	}
	if lr.N <= 0 {
		return nil, nil, fatalf("input exceeds %d MiB limit", MaxFileBytes>>20)
	}
	if len(rows) == 0 {
		return nil, nil, fatalf("input contains no data")
	}
	return Validate(rows[0], rows[1:])
}

// Validate checks a parsed register against the schema. The header is
// normalized (aliases, case) before the required-column check; a
// missing required column is fatal. Per-row problems accumulate as
// RowErrors and the offending rows are excluded, everything else is
// kept in source order.
func Validate(header []string, rows [][]string) (*Table, []RowError, error) {
	if len(rows) == 0 {
		return nil, nil, fatalf("register contains no data rows")
	}
	if len(rows) > MaxDataRows {
		return nil, nil, fatalf("register has %d data rows, limit is %d", len(rows), MaxDataRows)
	}

	cols, ferr := resolveColumns(header)
	if ferr != nil {
		return nil, nil, ferr
	}

	table := &Table{}
	var rowErrs []RowError
	seen := make(map[string]bool)

	for i, row := range rows {
		rowNum := i + 2 // spreadsheet numbering, header is row 1

		cell := func(name string) string {
			idx, ok := cols[name]
			if !ok || idx >= len(row) {
				return ""
			}
			return row[idx]
		}

		var notes []Note
		text := func(field string) string {
			raw := cell(field)
			if raw != "" && strings.ContainsRune(formulaPrefixes, rune(raw[0])) {
				notes = append(notes, Note{Row: rowNum, Field: field, Text: "leading formula character neutralized"})
				return "'" + raw
			}
			return strings.TrimSpace(raw)
		}

		id := text(colID)
		asset := text(colAsset)
		threat := text(colThreat)
		vuln := text(colVulnerability)
		recommendation := text(colRecommendation)
		controlRefs := splitControlRefs(text(colControls))

		errsBefore := len(rowErrs)
		addErr := func(field, reason string) {
			rowErrs = append(rowErrs, RowError{Row: rowNum, ID: id, Field: field, Reason: reason})
		}

		if id == "" {
			addErr(colID, "required field is empty")
		} else if seen[id] {
			addErr(colID, "duplicate id, first occurrence kept")
			continue
		}
		if asset == "" {
			addErr(colAsset, "required field is empty")
		}
		if threat == "" {
			addErr(colThreat, "required field is empty")
		}
		if vuln == "" {
			addErr(colVulnerability, "required field is empty")
		}

		probability := checkRating(colProbability, cell(colProbability), addErr)
		impact := checkRating(colImpact, cell(colImpact), addErr)

		var decision model.Decision
		if raw := strings.TrimSpace(cell(colDecision)); raw == "" {
			addErr(colDecision, "required field is empty")
		} else if d, ok := model.ParseDecision(raw); ok {
			decision = d
		} else {
			addErr(colDecision, fmt.Sprintf("unknown decision %q, expected Avoid, Reduce, Transfer, or Accept", raw))
		}

		if len(rowErrs) > errsBefore {
			continue
		}

		seen[id] = true
		for j := range notes {
			notes[j].ID = id
		}
		table.Notes = append(table.Notes, notes...)
		table.Records = append(table.Records, model.RiskRecord{
			ID:             id,
			Asset:          asset,
			Threat:         threat,
			Vulnerability:  vuln,
			Probability:    probability,
			Impact:         impact,
			Decision:       decision,
			Recommendation: recommendation,
			ControlRefs:    controlRefs,
			Row:            rowNum,
		})
	}

	return table, rowErrs, nil
}

// resolveColumns maps canonical column names to header indexes.
// Canonical names win over aliases; the first occurrence of a name
// wins over later duplicates.
func resolveColumns(header []string) (map[string]int, *FatalError) {
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}

	lookup := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		if _, dup := lookup[key]; !dup {
			lookup[key] = i
		}
	}

	cols := make(map[string]int, len(knownColumns))
	for _, name := range knownColumns {
		if idx, ok := lookup[strings.ToLower(name)]; ok {
			cols[name] = idx
		}
	}
	for alias, name := range headerAliases {
		if _, have := cols[name]; have {
			continue
		}
		if idx, ok := lookup[alias]; ok {
			cols[name] = idx
		}
	}

	var missing []string
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fatalf("missing required columns: %s", strings.Join(missing, ", "))
	}
	return cols, nil
}

// checkRating parses a 1-5 rating cell, reporting coercion and range
// problems through addErr. Integral floats such as "4.0" are accepted,
// matching the numeric coercion of the spreadsheets this tool ingests.
func checkRating(field, raw string, addErr func(field, reason string)) int {
	s := strings.TrimSpace(raw)
	if s == "" {
		addErr(field, "required field is empty")
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil || f != math.Trunc(f) {
			addErr(field, fmt.Sprintf("value %q must be an integer", s))
			return 0
		}
		n = int(f)
	}
	if n < 1 || n > 5 {
		addErr(field, fmt.Sprintf("value %d outside range 1-5", n))
		return 0
	}
	return n
}

// splitControlRefs splits an explicit control-reference cell on
// semicolons or commas
func splitControlRefs(s string) []string {
	if s == "" {
		return nil
	}
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ';' || r == ',' })
	var refs []string
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			refs = append(refs, f)
		}
	}
	return refs
}
