// Package score ranks validated risk registers and derives summary statistics
package score

import (
	"sort"

	"github.com/ethanolivertroy/riskmatrix-tui/internal/model"
)

// Ranked is a risk register ordered by descending score, ties broken
// by ascending id. The order is total, so ranking is reproducible
// regardless of input order and re-ranking is a no-op.
type Ranked struct {
	Records []model.RiskRecord
}

// Rank returns a ranked copy of records. The input slice is not
// modified.
func Rank(records []model.RiskRecord) Ranked {
	out := make([]model.RiskRecord, len(records))
	copy(out, records)
	sort.Slice(out, func(i, j int) bool {
		si, sj := out[i].Score(), out[j].Score()
		if si != sj {
			return si > sj
		}
		return out[i].ID < out[j].ID
	})
	return Ranked{Records: out}
}

// TopRisks returns the first n ranked records in the Critical or High
// bands. n <= 0 means no cap.
func TopRisks(ranked Ranked, n int) []model.RiskRecord {
	var top []model.RiskRecord
	for _, rec := range ranked.Records {
		if sev := rec.Severity(); sev != model.SeverityCritical && sev != model.SeverityHigh {
			continue
		}
		top = append(top, rec)
		if n > 0 && len(top) == n {
			break
		}
	}
	return top
}

// AssetCount pairs an asset name with its number of risks
type AssetCount struct {
	Asset string `json:"asset"`
	Count int    `json:"count"`
}

// Stats summarizes a register for charts, reports, and the agent
type Stats struct {
	Total        int                    `json:"total"`
	BySeverity   map[model.Severity]int `json:"-"`
	ByDecision   map[model.Decision]int `json:"-"`
	TopAssets    []AssetCount           `json:"top_assets"` // descending count, ties ascending name
	Heatmap      [5][5]int              `json:"-"`          // [probability-1][impact-1] counts
	HighestScore int                    `json:"highest_score"`
	MeanScore    float64                `json:"mean_score"`
}

// CriticalHigh returns the combined Critical and High record count
func (s Stats) CriticalHigh() int {
	return s.BySeverity[model.SeverityCritical] + s.BySeverity[model.SeverityHigh]
}

// Compute derives register statistics. Records with out-of-range
// ratings never reach this point, so every record lands in a heatmap
// cell.
func Compute(records []model.RiskRecord) Stats {
	stats := Stats{
		Total:      len(records),
		BySeverity: make(map[model.Severity]int),
		ByDecision: make(map[model.Decision]int),
	}

	assetCounts := make(map[string]int)
	scoreSum := 0
	for _, rec := range records {
		stats.BySeverity[rec.Severity()]++
		stats.ByDecision[rec.Decision]++
		assetCounts[rec.Asset]++
		stats.Heatmap[rec.Probability-1][rec.Impact-1]++

		score := rec.Score()
		scoreSum += score
		if score > stats.HighestScore {
			stats.HighestScore = score
		}
	}
	if stats.Total > 0 {
		stats.MeanScore = float64(scoreSum) / float64(stats.Total)
	}

	for asset, count := range assetCounts {
		stats.TopAssets = append(stats.TopAssets, AssetCount{Asset: asset, Count: count})
	}
	sort.Slice(stats.TopAssets, func(i, j int) bool {
		if stats.TopAssets[i].Count != stats.TopAssets[j].Count {
			return stats.TopAssets[i].Count > stats.TopAssets[j].Count
		}
		return stats.TopAssets[i].Asset < stats.TopAssets[j].Asset
	})

	return stats
}
