package score

import (
	"testing"

	"github.com/ethanolivertroy/riskmatrix-tui/internal/model"
)

func rec(id string, probability, impact int) model.RiskRecord {
	return model.RiskRecord{
		ID:            id,
		Asset:         "Asset " + id,
		Threat:        "Threat " + id,
		Vulnerability: "Vulnerability " + id,
		Probability:   probability,
		Impact:        impact,
		Decision:      model.DecisionReduce,
	}
}

func TestRankOrdersByScoreDescending(t *testing.T) {
	records := []model.RiskRecord{
		rec("R001", 1, 1), // 1
		rec("R002", 5, 5), // 25
		rec("R003", 3, 4), // 12
	}

	ranked := Rank(records)

	want := []string{"R002", "R003", "R001"}
	for i, id := range want {
		if ranked.Records[i].ID != id {
			t.Errorf("rank %d = %s, want %s", i, ranked.Records[i].ID, id)
		}
	}
}

func TestRankTieBreakAscendingID(t *testing.T) {
	// R010 and R002 both score 12; lexical id order decides
	records := []model.RiskRecord{
		rec("R010", 3, 4),
		rec("R002", 4, 3),
		rec("R001", 2, 5), // 10
	}

	ranked := Rank(records)

	want := []string{"R002", "R010", "R001"}
	for i, id := range want {
		if ranked.Records[i].ID != id {
			t.Errorf("rank %d = %s, want %s", i, ranked.Records[i].ID, id)
		}
	}
}

func TestRankTotalOrderRegardlessOfInputOrder(t *testing.T) {
	forward := []model.RiskRecord{
		rec("R001", 3, 4), rec("R002", 4, 3), rec("R003", 5, 5), rec("R004", 1, 2),
	}
	backward := []model.RiskRecord{
		forward[3], forward[2], forward[1], forward[0],
	}

	a := Rank(forward)
	b := Rank(backward)

	for i := range a.Records {
		if a.Records[i].ID != b.Records[i].ID {
			t.Errorf("rank %d differs by input order: %s vs %s", i, a.Records[i].ID, b.Records[i].ID)
		}
	}
}

func TestRankIdempotent(t *testing.T) {
	records := []model.RiskRecord{
		rec("R003", 3, 4), rec("R001", 4, 3), rec("R002", 5, 5),
	}

	once := Rank(records)
	twice := Rank(once.Records)

	for i := range once.Records {
		if once.Records[i].ID != twice.Records[i].ID {
			t.Errorf("re-ranking changed position %d: %s vs %s", i, once.Records[i].ID, twice.Records[i].ID)
		}
	}
}

func TestRankDoesNotMutateInput(t *testing.T) {
	records := []model.RiskRecord{
		rec("R001", 1, 1), rec("R002", 5, 5),
	}

	Rank(records)

	if records[0].ID != "R001" || records[1].ID != "R002" {
		t.Error("Rank() modified its input slice")
	}
}

func TestTopRisks(t *testing.T) {
	ranked := Rank([]model.RiskRecord{
		rec("R001", 5, 5), // 25 Critical
		rec("R002", 4, 4), // 16 Critical
		rec("R003", 3, 4), // 12 High
		rec("R004", 2, 5), // 10 High
		rec("R005", 3, 3), // 9 Medium
		rec("R006", 1, 1), // 1 Low
	})

	tests := []struct {
		name string
		n    int
		want []string
	}{
		{"capped", 2, []string{"R001", "R002"}},
		{"cap above available", 10, []string{"R001", "R002", "R003", "R004"}},
		{"no cap", 0, []string{"R001", "R002", "R003", "R004"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			top := TopRisks(ranked, tt.n)
			if len(top) != len(tt.want) {
				t.Fatalf("TopRisks(%d) returned %d records, want %d", tt.n, len(top), len(tt.want))
			}
			for i, id := range tt.want {
				if top[i].ID != id {
					t.Errorf("top[%d] = %s, want %s", i, top[i].ID, id)
				}
			}
		})
	}
}

func TestTopRisksExcludesMediumAndLow(t *testing.T) {
	ranked := Rank([]model.RiskRecord{
		rec("R001", 3, 3), // 9 Medium
		rec("R002", 2, 2), // 4 Low
	})

	if top := TopRisks(ranked, 10); len(top) != 0 {
		t.Errorf("TopRisks() = %v, want none below High", top)
	}
}

func TestComputeStats(t *testing.T) {
	shared := rec("R003", 2, 5) // 10 High
	shared.Asset = "Asset R001"
	records := []model.RiskRecord{
		rec("R001", 5, 5), // 25 Critical
		rec("R002", 3, 3), // 9 Medium
		shared,
		rec("R004", 1, 2), // 2 Low
	}
	records[1].Decision = model.DecisionAccept

	stats := Compute(records)

	if stats.Total != 4 {
		t.Errorf("Total = %d, want 4", stats.Total)
	}
	if got := stats.BySeverity[model.SeverityCritical]; got != 1 {
		t.Errorf("Critical count = %d, want 1", got)
	}
	if got := stats.BySeverity[model.SeverityHigh]; got != 1 {
		t.Errorf("High count = %d, want 1", got)
	}
	if stats.CriticalHigh() != 2 {
		t.Errorf("CriticalHigh() = %d, want 2", stats.CriticalHigh())
	}
	if got := stats.ByDecision[model.DecisionAccept]; got != 1 {
		t.Errorf("Accept count = %d, want 1", got)
	}
	if got := stats.ByDecision[model.DecisionReduce]; got != 3 {
		t.Errorf("Reduce count = %d, want 3", got)
	}
	if stats.HighestScore != 25 {
		t.Errorf("HighestScore = %d, want 25", stats.HighestScore)
	}
	wantMean := float64(25+9+10+2) / 4
	if stats.MeanScore != wantMean {
		t.Errorf("MeanScore = %v, want %v", stats.MeanScore, wantMean)
	}

	if got := stats.Heatmap[4][4]; got != 1 {
		t.Errorf("Heatmap[4][4] = %d, want 1 (the 5x5 record)", got)
	}
	if got := stats.Heatmap[1][4]; got != 1 {
		t.Errorf("Heatmap[1][4] = %d, want 1 (the 2x5 record)", got)
	}

	if len(stats.TopAssets) == 0 || stats.TopAssets[0].Asset != "Asset R001" || stats.TopAssets[0].Count != 2 {
		t.Errorf("TopAssets = %v, want Asset R001 first with count 2", stats.TopAssets)
	}
}

func TestComputeStatsEmpty(t *testing.T) {
	stats := Compute(nil)
	if stats.Total != 0 || stats.MeanScore != 0 || stats.HighestScore != 0 {
		t.Errorf("empty stats = %+v, want zeros", stats)
	}
}
