package agent

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ethanolivertroy/riskmatrix-tui/internal/grc"
	"github.com/ethanolivertroy/riskmatrix-tui/internal/model"
	"github.com/ethanolivertroy/riskmatrix-tui/internal/register"
	"github.com/ethanolivertroy/riskmatrix-tui/internal/score"
	"github.com/ethanolivertroy/riskmatrix-tui/internal/tui"
	"google.golang.org/adk/tool"
	"google.golang.org/adk/tool/functiontool"
)

// Shared register cache (protected by sync.Once for thread-safe initialization)
var (
	registerCache     *register.Table
	registerSkipped   int
	registerIsSample  bool
	registerCacheOnce sync.Once
	registerCacheErr  error
)

// getExportDir returns the safe export directory for agent-generated files
func getExportDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	exportDir := filepath.Join(homeDir, ".riskmatrix-tui-exports")
	if err := os.MkdirAll(exportDir, 0700); err != nil {
		return "."
	}
	return exportDir
}

// registerPath returns the register file the agent works against,
// from RISK_REGISTER or the conventional default.
func registerPath() string {
	if path := os.Getenv("RISK_REGISTER"); path != "" {
		return path
	}
	return "risk_matrix.csv"
}

// ensureRegisterData loads and validates the register if not already cached.
// Uses sync.Once for thread-safe initialization in concurrent server mode.
// A missing file falls back to the built-in sample register; a file that
// exists but fails validation is an error.
func ensureRegisterData() error {
	registerCacheOnce.Do(func() {
		path := registerPath()
		if _, err := os.Stat(path); err != nil {
			registerCache = register.Sample()
			registerIsSample = true
			return
		}

		table, rowErrs, err := register.Load(path)
		if err != nil {
			registerCacheErr = err
			return
		}
		registerCache = table
		registerSkipped = len(rowErrs)
	})
	return registerCacheErr
}

// --- Tool Input/Output Types ---

// SearchParams for search_risks tool
type SearchParams struct {
	Query    string `json:"query,omitempty" jsonschema:"Search term to match against risk ID, asset, threat, vulnerability, or recommendation"`
	Asset    string `json:"asset,omitempty" jsonschema:"Filter by asset name"`
	Decision string `json:"decision,omitempty" jsonschema:"Filter by treatment decision: Avoid, Reduce, Transfer, or Accept"`
	Severity string `json:"severity,omitempty" jsonschema:"Filter by severity band: Low, Medium, High, or Critical"`
	Limit    int    `json:"limit,omitempty" jsonschema:"Maximum number of results to return (default 10)"`
}

// SearchResult for search_risks tool
type SearchResult struct {
	Count   int           `json:"count"`
	Results []RiskSummary `json:"results"`
}

// RiskSummary is a condensed view of a risk record
type RiskSummary struct {
	ID          string `json:"id"`
	Asset       string `json:"asset"`
	Threat      string `json:"threat"`
	Probability int    `json:"probability"`
	Impact      int    `json:"impact"`
	Score       int    `json:"score"`
	Severity    string `json:"severity"`
	Decision    string `json:"decision"`
}

// RiskDetailsParams for get_risk_details tool
type RiskDetailsParams struct {
	RiskID string `json:"risk_id" jsonschema:"The risk ID to look up (e.g., R012)"`
}

// RiskDetailsResult for get_risk_details tool
type RiskDetailsResult struct {
	Found            bool     `json:"found"`
	ID               string   `json:"id,omitempty"`
	Asset            string   `json:"asset,omitempty"`
	Threat           string   `json:"threat,omitempty"`
	Vulnerability    string   `json:"vulnerability,omitempty"`
	Probability      int      `json:"probability,omitempty"`
	ProbabilityLabel string   `json:"probability_label,omitempty"`
	Impact           int      `json:"impact,omitempty"`
	ImpactLabel      string   `json:"impact_label,omitempty"`
	Score            int      `json:"score,omitempty"`
	Severity         string   `json:"severity,omitempty"`
	Decision         string   `json:"decision,omitempty"`
	Recommendation   string   `json:"recommendation,omitempty"`
	ControlRefs      []string `json:"control_refs,omitempty"`
	Domain           string   `json:"domain,omitempty"`
}

// TopRisksParams for list_top_risks tool
type TopRisksParams struct {
	Severity string `json:"severity,omitempty" jsonschema:"Only return risks in this severity band: Low, Medium, High, or Critical"`
	Limit    int    `json:"limit,omitempty" jsonschema:"Maximum number of results to return (default 10)"`
}

// TopRisksResult for list_top_risks tool
type TopRisksResult struct {
	Count   int           `json:"count"`
	Total   int           `json:"total"`
	Results []RiskSummary `json:"results"`
}

// StatsParams for get_register_stats tool
type StatsParams struct {
	TopN int `json:"top_n,omitempty" jsonschema:"Number of top assets to return (default 10)"`
}

// StatsResult for get_register_stats tool
type StatsResult struct {
	TotalRisks        int                `json:"total_risks"`
	SkippedRows       int                `json:"skipped_rows,omitempty"`
	Source            string             `json:"source"`
	SampleData        bool               `json:"sample_data,omitempty"`
	HighestScore      int                `json:"highest_score"`
	MeanScore         float64            `json:"mean_score"`
	SeverityBreakdown SeverityBreakdown  `json:"severity_breakdown"`
	DecisionBreakdown DecisionBreakdown  `json:"decision_breakdown"`
	TopAssets         []score.AssetCount `json:"top_assets"`
}

// SeverityBreakdown for stats
type SeverityBreakdown struct {
	Critical int `json:"critical"`
	High     int `json:"high"`
	Medium   int `json:"medium"`
	Low      int `json:"low"`
}

// DecisionBreakdown for stats
type DecisionBreakdown struct {
	Avoid    int `json:"avoid"`
	Reduce   int `json:"reduce"`
	Transfer int `json:"transfer"`
	Accept   int `json:"accept"`
}

// ExportParams for export_report tool
type ExportParams struct {
	Format string `json:"format" jsonschema:"Export format: json, csv, or markdown"`
	Query  string `json:"query,omitempty" jsonschema:"Optional search filter to apply before export"`
}

// ExportResult for export_report tool
type ExportResult struct {
	Success  bool   `json:"success"`
	FilePath string `json:"file_path,omitempty"`
	Count    int    `json:"count,omitempty"`
	Error    string `json:"error,omitempty"`
}

func summarize(rec model.RiskRecord) RiskSummary {
	return RiskSummary{
		ID:          rec.ID,
		Asset:       rec.Asset,
		Threat:      rec.Threat,
		Probability: rec.Probability,
		Impact:      rec.Impact,
		Score:       rec.Score(),
		Severity:    rec.Severity().String(),
		Decision:    string(rec.Decision),
	}
}

// matchesQuery reports whether any searchable field of rec contains the
// lowercased query
func matchesQuery(rec model.RiskRecord, query string) bool {
	return strings.Contains(strings.ToLower(rec.ID), query) ||
		strings.Contains(strings.ToLower(rec.Asset), query) ||
		strings.Contains(strings.ToLower(rec.Threat), query) ||
		strings.Contains(strings.ToLower(rec.Vulnerability), query) ||
		strings.Contains(strings.ToLower(rec.Recommendation), query)
}

// --- Tool Implementations ---

func searchRisks(ctx tool.Context, params SearchParams) (SearchResult, error) {
	if err := ensureRegisterData(); err != nil {
		return SearchResult{}, fmt.Errorf("failed to load risk register: %w", err)
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 10
	}

	query := strings.ToLower(params.Query)
	asset := strings.ToLower(params.Asset)

	var decision model.Decision
	if params.Decision != "" {
		d, ok := model.ParseDecision(params.Decision)
		if !ok {
			return SearchResult{}, fmt.Errorf("unknown decision %q, use Avoid, Reduce, Transfer, or Accept", params.Decision)
		}
		decision = d
	}

	var results []RiskSummary
	for _, rec := range registerCache.Records {
		// Filter by asset if specified
		if asset != "" && !strings.Contains(strings.ToLower(rec.Asset), asset) {
			continue
		}

		// Filter by decision if specified
		if decision != "" && rec.Decision != decision {
			continue
		}

		// Filter by severity band if specified
		if params.Severity != "" && !strings.EqualFold(rec.Severity().String(), params.Severity) {
			continue
		}

		// Match query against multiple fields
		if query != "" && !matchesQuery(rec, query) {
			continue
		}

		results = append(results, summarize(rec))
		if len(results) >= limit {
			break
		}
	}

	return SearchResult{
		Count:   len(results),
		Results: results,
	}, nil
}

func getRiskDetails(ctx tool.Context, params RiskDetailsParams) (RiskDetailsResult, error) {
	if err := ensureRegisterData(); err != nil {
		return RiskDetailsResult{}, fmt.Errorf("failed to load risk register: %w", err)
	}

	for _, rec := range registerCache.Records {
		if strings.EqualFold(rec.ID, params.RiskID) {
			return RiskDetailsResult{
				Found:            true,
				ID:               rec.ID,
				Asset:            rec.Asset,
				Threat:           rec.Threat,
				Vulnerability:    rec.Vulnerability,
				Probability:      rec.Probability,
				ProbabilityLabel: model.ProbabilityLabel(rec.Probability),
				Impact:           rec.Impact,
				ImpactLabel:      model.ImpactLabel(rec.Impact),
				Score:            rec.Score(),
				Severity:         rec.Severity().String(),
				Decision:         string(rec.Decision),
				Recommendation:   rec.Recommendation,
				ControlRefs:      rec.ControlRefs,
				Domain:           string(grc.ClassifyDomain(rec)),
			}, nil
		}
	}

	return RiskDetailsResult{Found: false}, nil
}

func listTopRisks(ctx tool.Context, params TopRisksParams) (TopRisksResult, error) {
	if err := ensureRegisterData(); err != nil {
		return TopRisksResult{}, fmt.Errorf("failed to load risk register: %w", err)
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 10
	}

	ranked := score.Rank(registerCache.Records)

	var results []RiskSummary
	total := 0
	for _, rec := range ranked.Records {
		if params.Severity != "" && !strings.EqualFold(rec.Severity().String(), params.Severity) {
			continue
		}
		total++
		if len(results) < limit {
			results = append(results, summarize(rec))
		}
	}

	return TopRisksResult{
		Count:   len(results),
		Total:   total,
		Results: results,
	}, nil
}

func getRegisterStats(ctx tool.Context, params StatsParams) (StatsResult, error) {
	if err := ensureRegisterData(); err != nil {
		return StatsResult{}, fmt.Errorf("failed to load risk register: %w", err)
	}

	topN := params.TopN
	if topN <= 0 {
		topN = 10
	}

	stats := score.Compute(registerCache.Records)
	topAssets := tui.GetTopAssets(registerCache.Records, topN)

	return StatsResult{
		TotalRisks:   stats.Total,
		SkippedRows:  registerSkipped,
		Source:       registerCache.Source,
		SampleData:   registerIsSample,
		HighestScore: stats.HighestScore,
		MeanScore:    stats.MeanScore,
		SeverityBreakdown: SeverityBreakdown{
			Critical: stats.BySeverity[model.SeverityCritical],
			High:     stats.BySeverity[model.SeverityHigh],
			Medium:   stats.BySeverity[model.SeverityMedium],
			Low:      stats.BySeverity[model.SeverityLow],
		},
		DecisionBreakdown: DecisionBreakdown{
			Avoid:    stats.ByDecision[model.DecisionAvoid],
			Reduce:   stats.ByDecision[model.DecisionReduce],
			Transfer: stats.ByDecision[model.DecisionTransfer],
			Accept:   stats.ByDecision[model.DecisionAccept],
		},
		TopAssets: topAssets,
	}, nil
}

func exportReport(ctx tool.Context, params ExportParams) (ExportResult, error) {
	if err := ensureRegisterData(); err != nil {
		return ExportResult{Success: false, Error: err.Error()}, nil
	}

	format, ok := tui.ParseExportFormat(params.Format)
	if !ok {
		return ExportResult{Success: false, Error: "invalid format, use json, csv, or markdown"}, nil
	}

	// Filter if query provided
	records := registerCache.Records
	if params.Query != "" {
		query := strings.ToLower(params.Query)
		var filtered []model.RiskRecord
		for _, rec := range registerCache.Records {
			if matchesQuery(rec, query) {
				filtered = append(filtered, rec)
			}
		}
		records = filtered
	}

	// Use safe export directory (not current working directory)
	outputDir := getExportDir()

	result := tui.Export(records, format, outputDir)
	if result.Err != nil {
		return ExportResult{Success: false, Error: result.Err.Error()}, nil
	}

	return ExportResult{
		Success:  true,
		FilePath: result.FilePath,
		Count:    result.Count,
	}, nil
}

// CreateTools creates the register tools for the agent
func CreateTools() ([]tool.Tool, error) {
	searchTool, err := functiontool.New(
		functiontool.Config{
			Name:        "search_risks",
			Description: "Search the risk register by keyword, asset, treatment decision, or severity band",
		},
		searchRisks,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create search_risks tool: %w", err)
	}

	detailsTool, err := functiontool.New(
		functiontool.Config{
			Name:        "get_risk_details",
			Description: "Get detailed information about a specific risk, including its score, severity band, and treatment decision",
		},
		getRiskDetails,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create get_risk_details tool: %w", err)
	}

	topTool, err := functiontool.New(
		functiontool.Config{
			Name:        "list_top_risks",
			Description: "List the highest-scored risks in the register, optionally limited to one severity band",
		},
		listTopRisks,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create list_top_risks tool: %w", err)
	}

	statsTool, err := functiontool.New(
		functiontool.Config{
			Name:        "get_register_stats",
			Description: "Get summary statistics about the risk register including totals, severity and decision breakdowns, and top assets",
		},
		getRegisterStats,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create get_register_stats tool: %w", err)
	}

	exportTool, err := functiontool.New(
		functiontool.Config{
			Name:        "export_report",
			Description: "Export the risk register to a file in JSON, CSV, or Markdown format",
		},
		exportReport,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create export_report tool: %w", err)
	}

	return []tool.Tool{
		searchTool,
		detailsTool,
		topTool,
		statsTool,
		exportTool,
	}, nil
}
