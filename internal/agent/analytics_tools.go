package agent

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ethanolivertroy/riskmatrix-tui/internal/grc"
	"github.com/ethanolivertroy/riskmatrix-tui/internal/model"
	"google.golang.org/adk/tool"
	"google.golang.org/adk/tool/functiontool"
)

// Exposure score calculation constants
const (
	// Asset exposure score weights
	ExposureMeanWeight     = 2.0  // Points per mean score point (1-25 -> 0-50)
	ExposureMeanCap        = 50.0 // Max points from mean score
	ExposureCriticalWeight = 10.0 // Points per Critical risk
	ExposureCriticalCap    = 30.0 // Max points from Critical risks
	ExposureAcceptedWeight = 5.0  // Points per accepted High or Critical risk
	ExposureAcceptedCap    = 20.0 // Max points from risky acceptances
	ExposureMaxTotal       = 100.0

	// Exposure level thresholds
	ExposureCriticalThreshold = 75.0
	ExposureHighThreshold     = 50.0
	ExposureMediumThreshold   = 25.0
)

// validateRiskID normalizes a risk ID parameter. Register IDs are
// dataset-defined, so only presence is checked here; lookups are
// case-insensitive.
func validateRiskID(input string) (string, error) {
	id := strings.TrimSpace(input)
	if id == "" {
		return "", fmt.Errorf("risk ID is required")
	}
	return id, nil
}

// acceptedSevere reports whether a record was accepted despite scoring
// High or Critical
func acceptedSevere(rec model.RiskRecord) bool {
	if rec.Decision != model.DecisionAccept {
		return false
	}
	sev := rec.Severity()
	return sev == model.SeverityHigh || sev == model.SeverityCritical
}

// bandRange returns the score interval for a severity band
func bandRange(s model.Severity) string {
	switch s {
	case model.SeverityCritical:
		return "16-25"
	case model.SeverityHigh:
		return "10-15"
	case model.SeverityMedium:
		return "5-9"
	default:
		return "1-4"
	}
}

func calculateAssetExposure(meanScore float64, criticalCount, acceptedCount int) float64 {
	// Base exposure from mean score
	baseScore := meanScore * ExposureMeanWeight
	if baseScore > ExposureMeanCap {
		baseScore = ExposureMeanCap
	}

	// Critical risk penalty
	criticalScore := float64(criticalCount) * ExposureCriticalWeight
	if criticalScore > ExposureCriticalCap {
		criticalScore = ExposureCriticalCap
	}

	// Risky acceptance penalty
	acceptedScore := float64(acceptedCount) * ExposureAcceptedWeight
	if acceptedScore > ExposureAcceptedCap {
		acceptedScore = ExposureAcceptedCap
	}

	total := baseScore + criticalScore + acceptedScore
	if total > ExposureMaxTotal {
		total = ExposureMaxTotal
	}

	return total
}

func getExposureLevel(score float64) string {
	switch {
	case score >= ExposureCriticalThreshold:
		return "CRITICAL"
	case score >= ExposureHighThreshold:
		return "HIGH"
	case score >= ExposureMediumThreshold:
		return "MEDIUM"
	default:
		return "LOW"
	}
}

// --- Related Risks Tool ---

// RelatedRisksParams for find_related_risks tool
type RelatedRisksParams struct {
	RiskID string `json:"risk_id,omitempty" jsonschema:"Find risks related to this risk ID"`
	Asset  string `json:"asset,omitempty" jsonschema:"Find risks on this asset"`
	Domain string `json:"domain,omitempty" jsonschema:"Find risks in this security domain (e.g., access control, data protection)"`
	Limit  int    `json:"limit,omitempty" jsonschema:"Maximum results (default 10)"`
}

// RelatedRiskItem represents a related risk with similarity info
type RelatedRiskItem struct {
	ID         string `json:"id"`
	Asset      string `json:"asset"`
	Threat     string `json:"threat"`
	Score      int    `json:"score"`
	Severity   string `json:"severity"`
	Decision   string `json:"decision"`
	Similarity string `json:"similarity_reason"`
}

// RelatedRisksResult for find_related_risks tool
type RelatedRisksResult struct {
	Query        string            `json:"query_description"`
	Count        int               `json:"count"`
	RelatedRisks []RelatedRiskItem `json:"related_risks"`
	CommonAsset  string            `json:"common_asset,omitempty"`
	CommonDomain string            `json:"common_domain,omitempty"`
}

func findRelatedRisks(ctx tool.Context, params RelatedRisksParams) (RelatedRisksResult, error) {
	if err := ensureRegisterData(); err != nil {
		return RelatedRisksResult{}, fmt.Errorf("failed to load risk register: %w", err)
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 10
	}

	var queryDesc string
	var sourceID, sourceAsset string
	var sourceDomain grc.Domain

	// If a risk ID is provided, find it first to get its attributes
	if params.RiskID != "" {
		riskID, err := validateRiskID(params.RiskID)
		if err != nil {
			return RelatedRisksResult{}, err
		}
		for _, rec := range registerCache.Records {
			if strings.EqualFold(rec.ID, riskID) {
				sourceID = rec.ID
				sourceAsset = rec.Asset
				sourceDomain = grc.ClassifyDomain(rec)
				queryDesc = fmt.Sprintf("Risks related to %s (%s, %s)", rec.ID, rec.Asset, sourceDomain)
				break
			}
		}
		if sourceID == "" {
			return RelatedRisksResult{Query: fmt.Sprintf("Risk %s not found", riskID)}, nil
		}
	}

	if params.Asset != "" && sourceAsset == "" {
		sourceAsset = params.Asset
	}
	if params.Domain != "" && sourceDomain == "" {
		d, ok := parseDomain(params.Domain)
		if !ok {
			return RelatedRisksResult{}, fmt.Errorf("unknown domain %q", params.Domain)
		}
		sourceDomain = d
	}

	// Build query description if not from a risk ID
	if queryDesc == "" {
		var parts []string
		if sourceAsset != "" {
			parts = append(parts, fmt.Sprintf("Asset: %s", sourceAsset))
		}
		if sourceDomain != "" {
			parts = append(parts, fmt.Sprintf("Domain: %s", sourceDomain))
		}
		if len(parts) == 0 {
			return RelatedRisksResult{}, fmt.Errorf("provide a risk ID, asset, or domain to search by")
		}
		queryDesc = "Risks matching: " + strings.Join(parts, ", ")
	}

	var results []RelatedRiskItem
	for _, rec := range registerCache.Records {
		// Skip the source risk itself
		if sourceID != "" && rec.ID == sourceID {
			continue
		}

		var reasons []string

		if sourceAsset != "" && strings.Contains(strings.ToLower(rec.Asset), strings.ToLower(sourceAsset)) {
			reasons = append(reasons, "Same asset")
		}
		if sourceDomain != "" && grc.ClassifyDomain(rec) == sourceDomain {
			reasons = append(reasons, fmt.Sprintf("Same domain (%s)", sourceDomain))
		}

		if len(reasons) > 0 {
			results = append(results, RelatedRiskItem{
				ID:         rec.ID,
				Asset:      rec.Asset,
				Threat:     rec.Threat,
				Score:      rec.Score(),
				Severity:   rec.Severity().String(),
				Decision:   string(rec.Decision),
				Similarity: strings.Join(reasons, ", "),
			})
		}
	}

	// Sort by score (highest risk first)
	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].ID < results[j].ID
	})

	if len(results) > limit {
		results = results[:limit]
	}

	return RelatedRisksResult{
		Query:        queryDesc,
		Count:        len(results),
		RelatedRisks: results,
		CommonAsset:  sourceAsset,
		CommonDomain: string(sourceDomain),
	}, nil
}

// --- Asset Risk Profile Tool ---

// AssetProfileParams for asset_risk_profile tool
type AssetProfileParams struct {
	Asset string `json:"asset" jsonschema:"Asset name to analyze"`
}

// AssetProfileResult for asset_risk_profile tool
type AssetProfileResult struct {
	Asset             string            `json:"asset"`
	Found             bool              `json:"found"`
	TotalRisks        int               `json:"total_risks"`
	MeanScore         float64           `json:"mean_score"`
	HighestScore      int               `json:"highest_score"`
	ExposureScore     float64           `json:"exposure_score"`
	ExposureLevel     string            `json:"exposure_level"`
	SeverityBreakdown SeverityBreakdown `json:"severity_breakdown"`
	DecisionBreakdown DecisionBreakdown `json:"decision_breakdown"`
	Domains           []string          `json:"domains"`
	AcceptedSevere    []RiskSummary     `json:"accepted_severe,omitempty"`
	TopRisks          []RiskSummary     `json:"top_risks"`
}

func getAssetRiskProfile(ctx tool.Context, params AssetProfileParams) (AssetProfileResult, error) {
	if err := ensureRegisterData(); err != nil {
		return AssetProfileResult{}, fmt.Errorf("failed to load risk register: %w", err)
	}

	asset := strings.ToLower(strings.TrimSpace(params.Asset))
	if asset == "" {
		return AssetProfileResult{Found: false}, nil
	}

	var matching []model.RiskRecord
	for _, rec := range registerCache.Records {
		if strings.Contains(strings.ToLower(rec.Asset), asset) {
			matching = append(matching, rec)
		}
	}

	if len(matching) == 0 {
		return AssetProfileResult{
			Asset: params.Asset,
			Found: false,
		}, nil
	}

	var severity SeverityBreakdown
	var decisions DecisionBreakdown
	var accepted []RiskSummary
	domainSeen := make(map[grc.Domain]bool)
	var domains []string
	scoreSum := 0
	highest := 0

	for _, rec := range matching {
		score := rec.Score()
		scoreSum += score
		if score > highest {
			highest = score
		}

		switch rec.Severity() {
		case model.SeverityCritical:
			severity.Critical++
		case model.SeverityHigh:
			severity.High++
		case model.SeverityMedium:
			severity.Medium++
		case model.SeverityLow:
			severity.Low++
		}

		switch rec.Decision {
		case model.DecisionAvoid:
			decisions.Avoid++
		case model.DecisionReduce:
			decisions.Reduce++
		case model.DecisionTransfer:
			decisions.Transfer++
		case model.DecisionAccept:
			decisions.Accept++
		}

		if d := grc.ClassifyDomain(rec); !domainSeen[d] {
			domainSeen[d] = true
			domains = append(domains, string(d))
		}

		if acceptedSevere(rec) {
			accepted = append(accepted, summarize(rec))
		}
	}

	meanScore := float64(scoreSum) / float64(len(matching))

	// Top risks by score
	sort.Slice(matching, func(i, j int) bool {
		si, sj := matching[i].Score(), matching[j].Score()
		if si != sj {
			return si > sj
		}
		return matching[i].ID < matching[j].ID
	})
	var topRisks []RiskSummary
	for i := 0; i < len(matching) && i < 5; i++ {
		topRisks = append(topRisks, summarize(matching[i]))
	}

	exposure := calculateAssetExposure(meanScore, severity.Critical, len(accepted))

	return AssetProfileResult{
		Asset:             params.Asset,
		Found:             true,
		TotalRisks:        len(matching),
		MeanScore:         meanScore,
		HighestScore:      highest,
		ExposureScore:     exposure,
		ExposureLevel:     getExposureLevel(exposure),
		SeverityBreakdown: severity,
		DecisionBreakdown: decisions,
		Domains:           domains,
		AcceptedSevere:    accepted,
		TopRisks:          topRisks,
	}, nil
}

// --- Batch Analyze Tool ---

// BatchAnalyzeParams for batch_analyze tool
type BatchAnalyzeParams struct {
	RiskIDs []string `json:"risk_ids" jsonschema:"List of risk IDs to analyze"`
}

// BatchRiskAnalysis is detailed analysis for one risk
type BatchRiskAnalysis struct {
	ID             string `json:"id"`
	Found          bool   `json:"found"`
	Asset          string `json:"asset,omitempty"`
	Threat         string `json:"threat,omitempty"`
	Score          int    `json:"score,omitempty"`
	Severity       string `json:"severity,omitempty"`
	Decision       string `json:"decision,omitempty"`
	Domain         string `json:"domain,omitempty"`
	AcceptedSevere bool   `json:"accepted_severe,omitempty"`
}

// BatchSummary provides aggregate stats
type BatchSummary struct {
	TotalAnalyzed       int      `json:"total_analyzed"`
	AvgScore            float64  `json:"avg_score"`
	MaxScore            int      `json:"max_score"`
	CriticalCount       int      `json:"critical_count"`
	HighCount           int      `json:"high_count"`
	MediumCount         int      `json:"medium_count"`
	LowCount            int      `json:"low_count"`
	AcceptedSevereCount int      `json:"accepted_severe_count"`
	CommonAssets        []string `json:"common_assets"`
	CommonDomains       []string `json:"common_domains"`
}

// BatchAnalyzeResult for batch_analyze tool
type BatchAnalyzeResult struct {
	Count    int                 `json:"count"`
	Found    int                 `json:"found"`
	NotFound []string            `json:"not_found,omitempty"`
	Risks    []BatchRiskAnalysis `json:"risks"`
	Summary  BatchSummary        `json:"summary"`
}

func batchAnalyze(ctx tool.Context, params BatchAnalyzeParams) (BatchAnalyzeResult, error) {
	if err := ensureRegisterData(); err != nil {
		return BatchAnalyzeResult{}, fmt.Errorf("failed to load risk register: %w", err)
	}

	if len(params.RiskIDs) == 0 {
		return BatchAnalyzeResult{}, fmt.Errorf("no risk IDs provided")
	}

	// Build lookup map for O(1) lookups
	recordMap := make(map[string]model.RiskRecord)
	for _, rec := range registerCache.Records {
		recordMap[strings.ToUpper(rec.ID)] = rec
	}

	var analyses []BatchRiskAnalysis
	var notFound []string
	assetCount := make(map[string]int)
	domainCount := make(map[string]int)
	var scoreSum, maxScore int
	var criticalCount, highCount, mediumCount, lowCount int
	var acceptedCount int

	for _, rawID := range params.RiskIDs {
		riskID, err := validateRiskID(rawID)
		if err != nil {
			continue
		}

		rec, found := recordMap[strings.ToUpper(riskID)]
		if !found {
			notFound = append(notFound, riskID)
			analyses = append(analyses, BatchRiskAnalysis{
				ID:    riskID,
				Found: false,
			})
			continue
		}

		score := rec.Score()
		scoreSum += score
		if score > maxScore {
			maxScore = score
		}

		switch rec.Severity() {
		case model.SeverityCritical:
			criticalCount++
		case model.SeverityHigh:
			highCount++
		case model.SeverityMedium:
			mediumCount++
		case model.SeverityLow:
			lowCount++
		}

		risky := acceptedSevere(rec)
		if risky {
			acceptedCount++
		}

		assetCount[rec.Asset]++
		domainCount[string(grc.ClassifyDomain(rec))]++

		analyses = append(analyses, BatchRiskAnalysis{
			ID:             rec.ID,
			Found:          true,
			Asset:          rec.Asset,
			Threat:         rec.Threat,
			Score:          score,
			Severity:       rec.Severity().String(),
			Decision:       string(rec.Decision),
			Domain:         string(grc.ClassifyDomain(rec)),
			AcceptedSevere: risky,
		})
	}

	// Sort analyses by score, missing IDs last
	sort.Slice(analyses, func(i, j int) bool {
		if !analyses[i].Found {
			return false
		}
		if !analyses[j].Found {
			return true
		}
		if analyses[i].Score != analyses[j].Score {
			return analyses[i].Score > analyses[j].Score
		}
		return analyses[i].ID < analyses[j].ID
	})

	// Get top assets
	var commonAssets []string
	type assetStat struct {
		asset string
		count int
	}
	var assetStats []assetStat
	for a, c := range assetCount {
		assetStats = append(assetStats, assetStat{a, c})
	}
	sort.Slice(assetStats, func(i, j int) bool {
		if assetStats[i].count != assetStats[j].count {
			return assetStats[i].count > assetStats[j].count
		}
		return assetStats[i].asset < assetStats[j].asset
	})
	for i := 0; i < len(assetStats) && i < 3; i++ {
		commonAssets = append(commonAssets, assetStats[i].asset)
	}

	// Get top domains
	var commonDomains []string
	type domainStat struct {
		domain string
		count  int
	}
	var domainStats []domainStat
	for d, c := range domainCount {
		domainStats = append(domainStats, domainStat{d, c})
	}
	sort.Slice(domainStats, func(i, j int) bool {
		if domainStats[i].count != domainStats[j].count {
			return domainStats[i].count > domainStats[j].count
		}
		return domainStats[i].domain < domainStats[j].domain
	})
	for i := 0; i < len(domainStats) && i < 3; i++ {
		commonDomains = append(commonDomains, domainStats[i].domain)
	}

	foundCount := 0
	for _, a := range analyses {
		if a.Found {
			foundCount++
		}
	}
	avgScore := 0.0
	if foundCount > 0 {
		avgScore = float64(scoreSum) / float64(foundCount)
	}

	return BatchAnalyzeResult{
		Count:    len(params.RiskIDs),
		Found:    foundCount,
		NotFound: notFound,
		Risks:    analyses,
		Summary: BatchSummary{
			TotalAnalyzed:       foundCount,
			AvgScore:            avgScore,
			MaxScore:            maxScore,
			CriticalCount:       criticalCount,
			HighCount:           highCount,
			MediumCount:         mediumCount,
			LowCount:            lowCount,
			AcceptedSevereCount: acceptedCount,
			CommonAssets:        commonAssets,
			CommonDomains:       commonDomains,
		},
	}, nil
}

// --- Severity Breakdown Tool ---

// SeverityBreakdownParams for severity_breakdown tool
type SeverityBreakdownParams struct{}

// BandStat is one severity band's share of the register
type BandStat struct {
	Band    string  `json:"band"`
	Range   string  `json:"range"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// SeverityBreakdownResult for severity_breakdown tool
type SeverityBreakdownResult struct {
	Total int        `json:"total"`
	Bands []BandStat `json:"bands"`
}

func getSeverityBreakdown(ctx tool.Context, params SeverityBreakdownParams) (SeverityBreakdownResult, error) {
	if err := ensureRegisterData(); err != nil {
		return SeverityBreakdownResult{}, fmt.Errorf("failed to load risk register: %w", err)
	}

	counts := make(map[model.Severity]int)
	for _, rec := range registerCache.Records {
		counts[rec.Severity()]++
	}

	total := len(registerCache.Records)
	bands := []model.Severity{model.SeverityCritical, model.SeverityHigh, model.SeverityMedium, model.SeverityLow}

	result := SeverityBreakdownResult{Total: total}
	for _, band := range bands {
		percent := 0.0
		if total > 0 {
			percent = float64(counts[band]) * 100 / float64(total)
		}
		result.Bands = append(result.Bands, BandStat{
			Band:    band.String(),
			Range:   bandRange(band),
			Count:   counts[band],
			Percent: percent,
		})
	}

	return result, nil
}

// --- Decision Breakdown Tool ---

// DecisionBreakdownParams for decision_breakdown tool
type DecisionBreakdownParams struct{}

// DecisionStat is one treatment decision's share of the register
type DecisionStat struct {
	Decision string  `json:"decision"`
	Count    int     `json:"count"`
	Percent  float64 `json:"percent"`
}

// DecisionBreakdownResult for decision_breakdown tool
type DecisionBreakdownResult struct {
	Total          int            `json:"total"`
	Decisions      []DecisionStat `json:"decisions"`
	AcceptedSevere []RiskSummary  `json:"accepted_severe,omitempty"`
}

func getDecisionBreakdown(ctx tool.Context, params DecisionBreakdownParams) (DecisionBreakdownResult, error) {
	if err := ensureRegisterData(); err != nil {
		return DecisionBreakdownResult{}, fmt.Errorf("failed to load risk register: %w", err)
	}

	counts := make(map[model.Decision]int)
	var accepted []RiskSummary
	for _, rec := range registerCache.Records {
		counts[rec.Decision]++
		if acceptedSevere(rec) {
			accepted = append(accepted, summarize(rec))
		}
	}

	sort.Slice(accepted, func(i, j int) bool {
		if accepted[i].Score != accepted[j].Score {
			return accepted[i].Score > accepted[j].Score
		}
		return accepted[i].ID < accepted[j].ID
	})

	total := len(registerCache.Records)
	result := DecisionBreakdownResult{Total: total, AcceptedSevere: accepted}
	for _, d := range model.Decisions {
		percent := 0.0
		if total > 0 {
			percent = float64(counts[d]) * 100 / float64(total)
		}
		result.Decisions = append(result.Decisions, DecisionStat{
			Decision: string(d),
			Count:    counts[d],
			Percent:  percent,
		})
	}

	return result, nil
}

// --- Domain Analysis Tool ---

// DomainAnalysisParams for domain_analysis tool
type DomainAnalysisParams struct {
	Domain string `json:"domain,omitempty" jsonschema:"Only analyze this security domain (default: all)"`
	Limit  int    `json:"limit,omitempty" jsonschema:"Maximum risks to list per domain (default 5)"`
}

// DomainStat summarizes one security domain's risks
type DomainStat struct {
	Domain       string        `json:"domain"`
	Count        int           `json:"count"`
	MeanScore    float64       `json:"mean_score"`
	CriticalHigh int           `json:"critical_high"`
	TopRisks     []RiskSummary `json:"top_risks,omitempty"`
}

// DomainAnalysisResult for domain_analysis tool
type DomainAnalysisResult struct {
	Total   int          `json:"total"`
	Domains []DomainStat `json:"domains"`
}

func analyzeDomains(ctx tool.Context, params DomainAnalysisParams) (DomainAnalysisResult, error) {
	if err := ensureRegisterData(); err != nil {
		return DomainAnalysisResult{}, fmt.Errorf("failed to load risk register: %w", err)
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 5
	}

	var filter grc.Domain
	if params.Domain != "" {
		d, ok := parseDomain(params.Domain)
		if !ok {
			return DomainAnalysisResult{}, fmt.Errorf("unknown domain %q", params.Domain)
		}
		filter = d
	}

	byDomain := make(map[grc.Domain][]model.RiskRecord)
	for _, rec := range registerCache.Records {
		d := grc.ClassifyDomain(rec)
		if filter != "" && d != filter {
			continue
		}
		byDomain[d] = append(byDomain[d], rec)
	}

	// Stable domain order
	order := []grc.Domain{
		grc.DomainAccessControl, grc.DomainNetworkSecurity, grc.DomainDeviceSecurity,
		grc.DomainDataProtection, grc.DomainLoggingMonitoring, grc.DomainGeneral,
	}

	result := DomainAnalysisResult{}
	for _, d := range order {
		records := byDomain[d]
		if len(records) == 0 {
			continue
		}

		scoreSum := 0
		criticalHigh := 0
		for _, rec := range records {
			scoreSum += rec.Score()
			if sev := rec.Severity(); sev == model.SeverityCritical || sev == model.SeverityHigh {
				criticalHigh++
			}
		}

		sort.Slice(records, func(i, j int) bool {
			si, sj := records[i].Score(), records[j].Score()
			if si != sj {
				return si > sj
			}
			return records[i].ID < records[j].ID
		})
		var topRisks []RiskSummary
		for i := 0; i < len(records) && i < limit; i++ {
			topRisks = append(topRisks, summarize(records[i]))
		}

		result.Total += len(records)
		result.Domains = append(result.Domains, DomainStat{
			Domain:       string(d),
			Count:        len(records),
			MeanScore:    float64(scoreSum) / float64(len(records)),
			CriticalHigh: criticalHigh,
			TopRisks:     topRisks,
		})
	}

	return result, nil
}

// CreateAnalyticsTools creates all analytics tools for the agent
func CreateAnalyticsTools() ([]tool.Tool, error) {
	relatedTool, err := functiontool.New(
		functiontool.Config{
			Name:        "find_related_risks",
			Description: "Find risks related to a specific risk, asset, or security domain. Useful for discovering clustered exposure or assessing the blast radius of a scenario.",
		},
		findRelatedRisks,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create find_related_risks tool: %w", err)
	}

	assetTool, err := functiontool.New(
		functiontool.Config{
			Name:        "asset_risk_profile",
			Description: "Get a comprehensive risk profile for an asset including totals, severity and decision breakdowns, risky acceptances, and an overall exposure score.",
		},
		getAssetRiskProfile,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create asset_risk_profile tool: %w", err)
	}

	batchTool, err := functiontool.New(
		functiontool.Config{
			Name:        "batch_analyze",
			Description: "Analyze multiple risks at once. Returns scores, bands, decisions, and domains for each risk plus aggregate statistics.",
		},
		batchAnalyze,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create batch_analyze tool: %w", err)
	}

	severityTool, err := functiontool.New(
		functiontool.Config{
			Name:        "severity_breakdown",
			Description: "Show how the register's risks distribute across the Low, Medium, High, and Critical bands.",
		},
		getSeverityBreakdown,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create severity_breakdown tool: %w", err)
	}

	decisionTool, err := functiontool.New(
		functiontool.Config{
			Name:        "decision_breakdown",
			Description: "Show how the register's risks distribute across treatment decisions, highlighting accepted risks that score High or Critical.",
		},
		getDecisionBreakdown,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create decision_breakdown tool: %w", err)
	}

	domainTool, err := functiontool.New(
		functiontool.Config{
			Name:        "domain_analysis",
			Description: "Group the register's risks by security domain (access control, network security, device security, data protection, logging and monitoring) with per-domain statistics.",
		},
		analyzeDomains,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create domain_analysis tool: %w", err)
	}

	return []tool.Tool{
		relatedTool,
		assetTool,
		batchTool,
		severityTool,
		decisionTool,
		domainTool,
	}, nil
}
