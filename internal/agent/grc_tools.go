package agent

import (
	"fmt"
	"strings"

	"github.com/ethanolivertroy/riskmatrix-tui/internal/grc"
	"google.golang.org/adk/tool"
	"google.golang.org/adk/tool/functiontool"
)

// Shared GRC mapper over the builtin and supplemental catalogs, so the
// agent can answer for all five frameworks
var grcMapper = grc.NewMapper(grc.Builtin().Merge(grc.Supplemental()...))

// resolveFramework matches a user-supplied name against the catalog
// set, tolerating partial names like "iso" or "nist"
func resolveFramework(name string) (grc.Framework, bool) {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return "", false
	}
	for _, fw := range grcMapper.Catalogs().Frameworks() {
		if strings.Contains(strings.ToLower(string(fw)), needle) {
			return fw, true
		}
	}
	return "", false
}

// frameworkNames lists the catalog set's framework names for error messages
func frameworkNames() string {
	var names []string
	for _, fw := range grcMapper.Catalogs().Frameworks() {
		names = append(names, string(fw))
	}
	return strings.Join(names, ", ")
}

// parseDomain normalizes a user-supplied domain name ("access control",
// "data-protection") onto the catalog domain identifiers
func parseDomain(s string) (grc.Domain, bool) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.NewReplacer(" ", "_", "-", "_").Replace(normalized)
	d := grc.Domain(normalized)
	switch d {
	case grc.DomainAccessControl, grc.DomainNetworkSecurity, grc.DomainDeviceSecurity,
		grc.DomainDataProtection, grc.DomainLoggingMonitoring, grc.DomainGeneral:
		return d, true
	}
	return "", false
}

// --- GRC Tool Input/Output Types ---

// MapRiskParams for map_risk_to_controls tool
type MapRiskParams struct {
	RiskID    string `json:"risk_id" jsonschema:"Risk ID to map to controls (e.g., R012)"`
	Framework string `json:"framework,omitempty" jsonschema:"Framework to map against: ISO 27001, HIPAA, GDPR, NIST SP 800-53, or CIS Controls (default: all)"`
}

// FrameworkControls groups one framework's recommended controls
type FrameworkControls struct {
	Framework string        `json:"framework"`
	Controls  []grc.Control `json:"controls"`
}

// MapRiskResult for map_risk_to_controls tool
type MapRiskResult struct {
	Found    bool                `json:"found"`
	RiskID   string              `json:"risk_id"`
	Domain   string              `json:"domain,omitempty"`
	Mappings []FrameworkControls `json:"mappings,omitempty"`
}

// GetControlParams for get_control_details tool
type GetControlParams struct {
	ControlID string `json:"control_id" jsonschema:"Control ID (e.g., A.8.8, 164.312(b), Art. 32, AC-2)"`
	Framework string `json:"framework,omitempty" jsonschema:"Framework the control belongs to (default: search all)"`
}

// GetControlResult for get_control_details tool
type GetControlResult struct {
	Found     bool        `json:"found"`
	Framework string      `json:"framework,omitempty"`
	Control   grc.Control `json:"control,omitempty"`
}

// ListControlsParams for list_controls tool
type ListControlsParams struct {
	Framework string `json:"framework,omitempty" jsonschema:"Only list controls from this framework"`
	Domain    string `json:"domain,omitempty" jsonschema:"Only list controls for this security domain: access control, network security, device security, data protection, logging monitoring, or general"`
}

// ControlListing pairs a control with its framework
type ControlListing struct {
	Framework string      `json:"framework"`
	Control   grc.Control `json:"control"`
}

// ListControlsResult for list_controls tool
type ListControlsResult struct {
	Count    int              `json:"count"`
	Controls []ControlListing `json:"controls"`
}

// GapAnalysisParams for run_gap_analysis tool
type GapAnalysisParams struct {
	Framework       string `json:"framework,omitempty" jsonschema:"Only report the gap for this framework (default: all)"`
	ImplementedFile string `json:"implemented_file,omitempty" jsonschema:"Path to a file listing implemented control IDs, one per line (default: none implemented)"`
}

// GapAnalysisResult for run_gap_analysis tool
type GapAnalysisResult struct {
	RiskCount         int                `json:"risk_count"`
	ImplementedSource string             `json:"implemented_source,omitempty"`
	Frameworks        []grc.FrameworkGap `json:"frameworks"`
}

// --- GRC Tool Implementations ---

func mapRiskToControls(ctx tool.Context, params MapRiskParams) (MapRiskResult, error) {
	if err := ensureRegisterData(); err != nil {
		return MapRiskResult{}, fmt.Errorf("failed to load risk register: %w", err)
	}

	var frameworks []grc.Framework
	if params.Framework != "" {
		fw, ok := resolveFramework(params.Framework)
		if !ok {
			return MapRiskResult{}, fmt.Errorf("unknown framework %q, available: %s", params.Framework, frameworkNames())
		}
		frameworks = []grc.Framework{fw}
	} else {
		frameworks = grcMapper.Catalogs().Frameworks()
	}

	for _, rec := range registerCache.Records {
		if !strings.EqualFold(rec.ID, params.RiskID) {
			continue
		}

		result := MapRiskResult{
			Found:  true,
			RiskID: rec.ID,
			Domain: string(grc.ClassifyDomain(rec)),
		}
		for _, fw := range frameworks {
			match, err := grcMapper.MapRecord(rec, fw)
			if err != nil {
				return MapRiskResult{}, err
			}
			result.Mappings = append(result.Mappings, FrameworkControls{
				Framework: string(match.Framework),
				Controls:  match.Controls,
			})
		}
		return result, nil
	}

	return MapRiskResult{Found: false, RiskID: params.RiskID}, nil
}

func getControlDetails(ctx tool.Context, params GetControlParams) (GetControlResult, error) {
	catalogs := grcMapper.Catalogs()

	var search []grc.Framework
	if params.Framework != "" {
		fw, ok := resolveFramework(params.Framework)
		if !ok {
			return GetControlResult{}, fmt.Errorf("unknown framework %q, available: %s", params.Framework, frameworkNames())
		}
		search = []grc.Framework{fw}
	} else {
		search = catalogs.Frameworks()
	}

	for _, fw := range search {
		cat, ok := catalogs.Lookup(fw)
		if !ok {
			continue
		}
		if ctrl, ok := cat.Control(params.ControlID); ok {
			return GetControlResult{
				Found:     true,
				Framework: string(cat.Framework),
				Control:   ctrl,
			}, nil
		}
	}

	return GetControlResult{Found: false}, nil
}

func listControls(ctx tool.Context, params ListControlsParams) (ListControlsResult, error) {
	catalogs := grcMapper.Catalogs()

	var search []grc.Framework
	if params.Framework != "" {
		fw, ok := resolveFramework(params.Framework)
		if !ok {
			return ListControlsResult{}, fmt.Errorf("unknown framework %q, available: %s", params.Framework, frameworkNames())
		}
		search = []grc.Framework{fw}
	} else {
		search = catalogs.Frameworks()
	}

	var domain grc.Domain
	if params.Domain != "" {
		d, ok := parseDomain(params.Domain)
		if !ok {
			return ListControlsResult{}, fmt.Errorf("unknown domain %q", params.Domain)
		}
		domain = d
	}

	var listings []ControlListing
	for _, fw := range search {
		cat, ok := catalogs.Lookup(fw)
		if !ok {
			continue
		}
		controls := cat.Controls
		if domain != "" {
			controls = cat.ForDomain(domain)
		}
		for _, ctrl := range controls {
			listings = append(listings, ControlListing{
				Framework: string(cat.Framework),
				Control:   ctrl,
			})
		}
	}

	return ListControlsResult{
		Count:    len(listings),
		Controls: listings,
	}, nil
}

func runGapAnalysis(ctx tool.Context, params GapAnalysisParams) (GapAnalysisResult, error) {
	if err := ensureRegisterData(); err != nil {
		return GapAnalysisResult{}, fmt.Errorf("failed to load risk register: %w", err)
	}

	implemented := grc.ImplementedSet{}
	source := ""
	if params.ImplementedFile != "" {
		set, err := grc.LoadImplemented(params.ImplementedFile)
		if err != nil {
			return GapAnalysisResult{}, fmt.Errorf("failed to load implemented controls: %w", err)
		}
		implemented = set
		source = params.ImplementedFile
	}

	mapping := grcMapper.MapAll(registerCache.Records)
	report, err := grcMapper.AnalyzeGaps(mapping, implemented)
	if err != nil {
		return GapAnalysisResult{}, err
	}

	frameworks := report.Frameworks
	if params.Framework != "" {
		fw, ok := resolveFramework(params.Framework)
		if !ok {
			return GapAnalysisResult{}, fmt.Errorf("unknown framework %q, available: %s", params.Framework, frameworkNames())
		}
		var filtered []grc.FrameworkGap
		for _, gap := range report.Frameworks {
			if gap.Framework == fw {
				filtered = append(filtered, gap)
			}
		}
		frameworks = filtered
	}

	return GapAnalysisResult{
		RiskCount:         len(registerCache.Records),
		ImplementedSource: source,
		Frameworks:        frameworks,
	}, nil
}

// CreateGRCTools creates the compliance tools for the agent
func CreateGRCTools() ([]tool.Tool, error) {
	mapTool, err := functiontool.New(
		functiontool.Config{
			Name:        "map_risk_to_controls",
			Description: "Map a risk from the register to ISO 27001, HIPAA, GDPR, NIST SP 800-53, or CIS controls. Returns the risk's security domain and the recommended controls per framework.",
		},
		mapRiskToControls,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create map_risk_to_controls tool: %w", err)
	}

	getControlTool, err := functiontool.New(
		functiontool.Config{
			Name:        "get_control_details",
			Description: "Get detailed information about a specific compliance control including its name, description, and security domains.",
		},
		getControlDetails,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create get_control_details tool: %w", err)
	}

	listControlsTool, err := functiontool.New(
		functiontool.Config{
			Name:        "list_controls",
			Description: "List available compliance controls, optionally filtered by framework or security domain (e.g., 'access control', 'data protection').",
		},
		listControls,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create list_controls tool: %w", err)
	}

	gapTool, err := functiontool.New(
		functiontool.Config{
			Name:        "run_gap_analysis",
			Description: "Compare the controls recommended for the register against an implemented set and report recommended, implemented, and missing controls per framework.",
		},
		runGapAnalysis,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create run_gap_analysis tool: %w", err)
	}

	return []tool.Tool{mapTool, getControlTool, listControlsTool, gapTool}, nil
}
