package grc

import (
	"fmt"
	"strings"

	"github.com/ethanolivertroy/riskmatrix-tui/internal/model"
)

// UnknownFrameworkError is returned when a mapping or gap analysis
// references a framework absent from the catalog set
type UnknownFrameworkError struct {
	Framework Framework
}

func (e *UnknownFrameworkError) Error() string {
	return fmt.Sprintf("unknown framework %q", string(e.Framework))
}

// MatchStrategy decides which of a catalog's controls apply to a record
type MatchStrategy interface {
	Match(rec model.RiskRecord, cat Catalog) []Control
}

// domainKeywords routes scenario text to a security domain. Order
// matters: the first domain with a keyword hit wins. Matching is
// substring containment over the lowercased asset and threat text.
var domainKeywords = []struct {
	domain   Domain
	keywords []string
}{
	{DomainAccessControl, []string{
		"unauthorized access", "unauthorised access", "access control", "password",
		"credential", "login", "authentication", "mfa", "multi-factor",
	}},
	{DomainNetworkSecurity, []string{
		"network", "wifi", "wi-fi", "lan", "wan", "vpn", "switch", "router",
		"firewall", "segmentation", "segmented",
	}},
	{DomainDeviceSecurity, []string{
		"iomt", "medical device", "infusion pump", "ventilator", "endpoint",
		"workstation", "tablet", "laptop", "mobile", "bedside monitor",
		"pacemaker", "scanner",
	}},
	{DomainDataProtection, []string{
		"phi", "patient data", "health record", "ehr", "emr", "database",
		"backup", "encryption", "crypt", "pseudonymisation", "pseudonymization",
		"leak", "exfiltration",
	}},
	{DomainLoggingMonitoring, []string{
		"logging", "log", "monitoring", "siem", "ids", "suricata", "alert",
		"detection", "soc",
	}},
}

// ClassifyDomain assigns a record to a security domain by keyword
// matching over its asset and threat text. High and Critical records
// with no keyword hit escalate to data protection rather than falling
// through to general.
func ClassifyDomain(rec model.RiskRecord) Domain {
	text := strings.ToLower(rec.Asset + " " + rec.Threat)
	for _, dk := range domainKeywords {
		for _, kw := range dk.keywords {
			if strings.Contains(text, kw) {
				return dk.domain
			}
		}
	}
	if sev := rec.Severity(); sev == model.SeverityHigh || sev == model.SeverityCritical {
		return DomainDataProtection
	}
	return DomainGeneral
}

// DomainKeywordStrategy recommends the catalog controls tagged with the
// record's classified domain. This is the default strategy.
type DomainKeywordStrategy struct{}

func (DomainKeywordStrategy) Match(rec model.RiskRecord, cat Catalog) []Control {
	return cat.ForDomain(ClassifyDomain(rec))
}

// ControlRefStrategy resolves the explicit control references carried
// by the record against the catalog. References that belong to other
// frameworks or to no known control are skipped; a record without
// references matches nothing.
type ControlRefStrategy struct{}

func (ControlRefStrategy) Match(rec model.RiskRecord, cat Catalog) []Control {
	var controls []Control
	for _, ref := range rec.ControlRefs {
		if ctrl, ok := cat.Control(ref); ok {
			controls = append(controls, ctrl)
		}
	}
	return controls
}

// ControlMatch is the mapping result for one record against one
// framework. An empty Controls slice is a valid outcome and marks a
// coverage gap, not an error.
type ControlMatch struct {
	RecordID  string    `json:"record_id"`
	Framework Framework `json:"framework"`
	Domain    Domain    `json:"domain"`
	Controls  []Control `json:"controls"`
}

// ControlRef references a control within a framework
type ControlRef struct {
	Framework Framework `json:"framework"`
	ControlID string    `json:"control_id"`
}

// Mapping associates each record id with its recommended controls
// across every catalog in the set. Ids with no recommendations are
// still present.
type Mapping map[string][]ControlRef

// Mapper maps risk records to catalog controls. Mapping is
// deterministic for identical record and catalog inputs and has no
// side effects.
type Mapper struct {
	catalogs CatalogSet
	strategy MatchStrategy
}

// NewMapper creates a mapper over the given catalogs using the default
// keyword strategy
func NewMapper(catalogs CatalogSet) *Mapper {
	return &Mapper{catalogs: catalogs, strategy: DomainKeywordStrategy{}}
}

// SetStrategy replaces the matching strategy
func (m *Mapper) SetStrategy(s MatchStrategy) {
	m.strategy = s
}

// Catalogs returns the catalog set the mapper was built over
func (m *Mapper) Catalogs() CatalogSet {
	return m.catalogs
}

// MapRecord maps one record against one framework's catalog. The
// record's classified domain is always reported, whichever strategy is
// active.
func (m *Mapper) MapRecord(rec model.RiskRecord, fw Framework) (ControlMatch, error) {
	cat, ok := m.catalogs.Lookup(fw)
	if !ok {
		return ControlMatch{}, &UnknownFrameworkError{Framework: fw}
	}
	return ControlMatch{
		RecordID:  rec.ID,
		Framework: cat.Framework,
		Domain:    ClassifyDomain(rec),
		Controls:  m.strategy.Match(rec, cat),
	}, nil
}

// MapAll maps every record against every catalog in the set
func (m *Mapper) MapAll(records []model.RiskRecord) Mapping {
	mapping := make(Mapping, len(records))
	for _, rec := range records {
		refs := []ControlRef{}
		for _, fw := range m.catalogs.Frameworks() {
			match, err := m.MapRecord(rec, fw)
			if err != nil {
				continue
			}
			for _, ctrl := range match.Controls {
				refs = append(refs, ControlRef{Framework: match.Framework, ControlID: ctrl.ID})
			}
		}
		mapping[rec.ID] = refs
	}
	return mapping
}
