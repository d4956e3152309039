// Package grc maps risk scenarios to compliance controls and computes
// per-framework gap reports
package grc

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Framework identifies a compliance framework by its display name
type Framework string

// Built-in frameworks. External catalogs may introduce others.
const (
	FrameworkISO27001 Framework = "ISO 27001"
	FrameworkHIPAA    Framework = "HIPAA"
	FrameworkGDPR     Framework = "GDPR"
)

// Supplemental frameworks, packaged but not part of Builtin().
const (
	FrameworkNIST80053   Framework = "NIST SP 800-53"
	FrameworkCISControls Framework = "CIS Controls"
)

// Domain is a coarse security domain used to route risk scenarios to
// controls
type Domain string

const (
	DomainAccessControl     Domain = "access_control"
	DomainNetworkSecurity   Domain = "network_security"
	DomainDeviceSecurity    Domain = "device_security"
	DomainDataProtection    Domain = "data_protection"
	DomainLoggingMonitoring Domain = "logging_monitoring"
	DomainGeneral           Domain = "general"
)

// Control is a single catalog entry
type Control struct {
	ID          string   `yaml:"id" json:"id"`
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description,omitempty" json:"description,omitempty"`
	Domains     []Domain `yaml:"domains,omitempty" json:"domains,omitempty"`
}

// Catalog is one framework's controls. Catalogs are versioned,
// read-only data: loaded once and never modified.
type Catalog struct {
	Framework Framework `yaml:"framework" json:"framework"`
	Version   string    `yaml:"version,omitempty" json:"version,omitempty"`
	Controls  []Control `yaml:"controls" json:"controls"`
}

// Control looks up a control by id, case-insensitively
func (c Catalog) Control(id string) (Control, bool) {
	for _, ctrl := range c.Controls {
		if strings.EqualFold(ctrl.ID, id) {
			return ctrl, true
		}
	}
	return Control{}, false
}

// ForDomain returns the controls tagged with the given domain, in
// catalog order
func (c Catalog) ForDomain(d Domain) []Control {
	var controls []Control
	for _, ctrl := range c.Controls {
		for _, cd := range ctrl.Domains {
			if cd == d {
				controls = append(controls, ctrl)
				break
			}
		}
	}
	return controls
}

func (c Catalog) validate() error {
	if strings.TrimSpace(string(c.Framework)) == "" {
		return fmt.Errorf("catalog has no framework name")
	}
	if len(c.Controls) == 0 {
		return fmt.Errorf("catalog %q has no controls", c.Framework)
	}
	seen := make(map[string]bool, len(c.Controls))
	for _, ctrl := range c.Controls {
		id := strings.ToLower(strings.TrimSpace(ctrl.ID))
		if id == "" {
			return fmt.Errorf("catalog %q has a control with no id", c.Framework)
		}
		if seen[id] {
			return fmt.Errorf("catalog %q has duplicate control id %q", c.Framework, ctrl.ID)
		}
		seen[id] = true
	}
	return nil
}

// CatalogSet is an immutable collection of catalogs keyed by framework
// name. Lookups are case-insensitive; iteration order is stable.
type CatalogSet struct {
	byName map[string]Catalog
	order  []Framework
}

// NewCatalogSet builds a set from the given catalogs. A later catalog
// with the same framework name replaces an earlier one, keeping its
// position in the order.
func NewCatalogSet(catalogs ...Catalog) CatalogSet {
	set := CatalogSet{byName: make(map[string]Catalog, len(catalogs))}
	for _, cat := range catalogs {
		key := strings.ToLower(string(cat.Framework))
		if _, exists := set.byName[key]; !exists {
			set.order = append(set.order, cat.Framework)
		}
		set.byName[key] = cat
	}
	return set
}

// Builtin returns the packaged ISO 27001, HIPAA, and GDPR catalogs
func Builtin() CatalogSet {
	return NewCatalogSet(iso27001Catalog, hipaaCatalog, gdprCatalog)
}

// Supplemental returns the packaged NIST SP 800-53 and CIS Controls
// catalogs, for merging into a set when a register is assessed against
// those frameworks too
func Supplemental() []Catalog {
	return []Catalog{nist80053Catalog, cisControlsCatalog}
}

// Frameworks returns the framework names in stable order
func (s CatalogSet) Frameworks() []Framework {
	out := make([]Framework, len(s.order))
	copy(out, s.order)
	return out
}

// Lookup returns the catalog for a framework name, case-insensitively
func (s CatalogSet) Lookup(fw Framework) (Catalog, bool) {
	cat, ok := s.byName[strings.ToLower(string(fw))]
	return cat, ok
}

// Merge returns a new set where the given catalogs override same-named
// members of s and any new frameworks are appended
func (s CatalogSet) Merge(catalogs ...Catalog) CatalogSet {
	merged := make([]Catalog, 0, len(s.order)+len(catalogs))
	for _, fw := range s.order {
		merged = append(merged, s.byName[strings.ToLower(string(fw))])
	}
	return NewCatalogSet(append(merged, catalogs...)...)
}

// LoadCatalogDir reads every .yaml/.yml catalog in dir, sorted by file
// name so load order is reproducible
func LoadCatalogDir(dir string) ([]Catalog, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading catalog directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if ext := filepath.Ext(entry.Name()); ext == ".yaml" || ext == ".yml" {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	var catalogs []Catalog
	for _, name := range names {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}
		var cat Catalog
		if err := yaml.Unmarshal(data, &cat); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", name, err)
		}
		if err := cat.validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		catalogs = append(catalogs, cat)
	}
	return catalogs, nil
}
