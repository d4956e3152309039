package model

import (
	"fmt"
	"strings"
)

// RiskItem wraps RiskRecord to implement list.Item interface
type RiskItem struct {
	RiskRecord
}

// Title returns the display title for the list
func (r RiskItem) Title() string {
	return r.Threat
}

// Description returns the secondary text for the list
func (r RiskItem) Description() string {
	return fmt.Sprintf("%s | %s | Score: %d (%s)", r.ID, r.Asset, r.Score(), r.Severity())
}

// FilterValue returns the string used for filtering
func (r RiskItem) FilterValue() string {
	return strings.Join([]string{
		r.ID,
		r.Asset,
		r.Threat,
		r.Vulnerability,
	}, " ")
}

// RiskSelectedMsg is sent when a risk is selected or deselected in the
// browser. A nil Risk clears the selection.
type RiskSelectedMsg struct {
	Risk *RiskItem
}
