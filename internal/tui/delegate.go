package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ethanolivertroy/riskmatrix-tui/internal/model"
)

// RiskDelegate is a custom delegate for rendering risk register items
type RiskDelegate struct {
	ShowDescription bool
	Styles          RiskDelegateStyles
}

// RiskDelegateStyles contains the styles for the delegate
type RiskDelegateStyles struct {
	NormalTitle   lipgloss.Style
	NormalDesc    lipgloss.Style
	SelectedTitle lipgloss.Style
	SelectedDesc  lipgloss.Style
	DimmedTitle   lipgloss.Style
	DimmedDesc    lipgloss.Style
	IDStyle       lipgloss.Style
}

// NewRiskDelegate creates a new delegate with default styles
func NewRiskDelegate() RiskDelegate {
	return RiskDelegate{
		ShowDescription: true,
		Styles: RiskDelegateStyles{
			NormalTitle:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")),
			NormalDesc:    lipgloss.NewStyle().Foreground(SubtleColor),
			SelectedTitle: lipgloss.NewStyle().Foreground(PrimaryColor).Bold(true),
			SelectedDesc:  lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")),
			DimmedTitle:   lipgloss.NewStyle().Foreground(SubtleColor),
			DimmedDesc:    lipgloss.NewStyle().Foreground(SubtleColor),
			IDStyle:       lipgloss.NewStyle().Foreground(SecondaryColor).Bold(true),
		},
	}
}

// Height returns the height of each item
func (d RiskDelegate) Height() int {
	if d.ShowDescription {
		return 2
	}
	return 1
}

// Spacing returns the spacing between items
func (d RiskDelegate) Spacing() int {
	return 1
}

// Update handles item updates
func (d RiskDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd {
	return nil
}

// Render renders a single item
func (d RiskDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	risk, ok := item.(model.RiskItem)
	if !ok {
		return
	}

	isSelected := index == m.Index()
	isFiltering := m.FilterState() == list.Filtering

	var titleStyle, descStyle, idStyle lipgloss.Style
	if isFiltering {
		titleStyle = d.Styles.DimmedTitle
		descStyle = d.Styles.DimmedDesc
		idStyle = d.Styles.DimmedTitle
	} else if isSelected {
		titleStyle = d.Styles.SelectedTitle
		descStyle = d.Styles.SelectedDesc
		idStyle = d.Styles.IDStyle
	} else {
		titleStyle = d.Styles.NormalTitle
		descStyle = d.Styles.NormalDesc
		idStyle = d.Styles.IDStyle
	}

	// Build the title line with the record id prefix
	idPrefix := idStyle.Render(fmt.Sprintf("[%s]", risk.ID))
	title := titleStyle.Render(" " + risk.Title())

	// Severity badge for the derived score band
	indicators := " " + SeverityBadge(risk.Severity())

	line := idPrefix + title + indicators

	if isSelected {
		line = SelectedItemStyle.Render(line)
	} else {
		line = NormalItemStyle.Render(line)
	}

	fmt.Fprint(w, line)

	if d.ShowDescription {
		descText := fmt.Sprintf("%s | %s %s", risk.Asset, ScoreBar(risk.Score(), 10), DecisionTag(risk.Decision))
		desc := descStyle.Render(descText)
		if isSelected {
			desc = SelectedItemStyle.Render(desc)
		} else {
			desc = NormalItemStyle.Render(desc)
		}
		fmt.Fprint(w, "\n"+desc)
	}
}
