package tui

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"
	"github.com/ethanolivertroy/riskmatrix-tui/internal/model"
	"github.com/ethanolivertroy/riskmatrix-tui/internal/score"
)

// GetTopAssets returns the top N assets by risk count
func GetTopAssets(records []model.RiskRecord, n int) []score.AssetCount {
	assets := score.Compute(records).TopAssets
	if len(assets) > n {
		assets = assets[:n]
	}
	return assets
}

// severityRange is the score interval covered by a band
func severityRange(s model.Severity) string {
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

// decisionColor returns the chart color for a treatment decision
func decisionColor(d model.Decision) lipgloss.Color {
	switch d {
	case model.DecisionAvoid:
		return lipgloss.Color("#FF5F56")
	case model.DecisionReduce:
		return lipgloss.Color("#FFCC00")
	case model.DecisionTransfer:
		return lipgloss.Color("#00BFFF")
	default:
		return lipgloss.Color("#04B575")
	}
}

// RenderSeverityChart renders a bar chart of risks per severity band
func RenderSeverityChart(records []model.RiskRecord, width, height int) string {
	stats := score.Compute(records)
	if stats.Total == 0 {
		return "No risk data available"
	}

	var b strings.Builder

	// Title
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(PrimaryColor).
		Padding(0, 1).
		Render("Severity Distribution")
	b.WriteString(title)
	b.WriteString("\n\n")

	// Create bar chart
	bc := barchart.New(width-4, height-14,
		barchart.WithNoAutoBarWidth(),
		barchart.WithBarWidth(6),
		barchart.WithBarGap(2),
	)

	bands := []model.Severity{model.SeverityCritical, model.SeverityHigh, model.SeverityMedium, model.SeverityLow}
	var items []barchart.BarData
	for _, band := range bands {
		items = append(items, barchart.BarData{
			Label: band.String(),
			Values: []barchart.BarValue{{
				Name:  band.String(),
				Value: float64(stats.BySeverity[band]),
				Style: lipgloss.NewStyle().Foreground(SeverityColor(band)),
			}},
		})
	}
	bc.PushAll(items)
	bc.Draw()

	b.WriteString(bc.View())
	b.WriteString("\n\n")

	// Summary with score ranges and percentages
	for _, band := range bands {
		count := stats.BySeverity[band]
		pct := float64(count) / float64(stats.Total) * 100
		bandStyle := lipgloss.NewStyle().Foreground(SeverityColor(band)).Bold(true)
		b.WriteString(bandStyle.Render(fmt.Sprintf("%-8s (%5s): %d (%.1f%%)", band.String(), severityRange(band), count, pct)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	// Footer
	footerStyle := lipgloss.NewStyle().Foreground(SubtleColor)
	b.WriteString(footerStyle.Render("Score = probability x impact on the 1-25 scale"))
	b.WriteString("\n")
	b.WriteString(footerStyle.Render("g/esc back to charts menu"))

	return b.String()
}

// RenderDecisionChart renders a bar chart of risks per treatment decision
func RenderDecisionChart(records []model.RiskRecord, width, height int) string {
	stats := score.Compute(records)
	if stats.Total == 0 {
		return "No risk data available"
	}

	var b strings.Builder

	// Title
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(PrimaryColor).
		Padding(0, 1).
		Render("Treatment Decisions")
	b.WriteString(title)
	b.WriteString("\n\n")

	// Create bar chart
	bc := barchart.New(width-4, height-12,
		barchart.WithNoAutoBarWidth(),
		barchart.WithBarWidth(8),
		barchart.WithBarGap(2),
	)

	var items []barchart.BarData
	for _, d := range model.Decisions {
		items = append(items, barchart.BarData{
			Label: string(d),
			Values: []barchart.BarValue{{
				Name:  string(d),
				Value: float64(stats.ByDecision[d]),
				Style: lipgloss.NewStyle().Foreground(decisionColor(d)),
			}},
		})
	}
	bc.PushAll(items)
	bc.Draw()

	b.WriteString(bc.View())
	b.WriteString("\n\n")

	// Summary with percentages
	var parts []string
	for _, d := range model.Decisions {
		count := stats.ByDecision[d]
		pct := float64(count) / float64(stats.Total) * 100
		style := lipgloss.NewStyle().Foreground(decisionColor(d)).Bold(true)
		parts = append(parts, style.Render(fmt.Sprintf("%s: %d (%.1f%%)", d, count, pct)))
	}
	b.WriteString(strings.Join(parts, "  "))
	b.WriteString("\n\n")

	summaryStyle := lipgloss.NewStyle().Foreground(SubtleColor)
	b.WriteString(summaryStyle.Render(fmt.Sprintf("Total risks analyzed: %d", stats.Total)))
	b.WriteString("\n\n")

	// Footer
	footer := summaryStyle.Render("g/esc back to charts menu")
	b.WriteString(footer)

	return b.String()
}

// RenderAssetChart renders a bar chart of the assets carrying the most risks
func RenderAssetChart(records []model.RiskRecord, width, height int) string {
	return RenderAssetChartWithSelection(records, width, height, -1)
}

// RenderAssetChartWithSelection renders the asset chart with an optional selection highlight
func RenderAssetChartWithSelection(records []model.RiskRecord, width, height int, selectedIndex int) string {
	assets := GetTopAssets(records, 10)
	if len(assets) == 0 {
		return "No asset data available"
	}

	var b strings.Builder

	// Title
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(PrimaryColor).
		Padding(0, 1).
		Render("Top 10 Assets by Risk Count")
	b.WriteString(title)
	b.WriteString("\n\n")

	// Create bar chart
	bc := barchart.New(width-4, height-8,
		barchart.WithNoAutoBarWidth(),
		barchart.WithBarWidth(3),
		barchart.WithBarGap(1),
	)

	// Add bars with color gradient
	colors := []lipgloss.Color{
		lipgloss.Color("#9B0000"), // Critical red
		lipgloss.Color("#FF5F56"), // High red
		lipgloss.Color("#FF8C00"), // Orange
		lipgloss.Color("#FFCC00"), // Yellow
		lipgloss.Color("#04B575"), // Green
		lipgloss.Color("#04B575"),
		lipgloss.Color("#04B575"),
		lipgloss.Color("#04B575"),
		lipgloss.Color("#04B575"),
		lipgloss.Color("#04B575"),
	}

	var items []barchart.BarData
	for i, a := range assets {
		color := colors[i%len(colors)]
		items = append(items, barchart.BarData{
			Label: truncateString(a.Asset, 12),
			Values: []barchart.BarValue{{
				Name:  a.Asset,
				Value: float64(a.Count),
				Style: lipgloss.NewStyle().Foreground(color),
			}},
		})
	}
	bc.PushAll(items)
	bc.Draw()

	b.WriteString(bc.View())
	b.WriteString("\n\n")

	// Legend with full names and selection highlight
	for i, a := range assets {
		color := colors[i%len(colors)]
		marker := lipgloss.NewStyle().Foreground(color).Render("█")

		if i == selectedIndex {
			// Highlight selected asset
			selectedStyle := lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#FFFFFF")).
				Background(PrimaryColor)
			b.WriteString(fmt.Sprintf("%s %s\n", marker, selectedStyle.Render(fmt.Sprintf(" %s: %d ", a.Asset, a.Count))))
		} else {
			b.WriteString(fmt.Sprintf("%s %s: %d\n", marker, a.Asset, a.Count))
		}
	}

	// Footer
	b.WriteString("\n")
	footerStyle := lipgloss.NewStyle().Foreground(SubtleColor)
	footer := "j/k navigate • enter filter by asset • g/esc back"
	b.WriteString(footerStyle.Render(footer))

	return b.String()
}

// RenderHeatmap renders the probability x impact grid with per-cell counts
func RenderHeatmap(records []model.RiskRecord, width, height int) string {
	stats := score.Compute(records)
	if stats.Total == 0 {
		return "No risk data available"
	}

	var b strings.Builder

	// Title
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(PrimaryColor).
		Padding(0, 1).
		Render("Score Heatmap")
	b.WriteString(title)
	b.WriteString("\n\n")

	labelStyle := lipgloss.NewStyle().Foreground(SubtleColor)

	b.WriteString(labelStyle.Render("Probability"))
	b.WriteString("\n")

	// Rows run probability 5 down to 1 so high-likelihood risks sit on top
	for p := 5; p >= 1; p-- {
		b.WriteString(labelStyle.Render(fmt.Sprintf("     %d  ", p)))
		for i := 1; i <= 5; i++ {
			count := stats.Heatmap[p-1][i-1]
			b.WriteString(renderHeatmapCell(p, i, count))
			b.WriteString(" ")
		}
		b.WriteString("\n")
	}

	// Impact axis
	b.WriteString(labelStyle.Render("        "))
	for i := 1; i <= 5; i++ {
		b.WriteString(labelStyle.Render(fmt.Sprintf("  %d   ", i)))
	}
	b.WriteString("\n")
	b.WriteString(labelStyle.Render(fmt.Sprintf("%30s", "Impact")))
	b.WriteString("\n\n")

	// Summary
	summaryStyle := lipgloss.NewStyle().Foreground(SubtleColor)
	b.WriteString(summaryStyle.Render(fmt.Sprintf("Total: %d risks | Highest score: %d | Mean score: %.1f",
		stats.Total, stats.HighestScore, stats.MeanScore)))
	b.WriteString("\n\n")

	// Footer
	b.WriteString(summaryStyle.Render("Cell color follows the severity band of probability x impact"))
	b.WriteString("\n")
	b.WriteString(summaryStyle.Render("g/esc back to charts menu"))

	return b.String()
}

// renderHeatmapCell renders one grid cell colored by the band its score
// falls in. Empty cells stay subtle so occupied cells stand out.
func renderHeatmapCell(probability, impact, count int) string {
	if count == 0 {
		return lipgloss.NewStyle().Foreground(SubtleColor).Render("  ·  ")
	}
	sev := model.SeverityFor(probability * impact)
	fg := lipgloss.Color("#FFFFFF")
	if sev == model.SeverityMedium || sev == model.SeverityLow {
		fg = lipgloss.Color("#000000")
	}
	style := lipgloss.NewStyle().
		Bold(true).
		Foreground(fg).
		Background(SeverityColor(sev))
	return style.Render(fmt.Sprintf(" %2d  ", count))
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-1] + "."
}
