package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/ethanolivertroy/riskmatrix-tui/internal/model"
)

// Colors (theme-aware - updated by theme.go)
var (
	PrimaryColor   = lipgloss.Color("#7D56F4")
	SecondaryColor = lipgloss.Color("#04B575")
	WarningColor   = lipgloss.Color("#FFCC00")
	ErrorColor     = lipgloss.Color("#FF5F56")
	SubtleColor    = lipgloss.Color("#626262")
	DecisionColor  = lipgloss.Color("#00BFFF")
	NoteColor      = lipgloss.Color("#DDA0DD")
	// Severity band colors
	CriticalColor = lipgloss.Color("#FF0000")
	HighColor     = lipgloss.Color("#FF6B00")
	MediumColor   = lipgloss.Color("#FFD700")
	LowColor      = lipgloss.Color("#90EE90")
)

// Styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(PrimaryColor).
			Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	// Detail view styles
	LabelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			Width(16)

	ValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	DescriptionStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#CCCCCC")).
				Width(80)

	NoteStyle = lipgloss.NewStyle().
			Foreground(NoteColor)

	// Badge styles
	IDBadge = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(PrimaryColor).
		Padding(0, 1)

	// List item styles
	SelectedItemStyle = lipgloss.NewStyle().
				BorderLeft(true).
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(PrimaryColor).
				PaddingLeft(1)

	NormalItemStyle = lipgloss.NewStyle().
			PaddingLeft(2)

	DimmedItemStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			PaddingLeft(2)
)

// SeverityColor returns the theme color for a severity band
func SeverityColor(sev model.Severity) lipgloss.Color {
	switch sev {
	case model.SeverityCritical:
		return CriticalColor
	case model.SeverityHigh:
		return HighColor
	case model.SeverityMedium:
		return MediumColor
	default:
		return LowColor
	}
}

// SeverityBadge returns a colored badge for a severity band
func SeverityBadge(sev model.Severity) string {
	fg := lipgloss.Color("#FFFFFF")
	if sev == model.SeverityMedium || sev == model.SeverityLow {
		fg = lipgloss.Color("#000000")
	}
	style := lipgloss.NewStyle().
		Bold(true).
		Foreground(fg).
		Background(SeverityColor(sev)).
		Padding(0, 1)
	return style.Render(strings.ToUpper(sev.String()))
}

// ScoreBar returns a visual bar for a risk score on the 1-25 scale
func ScoreBar(score int, width int) string {
	if score <= 0 || width <= 0 {
		return ""
	}
	filled := score * width / 25
	if filled < 1 {
		filled = 1
	}
	if filled > width {
		filled = width
	}
	empty := width - filled

	filledStyle := lipgloss.NewStyle().Foreground(SeverityColor(model.SeverityFor(score)))
	emptyStyle := lipgloss.NewStyle().Foreground(SubtleColor)

	return filledStyle.Render(strings.Repeat("█", filled)) +
		emptyStyle.Render(strings.Repeat("░", empty))
}

// DecisionTag returns a colored treatment-decision tag
func DecisionTag(d model.Decision) string {
	if d == "" {
		return ""
	}
	return lipgloss.NewStyle().Foreground(DecisionColor).Render(fmt.Sprintf("[%s]", d))
}

// ScoreBadge returns a colored score badge, e.g. "20 CRITICAL"
func ScoreBadge(score int) string {
	sev := model.SeverityFor(score)
	fg := lipgloss.Color("#FFFFFF")
	if sev == model.SeverityMedium || sev == model.SeverityLow {
		fg = lipgloss.Color("#000000")
	}
	style := lipgloss.NewStyle().
		Bold(true).
		Foreground(fg).
		Background(SeverityColor(sev)).
		Padding(0, 1)
	return style.Render(fmt.Sprintf("%d %s", score, strings.ToUpper(sev.String())))
}

// StatsStyle for statistics header
var StatsStyle = lipgloss.NewStyle().
	Foreground(SubtleColor).
	Padding(0, 1)

// StatHighlight for important stats
var StatHighlight = lipgloss.NewStyle().
	Foreground(PrimaryColor).
	Bold(true)

// SampleNoticeStyle flags the built-in register when no file was loaded
var SampleNoticeStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("#000000")).
	Background(WarningColor).
	Padding(0, 1)
