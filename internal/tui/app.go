package tui

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ethanolivertroy/riskmatrix-tui/internal/grc"
	"github.com/ethanolivertroy/riskmatrix-tui/internal/model"
	"github.com/ethanolivertroy/riskmatrix-tui/internal/register"
	"github.com/ethanolivertroy/riskmatrix-tui/internal/score"
)

// ViewState represents the current view
type ViewState int

const (
	ViewList ViewState = iota
	ViewDetail
	ViewChartsMenu
	ViewSeverityChart
	ViewDecisionChart
	ViewAssetChart
	ViewHeatmap
	ViewExportMenu
	ViewExportConfirm
)

// ChartOption represents a chart in the charts menu
type ChartOption struct {
	Name        string
	Description string
	View        ViewState
}

// SortMode represents the current sort order
type SortMode int

const (
	SortByRank SortMode = iota
	SortByID
	SortByAsset
	SortByInputs
	SortByDecision
)

func (s SortMode) String() string {
	switch s {
	case SortByRank:
		return "Rank"
	case SortByID:
		return "ID"
	case SortByAsset:
		return "Asset"
	case SortByInputs:
		return "Inputs"
	case SortByDecision:
		return "Decision"
	}
	return ""
}

// FilterMode represents special filters
type FilterMode int

const (
	FilterNone FilterMode = iota
	FilterCriticalHigh
	FilterDecision
	FilterBand
	FilterAsset
)

// bandCycle is the order the band filter steps through
var bandCycle = []model.Severity{
	model.SeverityCritical,
	model.SeverityHigh,
	model.SeverityMedium,
	model.SeverityLow,
}

// Model is the main application model
type Model struct {
	list          list.Model
	allRisks      []model.RiskRecord
	notes         []register.Note
	rowErrs       []register.RowError
	sample        bool
	source        string
	filteredRisks []list.Item
	spinner       spinner.Model
	loading       bool
	err           error
	width         int
	height        int
	view          ViewState
	selectedRisk  *model.RiskItem
	selectedCtrls []grc.ControlMatch
	mapper        *grc.Mapper
	registerPath  string
	keys          KeyMap
	help          help.Model
	showHelp      bool
	viewport      viewport.Model
	viewportReady bool
	sortMode      SortMode
	filterMode    FilterMode
	// Active values for the decision and band filters
	filterDecision model.Decision
	filterBand     model.Severity
	stats          score.Stats
	statusMsg      string
	// Asset chart state
	assetList          []score.AssetCount
	selectedAssetIndex int
	selectedAssetName  string
	// Charts menu state
	chartOptions       []ChartOption
	selectedChartIndex int
	// Export menu state
	exportOptions       []ExportOption
	selectedExportIndex int
	pendingExport       *PendingExport
}

// Messages
type RegisterLoadedMsg struct {
	Table   *register.Table
	RowErrs []register.RowError
	Sample  bool
}

type ErrorMsg struct {
	Err error
}

type StatusMsg struct {
	Msg string
}

// NewModel creates a new application model. The register at path is
// loaded on Init; an absent file falls back to the built-in sample.
func NewModel(path string) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(PrimaryColor)

	h := help.New()
	h.ShowAll = false

	return Model{
		spinner:      s,
		loading:      true,
		registerPath: path,
		mapper:       grc.NewMapper(grc.Builtin()),
		keys:         DefaultKeyMap(),
		help:         h,
		sortMode:     SortByRank,
		chartOptions: []ChartOption{
			{Name: "Severity Distribution", Description: "Risks per severity band", View: ViewSeverityChart},
			{Name: "Treatment Decisions", Description: "Risks per treatment decision", View: ViewDecisionChart},
			{Name: "Top Assets", Description: "Assets carrying the most risks", View: ViewAssetChart},
			{Name: "Score Heatmap", Description: "Probability x impact counts", View: ViewHeatmap},
		},
		exportOptions: []ExportOption{
			{Name: "JSON (Current View)", Format: ExportJSON, Scope: ExportCurrentView},
			{Name: "JSON (Full Register)", Format: ExportJSON, Scope: ExportFullRegister},
			{Name: "CSV (Current View)", Format: ExportCSV, Scope: ExportCurrentView},
			{Name: "CSV (Full Register)", Format: ExportCSV, Scope: ExportFullRegister},
			{Name: "Markdown (Current View)", Format: ExportMarkdown, Scope: ExportCurrentView},
			{Name: "Markdown (Full Register)", Format: ExportMarkdown, Scope: ExportFullRegister},
		},
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadRegister())
}

func (m Model) loadRegister() tea.Cmd {
	return func() tea.Msg {
		if _, err := os.Stat(m.registerPath); os.IsNotExist(err) {
			return RegisterLoadedMsg{Table: register.Sample(), Sample: true}
		}
		table, rowErrs, err := register.Load(m.registerPath)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return RegisterLoadedMsg{Table: table, RowErrs: rowErrs}
	}
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Clear status message on any key press
		m.statusMsg = ""

		// Handle quit
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		// Global keys
		switch msg.String() {
		case "?":
			m.showHelp = !m.showHelp
			return m, nil
		}

		// If in list view and not filtering
		if m.view == ViewList && m.list.FilterState() != list.Filtering {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "enter":
				if item, ok := m.list.SelectedItem().(model.RiskItem); ok {
					m.selectedRisk = &item
					m.selectedCtrls = m.mapControls(item.RiskRecord)
					m.view = ViewDetail
					m.viewport = viewport.New(m.width-4, m.height-6)
					m.viewport.SetContent(m.renderDetailContent())
					m.viewportReady = true
					return m, riskSelectedCmd(&item)
				}
			case "s":
				m.sortMode = (m.sortMode + 1) % 5
				m.applySortAndFilter()
				m.list.SetItems(m.filteredRisks)
				m.statusMsg = fmt.Sprintf("Sorted by: %s", m.sortMode.String())
				return m, nil
			case "r":
				if m.filterMode == FilterCriticalHigh {
					m.filterMode = FilterNone
					m.statusMsg = "Filter cleared"
				} else {
					m.filterMode = FilterCriticalHigh
					m.statusMsg = "Showing Critical and High only"
				}
				m.applySortAndFilter()
				m.list.SetItems(m.filteredRisks)
				return m, nil
			case "d":
				m.cycleDecisionFilter()
				m.applySortAndFilter()
				m.list.SetItems(m.filteredRisks)
				return m, nil
			case "b":
				m.cycleBandFilter()
				m.applySortAndFilter()
				m.list.SetItems(m.filteredRisks)
				return m, nil
			case "c":
				if item, ok := m.list.SelectedItem().(model.RiskItem); ok {
					copyToClipboard(item.ID)
					m.statusMsg = fmt.Sprintf("Copied: %s", item.ID)
					return m, nil
				}
			case "t":
				name := CycleTheme()
				m.list.Styles.Title = TitleStyle
				m.list.SetDelegate(NewRiskDelegate())
				m.statusMsg = fmt.Sprintf("Theme: %s", name)
				return m, nil
			case "g":
				m.selectedChartIndex = 0
				m.view = ViewChartsMenu
				return m, nil
			case "G", "end":
				// Jump to end of list (vim style)
				if len(m.list.Items()) > 0 {
					m.list.Select(len(m.list.Items()) - 1)
				}
				return m, nil
			case "home":
				// Jump to start of list
				m.list.Select(0)
				return m, nil
			case "x":
				m.selectedExportIndex = 0
				m.view = ViewExportMenu
				return m, nil
			}
		}

		// If in detail view
		if m.view == ViewDetail {
			switch msg.String() {
			case "q", "esc", "backspace":
				m.view = ViewList
				m.selectedRisk = nil
				m.selectedCtrls = nil
				return m, riskSelectedCmd(nil)
			case "c":
				if m.selectedRisk != nil {
					copyToClipboard(m.selectedRisk.ID)
					m.statusMsg = fmt.Sprintf("Copied: %s", m.selectedRisk.ID)
					return m, nil
				}
			default:
				// Pass to viewport for scrolling
				if m.viewportReady {
					var cmd tea.Cmd
					m.viewport, cmd = m.viewport.Update(msg)
					return m, cmd
				}
			}
		}

		// If in charts menu view
		if m.view == ViewChartsMenu {
			switch msg.String() {
			case "q", "esc", "g", "backspace":
				m.view = ViewList
				return m, nil
			case "j", "down":
				m.selectedChartIndex = (m.selectedChartIndex + 1) % len(m.chartOptions)
				return m, nil
			case "k", "up":
				m.selectedChartIndex = (m.selectedChartIndex - 1 + len(m.chartOptions)) % len(m.chartOptions)
				return m, nil
			case "enter":
				selected := m.chartOptions[m.selectedChartIndex]
				if selected.View == ViewAssetChart {
					m.assetList = GetTopAssets(m.allRisks, 10)
					m.selectedAssetIndex = 0
				}
				m.view = selected.View
				return m, nil
			}
		}

		// If in export menu view
		if m.view == ViewExportMenu {
			switch msg.String() {
			case "q", "esc", "x", "backspace":
				m.view = ViewList
				return m, nil
			case "j", "down":
				m.selectedExportIndex = (m.selectedExportIndex + 1) % len(m.exportOptions)
				return m, nil
			case "k", "up":
				m.selectedExportIndex = (m.selectedExportIndex - 1 + len(m.exportOptions)) % len(m.exportOptions)
				return m, nil
			case "enter":
				selected := m.exportOptions[m.selectedExportIndex]
				var records []model.RiskRecord
				if selected.Scope == ExportCurrentView {
					// Current visible items, in view order (respects search filter)
					for _, item := range m.list.VisibleItems() {
						if ri, ok := item.(model.RiskItem); ok {
							records = append(records, ri.RiskRecord)
						}
					}
				} else {
					records = score.Rank(m.allRisks).Records
				}

				m.pendingExport = &PendingExport{
					Records: records,
					Format:  selected.Format,
					Count:   len(records),
				}
				m.view = ViewExportConfirm
				return m, nil
			}
		}

		// If in export confirmation view
		if m.view == ViewExportConfirm {
			switch msg.String() {
			case "y", "enter":
				if m.pendingExport != nil {
					// Export to current directory
					result := Export(m.pendingExport.Records, m.pendingExport.Format, ".")
					if result.Err != nil {
						m.statusMsg = fmt.Sprintf("Export failed: %v", result.Err)
					} else {
						m.statusMsg = fmt.Sprintf("Exported %d risks to %s", result.Count, result.FilePath)
					}
				}
				m.pendingExport = nil
				m.view = ViewList
				return m, nil
			case "n", "q", "esc", "backspace":
				m.pendingExport = nil
				m.statusMsg = "Export cancelled"
				m.view = ViewExportMenu
				return m, nil
			}
		}

		// If in asset chart view
		if m.view == ViewAssetChart {
			switch msg.String() {
			case "q", "esc", "backspace":
				m.view = ViewChartsMenu
				return m, nil
			case "g":
				// Clear asset filter if active and go to charts menu
				if m.filterMode == FilterAsset {
					m.filterMode = FilterNone
					m.selectedAssetName = ""
					m.applySortAndFilter()
					m.list.SetItems(m.filteredRisks)
				}
				m.view = ViewChartsMenu
				return m, nil
			case "j", "down":
				if len(m.assetList) > 0 {
					m.selectedAssetIndex = (m.selectedAssetIndex + 1) % len(m.assetList)
				}
				return m, nil
			case "k", "up":
				if len(m.assetList) > 0 {
					m.selectedAssetIndex = (m.selectedAssetIndex - 1 + len(m.assetList)) % len(m.assetList)
				}
				return m, nil
			case "enter":
				if len(m.assetList) > 0 && m.selectedAssetIndex < len(m.assetList) {
					m.selectedAssetName = m.assetList[m.selectedAssetIndex].Asset
					m.filterMode = FilterAsset
					m.applySortAndFilter()
					m.list.SetItems(m.filteredRisks)
					m.statusMsg = fmt.Sprintf("Filtered: %s (%d risks)", m.selectedAssetName, m.assetList[m.selectedAssetIndex].Count)
					m.view = ViewList
				}
				return m, nil
			}
		}

		// If in severity chart view
		if m.view == ViewSeverityChart {
			switch msg.String() {
			case "q", "esc", "g", "backspace":
				m.view = ViewChartsMenu
				return m, nil
			}
		}

		// If in decision chart view
		if m.view == ViewDecisionChart {
			switch msg.String() {
			case "q", "esc", "g", "backspace":
				m.view = ViewChartsMenu
				return m, nil
			}
		}

		// If in heatmap view
		if m.view == ViewHeatmap {
			switch msg.String() {
			case "q", "esc", "g", "backspace":
				m.view = ViewChartsMenu
				return m, nil
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if !m.loading {
			headerHeight := 4 // Title + stats
			footerHeight := 2 // Help
			m.list.SetSize(msg.Width, msg.Height-headerHeight-footerHeight)
		}
		if m.viewportReady {
			m.viewport.Width = msg.Width - 4
			m.viewport.Height = msg.Height - 6
		}
		return m, nil

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}

	case RegisterLoadedMsg:
		m.loading = false
		m.allRisks = msg.Table.Records
		m.notes = msg.Table.Notes
		m.rowErrs = msg.RowErrs
		m.sample = msg.Sample
		m.source = msg.Table.Source
		m.calculateStats()
		m.applySortAndFilter()

		delegate := NewRiskDelegate()
		m.list = list.New(m.filteredRisks, delegate, m.width, m.height-6)
		m.list.Title = "Risk Register"
		m.list.SetShowStatusBar(true)
		m.list.SetFilteringEnabled(true)
		m.list.SetShowHelp(false) // Disable built-in help, we render our own
		m.list.Styles.Title = TitleStyle

		// Use exact substring matching
		m.list.Filter = func(term string, targets []string) []list.Rank {
			var ranks []list.Rank
			term = strings.ToLower(term)
			for i, target := range targets {
				if strings.Contains(strings.ToLower(target), term) {
					ranks = append(ranks, list.Rank{Index: i})
				}
			}
			return ranks
		}

		return m, nil

	case StatusMsg:
		m.statusMsg = msg.Msg
		return m, nil

	case ErrorMsg:
		m.loading = false
		m.err = msg.Err
		return m, nil
	}

	// Update list if in list view
	if m.view == ViewList && !m.loading {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *Model) calculateStats() {
	m.stats = score.Compute(m.allRisks)
}

// mapControls maps one record against every catalog in the set
func (m Model) mapControls(rec model.RiskRecord) []grc.ControlMatch {
	var matches []grc.ControlMatch
	for _, fw := range m.mapper.Catalogs().Frameworks() {
		match, err := m.mapper.MapRecord(rec, fw)
		if err != nil {
			continue
		}
		matches = append(matches, match)
	}
	return matches
}

func (m *Model) cycleDecisionFilter() {
	if m.filterMode != FilterDecision {
		m.filterMode = FilterDecision
		m.filterDecision = model.Decisions[0]
		m.statusMsg = fmt.Sprintf("Showing %s only", m.filterDecision)
		return
	}
	for i, d := range model.Decisions {
		if d != m.filterDecision {
			continue
		}
		if i+1 < len(model.Decisions) {
			m.filterDecision = model.Decisions[i+1]
			m.statusMsg = fmt.Sprintf("Showing %s only", m.filterDecision)
		} else {
			m.filterMode = FilterNone
			m.statusMsg = "Filter cleared"
		}
		return
	}
	m.filterMode = FilterNone
	m.statusMsg = "Filter cleared"
}

func (m *Model) cycleBandFilter() {
	if m.filterMode != FilterBand {
		m.filterMode = FilterBand
		m.filterBand = bandCycle[0]
		m.statusMsg = fmt.Sprintf("Showing %s only", m.filterBand)
		return
	}
	for i, band := range bandCycle {
		if band != m.filterBand {
			continue
		}
		if i+1 < len(bandCycle) {
			m.filterBand = bandCycle[i+1]
			m.statusMsg = fmt.Sprintf("Showing %s only", m.filterBand)
		} else {
			m.filterMode = FilterNone
			m.statusMsg = "Filter cleared"
		}
		return
	}
	m.filterMode = FilterNone
	m.statusMsg = "Filter cleared"
}

func (m *Model) applySortAndFilter() {
	// Start with all risks
	filtered := make([]model.RiskRecord, 0, len(m.allRisks))

	// Apply filter
	switch m.filterMode {
	case FilterCriticalHigh:
		for _, r := range m.allRisks {
			if sev := r.Severity(); sev == model.SeverityCritical || sev == model.SeverityHigh {
				filtered = append(filtered, r)
			}
		}
	case FilterDecision:
		for _, r := range m.allRisks {
			if r.Decision == m.filterDecision {
				filtered = append(filtered, r)
			}
		}
	case FilterBand:
		for _, r := range m.allRisks {
			if r.Severity() == m.filterBand {
				filtered = append(filtered, r)
			}
		}
	case FilterAsset:
		for _, r := range m.allRisks {
			if m.selectedAssetName == "" || r.Asset == m.selectedAssetName {
				filtered = append(filtered, r)
			}
		}
	default:
		filtered = append(filtered, m.allRisks...)
	}

	// Apply sort
	switch m.sortMode {
	case SortByRank:
		filtered = score.Rank(filtered).Records
	case SortByID:
		sort.Slice(filtered, func(i, j int) bool {
			return filtered[i].ID < filtered[j].ID
		})
	case SortByAsset:
		sort.Slice(filtered, func(i, j int) bool {
			if filtered[i].Asset != filtered[j].Asset {
				return filtered[i].Asset < filtered[j].Asset
			}
			return filtered[i].ID < filtered[j].ID
		})
	case SortByInputs:
		sort.Slice(filtered, func(i, j int) bool {
			if filtered[i].Probability != filtered[j].Probability {
				return filtered[i].Probability > filtered[j].Probability
			}
			if filtered[i].Impact != filtered[j].Impact {
				return filtered[i].Impact > filtered[j].Impact
			}
			return filtered[i].ID < filtered[j].ID
		})
	case SortByDecision:
		order := make(map[model.Decision]int, len(model.Decisions))
		for i, d := range model.Decisions {
			order[d] = i
		}
		sort.Slice(filtered, func(i, j int) bool {
			oi, oj := order[filtered[i].Decision], order[filtered[j].Decision]
			if oi != oj {
				return oi < oj
			}
			return filtered[i].ID < filtered[j].ID
		})
	}

	// Convert to list items
	m.filteredRisks = make([]list.Item, len(filtered))
	for i, r := range filtered {
		m.filteredRisks[i] = model.RiskItem{RiskRecord: r}
	}
}

// View renders the view
func (m Model) View() string {
	if m.loading {
		return fmt.Sprintf("\n  %s Loading risk register...\n", m.spinner.View())
	}

	if m.err != nil {
		return fmt.Sprintf("\n  Error: %v\n\n  Press q to quit.\n", m.err)
	}

	if m.view == ViewDetail && m.selectedRisk != nil {
		return m.renderDetailView()
	}

	if m.view == ViewChartsMenu {
		return m.renderChartsMenu()
	}

	if m.view == ViewExportMenu {
		return m.renderExportMenu()
	}

	if m.view == ViewExportConfirm {
		return m.renderExportConfirm()
	}

	if m.view == ViewSeverityChart {
		return RenderSeverityChart(m.allRisks, m.width, m.height)
	}

	if m.view == ViewDecisionChart {
		return RenderDecisionChart(m.allRisks, m.width, m.height)
	}

	if m.view == ViewAssetChart {
		return RenderAssetChartWithSelection(m.allRisks, m.width, m.height, m.selectedAssetIndex)
	}

	if m.view == ViewHeatmap {
		return RenderHeatmap(m.allRisks, m.width, m.height)
	}

	return m.renderListView()
}

func (m Model) renderExportMenu() string {
	var b strings.Builder

	// Title
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(PrimaryColor).
		Padding(0, 1).
		Render("Export Report")
	b.WriteString("\n")
	b.WriteString(title)
	b.WriteString("\n\n")

	// Current view info - use list's visible items which respects search filter
	currentCount := len(m.list.VisibleItems())
	totalCount := len(m.allRisks)
	infoStyle := lipgloss.NewStyle().Foreground(SubtleColor)
	b.WriteString(infoStyle.Render(fmt.Sprintf("Current view: %d risks | Full register: %d risks", currentCount, totalCount)))
	b.WriteString("\n\n")

	// Menu options
	for i, opt := range m.exportOptions {
		if i == m.selectedExportIndex {
			// Highlighted
			selectedStyle := lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#FFFFFF")).
				Background(PrimaryColor).
				Padding(0, 1)
			b.WriteString(selectedStyle.Render(fmt.Sprintf("> %s", opt.Name)))
		} else {
			b.WriteString(fmt.Sprintf("  %s", opt.Name))
		}
		b.WriteString("\n")
	}

	// Footer
	b.WriteString("\n")
	footerStyle := lipgloss.NewStyle().Foreground(SubtleColor)
	b.WriteString(footerStyle.Render("j/k navigate • enter export • x/esc back"))

	return b.String()
}

func (m Model) renderExportConfirm() string {
	var b strings.Builder

	// Title
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(PrimaryColor).
		Padding(0, 1).
		Render("Confirm Export")
	b.WriteString("\n")
	b.WriteString(title)
	b.WriteString("\n\n")

	if m.pendingExport != nil {
		b.WriteString(fmt.Sprintf("Export %d risks as %s to the current directory?",
			m.pendingExport.Count, m.pendingExport.Format))
		b.WriteString("\n\n")
	}

	// Footer
	footerStyle := lipgloss.NewStyle().Foreground(SubtleColor)
	b.WriteString(footerStyle.Render("y/enter confirm • n/esc cancel"))

	return b.String()
}

func (m Model) renderChartsMenu() string {
	var b strings.Builder

	// Title
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(PrimaryColor).
		Padding(0, 1).
		Render("Charts & Graphs")
	b.WriteString("\n")
	b.WriteString(title)
	b.WriteString("\n\n")

	// Menu options
	for i, opt := range m.chartOptions {
		if i == m.selectedChartIndex {
			// Highlighted
			selectedStyle := lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#FFFFFF")).
				Background(PrimaryColor).
				Padding(0, 1)
			b.WriteString(selectedStyle.Render(fmt.Sprintf("> %s", opt.Name)))
		} else {
			b.WriteString(fmt.Sprintf("  %s", opt.Name))
		}
		b.WriteString("\n")
		descStyle := lipgloss.NewStyle().Foreground(SubtleColor)
		b.WriteString(descStyle.Render(fmt.Sprintf("    %s", opt.Description)))
		b.WriteString("\n\n")
	}

	// Footer
	footerStyle := lipgloss.NewStyle().Foreground(SubtleColor)
	b.WriteString(footerStyle.Render("j/k navigate • enter select • g/esc back"))

	return b.String()
}

func (m Model) renderListView() string {
	var b strings.Builder

	// Stats header
	stats := fmt.Sprintf("%s | %s | %s",
		StatHighlight.Render(fmt.Sprintf("%d risks", m.stats.Total)),
		lipgloss.NewStyle().Foreground(CriticalColor).Bold(true).Render(fmt.Sprintf("%d critical/high", m.stats.CriticalHigh())),
		lipgloss.NewStyle().Foreground(WarningColor).Render(fmt.Sprintf("%d row errors", len(m.rowErrs))),
	)
	b.WriteString(StatsStyle.Render(stats))
	b.WriteString("\n")

	// Sample data notice
	if m.sample {
		b.WriteString(SampleNoticeStyle.Render("SAMPLE DATA"))
		b.WriteString(SubtitleStyle.Render(fmt.Sprintf(" no register at %s, showing the built-in sample", m.registerPath)))
		b.WriteString("\n")
	}

	// Sort/filter indicator
	indicators := []string{fmt.Sprintf("Sort: %s", m.sortMode.String())}
	switch m.filterMode {
	case FilterCriticalHigh:
		indicators = append(indicators, lipgloss.NewStyle().Foreground(CriticalColor).Render("Filter: Critical/High"))
	case FilterDecision:
		indicators = append(indicators, lipgloss.NewStyle().Foreground(DecisionColor).Render(fmt.Sprintf("Filter: %s", m.filterDecision)))
	case FilterBand:
		indicators = append(indicators, lipgloss.NewStyle().Foreground(SeverityColor(m.filterBand)).Render(fmt.Sprintf("Filter: %s", m.filterBand)))
	case FilterAsset:
		indicators = append(indicators, lipgloss.NewStyle().Foreground(PrimaryColor).Render(fmt.Sprintf("Filter: %s", m.selectedAssetName)))
	}
	b.WriteString(SubtitleStyle.Render(strings.Join(indicators, " | ")))
	b.WriteString("\n")

	// List
	b.WriteString(m.list.View())

	// Status message or help
	if m.statusMsg != "" {
		b.WriteString("\n")
		b.WriteString(SubtitleStyle.Render(m.statusMsg))
	}

	// Help footer
	b.WriteString("\n")
	if m.showHelp {
		b.WriteString(m.help.View(m.keys))
	} else {
		helpText := "/ filter • s sort • r critical/high • d decision • b band • g charts • x export • t theme • q quit"
		b.WriteString(SubtitleStyle.Render(helpText))
	}

	return b.String()
}

func (m Model) renderDetailView() string {
	var b strings.Builder

	// Header
	b.WriteString("\n")
	b.WriteString(IDBadge.Render(m.selectedRisk.ID))
	b.WriteString("  ")
	b.WriteString(ScoreBadge(m.selectedRisk.Score()))
	if m.selectedRisk.Decision != "" {
		b.WriteString("  ")
		b.WriteString(DecisionTag(m.selectedRisk.Decision))
	}
	b.WriteString("\n\n")

	// Viewport with scrollable content
	if m.viewportReady {
		b.WriteString(m.viewport.View())
	}

	// Footer
	b.WriteString("\n")
	footer := "↑/↓ scroll | c copy id | q/esc back"
	if m.statusMsg != "" {
		footer = m.statusMsg + " | " + footer
	}
	b.WriteString(SubtitleStyle.Render(footer))
	b.WriteString("\n")

	return b.String()
}

func (m Model) renderDetailContent() string {
	r := m.selectedRisk
	if r == nil {
		return "No risk selected"
	}
	var b strings.Builder

	// Title
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Render(r.Threat))
	b.WriteString("\n\n")

	// Fields
	fields := []struct {
		label string
		value string
	}{
		{"Asset", r.Asset},
		{"Vulnerability", r.Vulnerability},
		{"Probability", fmt.Sprintf("%d (%s)", r.Probability, model.ProbabilityLabel(r.Probability))},
		{"Impact", fmt.Sprintf("%d (%s)", r.Impact, model.ImpactLabel(r.Impact))},
		{"Decision", string(r.Decision)},
		{"Domain", domainLabel(grc.ClassifyDomain(r.RiskRecord))},
	}

	for _, f := range fields {
		if f.value != "" {
			b.WriteString(LabelStyle.Render(f.label + ":"))
			b.WriteString(ValueStyle.Render(f.value))
			b.WriteString("\n")
		}
	}

	// Score
	b.WriteString("\n")
	b.WriteString(LabelStyle.Render("Risk Score:"))
	b.WriteString(ScoreBadge(r.Score()))
	b.WriteString(" ")
	b.WriteString(ScoreBar(r.Score(), 20))
	b.WriteString("\n")

	// Sanitization notes attached to this record
	for _, note := range m.notes {
		if note.ID == r.ID {
			b.WriteString(LabelStyle.Render("Note:"))
			b.WriteString(NoteStyle.Render(fmt.Sprintf("%s: %s", note.Field, note.Text)))
			b.WriteString("\n")
		}
	}

	// Mapped controls per framework
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(PrimaryColor).Render("Mapped Controls"))
	b.WriteString("\n")
	for _, match := range m.selectedCtrls {
		b.WriteString(LabelStyle.Render(string(match.Framework) + ":"))
		if len(match.Controls) == 0 {
			b.WriteString(SubtitleStyle.Render("no recommended controls"))
			b.WriteString("\n")
			continue
		}
		b.WriteString("\n")
		for _, ctrl := range match.Controls {
			b.WriteString(ValueStyle.Render(fmt.Sprintf("  %s %s", ctrl.ID, ctrl.Name)))
			b.WriteString("\n")
			if ctrl.Description != "" {
				b.WriteString(SubtitleStyle.Render("    " + ctrl.Description))
				b.WriteString("\n")
			}
		}
	}

	// Explicit control references carried by the register
	if len(r.ControlRefs) > 0 {
		b.WriteString("\n")
		b.WriteString(LabelStyle.Render("Control Refs:"))
		b.WriteString(ValueStyle.Render(strings.Join(r.ControlRefs, ", ")))
		b.WriteString("\n")
	}

	// Recommendation
	if r.Recommendation != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(PrimaryColor).Render("Recommendation"))
		b.WriteString("\n")
		b.WriteString(DescriptionStyle.Render(r.Recommendation))
		b.WriteString("\n")
	}

	return b.String()
}

// domainLabel turns a snake_case domain name into display text
func domainLabel(d grc.Domain) string {
	return strings.ReplaceAll(string(d), "_", " ")
}

// riskSelectedCmd notifies the outer program of a selection change. A
// nil risk clears the selection.
func riskSelectedCmd(risk *model.RiskItem) tea.Cmd {
	return func() tea.Msg {
		return model.RiskSelectedMsg{Risk: risk}
	}
}

// Helper functions
func copyToClipboard(text string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("pbcopy")
	case "linux":
		cmd = exec.Command("xclip", "-selection", "clipboard")
	case "windows":
		cmd = exec.Command("clip")
	default:
		return
	}
	cmd.Stdin = strings.NewReader(text)
	_ = cmd.Run()
}
