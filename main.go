package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ethanolivertroy/riskmatrix-tui/cmd"
	"github.com/ethanolivertroy/riskmatrix-tui/internal/agent"
	"github.com/ethanolivertroy/riskmatrix-tui/internal/chat"
	"github.com/ethanolivertroy/riskmatrix-tui/internal/llm"
	"github.com/ethanolivertroy/riskmatrix-tui/internal/model"
	"github.com/ethanolivertroy/riskmatrix-tui/internal/server"
	"github.com/ethanolivertroy/riskmatrix-tui/internal/tui"
	"github.com/joho/godotenv"
)

// Version is the release version printed by the version subcommand
const Version = "0.1.0"

// Layout constants (Crush-style)
const (
	AgentPanelWidth     = 55  // Fixed width for agent sidebar
	CompactBreakpoint   = 100 // Below this width, hide agent panel
	BrowserHeaderHeight = 0   // No separate header - TUI list has its own title
	AgentHeaderHeight   = 0   // No separate header - chat model has its own title
	MouseThrottleMs     = 15
)

// Panel types for focus management
type PanelType int

const (
	PanelBrowser PanelType = iota
	PanelAgent
)

// Colors
var (
	primaryColor    = lipgloss.Color("#7D56F4")
	subtleColor     = lipgloss.Color("#626262")
	borderFocused   = lipgloss.Color("#7D56F4")
	borderUnfocused = lipgloss.Color("#3a3a3a")
)

// Mouse throttling
var lastMouseEvent time.Time

// AppModel handles Crush-style layout with register browser and agent sidebar
type AppModel struct {
	// Models
	tuiModel   tea.Model
	agentModel tea.Model

	// State
	agentInitialized bool
	agentError       string
	focusedPanel     PanelType
	compact          bool            // Hide agent panel in compact mode (window too narrow)
	agentVisible     bool            // User-controlled visibility (toggle with \)
	pendingRisk      *model.RiskItem // Stores risk context until agent initializes

	// Dimensions
	width  int
	height int
}

func newAppModel(registerPath string) AppModel {
	// Set default dimensions so TUI renders immediately
	// These will be updated on WindowSizeMsg
	defaultWidth := 120
	defaultHeight := 30

	return AppModel{
		tuiModel:     tui.NewModel(registerPath),
		focusedPanel: PanelBrowser,
		agentVisible: true, // Visible by default, toggle with \
		width:        defaultWidth,
		height:       defaultHeight,
	}
}

func (m AppModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.tuiModel.Init()}

	// Initialize agent immediately if any LLM provider is configured
	cfg := llm.ConfigFromEnv()
	if err := cfg.Validate(); err == nil {
		cmds = append(cmds, m.initAgent())
	}

	return tea.Batch(cmds...)
}

func (m AppModel) initAgent() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		riskAgent, err := agent.New(ctx)
		if err != nil {
			return agentInitErrorMsg{err: err}
		}
		return agentInitMsg{agent: riskAgent, ctx: ctx}
	}
}

type agentInitMsg struct {
	agent *agent.RiskAgent
	ctx   context.Context
}

type agentInitErrorMsg struct {
	err error
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case agentInitMsg:
		m.agentModel = chat.NewModel(msg.ctx, msg.agent)
		m.agentInitialized = true
		initCmd := m.agentModel.Init()
		cmds = append(cmds, initCmd)
		// Send initial size to agent (subtract header height)
		if m.width > 0 && !m.compact {
			agentMsg := tea.WindowSizeMsg{Width: AgentPanelWidth, Height: m.height - AgentHeaderHeight}
			var agentCmd tea.Cmd
			m.agentModel, agentCmd = m.agentModel.Update(agentMsg)
			cmds = append(cmds, agentCmd)
		}
		// Apply any pending risk context that arrived before agent initialized
		if m.pendingRisk != nil {
			riskMsg := model.RiskSelectedMsg{Risk: m.pendingRisk}
			var riskCmd tea.Cmd
			m.agentModel, riskCmd = m.agentModel.Update(riskMsg)
			cmds = append(cmds, riskCmd)
		}
		return m, tea.Batch(cmds...)

	case agentInitErrorMsg:
		m.agentError = msg.err.Error()
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		// Backslash toggles agent panel visibility (like Crush)
		if msg.String() == "\\" && !m.compact {
			m.agentVisible = !m.agentVisible
			// If hiding panel, switch focus to browser
			if !m.agentVisible {
				m.focusedPanel = PanelBrowser
			}
			return m, nil
		}

		// Tab switches focus between panels (only if agent visible)
		if msg.String() == "tab" && !m.compact && m.agentVisible {
			if m.focusedPanel == PanelBrowser {
				m.focusedPanel = PanelAgent
			} else {
				m.focusedPanel = PanelBrowser
			}
			return m, nil
		}

		// Ctrl+K shows and focuses the agent panel
		if msg.String() == "ctrl+k" && !m.compact {
			m.agentVisible = true
			m.focusedPanel = PanelAgent
			return m, nil
		}

		// Route to focused panel
		if m.focusedPanel == PanelAgent && m.agentModel != nil && !m.compact && m.agentVisible {
			var cmd tea.Cmd
			m.agentModel, cmd = m.agentModel.Update(msg)
			return m, cmd
		} else {
			var cmd tea.Cmd
			m.tuiModel, cmd = m.tuiModel.Update(msg)
			return m, cmd
		}

	case tea.MouseMsg:
		// Throttle mouse events
		now := time.Now()
		if now.Sub(lastMouseEvent) < MouseThrottleMs*time.Millisecond {
			return m, nil
		}
		lastMouseEvent = now

		// Handle click for panel switching (only when agent is visible)
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft && !m.compact && m.agentVisible {
			browserWidth := m.width - AgentPanelWidth
			if msg.X < browserWidth {
				m.focusedPanel = PanelBrowser
			} else {
				m.focusedPanel = PanelAgent
			}
		}

		// Route to appropriate panel
		if m.focusedPanel == PanelAgent && m.agentModel != nil && !m.compact && m.agentVisible {
			adjustedMsg := msg
			adjustedMsg.X = msg.X - (m.width - AgentPanelWidth)
			var cmd tea.Cmd
			m.agentModel, cmd = m.agentModel.Update(adjustedMsg)
			return m, cmd
		} else {
			var cmd tea.Cmd
			m.tuiModel, cmd = m.tuiModel.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.compact = msg.Width < CompactBreakpoint

		var cmds []tea.Cmd
		if m.compact {
			// In compact mode, subtract browser header height
			compactMsg := tea.WindowSizeMsg{Width: msg.Width, Height: m.height - BrowserHeaderHeight}
			var cmd tea.Cmd
			m.tuiModel, cmd = m.tuiModel.Update(compactMsg)
			cmds = append(cmds, cmd)
		} else {
			browserWidth := m.width - AgentPanelWidth
			// Subtract header height so content doesn't overflow
			browserMsg := tea.WindowSizeMsg{Width: browserWidth, Height: m.height - BrowserHeaderHeight}
			var cmd tea.Cmd
			m.tuiModel, cmd = m.tuiModel.Update(browserMsg)
			cmds = append(cmds, cmd)

			if m.agentModel != nil {
				// Subtract agent header height for Reggie panel
				agentMsg := tea.WindowSizeMsg{Width: AgentPanelWidth, Height: m.height - AgentHeaderHeight}
				var agentCmd tea.Cmd
				m.agentModel, agentCmd = m.agentModel.Update(agentMsg)
				cmds = append(cmds, agentCmd)
			}
		}
		return m, tea.Batch(cmds...)

	case model.RiskSelectedMsg:
		// Route risk selection to chat model for context-aware queries
		// Always store as pending in case agent needs to be re-initialized
		m.pendingRisk = msg.Risk
		if m.agentModel != nil {
			var cmd tea.Cmd
			m.agentModel, cmd = m.agentModel.Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	case chat.AgentResponseMsg:
		// Always route agent responses to chat model regardless of focus
		// This prevents Reggie from freezing when user switches panels during a request
		if m.agentModel != nil {
			var cmd tea.Cmd
			m.agentModel, cmd = m.agentModel.Update(msg)
			return m, cmd
		}
		return m, nil

	case chat.StreamChunkMsg, chat.ToolCallMsg, chat.StreamDoneMsg, chat.StreamErrorMsg:
		// Always route streaming events to chat model regardless of focus
		// Same rationale as AgentResponseMsg: prevents lost events during panel switch
		if m.agentModel != nil {
			var cmd tea.Cmd
			m.agentModel, cmd = m.agentModel.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	// Route other messages to focused panel only (prevents flickering from spinner ticks)
	if m.focusedPanel == PanelAgent && m.agentModel != nil && !m.compact && m.agentVisible {
		var cmd tea.Cmd
		m.agentModel, cmd = m.agentModel.Update(msg)
		return m, cmd
	}
	var cmd tea.Cmd
	m.tuiModel, cmd = m.tuiModel.Update(msg)
	return m, cmd
}

func (m AppModel) View() string {
	// Don't render until we have valid dimensions
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	// Compact mode or agent hidden: just browser, full width
	if m.compact || !m.agentVisible {
		return m.tuiModel.View()
	}

	// Normal mode: browser + agent sidebar
	browserWidth := m.width - AgentPanelWidth

	browserView := lipgloss.NewStyle().
		Width(browserWidth).
		Height(m.height).
		Render(m.tuiModel.View())

	// Agent sidebar
	agentBorder := borderUnfocused
	if m.focusedPanel == PanelAgent {
		agentBorder = borderFocused
	}

	var agentContent string
	if m.agentModel != nil {
		agentContent = m.agentModel.View()
	} else if m.agentError != "" {
		agentContent = m.renderError()
	} else {
		// Check if any LLM provider is configured
		cfg := llm.ConfigFromEnv()
		if err := cfg.Validate(); err != nil {
			agentContent = m.renderNoApiKey()
		} else {
			agentContent = m.renderLoading()
		}
	}

	agentStyle := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true). // Left border only
		BorderForeground(agentBorder).
		Width(AgentPanelWidth - 1).
		Height(m.height)

	agentView := agentStyle.Render(agentContent)

	return lipgloss.JoinHorizontal(lipgloss.Top, browserView, agentView)
}

// getProviderSetupHelp returns setup instructions for the configured provider
func getProviderSetupHelp() string {
	cfg := llm.ConfigFromEnv()
	switch cfg.Provider {
	case "gemini":
		return "Set GEMINI_API_KEY\nto enable"
	case "vertex":
		return "Set VERTEX_PROJECT\nand VERTEX_LOCATION"
	case "ollama":
		return "Start Ollama:\n  ollama serve"
	case "openrouter":
		return "Set OPENROUTER_API_KEY\nto enable"
	default:
		return "Configure LLM_PROVIDER\nand credentials"
	}
}

func (m AppModel) renderNoApiKey() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(primaryColor).
		Render("Reggie")

	subtitle := lipgloss.NewStyle().
		Foreground(subtleColor).
		Render("GRC Assistant")

	instruction := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888")).
		Render(getProviderSetupHelp())

	return lipgloss.JoinVertical(lipgloss.Center,
		"",
		title,
		subtitle,
		"",
		instruction,
	)
}

func (m AppModel) renderError() string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FF5F56")).
		Render(fmt.Sprintf("Error:\n%s", m.agentError))
}

func (m AppModel) renderLoading() string {
	return lipgloss.NewStyle().
		Foreground(subtleColor).
		Render("Loading Reggie...")
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `RiskMatrix TUI - Terminal browser for CSV risk registers

Usage:
  riskmatrix-tui [command] [args...]

Commands:
  (default)   Register browser with Reggie sidebar (optional register path)
  check       Validate and score a register, optionally with gap analysis
  export      Write a ranked report file (json, csv, or markdown)
  links       Check the liveness of URLs referenced by the register
  agent       Chat with Reggie only
  serve       Run as A2A server
  version     Print the version
  help        Show this help

Examples:
  riskmatrix-tui                             # Browse risk_matrix.csv
  riskmatrix-tui clinic.csv                  # Browse a specific register
  riskmatrix-tui check -gap                  # Validate, score, and gap-check
  riskmatrix-tui check -input q3.csv -tolerance 2
  riskmatrix-tui export -format markdown -gap
  riskmatrix-tui links -timeout 5s
  riskmatrix-tui agent "top risks for the EHR database"
  riskmatrix-tui serve --port 9000           # Start A2A server on custom port

Environment:
  RISK_REGISTER       Register path used when no path argument is given
  LLM_PROVIDER        LLM provider: gemini (default), vertex, ollama, or openrouter
  LLM_MODEL           Model name (e.g., gemini-2.0-flash, llama3.2)
  GEMINI_API_KEY      Required for Gemini provider
  VERTEX_PROJECT      GCP project ID (required for Vertex AI)
  VERTEX_LOCATION     GCP region (required for Vertex AI, e.g., us-central1)
  OLLAMA_URL          Ollama server URL (default: http://localhost:11434)
  OPENROUTER_API_KEY  Required for OpenRouter provider
  A2A_PORT            A2A server port (default: 8001)
  A2A_HOST            Host shown in A2A endpoint URLs (default: localhost)

Keyboard (TUI mode):
  \       Toggle Reggie panel
  Tab     Switch focus between panels
  Ctrl+K  Open/focus Reggie
  Ctrl+P  Open command palette
  Ctrl+C  Quit
`)
}

// defaultRegisterPath resolves the register path for the browser: the
// RISK_REGISTER override if set, otherwise risk_matrix.csv. The agent
// tools resolve the same way, so both panels see the same register.
func defaultRegisterPath() string {
	if path := os.Getenv("RISK_REGISTER"); path != "" {
		return path
	}
	return "risk_matrix.csv"
}

func main() {
	// .env is optional; absence is not an error
	_ = godotenv.Load()

	// No args = default TUI mode
	if len(os.Args) < 2 {
		runDefaultTUI(defaultRegisterPath())
		return
	}

	// Handle subcommands
	switch os.Args[1] {
	case "check":
		if err := cmd.RunCheck(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

	case "export":
		if err := cmd.RunExport(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

	case "links":
		if err := cmd.RunLinks(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

	case "serve":
		// Parse serve-specific flags, defaulting from the environment
		serveCmd := flag.NewFlagSet("serve", flag.ExitOnError)
		port := serveCmd.Int("port", server.GetPort(), "Port for A2A server")
		host := serveCmd.String("host", server.GetHost(), "Host shown in the printed endpoint URLs")
		serveCmd.Parse(os.Args[2:])

		if err := cmd.RunServe(*port, *host); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

	case "agent":
		// Args after "agent" are the query
		args := os.Args[2:]
		if err := cmd.RunAgent(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

	case "help", "--help", "-h":
		printUsage()

	case "version", "--version":
		fmt.Println("riskmatrix-tui v" + Version)

	default:
		// Unknown command - treat as a register path for the browser
		runDefaultTUI(os.Args[1])
	}
}

func runDefaultTUI(registerPath string) {
	p := tea.NewProgram(newAppModel(registerPath), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
