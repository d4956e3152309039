package agent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ethanolivertroy/riskmatrix-tui/internal/llm"
	"google.golang.org/adk/agent"
	"google.golang.org/adk/agent/llmagent"
	"google.golang.org/adk/runner"
	"google.golang.org/adk/session"
	"google.golang.org/genai"
)

const (
	// SystemInstruction for Reggie
	SystemInstruction = `You are Reggie, a GRC analyst assistant for an organization's risk register.

CRITICAL BEHAVIOR - Be action-oriented:
- When a user mentions ANY asset, threat, or keyword - IMMEDIATELY search for it
- Do NOT ask clarifying questions if you can make a reasonable assumption
- When in doubt, USE YOUR TOOLS FIRST, then explain the results
- If a search returns nothing, say so briefly and suggest alternatives

Examples of how to handle queries:
- "what's wrong with the EHR?" → search_risks(query="EHR") immediately
- "database stuff" → search_risks(asset="database") immediately
- "any critical risks?" → list_top_risks(severity="Critical") immediately
- "R012" → get_risk_details(risk_id="R012") immediately

Your register tools:
- search_risks: Search by keyword, asset, threat, or treatment decision
- get_risk_details: Get detailed info about a specific risk
- list_top_risks: List the highest-scored risks, optionally within a severity band
- get_register_stats: Get register statistics
- export_report: Export to JSON/CSV/Markdown

Your GRC compliance tools:
- map_risk_to_controls: Map a risk to ISO 27001, HIPAA, GDPR, NIST SP 800-53, or CIS controls
- get_control_details: Get details about a specific control (e.g., A.8.8, 164.312(b))
- list_controls: List available controls by framework or domain
- run_gap_analysis: Compare recommended controls against the implemented set

Your analytics tools:
- find_related_risks: Risks sharing an asset or security domain with a given risk
- asset_risk_profile: Risk posture and exposure score of a single asset
- severity_breakdown: Risk counts per severity band
- decision_breakdown: Risk counts per treatment decision, with risky acceptances
- domain_analysis: Risks grouped by security domain
- batch_analyze: Scores, bands, and domains for several risks at once

When presenting results:
- Lead with the data, keep explanations brief
- Include the 1-25 score and its severity band
- Highlight Critical and High risks, and accepted risks that score high
- Use markdown for clarity

When presenting control mappings:
- Explain why each control applies based on the risk's domain
- Group controls by framework
- Suggest treatment actions based on control requirements

Examples for GRC queries:
- "what controls apply to R003?" → map_risk_to_controls immediately
- "explain A.8.8" → get_control_details immediately
- "show access control ISO controls" → list_controls with filters
- "are we covered for HIPAA?" → run_gap_analysis immediately

Only redirect to risk-register topics if the query is completely unrelated to risk or compliance.`
)

// RiskAgent wraps the ADK agent with register-specific functionality
type RiskAgent struct {
	agent          agent.Agent
	runner         *runner.Runner
	sessionService session.Service
	// Session tracking for multi-turn conversations
	userID     string
	sessionID  string
	hasSession bool
}

// EventKind discriminates streaming agent events
type EventKind int

const (
	EventText EventKind = iota
	EventToolStart
	EventToolDone
	EventDone
	EventError
)

// AgentEvent is a single occurrence during a streaming agent turn
type AgentEvent struct {
	Kind     EventKind
	Text     string
	ToolName string
	Params   map[string]any
	Err      error
}

// New creates a new risk agent using default LLM config from environment
func New(ctx context.Context) (*RiskAgent, error) {
	cfg := llm.ConfigFromEnv()
	return NewWithConfig(ctx, cfg)
}

// NewWithConfig creates a new risk agent with the specified LLM config
func NewWithConfig(ctx context.Context, cfg llm.Config) (*RiskAgent, error) {
	// Validate config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Create the LLM model
	model, err := llm.NewModel(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM model: %w", err)
	}

	// Create the register tools
	tools, err := CreateTools()
	if err != nil {
		return nil, fmt.Errorf("failed to create tools: %w", err)
	}

	// Create the GRC tools
	grcTools, err := CreateGRCTools()
	if err != nil {
		return nil, fmt.Errorf("failed to create GRC tools: %w", err)
	}
	tools = append(tools, grcTools...)

	// Create the analytics tools
	analyticsTools, err := CreateAnalyticsTools()
	if err != nil {
		return nil, fmt.Errorf("failed to create analytics tools: %w", err)
	}
	tools = append(tools, analyticsTools...)

	// Create the LLM agent
	riskAgent, err := llmagent.New(llmagent.Config{
		Name:        "risk_agent",
		Description: "GRC analyst assistant for querying a risk register with compliance control mapping",
		Model:       model,
		Instruction: SystemInstruction,
		Tools:       tools,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create agent: %w", err)
	}

	// Create session service
	sessionSvc := session.InMemoryService()

	// Create the runner
	r, err := runner.New(runner.Config{
		AppName:        "riskmatrix-tui",
		Agent:          riskAgent,
		SessionService: sessionSvc,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create runner: %w", err)
	}

	return &RiskAgent{
		agent:          riskAgent,
		runner:         r,
		sessionService: sessionSvc,
	}, nil
}

// Agent returns the underlying ADK agent for use with launchers
func (a *RiskAgent) Agent() agent.Agent {
	return a.agent
}

// Query sends a query to the agent and returns the response
func (a *RiskAgent) Query(ctx context.Context, query string) (string, error) {
	// Create a session for this query
	sessionResp, err := a.sessionService.Create(ctx, &session.CreateRequest{
		AppName:   "riskmatrix-tui",
		UserID:    "user",
		SessionID: "session",
	})
	if err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}

	// Create user message
	userMsg := &genai.Content{
		Role: "user",
		Parts: []*genai.Part{
			genai.NewPartFromText(query),
		},
	}

	// Run the agent
	var response strings.Builder
	for event, err := range a.runner.Run(ctx, sessionResp.Session.UserID(), sessionResp.Session.ID(), userMsg, agent.RunConfig{}) {
		if err != nil {
			return "", fmt.Errorf("agent error: %w", err)
		}

		// Extract text from the event
		if event.Content != nil {
			for _, part := range event.Content.Parts {
				if part.Text != "" {
					response.WriteString(part.Text)
				}
			}
		}
	}

	return response.String(), nil
}

// Chat sends a query to the agent using a persistent session for multi-turn conversations.
// The first call creates a session, subsequent calls reuse it for conversation context.
func (a *RiskAgent) Chat(ctx context.Context, query string) (string, error) {
	if err := a.ensureSession(ctx); err != nil {
		return "", err
	}

	// Create user message
	userMsg := &genai.Content{
		Role: "user",
		Parts: []*genai.Part{
			genai.NewPartFromText(query),
		},
	}

	// Run the agent with the persistent session
	var response strings.Builder
	for event, err := range a.runner.Run(ctx, a.userID, a.sessionID, userMsg, agent.RunConfig{}) {
		if err != nil {
			return "", fmt.Errorf("agent error: %w", err)
		}

		// Extract text from the event
		if event.Content != nil {
			for _, part := range event.Content.Parts {
				if part.Text != "" {
					response.WriteString(part.Text)
				}
			}
		}
	}

	return response.String(), nil
}

// ChatStream runs a chat turn on the persistent session, emitting events
// on ch as the runner produces them. The channel is closed when the turn
// finishes, so a single consumer can range until done.
func (a *RiskAgent) ChatStream(ctx context.Context, query string, ch chan<- AgentEvent) {
	defer close(ch)

	if err := a.ensureSession(ctx); err != nil {
		ch <- AgentEvent{Kind: EventError, Err: err}
		return
	}

	userMsg := &genai.Content{
		Role: "user",
		Parts: []*genai.Part{
			genai.NewPartFromText(query),
		},
	}

	for event, err := range a.runner.Run(ctx, a.userID, a.sessionID, userMsg, agent.RunConfig{}) {
		if err != nil {
			ch <- AgentEvent{Kind: EventError, Err: fmt.Errorf("agent error: %w", err)}
			return
		}
		if event.Content == nil {
			continue
		}
		for _, part := range event.Content.Parts {
			switch {
			case part.FunctionCall != nil:
				ch <- AgentEvent{
					Kind:     EventToolStart,
					ToolName: part.FunctionCall.Name,
					Params:   part.FunctionCall.Args,
				}
			case part.FunctionResponse != nil:
				ch <- AgentEvent{Kind: EventToolDone, ToolName: part.FunctionResponse.Name}
			case part.Text != "":
				ch <- AgentEvent{Kind: EventText, Text: part.Text}
			}
		}
	}

	ch <- AgentEvent{Kind: EventDone}
}

// ensureSession creates the persistent chat session on first use
func (a *RiskAgent) ensureSession(ctx context.Context) error {
	if a.hasSession {
		return nil
	}
	sessionResp, err := a.sessionService.Create(ctx, &session.CreateRequest{
		AppName:   "riskmatrix-tui",
		UserID:    "chat-user",
		SessionID: fmt.Sprintf("chat-%d", time.Now().UnixNano()),
	})
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	a.userID = sessionResp.Session.UserID()
	a.sessionID = sessionResp.Session.ID()
	a.hasSession = true
	return nil
}

// ClearSession clears the current chat session, starting fresh on next Chat() call
func (a *RiskAgent) ClearSession() {
	a.hasSession = false
	a.userID = ""
	a.sessionID = ""
}
