package main

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ethanolivertroy/riskmatrix-tui/internal/chat"
	"github.com/ethanolivertroy/riskmatrix-tui/internal/model"
)

func TestRiskSelectedMsgRoutedToAgent(t *testing.T) {
	// Create an AppModel with a minimal chat model
	app := newAppModel("risk_matrix.csv")

	// Manually set up a mock agent model (use nil agent/ctx since we just need Update to work)
	app.agentModel = chat.NewModel(nil, nil)
	app.agentInitialized = true
	app.width = 120
	app.height = 30

	// Create a test risk
	testRisk := &model.RiskItem{
		RiskRecord: model.RiskRecord{
			ID:            "R042",
			Asset:         "EHR database",
			Threat:        "Ransomware encrypts patient records",
			Vulnerability: "Unpatched application servers",
			Probability:   4,
			Impact:        5,
			Decision:      model.DecisionReduce,
		},
	}

	// Send RiskSelectedMsg to AppModel
	msg := model.RiskSelectedMsg{Risk: testRisk}
	newApp, _ := app.Update(msg)

	updatedApp := newApp.(AppModel)

	// Check if the agent model received the message
	// We need to check the chat model's internal state
	if updatedApp.agentModel == nil {
		t.Fatal("agentModel should not be nil")
	}

	// Type assert to chat.Model to check the current risk
	chatModel, ok := updatedApp.agentModel.(chat.Model)
	if !ok {
		t.Fatalf("agentModel is not chat.Model, got %T", updatedApp.agentModel)
	}

	// The chat model should now have the risk context
	if chatModel.CurrentRisk() == nil {
		t.Error("risk context was not set in chat model after RiskSelectedMsg")
	} else if chatModel.CurrentRisk().ID != "R042" {
		t.Errorf("Expected R042, got %s", chatModel.CurrentRisk().ID)
	}
}

func TestRiskSelectedMsgNotRoutedWhenAgentNil(t *testing.T) {
	// Create an AppModel WITHOUT an agent model
	app := newAppModel("risk_matrix.csv")
	// agentModel is nil by default

	// Create a test risk
	testRisk := &model.RiskItem{
		RiskRecord: model.RiskRecord{
			ID: "R099",
		},
	}

	// Send RiskSelectedMsg - should not panic
	msg := model.RiskSelectedMsg{Risk: testRisk}
	newApp, cmd := app.Update(msg)

	// Should return without error
	if newApp == nil {
		t.Error("Update returned nil model")
	}

	// Command should be empty batch (no-op)
	if cmd != nil {
		// tea.Batch with empty slice returns nil, so this is expected
		t.Log("Command returned (expected nil or empty batch)")
	}
}

func TestClosureCapturesCorrectValue(t *testing.T) {
	// Simulate what happens in the browser when entering detail view.
	// This tests that the closure correctly captures the item variable.

	testRisk := model.RiskItem{
		RiskRecord: model.RiskRecord{
			ID:          "R007",
			Asset:       "Badge system",
			Threat:      "Tailgating into server room",
			Probability: 2,
			Impact:      4,
			Decision:    model.DecisionReduce,
		},
	}

	// Simulate the closure creation (like the enter handler in the browser)
	item := testRisk // Local variable
	riskMsg := func() interface{} { return model.RiskSelectedMsg{Risk: &item} }

	// Execute the closure (simulating what Bubble Tea does)
	result := riskMsg()

	msg, ok := result.(model.RiskSelectedMsg)
	if !ok {
		t.Fatalf("Expected RiskSelectedMsg, got %T", result)
	}

	if msg.Risk == nil {
		t.Fatal("Risk should not be nil")
	}

	if msg.Risk.ID != "R007" {
		t.Errorf("Expected R007, got %s", msg.Risk.ID)
	}

	// Also verify the pointer is valid
	if msg.Risk.Asset != "Badge system" {
		t.Errorf("Expected Badge system, got %s", msg.Risk.Asset)
	}
}

func TestClosureWithinIfBlock(t *testing.T) {
	// More precise simulation of the if block pattern in the browser's
	// enter handler
	type Item struct {
		ID   string
		Name string
	}

	getItem := func() (Item, bool) {
		return Item{ID: "test-id", Name: "Test Name"}, true
	}

	var capturedClosure func() interface{}

	if item, ok := getItem(); ok {
		// This mirrors the &item capture inside the if scope
		capturedClosure = func() interface{} { return &item }
	}

	if capturedClosure == nil {
		t.Fatal("Closure should have been created")
	}

	// Execute the closure after the if block
	result := capturedClosure()
	ptr, ok := result.(*Item)
	if !ok {
		t.Fatalf("Expected *Item, got %T", result)
	}

	if ptr.ID != "test-id" {
		t.Errorf("Expected test-id, got %s", ptr.ID)
	}
}

func TestRiskContextPreservedAcrossAgentInit(t *testing.T) {
	// This test verifies that risk context is preserved when the user
	// opens a detail view BEFORE the agent finishes initializing

	// Create AppModel WITHOUT agent model (simulating before agent init completes)
	app := newAppModel("risk_matrix.csv")
	// agentModel is nil at this point

	// Create a risk
	testRisk := model.RiskItem{
		RiskRecord: model.RiskRecord{
			ID:          "R013",
			Asset:       "Backup server",
			Threat:      "Backup corruption goes unnoticed",
			Probability: 3,
			Impact:      5,
			Decision:    model.DecisionReduce,
		},
	}

	// User opens detail view - RiskSelectedMsg is sent
	item := testRisk
	riskCmd := func() tea.Msg { return model.RiskSelectedMsg{Risk: &item} }
	msg := riskCmd()
	newApp, _ := app.Update(msg)
	app = newApp.(AppModel)

	// Verify pendingRisk is stored
	if app.pendingRisk == nil {
		t.Fatal("pendingRisk should be stored when agent is not initialized")
	}
	if app.pendingRisk.ID != "R013" {
		t.Errorf("Expected R013, got %s", app.pendingRisk.ID)
	}

	// Now agent initializes (simulating agentInitMsg)
	initMsg := agentInitMsg{agent: nil, ctx: nil}
	newApp2, _ := app.Update(initMsg)
	app = newApp2.(AppModel)

	// Send window size
	sizeMsg := tea.WindowSizeMsg{Width: 45, Height: 30}
	newApp3, _ := app.Update(sizeMsg)
	app = newApp3.(AppModel)

	// Check if the chat model has the risk context
	chatModel := app.agentModel.(chat.Model)
	if chatModel.CurrentRisk() == nil {
		t.Fatal("risk context should be preserved after agent initialization")
	}
	if chatModel.CurrentRisk().ID != "R013" {
		t.Errorf("Expected R013, got %s", chatModel.CurrentRisk().ID)
	}
}

func TestFullMessageFlow(t *testing.T) {
	// This test simulates the full message flow from the browser
	// returning a command to the chat model receiving RiskSelectedMsg

	// Create AppModel with chat model
	app := newAppModel("risk_matrix.csv")
	app.agentModel = chat.NewModel(nil, nil)
	app.agentInitialized = true
	app.width = 120
	app.height = 30

	// Initialize the chat model with proper dimensions
	initCmd := app.agentModel.Init()
	if initCmd != nil {
		// Execute init command if any
		_ = initCmd()
	}
	sizeMsg := tea.WindowSizeMsg{Width: 45, Height: 30}
	app.agentModel, _ = app.agentModel.Update(sizeMsg)

	// Create a risk and simulate the command the browser would return
	testRisk := model.RiskItem{
		RiskRecord: model.RiskRecord{
			ID:            "R021",
			Asset:         "Wi-Fi network",
			Threat:        "Rogue access point harvests credentials",
			Vulnerability: "No wireless intrusion detection",
			Probability:   4,
			Impact:        4,
			Decision:      model.DecisionReduce,
		},
	}

	// Simulate the closure the browser creates on selection
	item := testRisk
	riskCmd := func() tea.Msg { return model.RiskSelectedMsg{Risk: &item} }

	// Execute the command to get the message
	msg := riskCmd()

	// Route the message through AppModel
	newApp, _ := app.Update(msg)
	updatedApp := newApp.(AppModel)

	// Verify the chat model received the message
	chatModel := updatedApp.agentModel.(chat.Model)
	if chatModel.CurrentRisk() == nil {
		t.Fatal("risk context was not set after message flow")
	}

	if chatModel.CurrentRisk().ID != "R021" {
		t.Errorf("Expected R021, got %s", chatModel.CurrentRisk().ID)
	}

	// Verify the View shows the badge
	view := chatModel.View()
	if !strings.Contains(view, "R021") {
		t.Error("Badge should appear in view after risk context is set")
		t.Logf("View content:\n%s", view)
	}
}
