package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jwebster45206/legacy-engine/pkg/engine"
	"github.com/jwebster45206/legacy-engine/pkg/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testState() *world.GameState {
	p := world.NewPlayer("ana", "")
	p.Inventory.Add("sword", 1)
	return &world.GameState{
		Player: p,
		CurrentLocation: &world.Place{
			Name:        "village square",
			Description: "An ancient *stone well* sits here.",
			Objects:     []string{"stone well"},
			NPCs:        []string{"village elder"},
		},
	}
}

func newTestUI(t *testing.T, srv *httptest.Server) ConsoleUI {
	t.Helper()
	cfg := &ConsoleConfig{APIBaseURL: "http://unused", PlayerName: "ana"}
	client := http.DefaultClient
	if srv != nil {
		cfg.APIBaseURL = srv.URL
		client = srv.Client()
	}
	m := NewConsoleUI(cfg, client, testState())
	model, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return model.(ConsoleUI)
}

func TestNewConsoleUI_StartsWithLocation(t *testing.T) {
	m := newTestUI(t, nil)
	require.Len(t, m.transcript, 1)
	assert.Equal(t, "village square\n\nAn ancient *stone well* sits here.", m.transcript[0].text)
	assert.True(t, m.ready)
}

func TestFormatResponse_StripsMarkup(t *testing.T) {
	out := formatResponse("village elder: Drink from the *stone well*.", 60)
	assert.Contains(t, out, "stone well")
	assert.NotContains(t, out, "*")
}

func TestWriteMetadata(t *testing.T) {
	out := writeMetadata(testState())
	assert.Contains(t, out, "ana")
	assert.Contains(t, out, "village square")
	assert.Contains(t, out, "• stone well")
	assert.Contains(t, out, "• village elder")
	assert.Contains(t, out, "• sword x1")
	assert.Contains(t, out, "health: 100")

	assert.Contains(t, writeMetadata(nil), "No game state loaded")
}

func TestHandleCommand(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"/help", "Console commands:"},
		{"/history", "Player ana began their journey."},
		{"/dance", "Unknown console command /dance"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			m := newTestUI(t, nil)
			model, _ := m.handleCommand(tt.input)
			ui := model.(ConsoleUI)
			last := ui.transcript[len(ui.transcript)-1]
			assert.Contains(t, last.text, tt.want)
		})
	}
}

func TestUpdate_CommandResult(t *testing.T) {
	m := newTestUI(t, nil)
	m.loading = true

	moved := testState()
	moved.CurrentLocation.Name = "market district"
	model, _ := m.Update(commandResultMsg{result: &engine.CommandResult{
		Success:   true,
		Message:   "You move east to market district.",
		GameState: moved,
	}})
	ui := model.(ConsoleUI)

	assert.False(t, ui.loading)
	assert.Equal(t, "You move east to market district.", ui.lastResponse)
	assert.Equal(t, "market district", ui.gameState.CurrentLocation.Name)
	assert.Equal(t, entryGame, ui.transcript[len(ui.transcript)-1].kind)

	model, _ = ui.Update(commandResultMsg{result: &engine.CommandResult{
		Success:   false,
		Message:   `You don't see any "dragon" here.`,
		GameState: moved,
		Error:     engine.ErrCodeNotFound,
	}})
	ui = model.(ConsoleUI)
	assert.Equal(t, entryFailure, ui.transcript[len(ui.transcript)-1].kind)
}

func TestSendCommand(t *testing.T) {
	var got commandRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/command", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(engine.CommandResult{Success: true, Message: "ok", GameState: testState()})
	}))
	defer srv.Close()

	result, err := sendCommand(srv.Client(), srv.URL, "ana", "look")
	require.NoError(t, err)
	assert.Equal(t, commandRequest{Command: "look", PlayerName: "ana"}, got)
	assert.True(t, result.Success)
	assert.Equal(t, "village square", result.GameState.CurrentLocation.Name)
}

func TestSendCommand_PersistenceFailureCarriesResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(engine.CommandResult{Message: "try again", Error: engine.ErrCodePersistence})
	}))
	defer srv.Close()

	result, err := sendCommand(srv.Client(), srv.URL, "ana", "north")
	require.NoError(t, err)
	assert.Equal(t, engine.ErrCodePersistence, result.Error)
}

func TestSendCommand_BadRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(ErrorResponse{Error: "Command is required"})
	}))
	defer srv.Close()

	_, err := sendCommand(srv.Client(), srv.URL, "ana", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Command is required")
}

func TestGetGameState(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "ana smith", r.URL.Query().Get("playerName"))
		_ = json.NewEncoder(w).Encode(gameStateResponse{Success: true, Data: testState()})
	}))
	defer srv.Close()

	gs, err := getGameState(srv.Client(), srv.URL, "ana smith")
	require.NoError(t, err)
	assert.Equal(t, "ana", gs.Player.Name)
	assert.Equal(t, 1, gs.Player.Inventory.Count("sword"))
}
