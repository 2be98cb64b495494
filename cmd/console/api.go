package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/jwebster45206/legacy-engine/pkg/engine"
	"github.com/jwebster45206/legacy-engine/pkg/world"
)

func testConnection(client *http.Client, baseURL string) bool {
	resp, err := client.Get(baseURL + "/health")
	if err != nil {
		return false
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()
	return resp.StatusCode == http.StatusOK
}

type gameStateResponse struct {
	Success bool             `json:"success"`
	Data    *world.GameState `json:"data"`
}

func getGameState(client *http.Client, baseURL string, playerName string) (*world.GameState, error) {
	resp, err := client.Get(baseURL + "/v1/gamestate?playerName=" + url.QueryEscape(playerName))
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errorResp ErrorResponse
		if err := json.Unmarshal(body, &errorResp); err != nil {
			return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
		}
		return nil, fmt.Errorf("failed to get game state: %s", errorResp.Error)
	}

	var gsResp gameStateResponse
	if err := json.Unmarshal(body, &gsResp); err != nil {
		return nil, fmt.Errorf("failed to parse game state response: %w", err)
	}
	if gsResp.Data == nil {
		return nil, fmt.Errorf("game state response had no data")
	}
	return gsResp.Data, nil
}

type commandRequest struct {
	Command    string `json:"command"`
	PlayerName string `json:"playerName"`
}

// sendCommand posts a command. Persistence failures come back as a 500 that
// still carries a CommandResult, so those bodies are returned, not errors.
func sendCommand(client *http.Client, baseURL string, playerName string, command string) (*engine.CommandResult, error) {
	jsonData, err := json.Marshal(commandRequest{Command: command, PlayerName: playerName})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := client.Post(
		baseURL+"/v1/command",
		"application/json",
		bytes.NewBuffer(jsonData),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusInternalServerError {
		var errorResp ErrorResponse
		if err := json.Unmarshal(body, &errorResp); err != nil {
			return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
		}
		return nil, fmt.Errorf("command failed: %s", errorResp.Error)
	}

	var result engine.CommandResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &result, nil
}
