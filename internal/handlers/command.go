package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/jwebster45206/legacy-engine/internal/logger"
	"github.com/jwebster45206/legacy-engine/internal/middleware"
	"github.com/jwebster45206/legacy-engine/pkg/engine"
)

// maxCommandBody bounds POST /v1/command bodies.
const maxCommandBody = 16 << 10

type CommandRequest struct {
	Command    string `json:"command"`
	PlayerName string `json:"playerName"`
}

type CommandHandler struct {
	engine *engine.Engine
	logger *slog.Logger
}

func NewCommandHandler(e *engine.Engine, logger *slog.Logger) *CommandHandler {
	return &CommandHandler{
		engine: e,
		logger: logger,
	}
}

// ServeHTTP handles POST /v1/command. Parse and not-found failures are
// in-fiction and come back 200 with success=false; persistence failures are
// 500 with the same body shape.
func (h *CommandHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := logger.WithRequestID(h.logger, middleware.RequestIDFrom(r.Context()))

	if r.Method != http.MethodPost {
		methodNotAllowed(w, log, http.MethodPost)
		return
	}

	var req CommandRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxCommandBody)).Decode(&req); err != nil {
		logger.WithError(log, err).Warn("Invalid command request body")
		writeError(w, log, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Command) == "" {
		writeError(w, log, http.StatusBadRequest, "Command is required and must be a string")
		return
	}

	result := h.engine.ExecuteCommand(r.Context(), req.Command, req.PlayerName)

	status := http.StatusOK
	switch result.Error {
	case engine.ErrCodePersistence, engine.ErrCodeInternal:
		status = http.StatusInternalServerError
	}

	log.Debug("Command executed",
		"player", req.PlayerName,
		"command", req.Command,
		"success", result.Success,
		"error_code", result.Error)

	writeJSON(w, log, status, result)
}
