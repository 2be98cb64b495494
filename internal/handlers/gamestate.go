package handlers

import (
	"log/slog"
	"net/http"

	"github.com/jwebster45206/legacy-engine/internal/logger"
	"github.com/jwebster45206/legacy-engine/internal/middleware"
	"github.com/jwebster45206/legacy-engine/pkg/engine"
)

type GameStateHandler struct {
	engine *engine.Engine
	logger *slog.Logger
}

func NewGameStateHandler(e *engine.Engine, logger *slog.Logger) *GameStateHandler {
	return &GameStateHandler{
		engine: e,
		logger: logger,
	}
}

// ServeHTTP handles GET /v1/gamestate?playerName=. Unknown players are
// created on first read.
func (h *GameStateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := logger.WithRequestID(h.logger, middleware.RequestIDFrom(r.Context()))

	if r.Method != http.MethodGet {
		methodNotAllowed(w, log, http.MethodGet)
		return
	}

	gs, err := h.engine.LoadGameState(r.Context(), r.URL.Query().Get("playerName"))
	if err != nil {
		logger.WithError(log, err).Error("Failed to load game state")
		writeError(w, log, http.StatusInternalServerError, "Failed to retrieve game state")
		return
	}

	writeJSON(w, log, http.StatusOK, DataResponse{Success: true, Data: gs})
}
