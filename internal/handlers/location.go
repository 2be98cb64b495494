package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/jwebster45206/legacy-engine/internal/logger"
	"github.com/jwebster45206/legacy-engine/internal/middleware"
	"github.com/jwebster45206/legacy-engine/pkg/engine"
	"github.com/jwebster45206/legacy-engine/pkg/world"
)

type LocationHandler struct {
	engine       *engine.Engine
	defaultWorld string
	logger       *slog.Logger
}

func NewLocationHandler(e *engine.Engine, defaultWorld string, logger *slog.Logger) *LocationHandler {
	if defaultWorld == "" {
		defaultWorld = world.DefaultWorld
	}
	return &LocationHandler{
		engine:       e,
		defaultWorld: defaultWorld,
		logger:       logger,
	}
}

// ServeHTTP handles GET /v1/location?world=&x=&y=. Missing coordinates
// default to the origin.
func (h *LocationHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := logger.WithRequestID(h.logger, middleware.RequestIDFrom(r.Context()))

	if r.Method != http.MethodGet {
		methodNotAllowed(w, log, http.MethodGet)
		return
	}

	q := r.URL.Query()
	c := world.Coordinates{World: q.Get("world")}
	if c.World == "" {
		c.World = h.defaultWorld
	}

	var err error
	if c.X, err = intParam(q.Get("x")); err != nil {
		writeError(w, log, http.StatusBadRequest, "Invalid coordinates. X and Y must be numbers.")
		return
	}
	if c.Y, err = intParam(q.Get("y")); err != nil {
		writeError(w, log, http.StatusBadRequest, "Invalid coordinates. X and Y must be numbers.")
		return
	}

	place, err := h.engine.PeekPlace(r.Context(), c)
	if err != nil {
		logger.WithError(log, err).Error("Failed to load location", "coordinates", c.Key())
		writeError(w, log, http.StatusInternalServerError, "Failed to retrieve location data")
		return
	}

	writeJSON(w, log, http.StatusOK, DataResponse{Success: true, Data: place})
}

func intParam(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}
