package agent

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"snakeflip/game"
)

type positionRequest struct {
	Grid string    `json:"grid"`
	Next game.Side `json:"next"`
}

type moveRequest struct {
	positionRequest
	game.Move
}

type moveResponse struct {
	ID string `json:"id"`
	game.Move
}

type applyResponse struct {
	ID     string    `json:"id"`
	Grid   string    `json:"grid"`
	Next   game.Side `json:"next"`
	Status string    `json:"status"`
	Winner string    `json:"winner,omitempty"`
}

type server struct {
	mu    sync.Mutex // Agents and their searchers are not safe for concurrent use
	agent Agent
}

// NewAgentServer routes the agent HTTP API to a.
func NewAgentServer(a Agent) http.Handler {
	s := &server{agent: a}
	r := chi.NewRouter()
	r.Get("/health", s.handleHealth)
	r.Post("/findmove", s.handleFindMove)
	r.Post("/apply", s.handleApply)
	return r
}

// StartAgentServer starts an agent HTTP server on the given port.
func StartAgentServer(port string, a Agent) error {
	log.Info().Msgf("starting agent server on :%s ...", port)
	return http.ListenAndServe(":"+port, NewAgentServer(a))
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) handleFindMove(w http.ResponseWriter, r *http.Request) {
	id := uuid.NewString()

	var payload positionRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "bad request: "+err.Error(), http.StatusBadRequest)
		return
	}
	g, err := game.ParseGrid(payload.Grid, payload.Next)
	if err != nil {
		http.Error(w, "bad request: "+err.Error(), http.StatusBadRequest)
		return
	}
	if status := g.Status(); status.Terminal() {
		http.Error(w, "game is over: "+status.String(), http.StatusConflict)
		return
	}
	if len(g.LegalMoves()) == 0 {
		http.Error(w, "side "+g.Next().String()+" has no legal move", http.StatusConflict)
		return
	}

	s.mu.Lock()
	move, metric := s.agent.FindMove(g)
	s.mu.Unlock()

	log.Info().
		Str("id", id).
		Stringer("side", g.Next()).
		Stringer("move", move).
		Int("episodes", metric.Episodes).
		Dur("elapsed", metric.Duration).
		Msg("found move")

	writeJSON(w, http.StatusOK, moveResponse{ID: id, Move: move})
}

func (s *server) handleApply(w http.ResponseWriter, r *http.Request) {
	id := uuid.NewString()

	var payload moveRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "bad request: "+err.Error(), http.StatusBadRequest)
		return
	}
	g, err := game.ParseGrid(payload.Grid, payload.Next)
	if err != nil {
		http.Error(w, "bad request: "+err.Error(), http.StatusBadRequest)
		return
	}

	next, err := g.Apply(payload.Move)
	switch {
	case errors.Is(err, game.ErrOutOfBound), errors.Is(err, game.ErrWrongTurn), errors.Is(err, game.ErrStuck):
		http.Error(w, "illegal move: "+err.Error(), http.StatusUnprocessableEntity)
		return
	case err != nil:
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	log.Info().Str("id", id).Stringer("move", payload.Move).Msg("applied move")

	status := next.Status()
	response := applyResponse{
		ID:     id,
		Grid:   next.String(),
		Next:   next.Next(),
		Status: "free",
	}
	if status.Terminal() {
		response.Status = "win"
		response.Winner = status.Side.String()
	}
	writeJSON(w, http.StatusOK, response)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}
