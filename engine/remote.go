package engine

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"snakeflip/experiments/metrics"
	"snakeflip/game"
	"snakeflip/searcher/agent"
)

type remoteAgent struct {
	url    string
	client *http.Client
}

// RemoteAgent returns an agent that asks the agent server at url for its moves.
func RemoteAgent(url string, timeout time.Duration) agent.Agent {
	return &remoteAgent{url: url, client: &http.Client{Timeout: timeout}}
}

// FindMove posts the grid to /findmove. Transport failures panic, as a
// game cannot continue without the move.
func (a *remoteAgent) FindMove(g game.Grid) (game.Move, metrics.SearchMetric) {
	move, err := a.requestMove(g)
	if err != nil {
		panic(err)
	}
	return move, metrics.SearchMetric{}
}

func (a *remoteAgent) requestMove(g game.Grid) (game.Move, error) {
	payload := struct {
		Grid string    `json:"grid"`
		Next game.Side `json:"next"`
	}{
		Grid: g.String(),
		Next: g.Next(),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return game.Move{}, fmt.Errorf("failed to encode request: %w", err)
	}

	resp, err := a.client.Post(a.url+"/findmove", "application/json", bytes.NewReader(body))
	if err != nil {
		return game.Move{}, fmt.Errorf("failed to reach agent: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		out, _ := io.ReadAll(resp.Body)
		return game.Move{}, fmt.Errorf("agent returned status %d: %s", resp.StatusCode, bytes.TrimSpace(out))
	}

	var move game.Move
	if err := json.NewDecoder(resp.Body).Decode(&move); err != nil {
		return game.Move{}, fmt.Errorf("failed to decode move: %w", err)
	}
	return move, nil
}
