package net

import (
	"dungeondelve/server/internal/run"
	"dungeondelve/server/internal/vision"
)

// ProtocolVersion guards against stale clients after breaking changes.
const ProtocolVersion = 1

type clientMessage struct {
	Type      string `json:"type"`
	Direction string `json:"direction,omitempty"`
}

type joinResponse struct {
	Ver   int          `json:"ver"`
	ID    string       `json:"id"`
	State stateMessage `json:"state"`
}

type cellPayload struct {
	Kind string `json:"kind"`
	Wall string `json:"wall,omitempty"`
}

type battlePayload struct {
	Enemy     string `json:"enemy"`
	Health    int    `json:"health"`
	MaxHealth int    `json:"maxHealth"`
}

// stateMessage carries everything a front end needs to redraw after a state
// change: the classified viewport, the player's vitals, the current battle
// overlay, and the single battle-log line. Summary appears only once the run
// reaches a terminal phase.
type stateMessage struct {
	Type       string          `json:"type"`
	Ver        int             `json:"ver"`
	Phase      string          `json:"phase"`
	Viewport   [][]cellPayload `json:"viewport"`
	Health     int             `json:"health"`
	MaxHealth  int             `json:"maxHealth"`
	Coins      int             `json:"coins"`
	Battle     *battlePayload  `json:"battle,omitempty"`
	Log        string          `json:"log"`
	Summary    *run.Summary    `json:"summary,omitempty"`
	ServerTime int64           `json:"serverTime"`
}

type errorMessage struct {
	Type   string `json:"type"`
	Ver    int    `json:"ver"`
	Reason string `json:"reason"`
}

func viewportPayload(window [][]vision.Cell) [][]cellPayload {
	payload := make([][]cellPayload, len(window))
	for row := range window {
		payload[row] = make([]cellPayload, len(window[row]))
		for col, cell := range window[row] {
			entry := cellPayload{Kind: cell.Kind.String()}
			if cell.Kind == vision.CellWall {
				entry.Wall = cell.Wall.String()
			}
			payload[row][col] = entry
		}
	}
	return payload
}
