package net

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"dungeondelve/server/internal/grid"
	"dungeondelve/server/internal/persistence"
	"dungeondelve/server/internal/run"
	"dungeondelve/server/internal/stats"
	"dungeondelve/server/logging"
	lifecyclelog "dungeondelve/server/logging/lifecycle"
)

// HubConfig wires the hub's collaborators.
type HubConfig struct {
	Run       run.Config
	Storage   persistence.Storage
	Publisher logging.Publisher
	Logger    *log.Logger
}

// Session binds one connected client to its ledger and current dungeon run.
// All mutation happens under the hub lock, preserving the strictly
// turn-sequential contract: each command runs to completion before the next
// is accepted.
type Session struct {
	ID      string
	ledger  *stats.Ledger
	run     *run.Run
	retries int
}

// Hub owns every live session. Each session's run is independent; there is
// no shared world state between players.
type Hub struct {
	mu        sync.Mutex
	cfg       HubConfig
	sessions  map[string]*Session
	publisher logging.Publisher
	logger    *log.Logger
}

// NewHub constructs a hub around the given configuration.
func NewHub(cfg HubConfig) *Hub {
	publisher := cfg.Publisher
	if publisher == nil {
		publisher = logging.NopPublisher()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Hub{
		cfg:       cfg,
		sessions:  make(map[string]*Session),
		publisher: publisher,
		logger:    logger,
	}
}

// Join creates a session. A non-empty playerID resumes that player's
// persisted ledger; otherwise a fresh identity is minted. A new dungeon run
// starts either way; layouts are never persisted.
func (h *Hub) Join(playerID string) (string, stateMessage) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if playerID == "" {
		playerID = uuid.NewString()
	}

	ledger := h.loadLedger(playerID)
	session := &Session{
		ID:     playerID,
		ledger: ledger,
	}
	session.run = h.newRun(session)
	h.sessions[playerID] = session

	lifecyclelog.SessionJoined(context.Background(), h.publisher, logging.EntityRef{ID: playerID, Kind: logging.EntityKindSession}, nil)

	return playerID, h.snapshotLocked(session)
}

// Session reports whether the id belongs to a live session.
func (h *Hub) Session(id string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ok := h.sessions[id]
	return ok
}

// Snapshot returns the current state for a session.
func (h *Hub) Snapshot(sessionID string) (stateMessage, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	session, ok := h.sessions[sessionID]
	if !ok {
		return stateMessage{}, false
	}
	return h.snapshotLocked(session), true
}

// HandleCommand applies one client command and returns the resulting state.
// Unknown commands and commands invalid for the current phase fall through
// as no-ops; the client simply receives an unchanged snapshot.
func (h *Hub) HandleCommand(sessionID string, msg clientMessage) (stateMessage, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	session, ok := h.sessions[sessionID]
	if !ok {
		return stateMessage{}, false
	}

	wasTerminal := session.run.Phase().Terminal()

	switch msg.Type {
	case "move":
		if dir, ok := parseDirection(msg.Direction); ok {
			session.run.Move(dir)
		}
	case "fight":
		session.run.Fight()
	case "spell":
		session.run.Spell()
	case "heal":
		session.run.Heal()
	case "defend":
		session.run.Defend()
	case "retry":
		// Retry is offered on defeat only: health fully restores and a fresh
		// dungeon replaces the abandoned one.
		if session.run.Phase() == run.PhaseDefeat {
			session.ledger.RestoreFull()
			session.retries++
			session.run = h.newRun(session)
			wasTerminal = false
		}
	case "leave":
		session.run.Cancel()
	}

	if session.run.Phase().Terminal() && !wasTerminal {
		h.savePlayerLocked(session)
	}

	return h.snapshotLocked(session), true
}

// Disconnect drops the session, persisting the ledger first.
func (h *Hub) Disconnect(sessionID, reason string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	session, ok := h.sessions[sessionID]
	if !ok {
		return
	}
	h.savePlayerLocked(session)
	delete(h.sessions, sessionID)

	lifecyclelog.SessionClosed(context.Background(), h.publisher,
		logging.EntityRef{ID: sessionID, Kind: logging.EntityKindSession},
		lifecyclelog.SessionClosedPayload{Reason: reason}, nil)
}

// SessionCount returns the number of live sessions for diagnostics.
func (h *Hub) SessionCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions)
}

func (h *Hub) newRun(session *Session) *run.Run {
	cfg := h.cfg.Run
	// Every session and every retry gets a distinct deterministic seed
	// derived from the configured root seed.
	cfg.Dungeon.Seed = fmt.Sprintf("%s:%s:%d", cfg.Dungeon.Seed, session.ID, session.retries)
	publisher := logging.WithFields(h.publisher, map[string]any{"sessionId": session.ID})
	return run.New(cfg, session.ledger, publisher)
}

func (h *Hub) loadLedger(playerID string) *stats.Ledger {
	if h.cfg.Storage == nil {
		return stats.NewLedger(stats.DefaultMaxHealth, 0)
	}
	record, err := h.cfg.Storage.LoadPlayer(playerID)
	if err != nil {
		if !errors.Is(err, persistence.ErrNotFound) {
			h.logger.Printf("failed to load player %s: %v", playerID, err)
		}
		return stats.NewLedger(stats.DefaultMaxHealth, 0)
	}
	return stats.Restore(record.Snapshot())
}

func (h *Hub) savePlayerLocked(session *Session) {
	if h.cfg.Storage == nil {
		return
	}
	record := persistence.FromSnapshot(session.ID, session.ledger.Snapshot())
	if err := h.cfg.Storage.SavePlayer(record); err != nil {
		h.logger.Printf("failed to save player %s: %v", session.ID, err)
	}
}

func (h *Hub) snapshotLocked(session *Session) stateMessage {
	r := session.run
	msg := stateMessage{
		Type:       "state",
		Ver:        ProtocolVersion,
		Phase:      r.Phase().String(),
		Viewport:   viewportPayload(r.Viewport()),
		Health:     session.ledger.Health(),
		MaxHealth:  session.ledger.MaxHealth(),
		Coins:      session.ledger.Coins(),
		Log:        r.BattleLog(),
		ServerTime: time.Now().UnixMilli(),
	}
	if encounter := r.Encounter(); encounter != nil {
		msg.Battle = &battlePayload{
			Enemy:     encounter.Enemy,
			Health:    encounter.Health,
			MaxHealth: encounter.MaxHealth,
		}
	}
	if r.Phase().Terminal() {
		summary := r.Summary()
		msg.Summary = &summary
	}
	return msg
}

func parseDirection(raw string) (grid.Direction, bool) {
	switch raw {
	case "north", "up":
		return grid.North, true
	case "south", "down":
		return grid.South, true
	case "west", "left":
		return grid.West, true
	case "east", "right":
		return grid.East, true
	default:
		return grid.Direction{}, false
	}
}
