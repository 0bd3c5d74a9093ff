package run

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"dungeondelve/server/internal/combat"
	"dungeondelve/server/internal/dungeon"
	"dungeondelve/server/internal/grid"
	"dungeondelve/server/internal/stats"
	"dungeondelve/server/internal/vision"
	"dungeondelve/server/logging"
	economylog "dungeondelve/server/logging/economy"
	lifecyclelog "dungeondelve/server/logging/lifecycle"
	"dungeondelve/server/roster"
)

// Phase tracks where a run stands. Movement is accepted only while exploring;
// combat actions only while in battle. Victory and Defeat are terminal.
type Phase int

const (
	PhaseExploring Phase = iota
	PhaseBattle
	PhaseVictory
	PhaseDefeat
)

// String returns the wire label for snapshots.
func (p Phase) String() string {
	switch p {
	case PhaseExploring:
		return "exploring"
	case PhaseBattle:
		return "battle"
	case PhaseVictory:
		return "victory"
	case PhaseDefeat:
		return "defeat"
	default:
		return "unknown"
	}
}

// Terminal reports whether the run has ended.
func (p Phase) Terminal() bool {
	return p == PhaseVictory || p == PhaseDefeat
}

// Summary accumulates reward accounting for one run. The reward log is
// append-only and ordered oldest first.
type Summary struct {
	EnemiesDefeated int      `json:"enemiesDefeated"`
	ChestsOpened    int      `json:"chestsOpened"`
	CoinsEarned     int      `json:"coinsEarned"`
	Rewards         []string `json:"rewards,omitempty"`
}

func (s *Summary) appendReward(entry string) {
	s.Rewards = append(s.Rewards, entry)
}

// Config bundles everything needed to start a run.
type Config struct {
	Dungeon    dungeon.Config    `json:"dungeon"`
	Combat     combat.Config     `json:"combat"`
	ChestCoins roster.Range      `json:"chestCoins"`
	Roster     []roster.Template `json:"-"`
}

// DefaultConfig returns the stock run parameters.
func DefaultConfig() Config {
	return Config{
		Dungeon:    dungeon.DefaultConfig(),
		Combat:     combat.DefaultConfig(),
		ChestCoins: roster.Range{Min: 10, Max: 40},
	}
}

// Run owns one dungeon attempt end to end: the grid, the fog-of-war state,
// the player position, the active encounter, and the reward summary. All of
// it is discarded together when the run ends; only the ledger survives.
type Run struct {
	id        string
	cfg       Config
	grid      *grid.Grid
	vision    *vision.State
	player    grid.Position
	exit      grid.Position
	phase     Phase
	engine    *combat.Engine
	summary   Summary
	ledger    *stats.Ledger
	publisher logging.Publisher
	turn      uint64
	battleLog string
}

// New generates a fresh dungeon and wires the run around it.
func New(cfg Config, ledger *stats.Ledger, publisher logging.Publisher) *Run {
	result := dungeon.Generate(cfg.Dungeon.Normalized())
	return NewWithDungeon(cfg, result, ledger, publisher)
}

// NewWithDungeon builds a run over an already generated dungeon. Tests use
// this to hand-craft layouts.
func NewWithDungeon(cfg Config, result *dungeon.Result, ledger *stats.Ledger, publisher logging.Publisher) *Run {
	if publisher == nil {
		publisher = logging.NopPublisher()
	}
	if ledger == nil {
		ledger = stats.NewLedger(stats.DefaultMaxHealth, 0)
	}
	dungeonCfg := cfg.Dungeon.Normalized()
	cfg.Dungeon = dungeonCfg

	r := &Run{
		id:        uuid.NewString(),
		cfg:       cfg,
		grid:      result.Grid,
		vision:    result.Vision,
		player:    result.Start,
		exit:      result.Exit,
		phase:     PhaseExploring,
		ledger:    ledger,
		publisher: publisher,
		battleLog: "You descend into the dungeon.",
	}
	combatRNG := dungeon.NewDeterministicRNG(dungeonCfg.Seed, "combat.encounter")
	r.engine = combat.NewEngine(cfg.Combat, cfg.Roster, ledger, combatRNG, publisher)

	width, height := result.Grid.Dimensions()
	lifecyclelog.RunStarted(context.Background(), publisher, r.ref(), lifecyclelog.RunStartedPayload{
		Seed:   dungeonCfg.Seed,
		Width:  width,
		Height: height,
		Rooms:  result.Rooms,
	}, nil)

	return r
}

// ID returns the run identifier.
func (r *Run) ID() string { return r.id }

// Phase returns the current run phase.
func (r *Run) Phase() Phase { return r.phase }

// Player returns the player's current position.
func (r *Run) Player() grid.Position { return r.player }

// Exit returns the exit anchor.
func (r *Run) Exit() grid.Position { return r.exit }

// Grid exposes the tile state for rendering and tests.
func (r *Run) Grid() *grid.Grid { return r.grid }

// Vision exposes the fog-of-war state for rendering and tests.
func (r *Run) Vision() *vision.State { return r.vision }

// Summary returns the reward accounting so far.
func (r *Run) Summary() Summary {
	copied := r.summary
	copied.Rewards = append([]string(nil), r.summary.Rewards...)
	return copied
}

// Turn returns the number of accepted player actions so far.
func (r *Run) Turn() uint64 { return r.turn }

// BattleLog returns the single current presentation message. It is
// overwritten on every state change, unlike the ordered reward log.
func (r *Run) BattleLog() string { return r.battleLog }

// Encounter returns the active encounter, or nil outside battle.
func (r *Run) Encounter() *combat.Encounter { return r.engine.Current() }

// Viewport renders the player-centered window at the default size.
func (r *Run) Viewport() [][]vision.Cell {
	return vision.Window(r.grid, r.vision, r.player, vision.DefaultWindowSize)
}

// Move advances the player one tile. Rejected silently while in battle, after
// a terminal outcome, or when the target is out of bounds or a wall. On
// success the departed tile is marked visited, vision expands around the new
// position, and the occupied tile's trigger fires.
func (r *Run) Move(dir grid.Direction) {
	if r.phase != PhaseExploring {
		return
	}
	target := r.player.Add(dir)
	if !r.grid.IsWalkable(target) {
		return
	}

	r.turn++
	r.vision.MarkVisited(r.player)
	r.player = target
	r.vision.RevealAround(target, r.cfg.Dungeon.VisionRadius)

	switch r.grid.At(target) {
	case grid.TileEnemy:
		r.phase = PhaseBattle
		encounter := r.engine.Begin(r.turn)
		r.battleLog = fmt.Sprintf("A %s blocks your path!", encounter.Enemy)
	case grid.TileChest:
		r.openChest(target)
	case grid.TileExit:
		r.finish(PhaseVictory)
	}
}

// Fight resolves a basic attack. No-op outside battle.
func (r *Run) Fight() { r.combatAction(r.engine.Fight) }

// Spell resolves a spell attack. No-op outside battle.
func (r *Run) Spell() { r.combatAction(r.engine.Spell) }

// Heal restores health at the cost of the enemy's turn. No-op outside battle.
func (r *Run) Heal() { r.combatAction(r.engine.Heal) }

// Defend halves the next enemy attack. No-op outside battle.
func (r *Run) Defend() { r.combatAction(r.engine.Defend) }

func (r *Run) combatAction(action func(uint64) combat.Result) {
	if r.phase != PhaseBattle {
		return
	}
	r.turn++
	result := action(r.turn)
	if result.Message != "" {
		r.battleLog = result.Message
	}

	switch result.Outcome {
	case combat.OutcomeVictory:
		r.grid.Set(r.player, grid.TileFloor)
		r.summary.EnemiesDefeated++
		r.summary.CoinsEarned += result.Reward
		r.summary.appendReward(fmt.Sprintf("Defeated an enemy for %d coins", result.Reward))
		r.ledger.RecordEnemyDefeated()
		r.phase = PhaseExploring
		economylog.CoinsGranted(context.Background(), r.publisher, r.turn, r.ref(), economylog.CoinsGrantedPayload{
			Amount:  result.Reward,
			Balance: r.ledger.Coins(),
			Source:  "enemy",
		}, nil)
	case combat.OutcomeDefeat:
		r.finish(PhaseDefeat)
	}
}

// Cancel abandons the run without a terminal outcome, discarding the grid
// and any active encounter. Nothing is persisted.
func (r *Run) Cancel() {
	if r.phase.Terminal() {
		return
	}
	r.engine.Abandon()
	r.phase = PhaseDefeat
	r.battleLog = "You abandon the dungeon."
}

func (r *Run) openChest(pos grid.Position) {
	chestRNG := dungeon.NewDeterministicRNG(r.cfg.Dungeon.Seed, fmt.Sprintf("run.chest.%d.%d", pos.X, pos.Y))
	coins := r.cfg.ChestCoins.Roll(chestRNG)
	r.ledger.AddCoins(coins)
	r.grid.Set(pos, grid.TileFloor)
	r.summary.ChestsOpened++
	r.summary.CoinsEarned += coins
	r.summary.appendReward(fmt.Sprintf("Found %d coins in a chest", coins))
	r.battleLog = fmt.Sprintf("You pry open a chest and find %d coins.", coins)

	economylog.ChestOpened(context.Background(), r.publisher, r.turn, r.ref(), economylog.ChestOpenedPayload{
		Coins: coins,
		X:     pos.X,
		Y:     pos.Y,
	}, nil)
	economylog.CoinsGranted(context.Background(), r.publisher, r.turn, r.ref(), economylog.CoinsGrantedPayload{
		Amount:  coins,
		Balance: r.ledger.Coins(),
		Source:  "chest",
	}, nil)
}

func (r *Run) finish(outcome Phase) {
	r.phase = outcome
	switch outcome {
	case PhaseVictory:
		r.ledger.RecordVictory()
		r.battleLog = "You found the stairs out. Victory!"
	case PhaseDefeat:
		r.ledger.RecordDefeat()
	}

	lifecyclelog.RunEnded(context.Background(), r.publisher, r.turn, r.ref(), lifecyclelog.RunEndedPayload{
		Outcome:         outcome.String(),
		EnemiesDefeated: r.summary.EnemiesDefeated,
		ChestsOpened:    r.summary.ChestsOpened,
		CoinsEarned:     r.summary.CoinsEarned,
	}, nil)
}

func (r *Run) ref() logging.EntityRef {
	return logging.EntityRef{ID: r.id, Kind: logging.EntityKindDungeon}
}
