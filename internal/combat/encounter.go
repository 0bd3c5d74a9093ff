package combat

import (
	"context"
	"fmt"
	"math/rand"

	"dungeondelve/server/logging"
	combatlog "dungeondelve/server/logging/combat"
	"dungeondelve/server/roster"
)

// PlayerStats is the external collaborator holding the player's health pool
// and coin balance. Both mutators clamp internally.
type PlayerStats interface {
	Health() int
	MaxHealth() int
	TakeDamage(amount int)
	AddHealth(amount int)
	AddCoins(amount int)
}

// Outcome reports where an encounter stands after a player action resolves,
// including the enemy's answering turn.
type Outcome int

const (
	// OutcomeContinue keeps the encounter open awaiting the next action.
	OutcomeContinue Outcome = iota
	// OutcomeVictory means the enemy fell; control returns to exploration.
	OutcomeVictory
	// OutcomeDefeat means the player's health reached zero; the run is over.
	OutcomeDefeat
)

// Encounter is the combat-only state created when the player steps onto an
// enemy tile and destroyed when the battle ends.
type Encounter struct {
	Enemy     string
	Health    int
	MaxHealth int
	attack    roster.Range
	reward    roster.Range
	defending bool
}

// Result describes the effect of one full combat round: the player's action
// and, unless the enemy fell, the enemy's counterattack.
type Result struct {
	Outcome      Outcome
	Message      string
	PlayerDamage int
	EnemyDamage  int
	Reward       int
}

// Engine sequences encounters for one dungeon run. Exactly one encounter is
// active at a time; actions outside an encounter are silent no-ops.
type Engine struct {
	cfg       Config
	templates []roster.Template
	stats     PlayerStats
	rng       *rand.Rand
	publisher logging.Publisher
	encounter *Encounter
	playerRef logging.EntityRef
}

// NewEngine builds a combat engine. An empty roster falls back to the
// built-in defaults so combat always has something to throw at the player.
func NewEngine(cfg Config, templates []roster.Template, stats PlayerStats, rng *rand.Rand, publisher logging.Publisher) *Engine {
	if len(templates) == 0 {
		templates = roster.Defaults()
	}
	if publisher == nil {
		publisher = logging.NopPublisher()
	}
	return &Engine{
		cfg:       cfg.Normalized(),
		templates: templates,
		stats:     stats,
		rng:       rng,
		publisher: publisher,
		playerRef: logging.EntityRef{ID: "player", Kind: logging.EntityKindPlayer},
	}
}

// InBattle reports whether an encounter is active.
func (e *Engine) InBattle() bool {
	return e.encounter != nil
}

// Current returns the active encounter, or nil outside battle.
func (e *Engine) Current() *Encounter {
	return e.encounter
}

// Begin samples an enemy template and rolls its health, opening an encounter.
// Attack and reward bounds copy verbatim from the template; only the reward
// is rolled later, once, on defeat. Calling Begin mid-battle replaces nothing
// and returns the existing encounter.
func (e *Engine) Begin(turn uint64) *Encounter {
	if e.encounter != nil {
		return e.encounter
	}
	template := e.templates[e.rng.Intn(len(e.templates))]
	health := template.Health.Roll(e.rng)
	e.encounter = &Encounter{
		Enemy:     template.Name,
		Health:    health,
		MaxHealth: health,
		attack:    template.Attack,
		reward:    template.Reward,
	}
	combatlog.EncounterStarted(context.Background(), e.publisher, turn, e.playerRef, combatlog.EncounterStartedPayload{
		Enemy:     template.Name,
		Health:    health,
		MaxHealth: health,
	}, nil)
	return e.encounter
}

// Abandon drops the active encounter without resolving it. Used when a run
// is cancelled mid-battle.
func (e *Engine) Abandon() {
	e.encounter = nil
}

// Fight resolves a basic attack round.
func (e *Engine) Fight(turn uint64) Result {
	return e.playerAttack(turn, "fight", e.cfg.Fight)
}

// Spell resolves a spell attack round from the higher damage range.
func (e *Engine) Spell(turn uint64) Result {
	return e.playerAttack(turn, "spell", e.cfg.Spell)
}

// Heal restores player health, then lets the enemy answer. Healing never
// skips the enemy's attack.
func (e *Engine) Heal(turn uint64) Result {
	if e.encounter == nil {
		return Result{Outcome: OutcomeContinue}
	}
	e.encounter.defending = false
	amount := e.cfg.Heal.Roll(e.rng)
	e.stats.AddHealth(amount)
	message := fmt.Sprintf("You recover %d health.", amount)
	return e.enemyTurn(turn, message)
}

// Defend raises the player's guard: the next enemy attack this round is
// halved, rounded to nearest.
func (e *Engine) Defend(turn uint64) Result {
	if e.encounter == nil {
		return Result{Outcome: OutcomeContinue}
	}
	e.encounter.defending = true
	return e.enemyTurn(turn, "You brace behind your shield.")
}

func (e *Engine) playerAttack(turn uint64, action string, damage roster.Range) Result {
	if e.encounter == nil {
		return Result{Outcome: OutcomeContinue}
	}
	e.encounter.defending = false

	dealt := damage.Roll(e.rng)
	e.encounter.Health -= dealt
	if e.encounter.Health < 0 {
		e.encounter.Health = 0
	}

	enemyRef := logging.EntityRef{ID: e.encounter.Enemy, Kind: logging.EntityKindEnemy}
	combatlog.Damage(context.Background(), e.publisher, turn, e.playerRef, enemyRef, combatlog.DamagePayload{
		Action:       action,
		Amount:       dealt,
		TargetHealth: e.encounter.Health,
	}, nil)

	if e.encounter.Health <= 0 {
		return e.resolveVictory(turn, dealt)
	}

	message := fmt.Sprintf("You hit the %s for %d damage.", e.encounter.Enemy, dealt)
	result := e.enemyTurn(turn, message)
	result.PlayerDamage = dealt
	return result
}

func (e *Engine) resolveVictory(turn uint64, dealt int) Result {
	enemy := e.encounter.Enemy
	reward := e.encounter.reward.Roll(e.rng)
	e.stats.AddCoins(reward)
	e.encounter = nil

	enemyRef := logging.EntityRef{ID: enemy, Kind: logging.EntityKindEnemy}
	combatlog.EnemyDefeated(context.Background(), e.publisher, turn, e.playerRef, enemyRef, combatlog.EnemyDefeatedPayload{
		Enemy:  enemy,
		Reward: reward,
	}, nil)

	return Result{
		Outcome:      OutcomeVictory,
		Message:      fmt.Sprintf("The %s falls! You loot %d coins.", enemy, reward),
		PlayerDamage: dealt,
		Reward:       reward,
	}
}

// enemyTurn rolls the enemy's attack, applies the defend modifier, and checks
// for the terminal defeat state. The defending flag resets every turn.
func (e *Engine) enemyTurn(turn uint64, prefix string) Result {
	rolled := e.encounter.attack.Roll(e.rng)
	defended := e.encounter.defending
	if defended {
		// Halve rounded to nearest.
		rolled = (rolled + 1) / 2
	}
	e.encounter.defending = false

	e.stats.TakeDamage(rolled)

	enemyRef := logging.EntityRef{ID: e.encounter.Enemy, Kind: logging.EntityKindEnemy}
	combatlog.Damage(context.Background(), e.publisher, turn, enemyRef, e.playerRef, combatlog.DamagePayload{
		Action:       "attack",
		Amount:       rolled,
		TargetHealth: e.stats.Health(),
		Defended:     defended,
	}, nil)

	message := fmt.Sprintf("%s The %s strikes back for %d damage.", prefix, e.encounter.Enemy, rolled)
	if defended {
		message = fmt.Sprintf("%s Your guard absorbs the blow; the %s deals %d damage.", prefix, e.encounter.Enemy, rolled)
	}

	if e.stats.Health() <= 0 {
		enemy := e.encounter.Enemy
		e.encounter = nil
		combatlog.PlayerDefeated(context.Background(), e.publisher, turn, e.playerRef, combatlog.PlayerDefeatedPayload{Enemy: enemy}, nil)
		return Result{
			Outcome:     OutcomeDefeat,
			Message:     fmt.Sprintf("The %s lands a killing blow. Your run ends here.", enemy),
			EnemyDamage: rolled,
		}
	}

	return Result{
		Outcome:     OutcomeContinue,
		Message:     message,
		EnemyDamage: rolled,
	}
}
