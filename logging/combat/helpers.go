package combat

import (
	"context"

	"dungeondelve/server/logging"
)

const (
	// EventEncounterStarted is emitted when the player steps onto an enemy tile.
	EventEncounterStarted logging.EventType = "combat.encounter_started"
	// EventDamage is emitted when either side deals damage.
	EventDamage logging.EventType = "combat.damage"
	// EventEnemyDefeated is emitted when the encounter enemy falls.
	EventEnemyDefeated logging.EventType = "combat.enemy_defeated"
	// EventPlayerDefeated is emitted when the player's health reaches zero.
	EventPlayerDefeated logging.EventType = "combat.player_defeated"
)

// EncounterStartedPayload captures the rolled enemy instance.
type EncounterStartedPayload struct {
	Enemy     string `json:"enemy"`
	Health    int    `json:"health"`
	MaxHealth int    `json:"maxHealth"`
}

// DamagePayload captures the amount dealt to a single target.
type DamagePayload struct {
	Action       string `json:"action,omitempty"`
	Amount       int    `json:"amount"`
	TargetHealth int    `json:"targetHealth"`
	Defended     bool   `json:"defended,omitempty"`
}

// EnemyDefeatedPayload describes the rewarded kill.
type EnemyDefeatedPayload struct {
	Enemy  string `json:"enemy"`
	Reward int    `json:"reward"`
}

// PlayerDefeatedPayload names the enemy that ended the run.
type PlayerDefeatedPayload struct {
	Enemy string `json:"enemy"`
}

// EncounterStarted publishes an encounter start event.
func EncounterStarted(ctx context.Context, pub logging.Publisher, turn uint64, actor logging.EntityRef, payload EncounterStartedPayload, extra map[string]any) {
	if pub == nil {
		return
	}
	event := logging.Event{
		Type:     EventEncounterStarted,
		Turn:     turn,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryCombat,
		Payload:  payload,
		Extra:    extra,
	}
	pub.Publish(ctx, event)
}

// Damage publishes a combat damage event for a single target.
func Damage(ctx context.Context, pub logging.Publisher, turn uint64, actor logging.EntityRef, target logging.EntityRef, payload DamagePayload, extra map[string]any) {
	if pub == nil {
		return
	}
	event := logging.Event{
		Type:     EventDamage,
		Turn:     turn,
		Actor:    actor,
		Targets:  []logging.EntityRef{target},
		Severity: logging.SeverityInfo,
		Category: logging.CategoryCombat,
		Payload:  payload,
		Extra:    extra,
	}
	pub.Publish(ctx, event)
}

// EnemyDefeated publishes a defeat event for the eliminated enemy.
func EnemyDefeated(ctx context.Context, pub logging.Publisher, turn uint64, actor logging.EntityRef, target logging.EntityRef, payload EnemyDefeatedPayload, extra map[string]any) {
	if pub == nil {
		return
	}
	event := logging.Event{
		Type:     EventEnemyDefeated,
		Turn:     turn,
		Actor:    actor,
		Targets:  []logging.EntityRef{target},
		Severity: logging.SeverityInfo,
		Category: logging.CategoryCombat,
		Payload:  payload,
		Extra:    extra,
	}
	pub.Publish(ctx, event)
}

// PlayerDefeated publishes the terminal defeat event.
func PlayerDefeated(ctx context.Context, pub logging.Publisher, turn uint64, actor logging.EntityRef, payload PlayerDefeatedPayload, extra map[string]any) {
	if pub == nil {
		return
	}
	event := logging.Event{
		Type:     EventPlayerDefeated,
		Turn:     turn,
		Actor:    actor,
		Severity: logging.SeverityWarn,
		Category: logging.CategoryCombat,
		Payload:  payload,
		Extra:    extra,
	}
	pub.Publish(ctx, event)
}
