package economy

import (
	"context"

	"dungeondelve/server/logging"
)

const (
	// EventChestOpened is emitted when a chest converts to coins.
	EventChestOpened logging.EventType = "economy.chest_opened"
	// EventCoinsGranted is emitted whenever coins are credited to the player.
	EventCoinsGranted logging.EventType = "economy.coins_granted"
)

// ChestOpenedPayload describes the opened chest.
type ChestOpenedPayload struct {
	Coins int `json:"coins"`
	X     int `json:"x"`
	Y     int `json:"y"`
}

// CoinsGrantedPayload describes a credit and its source.
type CoinsGrantedPayload struct {
	Amount  int    `json:"amount"`
	Balance int    `json:"balance"`
	Source  string `json:"source"`
}

// ChestOpened publishes a chest opening event.
func ChestOpened(ctx context.Context, pub logging.Publisher, turn uint64, actor logging.EntityRef, payload ChestOpenedPayload, extra map[string]any) {
	if pub == nil {
		return
	}
	event := logging.Event{
		Type:     EventChestOpened,
		Turn:     turn,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryEconomy,
		Payload:  payload,
		Extra:    extra,
	}
	pub.Publish(ctx, event)
}

// CoinsGranted publishes a coin credit event.
func CoinsGranted(ctx context.Context, pub logging.Publisher, turn uint64, actor logging.EntityRef, payload CoinsGrantedPayload, extra map[string]any) {
	if pub == nil {
		return
	}
	event := logging.Event{
		Type:     EventCoinsGranted,
		Turn:     turn,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryEconomy,
		Payload:  payload,
		Extra:    extra,
	}
	pub.Publish(ctx, event)
}
