package lifecycle

import (
	"context"

	"dungeondelve/server/logging"
)

const (
	// EventRunStarted is emitted when a new dungeon run begins.
	EventRunStarted logging.EventType = "lifecycle.run_started"
	// EventRunEnded is emitted on either terminal outcome.
	EventRunEnded logging.EventType = "lifecycle.run_ended"
	// EventSessionJoined is emitted when a client session connects.
	EventSessionJoined logging.EventType = "lifecycle.session_joined"
	// EventSessionClosed is emitted when a client session disconnects.
	EventSessionClosed logging.EventType = "lifecycle.session_closed"
)

// RunStartedPayload captures the generated dungeon's vitals.
type RunStartedPayload struct {
	Seed   string `json:"seed"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Rooms  int    `json:"rooms"`
}

// RunEndedPayload summarizes a finished run.
type RunEndedPayload struct {
	Outcome         string `json:"outcome"`
	EnemiesDefeated int    `json:"enemiesDefeated"`
	ChestsOpened    int    `json:"chestsOpened"`
	CoinsEarned     int    `json:"coinsEarned"`
}

// SessionClosedPayload captures the reason a session ended.
type SessionClosedPayload struct {
	Reason string `json:"reason"`
}

// RunStarted publishes a run start event.
func RunStarted(ctx context.Context, pub logging.Publisher, actor logging.EntityRef, payload RunStartedPayload, extra map[string]any) {
	if pub == nil {
		return
	}
	event := logging.Event{
		Type:     EventRunStarted,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryLifecycle,
		Payload:  payload,
		Extra:    extra,
	}
	pub.Publish(ctx, event)
}

// RunEnded publishes a terminal outcome event.
func RunEnded(ctx context.Context, pub logging.Publisher, turn uint64, actor logging.EntityRef, payload RunEndedPayload, extra map[string]any) {
	if pub == nil {
		return
	}
	event := logging.Event{
		Type:     EventRunEnded,
		Turn:     turn,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryLifecycle,
		Payload:  payload,
		Extra:    extra,
	}
	pub.Publish(ctx, event)
}

// SessionJoined publishes a session connect event.
func SessionJoined(ctx context.Context, pub logging.Publisher, actor logging.EntityRef, extra map[string]any) {
	if pub == nil {
		return
	}
	event := logging.Event{
		Type:     EventSessionJoined,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryLifecycle,
		Extra:    extra,
	}
	pub.Publish(ctx, event)
}

// SessionClosed publishes a session disconnect event.
func SessionClosed(ctx context.Context, pub logging.Publisher, actor logging.EntityRef, payload SessionClosedPayload, extra map[string]any) {
	if pub == nil {
		return
	}
	event := logging.Event{
		Type:     EventSessionClosed,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryLifecycle,
		Payload:  payload,
		Extra:    extra,
	}
	pub.Publish(ctx, event)
}
