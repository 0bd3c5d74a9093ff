package logging_test

import (
	"context"
	"testing"
	"time"

	"dungeondelve/server/logging"
	"dungeondelve/server/logging/sinks"
)

func newTestRouter(t *testing.T, cfg logging.Config) (*logging.Router, *sinks.MemorySink) {
	t.Helper()
	memory := sinks.NewMemorySink()
	router, err := logging.NewRouter(nil, cfg, []logging.NamedSink{{Name: "memory", Sink: memory}})
	if err != nil {
		t.Fatalf("NewRouter: %v", err)
	}
	return router, memory
}

func closeRouter(t *testing.T, router *logging.Router) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := router.Close(ctx); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestRouterDeliversEvents(t *testing.T) {
	router, memory := newTestRouter(t, logging.DefaultConfig())

	router.Publish(context.Background(), logging.Event{
		Type:     "combat.damage",
		Turn:     7,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryCombat,
		Actor:    logging.EntityRef{ID: "player", Kind: logging.EntityKindPlayer},
	})
	closeRouter(t, router)

	events := memory.Events()
	if len(events) != 1 {
		t.Fatalf("expected 1 delivered event, got %d", len(events))
	}
	if events[0].Turn != 7 || events[0].Type != "combat.damage" {
		t.Fatalf("event mangled in transit: %+v", events[0])
	}
	if events[0].Time.IsZero() {
		t.Fatalf("router should stamp missing timestamps")
	}
}

func TestRouterDropsUntypedEvents(t *testing.T) {
	router, memory := newTestRouter(t, logging.DefaultConfig())
	router.Publish(context.Background(), logging.Event{Turn: 1})
	closeRouter(t, router)

	if got := len(memory.Events()); got != 0 {
		t.Fatalf("untyped events must be rejected, got %d", got)
	}
}

func TestRouterFiltersBelowMinimumSeverity(t *testing.T) {
	cfg := logging.DefaultConfig()
	cfg.MinimumSeverity = logging.SeverityWarn
	router, memory := newTestRouter(t, cfg)

	router.Publish(context.Background(), logging.Event{Type: "a", Severity: logging.SeverityInfo})
	router.Publish(context.Background(), logging.Event{Type: "b", Severity: logging.SeverityError})
	closeRouter(t, router)

	events := memory.Events()
	if len(events) != 1 || events[0].Type != "b" {
		t.Fatalf("severity filter failed: %+v", events)
	}
}

func TestRouterAttachesConfiguredFields(t *testing.T) {
	cfg := logging.DefaultConfig()
	cfg.Fields = map[string]any{"service": "dungeondelve"}
	router, memory := newTestRouter(t, cfg)

	router.Publish(context.Background(), logging.Event{Type: "x", Severity: logging.SeverityInfo})
	closeRouter(t, router)

	events := memory.Events()
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Extra["service"] != "dungeondelve" {
		t.Fatalf("configured fields missing: %+v", events[0].Extra)
	}
}

func TestRouterIgnoresPublishAfterClose(t *testing.T) {
	router, memory := newTestRouter(t, logging.DefaultConfig())
	closeRouter(t, router)

	router.Publish(context.Background(), logging.Event{Type: "late", Severity: logging.SeverityInfo})
	if got := len(memory.Events()); got != 0 {
		t.Fatalf("events published after close must be dropped, got %d", got)
	}
}

func TestRouterStatsCountDeliveries(t *testing.T) {
	router, _ := newTestRouter(t, logging.DefaultConfig())
	for i := 0; i < 5; i++ {
		router.Publish(context.Background(), logging.Event{Type: "tick", Severity: logging.SeverityInfo})
	}
	closeRouter(t, router)

	stats := router.Stats()
	if stats.EventsTotal != 5 {
		t.Fatalf("expected 5 events counted, got %d", stats.EventsTotal)
	}
	if stats.DroppedTotal != 0 {
		t.Fatalf("expected no drops, got %d", stats.DroppedTotal)
	}
}

func TestWithFieldsWrapsPublisher(t *testing.T) {
	router, memory := newTestRouter(t, logging.DefaultConfig())
	wrapped := logging.WithFields(router, map[string]any{"sessionId": "abc"})

	wrapped.Publish(context.Background(), logging.Event{Type: "y", Severity: logging.SeverityInfo})
	closeRouter(t, router)

	events := memory.Events()
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Extra["sessionId"] != "abc" {
		t.Fatalf("wrapped fields missing: %+v", events[0].Extra)
	}
}
