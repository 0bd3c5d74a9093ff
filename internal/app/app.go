// Package app assembles the server: logging router, enemy roster, player
// storage, the session hub, and the HTTP listener. Configuration comes from
// environment variables with working defaults for local development.
package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"dungeondelve/server/internal/net"
	"dungeondelve/server/internal/persistence"
	"dungeondelve/server/internal/run"
	"dungeondelve/server/logging"
	"dungeondelve/server/logging/sinks"
	"dungeondelve/server/roster"
)

const defaultRosterPath = "config/enemies.json"

// Run starts the server and blocks until ctx is cancelled or the listener
// fails.
func Run(ctx context.Context) error {
	logger := log.New(os.Stdout, "[dungeondelve] ", log.LstdFlags)

	router, err := buildLogRouter()
	if err != nil {
		return fmt.Errorf("build log router: %w", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := router.Close(closeCtx); err != nil {
			logger.Printf("log router close: %v", err)
		}
	}()

	storage, err := buildStorage(logger)
	if err != nil {
		return fmt.Errorf("build storage: %w", err)
	}
	defer storage.Close()

	hub := net.NewHub(net.HubConfig{
		Run:       buildRunConfig(logger),
		Storage:   storage,
		Publisher: router,
		Logger:    logger,
	})

	mux := net.NewMux(hub, net.RouterOptions{LogRouter: router, Logger: logger})
	addr := envString("SERVER_ADDR", ":8080")
	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Printf("listening on %s", addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

func buildLogRouter() (*logging.Router, error) {
	cfg := logging.DefaultConfig()
	if raw := os.Getenv("LOG_SINKS"); raw != "" {
		cfg.EnabledSinks = splitList(raw)
	}
	if path := os.Getenv("LOG_JSON_PATH"); path != "" {
		cfg.JSON.FilePath = path
		if !cfg.HasSink("json") {
			cfg.EnabledSinks = append(cfg.EnabledSinks, "json")
		}
	}

	var named []logging.NamedSink
	if cfg.HasSink("console") {
		named = append(named, logging.NamedSink{
			Name: "console",
			Sink: sinks.NewConsoleSink(os.Stdout, cfg.Console),
		})
	}
	if cfg.HasSink("json") && cfg.JSON.FilePath != "" {
		file, err := os.OpenFile(cfg.JSON.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open json log %s: %w", cfg.JSON.FilePath, err)
		}
		named = append(named, logging.NamedSink{
			Name: "json",
			Sink: sinks.NewJSON(file, cfg.JSON.FlushInterval),
		})
	}

	return logging.NewRouter(nil, cfg, named)
}

func buildStorage(logger *log.Logger) (persistence.Storage, error) {
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		store, err := persistence.NewPostgresStore(dsn)
		if err != nil {
			return nil, err
		}
		logger.Printf("player storage: postgres")
		return store, nil
	}
	dir := envString("DATA_DIR", "data")
	store, err := persistence.NewJSONStore(dir)
	if err != nil {
		return nil, err
	}
	logger.Printf("player storage: json files in %s", dir)
	return store, nil
}

func buildRunConfig(logger *log.Logger) run.Config {
	cfg := run.DefaultConfig()

	cfg.Dungeon.Seed = envString("DUNGEON_SEED", cfg.Dungeon.Seed)
	cfg.Dungeon.Width = envInt("DUNGEON_WIDTH", cfg.Dungeon.Width)
	cfg.Dungeon.Height = envInt("DUNGEON_HEIGHT", cfg.Dungeon.Height)
	cfg.Dungeon.EnemyCount = envInt("DUNGEON_ENEMIES", cfg.Dungeon.EnemyCount)
	cfg.Dungeon.ChestCount = envInt("DUNGEON_CHESTS", cfg.Dungeon.ChestCount)
	cfg.Dungeon.VisionRadius = envInt("VISION_RADIUS", cfg.Dungeon.VisionRadius)

	rosterPath := envString("ROSTER_PATH", defaultRosterPath)
	templates, err := roster.Load(rosterPath)
	if err != nil {
		logger.Printf("roster %s unavailable (%v), using built-in defaults", rosterPath, err)
		templates = roster.Defaults()
	}
	cfg.Roster = templates

	return cfg
}

func envString(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := parts[:0]
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
