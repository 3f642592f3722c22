// lilazul is the household assistant backend: MCP tools for crochet
// projects, books, monthly cakes and mood sharing, plus a small REST
// surface for the companion UI.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"

	"github.com/geppie/lilazul/internal/clock"
	"github.com/geppie/lilazul/internal/config"
	"github.com/geppie/lilazul/internal/httpapi"
	"github.com/geppie/lilazul/internal/journal"
	"github.com/geppie/lilazul/internal/logging"
	"github.com/geppie/lilazul/internal/notify"
	"github.com/geppie/lilazul/internal/store"
	"github.com/geppie/lilazul/internal/tools"
	"github.com/geppie/lilazul/internal/upstream"
)

const version = "0.3.0"

func main() {
	// Load .env file if present (don't error if missing)
	if err := godotenv.Load(); err == nil {
		logging.Info("main", "loaded .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		logging.Error("main", "config: %v", err)
		os.Exit(1)
	}

	clk, err := clock.New()
	if err != nil {
		// No timezone database means every timestamp would be wrong.
		logging.Error("main", "clock: %v", err)
		os.Exit(1)
	}

	deps := &tools.Dependencies{
		Upstream: upstream.NewClient(cfg.UpstreamBaseURL),
		Clock:    clk,
	}

	// Without credentials the store handle stays nil and store-dependent
	// calls fail per-call instead of taking the whole process down.
	var st *store.Store
	if cfg.StoreURL == "" {
		logging.Info("main", "no store credentials configured; store-dependent tools will fail")
	} else {
		st, err = store.New(context.Background(), cfg.StoreURL, clk.NowTime)
		if err != nil {
			logging.Error("main", "store: %v", err)
			os.Exit(1)
		}
		defer st.Close()
		deps.Store = st
	}

	j, err := journal.Open(cfg.StatePath)
	if err != nil {
		logging.Error("main", "journal: %v", err)
	} else {
		defer j.Close()
		deps.Journal = j
	}

	if cfg.DiscordToken != "" && cfg.DiscordChannel != "" {
		notifier, err := notify.New(cfg.DiscordToken, cfg.DiscordChannel)
		if err != nil {
			logging.Error("main", "notifier: %v", err)
		} else {
			deps.NotifyMood = notifier.MoodUpdated
			logging.Info("main", "mood notifier enabled")
		}
	}

	mcpServer := server.NewMCPServer(
		"lilazul",
		version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)
	tools.RegisterAll(mcpServer, deps)

	streamServer := server.NewStreamableHTTPServer(mcpServer,
		server.WithEndpointPath("/mcp"),
		server.WithStateLess(true),
	)

	var restStore httpapi.Store
	if st != nil {
		restStore = st
	}
	handler := httpapi.NewHandler(restStore, deps.Journal, streamServer, version)
	srv := httpapi.NewServer(httpapi.ServerConfig{Address: cfg.HTTPAddress}, handler.Routes())

	go func() {
		logging.Info("main", "listening on %s (MCP at /mcp)", cfg.HTTPAddress)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Error("main", "server: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logging.Info("main", "shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logging.Error("main", "shutdown: %v", err)
	}
}
