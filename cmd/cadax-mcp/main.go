// cadax-mcp runs the MCP server over stdio. In local mode it talks to
// Postgres directly; with -server it proxies through a running CADAX
// instance's REST API instead, so it can run on a laptop against a
// tailnet-hosted server.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/meltforce/cadax/internal/config"
	"github.com/meltforce/cadax/internal/mcp"
	"github.com/meltforce/cadax/internal/plan"
	"github.com/meltforce/cadax/internal/storage"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file (local mode)")
	serverURL := flag.String("server", "", "CADAX server URL (remote mode, e.g. https://cadax.tail1234.ts.net)")
	apiKey := flag.String("api-key", "", "API key for remote writes (log_workout)")
	flag.Parse()

	// Logs go to stderr; stdout carries the MCP stdio transport.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	library, err := plan.NewLibrary()
	if err != nil {
		log.Error("failed to load plan templates", "error", err)
		os.Exit(1)
	}

	var ds mcp.DataSource
	if *serverURL != "" {
		ds = mcp.NewHTTPClient(*serverURL, *apiKey)
		log.Info("remote mode", "server", *serverURL)
	} else {
		cfg, err := config.Load(*configPath)
		if err != nil {
			log.Error("failed to load config", "error", err)
			os.Exit(1)
		}
		db, err := storage.New(context.Background(), cfg.Database.DSN())
		if err != nil {
			log.Error("failed to connect database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		ds = db
		log.Info("local mode", "database", cfg.Database.Name)
	}

	s := mcp.New(ds, library, Version, log)
	if err := mcpserver.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "mcp server error: %v\n", err)
		os.Exit(1)
	}
}
