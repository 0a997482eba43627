package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/dd0wney/cluso-strategy/pkg/api"
	"github.com/dd0wney/cluso-strategy/pkg/config"
	"github.com/dd0wney/cluso-strategy/pkg/logging"
	"github.com/dd0wney/cluso-strategy/pkg/server"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config file")
	port := flag.Int("port", 0, "HTTP server port (overrides config and STRATEGY_PORT)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}

	log := logging.NewJSONLogger(os.Stdout, logging.ParseLevel(cfg.Logging.Level))

	log.Info("🚀 Cluso Strategy Engine starting...")
	if *configPath != "" {
		log.Info("📂 Config file", logging.Path(*configPath))
	}
	if cfg.Catalog.Path != "" {
		log.Info("📚 Catalog extension", logging.Path(cfg.Catalog.Path))
	}

	srv, err := api.NewServer(cfg, log)
	if err != nil {
		log.Error("Failed to create server", logging.Error(err))
		os.Exit(1)
	}
	defer srv.Close()

	gs := server.NewGracefulServer(cfg.Server.Addr(), srv.Handler(), server.Options{
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		Logger:          log,
	})

	// SIGHUP swaps in a freshly parsed catalog without a restart.
	gs.SetReloadFunc(srv.ReloadCatalog)

	go srv.UpdateSystemMetricsPeriodically(gs.ShutdownChannel())

	log.Info("✅ Server listening", logging.String("addr", cfg.Server.Addr()))
	log.Info("📊 Health check", logging.String("url",
		fmt.Sprintf("http://localhost:%d/health", cfg.Server.Port)))

	if err := gs.Start(); err != nil {
		log.Error("Server failed", logging.Error(err))
		os.Exit(1)
	}

	log.Info("Server exited")
}
