package main

import (
	"context"
	"os"

	"stress-backend/internal/bootstrap"
	"stress-backend/internal/shared/config"
	"stress-backend/internal/shared/server"
	"stress-backend/internal/shared/telemetry"
)

func main() {
	defer telemetry.Sync()

	cfg := config.Load()
	app, err := bootstrap.Build(context.Background(), cfg)
	if err != nil {
		telemetry.Error("server.bootstrap_failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	defer app.Close()

	addr := server.Addr(cfg.Port)
	telemetry.Info("server.start", map[string]any{"addr": addr, "env": cfg.Env})

	if err := app.Router.Run(addr); err != nil {
		telemetry.Error("server.stopped", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}
