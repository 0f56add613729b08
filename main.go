package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/soocke/facecam-go/app"
	"github.com/soocke/facecam-go/config"
	"github.com/soocke/facecam-go/debug"
)

func main() {
	cfgPath := flag.String("config", "", "path to the JSON config file (default: per-user config dir)")
	debugFlag := flag.Bool("debug", false, "enable debug logging and runtime stats")
	flag.Parse()

	boot := NewLogger(slog.LevelInfo)
	path := *cfgPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			boot.Warn("no config dir, using defaults", "error", err)
		}
		path = p
	}

	cfg := config.DefaultConfig()
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			boot.Error("config load", "path", path, "error", err)
		}
		cfg = loaded
	}
	if *debugFlag {
		cfg.Debug = true
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := NewLogger(level)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if cfg.Debug {
		debug.StartGoroutineLogger(ctx, 5*time.Second, logger)
		debug.StartMemLogger(ctx, 5*time.Second, logger)
	}

	application := app.NewApp("facecam", 960, 720, cfg, logger)
	if err := application.Start(); err != nil {
		logger.Error("facecam", "error", err)
		os.Exit(1)
	}
}
