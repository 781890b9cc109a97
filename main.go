package main

import (
	"errors"
	"flag"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/flycam/config"
	"github.com/milk9111/flycam/logger"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file (optional)")
	profile := flag.String("profile", "", "config profile: flycam, flycam-quit, overview or static")
	debug := flag.Bool("debug", false, "enable debug logging and the pose overlay")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	cfg, err := loadConfig(*configPath, *profile)
	if err != nil {
		logger.Init(logger.Config{Level: "info", Format: "console", Output: os.Stderr})
		slog.Error("load config", "err", err)
		os.Exit(1)
	}
	if *debug {
		cfg.Logging.Level = "debug"
	}
	logger.Init(logger.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
	slog.Info("starting", "profile", cfg.Profile, "policy", cfg.CapturePolicy(), "fly_control", cfg.Camera.FlyControl)

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetTPS(cfg.Frame.TargetRate)
	ebiten.SetVsyncEnabled(cfg.Frame.VSync)

	game, err := NewGame(cfg, *debug)
	if err != nil {
		slog.Error("build scene", "err", err)
		os.Exit(1)
	}

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		slog.Error("run", "err", err)
		os.Exit(1)
	}
	slog.Info("bye")
}

func loadConfig(path, profile string) (*config.Config, error) {
	if path == "" {
		return config.Profile(profile)
	}
	return config.Load(path, profile)
}
