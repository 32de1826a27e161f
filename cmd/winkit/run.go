package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/1broseidon/winkit/internal/hotkeys"
	"github.com/1broseidon/winkit/internal/logging"
	"github.com/1broseidon/winkit/internal/platform"
	"github.com/1broseidon/winkit/internal/window"
)

const frameInterval = 16 * time.Millisecond

func runWindow(args []string) int {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("path", "", pathUsage)
	backendName := fs.String("backend", "", "Override the configured backend")
	fullscreen := fs.Bool("fullscreen", false, "Open fullscreen regardless of config")
	if isHelp(args) {
		fmt.Fprintln(os.Stderr, "Usage: winkit run [--path PATH] [--backend NAME] [--fullscreen]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Opens a window with the configured hotkeys and polls events until")
		fmt.Fprintln(os.Stderr, "the window is closed or the process receives SIGINT/SIGTERM.")
		return 0
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}

	res, err := loadConfig(*path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	cfg := res.Config
	if *backendName != "" {
		cfg.Backend = *backendName
	}
	if *fullscreen {
		cfg.Window.Fullscreen = true
	}

	logger, logCloser, err := logging.New(cfg.GetLoggingConfig(), os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer logCloser.Close()

	backend, err := platform.Open(cfg.Backend, "winkit")
	if err != nil {
		logger.Error("failed to open backend", "backend", cfg.Backend, "error", err)
		return 1
	}
	m, err := window.NewManager(backend, window.Options{
		Logger:    logger,
		ClientAPI: platform.ClientAPI(cfg.Window.ClientAPI),
	})
	if err != nil {
		logger.Error("failed to initialize backend", "backend", cfg.Backend, "error", err)
		return 1
	}
	defer m.Free()

	for _, mon := range m.Monitors() {
		logger.Debug("monitor", "monitor", mon, "modes", len(mon.VideoModes()))
	}

	w, err := m.CreateAndRealize(cfg.Window.Title, cfg.Window.Width, cfg.Window.Height, cfg.Window.Fullscreen, nil)
	if err != nil {
		logger.Error("failed to create window", "error", err)
		return 1
	}
	w.SetSwapInterval(cfg.Window.SwapInterval)

	mouse := w.AttachMouseHandler()
	keyboard := w.AttachKeyboardHandler()
	hk := hotkeys.NewHandler(logger, mouse)
	if err := hk.RegisterAll(cfg.Hotkeys); err != nil {
		logger.Error("failed to register hotkeys", "error", err)
		return 1
	}
	w.AddListener(hk)

	logger.Info("window open", "window", w, "backend", cfg.Backend, "hotkeys", len(hk.Bindings()))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for !w.CloseRequested() {
		select {
		case <-ctx.Done():
			logger.Info("received signal, closing window")
			w.SetCloseRequested(true)
			continue
		case <-ticker.C:
		}

		m.Update()
		if mouse.Grabbed() {
			if dx, dy := mouse.TakeAccumulatedDelta(); dx != 0 || dy != 0 {
				logger.Debug("mouse look", "dx", dx, "dy", dy, "keys", len(keyboard.PressedKeys()))
			}
		}
	}

	logger.Info("window closed", "window", w)
	w.Free()
	return 0
}
