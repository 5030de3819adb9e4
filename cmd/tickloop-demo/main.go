// Command tickloop-demo runs a small coin-collecting game on the tickloop
// engine, either in a window or inside the terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/tickloop/engine"
	"github.com/plus3/tickloop/engine/audio"
	"github.com/plus3/tickloop/engine/config"
	"github.com/plus3/tickloop/engine/debugui"
	"github.com/plus3/tickloop/engine/ebitenhost"
	"github.com/plus3/tickloop/engine/termhost"
	"go.uber.org/zap"
)

func main() {
	os.Exit(execute(os.Args[1:]))
}

// execute returns the process exit code so deferred log syncing runs first.
func execute(args []string) int {
	flags := flag.NewFlagSet("tickloop-demo", flag.ContinueOnError)
	configPath := flags.String("config", "", "Optional TOML configuration file.")
	hostKind := flags.String("host", "window", "Where to run: window or terminal.")
	if err := flags.Parse(args); err != nil {
		return 2
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		cfg = loaded
	}

	log, err := config.NewLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer log.Sync()

	if err := run(log, cfg, *hostKind); err != nil {
		log.Error("demo failed", zap.Error(err))
		return 1
	}
	return 0
}

func run(log *zap.Logger, cfg *config.Config, hostKind string) error {
	var device audio.Device = audio.Nop{}
	if cfg.Audio.Enabled {
		speaker := audio.NewSpeaker(cfg.Audio, log)
		defer speaker.Close()
		device = speaker
	}

	e, err := engine.New(cfg.Engine, engine.WithLogger(log), engine.WithAudio(device))
	if err != nil {
		return err
	}

	g := newGame(e, log)
	if err := g.loadAssets(cfg.Engine.Workspace); err != nil {
		return fmt.Errorf("load assets: %w", err)
	}

	switch hostKind {
	case "window":
		return runWindow(e, g, cfg.Window)
	case "terminal":
		return runTerminal(e, g, cfg.Window)
	default:
		return fmt.Errorf("unknown host %q", hostKind)
	}
}

func runWindow(e *engine.Engine, g *game, cfg config.WindowConfig) error {
	host := ebitenhost.New(e, cfg)
	if cfg.DebugUI {
		w, h := host.Size()
		overlay := debugui.NewOverlay("tickloop debug", w, h)
		overlay.Add(debugui.NewPerformanceStats(e, 300))
		overlay.Add(debugui.NewResourceBrowser(e))
		overlay.Add(debugui.NewRegistryViewer(e))
		host.AddLayer(overlay)
	}

	e.Display(newMenuOverlay(g))
	if err := e.Start(); err != nil {
		return err
	}
	defer e.Stop()
	return host.Run()
}

func runTerminal(e *engine.Engine, g *game, cfg config.WindowConfig) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	host, err := termhost.New(e, screen, cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	e.Display(newMenuOverlay(g))
	if err := e.Start(); err != nil {
		return err
	}
	defer e.Stop()
	return host.Run(ctx)
}
