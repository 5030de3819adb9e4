package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"github.com/plus3/tickloop/engine"
	"github.com/plus3/tickloop/engine/config"
	"go.uber.org/zap"
)

func main() {
	os.Exit(execute(os.Args[1:]))
}

// execute returns the process exit code so deferred log syncing runs first.
func execute(args []string) int {
	flags := flag.NewFlagSet("tickloop-stress", flag.ContinueOnError)
	configPath := flags.String("config", "", "Optional TOML configuration file.")
	duration := flags.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	entityCount := flags.Int("entities", 10000, "The number of tickables to register.")
	tps := flags.Int("tps", 0, "Target ticks per second (default from config).")
	fps := flags.Int("fps", 0, "Target frames per second (default from config).")
	seed := flags.Uint64("seed", 1, "Seed for entity placement.")
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
	if *tps > 0 {
		cfg.Engine.TickRate = *tps
	}
	if *fps > 0 {
		cfg.Engine.FrameRate = *fps
	}

	log, err := config.NewLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer log.Sync()

	if err := run(log, cfg.Engine, *entityCount, *duration, *seed); err != nil {
		log.Error("stress test failed", zap.Error(err))
		return 1
	}
	return 0
}

func run(log *zap.Logger, cfg config.EngineConfig, entityCount int, duration time.Duration, seed uint64) error {
	log.Info("starting tickloop stress test")

	e, err := engine.New(cfg, engine.WithLogger(log))
	if err != nil {
		return err
	}
	host := newHeadlessHost(e, cfg.Width, cfg.Height)
	e.Initialize(host)

	// 1. One shared animated sprite, advanced by the update loop.
	sprite := stripSprite(8, 16)
	sprite.SetAnimationSpeed(0.25)
	sprite.SetAnimateOnUpdate(true)
	e.AddResource(sprite)

	// 2. Populate the registry.
	log.Info("populating registry", zap.Int("entities", entityCount))
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	res := e.Resolution()
	for i := 0; i < entityCount; i++ {
		e.Add(newMover(sprite, res, rng))
	}

	report := &Report{
		Duration:  duration,
		Entities:  entityCount,
		TickRate:  cfg.TickRate,
		FrameRate: cfg.FrameRate,
		Width:     res.Width,
		Height:    res.Height,
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	// 3. Run both loops and sample the diagnostics once per second.
	e.SetDiagnostics(true)
	if err := e.Start(); err != nil {
		return err
	}

	log.Info("running", zap.Duration("duration", duration))
	ctx, cancel := context.WithTimeout(context.Background(), duration)
	defer cancel()

	startTime := time.Now()
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		case <-ticker.C:
			report.TPS.Values = append(report.TPS.Values, e.DebugTPS())
			report.FPS.Values = append(report.FPS.Values, e.DebugFPS())
		}
	}

	e.Stop()
	report.TotalTime = time.Since(startTime)
	report.Loops = e.Stats().Loops
	report.TPS.Finalize()
	report.FPS.Finalize()
	report.PaintTime.Samples = host.paintSamples()
	report.PaintTime.Finalize()
	report.SkippedPaints = host.skipped.Load()
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Info("simulation finished")

	// 4. Generate the report to the console.
	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		return fmt.Errorf("generate report: %w", err)
	}
	fmt.Println("--- End of Report ---")
	return nil
}
