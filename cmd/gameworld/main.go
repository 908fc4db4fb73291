package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/l1jgo/gameworld/internal/config"
	"github.com/l1jgo/gameworld/internal/core/ecs"
	coresys "github.com/l1jgo/gameworld/internal/core/system"
	"github.com/l1jgo/gameworld/internal/data"
	"github.com/l1jgo/gameworld/internal/pool"
	"github.com/l1jgo/gameworld/internal/scripting"
	"github.com/l1jgo/gameworld/internal/system"
	"github.com/l1jgo/gameworld/internal/world"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printSection(title string) {
	lineLen := 46 - len(title) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := 42 - len(label) - len(numStr)
	if dotsLen < 3 {
		dotsLen = 3
	}
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

// ── Game assembly ─────────────────────────────────────────────────

// game is everything the loop needs, wired from config.
type game struct {
	world   *world.World
	prefabs *data.PrefabTable
	pools   []*pool.Pool
	scripts *scripting.Engine
	runner  *coresys.Runner
}

func newGame(cfg *config.Config, log *zap.Logger) (*game, error) {
	w := world.New(log.Named("world"), nil, ecs.WithCapacity(cfg.World.InitialCapacity))

	prefabs, err := data.LoadPrefabTable(cfg.Data.Prefabs, data.DefaultComponents())
	if err != nil {
		return nil, fmt.Errorf("prefabs: %w", err)
	}

	g := &game{world: w, prefabs: prefabs}
	for _, pc := range cfg.Pools {
		if prefabs.Get(pc.Prefab) == nil {
			return nil, fmt.Errorf("pool %s: unknown prefab %q", pc.Name, pc.Prefab)
		}
		prefab := pc.Prefab
		p := pool.New(pc.Name, w, func(w *world.World) ecs.GameObject {
			obj, err := prefabs.Spawn(w, prefab)
			if err != nil {
				log.Error("pool factory failed", zap.String("prefab", prefab), zap.Error(err))
			}
			return obj
		})
		p.Prewarm(pc.Prewarm)
		g.pools = append(g.pools, p)
	}

	g.scripts = scripting.NewEngine(w, prefabs, log.Named("lua"))
	for _, p := range g.pools {
		g.scripts.AddPool(p)
	}
	if err := g.scripts.LoadDir(cfg.Data.Scripts); err != nil {
		g.scripts.Close()
		return nil, fmt.Errorf("scripts: %w", err)
	}

	g.runner = coresys.NewRunner()
	g.runner.Register(system.NewEventDispatchSystem(w.Bus()))
	g.runner.Register(system.NewScriptSystem(g.scripts, log.Named("lua")))
	g.runner.Register(system.NewMovementSystem(w))
	g.runner.Register(system.NewLifetimeSystem(w, g.pools...))
	g.runner.Register(system.NewDeathSystem(w))
	g.runner.SetCommitHook(func() { w.Flush() })
	return g, nil
}

// parked counts objects sitting in pools.
func (g *game) parked() int {
	n := 0
	for _, p := range g.pools {
		n += p.Len()
	}
	return n
}

func (g *game) close() {
	for _, p := range g.pools {
		p.Drain()
	}
	g.world.Flush()
	g.scripts.Close()
}

// ── Main loop ─────────────────────────────────────────────────────

func run() error {
	// 1. Load config
	cfgPath := "config/gameworld.toml"
	if p := os.Getenv("GAMEWORLD_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	// 3. Build world, prefabs, pools and scripts
	g, err := newGame(cfg, log)
	if err != nil {
		return err
	}
	defer g.close()

	log.Info("world ready",
		zap.String("world", g.world.ID()),
		zap.String("prefabs", fmt.Sprintf("%016x", g.prefabs.Fingerprint())),
		zap.Duration("tick_rate", cfg.World.TickRate))

	printSection("World")
	printStat("prefabs", g.prefabs.Count())
	printStat("pools", len(g.pools))
	printStat("parked objects", g.parked())
	printStat("entities", g.world.Len())
	fmt.Println()

	// 4. Start game loop
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(cfg.World.TickRate)
	defer ticker.Stop()

	printReady(fmt.Sprintf("game loop started (tick: %s)", cfg.World.TickRate))
	fmt.Println()

	for {
		select {
		case <-ticker.C:
			g.runner.Tick(cfg.World.TickRate)
			if cfg.World.MaxTicks > 0 && g.runner.Ticks() >= cfg.World.MaxTicks {
				log.Info("tick limit reached",
					zap.Uint64("ticks", g.runner.Ticks()),
					zap.Int("entities", g.world.Len()))
				return nil
			}
		case sig := <-shutdownCh:
			log.Info("shutdown signal received",
				zap.String("signal", sig.String()),
				zap.Uint64("ticks", g.runner.Ticks()),
				zap.Int("entities", g.world.Len()))
			return nil
		}
	}
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
