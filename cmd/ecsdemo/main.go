package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/gambo/ecs/internal/component"
	"github.com/gambo/ecs/internal/config"
	"github.com/gambo/ecs/internal/core/ecs"
	"github.com/gambo/ecs/internal/injector"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner(name string) {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m               gambo/ecs demo              \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
	fmt.Printf("  \033[1mapp:\033[0m %s\n\n", name)
}

func printSection(title string) {
	lineLen := max(46-len(title)-1, 3)
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := max(42-len(label)-len(numStr), 3)
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

// ── Host loop ──────────────────────────────────────────────────────

func run() error {
	cfgPath := "config/ecsdemo.toml"
	if p := os.Getenv("ECSDEMO_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	app, cleanup, err := injector.InitializeApp(cfg)
	if err != nil {
		return err
	}
	defer cleanup()
	defer app.Shutdown()
	log := app.Log

	printBanner(cfg.App.Name)

	printSection("boot")
	spawned, err := app.Boot()
	if err != nil {
		return err
	}
	if cfg.Scripting.Enabled {
		printOK(fmt.Sprintf("lua scripts loaded from %s", cfg.Scripting.Dir))
	}
	printStat("systems", app.Context.Len())
	printStat("entities", spawned)
	fmt.Println()

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(cfg.Runner.TickRate)
	defer ticker.Stop()

	printSection("running")
	printReady(fmt.Sprintf("tick loop started (tick: %s)", cfg.Runner.TickRate))
	fmt.Println()

	r := app.Context.Registry()
	ticks := 0
	for {
		select {
		case <-ticker.C:
			app.Context.Tick(cfg.Runner.TickRate)
			ticks++
			if ticks%25 == 0 {
				logStats(log, r, ticks)
			}
			if cfg.Runner.Ticks > 0 && ticks >= cfg.Runner.Ticks {
				logStats(log, r, ticks)
				log.Info("tick budget reached", zap.Int("ticks", ticks))
				return nil
			}
		case sig := <-shutdownCh:
			log.Info("shutdown signal received", zap.String("signal", sig.String()))
			return nil
		}
	}
}

func logStats(log *zap.Logger, r *ecs.Registry, ticks int) {
	moving := len(ecs.View2[component.Position, component.Velocity](r))
	log.Info("registry stats",
		zap.Int("tick", ticks),
		zap.Int("entities", r.EntitiesCount()),
		zap.Int("moving", moving),
	)
}
