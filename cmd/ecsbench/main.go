package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/pkg/profile"
	"go.uber.org/zap"

	"github.com/gambo/ecs/internal/component"
	"github.com/gambo/ecs/internal/core/ecs"
	coresys "github.com/gambo/ecs/internal/core/system"
	"github.com/gambo/ecs/internal/system"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	entities := flag.Int("entities", 10000, "number of entities to spawn")
	iterations := flag.Int("iterations", 1000, "number of ticks to run")
	mode := flag.String("profile", "cpu", "profile mode: cpu, mem or none")
	flag.Parse()

	switch *mode {
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "none":
	default:
		return fmt.Errorf("unknown profile mode %q", *mode)
	}

	c := coresys.NewContext(coresys.WithCatalog(system.NewCatalog()))
	r := c.Registry()
	if err := component.Register(r); err != nil {
		return err
	}
	if _, err := coresys.AddSystem[*system.MovementSystem](c, zap.NewNop()); err != nil {
		return fmt.Errorf("add movement system: %w", err)
	}

	for i := range *entities {
		if err := spawn(r, i); err != nil {
			return fmt.Errorf("spawn %d: %w", i, err)
		}
	}

	start := time.Now()
	for range *iterations {
		c.Tick(16 * time.Millisecond)
	}
	tickTime := time.Since(start)

	start = time.Now()
	rows := 0
	for range *iterations {
		ecs.Each3(r, func(ecs.Entity, component.Position, component.Velocity, component.Health) { rows++ })
	}
	queryTime := time.Since(start)

	fmt.Printf("entities=%d iterations=%d\n", *entities, *iterations)
	fmt.Printf("movement tick: %s total, %s/tick\n", tickTime, tickTime/time.Duration(max(*iterations, 1)))
	fmt.Printf("3-way query:   %s total, %d rows\n", queryTime, rows)
	return nil
}

// spawn gives every entity a position, every second one a velocity and every
// third one health.
func spawn(r *ecs.Registry, i int) error {
	e := r.CreateEntity()
	if err := r.ReplaceComponent(component.Position{X: float64(i)}, e); err != nil {
		return err
	}
	if i%2 == 0 {
		if err := r.ReplaceComponent(component.Velocity{DX: 1, DY: 1}, e); err != nil {
			return err
		}
	}
	if i%3 == 0 {
		return r.ReplaceComponent(component.Health{Current: 10, Max: 10}, e)
	}
	return nil
}
