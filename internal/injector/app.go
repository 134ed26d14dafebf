package injector

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/gambo/ecs/internal/component"
	"github.com/gambo/ecs/internal/data"
	coresys "github.com/gambo/ecs/internal/core/system"
	"github.com/gambo/ecs/internal/scripting"
	"github.com/gambo/ecs/internal/system"
)

// Boot adds the standard systems to the context and seeds the registry from
// the configured spawn list. Returns the number of entities spawned.
func (a *App) Boot() (int, error) {
	c := a.Context
	if _, err := coresys.AddSystem[*system.MovementSystem](c); err != nil {
		return 0, fmt.Errorf("add movement system: %w", err)
	}
	if _, err := coresys.AddSystem[*system.RegenSystem](c); err != nil {
		return 0, fmt.Errorf("add regen system: %w", err)
	}
	if _, err := coresys.AddSystem[*system.CleanupSystem](c); err != nil {
		return 0, fmt.Errorf("add cleanup system: %w", err)
	}
	if a.Config.Scripting.Enabled {
		if _, err := coresys.AddSystem[*scripting.ScriptSystem](c); err != nil {
			return 0, fmt.Errorf("add script system: %w", err)
		}
	}

	if a.Config.Spawn.File == "" {
		return 0, nil
	}
	list, err := data.LoadSpawnList(a.Config.Spawn.File)
	if err != nil {
		return 0, err
	}
	spawned, err := list.Apply(c.Registry(), component.TypeByName)
	if err != nil {
		return len(spawned), fmt.Errorf("apply spawn list: %w", err)
	}
	a.Log.Info("registry seeded", zap.Int("entities", len(spawned)), zap.String("file", a.Config.Spawn.File))
	return len(spawned), nil
}

// Shutdown detaches every system. The cleanup func returned by
// InitializeApp still has to run afterwards.
func (a *App) Shutdown() {
	a.Context.Close()
	_ = a.Log.Sync()
}
