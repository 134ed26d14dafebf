package injector

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lua "github.com/yuin/gopher-lua"

	"github.com/gambo/ecs/internal/component"
	"github.com/gambo/ecs/internal/config"
	"github.com/gambo/ecs/internal/core/ecs"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	scripts := filepath.Join(dir, "scripts")
	require.NoError(t, os.MkdirAll(scripts, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(scripts, "count.lua"), []byte(`
ticks = 0
function on_tick(dt) ticks = ticks + 1 end
`), 0o644))
	spawn := filepath.Join(dir, "spawn_list.yaml")
	require.NoError(t, os.WriteFile(spawn, []byte(`
- count: 2
  components:
    - type: Position
      args: [0, 0]
    - type: Velocity
      args: [10, 0]
- components:
    - type: Health
      args: [0, 5]
`), 0o644))

	cfg := config.Default()
	cfg.Logging.Level = "error"
	cfg.Scripting.Dir = scripts
	cfg.Spawn.File = spawn
	return cfg
}

func TestInitializeAndBoot(t *testing.T) {
	app, cleanup, err := InitializeApp(testConfig(t))
	require.NoError(t, err)
	defer cleanup()

	spawned, err := app.Boot()
	require.NoError(t, err)
	assert.Equal(t, 3, spawned)
	assert.Len(t, app.Context.Systems(), 4)

	app.Context.Tick(100 * time.Millisecond)
	assert.Equal(t, lua.LNumber(1), app.Engine.Global("ticks"))

	r := app.Context.Registry()
	assert.Equal(t, 2, r.EntitiesCount(), "the zero-health entity is cleaned up")
	for p := range ecs.GetComponentsOfType[component.Position](r) {
		assert.InDelta(t, 1.0, p.X, 1e-9)
	}

	app.Shutdown()
	assert.Equal(t, 0, app.Context.Len())
	assert.Equal(t, 0, r.Bus().Len())
}

func TestBootWithoutScriptsOrSpawns(t *testing.T) {
	cfg := testConfig(t)
	cfg.Scripting.Enabled = false
	cfg.Spawn.File = ""

	app, cleanup, err := InitializeApp(cfg)
	require.NoError(t, err)
	defer cleanup()

	spawned, err := app.Boot()
	require.NoError(t, err)
	assert.Zero(t, spawned)
	assert.Len(t, app.Context.Systems(), 3)
	assert.Equal(t, lua.LNil, app.Engine.Global("ticks"))
}

func TestInitializeFailsOnBrokenScripts(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.WriteFile(filepath.Join(cfg.Scripting.Dir, "broken.lua"), []byte("function ("), 0o644))

	_, _, err := InitializeApp(cfg)
	assert.ErrorContains(t, err, "init lua engine")
}
