package scripting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/gambo/ecs/internal/component"
	"github.com/gambo/ecs/internal/core/ecs"
	coresys "github.com/gambo/ecs/internal/core/system"
)

const hooks = `
ticks = 0
added = {}
removed_entity = nil
function on_tick(dt) ticks = ticks + 1 end
function on_component_added(id, name) table.insert(added, name) end
function on_entity_removed(id, permanent) removed_entity = id end
function on_entity_added(id)
	if id == 2 then error("no second entity") end
end
`

func TestScriptSystemForwardsEvents(t *testing.T) {
	engine, err := NewEngine("", zap.NewNop())
	require.NoError(t, err)
	defer engine.Close()
	require.NoError(t, engine.DoString(hooks))

	services := coresys.NewServices()
	coresys.Provide(services, engine)
	coresys.Provide(services, TypeLookup(component.TypeByName))
	coresys.Provide(services, zap.NewNop())
	c := coresys.NewContext(
		coresys.WithCatalog(coresys.NewCatalog().MustRegister(NewScriptSystem)),
		coresys.WithResolver(services),
	)
	require.NoError(t, component.Register(c.Registry()))

	s, err := coresys.AddSystem[*ScriptSystem](c)
	require.NoError(t, err)
	r := c.Registry()

	e := r.CreateEntity()
	_, err = ecs.AddComponent[component.Position](r, e, 1, 1)
	require.NoError(t, err)
	added := engine.Global("added").(*lua.LTable)
	assert.Equal(t, lua.LString("Position"), added.RawGetInt(1))

	c.Tick(time.Millisecond)
	c.Tick(time.Millisecond)
	assert.Equal(t, lua.LNumber(2), engine.Global("ticks"))

	r.CreateEntity()
	assert.Equal(t, 1, s.Failures())

	r.RemoveEntity(e, false)
	assert.Equal(t, lua.LNumber(e.ID), engine.Global("removed_entity"))

	require.NoError(t, engine.DoString(`assert(ecs.count() == 1)`))
	require.True(t, coresys.RemoveSystem[*ScriptSystem](c))
	assert.Equal(t, lua.LNil, engine.Global("ecs"))
}
