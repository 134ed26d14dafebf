package scripting

import (
	"strings"
	"time"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/gambo/ecs/internal/core/ecs"
	coresys "github.com/gambo/ecs/internal/core/system"
)

// Global Lua functions ScriptSystem calls when they are defined.
const (
	HookTick             = "on_tick"              // (dt_seconds)
	HookEntityAdded      = "on_entity_added"      // (id)
	HookEntityRemoved    = "on_entity_removed"    // (id, permanent)
	HookComponentAdded   = "on_component_added"   // (id, type_name)
	HookComponentRemoved = "on_component_removed" // (id, type_name)
)

// ScriptSystem forwards registry events and ticks to Lua hooks and binds the
// attached registry as the "ecs" global. Hook errors are logged and counted;
// they never stop the tick.
// Phase 1 (Update).
type ScriptSystem struct {
	coresys.Base
	engine   *Engine
	lookup   TypeLookup
	log      *zap.Logger
	failures int
}

func NewScriptSystem(engine *Engine, lookup TypeLookup, log *zap.Logger) *ScriptSystem {
	return &ScriptSystem{engine: engine, lookup: lookup, log: log}
}

func (s *ScriptSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *ScriptSystem) OnRegistryAttached(r *ecs.Registry) {
	s.engine.Bind(r, s.lookup)
}

func (s *ScriptSystem) OnRegistryDetached(*ecs.Registry) {
	s.engine.Unbind()
}

func (s *ScriptSystem) Update(dt time.Duration) {
	s.call(HookTick, lua.LNumber(dt.Seconds()))
}

func (s *ScriptSystem) OnEntityAdded(ev ecs.EntityAdded) {
	s.call(HookEntityAdded, lua.LNumber(ev.Entity.ID))
}

func (s *ScriptSystem) OnEntityRemoved(ev ecs.EntityRemoved) {
	s.call(HookEntityRemoved, lua.LNumber(ev.Entity.ID), lua.LBool(ev.Permanent))
}

func (s *ScriptSystem) OnComponentAdded(ev ecs.ComponentAdded) {
	s.call(HookComponentAdded, lua.LNumber(ev.Entity.ID), lua.LString(shortName(ev.Type)))
}

func (s *ScriptSystem) OnComponentRemoved(ev ecs.ComponentRemoved) {
	s.call(HookComponentRemoved, lua.LNumber(ev.Entity.ID), lua.LString(shortName(ev.Type)))
}

// Failures returns how many hook calls have raised a Lua error.
func (s *ScriptSystem) Failures() int { return s.failures }

func (s *ScriptSystem) call(hook string, args ...lua.LValue) {
	if err := s.engine.CallHook(hook, args...); err != nil {
		s.failures++
		s.log.Error("lua hook failed", zap.String("hook", hook), zap.Error(err))
	}
}

// shortName drops the package qualifier: "component.Position" -> "Position".
func shortName(t ecs.ComponentType) string {
	name := t.String()
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[i+1:]
	}
	return name
}
