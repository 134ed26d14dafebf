package scripting

import (
	"fmt"
	"reflect"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/gambo/ecs/internal/core/ecs"
)

// TypeLookup resolves the component names scripts use to component types.
type TypeLookup func(name string) (ecs.ComponentType, bool)

// Bind exposes r to scripts as the global table "ecs". Entities cross the
// boundary as numeric ids; components as tables keyed by lower-cased field
// names.
func (e *Engine) Bind(r *ecs.Registry, lookup TypeLookup) {
	b := &binding{r: r, lookup: lookup}
	mod := e.vm.NewTable()
	e.vm.SetFuncs(mod, map[string]lua.LGFunction{
		"create":   b.create,
		"remove":   b.remove,
		"restore":  b.restore,
		"alive":    b.alive,
		"count":    b.count,
		"entities": b.entities,
		"add":      b.add,
		"get":      b.get,
		"set":      b.set,
		"del":      b.del,
		"has":      b.has,
		"view":     b.view,
	})
	e.vm.SetGlobal("ecs", mod)
}

// Unbind removes the "ecs" global.
func (e *Engine) Unbind() {
	e.vm.SetGlobal("ecs", lua.LNil)
}

type binding struct {
	r      *ecs.Registry
	lookup TypeLookup
}

func (b *binding) entity(L *lua.LState, n int) ecs.Entity {
	return ecs.Entity{ID: ecs.EntityID(L.CheckInt64(n)), Owner: b.r.ID()}
}

func (b *binding) componentType(L *lua.LState, n int) ecs.ComponentType {
	name := L.CheckString(n)
	if b.lookup != nil {
		if t, ok := b.lookup(name); ok {
			return t
		}
	}
	if t, ok := ecs.LookupType(name); ok {
		return t
	}
	L.ArgError(n, "unknown component type "+name)
	return 0
}

func (b *binding) create(L *lua.LState) int {
	L.Push(lua.LNumber(b.r.CreateEntity().ID))
	return 1
}

func (b *binding) remove(L *lua.LState) int {
	L.Push(lua.LBool(b.r.RemoveEntity(b.entity(L, 1), L.OptBool(2, false))))
	return 1
}

func (b *binding) restore(L *lua.LState) int {
	L.Push(lua.LBool(b.r.AddEntity(b.entity(L, 1))))
	return 1
}

func (b *binding) alive(L *lua.LState) int {
	L.Push(lua.LBool(b.r.HasEntity(b.entity(L, 1))))
	return 1
}

func (b *binding) count(L *lua.LState) int {
	L.Push(lua.LNumber(b.r.EntitiesCount()))
	return 1
}

func (b *binding) entities(L *lua.LState) int {
	tbl := L.NewTable()
	for _, e := range b.r.Entities() {
		tbl.Append(lua.LNumber(e.ID))
	}
	L.Push(tbl)
	return 1
}

// add(id, type, ...) returns the new component, or nil and an error message.
func (b *binding) add(L *lua.LState) int {
	e := b.entity(L, 1)
	t := b.componentType(L, 2)
	args := make([]any, 0, L.GetTop())
	for i := 3; i <= L.GetTop(); i++ {
		args = append(args, fromLuaArg(L.Get(i)))
	}
	c, err := b.r.AddComponent(t, e, args...)
	if err != nil {
		L.Push(lua.LNil)
		L.Push(lua.LString(err.Error()))
		return 2
	}
	L.Push(toLua(L, c))
	return 1
}

func (b *binding) get(L *lua.LState) int {
	c, ok, err := b.r.GetComponent(b.componentType(L, 2), b.entity(L, 1))
	if err != nil || !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(toLua(L, c))
	return 1
}

// set(id, type, fields) overlays fields on the current component, or on a
// zero value when none is attached, and stores the result.
func (b *binding) set(L *lua.LState) int {
	e := b.entity(L, 1)
	t := b.componentType(L, 2)
	fields := L.CheckTable(3)

	v := reflect.New(t.Type()).Elem()
	if cur, ok, err := b.r.GetComponent(t, e); err == nil && ok {
		v.Set(reflect.ValueOf(cur))
	}
	err := fromTable(fields, v)
	if err == nil {
		err = b.r.ReplaceComponent(v.Interface(), e)
	}
	if err != nil {
		L.Push(lua.LFalse)
		L.Push(lua.LString(err.Error()))
		return 2
	}
	L.Push(lua.LTrue)
	return 1
}

func (b *binding) del(L *lua.LState) int {
	L.Push(lua.LBool(b.r.RemoveComponent(b.componentType(L, 2), b.entity(L, 1))))
	return 1
}

func (b *binding) has(L *lua.LState) int {
	_, ok, err := b.r.GetComponent(b.componentType(L, 2), b.entity(L, 1))
	L.Push(lua.LBool(err == nil && ok))
	return 1
}

// view(type, ...) returns the ids of entities holding every listed type.
func (b *binding) view(L *lua.LState) int {
	types := make([]ecs.ComponentType, 0, L.GetTop())
	for i := 1; i <= L.GetTop(); i++ {
		types = append(types, b.componentType(L, i))
	}
	tbl := L.NewTable()
	for _, v := range b.r.View(types...) {
		tbl.Append(lua.LNumber(v.Entity().ID))
	}
	L.Push(tbl)
	return 1
}

func fromLuaArg(v lua.LValue) any {
	switch v := v.(type) {
	case lua.LNumber:
		return float64(v)
	case lua.LString:
		return string(v)
	case lua.LBool:
		return bool(v)
	}
	return nil
}

func fieldKey(name string) string { return strings.ToLower(name) }

func toLua(L *lua.LState, c any) lua.LValue {
	rv := reflect.ValueOf(c)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return lua.LNil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return scalar(rv)
	}
	tbl := L.NewTable()
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if !f.IsExported() {
			continue
		}
		if lv := scalar(rv.Field(i)); lv != lua.LNil {
			tbl.RawSetString(fieldKey(f.Name), lv)
		}
	}
	return tbl
}

func scalar(v reflect.Value) lua.LValue {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return lua.LNumber(v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return lua.LNumber(v.Uint())
	case reflect.Float32, reflect.Float64:
		return lua.LNumber(v.Float())
	case reflect.String:
		return lua.LString(v.String())
	case reflect.Bool:
		return lua.LBool(v.Bool())
	}
	return lua.LNil
}

func fromTable(tbl *lua.LTable, v reflect.Value) error {
	if v.Kind() != reflect.Struct {
		return fmt.Errorf("%s is not a struct component", v.Type())
	}
	rt := v.Type()
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if !f.IsExported() {
			continue
		}
		lv := tbl.RawGetString(fieldKey(f.Name))
		if lv == lua.LNil {
			continue
		}
		if err := setField(v.Field(i), lv); err != nil {
			return fmt.Errorf("%s.%s: %w", rt, f.Name, err)
		}
	}
	return nil
}

func setField(fv reflect.Value, lv lua.LValue) error {
	switch fv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, ok := lv.(lua.LNumber)
		if !ok {
			return fmt.Errorf("expected number, got %s", lv.Type())
		}
		fv.SetInt(int64(n))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, ok := lv.(lua.LNumber)
		if !ok || n < 0 {
			return fmt.Errorf("expected non-negative number, got %s", lv.String())
		}
		fv.SetUint(uint64(n))
	case reflect.Float32, reflect.Float64:
		n, ok := lv.(lua.LNumber)
		if !ok {
			return fmt.Errorf("expected number, got %s", lv.Type())
		}
		fv.SetFloat(float64(n))
	case reflect.String:
		s, ok := lv.(lua.LString)
		if !ok {
			return fmt.Errorf("expected string, got %s", lv.Type())
		}
		fv.SetString(string(s))
	case reflect.Bool:
		bv, ok := lv.(lua.LBool)
		if !ok {
			return fmt.Errorf("expected boolean, got %s", lv.Type())
		}
		fv.SetBool(bool(bv))
	default:
		return fmt.Errorf("unsupported field kind %s", fv.Kind())
	}
	return nil
}
