package ecs

import (
	"fmt"
	"reflect"
	"sync"
)

// ComponentType identifies a concrete component type. Values are assigned on
// first use and stay stable for the life of the process, so they can be shared
// between registries.
type ComponentType uint32

// Unique is implemented by component types that an entity may hold at most
// once. RegisterComponent with AsUnique marks a type the same way without
// touching the type itself.
type Unique interface {
	UniqueComponent()
}

type typeInfo struct {
	rtype  reflect.Type
	zero   func() any
	unique bool
}

// The type table is process-wide; registries on different goroutines may
// resolve types concurrently even though each registry is single-threaded.
var typeTable = struct {
	mu     sync.RWMutex
	byType map[reflect.Type]ComponentType
	byName map[string]ComponentType
	infos  []typeInfo
}{
	byType: make(map[reflect.Type]ComponentType, 64),
	byName: make(map[string]ComponentType, 64),
	infos:  make([]typeInfo, 1, 64), // slot 0 is the invalid type
}

var uniqueIface = reflect.TypeOf((*Unique)(nil)).Elem()

// TypeOf returns the ComponentType for T.
func TypeOf[T any]() ComponentType {
	rt := reflect.TypeOf((*T)(nil)).Elem()
	return lookupType(rt, func() any {
		var zero T
		return zero
	})
}

// TypeOfValue returns the ComponentType of c's dynamic type.
func TypeOfValue(c any) ComponentType {
	if c == nil {
		return 0
	}
	return lookupType(reflect.TypeOf(c), nil)
}

// LookupType finds a previously seen component type by its Go type name,
// e.g. "component.Position".
func LookupType(name string) (ComponentType, bool) {
	typeTable.mu.RLock()
	defer typeTable.mu.RUnlock()
	t, ok := typeTable.byName[name]
	return t, ok
}

func lookupType(rt reflect.Type, zero func() any) ComponentType {
	typeTable.mu.RLock()
	t, ok := typeTable.byType[rt]
	hasZero := ok && typeTable.infos[t].zero != nil
	typeTable.mu.RUnlock()
	if ok && (hasZero || zero == nil) {
		return t
	}

	typeTable.mu.Lock()
	defer typeTable.mu.Unlock()
	if t, ok = typeTable.byType[rt]; ok {
		if typeTable.infos[t].zero == nil {
			typeTable.infos[t].zero = zero
		}
		return t
	}
	t = ComponentType(len(typeTable.infos))
	typeTable.infos = append(typeTable.infos, typeInfo{
		rtype:  rt,
		zero:   zero,
		unique: rt.Implements(uniqueIface),
	})
	typeTable.byType[rt] = t
	typeTable.byName[rt.String()] = t
	return t
}

func (t ComponentType) info() (typeInfo, bool) {
	typeTable.mu.RLock()
	defer typeTable.mu.RUnlock()
	if t == 0 || int(t) >= len(typeTable.infos) {
		return typeInfo{}, false
	}
	return typeTable.infos[t], true
}

// Valid reports whether t was produced by TypeOf or TypeOfValue.
func (t ComponentType) Valid() bool {
	_, ok := t.info()
	return ok
}

// Type returns the Go type behind t, or nil for an invalid type.
func (t ComponentType) Type() reflect.Type {
	info, ok := t.info()
	if !ok {
		return nil
	}
	return info.rtype
}

func (t ComponentType) String() string {
	info, ok := t.info()
	if !ok {
		return fmt.Sprintf("ComponentType(%d)", uint32(t))
	}
	return info.rtype.String()
}

// Factory builds a component instance from a flat argument list.
type Factory func(args ...any) (any, error)

type componentDef struct {
	factory Factory
	unique  bool
}

// ComponentOption adjusts a component registration.
type ComponentOption func(*componentDef)

// AsUnique limits the type to one instance per entity.
func AsUnique() ComponentOption {
	return func(d *componentDef) { d.unique = true }
}

// RegisterComponent installs build as the constructor used by AddComponent
// for T on this registry. Types without a registration can still be added
// without arguments; they start from their zero value. T must be a struct.
func RegisterComponent[T any](r *Registry, build func(args ...any) (T, error), opts ...ComponentOption) (ComponentType, error) {
	t := TypeOf[T]()
	if err := checkKind(t); err != nil {
		return 0, err
	}
	def := &componentDef{}
	if build != nil {
		def.factory = func(args ...any) (any, error) {
			return build(args...)
		}
	}
	for _, opt := range opts {
		opt(def)
	}
	r.defs[t] = def
	return t, nil
}

// checkKind rejects component types that are not structs.
func checkKind(t ComponentType) error {
	rt := t.Type()
	if rt == nil {
		return fmt.Errorf("%w: unknown component type %d", ErrConstruction, uint32(t))
	}
	if rt.Kind() != reflect.Struct {
		return fmt.Errorf("%w: %s is a %s, components must be structs", ErrConstruction, rt, rt.Kind())
	}
	return nil
}

// isUnique checks the registration flag first, then the marker interface.
func (r *Registry) isUnique(t ComponentType) bool {
	if def, ok := r.defs[t]; ok && def.unique {
		return true
	}
	info, ok := t.info()
	return ok && info.unique
}

func (r *Registry) construct(t ComponentType, args []any) (any, error) {
	if err := checkKind(t); err != nil {
		return nil, err
	}
	info, _ := t.info()
	if def, ok := r.defs[t]; ok && def.factory != nil {
		c, err := def.factory(args...)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrConstruction, t, err)
		}
		if c == nil || reflect.TypeOf(c) != info.rtype {
			return nil, fmt.Errorf("%w: factory for %s returned %T", ErrConstruction, t, c)
		}
		return c, nil
	}
	if len(args) > 0 {
		return nil, fmt.Errorf("%w: no factory for %s accepting %d arguments", ErrConstruction, t, len(args))
	}
	if info.zero == nil {
		return nil, fmt.Errorf("%w: no factory for %s", ErrConstruction, t)
	}
	return info.zero(), nil
}
