package system

import (
	"reflect"
	"time"

	"github.com/gambo/ecs/internal/core/ecs"
	"github.com/gambo/ecs/internal/core/event"
)

// Phase defines execution ordering within a single tick.
type Phase int

const (
	PhasePreUpdate  Phase = iota // 0: react to last tick's changes
	PhaseUpdate                  // 1: main logic
	PhasePostUpdate              // 2: regen, derived state
	PhaseCleanup                 // 3: destroy queued entities
)

// System is implemented by embedding Base in a concrete kind. Two systems are
// the same system when their concrete kind and attached registry match.
type System interface {
	systemBase() *Base
}

// Updater is implemented by systems that run once per tick.
type Updater interface {
	Phase() Phase
	Update(dt time.Duration)
}

// Base carries the enabled flag, the attached registry and the event
// subscriptions held on that registry.
type Base struct {
	enabled  bool
	registry *ecs.Registry
	subs     []*event.Subscription
}

func (b *Base) systemBase() *Base { return b }

func (b *Base) Enabled() bool { return b.enabled }

// Registry returns the attached registry, or nil.
func (b *Base) Registry() *ecs.Registry { return b.registry }

// Kind is the concrete type of a system.
type Kind = reflect.Type

// Key is the identity of a system: its kind plus the registry it is attached
// to. Detached systems carry registry 0.
type Key struct {
	Kind     Kind
	Registry ecs.RegistryID
}

// KindOf returns the concrete kind of s.
func KindOf(s System) Kind { return reflect.TypeOf(s) }

// KindFor returns the kind of K without an instance.
func KindFor[K System]() Kind { return reflect.TypeOf((*K)(nil)).Elem() }

func KeyOf(s System) Key {
	key := Key{Kind: KindOf(s)}
	if r := s.systemBase().registry; r != nil {
		key.Registry = r.ID()
	}
	return key
}

// Equal reports whether a and b are the same system, regardless of their state.
func Equal(a, b System) bool {
	return KeyOf(a) == KeyOf(b)
}

// SetEnabled flips the enabled flag. OnEnable or OnDisable runs on each
// transition; subscriptions are untouched.
func SetEnabled(s System, enabled bool) {
	b := s.systemBase()
	if b.enabled == enabled {
		return
	}
	b.enabled = enabled
	if enabled {
		if h, ok := s.(Enabler); ok {
			h.OnEnable()
		}
		return
	}
	if h, ok := s.(Disabler); ok {
		h.OnDisable()
	}
}

// SetRegistry moves s to r: handlers are unsubscribed from the previous
// registry, then subscribed to r and OnRegistryAttached runs. A nil r leaves
// the system detached.
func SetRegistry(s System, r *ecs.Registry) {
	b := s.systemBase()
	if prev := b.registry; prev != nil {
		for _, sub := range b.subs {
			sub.Cancel()
		}
		b.subs = b.subs[:0]
		b.registry = nil
		if h, ok := s.(RegistryDetacher); ok {
			h.OnRegistryDetached(prev)
		}
	}
	if r == nil {
		return
	}
	b.registry = r
	b.subs = subscribe(s, r, b.subs)
	if h, ok := s.(RegistryAttacher); ok {
		h.OnRegistryAttached(r)
	}
}

// Detach releases the system's subscriptions. Call it when a system is torn
// down outside a Context.
func Detach(s System) { SetRegistry(s, nil) }

func subscribe(s System, r *ecs.Registry, subs []*event.Subscription) []*event.Subscription {
	if h, ok := s.(ComponentAddedHandler); ok {
		subs = append(subs, r.OnComponentAdded(h.OnComponentAdded))
	}
	if h, ok := s.(ComponentRemovedHandler); ok {
		subs = append(subs, r.OnComponentRemoved(h.OnComponentRemoved))
	}
	if h, ok := s.(EntityAddedHandler); ok {
		subs = append(subs, r.OnEntityAdded(h.OnEntityAdded))
	}
	if h, ok := s.(EntityRemovedHandler); ok {
		subs = append(subs, r.OnEntityRemoved(h.OnEntityRemoved))
	}
	return subs
}
