package ecs

import (
	"fmt"
	"iter"

	"go.uber.org/zap"

	"github.com/gambo/ecs/internal/core/event"
)

// Registry owns a set of live entities and the mapping from entity to its
// component bag, and publishes change events on its bus.
//
// A Registry is not safe for concurrent use. Mutating it from a handler or
// while iterating a view of it is the caller's responsibility.
type Registry struct {
	id     RegistryID
	nextID EntityID

	live     *orderedSet
	bags     map[Entity]*bag
	bagOrder *orderedSet

	defs map[ComponentType]*componentDef
	bus  *event.Bus
	log  *zap.Logger
}

// Option configures a Registry.
type Option func(*Registry)

func WithLogger(log *zap.Logger) Option {
	return func(r *Registry) {
		if log != nil {
			r.log = log
		}
	}
}

// WithBus publishes registry events on an existing bus instead of a private one.
func WithBus(b *event.Bus) Option {
	return func(r *Registry) {
		if b != nil {
			r.bus = b
		}
	}
}

func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		id:       nextRegistryID(),
		live:     newOrderedSet(256),
		bags:     make(map[Entity]*bag, 256),
		bagOrder: newOrderedSet(256),
		defs:     make(map[ComponentType]*componentDef, 16),
		bus:      event.NewBus(),
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.log = r.log.With(zap.Uint64("registry", uint64(r.id)))
	return r
}

func (r *Registry) ID() RegistryID     { return r.id }
func (r *Registry) Bus() *event.Bus    { return r.bus }
func (r *Registry) EntitiesCount() int { return r.live.Len() }

// Entities returns the live entities in insertion order.
func (r *Registry) Entities() []Entity {
	out := make([]Entity, len(r.live.keys))
	copy(out, r.live.keys)
	return out
}

// HasEntity reports whether e is currently live in this registry.
func (r *Registry) HasEntity(e Entity) bool {
	return r.live.Has(e)
}

// GetEntity returns the live entity with the given id.
func (r *Registry) GetEntity(id EntityID) (Entity, bool) {
	e := Entity{ID: id, Owner: r.id}
	if !r.live.Has(e) {
		return Entity{}, false
	}
	return e, true
}

// CreateEntity mints the next id and adds the entity to the live set.
func (r *Registry) CreateEntity() Entity {
	r.nextID++
	e := Entity{ID: r.nextID, Owner: r.id}
	r.live.Add(e)
	r.log.Debug("entity created", zap.Uint64("entity", uint64(e.ID)))
	event.Publish(r.bus, EntityAdded{Registry: r, Entity: e})
	return e
}

// AddEntity re-inserts a previously removed handle. It returns false if e is
// already live, belongs to another registry, or carries an id this registry
// never minted; AddEntity cannot be used to invent new ids.
func (r *Registry) AddEntity(e Entity) bool {
	if e.Owner != r.id || e.ID == 0 || e.ID > r.nextID {
		return false
	}
	if !r.live.Add(e) {
		return false
	}
	r.log.Debug("entity added", zap.Uint64("entity", uint64(e.ID)))
	event.Publish(r.bus, EntityAdded{Registry: r, Entity: e})
	return true
}

// RemoveEntity takes e out of the live set. A soft removal keeps the
// component bag so a later AddEntity restores it; a permanent removal
// discards the bag. Returns whether e was live before the call.
func (r *Registry) RemoveEntity(e Entity, permanent bool) bool {
	removed := r.live.Remove(e)
	if permanent {
		delete(r.bags, e)
		r.bagOrder.Remove(e)
	}
	if !removed {
		return false
	}
	r.log.Debug("entity removed", zap.Uint64("entity", uint64(e.ID)), zap.Bool("permanent", permanent))
	event.Publish(r.bus, EntityRemoved{Registry: r, Entity: e, Permanent: permanent})
	return true
}

func (r *Registry) assertEntity(e Entity) error {
	if !r.live.Has(e) {
		return fmt.Errorf("%w: %s", ErrUnknownEntity, e)
	}
	return nil
}

func (r *Registry) bagFor(e Entity) *bag {
	b, ok := r.bags[e]
	if !ok {
		b = newBag()
		r.bags[e] = b
		r.bagOrder.Add(e)
	}
	return b
}

// AddComponent constructs a new instance of t from args and attaches it to e.
func (r *Registry) AddComponent(t ComponentType, e Entity, args ...any) (any, error) {
	if err := r.assertEntity(e); err != nil {
		return nil, err
	}
	c, err := r.construct(t, args)
	if err != nil {
		return nil, err
	}
	if err := r.attach(t, e, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *Registry) attach(t ComponentType, e Entity, c any) error {
	if r.isUnique(t) {
		if b, ok := r.bags[e]; ok && b.has(t) {
			return fmt.Errorf("%w: %s on %s", ErrDuplicateUnique, t, e)
		}
	}
	r.bagFor(e).add(t, c)
	event.Publish(r.bus, ComponentAdded{Registry: r, Entity: e, Type: t, Component: c})
	return nil
}

// RemoveComponent detaches the oldest instance of t from e. Entities without
// a bag and absent types are a silent no-op.
func (r *Registry) RemoveComponent(t ComponentType, e Entity) bool {
	b, ok := r.bags[e]
	if !ok {
		return false
	}
	c, ok := b.removeFirst(t)
	if !ok {
		return false
	}
	event.Publish(r.bus, ComponentRemoved{Registry: r, Entity: e, Type: t, Component: c})
	return true
}

// GetComponent returns the oldest instance of t attached to e.
func (r *Registry) GetComponent(t ComponentType, e Entity) (any, bool, error) {
	if err := r.assertEntity(e); err != nil {
		return nil, false, err
	}
	b, ok := r.bags[e]
	if !ok {
		return nil, false, nil
	}
	c, ok := b.first(t)
	return c, ok, nil
}

// GetComponents returns every component attached to e, grouped by type.
// An entity with nothing attached yields an empty slice.
func (r *Registry) GetComponents(e Entity) ([]any, error) {
	if err := r.assertEntity(e); err != nil {
		return nil, err
	}
	b, ok := r.bags[e]
	if !ok {
		return []any{}, nil
	}
	return b.all(), nil
}

// ComponentsOfType yields every instance of t across all bags, in bag
// insertion order.
func (r *Registry) ComponentsOfType(t ComponentType) iter.Seq[any] {
	return func(yield func(any) bool) {
		for _, e := range r.bagOrder.keys {
			for _, c := range r.bags[e].slots[t] {
				if !yield(c) {
					return
				}
			}
		}
	}
}

// ReplaceComponent overwrites the stored instance of c's type on e in place.
// If e holds no instance of that type, c is attached as if added.
func (r *Registry) ReplaceComponent(c any, e Entity) error {
	if err := r.assertEntity(e); err != nil {
		return err
	}
	t := TypeOfValue(c)
	if t == 0 {
		return fmt.Errorf("%w: nil component", ErrConstruction)
	}
	if err := checkKind(t); err != nil {
		return err
	}
	if b, ok := r.bags[e]; ok && b.replaceFirst(t, c) {
		return nil
	}
	return r.attach(t, e, c)
}

// Subscription helpers for the four registry events.

func (r *Registry) OnEntityAdded(fn func(EntityAdded)) *event.Subscription {
	return event.Subscribe(r.bus, fn)
}

func (r *Registry) OnEntityRemoved(fn func(EntityRemoved)) *event.Subscription {
	return event.Subscribe(r.bus, fn)
}

func (r *Registry) OnComponentAdded(fn func(ComponentAdded)) *event.Subscription {
	return event.Subscribe(r.bus, fn)
}

func (r *Registry) OnComponentRemoved(fn func(ComponentRemoved)) *event.Subscription {
	return event.Subscribe(r.bus, fn)
}

// Typed helpers.

// AddComponent constructs a T from args and attaches it to e.
func AddComponent[T any](r *Registry, e Entity, args ...any) (T, error) {
	var zero T
	c, err := r.AddComponent(TypeOf[T](), e, args...)
	if err != nil {
		return zero, err
	}
	return c.(T), nil
}

// GetComponent returns a copy of the oldest T attached to e.
func GetComponent[T any](r *Registry, e Entity) (T, bool, error) {
	var zero T
	c, ok, err := r.GetComponent(TypeOf[T](), e)
	if err != nil || !ok {
		return zero, false, err
	}
	return c.(T), true, nil
}

func RemoveComponent[T any](r *Registry, e Entity) bool {
	return r.RemoveComponent(TypeOf[T](), e)
}

func GetComponentsOfType[T any](r *Registry) iter.Seq[T] {
	t := TypeOf[T]()
	return func(yield func(T) bool) {
		for c := range r.ComponentsOfType(t) {
			if !yield(c.(T)) {
				return
			}
		}
	}
}

// HasComponent reports whether live entity e holds at least one T.
func HasComponent[T any](r *Registry, e Entity) bool {
	_, ok, err := r.GetComponent(TypeOf[T](), e)
	return err == nil && ok
}
