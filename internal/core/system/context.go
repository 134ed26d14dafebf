package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/gambo/ecs/internal/core/ecs"
)

// Context owns one registry and at most one system per kind on it.
// Not safe for concurrent use.
type Context struct {
	registry *ecs.Registry
	resolver Resolver
	catalog  *Catalog
	log      *zap.Logger

	systems map[Key]System
	order   []System
	runner  *Runner
}

type ContextOption func(*Context)

// WithRegistry attaches systems to r instead of a fresh registry.
func WithRegistry(r *ecs.Registry) ContextOption {
	return func(c *Context) { c.registry = r }
}

func WithResolver(r Resolver) ContextOption {
	return func(c *Context) { c.resolver = r }
}

func WithCatalog(cat *Catalog) ContextOption {
	return func(c *Context) {
		if cat != nil {
			c.catalog = cat
		}
	}
}

func WithLogger(log *zap.Logger) ContextOption {
	return func(c *Context) {
		if log != nil {
			c.log = log
		}
	}
}

func NewContext(opts ...ContextOption) *Context {
	c := &Context{
		catalog: NewCatalog(),
		log:     zap.NewNop(),
		systems: make(map[Key]System, 16),
		runner:  NewRunner(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.registry == nil {
		c.registry = ecs.NewRegistry(ecs.WithLogger(c.log))
	}
	return c
}

func (c *Context) Registry() *ecs.Registry { return c.registry }
func (c *Context) Catalog() *Catalog       { return c.catalog }
func (c *Context) Len() int                { return len(c.systems) }

// Systems returns the registered systems in the order they were added.
func (c *Context) Systems() []System {
	out := make([]System, len(c.order))
	copy(out, c.order)
	return out
}

// Add attaches s to the context's registry, enables it and registers it.
// If a system of the same kind is already present, s is left untouched and
// the existing system is returned.
func (c *Context) Add(s System) System {
	key := Key{Kind: KindOf(s), Registry: c.registry.ID()}
	if existing, ok := c.systems[key]; ok {
		c.log.Debug("system already registered", zap.Stringer("kind", key.Kind))
		return existing
	}
	SetRegistry(s, c.registry)
	SetEnabled(s, true)
	c.systems[key] = s
	c.order = append(c.order, s)
	c.runner.Register(s)
	c.log.Info("system added", zap.Stringer("kind", key.Kind))
	return s
}

func (c *Context) get(kind Kind) (System, bool) {
	s, ok := c.systems[Key{Kind: kind, Registry: c.registry.ID()}]
	return s, ok
}

func (c *Context) remove(kind Kind) bool {
	key := Key{Kind: kind, Registry: c.registry.ID()}
	s, ok := c.systems[key]
	if !ok {
		return false
	}
	SetEnabled(s, false)
	Detach(s)
	c.runner.Unregister(s)
	delete(c.systems, key)
	for i, o := range c.order {
		if o == s {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	c.log.Info("system removed", zap.Stringer("kind", kind))
	return true
}

// Tick runs every enabled Updater once, in phase order.
func (c *Context) Tick(dt time.Duration) { c.runner.Tick(dt) }

func (c *Context) TickPhase(phase Phase, dt time.Duration) { c.runner.TickPhase(phase, dt) }

// Close disables and detaches every system, newest first, and empties the context.
func (c *Context) Close() {
	for i := len(c.order) - 1; i >= 0; i-- {
		s := c.order[i]
		SetEnabled(s, false)
		Detach(s)
		c.runner.Unregister(s)
	}
	c.order = nil
	clear(c.systems)
}

// AddSystem builds a K and adds it to c. Explicit args go to K's registered
// constructor; without args its parameters are resolved through the
// context's Resolver. When K is already present the existing instance is
// returned and the new one is discarded unattached.
func AddSystem[K System](c *Context, args ...any) (K, error) {
	var zero K
	s, err := c.catalog.build(KindFor[K](), args, c.resolver)
	if err != nil {
		return zero, err
	}
	return c.Add(s).(K), nil
}

// GetSystem returns the registered system of kind K.
func GetSystem[K System](c *Context) (K, bool) {
	s, ok := c.get(KindFor[K]())
	if !ok {
		var zero K
		return zero, false
	}
	return s.(K), true
}

// RemoveSystem disables and detaches the system of kind K, then drops it.
func RemoveSystem[K System](c *Context) bool {
	return c.remove(KindFor[K]())
}
