package system

import "github.com/gambo/ecs/internal/core/ecs"

// Optional hooks. A concrete system implements the ones it cares about.

type Enabler interface {
	OnEnable()
}

type Disabler interface {
	OnDisable()
}

type RegistryAttacher interface {
	OnRegistryAttached(r *ecs.Registry)
}

type RegistryDetacher interface {
	OnRegistryDetached(r *ecs.Registry)
}

// Event handlers fire while the system is attached, whether or not it is enabled.

type ComponentAddedHandler interface {
	OnComponentAdded(ev ecs.ComponentAdded)
}

type ComponentRemovedHandler interface {
	OnComponentRemoved(ev ecs.ComponentRemoved)
}

type EntityAddedHandler interface {
	OnEntityAdded(ev ecs.EntityAdded)
}

type EntityRemovedHandler interface {
	OnEntityRemoved(ev ecs.EntityRemoved)
}
