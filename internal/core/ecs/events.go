package ecs

// Registry change events. They are published synchronously after the
// mutation took effect and before the mutating call returns.

// EntityAdded follows CreateEntity and a successful AddEntity.
type EntityAdded struct {
	Registry *Registry
	Entity   Entity
}

// EntityRemoved follows RemoveEntity on a live entity.
type EntityRemoved struct {
	Registry  *Registry
	Entity    Entity
	Permanent bool
}

// ComponentAdded carries the instance that was attached.
type ComponentAdded struct {
	Registry  *Registry
	Entity    Entity
	Type      ComponentType
	Component any
}

// ComponentRemoved carries the instance that was detached.
type ComponentRemoved struct {
	Registry  *Registry
	Entity    Entity
	Type      ComponentType
	Component any
}
