package system

import coresys "github.com/gambo/ecs/internal/core/system"

// Constructors lists the constructors of every system in this package, for
// registration in a coresys.Catalog.
func Constructors() []any {
	return []any{
		NewMovementSystem,
		NewRegenSystem,
		NewCleanupSystem,
	}
}

// NewCatalog returns a catalog holding this package's systems.
func NewCatalog() *coresys.Catalog {
	return coresys.NewCatalog().MustRegister(Constructors()...)
}
