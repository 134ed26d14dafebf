package ecs

import (
	"fmt"
	"sync/atomic"
)

// EntityID is the registry-scoped numeric part of an entity handle.
// Ids start at 1 and grow monotonically per registry; 0 is never minted.
type EntityID uint64

// RegistryID identifies a registry instance. Assigned once per NewRegistry
// call from a process-wide counter, independent of the registry's contents.
type RegistryID uint64

var lastRegistryID atomic.Uint64

func nextRegistryID() RegistryID {
	return RegistryID(lastRegistryID.Add(1))
}

// Entity is an immutable handle. Two handles name the same entity only if both
// the id and the owning registry match, so independent registries can mint
// colliding ids without confusing their entities.
type Entity struct {
	ID    EntityID
	Owner RegistryID
}

func (e Entity) IsZero() bool { return e == Entity{} }

func (e Entity) String() string {
	return fmt.Sprintf("entity(%d@%d)", e.ID, e.Owner)
}

// orderedSet is an insertion-ordered set of entities.
type orderedSet struct {
	index map[Entity]int
	keys  []Entity
}

func newOrderedSet(capacity int) *orderedSet {
	return &orderedSet{
		index: make(map[Entity]int, capacity),
		keys:  make([]Entity, 0, capacity),
	}
}

func (s *orderedSet) Has(e Entity) bool {
	_, ok := s.index[e]
	return ok
}

// Add returns false if e was already present.
func (s *orderedSet) Add(e Entity) bool {
	if _, ok := s.index[e]; ok {
		return false
	}
	s.index[e] = len(s.keys)
	s.keys = append(s.keys, e)
	return true
}

// Remove returns false if e was not present.
func (s *orderedSet) Remove(e Entity) bool {
	i, ok := s.index[e]
	if !ok {
		return false
	}
	delete(s.index, e)
	copy(s.keys[i:], s.keys[i+1:])
	s.keys = s.keys[:len(s.keys)-1]
	for j := i; j < len(s.keys); j++ {
		s.index[s.keys[j]] = j
	}
	return true
}

func (s *orderedSet) Len() int { return len(s.keys) }
