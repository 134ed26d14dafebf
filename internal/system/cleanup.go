package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/gambo/ecs/internal/component"
	"github.com/gambo/ecs/internal/core/ecs"
	coresys "github.com/gambo/ecs/internal/core/system"
)

// CleanupSystem queues entities tagged Dead and permanently removes them at
// tick end. Phase 3 (Cleanup).
type CleanupSystem struct {
	coresys.Base
	log    *zap.Logger
	queue  []ecs.Entity
	queued map[ecs.Entity]struct{}
}

func NewCleanupSystem(log *zap.Logger) *CleanupSystem {
	return &CleanupSystem{
		log:    log,
		queued: make(map[ecs.Entity]struct{}),
	}
}

func (s *CleanupSystem) Phase() coresys.Phase { return coresys.PhaseCleanup }

func (s *CleanupSystem) OnComponentAdded(ev ecs.ComponentAdded) {
	if ev.Type != ecs.TypeOf[component.Dead]() {
		return
	}
	if _, ok := s.queued[ev.Entity]; ok {
		return
	}
	s.queued[ev.Entity] = struct{}{}
	s.queue = append(s.queue, ev.Entity)
}

// OnRegistryDetached forgets entities queued on the old registry.
func (s *CleanupSystem) OnRegistryDetached(*ecs.Registry) {
	s.queue = s.queue[:0]
	clear(s.queued)
}

func (s *CleanupSystem) Pending() int { return len(s.queue) }

func (s *CleanupSystem) Update(_ time.Duration) {
	r := s.Registry()
	if r == nil || len(s.queue) == 0 {
		return
	}
	batch := s.queue
	s.queue = nil
	clear(s.queued)
	for _, e := range batch {
		if r.RemoveEntity(e, true) {
			s.log.Debug("entity destroyed", zap.Stringer("entity", e))
		}
	}
}
