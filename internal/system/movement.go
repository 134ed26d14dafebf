package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/gambo/ecs/internal/component"
	"github.com/gambo/ecs/internal/core/ecs"
	coresys "github.com/gambo/ecs/internal/core/system"
)

// MovementSystem integrates Velocity into Position every tick.
// Phase 1 (Update).
type MovementSystem struct {
	coresys.Base
	log   *zap.Logger
	moved int
}

func NewMovementSystem(log *zap.Logger) *MovementSystem {
	return &MovementSystem{log: log}
}

func (s *MovementSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *MovementSystem) Update(dt time.Duration) {
	r := s.Registry()
	if r == nil {
		return
	}
	secs := dt.Seconds()
	// Rows are a snapshot, so writing back while walking them is safe.
	for _, row := range ecs.View2[component.Position, component.Velocity](r) {
		if !r.HasEntity(row.Entity) || ecs.HasComponent[component.Dead](r, row.Entity) {
			continue
		}
		if row.C2.DX == 0 && row.C2.DY == 0 {
			continue
		}
		next := component.Position{
			X: row.C1.X + row.C2.DX*secs,
			Y: row.C1.Y + row.C2.DY*secs,
		}
		if err := r.ReplaceComponent(next, row.Entity); err != nil {
			s.log.Warn("move failed", zap.Stringer("entity", row.Entity), zap.Error(err))
			continue
		}
		s.moved++
	}
}

// Moved returns how many position updates have been written so far.
func (s *MovementSystem) Moved() int { return s.moved }
