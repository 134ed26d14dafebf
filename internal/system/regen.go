package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/gambo/ecs/internal/component"
	"github.com/gambo/ecs/internal/config"
	"github.com/gambo/ecs/internal/core/ecs"
	coresys "github.com/gambo/ecs/internal/core/system"
)

// RegenSystem restores Health on a fixed interval and tags entities whose
// health has run out as Dead.
// Phase 2 (PostUpdate); elapsed time is accumulated so tick rate and
// regen interval are independent.
type RegenSystem struct {
	coresys.Base
	cfg     config.RegenConfig
	log     *zap.Logger
	elapsed time.Duration
}

func NewRegenSystem(cfg config.RegenConfig, log *zap.Logger) *RegenSystem {
	return &RegenSystem{cfg: cfg, log: log}
}

func (s *RegenSystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }

// OnDisable drops partial progress toward the next regen step.
func (s *RegenSystem) OnDisable() { s.elapsed = 0 }

func (s *RegenSystem) Update(dt time.Duration) {
	r := s.Registry()
	if r == nil {
		return
	}
	s.markDead(r)

	if s.cfg.Interval <= 0 {
		s.regen(r)
		return
	}
	s.elapsed += dt
	for s.elapsed >= s.cfg.Interval {
		s.elapsed -= s.cfg.Interval
		s.regen(r)
	}
}

func (s *RegenSystem) markDead(r *ecs.Registry) {
	for _, e := range r.Entities() {
		h, ok, err := ecs.GetComponent[component.Health](r, e)
		if err != nil || !ok || h.Alive() || ecs.HasComponent[component.Dead](r, e) {
			continue
		}
		if _, err := ecs.AddComponent[component.Dead](r, e); err != nil {
			s.log.Warn("mark dead failed", zap.Stringer("entity", e), zap.Error(err))
		}
	}
}

func (s *RegenSystem) regen(r *ecs.Registry) {
	for _, e := range r.Entities() {
		h, ok, err := ecs.GetComponent[component.Health](r, e)
		if err != nil || !ok || !h.Alive() || h.Current >= h.Max {
			continue
		}
		h.Current = min(h.Current+s.cfg.Amount, h.Max)
		if err := r.ReplaceComponent(h, e); err != nil {
			s.log.Warn("regen failed", zap.Stringer("entity", e), zap.Error(err))
		}
	}
}
