package system

import (
	"slices"
	"sort"
	"time"
)

// Runner executes enabled Updater systems in phase order each tick.
type Runner struct {
	systems []System
	sorted  bool
}

func NewRunner() *Runner {
	return &Runner{
		systems: make([]System, 0, 16),
	}
}

// Register adds s if it implements Updater. Returns whether it was added.
func (r *Runner) Register(s System) bool {
	if _, ok := s.(Updater); !ok {
		return false
	}
	r.systems = append(r.systems, s)
	r.sorted = false
	return true
}

func (r *Runner) Unregister(s System) {
	if i := slices.Index(r.systems, s); i >= 0 {
		r.systems = slices.Delete(r.systems, i, i+1)
	}
}

func (r *Runner) Len() int { return len(r.systems) }

func (r *Runner) Tick(dt time.Duration) {
	r.ensureSorted()
	for _, s := range r.systems {
		if s.systemBase().enabled {
			s.(Updater).Update(dt)
		}
	}
}

// TickPhase runs only the systems of one phase.
func (r *Runner) TickPhase(phase Phase, dt time.Duration) {
	r.ensureSorted()
	for _, s := range r.systems {
		u := s.(Updater)
		if u.Phase() == phase && s.systemBase().enabled {
			u.Update(dt)
		}
	}
}

func (r *Runner) ensureSorted() {
	if !r.sorted {
		sort.SliceStable(r.systems, func(i, j int) bool {
			return r.systems[i].(Updater).Phase() < r.systems[j].(Updater).Phase()
		})
		r.sorted = true
	}
}
