package system

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRunnerPhaseOrder(t *testing.T) {
	var trace []string
	r := NewRunner()
	cleanup := &tickSystem{name: "cleanup", phase: PhaseCleanup, trace: &trace}
	update := &tickSystem{name: "update", phase: PhaseUpdate, trace: &trace}
	pre := &tickSystem{name: "pre", phase: PhasePreUpdate, trace: &trace}
	update2 := &tickSystem{name: "update2", phase: PhaseUpdate, trace: &trace}
	for _, s := range []*tickSystem{cleanup, update, pre, update2} {
		assert.True(t, r.Register(s))
		SetEnabled(s, true)
	}
	assert.False(t, r.Register(&otherSystem{}))
	assert.Equal(t, 4, r.Len())

	r.Tick(time.Millisecond)
	assert.Equal(t, []string{"pre", "update", "update2", "cleanup"}, trace)

	trace = trace[:0]
	SetEnabled(update, false)
	r.Tick(time.Millisecond)
	assert.Equal(t, []string{"pre", "update2", "cleanup"}, trace)

	trace = trace[:0]
	r.TickPhase(PhaseCleanup, time.Millisecond)
	assert.Equal(t, []string{"cleanup"}, trace)

	trace = trace[:0]
	r.Unregister(pre)
	r.Tick(time.Millisecond)
	assert.Equal(t, []string{"update2", "cleanup"}, trace)
}
