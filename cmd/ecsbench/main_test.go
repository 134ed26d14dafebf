package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gambo/ecs/internal/component"
	"github.com/gambo/ecs/internal/core/ecs"
)

func TestSpawnMix(t *testing.T) {
	r := ecs.NewRegistry()
	require.NoError(t, component.Register(r))

	for i := range 6 {
		require.NoError(t, spawn(r, i))
	}

	assert.Equal(t, 6, r.EntitiesCount())
	assert.Len(t, ecs.View2[component.Position, component.Velocity](r), 3)
	assert.Len(t, ecs.View3[component.Position, component.Velocity, component.Health](r), 1)
}
