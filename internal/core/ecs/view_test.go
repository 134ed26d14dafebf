package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type posX struct{ V int }
type posY struct{ V int }
type posZ struct{ V int }
type posW struct{ V int }
type posQ struct{ V int }

func TestViewTwoOfThree(t *testing.T) {
	r := NewRegistry()
	a := r.CreateEntity()
	b := r.CreateEntity()
	c := r.CreateEntity()

	mustReplace(t, r, a, posX{1}, posY{1})
	mustReplace(t, r, b, posY{2})
	mustReplace(t, r, c, posX{3}, posY{3})

	views := r.View(TypeOf[posX](), TypeOf[posY]())
	require.Len(t, views, 2)
	assert.Equal(t, a, views[0].Entity())
	assert.Equal(t, c, views[1].Entity())

	x, ok := Pick[posX](views[0])
	require.True(t, ok)
	assert.Equal(t, posX{1}, x)
	y, ok := Pick[posY](views[1])
	require.True(t, ok)
	assert.Equal(t, posY{3}, y)

	rows := View2[posX, posY](r)
	require.Len(t, rows, 2)
	assert.Equal(t, Row2[posX, posY]{Entity: a, C1: posX{1}, C2: posY{1}}, rows[0])
	assert.Equal(t, Row2[posX, posY]{Entity: c, C1: posX{3}, C2: posY{3}}, rows[1])
}

func TestViewGetUnrequestedType(t *testing.T) {
	r := newTagRegistry()
	a := r.CreateEntity()
	r.CreateEntity()
	_, err := AddComponent[tagComponent](r, a, "TagA")
	require.NoError(t, err)

	views := r.View(TypeOf[tagComponent]())
	require.Len(t, views, 1)
	_, ok := Pick[tagComponent](views[0])
	assert.True(t, ok)
	_, ok = Pick[testComponent](views[0])
	assert.False(t, ok)
}

func TestViewNoMatches(t *testing.T) {
	r := newTagRegistry()
	for _, tag := range []string{"TagA", "TagB"} {
		e := r.CreateEntity()
		_, err := AddComponent[tagComponent](r, e, tag)
		require.NoError(t, err)
	}

	assert.Empty(t, r.View(TypeOf[testComponent](), TypeOf[tagComponent]()))
	assert.Empty(t, View2[testComponent, tagComponent](r))
	assert.Nil(t, r.View())
}

func TestViewPicksOldestInstance(t *testing.T) {
	r := NewRegistry()
	e := r.CreateEntity()
	mustReplace(t, r, e, posY{0})
	_, err := r.AddComponent(TypeOf[posX](), e)
	require.NoError(t, err)
	require.NoError(t, r.attach(TypeOf[posX](), e, posX{7}))

	rows := View2[posX, posY](r)
	require.Len(t, rows, 1)
	assert.Equal(t, posX{0}, rows[0].C1)
}

func TestViewIncludesSoftRemovedBags(t *testing.T) {
	r := NewRegistry()
	a := r.CreateEntity()
	b := r.CreateEntity()
	mustReplace(t, r, a, posX{1}, posY{1})
	mustReplace(t, r, b, posX{2}, posY{2})

	r.RemoveEntity(a, false)
	assert.Len(t, View2[posX, posY](r), 2)

	r.RemoveEntity(b, true)
	rows := View2[posX, posY](r)
	require.Len(t, rows, 1)
	assert.Equal(t, a, rows[0].Entity)
}

func TestHigherArityViewsAgree(t *testing.T) {
	r := NewRegistry()
	full := r.CreateEntity()
	partial := r.CreateEntity()
	mustReplace(t, r, full, posX{1}, posY{2}, posZ{3}, posW{4}, posQ{5})
	mustReplace(t, r, partial, posX{1}, posY{2}, posZ{3})

	assert.Len(t, View3[posX, posY, posZ](r), 2)
	assert.Len(t, View4[posX, posY, posZ, posW](r), 1)

	rows := View5[posX, posY, posZ, posW, posQ](r)
	require.Len(t, rows, 1)
	assert.Equal(t, Row5[posX, posY, posZ, posW, posQ]{
		Entity: full, C1: posX{1}, C2: posY{2}, C3: posZ{3}, C4: posW{4}, C5: posQ{5},
	}, rows[0])

	views := r.View(TypeOf[posX](), TypeOf[posY](), TypeOf[posZ](), TypeOf[posW](), TypeOf[posQ]())
	require.Len(t, views, 1)
	assert.Equal(t, full, views[0].Entity())

	var seen []Entity
	Each3(r, func(e Entity, _ posX, _ posY, _ posZ) { seen = append(seen, e) })
	assert.Equal(t, []Entity{full, partial}, seen)
}

func mustReplace(t *testing.T, r *Registry, e Entity, cs ...any) {
	t.Helper()
	for _, c := range cs {
		require.NoError(t, r.ReplaceComponent(c, e))
	}
}
