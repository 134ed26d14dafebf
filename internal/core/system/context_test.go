package system

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gambo/ecs/internal/core/ecs"
)

type namedSystem struct {
	Base
	log  *zap.Logger
	name string
}

func newNamedSystem(log *zap.Logger, name string) *namedSystem {
	return &namedSystem{log: log, name: name}
}

type brokenSystem struct{ Base }

var errBroken = errors.New("broken")

func newBrokenSystem() (*brokenSystem, error) { return nil, errBroken }

func TestAddGetRemoveSystem(t *testing.T) {
	c := NewContext()
	s, err := AddSystem[*recordingSystem](c)
	require.NoError(t, err)
	assert.True(t, s.Enabled())
	assert.Same(t, c.Registry(), s.Registry())
	assert.Equal(t, 1, s.enables)

	got, ok := GetSystem[*recordingSystem](c)
	require.True(t, ok)
	assert.Same(t, s, got)

	_, ok = GetSystem[*otherSystem](c)
	assert.False(t, ok)

	require.True(t, RemoveSystem[*recordingSystem](c))
	assert.False(t, s.Enabled())
	assert.Nil(t, s.Registry())
	_, ok = GetSystem[*recordingSystem](c)
	assert.False(t, ok)
	assert.False(t, RemoveSystem[*recordingSystem](c))
	assert.Equal(t, 0, c.Registry().Bus().Len())
}

func TestDuplicateKindKeepsFirst(t *testing.T) {
	c := NewContext()
	first := &recordingSystem{state: 1}
	second := &recordingSystem{state: 2}

	assert.Same(t, first, c.Add(first))
	assert.Same(t, first, c.Add(second))
	assert.Equal(t, 1, c.Len())
	assert.Nil(t, second.Registry())
	assert.False(t, second.Enabled())

	again, err := AddSystem[*recordingSystem](c)
	require.NoError(t, err)
	assert.Same(t, first, again)

	addMarker(t, c.Registry())
	assert.Len(t, first.added, 1)
	assert.Empty(t, second.added)
}

func TestContextUsesSuppliedRegistry(t *testing.T) {
	r := ecs.NewRegistry()
	c := NewContext(WithRegistry(r))
	s, err := AddSystem[*otherSystem](c)
	require.NoError(t, err)
	assert.Same(t, r, c.Registry())
	assert.Same(t, r, s.Registry())
}

func TestSameKindOnTwoContexts(t *testing.T) {
	a := NewContext()
	b := NewContext()
	sa, err := AddSystem[*otherSystem](a)
	require.NoError(t, err)
	sb, err := AddSystem[*otherSystem](b)
	require.NoError(t, err)
	assert.False(t, Equal(sa, sb))
}

func TestAddSystemResolvesConstructor(t *testing.T) {
	services := NewServices()
	Provide(services, zap.NewNop())
	Provide(services, "resolved")
	cat := NewCatalog().MustRegister(newNamedSystem)

	c := NewContext(WithCatalog(cat), WithResolver(services))
	s, err := AddSystem[*namedSystem](c)
	require.NoError(t, err)
	assert.Equal(t, "resolved", s.name)
	assert.NotNil(t, s.log)
	assert.True(t, s.Enabled())
}

func TestAddSystemUnresolvedNamesType(t *testing.T) {
	services := NewServices()
	Provide(services, "only a name")
	c := NewContext(
		WithCatalog(NewCatalog().MustRegister(newNamedSystem)),
		WithResolver(services),
	)

	_, err := AddSystem[*namedSystem](c)
	require.ErrorIs(t, err, ErrUnresolved)
	assert.Contains(t, err.Error(), "*zap.Logger")
	assert.Equal(t, 0, c.Len())
}

func TestAddSystemExplicitArgs(t *testing.T) {
	c := NewContext(WithCatalog(NewCatalog().MustRegister(newNamedSystem)))

	s, err := AddSystem[*namedSystem](c, nil, "explicit")
	require.NoError(t, err)
	assert.Equal(t, "explicit", s.name)
	assert.Nil(t, s.log)
}

func TestAddSystemConstructionFailures(t *testing.T) {
	c := NewContext(WithCatalog(NewCatalog().MustRegister(newNamedSystem, newBrokenSystem)))

	_, err := AddSystem[*namedSystem](c)
	assert.ErrorIs(t, err, ErrConstruction, "parameters but no resolver")

	_, err = AddSystem[*namedSystem](c, "too few")
	assert.ErrorIs(t, err, ErrConstruction)

	_, err = AddSystem[*namedSystem](c, 42, "wrong type")
	assert.ErrorIs(t, err, ErrConstruction)

	_, err = AddSystem[*brokenSystem](c)
	assert.ErrorIs(t, err, ErrConstruction)
	assert.ErrorIs(t, err, errBroken)

	_, err = AddSystem[*otherSystem](c, "no ctor")
	assert.ErrorIs(t, err, ErrConstruction)

	assert.Equal(t, 0, c.Len())
}

func TestCatalogRejectsBadConstructors(t *testing.T) {
	cat := NewCatalog()
	assert.ErrorIs(t, cat.Register(42), ErrConstructor)
	assert.ErrorIs(t, cat.Register(func() int { return 0 }), ErrConstructor)
	assert.ErrorIs(t, cat.Register(func() (System, error) { return nil, nil }), ErrConstructor)
	assert.ErrorIs(t, cat.Register(func(...any) *otherSystem { return nil }), ErrConstructor)
	assert.ErrorIs(t, cat.Register(func() (*otherSystem, int) { return nil, 0 }), ErrConstructor)
	assert.Equal(t, 0, cat.Len())

	require.NoError(t, cat.Register(func() *otherSystem { return &otherSystem{state: 7} }))
	assert.True(t, cat.Has(KindFor[*otherSystem]()))
}

func TestResolveHelper(t *testing.T) {
	services := NewServices()
	Provide(services, 3)

	n, err := Resolve[int](services)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	_, err = Resolve[string](services)
	require.ErrorIs(t, err, ErrUnresolved)
	assert.Contains(t, err.Error(), "string")

	_, err = Resolve[int](nil)
	assert.ErrorIs(t, err, ErrUnresolved)
}

func TestContextCloseDetachesAll(t *testing.T) {
	c := NewContext()
	rec, err := AddSystem[*recordingSystem](c)
	require.NoError(t, err)
	other, err := AddSystem[*otherSystem](c)
	require.NoError(t, err)
	assert.Len(t, c.Systems(), 2)

	c.Close()
	assert.Equal(t, 0, c.Len())
	assert.Empty(t, c.Systems())
	assert.False(t, rec.Enabled())
	assert.False(t, other.Enabled())
	assert.Nil(t, rec.Registry())
	assert.Equal(t, 0, c.Registry().Bus().Len())
}

func TestContextTickRunsUpdaters(t *testing.T) {
	var trace []string
	c := NewContext()
	c.Add(&tickSystem{name: "tick", phase: PhaseUpdate, trace: &trace})
	c.Tick(0)
	assert.Equal(t, []string{"tick"}, trace)

	RemoveSystem[*tickSystem](c)
	c.Tick(0)
	assert.Equal(t, []string{"tick"}, trace)
}
