package component

import (
	"errors"
	"fmt"

	"github.com/gambo/ecs/internal/core/ecs"
)

// Position is the 2D location of an entity.
type Position struct {
	X, Y float64
}

type Velocity struct {
	DX, DY float64 // units per second
}

// Health is pure data; RegenSystem and scripts mutate it through the registry.
type Health struct {
	Current int
	Max     int
}

// Alive reports whether Current is above zero.
func (h Health) Alive() bool { return h.Current > 0 }

// Name is a display name. An entity holds at most one.
type Name struct {
	Value string
}

func (Name) UniqueComponent() {}

// Dead tags an entity for removal at the end of the tick.
type Dead struct{}

var byName = map[string]ecs.ComponentType{
	"Position": ecs.TypeOf[Position](),
	"Velocity": ecs.TypeOf[Velocity](),
	"Health":   ecs.TypeOf[Health](),
	"Name":     ecs.TypeOf[Name](),
	"Dead":     ecs.TypeOf[Dead](),
}

// TypeByName maps the short names used in data files to component types.
func TypeByName(name string) (ecs.ComponentType, bool) {
	t, ok := byName[name]
	return t, ok
}

// Register installs the argument-taking factories for every component in
// this package on r.
func Register(r *ecs.Registry) error {
	var errs []error
	collect := func(_ ecs.ComponentType, err error) { errs = append(errs, err) }
	collect(ecs.RegisterComponent(r, newPosition))
	collect(ecs.RegisterComponent(r, newVelocity))
	collect(ecs.RegisterComponent(r, newHealth))
	collect(ecs.RegisterComponent(r, newName, ecs.AsUnique()))
	collect(ecs.RegisterComponent[Dead](r, nil))
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("register components: %w", err)
	}
	return nil
}

func newPosition(args ...any) (Position, error) {
	x, y, err := pair("position", args)
	return Position{X: x, Y: y}, err
}

func newVelocity(args ...any) (Velocity, error) {
	dx, dy, err := pair("velocity", args)
	return Velocity{DX: dx, DY: dy}, err
}

// newHealth accepts (max) for a full bar or (current, max).
func newHealth(args ...any) (Health, error) {
	switch len(args) {
	case 0:
		return Health{}, nil
	case 1:
		m, err := toInt(args[0])
		return Health{Current: m, Max: m}, err
	case 2:
		cur, err := toInt(args[0])
		if err != nil {
			return Health{}, err
		}
		m, err := toInt(args[1])
		if err != nil {
			return Health{}, err
		}
		if cur > m {
			return Health{}, fmt.Errorf("health %d exceeds max %d", cur, m)
		}
		return Health{Current: cur, Max: m}, nil
	}
	return Health{}, fmt.Errorf("health takes at most 2 arguments, got %d", len(args))
}

func newName(args ...any) (Name, error) {
	if len(args) != 1 {
		return Name{}, fmt.Errorf("name takes 1 argument, got %d", len(args))
	}
	s, ok := args[0].(string)
	if !ok {
		return Name{}, fmt.Errorf("name must be a string, got %T", args[0])
	}
	return Name{Value: s}, nil
}

func pair(what string, args []any) (float64, float64, error) {
	switch len(args) {
	case 0:
		return 0, 0, nil
	case 2:
		a, err := toFloat(args[0])
		if err != nil {
			return 0, 0, err
		}
		b, err := toFloat(args[1])
		return a, b, err
	}
	return 0, 0, fmt.Errorf("%s takes 0 or 2 arguments, got %d", what, len(args))
}

// Arguments arrive from Go callers, YAML and Lua, so any numeric kind is accepted.
func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case int32:
		return float64(n), nil
	}
	return 0, fmt.Errorf("expected a number, got %T", v)
}

func toInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case int32:
		return int(n), nil
	case float64:
		if n != float64(int(n)) {
			return 0, fmt.Errorf("expected an integer, got %v", n)
		}
		return int(n), nil
	}
	return 0, fmt.Errorf("expected an integer, got %T", v)
}
