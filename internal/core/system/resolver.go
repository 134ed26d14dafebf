package system

import (
	"fmt"
	"reflect"
)

// Resolver hands out instances by type. Context consults it when a system is
// added without explicit constructor arguments.
type Resolver interface {
	Resolve(t reflect.Type) (any, bool)
}

// ResolverFunc adapts a plain function to Resolver.
type ResolverFunc func(t reflect.Type) (any, bool)

func (f ResolverFunc) Resolve(t reflect.Type) (any, bool) { return f(t) }

// Services is a Resolver backed by a map of provided values.
type Services struct {
	byType map[reflect.Type]any
}

func NewServices() *Services {
	return &Services{byType: make(map[reflect.Type]any)}
}

// Provide makes v resolvable as T. A later Provide for the same T wins.
func Provide[T any](s *Services, v T) {
	s.byType[reflect.TypeOf((*T)(nil)).Elem()] = v
}

func (s *Services) Resolve(t reflect.Type) (any, bool) {
	v, ok := s.byType[t]
	return v, ok
}

func (s *Services) Len() int { return len(s.byType) }

// Resolve looks up T through r.
func Resolve[T any](r Resolver) (T, error) {
	var zero T
	t := reflect.TypeOf((*T)(nil)).Elem()
	if r == nil {
		return zero, fmt.Errorf("%w: %s: no resolver", ErrUnresolved, t)
	}
	v, ok := r.Resolve(t)
	if !ok {
		return zero, fmt.Errorf("%w: %s", ErrUnresolved, t)
	}
	out, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %s resolved to %T", ErrUnresolved, t, v)
	}
	return out, nil
}
