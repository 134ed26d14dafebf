package system

import (
	"fmt"
	"reflect"
)

var (
	systemType = reflect.TypeOf((*System)(nil)).Elem()
	errorType  = reflect.TypeOf((*error)(nil)).Elem()
)

// Catalog maps a system kind to the constructor that builds it. A constructor
// is any func returning the system, optionally followed by an error:
//
//	func NewMovementSystem(log *zap.Logger, cfg config.RunnerConfig) *MovementSystem
//
// Its parameters are filled from explicit arguments or, when none are given,
// from the Context's Resolver.
type Catalog struct {
	ctors map[Kind]reflect.Value
}

func NewCatalog() *Catalog {
	return &Catalog{ctors: make(map[Kind]reflect.Value)}
}

// Register installs ctor for the kind it returns, replacing any previous one.
func (c *Catalog) Register(ctor any) error {
	fn := reflect.ValueOf(ctor)
	ft := fn.Type()
	if fn.Kind() != reflect.Func || fn.IsNil() {
		return fmt.Errorf("%w: %T is not a func", ErrConstructor, ctor)
	}
	if ft.IsVariadic() {
		return fmt.Errorf("%w: %s is variadic", ErrConstructor, ft)
	}
	switch {
	case ft.NumOut() == 1:
	case ft.NumOut() == 2 && ft.Out(1) == errorType:
	default:
		return fmt.Errorf("%w: %s must return (K) or (K, error)", ErrConstructor, ft)
	}
	kind := ft.Out(0)
	if kind.Kind() == reflect.Interface || !kind.Implements(systemType) {
		return fmt.Errorf("%w: %s does not return a concrete system", ErrConstructor, ft)
	}
	c.ctors[kind] = fn
	return nil
}

// MustRegister is Register for package-level setup; it panics on a bad ctor.
func (c *Catalog) MustRegister(ctors ...any) *Catalog {
	for _, ctor := range ctors {
		if err := c.Register(ctor); err != nil {
			panic(err)
		}
	}
	return c
}

func (c *Catalog) Has(kind Kind) bool {
	_, ok := c.ctors[kind]
	return ok
}

func (c *Catalog) Len() int { return len(c.ctors) }

// build constructs a system of kind. Explicit args must match the constructor
// parameters one to one. With no args, parameters come from res; a kind with
// no registered constructor is allocated zeroed when it is a struct pointer.
func (c *Catalog) build(kind Kind, args []any, res Resolver) (System, error) {
	fn, ok := c.ctors[kind]
	if !ok {
		return zeroSystem(kind, args)
	}
	ft := fn.Type()

	var in []reflect.Value
	var err error
	switch {
	case len(args) > 0:
		in, err = explicitArgs(kind, ft, args)
	case ft.NumIn() == 0:
	case res == nil:
		err = fmt.Errorf("%w: %s needs %d arguments and no resolver is attached", ErrConstruction, kind, ft.NumIn())
	default:
		in, err = resolvedArgs(kind, ft, res)
	}
	if err != nil {
		return nil, err
	}

	out := fn.Call(in)
	if len(out) == 2 && !out[1].IsNil() {
		return nil, fmt.Errorf("%w: %s: %w", ErrConstruction, kind, out[1].Interface().(error))
	}
	if out[0].Kind() == reflect.Pointer && out[0].IsNil() {
		return nil, fmt.Errorf("%w: constructor for %s returned nil", ErrConstruction, kind)
	}
	return out[0].Interface().(System), nil
}

func explicitArgs(kind Kind, ft reflect.Type, args []any) ([]reflect.Value, error) {
	if len(args) != ft.NumIn() {
		return nil, fmt.Errorf("%w: %s takes %d arguments, got %d", ErrConstruction, kind, ft.NumIn(), len(args))
	}
	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		v, ok := argValue(ft.In(i), arg)
		if !ok {
			return nil, fmt.Errorf("%w: %s argument %d: %T is not assignable to %s", ErrConstruction, kind, i, arg, ft.In(i))
		}
		in[i] = v
	}
	return in, nil
}

func resolvedArgs(kind Kind, ft reflect.Type, res Resolver) ([]reflect.Value, error) {
	in := make([]reflect.Value, ft.NumIn())
	for i := range in {
		pt := ft.In(i)
		dep, ok := res.Resolve(pt)
		if !ok {
			return nil, fmt.Errorf("%w: %s for %s", ErrUnresolved, pt, kind)
		}
		v, ok := argValue(pt, dep)
		if !ok {
			return nil, fmt.Errorf("%w: %s for %s resolved to %T", ErrUnresolved, pt, kind, dep)
		}
		in[i] = v
	}
	return in, nil
}

func argValue(pt reflect.Type, arg any) (reflect.Value, bool) {
	if arg == nil {
		switch pt.Kind() {
		case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
			return reflect.Zero(pt), true
		}
		return reflect.Value{}, false
	}
	v := reflect.ValueOf(arg)
	if !v.Type().AssignableTo(pt) {
		return reflect.Value{}, false
	}
	return v, true
}

func zeroSystem(kind Kind, args []any) (System, error) {
	if len(args) > 0 {
		return nil, fmt.Errorf("%w: no constructor registered for %s", ErrConstruction, kind)
	}
	if kind.Kind() != reflect.Pointer || kind.Elem().Kind() != reflect.Struct || !kind.Implements(systemType) {
		return nil, fmt.Errorf("%w: %s cannot be allocated without a constructor", ErrConstruction, kind)
	}
	return reflect.New(kind.Elem()).Interface().(System), nil
}
