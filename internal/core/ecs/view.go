package ecs

// View is the projection of one qualifying entity onto the requested
// component types.
type View struct {
	entity     Entity
	components map[ComponentType]any
}

func (v View) Entity() Entity { return v.entity }

// Get returns the projected instance of t, or false if t was not requested.
func (v View) Get(t ComponentType) (any, bool) {
	c, ok := v.components[t]
	return c, ok
}

// Pick is the typed form of View.Get.
func Pick[T any](v View) (T, bool) {
	c, ok := v.components[TypeOf[T]()]
	if !ok {
		var zero T
		return zero, false
	}
	return c.(T), true
}

// View returns one projection per entity holding every requested type, in
// bag insertion order. Entities missing any type are skipped.
func (r *Registry) View(types ...ComponentType) []View {
	if len(types) == 0 {
		return nil
	}
	var out []View
	r.match(types, func(e Entity, found []any) bool {
		components := make(map[ComponentType]any, len(types))
		for i, t := range types {
			components[t] = found[i]
		}
		out = append(out, View{entity: e, components: components})
		return true
	})
	return out
}

// match walks every entity present in the bag map and calls fn with the
// oldest instance of each requested type. found is reused between calls.
func (r *Registry) match(types []ComponentType, fn func(Entity, []any) bool) {
	found := make([]any, len(types))
	for _, e := range r.bagOrder.keys {
		b := r.bags[e]
		ok := true
		for i, t := range types {
			c, has := b.first(t)
			if !has {
				ok = false
				break
			}
			found[i] = c
		}
		if !ok {
			continue
		}
		if !fn(e, found) {
			return
		}
	}
}
