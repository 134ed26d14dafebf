package ecs

// Fixed-arity queries. Rows and callbacks carry copies of the stored
// components; write changes back with ReplaceComponent.

type Row2[T1, T2 any] struct {
	Entity Entity
	C1     T1
	C2     T2
}

type Row3[T1, T2, T3 any] struct {
	Entity Entity
	C1     T1
	C2     T2
	C3     T3
}

type Row4[T1, T2, T3, T4 any] struct {
	Entity Entity
	C1     T1
	C2     T2
	C3     T3
	C4     T4
}

type Row5[T1, T2, T3, T4, T5 any] struct {
	Entity Entity
	C1     T1
	C2     T2
	C3     T3
	C4     T4
	C5     T5
}

// Each2 calls fn for every entity that has both T1 and T2.
func Each2[T1, T2 any](r *Registry, fn func(Entity, T1, T2)) {
	types := []ComponentType{TypeOf[T1](), TypeOf[T2]()}
	r.match(types, func(e Entity, c []any) bool {
		fn(e, c[0].(T1), c[1].(T2))
		return true
	})
}

// Each3 calls fn for every entity that has T1, T2 and T3.
func Each3[T1, T2, T3 any](r *Registry, fn func(Entity, T1, T2, T3)) {
	types := []ComponentType{TypeOf[T1](), TypeOf[T2](), TypeOf[T3]()}
	r.match(types, func(e Entity, c []any) bool {
		fn(e, c[0].(T1), c[1].(T2), c[2].(T3))
		return true
	})
}

// Each4 calls fn for every entity that has T1 through T4.
func Each4[T1, T2, T3, T4 any](r *Registry, fn func(Entity, T1, T2, T3, T4)) {
	types := []ComponentType{TypeOf[T1](), TypeOf[T2](), TypeOf[T3](), TypeOf[T4]()}
	r.match(types, func(e Entity, c []any) bool {
		fn(e, c[0].(T1), c[1].(T2), c[2].(T3), c[3].(T4))
		return true
	})
}

// Each5 calls fn for every entity that has T1 through T5.
func Each5[T1, T2, T3, T4, T5 any](r *Registry, fn func(Entity, T1, T2, T3, T4, T5)) {
	types := []ComponentType{TypeOf[T1](), TypeOf[T2](), TypeOf[T3](), TypeOf[T4](), TypeOf[T5]()}
	r.match(types, func(e Entity, c []any) bool {
		fn(e, c[0].(T1), c[1].(T2), c[2].(T3), c[3].(T4), c[4].(T5))
		return true
	})
}

// View2 collects the rows Each2 would visit.
func View2[T1, T2 any](r *Registry) []Row2[T1, T2] {
	var out []Row2[T1, T2]
	Each2(r, func(e Entity, c1 T1, c2 T2) {
		out = append(out, Row2[T1, T2]{Entity: e, C1: c1, C2: c2})
	})
	return out
}

// View3 collects the rows Each3 would visit.
func View3[T1, T2, T3 any](r *Registry) []Row3[T1, T2, T3] {
	var out []Row3[T1, T2, T3]
	Each3(r, func(e Entity, c1 T1, c2 T2, c3 T3) {
		out = append(out, Row3[T1, T2, T3]{Entity: e, C1: c1, C2: c2, C3: c3})
	})
	return out
}

// View4 collects the rows Each4 would visit.
func View4[T1, T2, T3, T4 any](r *Registry) []Row4[T1, T2, T3, T4] {
	var out []Row4[T1, T2, T3, T4]
	Each4(r, func(e Entity, c1 T1, c2 T2, c3 T3, c4 T4) {
		out = append(out, Row4[T1, T2, T3, T4]{Entity: e, C1: c1, C2: c2, C3: c3, C4: c4})
	})
	return out
}

// View5 collects the rows Each5 would visit.
func View5[T1, T2, T3, T4, T5 any](r *Registry) []Row5[T1, T2, T3, T4, T5] {
	var out []Row5[T1, T2, T3, T4, T5]
	Each5(r, func(e Entity, c1 T1, c2 T2, c3 T3, c4 T4, c5 T5) {
		out = append(out, Row5[T1, T2, T3, T4, T5]{Entity: e, C1: c1, C2: c2, C3: c3, C4: c4, C5: c5})
	})
	return out
}
