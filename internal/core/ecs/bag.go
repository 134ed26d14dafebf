package ecs

// bag holds one entity's components, grouped into homogeneous slots per type.
// Within a slot instances keep attachment order; types keep the order in
// which their first instance arrived.
type bag struct {
	types []ComponentType
	slots map[ComponentType][]any
}

func newBag() *bag {
	return &bag{slots: make(map[ComponentType][]any, 4)}
}

func (b *bag) add(t ComponentType, c any) {
	slot, ok := b.slots[t]
	if !ok {
		b.types = append(b.types, t)
	}
	b.slots[t] = append(slot, c)
}

func (b *bag) has(t ComponentType) bool {
	return len(b.slots[t]) > 0
}

func (b *bag) first(t ComponentType) (any, bool) {
	slot := b.slots[t]
	if len(slot) == 0 {
		return nil, false
	}
	return slot[0], true
}

// removeFirst drops the oldest instance of t.
func (b *bag) removeFirst(t ComponentType) (any, bool) {
	slot := b.slots[t]
	if len(slot) == 0 {
		return nil, false
	}
	c := slot[0]
	if len(slot) == 1 {
		delete(b.slots, t)
		for i, bt := range b.types {
			if bt == t {
				b.types = append(b.types[:i], b.types[i+1:]...)
				break
			}
		}
		return c, true
	}
	n := copy(slot, slot[1:])
	slot[n] = nil
	b.slots[t] = slot[:n]
	return c, true
}

// replaceFirst overwrites the oldest instance of t in place.
func (b *bag) replaceFirst(t ComponentType, c any) bool {
	slot := b.slots[t]
	if len(slot) == 0 {
		return false
	}
	slot[0] = c
	return true
}

func (b *bag) len() int {
	n := 0
	for _, slot := range b.slots {
		n += len(slot)
	}
	return n
}

func (b *bag) all() []any {
	out := make([]any, 0, b.len())
	for _, t := range b.types {
		out = append(out, b.slots[t]...)
	}
	return out
}
