package event

import (
	"reflect"
	"slices"
)

// Bus is a synchronous, typed observer registry. Publish delivers to every
// active subscriber of the event's type, in subscription order, on the
// caller's goroutine. Not safe for concurrent use.
type Bus struct {
	handlers map[reflect.Type][]*Subscription
}

func NewBus() *Bus {
	return &Bus{
		handlers: make(map[reflect.Type][]*Subscription),
	}
}

// Subscribe registers a typed handler for events of type T. The returned
// subscription stays active until Cancel is called.
func Subscribe[T any](b *Bus, fn func(T)) *Subscription {
	t := reflect.TypeOf((*T)(nil)).Elem()
	s := newSubscription(b, t, fn)
	b.handlers[t] = append(b.handlers[t], s)
	return s
}

// Publish delivers event to the handlers subscribed for T. Handlers added
// during delivery see the next event, not this one. A panicking handler stops
// delivery and unwinds to the publisher.
func Publish[T any](b *Bus, event T) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	subs := b.handlers[t]
	if len(subs) == 0 {
		return
	}
	snapshot := make([]*Subscription, len(subs))
	copy(snapshot, subs)
	for _, s := range snapshot {
		if !s.active {
			continue
		}
		s.fn.(func(T))(event)
	}
}

// Subscribers returns how many active handlers are registered for T.
func Subscribers[T any](b *Bus) int {
	return len(b.handlers[reflect.TypeOf((*T)(nil)).Elem()])
}

// Len returns the number of active subscriptions across all event types.
func (b *Bus) Len() int {
	n := 0
	for _, subs := range b.handlers {
		n += len(subs)
	}
	return n
}

func (b *Bus) remove(s *Subscription) {
	subs := b.handlers[s.typ]
	i := slices.Index(subs, s)
	if i < 0 {
		return
	}
	subs = slices.Delete(subs, i, i+1)
	if len(subs) == 0 {
		delete(b.handlers, s.typ)
		return
	}
	b.handlers[s.typ] = subs
}
