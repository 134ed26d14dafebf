package event

import (
	"reflect"

	"github.com/google/uuid"
)

// Subscription is the handle returned by Subscribe. Releasing it is always an
// explicit Cancel call; nothing is unsubscribed implicitly.
type Subscription struct {
	id     string
	typ    reflect.Type
	fn     any
	bus    *Bus
	active bool
}

func newSubscription(b *Bus, t reflect.Type, fn any) *Subscription {
	return &Subscription{
		id:     uuid.NewString(),
		typ:    t,
		fn:     fn,
		bus:    b,
		active: true,
	}
}

func (s *Subscription) ID() string { return s.id }

// EventType returns the Go type the subscription listens to.
func (s *Subscription) EventType() reflect.Type { return s.typ }

func (s *Subscription) Active() bool { return s != nil && s.active }

// Cancel removes the handler from its bus. Safe to call more than once and on
// a nil subscription.
func (s *Subscription) Cancel() {
	if s == nil || !s.active {
		return
	}
	s.active = false
	s.bus.remove(s)
}
