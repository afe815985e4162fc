package linemap

import "time"

// UpdateEvent is emitted after every successful rebuild.
type UpdateEvent struct {
	// LineCount is the highest tagged source line seen.
	LineCount int

	// ElementCount is the number of tagged blocks in the map.
	ElementCount int

	// BuildTime is the wall-clock duration of the rebuild.
	BuildTime time.Duration
}

// ErrorEvent is emitted when a rebuild fails.
type ErrorEvent struct {
	Message string
}

// Subscription identifies a registered event callback so it can be removed.
type Subscription int

// event is the internal union dispatched to subscribers after the mapper's
// lock is released.
type event struct {
	update *UpdateEvent
	err    *ErrorEvent
}

// subscribers holds registered callbacks keyed by subscription handle.
// Late subscribers receive no replay of earlier events.
type subscribers struct {
	next    Subscription
	updates map[Subscription]func(UpdateEvent)
	errors  map[Subscription]func(ErrorEvent)
}

func newSubscribers() subscribers {
	return subscribers{
		next:    1,
		updates: make(map[Subscription]func(UpdateEvent)),
		errors:  make(map[Subscription]func(ErrorEvent)),
	}
}

func (s *subscribers) addUpdate(fn func(UpdateEvent)) Subscription {
	id := s.next
	s.next++
	s.updates[id] = fn
	return id
}

func (s *subscribers) addError(fn func(ErrorEvent)) Subscription {
	id := s.next
	s.next++
	s.errors[id] = fn
	return id
}

func (s *subscribers) remove(id Subscription) {
	delete(s.updates, id)
	delete(s.errors, id)
}

func (s *subscribers) clear() {
	s.updates = make(map[Subscription]func(UpdateEvent))
	s.errors = make(map[Subscription]func(ErrorEvent))
}

// snapshotUpdate copies the current update callbacks for dispatch outside the
// mapper's lock.
func (s *subscribers) snapshotUpdate() []func(UpdateEvent) {
	out := make([]func(UpdateEvent), 0, len(s.updates))
	for _, fn := range s.updates {
		out = append(out, fn)
	}
	return out
}

func (s *subscribers) snapshotError() []func(ErrorEvent) {
	out := make([]func(ErrorEvent), 0, len(s.errors))
	for _, fn := range s.errors {
		out = append(out, fn)
	}
	return out
}
