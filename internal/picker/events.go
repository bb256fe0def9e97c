package picker

import "sync"

// Events fans out "interaction outside the picker" notifications to
// whoever currently holds a subscription.
type Events struct {
	mu   sync.Mutex
	next int
	subs map[int]func()
}

// NewEvents creates an empty event source
func NewEvents() *Events {
	return &Events{subs: make(map[int]func())}
}

// Subscribe registers fn and returns a cancel function.
// Cancelling more than once is a no-op.
func (e *Events) Subscribe(fn func()) (cancel func()) {
	e.mu.Lock()
	id := e.next
	e.next++
	e.subs[id] = fn
	e.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			e.mu.Lock()
			delete(e.subs, id)
			e.mu.Unlock()
		})
	}
}

// Publish notifies every subscriber. Handlers run outside the lock and may
// cancel their own subscription.
func (e *Events) Publish() {
	e.mu.Lock()
	handlers := make([]func(), 0, len(e.subs))
	for _, fn := range e.subs {
		handlers = append(handlers, fn)
	}
	e.mu.Unlock()

	for _, fn := range handlers {
		fn()
	}
}

// Len returns the number of active subscriptions
func (e *Events) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.subs)
}
