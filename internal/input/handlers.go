package input

import "sync"

// ButtonHandler reacts to a mouse button transition. Handlers run on the
// host's event-dispatch goroutine and stall further delivery while running,
// so they must not block.
type ButtonHandler func(ev MouseEvent)

// ButtonEvents is the capability to subscribe to button transitions. Each
// slot accepts any number of independent handlers; the returned function
// removes the registration.
type ButtonEvents interface {
	OnPress(h ButtonHandler) (cancel func())
	OnClick(h ButtonHandler) (cancel func())
	OnRelease(h ButtonHandler) (cancel func())
}

var _ ButtonEvents = (*Store)(nil)

// OnPress registers a handler for button presses.
func (s *Store) OnPress(h ButtonHandler) func() {
	return s.handlers.add(slotPress, h)
}

// OnClick registers a handler for completed clicks.
func (s *Store) OnClick(h ButtonHandler) func() {
	return s.handlers.add(slotClick, h)
}

// OnRelease registers a handler for button releases.
func (s *Store) OnRelease(h ButtonHandler) func() {
	return s.handlers.add(slotRelease, h)
}

type slot int

const (
	slotPress slot = iota
	slotClick
	slotRelease
	slotCount
)

type registration struct {
	id int
	h  ButtonHandler
}

type handlerSet struct {
	mu     sync.Mutex
	nextID int
	slots  [slotCount][]registration
}

func (hs *handlerSet) add(sl slot, h ButtonHandler) func() {
	if h == nil {
		return func() {}
	}
	hs.mu.Lock()
	hs.nextID++
	id := hs.nextID
	hs.slots[sl] = append(hs.slots[sl], registration{id: id, h: h})
	hs.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { hs.remove(sl, id) })
	}
}

func (hs *handlerSet) remove(sl slot, id int) {
	hs.mu.Lock()
	defer hs.mu.Unlock()
	regs := hs.slots[sl]
	for i, r := range regs {
		if r.id == id {
			// copy so an in-flight dispatch keeps its snapshot intact
			next := make([]registration, 0, len(regs)-1)
			next = append(next, regs[:i]...)
			hs.slots[sl] = append(next, regs[i+1:]...)
			return
		}
	}
}

// dispatch runs the handlers registered at the time of the call, in
// registration order, without holding any lock.
func (hs *handlerSet) dispatch(sl slot, ev MouseEvent) {
	hs.mu.Lock()
	regs := hs.slots[sl]
	hs.mu.Unlock()

	for _, r := range regs {
		r.h(ev)
	}
}
