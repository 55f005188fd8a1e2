// Package input keeps the last known keyboard and mouse state.
//
// Hosts write into a Store from their event-dispatch goroutine while the loop
// worker reads from it. Every read and write holds the store lock for a single
// access only; there is no event queue, so the last write for a key wins.
package input

import (
	"image"
	"sort"
	"sync"
)

// EventKind classifies a mouse event.
type EventKind int

// Mouse event kinds
const (
	EventMove EventKind = iota
	EventPress
	EventRelease
	EventClick
)

// MouseEvent is the raw record of the latest mouse event. Screen coordinates
// are the window-relative position offset by the window origin at the time
// of the event.
type MouseEvent struct {
	Kind             EventKind
	X, Y             int
	ScreenX, ScreenY int
	Button           MouseButton
	Clicks           int
}

// Store is the shared input state of one input subsystem.
type Store struct {
	mu      sync.RWMutex
	keys    map[Key]bool
	x, y    int
	origin  image.Point
	button  MouseButton
	clicks  int
	last    MouseEvent
	hasLast bool

	handlers handlerSet
}

// NewStore creates an empty store: no key pressed, cursor at the origin and
// no button held.
func NewStore() *Store {
	return &Store{
		keys:   make(map[Key]bool),
		button: ButtonNone,
	}
}

// RecordKey stores the pressed state of a key.
func (s *Store) RecordKey(code Key, pressed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys[code] = pressed
}

// IsPressed returns the last recorded state of a key, false if never seen.
func (s *Store) IsPressed(code Key) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.keys[code]
}

// PressedKeys lists every key currently recorded as pressed, in code order.
func (s *Store) PressedKeys() []Key {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var keys []Key
	for k, down := range s.keys {
		if down {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// ReleaseAll marks every key as released, e.g. when the window loses focus
// and release events will never arrive.
func (s *Store) ReleaseAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k := range s.keys {
		s.keys[k] = false
	}
}

// SetScreenOrigin records where the window's top-left corner sits on screen.
func (s *Store) SetScreenOrigin(x, y int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.origin = image.Pt(x, y)
}

// RecordMouseMove updates the cursor position. Only move events change it.
func (s *Store) RecordMouseMove(x, y int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.x, s.y = x, y
	s.last = s.event(EventMove, x, y, s.button, s.clicks)
	s.hasLast = true
}

// RecordButton records a press or release of a mouse button and then runs the
// matching handlers on the calling goroutine. A release clears the current
// button; the click count is only updated on press.
func (s *Store) RecordButton(button MouseButton, pressed bool, clickCount int) {
	s.mu.Lock()
	var ev MouseEvent
	if pressed {
		s.button = button
		s.clicks = clickCount
		ev = s.event(EventPress, s.x, s.y, button, clickCount)
	} else {
		s.button = ButtonNone
		ev = s.event(EventRelease, s.x, s.y, button, s.clicks)
	}
	s.last = ev
	s.hasLast = true
	s.mu.Unlock()

	if pressed {
		s.handlers.dispatch(slotPress, ev)
	} else {
		s.handlers.dispatch(slotRelease, ev)
	}
}

// RecordClick records a completed click (press then release on the same
// button) and runs the click handlers.
func (s *Store) RecordClick(button MouseButton, clickCount int) {
	s.mu.Lock()
	s.clicks = clickCount
	ev := s.event(EventClick, s.x, s.y, button, clickCount)
	s.last = ev
	s.hasLast = true
	s.mu.Unlock()

	s.handlers.dispatch(slotClick, ev)
}

// CurrentMousePosition returns the cursor position from the last move event.
func (s *Store) CurrentMousePosition() (x, y int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.x, s.y
}

// Point returns the cursor position as an image.Point.
func (s *Store) Point() image.Point {
	x, y := s.CurrentMousePosition()
	return image.Pt(x, y)
}

// CurrentButton returns the held button, or ButtonNone.
func (s *Store) CurrentButton() MouseButton {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.button
}

// ClickCount returns the click count of the last press or click.
func (s *Store) ClickCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.clicks
}

// LastEvent returns the most recent mouse event, if any was recorded.
func (s *Store) LastEvent() (MouseEvent, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last, s.hasLast
}

// ScreenPosition returns the screen-relative position of the last mouse event.
func (s *Store) ScreenPosition() (x, y int, ok bool) {
	ev, ok := s.LastEvent()
	if !ok {
		return 0, 0, false
	}
	return ev.ScreenX, ev.ScreenY, true
}

// event must be called with s.mu held.
func (s *Store) event(kind EventKind, x, y int, b MouseButton, clicks int) MouseEvent {
	return MouseEvent{
		Kind:    kind,
		X:       x,
		Y:       y,
		ScreenX: x + s.origin.X,
		ScreenY: y + s.origin.Y,
		Button:  b,
		Clicks:  clicks,
	}
}
