package core

import (
	"sync"

	"github.com/spaghettifunk/prism/engine/containers"
)

// System internal event codes. Application should use codes beyond 255.
type EventCode uint16

const (
	// Shuts the application down on the next frame.
	EVENT_CODE_APPLICATION_QUIT EventCode = 0x01

	// Keyboard key pressed.
	/* Context usage:
	 * ke := ctx.Data.(*KeyEvent)
	 */
	EVENT_CODE_KEY_PRESSED EventCode = 0x02

	// Keyboard key released.
	/* Context usage:
	 * ke := ctx.Data.(*KeyEvent)
	 */
	EVENT_CODE_KEY_RELEASED EventCode = 0x03

	// Mouse button pressed.
	/* Context usage:
	 * me := ctx.Data.(*MouseEvent)
	 */
	EVENT_CODE_BUTTON_PRESSED EventCode = 0x04

	// Mouse button released.
	/* Context usage:
	 * me := ctx.Data.(*MouseEvent)
	 */
	EVENT_CODE_BUTTON_RELEASED EventCode = 0x05

	// Mouse moved.
	/* Context usage:
	 * me := ctx.Data.(*MouseEvent)
	 */
	EVENT_CODE_MOUSE_MOVED EventCode = 0x06

	// Resized/resolution changed from the OS.
	/* Context usage:
	 * se := ctx.Data.(*SystemEvent)
	 */
	EVENT_CODE_RESIZED EventCode = 0x08

	MAX_EVENT_CODE EventCode = 0xFF

	// Application codes.

	// A shape was picked in the selector bar or through a shortcut.
	/* Context usage:
	 * name := ctx.Data.(string)
	 */
	EVENT_CODE_SHAPE_SELECTED EventCode = 0x100

	// The configuration file changed on disk and was parsed again.
	EVENT_CODE_CONFIG_RELOADED EventCode = 0x101
)

// This should be more than enough codes...
const MAX_MESSAGE_CODES = 1024

// Size of the cross-goroutine event queue.
const eventQueueSize = 256

type EventContext struct {
	Type EventCode
	Data interface{}
}

type KeyEvent struct {
	KeyCode KeyCode
}

type MouseEvent struct {
	Button Button
	X      float64
	Y      float64
}

type SystemEvent struct {
	WindowWidth  uint32
	WindowHeight uint32
}

// Should return true if handled.
type FnOnEvent func(ctx EventContext) bool

type registeredEvent struct {
	listener interface{}
	callback FnOnEvent
}

// EventSystem routes events to registered listeners. Registration and Fire
// are meant for the main thread; Post may be called from any goroutine and
// the queued events are delivered by the next Dispatch.
type EventSystem struct {
	registered [MAX_MESSAGE_CODES][]*registeredEvent
	queue      *containers.RingQueue[EventContext]
	mu         sync.Mutex
	closed     bool
}

func NewEventSystem() *EventSystem {
	return &EventSystem{
		queue: containers.NewRingQueue[EventContext](eventQueueSize),
	}
}

func (es *EventSystem) Shutdown() error {
	for i := 0; i < MAX_MESSAGE_CODES; i++ {
		es.registered[i] = nil
	}
	es.mu.Lock()
	es.closed = true
	es.mu.Unlock()
	return nil
}

/**
 * Register to listen for when events are sent with the provided code. Events with duplicate
 * listener/code combos will not be registered again and will cause this to return false.
 * The listener must be comparable (usually a pointer).
 */
func (es *EventSystem) Register(code EventCode, listener interface{}, onEvent FnOnEvent) bool {
	if int(code) >= MAX_MESSAGE_CODES || onEvent == nil {
		return false
	}
	for _, e := range es.registered[code] {
		if e.listener == listener {
			LogWarn("listener already registered for event code %d", code)
			return false
		}
	}
	es.registered[code] = append(es.registered[code], &registeredEvent{
		listener: listener,
		callback: onEvent,
	})
	return true
}

/**
 * Unregister from listening for when events are sent with the provided code. If no matching
 * registration is found, this function returns false.
 */
func (es *EventSystem) Unregister(code EventCode, listener interface{}) bool {
	if int(code) >= MAX_MESSAGE_CODES {
		return false
	}
	events := es.registered[code]
	for i, e := range events {
		if e.listener == listener {
			es.registered[code] = append(events[:i:i], events[i+1:]...)
			return true
		}
	}
	return false
}

// UnregisterAll removes every registration owned by listener and returns how
// many were removed.
func (es *EventSystem) UnregisterAll(listener interface{}) int {
	removed := 0
	for code := range es.registered {
		if es.Unregister(EventCode(code), listener) {
			removed++
		}
	}
	return removed
}

/**
 * Fires an event to listeners of the given code. If an event handler returns
 * true, the event is considered handled and is not passed on to any more listeners.
 */
func (es *EventSystem) Fire(ctx EventContext) bool {
	if int(ctx.Type) >= MAX_MESSAGE_CODES {
		return false
	}
	// Handlers may unregister themselves while being notified.
	events := append([]*registeredEvent(nil), es.registered[ctx.Type]...)
	for _, e := range events {
		if e.callback(ctx) {
			return true
		}
	}
	return false
}

// Post queues an event for the next Dispatch. It never blocks: when the queue
// is full the event is dropped and false is returned.
func (es *EventSystem) Post(ctx EventContext) bool {
	es.mu.Lock()
	defer es.mu.Unlock()
	if es.closed {
		return false
	}
	if err := es.queue.Enqueue(ctx); err != nil {
		LogWarn("%s, dropping event code %d", err, ctx.Type)
		return false
	}
	return true
}

// Dispatch fires every queued event on the calling goroutine.
func (es *EventSystem) Dispatch() int {
	n := 0
	for {
		es.mu.Lock()
		ctx, err := es.queue.Dequeue()
		es.mu.Unlock()
		if err != nil {
			return n
		}
		es.Fire(ctx)
		n++
	}
}

// ListenerCount returns how many listeners are registered for code.
func (es *EventSystem) ListenerCount(code EventCode) int {
	if int(code) >= MAX_MESSAGE_CODES {
		return 0
	}
	return len(es.registered[code])
}

// TotalListeners returns the number of registrations across all codes.
func (es *EventSystem) TotalListeners() int {
	total := 0
	for _, events := range es.registered {
		total += len(events)
	}
	return total
}
