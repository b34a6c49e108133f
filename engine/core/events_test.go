package core

import (
	"sync"
	"testing"
)

type listener struct{ name string }

func TestEventRegisterRejectsDuplicates(t *testing.T) {
	es := NewEventSystem()
	l := &listener{"a"}
	noop := func(EventContext) bool { return false }

	if !es.Register(EVENT_CODE_KEY_PRESSED, l, noop) {
		t.Fatalf("first registration failed")
	}
	if es.Register(EVENT_CODE_KEY_PRESSED, l, noop) {
		t.Fatalf("duplicate registration accepted")
	}
	if !es.Register(EVENT_CODE_KEY_RELEASED, l, noop) {
		t.Fatalf("same listener on another code rejected")
	}
	if es.Register(EventCode(MAX_MESSAGE_CODES), l, noop) {
		t.Fatalf("out of range code accepted")
	}
	if es.Register(EVENT_CODE_KEY_PRESSED, &listener{"b"}, nil) {
		t.Fatalf("nil callback accepted")
	}
	if got := es.TotalListeners(); got != 2 {
		t.Fatalf("TotalListeners = %d, want 2", got)
	}
}

func TestEventFireStopsWhenHandled(t *testing.T) {
	es := NewEventSystem()
	var calls []string
	first, second, third := &listener{"1"}, &listener{"2"}, &listener{"3"}

	es.Register(EVENT_CODE_BUTTON_PRESSED, first, func(EventContext) bool {
		calls = append(calls, "1")
		return false
	})
	es.Register(EVENT_CODE_BUTTON_PRESSED, second, func(EventContext) bool {
		calls = append(calls, "2")
		return true
	})
	es.Register(EVENT_CODE_BUTTON_PRESSED, third, func(EventContext) bool {
		calls = append(calls, "3")
		return false
	})

	if !es.Fire(EventContext{Type: EVENT_CODE_BUTTON_PRESSED}) {
		t.Fatalf("Fire reported unhandled")
	}
	if len(calls) != 2 || calls[0] != "1" || calls[1] != "2" {
		t.Fatalf("calls = %v, want [1 2]", calls)
	}
}

func TestEventUnregisterDuringFire(t *testing.T) {
	es := NewEventSystem()
	a, b := &listener{"a"}, &listener{"b"}
	bCalled := false

	es.Register(EVENT_CODE_MOUSE_MOVED, a, func(EventContext) bool {
		es.Unregister(EVENT_CODE_MOUSE_MOVED, a)
		return false
	})
	es.Register(EVENT_CODE_MOUSE_MOVED, b, func(EventContext) bool {
		bCalled = true
		return false
	})

	es.Fire(EventContext{Type: EVENT_CODE_MOUSE_MOVED})
	if !bCalled {
		t.Fatalf("second listener skipped after first unregistered itself")
	}
	if got := es.ListenerCount(EVENT_CODE_MOUSE_MOVED); got != 1 {
		t.Fatalf("ListenerCount = %d, want 1", got)
	}
	if es.Unregister(EVENT_CODE_MOUSE_MOVED, a) {
		t.Fatalf("second Unregister of the same listener succeeded")
	}
}

func TestEventUnregisterAll(t *testing.T) {
	es := NewEventSystem()
	l, other := &listener{"l"}, &listener{"o"}
	noop := func(EventContext) bool { return false }
	for _, code := range []EventCode{EVENT_CODE_BUTTON_PRESSED, EVENT_CODE_BUTTON_RELEASED, EVENT_CODE_RESIZED} {
		es.Register(code, l, noop)
	}
	es.Register(EVENT_CODE_RESIZED, other, noop)

	if got := es.UnregisterAll(l); got != 3 {
		t.Fatalf("UnregisterAll = %d, want 3", got)
	}
	if got := es.TotalListeners(); got != 1 {
		t.Fatalf("TotalListeners = %d, want 1", got)
	}
}

func TestEventPostIsDeliveredOnDispatch(t *testing.T) {
	es := NewEventSystem()
	l := &listener{"l"}
	var got []interface{}
	es.Register(EVENT_CODE_CONFIG_RELOADED, l, func(ctx EventContext) bool {
		got = append(got, ctx.Data)
		return true
	})

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			es.Post(EventContext{Type: EVENT_CODE_CONFIG_RELOADED, Data: i})
		}(i)
	}
	wg.Wait()

	if len(got) != 0 {
		t.Fatalf("posted events delivered before Dispatch")
	}
	if n := es.Dispatch(); n != 4 {
		t.Fatalf("Dispatch = %d, want 4", n)
	}
	if len(got) != 4 {
		t.Fatalf("delivered %d events, want 4", len(got))
	}
	if n := es.Dispatch(); n != 0 {
		t.Fatalf("second Dispatch = %d, want 0", n)
	}
}

func TestEventPostAfterShutdown(t *testing.T) {
	es := NewEventSystem()
	if err := es.Shutdown(); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	if es.Post(EventContext{Type: EVENT_CODE_APPLICATION_QUIT}) {
		t.Fatalf("Post accepted after shutdown")
	}
}

func TestEventPostDropsWhenFull(t *testing.T) {
	es := NewEventSystem()
	for i := 0; i < eventQueueSize; i++ {
		if !es.Post(EventContext{Type: EVENT_CODE_APPLICATION_QUIT}) {
			t.Fatalf("Post %d rejected before the queue was full", i)
		}
	}
	if es.Post(EventContext{Type: EVENT_CODE_APPLICATION_QUIT}) {
		t.Fatalf("Post accepted on a full queue")
	}
}
