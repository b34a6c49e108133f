package viewer

import (
	"os"
	"testing"
	"time"

	"github.com/spaghettifunk/prism/engine/core"
)

type reloadListener struct {
	configs []*Config
}

func (l *reloadListener) onReload(ctx core.EventContext) bool {
	l.configs = append(l.configs, ctx.Data.(*Config))
	return true
}

// waitFor dispatches posted events until cond holds or the deadline passes.
func waitFor(events *core.EventSystem, timeout time.Duration, cond func() bool) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		events.Dispatch()
		if cond() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return false
}

func TestConfigWatcherReloads(t *testing.T) {
	path := writeConfig(t, "[scene]\nshape = \"cube\"\n")
	events := core.NewEventSystem()
	l := &reloadListener{}
	events.Register(core.EVENT_CODE_CONFIG_RELOADED, l, l.onReload)

	w, err := NewConfigWatcher(path, events)
	if err != nil {
		t.Fatalf("NewConfigWatcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("[scene]\nshape = \"torus\"\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	// A truncate and a write may arrive separately, so wait for the final content.
	ok := waitFor(events, 5*time.Second, func() bool {
		for _, cfg := range l.configs {
			if cfg.ShapeValue() == ShapeTorus {
				return true
			}
		}
		return false
	})
	if !ok {
		t.Fatalf("no reload with the new shape, got %d reloads", len(l.configs))
	}
}

func TestConfigWatcherIgnoresInvalidAndOtherFiles(t *testing.T) {
	path := writeConfig(t, "")
	events := core.NewEventSystem()
	l := &reloadListener{}
	events.Register(core.EVENT_CODE_CONFIG_RELOADED, l, l.onReload)

	w, err := NewConfigWatcher(path, events)
	if err != nil {
		t.Fatalf("NewConfigWatcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path+".bak", []byte("[scene]\nshape = \"cone\"\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(path, []byte("[scene]\nshape = \"pyramid\"\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	waitFor(events, 300*time.Millisecond, func() bool { return false })

	for _, cfg := range l.configs {
		if cfg.Scene.Shape == "pyramid" || cfg.Scene.Shape == "cone" {
			t.Fatalf("reloaded %q", cfg.Scene.Shape)
		}
	}
}

func TestConfigWatcherCloseTwice(t *testing.T) {
	w, err := NewConfigWatcher(writeConfig(t, ""), core.NewEventSystem())
	if err != nil {
		t.Fatalf("NewConfigWatcher: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}
