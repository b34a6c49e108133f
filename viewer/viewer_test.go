package viewer

import (
	"testing"

	"github.com/spaghettifunk/prism/engine/core"
	"github.com/spaghettifunk/prism/engine/math"
	"github.com/spaghettifunk/prism/engine/renderer/metadata"
)

func newTestViewer(t *testing.T, config *Config) (*Viewer, *fixture) {
	t.Helper()
	f := newFixture(t)
	v, err := NewViewer(config, "")
	if err != nil {
		t.Fatalf("NewViewer: %v", err)
	}
	v.Renderer = f.renderer
	v.SystemManager = f.systems
	v.Events = f.events
	v.Frames = f.frames

	if err := v.FnBoot(); err != nil {
		t.Fatalf("Boot: %v", err)
	}
	if err := v.FnInitialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if err := v.FnOnResize(800, 600); err != nil {
		t.Fatalf("OnResize: %v", err)
	}
	return v, f
}

func (f *fixture) key(code core.KeyCode) {
	f.events.Fire(core.EventContext{
		Type: core.EVENT_CODE_KEY_PRESSED,
		Data: &core.KeyEvent{KeyCode: code},
	})
}

func TestNewViewerRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Scene.Shape = "pyramid"
	if _, err := NewViewer(cfg, ""); err == nil {
		t.Fatalf("invalid config accepted")
	}
}

func TestViewerShutdownWithoutInitialize(t *testing.T) {
	f := newFixture(t)
	v, err := NewViewer(DefaultConfig(), "")
	if err != nil {
		t.Fatalf("NewViewer: %v", err)
	}
	v.Events = f.events

	if err := v.FnShutdown(); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	if err := v.FnBoot(); err != nil {
		t.Fatalf("Boot: %v", err)
	}
	if err := v.FnShutdown(); err != nil {
		t.Fatalf("Shutdown after Boot: %v", err)
	}
	f.assertReleased(t)
}

func TestViewerStartsWithConfiguredShape(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Scene.Shape = "cone"
	v, _ := newTestViewer(t, cfg)
	if s := v.Scenes().Current(); s == nil || s.Shape != ShapeCone {
		t.Fatalf("initial scene = %+v", s)
	}
	if v.ApplicationConfig.StartWidth != 1280 || v.ApplicationConfig.Name != "Prism" {
		t.Fatalf("application config = %+v", v.ApplicationConfig)
	}
}

func TestViewerNumberKeysSelectShapes(t *testing.T) {
	v, f := newTestViewer(t, DefaultConfig())
	for i, shape := range Shapes {
		f.key(core.KEY_1 + core.KeyCode(i))
		if err := v.FnUpdate(0.016); err != nil {
			t.Fatalf("Update: %v", err)
		}
		if got := v.Scenes().Current().Shape; got != shape {
			t.Fatalf("key %d selected %s, want %s", i+1, got, shape)
		}
		if v.state().bar.Active() != shape {
			t.Fatalf("bar shows %s, want %s", v.state().bar.Active(), shape)
		}
	}
	// Keys past the last shape are ignored.
	f.key(core.KEY_7)
	v.FnUpdate(0.016)
	if v.Scenes().Current().Shape != ShapeOctahedron {
		t.Fatalf("key 7 changed the shape")
	}
}

func TestViewerSameShapeKeepsScene(t *testing.T) {
	v, f := newTestViewer(t, DefaultConfig())
	before := v.Scenes().Current()
	f.key(core.KEY_1)
	v.FnUpdate(0.016)
	if v.Scenes().Current() != before {
		t.Fatalf("selecting the current shape rebuilt the scene")
	}
}

func TestViewerButtonClickIsConsumed(t *testing.T) {
	v, f := newTestViewer(t, DefaultConfig())
	bar := v.state().bar
	bar.Overlay()

	var torus button
	for _, b := range bar.buttons {
		if b.shape == ShapeTorus {
			torus = b
		}
	}
	c := torus.rect.Min.Add(torus.rect.Size().Div(2))

	scene := v.Scenes().Current()
	if !f.mouse(core.EVENT_CODE_BUTTON_PRESSED, float64(c.X), float64(c.Y)) {
		t.Fatalf("button click not handled")
	}
	if scene.Controller.Dragging() {
		t.Fatalf("button click started a drag")
	}
	f.mouse(core.EVENT_CODE_BUTTON_RELEASED, float64(c.X), float64(c.Y))

	if err := v.FnUpdate(0.016); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got := v.Scenes().Current().Shape; got != ShapeTorus {
		t.Fatalf("shape = %s, want torus", got)
	}

	// Clicks outside the buttons reach the scene.
	f.mouse(core.EVENT_CODE_BUTTON_PRESSED, 400, 400)
	if !v.Scenes().Current().Controller.Dragging() {
		t.Fatalf("click on the scene did not start a drag")
	}
}

func TestViewerBarBackgroundPressIsConsumed(t *testing.T) {
	v, f := newTestViewer(t, DefaultConfig())
	scene := v.Scenes().Current()

	if !f.mouse(core.EVENT_CODE_BUTTON_PRESSED, 2, 2) {
		t.Fatalf("press on the bar background not handled")
	}
	if scene.Controller.Dragging() {
		t.Fatalf("press on the bar background started a drag")
	}
	f.mouse(core.EVENT_CODE_BUTTON_RELEASED, 2, 2)
	if err := v.FnUpdate(0.016); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if v.Scenes().Current() != scene {
		t.Fatalf("press on the bar background changed the scene")
	}

	// Just below the bar belongs to the scene.
	y := float64(v.state().config.UI.BarHeight)
	f.mouse(core.EVENT_CODE_BUTTON_PRESSED, 2, y)
	if !scene.Controller.Dragging() {
		t.Fatalf("press below the bar did not start a drag")
	}
}

func TestViewerToggleAndReset(t *testing.T) {
	v, f := newTestViewer(t, DefaultConfig())
	first := v.Scenes().Current()

	f.key(core.KEY_T)
	v.FnUpdate(0.016)
	s := v.Scenes().Current()
	if s.Variant != VariantThrow || s.Shape != first.Shape {
		t.Fatalf("after toggle: %s/%s", s.Shape, s.Variant)
	}
	if _, ok := s.Controller.(*ThrowController); !ok {
		t.Fatalf("controller = %T", s.Controller)
	}

	s.Mesh.Transform.SetPosition(math.NewVec3(3, 3, 0))
	f.key(core.KEY_R)
	v.FnUpdate(0.016)
	reset := v.Scenes().Current()
	if reset == s || reset.Mesh.Transform.Position != (math.Vec3{}) {
		t.Fatalf("reset did not rebuild the scene")
	}
	if f.events.TotalListeners() != 4+4 {
		t.Fatalf("listeners = %d, want 8", f.events.TotalListeners())
	}
}

func TestViewerConfigReloadKeepsShape(t *testing.T) {
	v, f := newTestViewer(t, DefaultConfig())
	f.key(core.KEY_4)
	v.FnUpdate(0.016)

	cfg := DefaultConfig()
	cfg.Scene.Shape = "cube"
	cfg.Scene.Colour = 0xff0000
	f.events.Fire(core.EventContext{Type: core.EVENT_CODE_CONFIG_RELOADED, Data: cfg})
	v.FnUpdate(0.016)

	s := v.Scenes().Current()
	if s.Shape != ShapeTorus {
		t.Fatalf("reload changed the shape to %s", s.Shape)
	}
	if s.Material.DiffuseColour != math.NewVec3(1, 0, 0) {
		t.Fatalf("colour = %v", s.Material.DiffuseColour)
	}
}

func TestViewerConfigReloadAppliesLogSettings(t *testing.T) {
	v, f := newTestViewer(t, DefaultConfig())
	t.Cleanup(func() { core.LogConfigure(DefaultConfig().LogOptions()) })

	cfg := DefaultConfig()
	cfg.Log.Level = "debug"
	cfg.Window.Width = 640
	f.events.Fire(core.EventContext{Type: core.EVENT_CODE_CONFIG_RELOADED, Data: cfg})
	if err := v.FnUpdate(0.016); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got := core.LogLevelCurrent(); got != core.DebugLevel {
		t.Fatalf("log level = %v, want debug", got)
	}
	// The window keeps its startup size.
	if v.ApplicationConfig.StartWidth != 1280 {
		t.Fatalf("start width = %d", v.ApplicationConfig.StartWidth)
	}
}

func TestViewerRender(t *testing.T) {
	v, _ := newTestViewer(t, DefaultConfig())
	packet := &metadata.RenderPacket{}
	if err := v.FnRender(packet, 0.016); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(packet.Meshes) != 1 || packet.Overlay == nil {
		t.Fatalf("packet = %+v", packet)
	}
}

func TestViewerShutdownReleasesEverything(t *testing.T) {
	v, f := newTestViewer(t, DefaultConfig())
	if err := v.FnShutdown(); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	f.assertReleased(t)
}
