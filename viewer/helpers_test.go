package viewer

import (
	m "math"
	"testing"

	"github.com/spaghettifunk/prism/engine/core"
	"github.com/spaghettifunk/prism/engine/math"
	"github.com/spaghettifunk/prism/engine/renderer"
	"github.com/spaghettifunk/prism/engine/renderer/metadata"
	"github.com/spaghettifunk/prism/engine/systems"
)

type fakeBackend struct {
	created   int
	destroyed int
}

func (f *fakeBackend) Initialize(string, uint32, uint32) error { return nil }
func (f *fakeBackend) Shutdown() error { return nil }
func (f *fakeBackend) Resized(uint32, uint32) error { return nil }
func (f *fakeBackend) BeginFrame(*metadata.RenderPacket) error { return nil }
func (f *fakeBackend) EndFrame(float64) error { return nil }
func (f *fakeBackend) DrawGeometry(*metadata.GeometryRenderData) {}
func (f *fakeBackend) DrawOverlay(*metadata.Overlay) {}
func (f *fakeBackend) DestroyGeometry(*metadata.Geometry) { f.destroyed++ }
func (f *fakeBackend) CreateGeometry(*metadata.Geometry, []math.Vertex3D, []uint32) error {
	f.created++
	return nil
}

type fixture struct {
	backend  *fakeBackend
	renderer *renderer.Renderer
	systems  *systems.SystemManager
	events   *core.EventSystem
	frames   *core.FrameScheduler
	config   *Config
	manager  *SceneManager
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		backend: &fakeBackend{},
		events:  core.NewEventSystem(),
		frames:  core.NewFrameScheduler(),
		config:  DefaultConfig(),
	}
	f.renderer = renderer.New(f.backend)
	if err := f.renderer.Initialize("test", 800, 600); err != nil {
		t.Fatalf("renderer Initialize: %v", err)
	}
	sm, err := systems.NewSystemManager(f.renderer)
	if err != nil {
		t.Fatalf("NewSystemManager: %v", err)
	}
	f.systems = sm
	f.manager = NewSceneManager(f.renderer, f.systems, f.events, f.frames, f.config)
	return f
}

func (f *fixture) mouse(code core.EventCode, x, y float64) bool {
	return f.events.Fire(core.EventContext{
		Type: code,
		Data: &core.MouseEvent{Button: core.BUTTON_LEFT, X: x, Y: y},
	})
}

// assertReleased checks that nothing of a torn down scene is left behind.
func (f *fixture) assertReleased(t *testing.T) {
	t.Helper()
	if n := f.events.TotalListeners(); n != 0 {
		t.Fatalf("%d listeners still registered", n)
	}
	if n := f.renderer.SurfaceCount(); n != 0 {
		t.Fatalf("%d surfaces still attached", n)
	}
	if n := f.systems.GeometrySystem.LiveCount(); n != 0 {
		t.Fatalf("%d geometries still live", n)
	}
	if n := f.systems.MaterialSystem.LiveCount(); n != 0 {
		t.Fatalf("%d materials still live", n)
	}
	if n := f.frames.Pending(); n != 0 {
		t.Fatalf("%d frame callbacks still pending", n)
	}
}

func approx(a, b float32) bool {
	return m.Abs(float64(a-b)) < 1e-5
}

type fixedViewport struct{ w, h uint32 }

func (v fixedViewport) Size() (uint32, uint32) { return v.w, v.h }
