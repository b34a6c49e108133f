package viewer

import (
	"fmt"

	"github.com/spaghettifunk/prism/engine/core"
	"github.com/spaghettifunk/prism/engine/math"
	"github.com/spaghettifunk/prism/engine/renderer"
	"github.com/spaghettifunk/prism/engine/renderer/components"
	"github.com/spaghettifunk/prism/engine/renderer/metadata"
	"github.com/spaghettifunk/prism/engine/systems"
)

const shapeMaterialName = "prism.shape"

// Scene is everything built for one shape selection. It is owned by the
// SceneManager and must not be used after Teardown.
type Scene struct {
	ID         core.Identifier
	Shape      Shape
	Variant    Variant
	Background math.Vec3
	Camera     *components.PerspectiveCamera
	Lights     []metadata.DirectionalLight
	Ambient    metadata.AmbientLight
	Material   *metadata.Material
	Mesh       *metadata.Mesh
	Surface    *renderer.Surface
	Controller Controller

	frames      *core.FrameScheduler
	frameHandle core.FrameHandle
	listeners   []core.EventCode
}

// LightCount includes the ambient light.
func (s *Scene) LightCount() int {
	return len(s.Lights) + 1
}

func (s *Scene) MeshCount() int {
	if s.Mesh == nil {
		return 0
	}
	return 1
}

// Populate fills the scene part of a render packet.
func (s *Scene) Populate(packet *metadata.RenderPacket) {
	packet.Background = s.Background
	packet.View = s.Camera.View()
	packet.Projection = s.Camera.Projection()
	packet.ViewPosition = s.Camera.GetPosition()
	packet.Meshes = append(packet.Meshes, s.Mesh)
	packet.DirectionalLights = append(packet.DirectionalLights, s.Lights...)
	packet.Ambient = s.Ambient
}

func (s *Scene) animate(frame core.FrameContext) {
	s.frameHandle = s.frames.Request(s.animate)
	s.Controller.Tick(frame)
}

func (s *Scene) onPointer(ctx core.EventContext) bool {
	me, ok := ctx.Data.(*core.MouseEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", ctx.Type)
		return false
	}
	p := math.NewVec2(float32(me.X), float32(me.Y))
	switch ctx.Type {
	case core.EVENT_CODE_BUTTON_PRESSED:
		if me.Button == core.BUTTON_LEFT {
			s.Controller.PointerDown(p)
		}
	case core.EVENT_CODE_MOUSE_MOVED:
		s.Controller.PointerMove(p)
	case core.EVENT_CODE_BUTTON_RELEASED:
		if me.Button == core.BUTTON_LEFT {
			s.Controller.PointerUp()
		}
	}
	return false
}

// onResized only touches the camera and the surface.
func (s *Scene) onResized(ctx core.EventContext) bool {
	se, ok := ctx.Data.(*core.SystemEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", ctx.Type)
		return false
	}
	if se.WindowWidth == 0 || se.WindowHeight == 0 {
		return false
	}
	s.Surface.SetSize(se.WindowWidth, se.WindowHeight)
	s.Camera.SetAspect(s.Surface.Aspect())
	s.Camera.UpdateProjectionMatrix()
	return false
}

// SceneManager builds and tears down scenes. At most one scene is live.
type SceneManager struct {
	renderer *renderer.Renderer
	systems  *systems.SystemManager
	events   *core.EventSystem
	frames   *core.FrameScheduler
	config   *Config

	current *Scene
}

func NewSceneManager(r *renderer.Renderer, sm *systems.SystemManager, events *core.EventSystem, frames *core.FrameScheduler, config *Config) *SceneManager {
	return &SceneManager{
		renderer: r,
		systems:  sm,
		events:   events,
		frames:   frames,
		config:   config,
	}
}

// SetConfig swaps the settings used by the next Build.
func (m *SceneManager) SetConfig(config *Config) {
	m.config = config
}

func (m *SceneManager) Current() *Scene {
	return m.current
}

// Build creates the scene for shape. When there is nothing to render into
// it quietly returns a nil scene. A live scene is torn down first.
func (m *SceneManager) Build(shape Shape) (*Scene, error) {
	if m.renderer == nil || m.systems == nil || m.events == nil || m.frames == nil {
		return nil, nil
	}
	if m.current != nil {
		m.Teardown()
	}

	cfg := m.config
	variant := cfg.VariantValue()
	surface := m.renderer.AcquireSurface()

	camera := components.NewPerspectiveCamera(cfg.Scene.Fov, surface.Aspect(), cfg.Scene.Near, cfg.Scene.Far)
	if variant == VariantThrow {
		camera.SetPosition(math.NewVec3(0, 5, 10))
	} else {
		camera.SetPosition(math.NewVec3(0, 0, 5))
	}
	camera.LookAt(math.NewVec3Zero())

	material, err := m.systems.MaterialSystem.AcquireFromConfig(&metadata.MaterialConfig{
		Name:           shapeMaterialName,
		DiffuseColour:  math.NewVec3FromHex(cfg.Scene.Colour),
		SpecularColour: math.NewVec3FromHex(cfg.Scene.Specular),
		Shininess:      cfg.Scene.Shininess,
		FlatShading:    cfg.Scene.FlatShading,
	})
	if err != nil {
		surface.Release()
		return nil, fmt.Errorf("acquire material: %w", err)
	}

	geometry, err := m.systems.GeometrySystem.AcquireFromConfig(shape.GeometryConfig(material.Name), true)
	if err != nil {
		m.systems.MaterialSystem.Release(material.Name)
		surface.Release()
		return nil, fmt.Errorf("acquire %s geometry: %w", shape, err)
	}

	s := &Scene{
		ID:         core.IdentifierAcquireNewID(),
		Shape:      shape,
		Variant:    variant,
		Background: math.NewVec3FromHex(cfg.Scene.Background),
		Camera:     camera,
		Lights: []metadata.DirectionalLight{
			{Colour: math.NewVec3One(), Intensity: 1, Position: math.NewVec3(1, 1, 1)},
			{Colour: math.NewVec3One(), Intensity: 0.5, Position: math.NewVec3(-1, -1, -1)},
		},
		Ambient:  metadata.AmbientLight{Colour: math.NewVec3FromHex(0x404040), Intensity: 1},
		Material: material,
		Mesh: &metadata.Mesh{
			UniqueID:  core.IdentifierAcquireNewID(),
			Geometry:  geometry,
			Transform: math.TransformCreate(),
		},
		Surface: surface,
		frames:  m.frames,
	}

	if variant == VariantThrow {
		s.Controller = NewThrowController(s.Mesh, camera, surface, cfg.Throw)
	} else {
		s.Controller = NewSpinController(s.Mesh.Transform, cfg.Spin)
	}

	m.listen(s, core.EVENT_CODE_BUTTON_PRESSED, s.onPointer)
	m.listen(s, core.EVENT_CODE_MOUSE_MOVED, s.onPointer)
	m.listen(s, core.EVENT_CODE_BUTTON_RELEASED, s.onPointer)
	m.listen(s, core.EVENT_CODE_RESIZED, s.onResized)

	s.frameHandle = m.frames.Request(s.animate)

	m.current = s
	core.LogInfo("scene %s built: %s (%s), %d vertices", s.ID, shape, variant, len(geometry.Vertices))
	return s, nil
}

func (m *SceneManager) listen(s *Scene, code core.EventCode, fn core.FnOnEvent) {
	if m.events.Register(code, s, fn) {
		s.listeners = append(s.listeners, code)
	}
}

// Teardown cancels the frame loop, removes every listener and releases all
// resources of the live scene. Calling it without a live scene does nothing.
func (m *SceneManager) Teardown() {
	s := m.current
	if s == nil {
		return
	}
	m.current = nil

	m.frames.Cancel(s.frameHandle)
	s.frameHandle = 0

	for _, code := range s.listeners {
		m.events.Unregister(code, s)
	}
	s.listeners = nil

	if s.Mesh != nil && s.Mesh.Geometry.IsValid() {
		m.systems.GeometrySystem.Release(s.Mesh.Geometry)
	}
	if s.Material != nil {
		m.systems.MaterialSystem.Release(s.Material.Name)
	}
	s.Surface.Release()

	core.LogDebug("scene %s torn down", s.ID)
}

// Reconstruct replaces the live scene with a fresh one for shape. The new
// scene always starts idle with zero motion.
func (m *SceneManager) Reconstruct(shape Shape) (*Scene, error) {
	m.Teardown()
	return m.Build(shape)
}

// ListenerCount returns the number of event registrations held by the live scene.
func (m *SceneManager) ListenerCount() int {
	if m.current == nil {
		return 0
	}
	return len(m.current.listeners)
}
