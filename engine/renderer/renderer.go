package renderer

import (
	"fmt"

	"github.com/spaghettifunk/prism/engine/core"
	"github.com/spaghettifunk/prism/engine/math"
	"github.com/spaghettifunk/prism/engine/renderer/metadata"
)

// Surface is the area of the window a scene draws into. At most one scene
// holds a surface at a time; releasing it detaches it from the renderer.
type Surface struct {
	Width  uint32
	Height uint32

	renderer *Renderer
	released bool
}

func (s *Surface) SetSize(width, height uint32) {
	s.Width = width
	s.Height = height
}

func (s *Surface) Size() (uint32, uint32) {
	return s.Width, s.Height
}

func (s *Surface) Aspect() float32 {
	if s.Height == 0 {
		return 1
	}
	return float32(s.Width) / float32(s.Height)
}

// Release detaches the surface. Releasing twice is a no-op.
func (s *Surface) Release() {
	if s == nil || s.released {
		return
	}
	s.released = true
	s.renderer.surfaces--
}

func (s *Surface) Released() bool {
	return s.released
}

type Renderer struct {
	backend  RendererBackend
	surfaces int
	width    uint32
	height   uint32
}

func New(backend RendererBackend) *Renderer {
	return &Renderer{backend: backend}
}

func (r *Renderer) Initialize(appName string, appWidth, appHeight uint32) error {
	if r.backend == nil {
		return core.ErrNotInitialized
	}
	r.width = appWidth
	r.height = appHeight
	if err := r.backend.Initialize(appName, appWidth, appHeight); err != nil {
		return fmt.Errorf("renderer backend initialize: %w", err)
	}
	return nil
}

func (r *Renderer) Shutdown() error {
	if r.surfaces > 0 {
		core.LogWarn("renderer shutting down with %d surfaces still attached", r.surfaces)
	}
	return r.backend.Shutdown()
}

// Size returns the current framebuffer size.
func (r *Renderer) Size() (uint32, uint32) {
	return r.width, r.height
}

func (r *Renderer) OnResize(width, height uint32) error {
	r.width = width
	r.height = height
	return r.backend.Resized(width, height)
}

// AcquireSurface attaches a new surface sized to the current framebuffer.
func (r *Renderer) AcquireSurface() *Surface {
	r.surfaces++
	return &Surface{
		Width:    r.width,
		Height:   r.height,
		renderer: r,
	}
}

// SurfaceCount returns how many surfaces are attached.
func (r *Renderer) SurfaceCount() int {
	return r.surfaces
}

func (r *Renderer) DrawFrame(packet *metadata.RenderPacket) error {
	if err := r.backend.BeginFrame(packet); err != nil {
		core.LogError(err.Error())
		return err
	}
	for _, mesh := range packet.Meshes {
		if mesh == nil || !mesh.Geometry.IsValid() {
			continue
		}
		r.backend.DrawGeometry(&metadata.GeometryRenderData{
			Model:    mesh.Transform.GetWorld(),
			Geometry: mesh.Geometry,
		})
	}
	if packet.Overlay != nil && packet.Overlay.Image != nil {
		r.backend.DrawOverlay(packet.Overlay)
	}
	if err := r.backend.EndFrame(packet.DeltaTime); err != nil {
		core.LogError("RendererEndFrame failed. Application shutting down...")
		return err
	}
	return nil
}

func (r *Renderer) CreateGeometry(geometry *metadata.Geometry, vertices []math.Vertex3D, indices []uint32) error {
	return r.backend.CreateGeometry(geometry, vertices, indices)
}

func (r *Renderer) DestroyGeometry(geometry *metadata.Geometry) {
	r.backend.DestroyGeometry(geometry)
}
