package renderer

import (
	"github.com/spaghettifunk/prism/engine/math"
	"github.com/spaghettifunk/prism/engine/renderer/metadata"
)

type RendererBackend interface {
	Initialize(appName string, appWidth, appHeight uint32) error
	Shutdown() error
	Resized(width, height uint32) error
	BeginFrame(packet *metadata.RenderPacket) error
	EndFrame(deltaTime float64) error
	CreateGeometry(geometry *metadata.Geometry, vertices []math.Vertex3D, indices []uint32) error
	DestroyGeometry(geometry *metadata.Geometry)
	DrawGeometry(data *metadata.GeometryRenderData)
	DrawOverlay(overlay *metadata.Overlay)
}
