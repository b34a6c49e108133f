package metadata

import (
	"image"

	"github.com/spaghettifunk/prism/engine/math"
)

// Overlay is a screen-sized premultiplied RGBA image composited over the scene.
// Version changes whenever the pixels change so backends can skip re-uploads.
type Overlay struct {
	Image   *image.RGBA
	Version uint64
}

// RenderPacket holds everything needed to draw one frame.
type RenderPacket struct {
	DeltaTime    float64
	Background   math.Vec3
	View         math.Mat4
	Projection   math.Mat4
	ViewPosition math.Vec3

	Meshes            []*Mesh
	DirectionalLights []DirectionalLight
	Ambient           AmbientLight

	Overlay *Overlay
}
