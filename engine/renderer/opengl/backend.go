package opengl

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/spaghettifunk/prism/engine/core"
	"github.com/spaghettifunk/prism/engine/math"
	"github.com/spaghettifunk/prism/engine/platform"
	"github.com/spaghettifunk/prism/engine/renderer/metadata"
)

type glGeometry struct {
	vao        uint32
	vbo        uint32
	ebo        uint32
	indexCount int32
}

type overlayTexture struct {
	id      uint32
	width   int
	height  int
	version uint64
	loaded  bool
}

type OpenGLRenderer struct {
	platform    *platform.Platform
	FrameNumber uint64

	framebufferWidth  uint32
	framebufferHeight uint32

	phongProgram   uint32
	phong          phongUniforms
	overlayProgram uint32
	overlayVAO     uint32
	overlay        overlayTexture

	geometries     map[uint32]*glGeometry
	nextGeometryID uint32
}

func New(p *platform.Platform) *OpenGLRenderer {
	return &OpenGLRenderer{
		platform:       p,
		geometries:     make(map[uint32]*glGeometry),
		nextGeometryID: 1,
	}
}

func (r *OpenGLRenderer) Initialize(appName string, appWidth, appHeight uint32) error {
	if err := gl.Init(); err != nil {
		core.LogFatal("failed to initialize OpenGL: %s", err)
		return err
	}
	core.LogInfo("OpenGL version %s", gl.GoStr(gl.GetString(gl.VERSION)))

	r.framebufferWidth, r.framebufferHeight = r.platform.FramebufferSize()
	if r.framebufferWidth == 0 || r.framebufferHeight == 0 {
		r.framebufferWidth, r.framebufferHeight = appWidth, appHeight
	}

	program, err := newProgram(phongVertexShader, phongFragmentShader)
	if err != nil {
		return fmt.Errorf("phong shader: %w", err)
	}
	r.phongProgram = program
	r.phong = lookupPhongUniforms(program)

	program, err = newProgram(overlayVertexShader, overlayFragmentShader)
	if err != nil {
		return fmt.Errorf("overlay shader: %w", err)
	}
	r.overlayProgram = program
	gl.UseProgram(r.overlayProgram)
	gl.Uniform1i(uniformLocation(r.overlayProgram, "overlay"), 0)

	// The overlay quad has no attributes but core profile still needs a VAO bound.
	gl.GenVertexArrays(1, &r.overlayVAO)

	gl.GenTextures(1, &r.overlay.id)
	gl.BindTexture(gl.TEXTURE_2D, r.overlay.id)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)

	core.LogInfo("%s: OpenGL renderer initialized successfully.", appName)
	return nil
}

func (r *OpenGLRenderer) Shutdown() error {
	for id, g := range r.geometries {
		r.releaseGeometry(g)
		delete(r.geometries, id)
	}
	if r.overlay.id != 0 {
		gl.DeleteTextures(1, &r.overlay.id)
		r.overlay = overlayTexture{}
	}
	if r.overlayVAO != 0 {
		gl.DeleteVertexArrays(1, &r.overlayVAO)
		r.overlayVAO = 0
	}
	if r.overlayProgram != 0 {
		gl.DeleteProgram(r.overlayProgram)
		r.overlayProgram = 0
	}
	if r.phongProgram != 0 {
		gl.DeleteProgram(r.phongProgram)
		r.phongProgram = 0
	}
	core.LogInfo("OpenGL renderer shut down.")
	return nil
}

// Resized records the new window size. The drawable size is queried from the
// platform since it differs from the window size on high density displays.
func (r *OpenGLRenderer) Resized(width, height uint32) error {
	fw, fh := r.platform.FramebufferSize()
	if fw == 0 || fh == 0 {
		fw, fh = width, height
	}
	r.framebufferWidth = fw
	r.framebufferHeight = fh
	core.LogDebug("OpenGL renderer resized: w/h: %d/%d", fw, fh)
	return nil
}

func (r *OpenGLRenderer) BeginFrame(packet *metadata.RenderPacket) error {
	gl.Viewport(0, 0, int32(r.framebufferWidth), int32(r.framebufferHeight))
	bg := packet.Background
	gl.ClearColor(bg.X(), bg.Y(), bg.Z(), 1.0)
	gl.Enable(gl.DEPTH_TEST)
	gl.Disable(gl.BLEND)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	gl.UseProgram(r.phongProgram)
	gl.UniformMatrix4fv(r.phong.projection, 1, false, &packet.Projection[0])
	gl.UniformMatrix4fv(r.phong.view, 1, false, &packet.View[0])
	gl.Uniform3fv(r.phong.viewPosition, 1, &packet.ViewPosition[0])

	count := len(packet.DirectionalLights)
	if count > maxLights {
		core.LogWarn("too many directional lights (%d), only %d are used", count, maxLights)
		count = maxLights
	}
	directions := make([]float32, 0, count*3)
	radiance := make([]float32, 0, count*3)
	for _, light := range packet.DirectionalLights[:count] {
		d := light.Direction()
		c := light.Radiance()
		directions = append(directions, d.X(), d.Y(), d.Z())
		radiance = append(radiance, c.X(), c.Y(), c.Z())
	}
	gl.Uniform1i(r.phong.lightCount, int32(count))
	if count > 0 {
		gl.Uniform3fv(r.phong.lightDirections, int32(count), &directions[0])
		gl.Uniform3fv(r.phong.lightRadiance, int32(count), &radiance[0])
	}
	ambient := packet.Ambient.Radiance()
	gl.Uniform3fv(r.phong.ambient, 1, &ambient[0])
	return nil
}

func (r *OpenGLRenderer) EndFrame(deltaTime float64) error {
	r.platform.SwapBuffers()
	r.FrameNumber++
	return nil
}

func (r *OpenGLRenderer) CreateGeometry(geometry *metadata.Geometry, vertices []math.Vertex3D, indices []uint32) error {
	if len(vertices) == 0 || len(indices) == 0 {
		return fmt.Errorf("geometry '%s' has no vertex or index data", geometry.Name)
	}

	g := &glGeometry{indexCount: int32(len(indices))}
	stride := int32(unsafe.Sizeof(math.Vertex3D{}))

	gl.GenVertexArrays(1, &g.vao)
	gl.BindVertexArray(g.vao)

	gl.GenBuffers(1, &g.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, g.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*int(stride), gl.Ptr(vertices), gl.STATIC_DRAW)

	gl.GenBuffers(1, &g.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, g.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)

	// position
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	// normal
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, uintptr(unsafe.Offsetof(math.Vertex3D{}.Normal)))

	gl.BindVertexArray(0)

	geometry.InternalID = r.nextGeometryID
	r.nextGeometryID++
	r.geometries[geometry.InternalID] = g
	return nil
}

func (r *OpenGLRenderer) DestroyGeometry(geometry *metadata.Geometry) {
	g, ok := r.geometries[geometry.InternalID]
	if !ok {
		core.LogWarn("geometry '%s' has no backend resources", geometry.Name)
		return
	}
	r.releaseGeometry(g)
	delete(r.geometries, geometry.InternalID)
	geometry.InternalID = 0
}

func (r *OpenGLRenderer) releaseGeometry(g *glGeometry) {
	gl.DeleteBuffers(1, &g.ebo)
	gl.DeleteBuffers(1, &g.vbo)
	gl.DeleteVertexArrays(1, &g.vao)
}

func (r *OpenGLRenderer) DrawGeometry(data *metadata.GeometryRenderData) {
	g, ok := r.geometries[data.Geometry.InternalID]
	if !ok {
		return
	}
	gl.UniformMatrix4fv(r.phong.model, 1, false, &data.Model[0])

	if m := data.Geometry.Material; m != nil {
		gl.Uniform3fv(r.phong.diffuseColour, 1, &m.DiffuseColour[0])
		gl.Uniform3fv(r.phong.specularColour, 1, &m.SpecularColour[0])
		gl.Uniform1f(r.phong.shininess, m.Shininess)
		flat := int32(0)
		if m.FlatShading {
			flat = 1
		}
		gl.Uniform1i(r.phong.flatShading, flat)
	}

	gl.BindVertexArray(g.vao)
	gl.DrawElements(gl.TRIANGLES, g.indexCount, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
}

// DrawOverlay composites a premultiplied RGBA image over the whole frame. The
// texture is only uploaded again when the overlay version changes.
func (r *OpenGLRenderer) DrawOverlay(overlay *metadata.Overlay) {
	img := overlay.Image
	w, h := img.Rect.Dx(), img.Rect.Dy()
	if w == 0 || h == 0 {
		return
	}

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.overlay.id)
	if !r.overlay.loaded || r.overlay.version != overlay.Version || r.overlay.width != w || r.overlay.height != h {
		gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(img.Stride/4))
		if r.overlay.width != w || r.overlay.height != h || !r.overlay.loaded {
			gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(w), int32(h), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
		} else {
			gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
		}
		gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
		r.overlay.width = w
		r.overlay.height = h
		r.overlay.version = overlay.Version
		r.overlay.loaded = true
	}

	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.ONE, gl.ONE_MINUS_SRC_ALPHA)

	gl.UseProgram(r.overlayProgram)
	gl.BindVertexArray(r.overlayVAO)
	gl.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)
	gl.BindVertexArray(0)

	gl.Disable(gl.BLEND)
	gl.Enable(gl.DEPTH_TEST)
}
