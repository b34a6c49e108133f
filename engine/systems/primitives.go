package systems

import (
	m "math"

	"github.com/spaghettifunk/prism/engine/core"
	"github.com/spaghettifunk/prism/engine/math"
	"github.com/spaghettifunk/prism/engine/renderer/metadata"
)

// The generators below produce the same vertex layout, winding and index
// order as the usual web primitive constructors, so shapes look and pick
// identically. All winding is counter-clockwise when seen from outside.

func finishConfig(config *metadata.GeometryConfig, name, materialName string) *metadata.GeometryConfig {
	ext, center := math.GeometryExtents(config.Vertices)
	config.MinExtents = ext.Min
	config.MaxExtents = ext.Max
	config.Center = center

	if len(name) > 0 {
		config.Name = name
	} else {
		config.Name = metadata.DefaultGeometryName
	}

	if len(materialName) > 0 {
		config.MaterialName = materialName
	} else {
		config.MaterialName = metadata.DefaultMaterialName
	}
	return config
}

func nonZero(name string, v float32) float32 {
	if v == 0 {
		core.LogWarn("%s must be nonzero. Defaulting to one.", name)
		return 1.0
	}
	return v
}

func atLeast(name string, v, lowest uint32) uint32 {
	if v < lowest {
		core.LogWarn("%s must be at least %d. Defaulting to %d.", name, lowest, lowest)
		return lowest
	}
	return v
}

/**
 * @brief Generates configuration for an axis aligned box centered on the origin,
 * made of six independent faces with four vertices each.
 */
func GenerateBoxConfig(width, height, depth float32, name, materialName string) *metadata.GeometryConfig {
	width = nonZero("Width", width)
	height = nonZero("Height", height)
	depth = nonZero("Depth", depth)

	config := &metadata.GeometryConfig{
		Vertices: make([]math.Vertex3D, 0, 24),
		Indices:  make([]uint32, 0, 36),
	}

	// u, v, w are axis indices; w is the axis the face looks along.
	plane := func(u, v, w int, udir, vdir, pw, ph, pd float32) {
		start := uint32(len(config.Vertices))
		for iy := 0; iy <= 1; iy++ {
			y := float32(iy)*ph - ph*0.5
			for ix := 0; ix <= 1; ix++ {
				x := float32(ix)*pw - pw*0.5
				var vert math.Vertex3D
				vert.Position[u] = x * udir
				vert.Position[v] = y * vdir
				vert.Position[w] = pd * 0.5
				if pd > 0 {
					vert.Normal[w] = 1
				} else {
					vert.Normal[w] = -1
				}
				vert.Texcoord = math.NewVec2(float32(ix), 1-float32(iy))
				config.Vertices = append(config.Vertices, vert)
			}
		}
		a, b, c, d := start, start+2, start+3, start+1
		config.Indices = append(config.Indices, a, b, d, b, c, d)
	}

	plane(2, 1, 0, -1, -1, depth, height, width)  // px
	plane(2, 1, 0, 1, -1, depth, height, -width)  // nx
	plane(0, 2, 1, 1, 1, width, depth, height)    // py
	plane(0, 2, 1, 1, -1, width, depth, -height)  // ny
	plane(0, 1, 2, 1, -1, width, height, depth)   // pz
	plane(0, 1, 2, -1, -1, width, height, -depth) // nz

	return finishConfig(config, name, materialName)
}

/**
 * @brief Generates configuration for a UV sphere. The pole rows are kept as
 * separate vertices but their degenerate triangles are skipped.
 */
func GenerateSphereConfig(radius float32, widthSegments, heightSegments uint32, name, materialName string) *metadata.GeometryConfig {
	radius = nonZero("Radius", radius)
	widthSegments = atLeast("widthSegments", widthSegments, 3)
	heightSegments = atLeast("heightSegments", heightSegments, 2)

	config := &metadata.GeometryConfig{
		Vertices: make([]math.Vertex3D, 0, (widthSegments+1)*(heightSegments+1)),
	}
	grid := make([][]uint32, heightSegments+1)
	index := uint32(0)
	for iy := uint32(0); iy <= heightSegments; iy++ {
		v := float64(iy) / float64(heightSegments)
		uOffset := 0.0
		if iy == 0 {
			uOffset = 0.5 / float64(widthSegments)
		} else if iy == heightSegments {
			uOffset = -0.5 / float64(widthSegments)
		}
		row := make([]uint32, widthSegments+1)
		for ix := uint32(0); ix <= widthSegments; ix++ {
			u := float64(ix) / float64(widthSegments)
			phi := u * 2 * m.Pi
			theta := v * m.Pi

			pos := math.NewVec3(
				float32(-float64(radius)*m.Cos(phi)*m.Sin(theta)),
				float32(float64(radius)*m.Cos(theta)),
				float32(float64(radius)*m.Sin(phi)*m.Sin(theta)),
			)
			config.Vertices = append(config.Vertices, math.Vertex3D{
				Position: pos,
				Normal:   pos.Normalize(),
				Texcoord: math.NewVec2(float32(u+uOffset), float32(1-v)),
			})
			row[ix] = index
			index++
		}
		grid[iy] = row
	}

	for iy := uint32(0); iy < heightSegments; iy++ {
		for ix := uint32(0); ix < widthSegments; ix++ {
			a := grid[iy][ix+1]
			b := grid[iy][ix]
			c := grid[iy+1][ix]
			d := grid[iy+1][ix+1]
			if iy != 0 {
				config.Indices = append(config.Indices, a, b, d)
			}
			if iy != heightSegments-1 {
				config.Indices = append(config.Indices, b, c, d)
			}
		}
	}

	return finishConfig(config, name, materialName)
}

/**
 * @brief Generates configuration for a capped cylinder along the y axis.
 * A zero top or bottom radius turns it into a cone; the collapsed ring keeps
 * its vertices but contributes no triangles and no cap.
 */
func GenerateCylinderConfig(radiusTop, radiusBottom, height float32, radialSegments uint32, name, materialName string) *metadata.GeometryConfig {
	height = nonZero("Height", height)
	radialSegments = atLeast("radialSegments", radialSegments, 3)
	if radiusTop < 0 || radiusBottom < 0 || (radiusTop == 0 && radiusBottom == 0) {
		core.LogWarn("cylinder radii must be non-negative and not both zero. Defaulting to one.")
		radiusTop, radiusBottom = 1, 1
	}

	config := &metadata.GeometryConfig{}
	halfHeight := height * 0.5
	slope := (radiusBottom - radiusTop) / height

	// torso, a single height segment
	var rings [2][]uint32
	for y := 0; y <= 1; y++ {
		v := float32(y)
		radius := v*(radiusBottom-radiusTop) + radiusTop
		rings[y] = make([]uint32, radialSegments+1)
		for x := uint32(0); x <= radialSegments; x++ {
			u := float64(x) / float64(radialSegments)
			theta := u * 2 * m.Pi
			sin := float32(m.Sin(theta))
			cos := float32(m.Cos(theta))
			rings[y][x] = uint32(len(config.Vertices))
			config.Vertices = append(config.Vertices, math.Vertex3D{
				Position: math.NewVec3(radius*sin, -v*height+halfHeight, radius*cos),
				Normal:   math.NewVec3(sin, slope, cos).Normalize(),
				Texcoord: math.NewVec2(float32(u), 1-v),
			})
		}
	}
	for x := uint32(0); x < radialSegments; x++ {
		a := rings[0][x]
		b := rings[1][x]
		c := rings[1][x+1]
		d := rings[0][x+1]
		if radiusTop > 0 {
			config.Indices = append(config.Indices, a, b, d)
		}
		if radiusBottom > 0 {
			config.Indices = append(config.Indices, b, c, d)
		}
	}

	addCap := func(top bool) {
		radius := radiusBottom
		sign := float32(-1)
		if top {
			radius = radiusTop
			sign = 1
		}
		normal := math.NewVec3(0, sign, 0)

		centerStart := uint32(len(config.Vertices))
		for x := uint32(1); x <= radialSegments; x++ {
			config.Vertices = append(config.Vertices, math.Vertex3D{
				Position: math.NewVec3(0, halfHeight*sign, 0),
				Normal:   normal,
				Texcoord: math.NewVec2(0.5, 0.5),
			})
		}
		centerEnd := uint32(len(config.Vertices))
		for x := uint32(0); x <= radialSegments; x++ {
			theta := float64(x) / float64(radialSegments) * 2 * m.Pi
			sin := float32(m.Sin(theta))
			cos := float32(m.Cos(theta))
			config.Vertices = append(config.Vertices, math.Vertex3D{
				Position: math.NewVec3(radius*sin, halfHeight*sign, radius*cos),
				Normal:   normal,
				Texcoord: math.NewVec2(cos*0.5+0.5, sin*0.5*sign+0.5),
			})
		}
		for x := uint32(0); x < radialSegments; x++ {
			c := centerStart + x
			i := centerEnd + x
			if top {
				config.Indices = append(config.Indices, i, i+1, c)
			} else {
				config.Indices = append(config.Indices, i+1, i, c)
			}
		}
	}
	if radiusTop > 0 {
		addCap(true)
	}
	if radiusBottom > 0 {
		addCap(false)
	}

	return finishConfig(config, name, materialName)
}

// GenerateConeConfig is a cylinder with a zero top radius.
func GenerateConeConfig(radius, height float32, radialSegments uint32, name, materialName string) *metadata.GeometryConfig {
	return GenerateCylinderConfig(0, nonZero("Radius", radius), height, radialSegments, name, materialName)
}

/**
 * @brief Generates configuration for a torus lying in the xy plane.
 *
 * @param radius Distance from the center to the middle of the tube.
 * @param tube Radius of the tube.
 */
func GenerateTorusConfig(radius, tube float32, radialSegments, tubularSegments uint32, name, materialName string) *metadata.GeometryConfig {
	radius = nonZero("Radius", radius)
	tube = nonZero("Tube", tube)
	radialSegments = atLeast("radialSegments", radialSegments, 2)
	tubularSegments = atLeast("tubularSegments", tubularSegments, 3)

	config := &metadata.GeometryConfig{
		Vertices: make([]math.Vertex3D, 0, (radialSegments+1)*(tubularSegments+1)),
		Indices:  make([]uint32, 0, radialSegments*tubularSegments*6),
	}

	r := float64(radius)
	t := float64(tube)
	for j := uint32(0); j <= radialSegments; j++ {
		for i := uint32(0); i <= tubularSegments; i++ {
			u := float64(i) / float64(tubularSegments) * 2 * m.Pi
			v := float64(j) / float64(radialSegments) * 2 * m.Pi

			pos := math.NewVec3(
				float32((r+t*m.Cos(v))*m.Cos(u)),
				float32((r+t*m.Cos(v))*m.Sin(u)),
				float32(t*m.Sin(v)),
			)
			center := math.NewVec3(float32(r*m.Cos(u)), float32(r*m.Sin(u)), 0)
			config.Vertices = append(config.Vertices, math.Vertex3D{
				Position: pos,
				Normal:   pos.Sub(center).Normalize(),
				Texcoord: math.NewVec2(float32(i)/float32(tubularSegments), float32(j)/float32(radialSegments)),
			})
		}
	}

	stride := tubularSegments + 1
	for j := uint32(1); j <= radialSegments; j++ {
		for i := uint32(1); i <= tubularSegments; i++ {
			a := stride*j + i - 1
			b := stride*(j-1) + i - 1
			c := stride*(j-1) + i
			d := stride*j + i
			config.Indices = append(config.Indices, a, b, d, b, c, d)
		}
	}

	return finishConfig(config, name, materialName)
}

var octahedronCorners = [6]math.Vec3{
	{1, 0, 0}, {-1, 0, 0}, {0, 1, 0}, {0, -1, 0}, {0, 0, 1}, {0, 0, -1},
}

var octahedronFaces = [8][3]int{
	{0, 2, 4}, {0, 4, 3}, {0, 3, 5}, {0, 5, 2},
	{1, 2, 5}, {1, 5, 3}, {1, 3, 4}, {1, 4, 2},
}

/**
 * @brief Generates configuration for a regular octahedron whose corners lie on a
 * sphere of the given radius. Faces do not share vertices so every face
 * carries its own flat normal.
 */
func GenerateOctahedronConfig(radius float32, name, materialName string) *metadata.GeometryConfig {
	radius = nonZero("Radius", radius)

	config := &metadata.GeometryConfig{
		Vertices: make([]math.Vertex3D, 0, 24),
		Indices:  make([]uint32, 0, 24),
	}
	for _, face := range octahedronFaces {
		// b, c, a keeps the winding of a, b, c.
		for _, corner := range [3]int{face[1], face[2], face[0]} {
			pos := octahedronCorners[corner].Mul(radius)
			config.Vertices = append(config.Vertices, math.Vertex3D{
				Position: pos,
				Texcoord: sphericalUV(pos),
			})
			config.Indices = append(config.Indices, uint32(len(config.Indices)))
		}
	}
	math.GeometryGenerateNormals(config.Vertices, config.Indices)

	return finishConfig(config, name, materialName)
}

func sphericalUV(p math.Vec3) math.Vec2 {
	n := p.Normalize()
	u := m.Atan2(float64(n.Z()), float64(-n.X()))/(2*m.Pi) + 0.5
	v := m.Atan2(float64(-n.Y()), m.Sqrt(float64(n.X()*n.X()+n.Z()*n.Z())))/m.Pi + 0.5
	return math.NewVec2(float32(u), float32(v))
}
