package math

// GeometryGenerateNormals assigns each triangle's face normal to its three
// vertices. Only meaningful for unshared (non-indexed style) vertices.
func GeometryGenerateNormals(vertices []Vertex3D, indices []uint32) {
	for i := 0; i+2 < len(indices); i += 3 {
		i0 := indices[i+0]
		i1 := indices[i+1]
		i2 := indices[i+2]

		edge1 := vertices[i1].Position.Sub(vertices[i0].Position)
		edge2 := vertices[i2].Position.Sub(vertices[i0].Position)

		normal := edge1.Cross(edge2).Normalize()

		// NOTE: This just generates a face normal. Smoothing out should be done in a separate pass if desired.
		vertices[i0].Normal = normal
		vertices[i1].Normal = normal
		vertices[i2].Normal = normal
	}
}

// GeometryExtents returns the axis-aligned bounds and the center of vertices.
func GeometryExtents(vertices []Vertex3D) (Extents3D, Vec3) {
	if len(vertices) == 0 {
		return Extents3D{}, NewVec3Zero()
	}
	ext := Extents3D{Min: vertices[0].Position, Max: vertices[0].Position}
	for _, v := range vertices[1:] {
		for axis := 0; axis < 3; axis++ {
			if v.Position[axis] < ext.Min[axis] {
				ext.Min[axis] = v.Position[axis]
			}
			if v.Position[axis] > ext.Max[axis] {
				ext.Max[axis] = v.Position[axis]
			}
		}
	}
	return ext, ext.Min.Add(ext.Max).Mul(0.5)
}
