package systems

import (
	"testing"

	"github.com/spaghettifunk/prism/engine/math"
	"github.com/spaghettifunk/prism/engine/renderer/metadata"
)

func TestPrimitiveCounts(t *testing.T) {
	cases := []struct {
		name     string
		config   *metadata.GeometryConfig
		vertices int
		indices  int
	}{
		{"box", GenerateBoxConfig(2, 2, 2, "", ""), 24, 36},
		{"sphere", GenerateSphereConfig(1.5, 32, 32, "", ""), 1089, 5952},
		{"cylinder", GenerateCylinderConfig(1, 1, 2, 32, "", ""), 196, 384},
		{"cone", GenerateConeConfig(1, 2, 32, "", ""), 131, 192},
		{"torus", GenerateTorusConfig(1, 0.4, 16, 100, "", ""), 1717, 9600},
		{"octahedron", GenerateOctahedronConfig(1.5, "", ""), 24, 24},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.config.VertexCount(); got != tc.vertices {
				t.Fatalf("vertices = %d, want %d", got, tc.vertices)
			}
			if got := len(tc.config.Indices); got != tc.indices {
				t.Fatalf("indices = %d, want %d", got, tc.indices)
			}
			for _, i := range tc.config.Indices {
				if int(i) >= tc.vertices {
					t.Fatalf("index %d out of range", i)
				}
			}
		})
	}
}

func TestPrimitiveExtents(t *testing.T) {
	cases := []struct {
		name   string
		config *metadata.GeometryConfig
		max    math.Vec3
	}{
		{"box", GenerateBoxConfig(2, 4, 6, "", ""), math.NewVec3(1, 2, 3)},
		{"cylinder", GenerateCylinderConfig(1, 1, 2, 32, "", ""), math.NewVec3(1, 1, 1)},
		{"octahedron", GenerateOctahedronConfig(1.5, "", ""), math.NewVec3(1.5, 1.5, 1.5)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for axis := 0; axis < 3; axis++ {
				if d := tc.config.MaxExtents[axis] - tc.max[axis]; d > 1e-5 || d < -1e-5 {
					t.Fatalf("max extents = %v, want %v", tc.config.MaxExtents, tc.max)
				}
				if d := tc.config.MinExtents[axis] + tc.max[axis]; d > 1e-5 || d < -1e-5 {
					t.Fatalf("min extents = %v, want %v", tc.config.MinExtents, tc.max.Mul(-1))
				}
			}
		})
	}
}

// Every triangle of a convex shape centred on the origin must face away from it.
func TestPrimitiveWindingFacesOutward(t *testing.T) {
	cases := map[string]*metadata.GeometryConfig{
		"box":        GenerateBoxConfig(2, 2, 2, "", ""),
		"sphere":     GenerateSphereConfig(1.5, 32, 32, "", ""),
		"cylinder":   GenerateCylinderConfig(1, 1, 2, 32, "", ""),
		"cone":       GenerateConeConfig(1, 2, 32, "", ""),
		"octahedron": GenerateOctahedronConfig(1.5, "", ""),
	}
	for name, config := range cases {
		t.Run(name, func(t *testing.T) {
			for i := 0; i+2 < len(config.Indices); i += 3 {
				a := config.Vertices[config.Indices[i]].Position
				b := config.Vertices[config.Indices[i+1]].Position
				c := config.Vertices[config.Indices[i+2]].Position
				n := b.Sub(a).Cross(c.Sub(a))
				if n.Len() < 1e-9 {
					continue
				}
				centroid := a.Add(b).Add(c).Mul(1.0 / 3.0)
				if n.Dot(centroid) <= 0 {
					t.Fatalf("triangle %d faces inward", i/3)
				}
			}
		})
	}
}

func TestOctahedronFaceNormals(t *testing.T) {
	config := GenerateOctahedronConfig(1.5, "", "")
	for i := 0; i < len(config.Vertices); i += 3 {
		n := config.Vertices[i].Normal
		if config.Vertices[i+1].Normal != n || config.Vertices[i+2].Normal != n {
			t.Fatalf("face %d has mixed normals", i/3)
		}
		if l := n.Len(); l < 0.999 || l > 1.001 {
			t.Fatalf("face %d normal not unit length: %v", i/3, n)
		}
	}
}

func TestPrimitiveDefaults(t *testing.T) {
	config := GenerateBoxConfig(0, 2, 2, "", "")
	if config.Name != metadata.DefaultGeometryName || config.MaterialName != metadata.DefaultMaterialName {
		t.Fatalf("names = %q/%q", config.Name, config.MaterialName)
	}
	if config.MaxExtents.X() != 0.5 {
		t.Fatalf("zero width not replaced by one: %v", config.MaxExtents)
	}

	sphere := GenerateSphereConfig(1, 1, 1, "low", "mat")
	if sphere.VertexCount() != 4*3 {
		t.Fatalf("segment minimums not applied: %d vertices", sphere.VertexCount())
	}
	if sphere.Name != "low" || sphere.MaterialName != "mat" {
		t.Fatalf("names = %q/%q", sphere.Name, sphere.MaterialName)
	}
}
