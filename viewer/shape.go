package viewer

import (
	"fmt"
	"strings"

	"github.com/spaghettifunk/prism/engine/renderer/metadata"
	"github.com/spaghettifunk/prism/engine/systems"
)

// Shape identifies one of the primitives the viewer can show.
type Shape uint8

const (
	ShapeCube Shape = iota
	ShapeSphere
	ShapeCylinder
	ShapeTorus
	ShapeCone
	ShapeOctahedron
)

// Shapes lists every shape in selector bar order.
var Shapes = []Shape{
	ShapeCube,
	ShapeSphere,
	ShapeCylinder,
	ShapeTorus,
	ShapeCone,
	ShapeOctahedron,
}

var shapeNames = [...]string{
	ShapeCube:       "cube",
	ShapeSphere:     "sphere",
	ShapeCylinder:   "cylinder",
	ShapeTorus:      "torus",
	ShapeCone:       "cone",
	ShapeOctahedron: "octahedron",
}

func (s Shape) String() string {
	if int(s) < len(shapeNames) {
		return shapeNames[s]
	}
	return fmt.Sprintf("shape(%d)", uint8(s))
}

// Title is the capitalized name shown on the selector button.
func (s Shape) Title() string {
	name := s.String()
	return strings.ToUpper(name[:1]) + name[1:]
}

func ParseShape(name string) (Shape, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range shapeNames {
		if n == name {
			return Shape(i), nil
		}
	}
	return ShapeCube, fmt.Errorf("%w: %q", ErrUnknownShape, name)
}

// GeometryConfig builds the geometry for the shape.
func (s Shape) GeometryConfig(materialName string) *metadata.GeometryConfig {
	name := s.String()
	switch s {
	case ShapeSphere:
		return systems.GenerateSphereConfig(1.5, 32, 32, name, materialName)
	case ShapeCylinder:
		return systems.GenerateCylinderConfig(1, 1, 2, 32, name, materialName)
	case ShapeTorus:
		return systems.GenerateTorusConfig(1, 0.4, 16, 100, name, materialName)
	case ShapeCone:
		return systems.GenerateConeConfig(1, 2, 32, name, materialName)
	case ShapeOctahedron:
		return systems.GenerateOctahedronConfig(1.5, name, materialName)
	default:
		return systems.GenerateBoxConfig(2, 2, 2, ShapeCube.String(), materialName)
	}
}
