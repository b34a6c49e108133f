package metadata

import (
	"github.com/spaghettifunk/prism/engine/core"
	"github.com/spaghettifunk/prism/engine/math"
)

/** @brief The name of the default geometry. */
const DefaultGeometryName string = "default"

/**
 * @brief Represents the configuration for a geometry.
 */
type GeometryConfig struct {
	/** @brief An array of Vertices. */
	Vertices []math.Vertex3D
	/** @brief An array of Indices, three per triangle. */
	Indices []uint32

	Center     math.Vec3
	MinExtents math.Vec3
	MaxExtents math.Vec3

	/** @brief The Name of the geometry. */
	Name string
	/** @brief The name of the material used by the geometry. */
	MaterialName string
}

func (c *GeometryConfig) VertexCount() int {
	return len(c.Vertices)
}

func (c *GeometryConfig) TriangleCount() int {
	return len(c.Indices) / 3
}

/**
 * @brief Represents actual geometry in the world.
 * Typically (but not always, depending on use) paired with a material.
 */
type Geometry struct {
	/** @brief The geometry identifier. */
	ID core.Identifier
	/** @brief The internal geometry identifier, used by the renderer backend to map to internal resources. */
	InternalID uint32
	/** @brief The geometry generation. Incremented every time the geometry changes. */
	Generation uint16
	/** @brief The center of the geometry in local coordinates. */
	Center math.Vec3
	/** @brief The extents of the geometry in local coordinates. */
	Extents math.Extents3D
	/** @brief The geometry name. */
	Name string
	/** @brief A pointer to the material associated with this geometry.. */
	Material *Material

	// CPU copy kept for picking.
	Vertices []math.Vertex3D
	Indices  []uint32
}

// IsValid reports whether the geometry still owns backend resources.
func (g *Geometry) IsValid() bool {
	return g != nil && g.ID != core.InvalidID
}

// GeometryRenderData is everything the backend needs to draw one geometry.
type GeometryRenderData struct {
	Model    math.Mat4
	Geometry *Geometry
}

type GeometryReference struct {
	ReferenceCount uint64
	Geometry       *Geometry
	AutoRelease    bool
}

/** @brief The geometry system configuration. */
type GeometrySystemConfig struct {
	/**
	 * @brief Max number of geometries that can be loaded at once.
	 * NOTE: Should be significantly greater than the number of static meshes because
	 * there can and will be more than one of these per mesh.
	 * Take other systems into account as well.
	 */
	MaxGeometryCount uint32
}
